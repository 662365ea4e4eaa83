package catalog

import (
	"fmt"
	"log/slog"
	"strings"
)

type ErrCode int

const (
	None ErrCode = iota
	DuplicateType
	UnknownReference
	ArityMismatch
	BadReference
)

// DeclError is a validation failure scoped to a single declaration.
type DeclError interface {
	error
	Code() ErrCode
	// Decl is the qualified name of the offending declaration.
	Decl() string
}

func FormatWithCode(e DeclError) string {
	return fmt.Sprintf("(C%03d) %s: %s", e.Code(), e.Decl(), e.Error())
}

// Errors accumulates declaration errors so a whole catalog can be validated
// in one pass. The nil *Errors is a valid empty accumulator.
type Errors struct {
	errs []DeclError
}

func (r *Errors) With(err ...DeclError) *Errors {
	if r == nil {
		return &Errors{errs: err}
	}
	r.errs = append(r.errs, err...)
	return r
}

func (r *Errors) Merge(err *Errors) *Errors {
	if r == nil {
		return err
	}
	if err == nil || len(err.errs) == 0 {
		return r
	}
	return r.With(err.errs...)
}

func (r *Errors) Errors() []DeclError {
	if r == nil {
		return nil
	}
	return r.errs
}

func (r *Errors) HasError() bool {
	return r != nil && len(r.errs) > 0
}

// String joins every accumulated error, one per line.
func (r *Errors) String() string {
	if r == nil {
		return ""
	}
	lines := make([]string, len(r.errs))
	for i, e := range r.errs {
		lines[i] = FormatWithCode(e)
	}
	return strings.Join(lines, "\n")
}

func (r *Errors) LogValue() slog.Value {
	var vals []slog.Attr
	for i, v := range r.Errors() {
		vals = append(vals, slog.Attr{
			Key:   fmt.Sprint("e", i),
			Value: slog.StringValue(FormatWithCode(v)),
		})
	}
	return slog.GroupValue(vals...)
}

type ErrDuplicate struct {
	Name string
}

func (e ErrDuplicate) Error() string { return "declared more than once" }
func (e ErrDuplicate) Code() ErrCode { return DuplicateType }
func (e ErrDuplicate) Decl() string  { return e.Name }

type ErrUnknownReference struct {
	Name string
	Ref  string
}

func (e ErrUnknownReference) Error() string {
	return fmt.Sprintf("references %q, which is not declared and is not a type parameter", e.Ref)
}
func (e ErrUnknownReference) Code() ErrCode { return UnknownReference }
func (e ErrUnknownReference) Decl() string  { return e.Name }

type ErrArityMismatch struct {
	Name      string
	Params    int
	Arguments int
}

func (e ErrArityMismatch) Error() string {
	return fmt.Sprintf("declares %d type parameters but %d generic arguments", e.Params, e.Arguments)
}
func (e ErrArityMismatch) Code() ErrCode { return ArityMismatch }
func (e ErrArityMismatch) Decl() string  { return e.Name }

type ErrBadReference struct {
	Name string
	Ref  string
}

func (e ErrBadReference) Error() string {
	return fmt.Sprintf("reference %q is malformed", e.Ref)
}
func (e ErrBadReference) Code() ErrCode { return BadReference }
func (e ErrBadReference) Decl() string  { return e.Name }
