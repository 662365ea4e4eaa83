package catalog

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load decodes a YAML catalog document and validates it. Unlike New, any
// validation error fails the whole load.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(err, "could not decode catalog document")
	}
	cat, errs := New(f.Types...)
	if errs.HasError() {
		return nil, errors.Errorf("invalid catalog:\n%s", errs.String())
	}
	logger.Debug("loaded catalog", "types", cat.Len())
	return cat, nil
}

func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open catalog at %v", path)
	}
	defer func() {
		_ = f.Close()
	}()
	return Load(f)
}
