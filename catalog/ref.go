package catalog

import (
	"strings"

	"github.com/cottand/typeflect/resolve"
)

// parseRef splits a type reference into its base identity and generic
// arguments: "a.List<K, b.List<V>>" yields base "a.List" and args
// ["K", "b.List<V>"]. A reference with no angle brackets is its own base.
// ok is false when brackets are unbalanced or an argument is empty.
func parseRef(ref string) (base resolve.Identity, args []resolve.Identity, ok bool) {
	ref = strings.TrimSpace(ref)
	open := strings.IndexByte(ref, '<')
	if open < 0 {
		if strings.ContainsAny(ref, ">,") || ref == "" {
			return "", nil, false
		}
		return resolve.Identity(ref), nil, true
	}
	if !strings.HasSuffix(ref, ">") || open == 0 {
		return "", nil, false
	}
	base = resolve.Identity(ref[:open])
	inner := ref[open+1 : len(ref)-1]

	depth := 0
	start := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth < 0 {
				return "", nil, false
			}
		case ',':
			if depth == 0 {
				arg := strings.TrimSpace(inner[start:i])
				if arg == "" {
					return "", nil, false
				}
				args = append(args, resolve.Identity(arg))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return "", nil, false
	}
	last := strings.TrimSpace(inner[start:])
	if last == "" {
		return "", nil, false
	}
	args = append(args, resolve.Identity(last))
	return base, args, true
}

// rootElem strips every array suffix: "E[][]" -> "E".
func rootElem(id resolve.Identity) resolve.Identity {
	s := string(id)
	for strings.HasSuffix(s, "[]") {
		s = s[:len(s)-2]
	}
	return resolve.Identity(s)
}

// substitute rewrites every occurrence of a type-parameter name in ref with
// its bound argument, recursing through generic arguments and array
// suffixes. References that bind no parameter pass through unchanged.
func substitute(ref resolve.Identity, bindings map[resolve.Identity]resolve.Identity) resolve.Identity {
	if len(bindings) == 0 {
		return ref
	}
	s := string(ref)
	var arraySuffix string
	for strings.HasSuffix(s, "[]") {
		s = s[:len(s)-2]
		arraySuffix += "[]"
	}
	base, args, ok := parseRef(s)
	if !ok {
		return ref
	}
	if len(args) == 0 {
		if bound, ok := bindings[base]; ok {
			return resolve.Identity(string(bound) + arraySuffix)
		}
		return resolve.Identity(string(base) + arraySuffix)
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = string(substitute(arg, bindings))
	}
	rebuilt := string(base) + "<" + strings.Join(parts, ", ") + ">" + arraySuffix
	return resolve.Identity(rebuilt)
}
