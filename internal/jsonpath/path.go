package jsonpath

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Kind describes the JSON shape a path points at.
type Kind uint8

const (
	KindPrimitive Kind = iota
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	}
	return "primitive"
}

// Path is one addressable location in the sample document. Path is the
// dotted display form, Selector the jq expression that reaches it.
// Regenerated wholesale whenever the sample changes; never mutated.
type Path struct {
	Path     string `msgpack:"path"`
	Selector string `msgpack:"selector"`
	Kind     Kind   `msgpack:"kind"`
	Sample   string `msgpack:"sample"`
}

// Walk depth is bounded so a pathological sample cannot blow the stack.
const maxDepth = 12

const maxSampleLen = 40

// Derive enumerates the field paths of a JSON sample. The only error is
// a sample that is not valid JSON.
func Derive(sample []byte) ([]Path, error) {
	if !gjson.ValidBytes(sample) {
		return nil, fmt.Errorf("jsonpath: sample is not valid JSON")
	}
	root := gjson.ParseBytes(sample)
	var out []Path
	walk("", "", root, &out, 0)
	return out, nil
}

func walk(display, selector string, v gjson.Result, out *[]Path, depth int) {
	if depth > maxDepth {
		return
	}
	switch {
	case v.IsObject():
		v.ForEach(func(key, value gjson.Result) bool {
			childDisplay := joinDisplay(display, key.String())
			childSelector := selector + fieldSelector(key.String())
			*out = append(*out, Path{
				Path:     childDisplay,
				Selector: childSelector,
				Kind:     kindOf(value),
				Sample:   sampleOf(value),
			})
			walk(childDisplay, childSelector, value, out, depth+1)
			return true
		})
	case v.IsArray():
		elems := v.Array()
		if len(elems) == 0 {
			return
		}
		iterDisplay := display + "[]"
		iterSelector := selector + "[]"
		*out = append(*out, Path{
			Path:     iterDisplay,
			Selector: iterSelector,
			Kind:     kindOf(elems[0]),
			Sample:   sampleOf(elems[0]),
		})
		// Element structure is inferred from the first element only.
		walk(iterDisplay, iterSelector, elems[0], out, depth+1)
	}
}

func kindOf(v gjson.Result) Kind {
	switch {
	case v.IsObject():
		return KindObject
	case v.IsArray():
		return KindArray
	}
	return KindPrimitive
}

func sampleOf(v gjson.Result) string {
	if v.IsObject() || v.IsArray() {
		return ""
	}
	s := v.Raw
	if len(s) > maxSampleLen {
		s = s[:maxSampleLen-3] + "..."
	}
	return s
}

func joinDisplay(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func fieldSelector(key string) string {
	if isIdent(key) {
		return "." + key
	}
	return fmt.Sprintf(`.[%q]`, key)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
