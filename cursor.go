package wirejson

import (
	"strconv"
	"strings"

	"github.com/wirejson/wirejson/i18n"
)

// Cursor is a location inside a Value plus the JSON Pointer path taken to
// reach it. Navigation never fails in place; a bad step records a pending
// issue that surfaces at the terminal decode call, so chains like
// DownField("a").DownField("b") always produce the full path on failure.
//
// A Cursor is a value; each navigation step returns a fresh one.
type Cursor struct {
	val  Value
	path string
	err  Issues
}

// Cursor returns a root cursor over v (path "").
func (v Value) Cursor() Cursor { return Cursor{val: v} }

// DownField moves into an object field. A non-object node or an absent key
// becomes a deferred issue carrying the accumulated path.
func (c Cursor) DownField(name string) Cursor {
	if c.err != nil {
		return c
	}
	fieldPath := appendKey(c.path, name)
	if c.val.kind != KindObject {
		return Cursor{path: fieldPath, err: Issues{Issue{
			Path:    c.path,
			Code:    CodeInvalidType,
			Message: i18n.T(CodeInvalidType, map[string]string{"expected": "object"}),
			Hint:    "expected object, got " + c.val.kind.String(),
			Params:  map[string]any{"expected": "object", "got": c.val.kind.String()},
		}}}
	}
	v, ok := c.val.Lookup(name)
	if !ok {
		return Cursor{path: fieldPath, err: Issues{Issue{
			Path:    fieldPath,
			Code:    CodeRequired,
			Message: i18n.T(CodeRequired, map[string]string{"key": name}),
			Params:  map[string]any{"key": name},
		}}}
	}
	return Cursor{val: v, path: fieldPath}
}

// Index moves into an array element.
func (c Cursor) Index(i int) Cursor {
	if c.err != nil {
		return c
	}
	itemPath := appendIndex(c.path, i)
	if c.val.kind != KindArray {
		return Cursor{path: itemPath, err: Issues{Issue{
			Path:    c.path,
			Code:    CodeInvalidType,
			Message: i18n.T(CodeInvalidType, map[string]string{"expected": "array"}),
			Hint:    "expected array, got " + c.val.kind.String(),
			Params:  map[string]any{"expected": "array", "got": c.val.kind.String()},
		}}}
	}
	v, ok := c.val.Item(i)
	if !ok {
		return Cursor{path: itemPath, err: Issues{Issue{
			Path:    itemPath,
			Code:    CodeRequired,
			Message: i18n.T(CodeRequired, nil),
			Params:  map[string]any{"index": i},
		}}}
	}
	return Cursor{val: v, path: itemPath}
}

// Path returns the JSON Pointer accumulated so far ("" at the root).
func (c Cursor) Path() string { return c.path }

// Err returns the pending navigation failure, if any.
func (c Cursor) Err() error {
	if c.err == nil {
		return nil
	}
	return c.err
}

// Node returns the current value, or the pending navigation failure.
func (c Cursor) Node() (Value, error) {
	if c.err != nil {
		return Value{}, c.err
	}
	return c.val, nil
}

// ---- JSON Pointer building (RFC 6901 escaping) ----

func appendKey(path, key string) string {
	if strings.ContainsAny(key, "~/") {
		key = strings.ReplaceAll(key, "~", "~0")
		key = strings.ReplaceAll(key, "/", "~1")
	}
	return path + "/" + key
}

func appendIndex(path string, i int) string {
	return path + "/" + strconv.Itoa(i)
}
