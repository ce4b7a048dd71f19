package dsl

import (
	"fmt"
	"strings"

	wirejson "github.com/wirejson/wirejson"
	"github.com/wirejson/wirejson/i18n"
)

// FieldOf binds one wire field of the domain type T: a key (or nested key
// path), an encode projection, and a decode assignment.
type FieldOf[T any] struct {
	path   []string
	encode func(T) (wirejson.Value, bool)
	decode func(wirejson.Cursor, *T) error
}

// Field binds a required top-level field. get projects the field out of T for
// encoding; set writes the decoded value back.
func Field[T, U any](name string, c wirejson.Codec[U], get func(T) U, set func(*T, U)) FieldOf[T] {
	return FieldAt[T, U]([]string{name}, c, get, set)
}

// FieldAt binds a required field nested under a chain of wire keys, so deep
// payloads project onto flat domain records. Decode failures anywhere along
// the chain report the full path.
func FieldAt[T, U any](path []string, c wirejson.Codec[U], get func(T) U, set func(*T, U)) FieldOf[T] {
	cp := make([]string, len(path))
	copy(cp, path)
	return FieldOf[T]{
		path: cp,
		encode: func(t T) (wirejson.Value, bool) {
			return c.Encode(get(t)), true
		},
		decode: func(root wirejson.Cursor, dst *T) error {
			cur := root
			for _, seg := range cp {
				cur = cur.DownField(seg)
			}
			u, err := wirejson.As(cur, c)
			if err != nil {
				return err
			}
			set(dst, u)
			return nil
		},
	}
}

// Optional binds a top-level field that may be absent. get reports whether
// the field should be emitted; an absent wire field leaves the domain field
// at its zero value.
func Optional[T, U any](name string, c wirejson.Codec[U], get func(T) (U, bool), set func(*T, U)) FieldOf[T] {
	return FieldOf[T]{
		path: []string{name},
		encode: func(t T) (wirejson.Value, bool) {
			u, ok := get(t)
			if !ok {
				return wirejson.Value{}, false
			}
			return c.Encode(u), true
		},
		decode: func(root wirejson.Cursor, dst *T) error {
			node, err := root.Node()
			if err != nil {
				return err
			}
			if _, present := node.Lookup(name); !present {
				return nil
			}
			u, err := wirejson.As(root.DownField(name), c)
			if err != nil {
				return err
			}
			set(dst, u)
			return nil
		},
	}
}

// ObjectBuilder assembles a Codec[T] from field bindings.
type ObjectBuilder[T any] struct {
	fields []FieldOf[T]
}

// Object starts an object codec builder for T.
func Object[T any]() *ObjectBuilder[T] { return &ObjectBuilder[T]{} }

// Fields appends field bindings in declared order. Encoding emits members in
// this order; decoding runs left-to-right and stops at the first failure.
func (b *ObjectBuilder[T]) Fields(fs ...FieldOf[T]) *ObjectBuilder[T] {
	b.fields = append(b.fields, fs...)
	return b
}

// Build validates the field set and returns the codec. Duplicate paths and
// prefix conflicts (one binding's path inside another's) fail fast here.
func (b *ObjectBuilder[T]) Build() (wirejson.Codec[T], error) {
	seen := map[string]struct{}{}
	for _, f := range b.fields {
		if len(f.path) == 0 {
			return nil, fmt.Errorf("dsl: field binding with empty path")
		}
		p := strings.Join(f.path, "/")
		if _, dup := seen[p]; dup {
			return nil, fmt.Errorf("dsl: duplicate field %q", p)
		}
		seen[p] = struct{}{}
	}
	for p := range seen {
		for q := range seen {
			if p != q && strings.HasPrefix(q, p+"/") {
				return nil, fmt.Errorf("dsl: field %q conflicts with nested field %q", p, q)
			}
		}
	}
	cp := make([]FieldOf[T], len(b.fields))
	copy(cp, b.fields)
	return &objectCodec[T]{fields: cp}, nil
}

// MustBuild is Build that panics on configuration errors.
func (b *ObjectBuilder[T]) MustBuild() wirejson.Codec[T] {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}

type objectCodec[T any] struct {
	fields []FieldOf[T]
}

func (o *objectCodec[T]) Encode(t T) wirejson.Value {
	root := &objNode{}
	for _, f := range o.fields {
		v, ok := f.encode(t)
		if !ok {
			continue
		}
		root.insert(f.path, v)
	}
	return root.value()
}

func (o *objectCodec[T]) Decode(c wirejson.Cursor) (T, error) {
	var out T
	node, err := c.Node()
	if err != nil {
		return out, err
	}
	if node.Kind() != wirejson.KindObject {
		got := node.Kind().String()
		return out, wirejson.Issues{wirejson.Issue{
			Path:    c.Path(),
			Code:    wirejson.CodeInvalidType,
			Message: i18n.T(wirejson.CodeInvalidType, map[string]string{"expected": "object"}),
			Hint:    "expected object, got " + got,
			Params:  map[string]any{"expected": "object", "got": got},
		}}
	}
	for _, f := range o.fields {
		if err := f.decode(c, &out); err != nil {
			return out, err
		}
	}
	return out, nil
}

// WireFields lists the top-level keys this codec emits, in declared order.
// The union builder uses it for discriminator collision checks.
func (o *objectCodec[T]) WireFields() []string {
	var keys []string
	seen := map[string]struct{}{}
	for _, f := range o.fields {
		k := f.path[0]
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

// objNode is the mutable scratch tree used while assembling encoded output;
// sibling bindings sharing a path prefix merge into one nested object.
type objNode struct {
	entries []objEntry
}

type objEntry struct {
	key   string
	leaf  *wirejson.Value
	child *objNode
}

func (n *objNode) insert(path []string, v wirejson.Value) {
	key := path[0]
	if len(path) == 1 {
		n.entries = append(n.entries, objEntry{key: key, leaf: &v})
		return
	}
	for i := range n.entries {
		if n.entries[i].key == key && n.entries[i].child != nil {
			n.entries[i].child.insert(path[1:], v)
			return
		}
	}
	child := &objNode{}
	child.insert(path[1:], v)
	n.entries = append(n.entries, objEntry{key: key, child: child})
}

func (n *objNode) value() wirejson.Value {
	members := make([]wirejson.Member, 0, len(n.entries))
	for _, e := range n.entries {
		if e.leaf != nil {
			members = append(members, wirejson.Field(e.key, *e.leaf))
			continue
		}
		members = append(members, wirejson.Field(e.key, e.child.value()))
	}
	return wirejson.Object(members...)
}
