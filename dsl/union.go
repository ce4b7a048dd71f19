package dsl

import (
	"fmt"
	"strings"

	wirejson "github.com/wirejson/wirejson"
	"github.com/wirejson/wirejson/i18n"
)

// DefaultDiscriminator is the discriminator key used unless a hierarchy
// overrides it.
const DefaultDiscriminator = "type"

// UnionVariant declares one variant of a discriminated union: its tag string
// and the codec for the concrete type.
type UnionVariant[T any] struct {
	tag        string
	decode     func(wirejson.Cursor) (T, error)
	match      func(T) (wirejson.Value, bool)
	wireFields []string
	checkZero  func() error
}

// fieldLister is implemented by codecs that can enumerate the top-level wire
// keys they emit (the dsl object codec does). It enables registration-time
// discriminator collision checks.
type fieldLister interface {
	WireFields() []string
}

// Variant declares a union variant. V must be assignable to T (typically a
// concrete type implementing the interface T); Build verifies this.
func Variant[T, V any](tag string, c wirejson.Codec[V]) UnionVariant[T] {
	uv := UnionVariant[T]{
		tag: tag,
		decode: func(cur wirejson.Cursor) (T, error) {
			v, err := c.Decode(cur)
			if err != nil {
				var zero T
				return zero, err
			}
			return any(v).(T), nil
		},
		match: func(t T) (wirejson.Value, bool) {
			v, ok := any(t).(V)
			if !ok {
				return wirejson.Value{}, false
			}
			return c.Encode(v), true
		},
		checkZero: func() error {
			var zero V
			if _, ok := any(zero).(T); !ok {
				var t T
				return fmt.Errorf("dsl: variant %q: %T does not satisfy %T", tag, zero, t)
			}
			return nil
		},
	}
	if fl, ok := any(c).(fieldLister); ok {
		uv.wireFields = fl.WireFields()
	}
	return uv
}

// UnionBuilder assembles a Codec[T] over a closed set of variants dispatched
// by a wire-only discriminator field.
type UnionBuilder[T any] struct {
	key      string
	variants []UnionVariant[T]
}

// Union starts a union builder for T with the default discriminator key.
func Union[T any]() *UnionBuilder[T] { return &UnionBuilder[T]{key: DefaultDiscriminator} }

// Discriminator overrides the discriminator key for this hierarchy.
func (b *UnionBuilder[T]) Discriminator(key string) *UnionBuilder[T] {
	b.key = key
	return b
}

// Variants appends variant declarations. Declaration order fixes both encode
// dispatch order and the tag listing in discriminator_unknown messages.
func (b *UnionBuilder[T]) Variants(vs ...UnionVariant[T]) *UnionBuilder[T] {
	b.variants = append(b.variants, vs...)
	return b
}

// Build validates the registration and returns the codec. It fails fast on an
// empty discriminator key, duplicate tags, variants whose concrete type does
// not satisfy T, and discriminator collisions with a variant's declared wire
// fields.
func (b *UnionBuilder[T]) Build() (wirejson.Codec[T], error) {
	if b.key == "" {
		return nil, fmt.Errorf("dsl: union discriminator key must not be empty")
	}
	if len(b.variants) == 0 {
		return nil, fmt.Errorf("dsl: union needs at least one variant")
	}
	tags := map[string]struct{}{}
	for _, v := range b.variants {
		if v.tag == "" {
			return nil, fmt.Errorf("dsl: union variant with empty tag")
		}
		if _, dup := tags[v.tag]; dup {
			return nil, fmt.Errorf("dsl: duplicate union tag %q", v.tag)
		}
		tags[v.tag] = struct{}{}
		if v.decode == nil || v.match == nil || v.checkZero == nil {
			return nil, fmt.Errorf("dsl: variant %q not constructed via Variant", v.tag)
		}
		if err := v.checkZero(); err != nil {
			return nil, err
		}
		for _, f := range v.wireFields {
			if f == b.key {
				return nil, fmt.Errorf("dsl: variant %q field %q collides with discriminator key", v.tag, f)
			}
		}
	}
	cp := make([]UnionVariant[T], len(b.variants))
	copy(cp, b.variants)
	allowed := make([]string, len(cp))
	byTag := make(map[string]func(wirejson.Cursor) (T, error), len(cp))
	for i, v := range cp {
		allowed[i] = v.tag
		byTag[v.tag] = v.decode
	}
	return &unionCodec[T]{key: b.key, variants: cp, byTag: byTag, allowed: allowed}, nil
}

// MustBuild is Build that panics on configuration errors.
func (b *UnionBuilder[T]) MustBuild() wirejson.Codec[T] {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}

type unionCodec[T any] struct {
	key      string
	variants []UnionVariant[T]
	byTag    map[string]func(wirejson.Cursor) (T, error)
	allowed  []string
}

// Encode dispatches on the runtime variant and injects the discriminator as
// the first member. The closed set is checked at Build, so an unmatched value
// means the hierarchy was extended without re-registration.
func (u *unionCodec[T]) Encode(t T) wirejson.Value {
	for _, v := range u.variants {
		body, ok := v.match(t)
		if !ok {
			continue
		}
		if body.Kind() != wirejson.KindObject {
			panic(fmt.Sprintf("dsl: union variant %q encoder produced %s, want object", v.tag, body.Kind()))
		}
		members := make([]wirejson.Member, 0, body.Len()+1)
		members = append(members, wirejson.Field(u.key, wirejson.String(v.tag)))
		members = append(members, body.Members()...)
		return wirejson.Object(members...)
	}
	panic(fmt.Sprintf("dsl: no union variant registered for %T", t))
}

// Decode reads the discriminator, then delegates to the variant decoder on
// the same node; the tag field is simply ignored by the variant.
func (u *unionCodec[T]) Decode(c wirejson.Cursor) (T, error) {
	var zero T
	node, err := c.Node()
	if err != nil {
		return zero, err
	}
	if node.Kind() != wirejson.KindObject {
		got := node.Kind().String()
		return zero, wirejson.Issues{wirejson.Issue{
			Path:    c.Path(),
			Code:    wirejson.CodeInvalidType,
			Message: i18n.T(wirejson.CodeInvalidType, map[string]string{"expected": "object"}),
			Hint:    "expected object, got " + got,
			Params:  map[string]any{"expected": "object", "got": got},
		}}
	}
	keyPath := c.DownField(u.key).Path()
	dv, present := node.Lookup(u.key)
	if !present {
		return zero, wirejson.Issues{wirejson.Issue{
			Path:    keyPath,
			Code:    wirejson.CodeDiscriminatorMissing,
			Message: i18n.T(wirejson.CodeDiscriminatorMissing, nil),
			Params:  map[string]any{"key": u.key},
		}}
	}
	tag, isString := dv.StringValue()
	if !isString {
		got := dv.Kind().String()
		return zero, wirejson.Issues{wirejson.Issue{
			Path:    keyPath,
			Code:    wirejson.CodeInvalidType,
			Message: i18n.T(wirejson.CodeInvalidType, map[string]string{"expected": "string"}),
			Hint:    "expected string, got " + got,
			Params:  map[string]any{"expected": "string", "got": got},
		}}
	}
	dec, known := u.byTag[tag]
	if !known {
		return zero, wirejson.Issues{wirejson.Issue{
			Path:    keyPath,
			Code:    wirejson.CodeDiscriminatorUnknown,
			Message: fmt.Sprintf("%s %q (allowed: %s)", i18n.T(wirejson.CodeDiscriminatorUnknown, nil), tag, quoteList(u.allowed)),
			Hint:    "unknown variant: '" + tag + "'",
			Params:  map[string]any{"got": tag, "allowed": u.allowed},
		}}
	}
	return dec(c)
}

func quoteList(tags []string) string {
	quoted := make([]string, len(tags))
	for i, t := range tags {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return strings.Join(quoted, ", ")
}
