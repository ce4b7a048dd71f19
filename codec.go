package wirejson

// Encoder converts a domain value into a Value. Encoding is total and
// deterministic: the same input always yields the same tree.
type Encoder[T any] interface {
	Encode(v T) Value
}

// EncoderFunc adapts a plain function to Encoder.
type EncoderFunc[T any] func(T) Value

func (f EncoderFunc[T]) Encode(v T) Value { return f(v) }

// Decoder converts the node under a Cursor into a domain value. On failure it
// returns exactly one Issue (wrapped in Issues) carrying the cursor path.
type Decoder[T any] interface {
	Decode(c Cursor) (T, error)
}

// DecoderFunc adapts a plain function to Decoder.
type DecoderFunc[T any] func(Cursor) (T, error)

func (f DecoderFunc[T]) Decode(c Cursor) (T, error) { return f(c) }

// Codec pairs the Encoder and Decoder for one domain type.
type Codec[T any] interface {
	Encoder[T]
	Decoder[T]
}

// NewCodec pairs an encoder and a decoder.
func NewCodec[T any](e Encoder[T], d Decoder[T]) Codec[T] {
	return pairCodec[T]{e: e, d: d}
}

type pairCodec[T any] struct {
	e Encoder[T]
	d Decoder[T]
}

func (p pairCodec[T]) Encode(v T) Value           { return p.e.Encode(v) }
func (p pairCodec[T]) Decode(c Cursor) (T, error) { return p.d.Decode(c) }

// As applies d to the node under c. A pending navigation failure surfaces
// here, with the full accumulated path.
func As[T any](c Cursor, d Decoder[T]) (T, error) {
	if c.err != nil {
		var zero T
		return zero, c.err
	}
	return d.Decode(c)
}

// DecodeBytes parses data into a Value and decodes it with d.
func DecodeBytes[T any](data []byte, d Decoder[T], opts ...ParseOpt) (T, error) {
	v, err := ParseBytes(data, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return As(v.Cursor(), d)
}

// EncodeBytes encodes v with e and serializes the tree in compact form.
func EncodeBytes[T any](e Encoder[T], v T) []byte {
	return AppendJSON(nil, e.Encode(v))
}

// Map lifts Decoder[A] into Decoder[B] via a total function.
func Map[A, B any](d Decoder[A], f func(A) B) Decoder[B] {
	return DecoderFunc[B](func(c Cursor) (B, error) {
		a, err := d.Decode(c)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a), nil
	})
}

// Emap lifts Decoder[A] into Decoder[B] via a refinement that may fail. A
// failure becomes an invalid_format issue at the current path with the
// refinement's message verbatim. Errors that already carry Issues pass
// through untouched so nested refinements keep their own paths.
func Emap[A, B any](d Decoder[A], f func(A) (B, error)) Decoder[B] {
	return DecoderFunc[B](func(c Cursor) (B, error) {
		a, err := d.Decode(c)
		if err != nil {
			var zero B
			return zero, err
		}
		b, err := f(a)
		if err != nil {
			var zero B
			if iss, ok := AsIssues(err); ok {
				return zero, iss
			}
			return zero, Issues{Issue{Path: c.path, Code: CodeInvalidFormat, Message: err.Error(), Cause: err}}
		}
		return b, nil
	})
}

// Contramap lifts Encoder[A] into Encoder[B] via a total pre-transform.
// g must be total; types that cannot guarantee a value for every B violate
// the encoder contract.
func Contramap[A, B any](e Encoder[A], g func(B) A) Encoder[B] {
	return EncoderFunc[B](func(b B) Value { return e.Encode(g(b)) })
}

// Refine pairs Emap and Contramap over an existing codec. Round-trips hold
// when f and g are mutual inverses on the refined domain; that obligation is
// on the author of the pair and verified by the test harness, not here.
func Refine[A, B any](c Codec[A], f func(A) (B, error), g func(B) A) Codec[B] {
	return NewCodec[B](Contramap[A, B](c, g), Emap[A, B](c, f))
}

// At decodes through a chain of object fields before applying d, so deep wire
// structures project onto flat domain fields. Any missing intermediate node
// reports the full chain up to the missing segment.
func At[T any](d Decoder[T], fields ...string) Decoder[T] {
	return DecoderFunc[T](func(c Cursor) (T, error) {
		for _, f := range fields {
			c = c.DownField(f)
		}
		return As(c, d)
	})
}
