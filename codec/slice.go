package codec

import (
	wirejson "github.com/wirejson/wirejson"
)

// Slice returns the codec for an ordered JSON array of elem values. Element
// decode failures carry the element index in the path (e.g. /items/2).
func Slice[U any](elem wirejson.Codec[U]) wirejson.Codec[[]U] {
	return wirejson.NewCodec[[]U](
		wirejson.EncoderFunc[[]U](func(vs []U) wirejson.Value {
			items := make([]wirejson.Value, len(vs))
			for i, v := range vs {
				items[i] = elem.Encode(v)
			}
			return wirejson.Array(items...)
		}),
		wirejson.DecoderFunc[[]U](func(c wirejson.Cursor) ([]U, error) {
			v, err := c.Node()
			if err != nil {
				return nil, err
			}
			if v.Kind() != wirejson.KindArray {
				return nil, typeMismatch(c, v, "array")
			}
			n := v.Len()
			out := make([]U, 0, n)
			for i := 0; i < n; i++ {
				u, err := wirejson.As(c.Index(i), elem)
				if err != nil {
					return nil, err
				}
				out = append(out, u)
			}
			return out, nil
		}),
	)
}
