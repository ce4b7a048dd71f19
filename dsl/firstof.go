package dsl

import (
	wirejson "github.com/wirejson/wirejson"
)

// FirstOf decodes a closed set without a discriminator: decoders are tried in
// declared order and the first success wins. When all fail, the FIRST
// decoder's error is reported, so order decoders by likelihood. This is a
// degraded mode for wire formats with no stable tag field; prefer Union.
func FirstOf[T any](decoders ...wirejson.Decoder[T]) wirejson.Decoder[T] {
	return wirejson.DecoderFunc[T](func(c wirejson.Cursor) (T, error) {
		var zero T
		if len(decoders) == 0 {
			return zero, wirejson.Issues{wirejson.Issue{
				Path:    c.Path(),
				Code:    wirejson.CodeParseError,
				Message: "no decoders declared",
			}}
		}
		var firstErr error
		for _, d := range decoders {
			v, err := wirejson.As(c, d)
			if err == nil {
				return v, nil
			}
			if firstErr == nil {
				firstErr = err
			}
		}
		return zero, firstErr
	})
}
