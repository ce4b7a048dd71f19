// Package codec provides primitive and derived codecs built on the wirejson
// contracts. Composite codecs are assembled from these via the dsl package.
package codec

import (
	"encoding/json"
	"math"
	"strconv"

	wirejson "github.com/wirejson/wirejson"
	"github.com/wirejson/wirejson/i18n"
)

// String returns the codec for JSON strings.
func String() wirejson.Codec[string] {
	return wirejson.NewCodec[string](
		wirejson.EncoderFunc[string](wirejson.String),
		wirejson.DecoderFunc[string](func(c wirejson.Cursor) (string, error) {
			v, err := c.Node()
			if err != nil {
				return "", err
			}
			s, ok := v.StringValue()
			if !ok {
				return "", typeMismatch(c, v, "string")
			}
			return s, nil
		}),
	)
}

// Bool returns the codec for JSON booleans.
func Bool() wirejson.Codec[bool] {
	return wirejson.NewCodec[bool](
		wirejson.EncoderFunc[bool](wirejson.Bool),
		wirejson.DecoderFunc[bool](func(c wirejson.Cursor) (bool, error) {
			v, err := c.Node()
			if err != nil {
				return false, err
			}
			b, ok := v.BoolValue()
			if !ok {
				return false, typeMismatch(c, v, "bool")
			}
			return b, nil
		}),
	)
}

// Number returns the codec for JSON numbers as literal-preserving json.Number.
func Number() wirejson.Codec[json.Number] {
	return wirejson.NewCodec[json.Number](
		wirejson.EncoderFunc[json.Number](wirejson.Number),
		wirejson.DecoderFunc[json.Number](decodeNumber),
	)
}

// Int returns the codec for integers with integer-only wire semantics:
// fractional or out-of-range literals are rejected.
func Int() wirejson.Codec[int] {
	return wirejson.NewCodec[int](
		wirejson.EncoderFunc[int](func(v int) wirejson.Value { return wirejson.Int(int64(v)) }),
		wirejson.DecoderFunc[int](func(c wirejson.Cursor) (int, error) {
			i, err := decodeInt64(c)
			if err != nil {
				return 0, err
			}
			// int is 32-bit on some platforms; never truncate silently.
			if i < math.MinInt || i > math.MaxInt {
				return 0, wirejson.Issues{wirejson.Issue{
					Path:    c.Path(),
					Code:    wirejson.CodeInvalidType,
					Message: i18n.T(wirejson.CodeInvalidType, map[string]string{"expected": "integer"}),
					Hint:    "integer out of range: " + strconv.FormatInt(i, 10),
					Cause:   strconv.ErrRange,
				}}
			}
			return int(i), nil
		}),
	)
}

// Int64 returns the codec for 64-bit integers.
func Int64() wirejson.Codec[int64] {
	return wirejson.NewCodec[int64](
		wirejson.EncoderFunc[int64](wirejson.Int),
		wirejson.DecoderFunc[int64](decodeInt64),
	)
}

// Float64 returns the codec for JSON numbers as float64, encoded in the
// canonical short form. NaN and infinities encode as null.
func Float64() wirejson.Codec[float64] {
	return wirejson.NewCodec[float64](
		wirejson.EncoderFunc[float64](wirejson.Float),
		wirejson.DecoderFunc[float64](func(c wirejson.Cursor) (float64, error) {
			num, err := decodeNumber(c)
			if err != nil {
				return 0, err
			}
			f, perr := strconv.ParseFloat(num.String(), 64)
			if perr != nil {
				return 0, wirejson.Issues{wirejson.Issue{
					Path:    c.Path(),
					Code:    wirejson.CodeInvalidType,
					Message: i18n.T(wirejson.CodeInvalidType, nil),
					Cause:   perr,
				}}
			}
			return f, nil
		}),
	)
}

func decodeNumber(c wirejson.Cursor) (json.Number, error) {
	v, err := c.Node()
	if err != nil {
		return "", err
	}
	n, ok := v.NumberValue()
	if !ok {
		return "", typeMismatch(c, v, "number")
	}
	return n, nil
}

func decodeInt64(c wirejson.Cursor) (int64, error) {
	num, err := decodeNumber(c)
	if err != nil {
		return 0, err
	}
	i, perr := num.Int64()
	if perr != nil {
		return 0, wirejson.Issues{wirejson.Issue{
			Path:    c.Path(),
			Code:    wirejson.CodeInvalidType,
			Message: i18n.T(wirejson.CodeInvalidType, map[string]string{"expected": "integer"}),
			Hint:    "expected integer, got " + num.String(),
			Cause:   perr,
		}}
	}
	return i, nil
}

func typeMismatch(c wirejson.Cursor, v wirejson.Value, expected string) error {
	got := v.Kind().String()
	return wirejson.Issues{wirejson.Issue{
		Path:    c.Path(),
		Code:    wirejson.CodeInvalidType,
		Message: i18n.T(wirejson.CodeInvalidType, map[string]string{"expected": expected}),
		Hint:    "expected " + expected + ", got " + got,
		Params:  map[string]any{"expected": expected, "got": got},
	}}
}
