package codec

import (
	"errors"
	"time"

	wirejson "github.com/wirejson/wirejson"
)

// TimeRFC3339 returns a codec between RFC3339 strings and time.Time. Encoding
// normalizes to UTC and the canonical RFC3339Nano form, so round-trips hold
// for UTC values.
func TimeRFC3339() wirejson.Codec[time.Time] {
	return wirejson.Refine[string, time.Time](
		String(),
		func(s string) (time.Time, error) {
			t, err := parseRFC3339(s)
			if err != nil {
				return time.Time{}, errors.New("invalid RFC3339 time: " + err.Error())
			}
			return t, nil
		},
		formatRFC3339Canonical,
	)
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}
