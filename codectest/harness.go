// Package codectest provides the shared test harness for codec contracts:
// generated round-trip checks and literal JSON fixtures. It is imported only
// from _test files.
package codectest

import (
	"math/rand"
	"reflect"
	"testing"

	wirejson "github.com/wirejson/wirejson"
)

// seed is fixed so generated cases are reproducible across runs.
const seed = 1

// RoundTrip asserts decode(encode(x)) == x for n generated domain values.
func RoundTrip[T any](t *testing.T, c wirejson.Codec[T], gen func(*rand.Rand) T, n int) {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	for i := 0; i < n; i++ {
		x := gen(r)
		data := wirejson.EncodeBytes(c, x)
		got, err := wirejson.DecodeBytes(data, c)
		if err != nil {
			t.Fatalf("round-trip decode failed for %#v: %v (wire: %s)", x, err, data)
		}
		if !reflect.DeepEqual(got, x) {
			t.Fatalf("round-trip mismatch: got %#v, want %#v (wire: %s)", got, x, data)
		}
	}
}

// DecodeFixture asserts that a literal JSON fixture decodes to want.
func DecodeFixture[T any](t *testing.T, d wirejson.Decoder[T], src string, want T) {
	t.Helper()
	got, err := wirejson.DecodeBytes([]byte(src), d)
	if err != nil {
		t.Fatalf("fixture %s: unexpected err: %v", src, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("fixture %s: got %#v, want %#v", src, got, want)
	}
}

// EncodeFixture asserts byte-exact canonical output for a domain value.
func EncodeFixture[T any](t *testing.T, e wirejson.Encoder[T], v T, want string) {
	t.Helper()
	got := string(wirejson.EncodeBytes(e, v))
	if got != want {
		t.Fatalf("encode fixture: got %s, want %s", got, want)
	}
}

// DecodeFailure asserts that decoding src fails with the given issue code at
// the given JSON Pointer path, and returns the issue for further checks.
func DecodeFailure[T any](t *testing.T, d wirejson.Decoder[T], src, code, path string) wirejson.Issue {
	t.Helper()
	_, err := wirejson.DecodeBytes([]byte(src), d)
	if err == nil {
		t.Fatalf("fixture %s: expected %s, got success", src, code)
	}
	iss, ok := wirejson.AsIssues(err)
	if !ok || len(iss) == 0 {
		t.Fatalf("fixture %s: expected Issues, got %v", src, err)
	}
	if len(iss) != 1 {
		t.Fatalf("fixture %s: expected exactly one issue, got %d: %v", src, len(iss), iss)
	}
	if iss[0].Code != code {
		t.Fatalf("fixture %s: expected code %s, got %s (%v)", src, code, iss[0].Code, iss[0])
	}
	if iss[0].Path != path {
		t.Fatalf("fixture %s: expected path %s, got %s (%v)", src, path, iss[0].Path, iss[0])
	}
	return iss[0]
}
