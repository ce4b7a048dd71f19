package wirejson_test

import (
	"testing"

	wirejson "github.com/wirejson/wirejson"
	"github.com/wirejson/wirejson/codec"
)

func mustParse(t *testing.T, src string) wirejson.Value {
	t.Helper()
	v, err := wirejson.ParseBytes([]byte(src))
	if err != nil {
		t.Fatalf("parse %s: %v", src, err)
	}
	return v
}

func TestCursor_DownFieldChain(t *testing.T) {
	v := mustParse(t, `{"a":{"b":{"c":"deep"}}}`)
	got, err := wirejson.As(v.Cursor().DownField("a").DownField("b").DownField("c"), codec.String())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "deep" {
		t.Fatalf("got %q", got)
	}
}

func TestCursor_NavigationIsDeferred(t *testing.T) {
	v := mustParse(t, `{"a":{}}`)
	// No step fails in place; the terminal decode reports the full chain.
	c := v.Cursor().DownField("a").DownField("b").DownField("c")
	if c.Path() != "/a/b/c" {
		t.Fatalf("path should accumulate past the failure, got %s", c.Path())
	}
	_, err := wirejson.As(c, codec.String())
	if err == nil {
		t.Fatalf("expected deferred failure")
	}
	iss, _ := wirejson.AsIssues(err)
	if iss[0].Code != wirejson.CodeRequired {
		t.Fatalf("expected required, got %v", iss[0])
	}
	if iss[0].Path != "/a/b" {
		t.Fatalf("error should name the missing segment, got %s", iss[0].Path)
	}
}

func TestCursor_DownFieldOnNonObject(t *testing.T) {
	v := mustParse(t, `{"a":42}`)
	_, err := wirejson.As(v.Cursor().DownField("a").DownField("b"), codec.String())
	iss, ok := wirejson.AsIssues(err)
	if !ok || iss[0].Code != wirejson.CodeInvalidType {
		t.Fatalf("expected invalid_type, got %v", err)
	}
	if iss[0].Path != "/a" {
		t.Fatalf("error should point at the non-object node, got %s", iss[0].Path)
	}
	if iss[0].Params["got"] != "number" {
		t.Fatalf("expected got=number, got %v", iss[0].Params)
	}
}

func TestCursor_Index(t *testing.T) {
	v := mustParse(t, `{"xs":["a","b"]}`)
	got, err := wirejson.As(v.Cursor().DownField("xs").Index(1), codec.String())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "b" {
		t.Fatalf("got %q", got)
	}

	_, err = wirejson.As(v.Cursor().DownField("xs").Index(5), codec.String())
	iss, ok := wirejson.AsIssues(err)
	if !ok || iss[0].Code != wirejson.CodeRequired || iss[0].Path != "/xs/5" {
		t.Fatalf("expected required at /xs/5, got %v", err)
	}
}

func TestCursor_PointerEscaping(t *testing.T) {
	v := mustParse(t, `{"a/b":{"c~d":1}}`)
	c := v.Cursor().DownField("a/b").DownField("c~d")
	if c.Path() != "/a~1b/c~0d" {
		t.Fatalf("expected RFC 6901 escaping, got %s", c.Path())
	}
	if _, err := wirejson.As(c, codec.Int()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
