package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("invalid_type", nil); msg == "invalid_type" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("invalid_type", nil); msg == "invalid type" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
	if msg := T("discriminator_unknown", nil); msg != "unknown discriminator value" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestTranslator_EmbedsMetadata(t *testing.T) {
	if msg := T("invalid_type", map[string]string{"expected": "string"}); msg != "invalid type: expected string" {
		t.Fatalf("expected metadata in message, got %q", msg)
	}
	if msg := T("required", map[string]string{"key": "name"}); msg != "required property name missing" {
		t.Fatalf("expected key in message, got %q", msg)
	}
	// Without metadata the plain dictionary entry is used.
	if msg := T("invalid_type", nil); msg != "invalid type" {
		t.Fatalf("unexpected plain message: %q", msg)
	}

	SetLanguage("ja")
	defer SetLanguage("en")
	if msg := T("invalid_type", map[string]string{"expected": "object"}); msg != "型が不正です: object が必要です" {
		t.Fatalf("unexpected japanese message: %q", msg)
	}
}

func TestTranslator_UnknownCodePassesThrough(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("unknown codes should fall back to the code itself, got %q", msg)
	}
}

func TestTranslator_CustomTranslator(t *testing.T) {
	SetTranslator(constTranslator("boom"))
	defer SetTranslator(nil)
	if msg := T("invalid_type", nil); msg != "boom" {
		t.Fatalf("custom translator not used, got %q", msg)
	}
}

type constTranslator string

func (c constTranslator) Message(string, map[string]string) string { return string(c) }
