package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			if exp := data["expected"]; exp != "" {
				return "型が不正です: " + exp + " が必要です"
			}
			return "型が不正です"
		case "required":
			if key := data["key"]; key != "" {
				return "必須プロパティ " + key + " が不足しています"
			}
			return "必須プロパティが不足しています"
		case "invalid_format":
			return "書式が不正です"
		case "discriminator_missing":
			return "判別フィールドがありません"
		case "discriminator_unknown":
			return "未知の判別値です"
		case "duplicate_key":
			return "キーが重複しています"
		case "parse_error":
			return "解析エラー"
		case "max_depth":
			return "ネストが深すぎます"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			if exp := data["expected"]; exp != "" {
				return "invalid type: expected " + exp
			}
			return "invalid type"
		case "required":
			if key := data["key"]; key != "" {
				return "required property " + key + " missing"
			}
			return "required property missing"
		case "invalid_format":
			return "invalid format"
		case "discriminator_missing":
			return "discriminator missing"
		case "discriminator_unknown":
			return "unknown discriminator value"
		case "duplicate_key":
			return "duplicate key"
		case "parse_error":
			return "parse error"
		case "max_depth":
			return "nesting too deep"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
