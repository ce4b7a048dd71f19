package wirejson

import "unicode/utf8"

// AppendJSON serializes v in compact canonical form and appends it to dst.
// Output is deterministic: object members are emitted in declared order and
// number literals are written verbatim.
func AppendJSON(dst []byte, v Value) []byte {
	switch v.kind {
	case KindNull:
		return append(dst, "null"...)
	case KindBool:
		if v.b {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case KindNumber:
		if v.lit == "" {
			// zero Number; keep output valid JSON
			return append(dst, '0')
		}
		return append(dst, v.lit...)
	case KindString:
		return appendQuoted(dst, v.lit)
	case KindArray:
		dst = append(dst, '[')
		for i, it := range v.arr {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = AppendJSON(dst, it)
		}
		return append(dst, ']')
	case KindObject:
		dst = append(dst, '{')
		for i, m := range v.obj {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendQuoted(dst, m.Key)
			dst = append(dst, ':')
			dst = AppendJSON(dst, m.Value)
		}
		return append(dst, '}')
	default:
		return append(dst, "null"...)
	}
}

// AppendJSONIndent serializes v with newline/indent formatting, appending to dst.
func AppendJSONIndent(dst []byte, v Value, indent string) []byte {
	return appendIndented(dst, v, indent, 0)
}

func appendIndented(dst []byte, v Value, indent string, depth int) []byte {
	switch v.kind {
	case KindArray:
		if len(v.arr) == 0 {
			return append(dst, "[]"...)
		}
		dst = append(dst, '[')
		for i, it := range v.arr {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendNewlineIndent(dst, indent, depth+1)
			dst = appendIndented(dst, it, indent, depth+1)
		}
		dst = appendNewlineIndent(dst, indent, depth)
		return append(dst, ']')
	case KindObject:
		if len(v.obj) == 0 {
			return append(dst, "{}"...)
		}
		dst = append(dst, '{')
		for i, m := range v.obj {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendNewlineIndent(dst, indent, depth+1)
			dst = appendQuoted(dst, m.Key)
			dst = append(dst, ':', ' ')
			dst = appendIndented(dst, m.Value, indent, depth+1)
		}
		dst = appendNewlineIndent(dst, indent, depth)
		return append(dst, '}')
	default:
		return AppendJSON(dst, v)
	}
}

func appendNewlineIndent(dst []byte, indent string, depth int) []byte {
	dst = append(dst, '\n')
	for i := 0; i < depth; i++ {
		dst = append(dst, indent...)
	}
	return dst
}

// String renders the compact JSON form, mainly for tests and debugging.
func (v Value) String() string { return string(AppendJSON(nil, v)) }

const hexDigits = "0123456789abcdef"

// appendQuoted writes a JSON string token per RFC 8259. Valid UTF-8 passes
// through unescaped; invalid bytes become U+FFFD so the output is always
// well-formed UTF-8; only the characters the grammar requires are escaped.
func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	start := 0
	for i := 0; i < len(s); {
		if c := s[i]; c < utf8.RuneSelf {
			if c >= 0x20 && c != '"' && c != '\\' {
				i++
				continue
			}
			dst = append(dst, s[start:i]...)
			switch c {
			case '"':
				dst = append(dst, '\\', '"')
			case '\\':
				dst = append(dst, '\\', '\\')
			case '\n':
				dst = append(dst, '\\', 'n')
			case '\r':
				dst = append(dst, '\\', 'r')
			case '\t':
				dst = append(dst, '\\', 't')
			case '\b':
				dst = append(dst, '\\', 'b')
			case '\f':
				dst = append(dst, '\\', 'f')
			default:
				dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
			}
			i++
			start = i
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			dst = append(dst, s[start:i]...)
			dst = append(dst, `�`...)
			i++
			start = i
			continue
		}
		i += size
	}
	dst = append(dst, s[start:]...)
	return append(dst, '"')
}
