package wirejson

import (
	"errors"
	"io"

	"github.com/wirejson/wirejson/i18n"
)

// DupPolicy selects how duplicate object keys in the input are handled.
type DupPolicy int

const (
	// DupError rejects the document with a duplicate_key issue (default).
	DupError DupPolicy = iota
	// DupLastWins keeps the last occurrence, mirroring lenient decoders.
	DupLastWins
)

// ParseOpt carries strictness options for tree building.
type ParseOpt struct {
	// MaxDepth limits container nesting; 0 means unlimited.
	MaxDepth int
	// OnDuplicateKey selects the duplicate-key policy.
	OnDuplicateKey DupPolicy
}

// ParseBytes parses one JSON document into a Value using the current driver.
func ParseBytes(data []byte, opts ...ParseOpt) (Value, error) {
	return ParseSource(getJSONDriver().NewBytes(data), opts...)
}

// ParseReader parses one JSON document from r using the current driver.
func ParseReader(r io.Reader, opts ...ParseOpt) (Value, error) {
	return ParseSource(getJSONDriver().NewReader(r), opts...)
}

// ParseSource builds a Value from an already-opened token Source.
func ParseSource(src Source, opts ...ParseOpt) (Value, error) {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	b := &treeBuilder{src: src, opt: opt}
	tok, err := b.next("")
	if err != nil {
		return Value{}, err
	}
	v, err := b.value(tok, "", 1)
	if err != nil {
		return Value{}, err
	}
	// Reject trailing content after the document.
	if _, err := b.src.NextToken(); !errors.Is(err, io.EOF) {
		if err != nil {
			return Value{}, singleIssue("", CodeParseError, err.Error())
		}
		return Value{}, singleIssue("", CodeParseError, "unexpected trailing content")
	}
	return v, nil
}

type treeBuilder struct {
	src Source
	opt ParseOpt
}

func (b *treeBuilder) next(path string) (Token, error) {
	tok, err := b.src.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Token{}, singleIssue(path, CodeParseError, "unexpected end of input")
		}
		return Token{}, Issues{Issue{Path: path, Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	return tok, nil
}

func (b *treeBuilder) value(tok Token, path string, depth int) (Value, error) {
	switch tok.Kind {
	case TokenNull:
		return Null(), nil
	case TokenBool:
		return Bool(tok.Bool), nil
	case TokenNumber:
		return Value{kind: KindNumber, lit: tok.Number}, nil
	case TokenString:
		return String(tok.String), nil
	case TokenBeginArray:
		if b.opt.MaxDepth > 0 && depth > b.opt.MaxDepth {
			return Value{}, singleIssue(path, CodeMaxDepth, i18n.T(CodeMaxDepth, nil))
		}
		return b.array(path, depth)
	case TokenBeginObject:
		if b.opt.MaxDepth > 0 && depth > b.opt.MaxDepth {
			return Value{}, singleIssue(path, CodeMaxDepth, i18n.T(CodeMaxDepth, nil))
		}
		return b.object(path, depth)
	default:
		return Value{}, singleIssue(path, CodeParseError, "unexpected token")
	}
}

func (b *treeBuilder) array(path string, depth int) (Value, error) {
	var items []Value
	for {
		tok, err := b.next(path)
		if err != nil {
			return Value{}, err
		}
		if tok.Kind == TokenEndArray {
			return Value{kind: KindArray, arr: items}, nil
		}
		it, err := b.value(tok, appendIndex(path, len(items)), depth+1)
		if err != nil {
			return Value{}, err
		}
		items = append(items, it)
	}
}

func (b *treeBuilder) object(path string, depth int) (Value, error) {
	var members []Member
	for {
		tok, err := b.next(path)
		if err != nil {
			return Value{}, err
		}
		if tok.Kind == TokenEndObject {
			return Value{kind: KindObject, obj: members}, nil
		}
		if tok.Kind != TokenKey {
			return Value{}, singleIssue(path, CodeParseError, "expected object key")
		}
		key := tok.String
		keyPath := appendKey(path, key)
		vt, err := b.next(keyPath)
		if err != nil {
			return Value{}, err
		}
		mv, err := b.value(vt, keyPath, depth+1)
		if err != nil {
			return Value{}, err
		}
		if idx := memberIndex(members, key); idx >= 0 {
			if b.opt.OnDuplicateKey == DupError {
				return Value{}, Issues{Issue{
					Path:    keyPath,
					Code:    CodeDuplicateKey,
					Message: i18n.T(CodeDuplicateKey, nil),
					Params:  map[string]any{"key": key},
				}}
			}
			members[idx].Value = mv
			continue
		}
		members = append(members, Member{Key: key, Value: mv})
	}
}

func memberIndex(ms []Member, key string) int {
	for i := range ms {
		if ms[i].Key == key {
			return i
		}
	}
	return -1
}
