package wirejson

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"sync"

	gojson "github.com/goccy/go-json"
)

// TokenKind enumerates JSON token kinds produced by a Source.
type TokenKind int

const (
	TokenBeginObject TokenKind = iota
	TokenEndObject
	TokenBeginArray
	TokenEndArray
	TokenKey
	TokenString
	TokenNumber
	TokenBool
	TokenNull
)

// Token describes one token in the input stream. Number is kept as literal
// text so the tree preserves exactly what was on the wire.
type Token struct {
	Kind   TokenKind
	String string // key/string payload
	Number string // number literal text
	Bool   bool
}

// Source yields a token stream for one JSON document.
type Source interface {
	NextToken() (Token, error)
}

// JSONDriver converts JSON input into a Source via a pluggable SPI. The
// default implementation is backed by goccy/go-json and may be swapped with
// SetJSONDriver.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = goJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default goccy/go-json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = goJSONDriver{}
	jsonDriverMu.Unlock()
}

func getJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// StdlibDriver returns a JSONDriver backed by encoding/json, for environments
// that want to avoid the goccy decoder.
func StdlibDriver() JSONDriver { return stdlibDriver{} }

// ---- goccy/go-json driver (default) ----

type goJSONDriver struct{}

func (goJSONDriver) NewReader(r io.Reader) Source {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()
	return &goJSONSource{dec: dec}
}
func (goJSONDriver) NewBytes(b []byte) Source {
	return goJSONDriver{}.NewReader(bytes.NewReader(b))
}
func (goJSONDriver) Name() string { return "go-json" }

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type goJSONSource struct {
	dec   *gojson.Decoder
	stack []frame
}

func (s *goJSONSource) NextToken() (Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return Token{}, err
	}
	switch v := tok.(type) {
	case gojson.Delim:
		return delimToken(&s.stack, rune(v)), nil
	case string:
		return stringToken(&s.stack, v), nil
	case gojson.Number:
		noteValue(&s.stack)
		return Token{Kind: TokenNumber, Number: string(v)}, nil
	case float64:
		noteValue(&s.stack)
		return Token{Kind: TokenNumber, Number: strconv.FormatFloat(v, 'g', -1, 64)}, nil
	case bool:
		noteValue(&s.stack)
		return Token{Kind: TokenBool, Bool: v}, nil
	case nil:
		noteValue(&s.stack)
		return Token{Kind: TokenNull}, nil
	default:
		noteValue(&s.stack)
		return Token{Kind: TokenNull}, nil
	}
}

// ---- encoding/json driver ----

type stdlibDriver struct{}

func (stdlibDriver) NewReader(r io.Reader) Source {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &stdlibSource{dec: dec}
}
func (stdlibDriver) NewBytes(b []byte) Source {
	return stdlibDriver{}.NewReader(bytes.NewReader(b))
}
func (stdlibDriver) Name() string { return "encoding/json" }

type stdlibSource struct {
	dec   *json.Decoder
	stack []frame
}

func (s *stdlibSource) NextToken() (Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return Token{}, err
	}
	switch v := tok.(type) {
	case json.Delim:
		return delimToken(&s.stack, rune(v)), nil
	case string:
		return stringToken(&s.stack, v), nil
	case json.Number:
		noteValue(&s.stack)
		return Token{Kind: TokenNumber, Number: string(v)}, nil
	case float64:
		noteValue(&s.stack)
		return Token{Kind: TokenNumber, Number: strconv.FormatFloat(v, 'g', -1, 64)}, nil
	case bool:
		noteValue(&s.stack)
		return Token{Kind: TokenBool, Bool: v}, nil
	case nil:
		noteValue(&s.stack)
		return Token{Kind: TokenNull}, nil
	default:
		noteValue(&s.stack)
		return Token{Kind: TokenNull}, nil
	}
}

// ---- shared container-stack bookkeeping ----

// Decoder tokens do not distinguish object keys from string values; a stack of
// open containers tracks which position the next string occupies.

func delimToken(stack *[]frame, d rune) Token {
	switch d {
	case '{':
		*stack = append(*stack, frame{kind: kindObject, expectingKey: true})
		return Token{Kind: TokenBeginObject}
	case '}':
		popFrame(stack)
		noteValue(stack)
		return Token{Kind: TokenEndObject}
	case '[':
		*stack = append(*stack, frame{kind: kindArray})
		return Token{Kind: TokenBeginArray}
	default: // ']'
		popFrame(stack)
		noteValue(stack)
		return Token{Kind: TokenEndArray}
	}
}

func stringToken(stack *[]frame, s string) Token {
	if n := len(*stack); n > 0 {
		top := &(*stack)[n-1]
		if top.kind == kindObject && top.expectingKey {
			top.expectingKey = false
			return Token{Kind: TokenKey, String: s}
		}
	}
	noteValue(stack)
	return Token{Kind: TokenString, String: s}
}

// noteValue marks that a full value was consumed, so an enclosing object
// expects a key next.
func noteValue(stack *[]frame) {
	if n := len(*stack); n > 0 {
		top := &(*stack)[n-1]
		if top.kind == kindObject {
			top.expectingKey = true
		}
	}
}

func popFrame(stack *[]frame) {
	if n := len(*stack); n > 0 {
		*stack = (*stack)[:n-1]
	}
}
