package wirejson

// Package wirejson provides:
//
// - An immutable JSON value tree (ordered object members, literal-preserving numbers)
// - Cursor navigation with JSON Pointer error paths deferred to the terminal decode
// - Per-type Encoder/Decoder contracts composed via explicit combinators (no reflection)
// - Discriminated union dispatch plus an ordered tagless fallback
// - A stable error model via Issues (JSON Pointer, code, message)
//
// Design policy:
// - Keep only public APIs in the root package.
// - Place builders under dsl/, primitive codecs under codec/, and the CLI under cmd/wirejson.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	v, err := wirejson.ParseBytes(data)
//	owner, err := wirejson.As(v.Cursor(), ownerCodec)
//
//	out := wirejson.AppendJSON(nil, ownerCodec.Encode(owner))
