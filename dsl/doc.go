// Package dsl provides fluent builders for composite codecs: object codecs
// with explicit field bindings, discriminated unions, and the ordered tagless
// fallback. Builders validate their configuration at Build time so
// misregistration fails at startup, not under traffic.
package dsl
