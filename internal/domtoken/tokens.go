// Package domtoken exposes a parsed Metadata tree as a restartable stream of
// DOM tokens: O(1) work per token, a fixed memory ceiling (a bounded work
// stack and a bounded per-batch token buffer), and no recursion.
//
// Grounded on _examples/original_source/src/parquet.iter.c (the work-stack
// token emitter, dump_field/dump_array/dump_index, and the enum name
// tables) and parquet.iter.h (the token/op/type vocabulary), adapted from a
// C function-pointer-and-void-ctx work queue to a Go stack of closures.
package domtoken

// Op identifies a DOM token's operation.
type Op int

const (
	OpStructStart Op = iota
	OpStructEnd
	OpArrayStart
	OpArrayEnd
	OpKeyStart
	OpLiteral
	OpKeyEnd
	OpValueStart
	OpValueEnd
	OpIndexStart
	OpIndexEnd
)

// ValueType tags the payload of a LITERAL, KEY_START or VALUE_START token.
type ValueType int

const (
	TypeNone ValueType = iota
	TypeI32
	TypeI64
	TypeText
)

// Token is one emitted DOM event. Only the fields relevant to Op/Type are
// meaningful; e.g. a STRUCT_START token only sets Text (the struct's name).
type Token struct {
	Op   Op
	Type ValueType
	I32  int32
	I64  int64
	Text string
}

func structStart(name string) Token { return Token{Op: OpStructStart, Type: TypeText, Text: name} }
func structEnd(name string) Token   { return Token{Op: OpStructEnd, Type: TypeText, Text: name} }
func arrayStart() Token             { return Token{Op: OpArrayStart} }
func arrayEnd() Token               { return Token{Op: OpArrayEnd} }
func keyStart(typ ValueType) Token  { return Token{Op: OpKeyStart, Type: typ} }
func keyEnd() Token                 { return Token{Op: OpKeyEnd} }
func valueStart(typ ValueType) Token { return Token{Op: OpValueStart, Type: typ} }
func valueEnd() Token                { return Token{Op: OpValueEnd} }
func indexStart(i int32) Token       { return Token{Op: OpIndexStart, Type: TypeI32, I32: i} }
func indexEnd() Token                { return Token{Op: OpIndexEnd} }

func literalText(s string) Token { return Token{Op: OpLiteral, Type: TypeText, Text: s} }
func literalI32(v int32) Token   { return Token{Op: OpLiteral, Type: TypeI32, I32: v} }
func literalI64(v int64) Token   { return Token{Op: OpLiteral, Type: TypeI64, I64: v} }

// enumLiteral renders an enumeration value as TEXT when name resolves it, or
// falls back to I32 with the raw ordinal, matching the iterator's
// "enumerations are emitted as TEXT when the value maps to a known name,
// else as I32" rule.
func enumLiteral(name string, ok bool, raw int32) Token {
	if ok {
		return literalText(name)
	}
	return literalI32(raw)
}
