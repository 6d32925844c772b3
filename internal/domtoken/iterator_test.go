package domtoken

import (
	"testing"

	"github.com/mmatczuk/parquetdump/format"
	"github.com/mmatczuk/parquetdump/internal/metadata"
)

// drain pulls every token out of it across as many Next calls as needed.
func drain(t *testing.T, it *Iterator) []Token {
	t.Helper()
	var all []Token
	for !it.Done() {
		batch, err := it.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		all = append(all, batch...)
	}
	return all
}

func ops(tokens []Token) []Op {
	out := make([]Op, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Op
	}
	return out
}

func assertOps(t *testing.T, got []Token, want []Op) {
	t.Helper()
	gotOps := ops(got)
	if len(gotOps) != len(want) {
		t.Fatalf("op count mismatch: got %d want %d\ngot=%v\nwant=%v", len(gotOps), len(want), gotOps, want)
	}
	for i := range want {
		if gotOps[i] != want[i] {
			t.Fatalf("op[%d]: got %v want %v\ngot=%v\nwant=%v", i, gotOps[i], want[i], gotOps, want)
		}
	}
}

// fieldOps is the atomic KEY_START/LITERAL/KEY_END/VALUE_START preamble,
// the field's own value ops, then VALUE_END — one present field's worth of
// tokens.
func fieldOps(valOps ...Op) []Op {
	return append([]Op{OpKeyStart, OpLiteral, OpKeyEnd, OpValueStart}, append(valOps, OpValueEnd)...)
}

// emptyMetadataOps is every field left at its sentinel: every field is
// absent, so the struct emits nothing but its own boundary tokens.
func emptyMetadataOps() []Op {
	return []Op{OpStructStart, OpStructEnd}
}

func TestIteratorEmptyMetadata(t *testing.T) {
	m := &metadata.Metadata{Version: metadata.UnknownI32, NumRows: metadata.UnknownI64}
	it := NewIterator(m)
	got := drain(t, it)
	assertOps(t, got, emptyMetadataOps())
}

func TestIteratorScalarFieldValues(t *testing.T) {
	m := &metadata.Metadata{Version: 1, NumRows: 42}
	it := NewIterator(m)
	got := drain(t, it)

	// Find each VALUE_START immediately followed by a LITERAL, keyed by the
	// field name carried on the preceding KEY_START's LITERAL.
	var version, numRows *Token
	var lastKeyName string
	for i := 0; i < len(got); i++ {
		tok := got[i]
		if tok.Op == OpKeyStart && i+1 < len(got) && got[i+1].Op == OpLiteral {
			lastKeyName = got[i+1].Text
		}
		if tok.Op == OpValueStart && i+1 < len(got) && got[i+1].Op == OpLiteral {
			switch lastKeyName {
			case "version":
				v := got[i+1]
				version = &v
			case "num_rows":
				v := got[i+1]
				numRows = &v
			}
		}
	}
	if version == nil || version.I32 != 1 {
		t.Fatalf("want version literal 1 got=%+v", version)
	}
	if numRows == nil || numRows.I64 != 42 {
		t.Fatalf("want num_rows literal 42 got=%+v", numRows)
	}
}

func TestIteratorSchemaArrayElements(t *testing.T) {
	name := "col"
	m := &metadata.Metadata{
		Version: metadata.UnknownI32,
		NumRows: metadata.UnknownI64,
		Schemas: []*metadata.SchemaElement{
			{DataType: format.DataTypeInt32, TypeLength: metadata.UnknownI32, RepetitionType: format.RepetitionRequired, Name: &name, NumChildren: metadata.UnknownI32, ConvertedType: format.ConvertedTypeNone},
		},
	}
	it := NewIterator(m)
	got := drain(t, it)

	var sawIndexStart, sawSchemaElementStart bool
	for _, tok := range got {
		if tok.Op == OpIndexStart && tok.I32 == 0 {
			sawIndexStart = true
		}
		if tok.Op == OpStructStart && tok.Text == "schema_element" {
			sawSchemaElementStart = true
		}
	}
	if !sawIndexStart {
		t.Fatalf("expected an INDEX_START(0) token, got=%v", ops(got))
	}
	if !sawSchemaElementStart {
		t.Fatalf("expected a schema_element STRUCT_START token, got=%v", ops(got))
	}
}

func TestIteratorTokenBufferResume(t *testing.T) {
	m := &metadata.Metadata{Version: 7, NumRows: metadata.UnknownI64}
	// A tight token capacity forces dump_field's atomic 4-token preamble to
	// wait for a call with enough room, exercising the restore-on-overflow
	// path in Next.
	it := NewIteratorSize(m, 4, DefaultQueueCapacity)

	first, err := it.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) == 0 {
		t.Fatalf("want a non-empty first batch")
	}
	if it.Done() {
		t.Fatalf("iterator should not be done after a partial batch")
	}

	var calls int
	all := append([]Token{}, first...)
	for !it.Done() {
		batch, err := it.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		all = append(all, batch...)
		calls++
		if calls > 100 {
			t.Fatalf("iterator did not converge")
		}
	}
	if calls < 2 {
		t.Fatalf("want the tight capacity to force multiple resumed calls, got=%d", calls)
	}

	want := append([]Op{OpStructStart}, fieldOps(OpLiteral)...) // version, the only present field
	want = append(want, OpStructEnd)
	assertOps(t, all, want)
}

func TestIteratorCapacityOverflow(t *testing.T) {
	// A metadata with every field absent pushes only its own STRUCT_END
	// closer, which a capacity-1 queue still has room for; version=7 forces
	// one more push (the version field) to actually exceed the capacity.
	m := &metadata.Metadata{Version: 7, NumRows: metadata.UnknownI64}
	it := NewIteratorSize(m, DefaultTokenCapacity, 1)
	if _, err := it.Next(); err != ErrCapacityOverflow {
		t.Fatalf("want ErrCapacityOverflow got=%v", err)
	}
}
