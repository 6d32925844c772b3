package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mmatczuk/parquetdump/format"
	"github.com/mmatczuk/parquetdump/internal/metadata"
)

// TestRenderTableSummary checks the table-mode output contains the expected
// identifying substrings rather than an exact byte match: tablewriter owns
// the border/padding layout, and this port only controls cell content.
func TestRenderTableSummary(t *testing.T) {
	name := "id"
	path := "id"
	createdBy := "parquetdump-test"

	m := &metadata.Metadata{
		Version: 2,
		NumRows: 3,
		Schemas: []*metadata.SchemaElement{
			{
				DataType:       format.DataTypeInt64,
				TypeLength:     metadata.UnknownI32,
				RepetitionType: format.RepetitionRequired,
				Name:           &name,
				NumChildren:    metadata.UnknownI32,
				ConvertedType:  format.ConvertedTypeNone,
			},
		},
		RowGroups: []*metadata.RowGroup{
			{
				NumRows:             3,
				TotalByteSize:       100,
				FileOffset:          4,
				TotalCompressedSize: 80,
				Columns: []*metadata.ColumnChunk{
					{
						FileOffset: 4,
						Meta: &metadata.ColumnMeta{
							DataType:              format.DataTypeInt64,
							PathInSchema:          []string{path},
							CompressionCodec:      format.CompressionSnappy,
							NumValues:             3,
							TotalUncompressedSize: 120,
							TotalCompressedSize:   80,
							DataPageOffset:        4,
							IndexPageOffset:       metadata.UnknownI64,
							DictionaryPageOffset:  metadata.UnknownI64,
						},
					},
				},
			},
		},
		CreatedBy: &createdBy,
	}

	var buf bytes.Buffer
	if err := renderTable(&buf, m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := buf.String()
	for _, want := range []string{
		"version=2", "num_rows=3", "parquetdump-test",
		"id",
		"row_group[0]",
		"SNAPPY",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("want output to contain %q, got=\n%s", want, got)
		}
	}
}

func TestRenderTableNilColumnMeta(t *testing.T) {
	m := &metadata.Metadata{
		Version: metadata.UnknownI32,
		NumRows: metadata.UnknownI64,
		RowGroups: []*metadata.RowGroup{
			{NumRows: 1, TotalByteSize: 1, FileOffset: 0, TotalCompressedSize: 1,
				Columns: []*metadata.ColumnChunk{{FileOffset: 0, Meta: nil}}},
		},
	}

	var buf bytes.Buffer
	if err := renderTable(&buf, m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
