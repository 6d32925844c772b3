package main

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/mmatczuk/parquetdump/internal/domtoken"
	"github.com/mmatczuk/parquetdump/internal/metadata"
)

func assertGolden(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	edits := myers.ComputeEdits(span.URIFromPath("want.txt"), want, got)
	diff := fmt.Sprint(gotextdiff.ToUnified("want.txt", "got.txt", want, edits))
	t.Errorf("\n%s", diff)
}

// TestRenderTreeEmptyMetadata drives an all-sentinel Metadata, where every
// field is absent: the tree must contain nothing but the root struct's own
// boundary lines, per the rule that an absent field never gets a KEY_START.
func TestRenderTreeEmptyMetadata(t *testing.T) {
	m := &metadata.Metadata{Version: metadata.UnknownI32, NumRows: metadata.UnknownI64}
	it := domtoken.NewIterator(m)

	var buf bytes.Buffer
	if err := renderTree(&buf, it, 4096, "%i%s-start|%i%s-end"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "file_metadata-start\n" +
		"file_metadata-end\n"
	assertGolden(t, want, buf.String())
}

// TestRenderTreeScalarValues sets only version and num_rows; schema,
// row_groups and created_by stay at their zero values (nil/absent) and so
// must not appear.
func TestRenderTreeScalarValues(t *testing.T) {
	m := &metadata.Metadata{Version: 7, NumRows: 100}
	it := domtoken.NewIterator(m)

	var buf bytes.Buffer
	if err := renderTree(&buf, it, 4096, "%i%s-start|%i%s-end"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "file_metadata-start\n" +
		"  version:\n" +
		"  7\n" +
		"  num_rows:\n" +
		"  100\n" +
		"file_metadata-end\n"
	assertGolden(t, want, buf.String())
}

// TestRenderTreeTinyBuffer drives the scalar-values metadata through a
// 4-byte output buffer (enough to hold this template's largest single
// atomic directive output, the 3-digit %d value "100") so most token
// writes hit ErrBufferTooSmall and must resume, exercising the same retry
// path parquet_main's dom_flush loop covers. A buffer smaller than the
// largest atomic directive's output would never make progress on it; that is
// a property of the formatter's atomic/resumable split (see internal/render's
// package doc), not a bug.
func TestRenderTreeTinyBuffer(t *testing.T) {
	m := &metadata.Metadata{Version: 7, NumRows: 100}
	it := domtoken.NewIterator(m)

	var buf bytes.Buffer
	if err := renderTree(&buf, it, 4, "%i%s-start|%i%s-end"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "file_metadata-start\n" +
		"  version:\n" +
		"  7\n" +
		"  num_rows:\n" +
		"  100\n" +
		"file_metadata-end\n"
	assertGolden(t, want, buf.String())
}

func TestRenderTreeRejectsMalformedTemplate(t *testing.T) {
	m := &metadata.Metadata{Version: metadata.UnknownI32, NumRows: metadata.UnknownI64}
	it := domtoken.NewIterator(m)

	var buf bytes.Buffer
	if err := renderTree(&buf, it, 4096, "no-pipe-here"); err == nil {
		t.Fatalf("want an error for a template without '|'")
	}
}
