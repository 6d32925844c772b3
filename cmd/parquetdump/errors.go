package main

import (
	"errors"

	"github.com/mmatczuk/parquetdump/footer"
	"github.com/mmatczuk/parquetdump/format/thriftproto"
	"github.com/mmatczuk/parquetdump/internal/arena"
	"github.com/mmatczuk/parquetdump/internal/codes"
	"github.com/mmatczuk/parquetdump/internal/domtoken"
	"github.com/mmatczuk/parquetdump/internal/metadata"
	"github.com/mmatczuk/parquetdump/internal/render"
	"github.com/mmatczuk/parquetdump/internal/schema"
)

// codeOf maps a plain error from one of the core packages to the
// domain-tagged code original_source would have returned from the
// equivalent C call, so the CLI's single failure line can report "%r" the
// same way parquet_main's cleanup path does. Every other package keeps
// talking in plain errors; this table is the one place that touches
// codes.Code, matching the "only the outward boundary decodes it" rule in
// internal/codes's package doc.
var codeTable = []struct {
	err    error
	domain codes.Domain
	offset int64
}{
	{footer.ErrInvalidFile, codes.Metadata, 1},
	{metadata.ErrInvalidType, codes.Metadata, 2},
	{metadata.ErrInvalidValue, codes.Metadata, 3},
	{schema.ErrInvalidValue, codes.Metadata, 4},
	{domtoken.ErrCapacityOverflow, codes.DOM, 1},
	{render.ErrBufferTooSmall, codes.Render, 1},
	{arena.ErrRequestTooLarge, codes.Arena, 1},
	{arena.ErrOutOfMemory, codes.Arena, 2},
	{arena.ErrInvalidRelease, codes.Arena, 3},
	{thriftproto.ErrBufferOverflow, codes.Thrift, 1},
	{thriftproto.ErrVarintOverflow, codes.Thrift, 2},
	{thriftproto.ErrInvalidValue, codes.Thrift, 3},
}

func codeOf(err error) codes.Code {
	for _, e := range codeTable {
		if errors.Is(err, e.err) {
			return codes.New(e.domain, e.offset)
		}
	}
	return codes.New(codes.CLI, 1)
}

// fatalLine renders a single error the way parquet_main's cleanup path
// reports one: "Something wrong happened; error=%r", with %r decoded back
// to "<domain>#<offset>" by internal/render.
func fatalLine(err error) string {
	c := render.NewContext("Something wrong happened; error=%r", int64(codeOf(err)))
	buf := make([]byte, 128)
	n, rerr := c.Format(buf)
	if rerr != nil {
		return "Something wrong happened; error=" + err.Error()
	}
	return string(buf[:n])
}
