package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mmatczuk/parquetdump/footer"
	"github.com/mmatczuk/parquetdump/internal/domtoken"
	"github.com/mmatczuk/parquetdump/internal/render"
)

const indentWidth = 2

// treeState carries the renderer's position across a token stream: the
// current nesting depth and whether the last OpKeyStart is still open
// (a LITERAL under an open key is the field's name, not its value).
type treeState struct {
	indent int
	inKey  bool
}

// renderTree drains it's token batches and writes one line of text per
// token through buf-sized render.Context calls, the way parquet_main drives
// dom_write over iterator.tokens between stdout_flush calls. Unlike the
// source's single dom_state threaded across every writef, this port gives
// each token its own render.Context and fully drains it before the next
// token, since domtoken already batches at the token level.
func renderTree(w io.Writer, it *domtoken.Iterator, bufSize int, template string) error {
	start, end, err := splitTemplate(template)
	if err != nil {
		return err
	}

	st := &treeState{}
	buf := make([]byte, bufSize)

	for !it.Done() {
		batch, err := it.Next()
		if err != nil {
			return err
		}
		for _, tok := range batch {
			if err := renderToken(w, buf, st, tok, start, end); err != nil {
				return err
			}
		}
	}
	return nil
}

func splitTemplate(template string) (start, end string, err error) {
	parts := strings.SplitN(template, "|", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("cmd: --template must contain exactly one '|' separating the struct-start and struct-end formats")
	}
	return parts[0], parts[1], nil
}

func renderToken(w io.Writer, buf []byte, st *treeState, tok domtoken.Token, startTmpl, endTmpl string) error {
	indentSpaces := uint64(st.indent * indentWidth)

	switch tok.Op {
	case domtoken.OpStructStart:
		if err := drain(w, buf, render.NewContext(startTmpl+"\n", indentSpaces, tok.Text)); err != nil {
			return err
		}
		st.indent++
	case domtoken.OpStructEnd:
		st.indent--
		return drain(w, buf, render.NewContext(endTmpl+"\n", uint64(st.indent*indentWidth), tok.Text))
	case domtoken.OpArrayStart:
		if err := drain(w, buf, render.NewContext("%iarray-start\n", indentSpaces)); err != nil {
			return err
		}
		st.indent++
	case domtoken.OpArrayEnd:
		st.indent--
		return drain(w, buf, render.NewContext("%iarray-end\n", uint64(st.indent*indentWidth)))
	case domtoken.OpKeyStart:
		st.inKey = true
	case domtoken.OpKeyEnd:
		st.inKey = false
	case domtoken.OpValueStart, domtoken.OpValueEnd:
		// no output: the value's own tokens (literal, struct, array) carry it
	case domtoken.OpIndexStart:
		return drain(w, buf, render.NewContext("%i[%d]:\n", indentSpaces, int64(tok.I32)))
	case domtoken.OpIndexEnd:
		// content already closed itself with a trailing newline
	case domtoken.OpLiteral:
		if st.inKey {
			return drain(w, buf, render.NewContext("%i%s:\n", indentSpaces, tok.Text))
		}
		return drainLiteralValue(w, buf, indentSpaces, tok)
	}
	return nil
}

func drainLiteralValue(w io.Writer, buf []byte, indentSpaces uint64, tok domtoken.Token) error {
	switch tok.Type {
	case domtoken.TypeI32:
		return drain(w, buf, render.NewContext("%i%d\n", indentSpaces, int64(tok.I32)))
	case domtoken.TypeI64:
		return drain(w, buf, render.NewContext("%i%d\n", indentSpaces, tok.I64))
	default:
		return drain(w, buf, render.NewContext("%i%s\n", indentSpaces, tok.Text))
	}
}

// drain fully renders c into w through buf, retrying as many times as
// ErrBufferTooSmall requires.
func drain(w io.Writer, buf []byte, c *render.Context) error {
	for {
		n, err := c.Format(buf)
		if n > 0 {
			if werr := footer.Drain(w, buf[:n]); werr != nil {
				return werr
			}
		}
		if err == nil {
			return nil
		}
		if !errors.Is(err, render.ErrBufferTooSmall) {
			return err
		}
	}
}
