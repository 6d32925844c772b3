package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mmatczuk/parquetdump/footer"
	"github.com/mmatczuk/parquetdump/internal/arena"
	"github.com/mmatczuk/parquetdump/internal/domtoken"
	"github.com/mmatczuk/parquetdump/internal/metadata"
	"github.com/mmatczuk/parquetdump/internal/schema"
)

// arenaStep and arenaLimit size the metadata parser's scratch allocator:
// a 64 KiB step (the block pool's largest size class) and a generous
// cumulative budget, since a single footer is the whole of this process's
// lifetime.
const (
	arenaStep  = 64 << 10
	arenaLimit = 64 << 20
)

// InspectCmd is the CLI's only command: locate, parse and render one
// Parquet file's footer.
type InspectCmd struct {
	File       string `arg:"" type:"existingfile" help:"Path to the Parquet file to inspect."`
	Mode       string `enum:"tree,table" default:"tree" help:"Rendering mode: tree (token stream) or table (summary)."`
	BufferSize int    `name:"buffer-size" default:"4096" help:"Size, in bytes, of the bounded output buffer the formatter drains through."`
	Template   string `name:"template" default:"%i%s-start|%i%s-end" help:"struct-start|struct-end templates the tree renderer uses (each taking indent, name; a trailing newline is always appended)."`
}

// fileSource adapts an *os.File to footer.ByteSource.
type fileSource struct {
	f    *os.File
	size int64
}

func (s *fileSource) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	return s.f.ReadAt(p, off)
}

func (s *fileSource) Size() int64 { return s.size }

func (c *InspectCmd) Run() error {
	if c.BufferSize <= 0 {
		return fmt.Errorf("cmd: --buffer-size must be positive")
	}

	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("cmd: opening %s: %w", c.File, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("cmd: stat %s: %w", c.File, err)
	}

	pool := arena.NewPool()
	src := &fileSource{f: f, size: info.Size()}

	ft, err := footer.Locate(context.Background(), src, pool)
	if err != nil {
		return err
	}
	defer ft.Release()

	a := arena.New(pool, arenaStep, arenaLimit)
	defer a.Destroy()

	m, err := metadata.Parse(a, ft.Bytes)
	if err != nil {
		return err
	}

	switch c.Mode {
	case "table":
		return renderTable(os.Stdout, m)
	default:
		it := domtoken.NewIterator(m)
		return renderTree(os.Stdout, it, c.BufferSize, c.Template)
	}
}

// materializedSchema returns the schema tree for table mode, or nil (with a
// nil error) if the footer carried no schema at all, which a present but
// empty file_metadata.schema list can legitimately mean.
func materializedSchema(m *metadata.Metadata) (*schema.Node, error) {
	if len(m.Schemas) == 0 {
		return nil, nil
	}
	return schema.Materialize(m.Schemas)
}
