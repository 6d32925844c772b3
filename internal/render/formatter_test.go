package render_test

import (
	"testing"

	"github.com/mmatczuk/parquetdump/internal/codes"
	"github.com/mmatczuk/parquetdump/internal/render"
)

func formatOnce(t *testing.T, c *render.Context, bufSize int) (string, int, error) {
	t.Helper()
	buf := make([]byte, bufSize)
	n, err := c.Format(buf)
	return string(buf[:n]), n, err
}

func TestFormatWithoutSubstitutions(t *testing.T) {
	c := render.NewContext("Hello, World!")
	got, n, err := formatOnce(t, c, 32)
	if err != nil || n != 13 || got != "Hello, World!" {
		t.Fatalf("got=%q n=%d err=%v", got, n, err)
	}
	if !c.Done() {
		t.Fatalf("expected context to be done")
	}
}

func TestFormatStringSubstitution(t *testing.T) {
	c := render.NewContext("Hello, %s!", "World")
	got, n, err := formatOnce(t, c, 32)
	if err != nil || n != 13 || got != "Hello, World!" {
		t.Fatalf("got=%q n=%d err=%v", got, n, err)
	}
}

func TestFormatHexSubstitution(t *testing.T) {
	c := render.NewContext("Value: %x", uint64(0x1234abcd01020304))
	got, n, err := formatOnce(t, c, 32)
	want := "Value: 0x1234abcd01020304"
	if err != nil || n != len(want) || got != want {
		t.Fatalf("got=%q n=%d err=%v", got, n, err)
	}
}

func TestFormatDecimalPositive(t *testing.T) {
	c := render.NewContext("Value: %d", int64(123456789))
	got, n, err := formatOnce(t, c, 32)
	want := "Value: 123456789"
	if err != nil || n != len(want) || got != want {
		t.Fatalf("got=%q n=%d err=%v", got, n, err)
	}
}

func TestFormatDecimalNegative(t *testing.T) {
	c := render.NewContext("Value: %d", int64(-123456789))
	got, n, err := formatOnce(t, c, 32)
	want := "Value: -123456789"
	if err != nil || n != len(want) || got != want {
		t.Fatalf("got=%q n=%d err=%v", got, n, err)
	}
}

func TestFormatDecimalInt64Min(t *testing.T) {
	c := render.NewContext("Value: %d", int64(-9223372036854775808))
	got, n, err := formatOnce(t, c, 32)
	want := "Value: -9223372036854775808"
	if err != nil || n != len(want) || got != want {
		t.Fatalf("got=%q n=%d err=%v", got, n, err)
	}
}

func TestFormatIndentSubstitution(t *testing.T) {
	c := render.NewContext("%iabcdef", uint64(4))
	got, n, err := formatOnce(t, c, 32)
	want := "    abcdef"
	if err != nil || n != len(want) || got != want {
		t.Fatalf("got=%q n=%d err=%v", got, n, err)
	}
}

func TestFormatAsciiSubstitution(t *testing.T) {
	c := render.NewContext("ASCII: %a", "Hello, Ślimak!", uint64(15))
	got, n, err := formatOnce(t, c, 32)
	want := "ASCII: Hello, ..limak!"
	if err != nil || n != len(want) || got != want {
		t.Fatalf("got=%q n=%d err=%v", got, n, err)
	}
}

func TestFormatEndlessSubstitution(t *testing.T) {
	c := render.NewContext("Endless: %e", "Hello!", int64(3))
	got, n, err := formatOnce(t, c, 512)
	want := "Endless: Hello!Hello!Hello!"
	if err != nil || n != len(want) || got != want {
		t.Fatalf("got=%q n=%d err=%v", got, n, err)
	}
}

func TestFormatResultSubstitution(t *testing.T) {
	c := render.NewContext("Result: %r", int64(codes.New(codes.Pool, 5)))
	got, n, err := formatOnce(t, c, 64)
	want := "Result: malloc#5"
	if err != nil || n != len(want) || got != want {
		t.Fatalf("got=%q n=%d err=%v", got, n, err)
	}
}

func TestFormatUnknownSubstitution(t *testing.T) {
	c := render.NewContext("Unknown: %z")
	got, n, err := formatOnce(t, c, 32)
	want := "Unknown: %z"
	if err != nil || n != len(want) || got != want {
		t.Fatalf("got=%q n=%d err=%v", got, n, err)
	}
}

func TestFormatPercentEscape(t *testing.T) {
	c := render.NewContext("50%% done%")
	got, n, err := formatOnce(t, c, 32)
	want := "50% done%"
	if err != nil || n != len(want) || got != want {
		t.Fatalf("got=%q n=%d err=%v", got, n, err)
	}
}

func TestFormatOverflowInPlainText(t *testing.T) {
	c := render.NewContext("This is a very long string.")

	got, n, err := formatOnce(t, c, 14)
	if err != render.ErrBufferTooSmall || n != 14 || got != "This is a very" {
		t.Fatalf("round1: got=%q n=%d err=%v", got, n, err)
	}

	got, n, err = formatOnce(t, c, 14)
	if err != nil || n != 13 || got != " long string." {
		t.Fatalf("round2: got=%q n=%d err=%v", got, n, err)
	}
	if !c.Done() {
		t.Fatalf("expected context to be done")
	}
}

func TestFormatOverflowInStringSubstitution(t *testing.T) {
	c := render.NewContext("This is a %s.", "very long string")

	got, n, err := formatOnce(t, c, 14)
	if err != render.ErrBufferTooSmall || n != 14 || got != "This is a very" {
		t.Fatalf("round1: got=%q n=%d err=%v", got, n, err)
	}

	got, n, err = formatOnce(t, c, 14)
	if err != nil || n != 13 || got != " long string." {
		t.Fatalf("round2: got=%q n=%d err=%v", got, n, err)
	}
}

func TestFormatOverflowInHexSubstitution(t *testing.T) {
	c := render.NewContext("Value: %x", uint64(0x1234abcd01020304))

	got, n, err := formatOnce(t, c, 20)
	if err != render.ErrBufferTooSmall || n != 7 || got != "Value: " {
		t.Fatalf("round1: got=%q n=%d err=%v", got, n, err)
	}

	got, n, err = formatOnce(t, c, 20)
	want := "0x1234abcd01020304"
	if err != nil || n != len(want) || got != want {
		t.Fatalf("round2: got=%q n=%d err=%v", got, n, err)
	}
}

func TestFormatOverflowWithTwoArgs(t *testing.T) {
	c := render.NewContext("This is %s and %s.", "ABC", "CDE")

	got, n, err := formatOnce(t, c, 14)
	if err != render.ErrBufferTooSmall || n != 14 || got != "This is ABC an" {
		t.Fatalf("round1: got=%q n=%d err=%v", got, n, err)
	}

	got, n, err = formatOnce(t, c, 14)
	if err != nil || n != 6 || got != "d CDE." {
		t.Fatalf("round2: got=%q n=%d err=%v", got, n, err)
	}
}

func TestFormatOverflowInLongStringSubstitution(t *testing.T) {
	c := render.NewContext("Value: %s", "This is a very long string.")

	got, n, err := formatOnce(t, c, 14)
	if err != render.ErrBufferTooSmall || n != 14 || got != "Value: This is" {
		t.Fatalf("round1: got=%q n=%d err=%v", got, n, err)
	}

	got, n, err = formatOnce(t, c, 14)
	if err != render.ErrBufferTooSmall || n != 14 || got != " a very long s" {
		t.Fatalf("round2: got=%q n=%d err=%v", got, n, err)
	}

	got, n, err = formatOnce(t, c, 14)
	if err != nil || n != 6 || got != "tring." {
		t.Fatalf("round3: got=%q n=%d err=%v", got, n, err)
	}
}

func TestFormatOverflowInLongAsciiSubstitution(t *testing.T) {
	c := render.NewContext("Value: %a", "This is a very long string.", uint64(26))

	got, n, err := formatOnce(t, c, 14)
	if err != render.ErrBufferTooSmall || n != 14 || got != "Value: This is" {
		t.Fatalf("round1: got=%q n=%d err=%v", got, n, err)
	}

	got, n, err = formatOnce(t, c, 14)
	if err != render.ErrBufferTooSmall || n != 14 || got != " a very long s" {
		t.Fatalf("round2: got=%q n=%d err=%v", got, n, err)
	}

	got, n, err = formatOnce(t, c, 14)
	if err != nil || n != 5 || got != "tring" {
		t.Fatalf("round3: got=%q n=%d err=%v", got, n, err)
	}
}
