package codes_test

import (
	"testing"

	"github.com/mmatczuk/parquetdump/internal/codes"
)

func TestNewAndDecode(t *testing.T) {
	c := codes.New(codes.Thrift, 5)
	domain, offset, ok := c.Decode()
	if !ok {
		t.Fatalf("expected a known code")
	}
	if domain != codes.Thrift {
		t.Errorf("domain: want=%v got=%v", codes.Thrift, domain)
	}
	if offset != 5 {
		t.Errorf("offset: want=5 got=%d", offset)
	}
	if got := c.String(); got != "thrift#5" {
		t.Errorf("String: want=thrift#5 got=%s", got)
	}
}

func TestDecodeSystemError(t *testing.T) {
	if _, _, ok := codes.Code(-1).Decode(); ok {
		t.Fatalf("-1 should not decode to a known domain")
	}
	if got := codes.Code(-1).String(); got != "unknown" {
		t.Fatalf("want=unknown got=%s", got)
	}
}

func TestDecodeUnknownError(t *testing.T) {
	if got := codes.Code(-9999).String(); got != "unknown" {
		t.Fatalf("want=unknown got=%s", got)
	}
}

func TestAllDomainsRoundTrip(t *testing.T) {
	domains := []codes.Domain{codes.Thrift, codes.Pool, codes.Metadata, codes.DOM, codes.Render, codes.Arena, codes.CLI}
	for _, d := range domains {
		c := codes.New(d, 3)
		got, offset, ok := c.Decode()
		if !ok || got != d || offset != 3 {
			t.Errorf("domain %v: round trip failed (got=%v offset=%d ok=%v)", d, got, offset, ok)
		}
	}
}
