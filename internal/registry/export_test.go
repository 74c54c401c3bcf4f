package registry

import (
	"bytes"
	"testing"
)

func TestExportImportRoundTrip(t *testing.T) {
	src, _ := newTestStore(t)
	mustAdd(t, src, Record{Name: "foo", Dest: "tools/foo", Kind: KindGit, Source: "https://example.org/foo.git"})
	mustAdd(t, src, Record{Name: "bar", Dest: "bin/bar", Kind: KindBinary, Source: "https://example.org/bar", Checksum: "abc"})

	var buf bytes.Buffer
	if err := src.Export(&buf); err != nil {
		t.Fatalf("Export: %v", err)
	}

	dst, _ := newTestStore(t)
	added, err := dst.Import(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if added != 2 {
		t.Fatalf("expected 2 added, got %d", added)
	}

	// Importing again is a no-op.
	added, err = dst.Import(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("second Import: %v", err)
	}
	if added != 0 {
		t.Fatalf("expected idempotent import, added %d", added)
	}

	want, _ := src.List()
	got, err := dst.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("record %d mismatch: %+v != %+v", i, got[i], want[i])
		}
	}
}
