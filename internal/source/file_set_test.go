package source

import "testing"

func TestFileSetAddIsIdempotent(t *testing.T) {
	fs := NewFileSet()
	a := fs.Add("./stdlib/core.iona")
	b := fs.Add("./stdlib/core.iona")
	if a != b {
		t.Fatalf("same path must keep its FileID")
	}
	if fs.Path(a) != "./stdlib/core.iona" {
		t.Fatalf("Path = %q", fs.Path(a))
	}
	if fs.Len() != 1 {
		t.Fatalf("Len = %d", fs.Len())
	}
}

func TestFileSetUnknownID(t *testing.T) {
	fs := NewFileSet()
	if fs.Path(NoFileID) != "" {
		t.Fatalf("NoFileID must resolve to empty path")
	}
	if fs.Path(FileID(42)) != "" {
		t.Fatalf("out-of-range FileID must resolve to empty path")
	}
}

func TestNoSpanNeverResolves(t *testing.T) {
	fs := NewFileSet()
	fs.Add("first.iona")
	if s := NoSpan(); s.File != NoFileID {
		t.Fatalf("NoSpan file = %v, want NoFileID", s.File)
	}
	if fs.Path(NoSpan().File) != "" {
		t.Fatalf("NoSpan must not resolve to a registered file")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	got := a.Cover(b)
	if got.Start != 2 || got.End != 8 {
		t.Fatalf("Cover = %+v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if a.Cover(other) != a {
		t.Fatalf("Cover must ignore spans from other files")
	}
}
