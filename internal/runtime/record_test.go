package runtime

import (
	"strings"
	"testing"
)

func TestRecordReaderSingleByte(t *testing.T) {
	rr, err := NewRecordReader(strings.NewReader("a\nb\nc\n"), NewRegexCache())
	if err != nil {
		t.Fatal(err)
	}
	var recs []string
	for !rr.Done() {
		rec, ok, err := rr.ReadRecord("\n")
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			break
		}
		recs = append(recs, rec)
	}
	want := []string{"a", "b", "c"}
	if len(recs) != len(want) {
		t.Fatalf("got %v, want %v", recs, want)
	}
	for i := range want {
		if recs[i] != want[i] {
			t.Errorf("record %d: got %q want %q", i, recs[i], want[i])
		}
	}
}

func TestRecordReaderNoTrailingSeparator(t *testing.T) {
	rr, err := NewRecordReader(strings.NewReader("a\nb"), NewRegexCache())
	if err != nil {
		t.Fatal(err)
	}
	rec1, _, _ := rr.ReadRecord("\n")
	rec2, _, _ := rr.ReadRecord("\n")
	if rec1 != "a" || rec2 != "b" {
		t.Fatalf("got %q, %q", rec1, rec2)
	}
	if !rr.Done() {
		t.Error("expected Done after final record")
	}
}

func TestRecordReaderMultiByteRegex(t *testing.T) {
	rr, err := NewRecordReader(strings.NewReader("a123b456c"), NewRegexCache())
	if err != nil {
		t.Fatal(err)
	}
	rec1, _, err := rr.ReadRecord("[0-9]+")
	if err != nil {
		t.Fatal(err)
	}
	rec2, _, _ := rr.ReadRecord("[0-9]+")
	rec3, _, _ := rr.ReadRecord("[0-9]+")
	if rec1 != "a" || rec2 != "b" || rec3 != "c" {
		t.Fatalf("got %q, %q, %q", rec1, rec2, rec3)
	}
}

func TestRecordReaderParagraphMode(t *testing.T) {
	rr, err := NewRecordReader(strings.NewReader("\n\nfirst line\nsecond line\n\n\nthird\n"), NewRegexCache())
	if err != nil {
		t.Fatal(err)
	}
	rec1, _, _ := rr.ReadRecord("")
	rec2, _, _ := rr.ReadRecord("")
	if rec1 != "first line\nsecond line" {
		t.Errorf("rec1 = %q", rec1)
	}
	if rec2 != "third" {
		t.Errorf("rec2 = %q", rec2)
	}
	if !rr.Done() {
		t.Error("expected Done after last paragraph")
	}
}
