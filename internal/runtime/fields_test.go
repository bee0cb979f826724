package runtime

import "testing"

func TestSplitFSWhitespace(t *testing.T) {
	cache := NewRegexCache()
	fields, err := SplitFields("  foo bar\tbaz  ", FieldSplitOptions{FS: " "}, cache)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"foo", "bar", "baz"}
	if len(fields) != len(want) {
		t.Fatalf("got %v, want %v", fields, want)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("field %d: got %q want %q", i, fields[i], want[i])
		}
	}
}

func TestSplitFSSingleChar(t *testing.T) {
	cache := NewRegexCache()
	fields, err := SplitFields("a:b:c", FieldSplitOptions{FS: ":"}, cache)
	if err != nil {
		t.Fatal(err)
	}
	if len(fields) != 3 || fields[1] != "b" {
		t.Fatalf("got %v", fields)
	}
}

func TestSplitFSRegex(t *testing.T) {
	cache := NewRegexCache()
	fields, err := SplitFields("a1b22c333d", FieldSplitOptions{FS: "[0-9]+"}, cache)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c", "d"}
	if len(fields) != len(want) {
		t.Fatalf("got %v, want %v", fields, want)
	}
}

func TestSplitFSEmptyPerChar(t *testing.T) {
	cache := NewRegexCache()
	fields, err := SplitFields("abc", FieldSplitOptions{FS: ""}, cache)
	if err != nil {
		t.Fatal(err)
	}
	if len(fields) != 3 || fields[0] != "a" || fields[2] != "c" {
		t.Fatalf("got %v", fields)
	}
}

func TestSplitFieldWidths(t *testing.T) {
	fields := splitFieldWidths("John  Paul  George", []int{4, 6, 6})
	want := []string{"John", "  Paul", "  Geor"}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("field %d: got %q want %q", i, fields[i], want[i])
		}
	}
}

func TestSplitFPat(t *testing.T) {
	cache := NewRegexCache()
	fields, err := SplitFields("a, b,c", FieldSplitOptions{FPat: "[a-z]+"}, cache)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c"}
	if len(fields) != len(want) {
		t.Fatalf("got %v, want %v", fields, want)
	}
}

func TestSplitParagraphEmbeddedNewlines(t *testing.T) {
	cache := NewRegexCache()
	fields, err := SplitFields("a b\nc d", FieldSplitOptions{FS: " ", Paragraph: true}, cache)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c", "d"}
	if len(fields) != len(want) {
		t.Fatalf("got %v, want %v", fields, want)
	}
}

func TestParseFieldWidths(t *testing.T) {
	widths := ParseFieldWidths("3 5:2 4")
	want := []int{3, 2, 4}
	if len(widths) != len(want) {
		t.Fatalf("got %v, want %v", widths, want)
	}
	for i := range want {
		if widths[i] != want[i] {
			t.Errorf("width %d: got %d want %d", i, widths[i], want[i])
		}
	}
}

func TestJoinFields(t *testing.T) {
	got := JoinFields([]string{"a", "b", "c"}, "-")
	if got != "a-b-c" {
		t.Errorf("got %q", got)
	}
}
