package runtime

import (
	"io"
	"strings"
)

// RecordReader splits a single input stream into records according to
// the record separator RS, which AWK programs may change (even mid file,
// via BEGIN or the main rules) before reading the next record.
//
// The whole stream is buffered up front. AWK's RS can be a regular
// expression of unbounded width, which rules out incremental
// byte-at-a-time scanning without look-ahead bookkeeping that a
// from-scratch interpreter doesn't need: buffering keeps the record,
// paragraph, and regex splitting paths symmetric and simple.
type RecordReader struct {
	data  string
	pos   int
	cache *RegexCache
}

// NewRecordReader drains r and returns a reader over its content.
func NewRecordReader(r io.Reader, cache *RegexCache) (*RecordReader, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &RecordReader{data: string(b), cache: cache}, nil
}

// Done reports whether all input has been consumed.
func (rr *RecordReader) Done() bool {
	return rr.pos >= len(rr.data)
}

// ReadRecord returns the next record using separator rs, and whether a
// record was available at all.
func (rr *RecordReader) ReadRecord(rs string) (string, bool, error) {
	if rr.pos >= len(rr.data) {
		return "", false, nil
	}

	switch {
	case rs == "":
		return rr.readParagraph(), true, nil
	case len(rs) == 1:
		return rr.readSingleByte(rs[0]), true, nil
	default:
		return rr.readMultiByte(rs)
	}
}

func (rr *RecordReader) readSingleByte(sep byte) string {
	rest := rr.data[rr.pos:]
	if idx := strings.IndexByte(rest, sep); idx >= 0 {
		rec := rest[:idx]
		rr.pos += idx + 1
		return rec
	}
	rr.pos = len(rr.data)
	return rest
}

func (rr *RecordReader) readMultiByte(rs string) (string, bool, error) {
	re, err := rr.cache.Get(rs, false)
	if err != nil {
		return "", false, err
	}
	rest := rr.data[rr.pos:]
	if m := re.FindStringIndex(rest); m != nil {
		rec := rest[:m[0]]
		rr.pos += m[1]
		if m[0] == m[1] {
			// Zero-width separator match: always make forward progress.
			rr.pos++
		}
		return rec, true, nil
	}
	rr.pos = len(rr.data)
	return rest, true, nil
}

// readParagraph implements RS="" semantics: records are separated by one
// or more blank lines, leading blank lines before the first record are
// skipped, and a trailing newline on the last record is stripped.
func (rr *RecordReader) readParagraph() string {
	// Skip leading blank lines.
	for rr.pos < len(rr.data) && rr.data[rr.pos] == '\n' {
		rr.pos++
	}
	if rr.pos >= len(rr.data) {
		return ""
	}

	rest := rr.data[rr.pos:]
	sep := "\n\n"
	idx := strings.Index(rest, sep)
	if idx < 0 {
		rr.pos = len(rr.data)
		return strings.TrimRight(rest, "\n")
	}

	rec := rest[:idx]
	rr.pos += idx
	// Consume the run of blank lines that separates paragraphs.
	for rr.pos < len(rr.data) && rr.data[rr.pos] == '\n' {
		rr.pos++
	}
	return rec
}
