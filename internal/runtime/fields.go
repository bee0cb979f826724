package runtime

import (
	"strconv"
	"strings"
)

// FieldSplitOptions configures how a record is split into fields.
// Priority when more than one is set follows gawk: FieldWidths takes
// precedence over FPat, which takes precedence over FS.
type FieldSplitOptions struct {
	FS          string
	FieldWidths []int
	FPat        string
	Paragraph   bool // RS == "" : embedded newlines are always separators
}

// SplitFields splits record into fields according to opts.
func SplitFields(record string, opts FieldSplitOptions, cache *RegexCache) ([]string, error) {
	if len(opts.FieldWidths) > 0 {
		return splitFieldWidths(record, opts.FieldWidths), nil
	}

	if opts.FPat != "" {
		return splitFPat(record, opts.FPat, cache)
	}

	if !opts.Paragraph {
		return splitFS(record, opts.FS, cache)
	}

	// Paragraph mode: split first on embedded newlines, then each line
	// by FS, concatenating the results. A blank line never occurs inside
	// a paragraph record (that's what delimits paragraphs), but a
	// record can still contain internal newlines from multi-line fields.
	var fields []string
	for _, line := range strings.Split(record, "\n") {
		lineFields, err := splitFS(line, opts.FS, cache)
		if err != nil {
			return nil, err
		}
		fields = append(fields, lineFields...)
	}
	return fields, nil
}

func splitFieldWidths(record string, widths []int) []string {
	fields := make([]string, 0, len(widths))
	pos := 0
	runes := []rune(record)
	for _, w := range widths {
		if pos >= len(runes) {
			fields = append(fields, "")
			continue
		}
		end := pos + w
		if end > len(runes) {
			end = len(runes)
		}
		fields = append(fields, string(runes[pos:end]))
		pos = end
	}
	return fields
}

func splitFPat(record, fpat string, cache *RegexCache) ([]string, error) {
	re, err := cache.Get(fpat, false)
	if err != nil {
		return nil, err
	}
	if record == "" {
		return nil, nil
	}
	var fields []string
	matches := re.FindAllStringIndex(record, -1)
	for _, m := range matches {
		fields = append(fields, record[m[0]:m[1]])
	}
	return fields, nil
}

func splitFS(record, fs string, cache *RegexCache) ([]string, error) {
	if record == "" {
		return nil, nil
	}

	switch {
	case fs == " ":
		// Default whitespace splitting: leading/trailing whitespace is
		// stripped and runs of space/tab/newline separate fields.
		return strings.Fields(record), nil

	case fs == "":
		// Each character is its own field (gawk extension for FS="").
		runes := []rune(record)
		fields := make([]string, len(runes))
		for i, r := range runes {
			fields[i] = string(r)
		}
		return fields, nil

	case len([]rune(fs)) == 1:
		return strings.Split(record, fs), nil

	default:
		re, err := cache.Get(fs, false)
		if err != nil {
			return nil, err
		}
		return re.Split(record, -1), nil
	}
}

// JoinFields rebuilds a record from fields using ofs, mirroring what
// assigning to NF or a field does to $0.
func JoinFields(fields []string, ofs string) string {
	return strings.Join(fields, ofs)
}

// ParseFieldWidths parses a FIELDWIDTHS value ("3 5 2" or with skip
// prefixes like "3:5 2") into field widths in characters, ignoring skip counts
// (gawk's "skip:width" form) since records here are already trimmed of
// the record separator before splitting.
func ParseFieldWidths(spec string) []int {
	var widths []int
	for _, tok := range strings.Fields(spec) {
		if idx := strings.IndexByte(tok, ':'); idx >= 0 {
			tok = tok[idx+1:]
		}
		if n, err := strconv.Atoi(tok); err == nil && n > 0 {
			widths = append(widths, n)
		}
	}
	return widths
}
