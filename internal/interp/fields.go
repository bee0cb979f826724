package interp

import (
	"github.com/kolkov/rawk/internal/runtime"
	"github.com/kolkov/rawk/internal/token"
	"github.com/kolkov/rawk/internal/types"
)

func (ip *Interp) fieldOpts() runtime.FieldSplitOptions {
	opts := runtime.FieldSplitOptions{FS: ip.fs, Paragraph: ip.paragraph}
	if len(ip.fieldWidths) > 0 {
		opts.FieldWidths = ip.fieldWidths
	} else if ip.fpat != "" {
		opts.FPat = ip.fpat
	}
	return opts
}

// setRecord0 installs rec as $0, as freshly read from input: it is
// tagged as a numeric string, since input records participate in
// numeric comparisons when they look like numbers.
func (ip *Interp) setRecord0(rec string) error {
	ip.line = rec
	ip.lineIsStr = false
	return ip.splitFieldsNow()
}

func (ip *Interp) splitFieldsNow() error {
	fields, err := runtime.SplitFields(ip.line, ip.fieldOpts(), ip.regexCache)
	if err != nil {
		return ip.fatalf(token.NoPos, "invalid field separator regex: %v", err)
	}
	ip.fields = fields
	ip.fieldIsStr = make([]bool, len(fields))
	ip.nf = len(fields)
	return nil
}

// getField returns $i. $0 reflects whatever setRecord0/setField tagged
// it as; fields beyond NF read as the empty string without extending
// the field array (only an explicit assignment does that).
func (ip *Interp) getField(i int, pos token.Position) (types.Value, error) {
	if i < 0 {
		return types.Value{}, ip.fatalf(pos, "field index negative: %d", i)
	}
	if i == 0 {
		if ip.lineIsStr {
			return types.Str(ip.line), nil
		}
		return types.NumStr(ip.line), nil
	}
	if i <= ip.nf {
		if ip.fieldIsStr[i-1] {
			return types.Str(ip.fields[i-1]), nil
		}
		return types.NumStr(ip.fields[i-1]), nil
	}
	return types.Str(""), nil
}

// setField writes $i, re-splitting (if i==0) or rebuilding $0 from
// fields (if i>0), mirroring how gawk keeps $0 and the field array in
// sync after either is assigned.
func (ip *Interp) setField(i int, v types.Value, pos token.Position) error {
	if i < 0 {
		return ip.fatalf(pos, "field index negative: %d", i)
	}
	if i == 0 {
		ip.line = ip.toStr(v)
		ip.lineIsStr = v.IsStr()
		return ip.splitFieldsNow()
	}
	ip.ensureFieldCapacity(i)
	ip.fields[i-1] = ip.toStr(v)
	ip.fieldIsStr[i-1] = v.IsStr()
	if i > ip.nf {
		ip.nf = i
	}
	ip.rebuildLine()
	return nil
}

func (ip *Interp) ensureFieldCapacity(n int) {
	for len(ip.fields) < n {
		ip.fields = append(ip.fields, "")
		ip.fieldIsStr = append(ip.fieldIsStr, false)
	}
}

// setNF truncates or extends the field array to n fields and rebuilds
// $0 from the result, per POSIX's "assigning to NF" semantics.
func (ip *Interp) setNF(n int) error {
	if n < 0 {
		n = 0
	}
	if n < len(ip.fields) {
		ip.fields = ip.fields[:n]
		ip.fieldIsStr = ip.fieldIsStr[:n]
	} else {
		ip.ensureFieldCapacity(n)
	}
	ip.nf = n
	ip.rebuildLine()
	return nil
}

func (ip *Interp) rebuildLine() {
	ip.line = runtime.JoinFields(ip.fields[:ip.nf], ip.ofs)
	ip.lineIsStr = false
}

