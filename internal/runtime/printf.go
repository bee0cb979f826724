package runtime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kolkov/rawk/internal/types"
)

// Sprintf implements AWK's printf/sprintf formatting. It walks the
// format string itself (rather than handing the whole thing to
// fmt.Sprintf) because AWK's conversion specifiers only partially
// overlap with Go's: %c takes either a string's first character or a
// number treated as a codepoint, %i is a synonym for %d, and a bare
// specifier consumes exactly one AWK value regardless of its dynamic
// type. Each specifier, once isolated, is handed to fmt.Sprintf to do
// the actual numeric formatting.
func Sprintf(format string, args []types.Value) string {
	var out strings.Builder
	argi := 0
	next := func() types.Value {
		if argi < len(args) {
			v := args[argi]
			argi++
			return v
		}
		return types.Str("")
	}

	i := 0
	for i < len(format) {
		c := format[i]
		if c != '%' {
			out.WriteByte(c)
			i++
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			out.WriteByte('%')
			i += 2
			continue
		}

		spec, consumed := parseSpec(format[i:])
		if spec == nil {
			out.WriteByte(c)
			i++
			continue
		}
		i += consumed

		width := spec.width
		if spec.widthStar {
			width = int(next().AsNum())
		}
		prec := spec.prec
		if spec.precStar {
			prec = int(next().AsNum())
		}

		out.WriteString(formatOne(spec, width, prec, spec.precStar || spec.prec >= 0, next))
	}
	return out.String()
}

type formatSpec struct {
	flags     string
	width     int
	widthStar bool
	prec      int
	precStar  bool
	verb      byte
}

// parseSpec parses a single %-conversion starting at s[0]=='%'. Returns
// nil if s does not contain a recognized specifier.
func parseSpec(s string) (*formatSpec, int) {
	i := 1 // skip '%'
	spec := &formatSpec{prec: -1}

	for i < len(s) && strings.IndexByte("-+ 0#", s[i]) >= 0 {
		spec.flags += string(s[i])
		i++
	}

	if i < len(s) && s[i] == '*' {
		spec.widthStar = true
		i++
	} else {
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i > start {
			spec.width, _ = strconv.Atoi(s[start:i])
		}
	}

	if i < len(s) && s[i] == '.' {
		i++
		if i < len(s) && s[i] == '*' {
			spec.precStar = true
			i++
		} else {
			start := i
			for i < len(s) && s[i] >= '0' && s[i] <= '9' {
				i++
			}
			if i > start {
				spec.prec, _ = strconv.Atoi(s[start:i])
			} else {
				spec.prec = 0
			}
		}
	}

	if i >= len(s) {
		return nil, 1
	}
	spec.verb = s[i]
	i++
	return spec, i
}

func formatOne(spec *formatSpec, width, prec int, hasPrec bool, next func() types.Value) string {
	goFmt := "%" + spec.flags
	if spec.widthStar {
		if width < 0 {
			goFmt += "-"
			width = -width
		}
		goFmt += strconv.Itoa(width)
	} else if spec.width != 0 {
		goFmt += strconv.Itoa(spec.width)
	}
	if hasPrec {
		goFmt += "." + strconv.Itoa(prec)
	}

	switch spec.verb {
	case 'd', 'i':
		return fmt.Sprintf(goFmt+"d", int64(next().AsNum()))
	case 'o':
		return fmt.Sprintf(goFmt+"o", uint64(int64(next().AsNum())))
	case 'x':
		return fmt.Sprintf(goFmt+"x", uint64(int64(next().AsNum())))
	case 'X':
		return fmt.Sprintf(goFmt+"X", uint64(int64(next().AsNum())))
	case 'u':
		return fmt.Sprintf(goFmt+"d", uint64(int64(next().AsNum())))
	case 'c':
		v := next()
		if v.IsNum() {
			return fmt.Sprintf(goFmt+"c", rune(int64(v.AsNum())))
		}
		s := v.AsStr("%.6g")
		if s == "" {
			return fmt.Sprintf(goFmt+"s", "")
		}
		r := []rune(s)[0]
		return fmt.Sprintf(goFmt+"c", r)
	case 's':
		return fmt.Sprintf(goFmt+"s", next().AsStr("%.6g"))
	case 'e':
		return fmt.Sprintf(goFmt+"e", next().AsNum())
	case 'E':
		return fmt.Sprintf(goFmt+"E", next().AsNum())
	case 'f', 'F':
		return fmt.Sprintf(goFmt+"f", next().AsNum())
	case 'g':
		return fmt.Sprintf(goFmt+"g", next().AsNum())
	case 'G':
		return fmt.Sprintf(goFmt+"G", next().AsNum())
	default:
		return "%" + string(spec.verb)
	}
}
