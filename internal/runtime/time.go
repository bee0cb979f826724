package runtime

import (
	"fmt"
	"strings"
	"time"
)

// Systime returns the current time as a Unix timestamp, matching
// gawk's systime().
func Systime() int64 {
	return time.Now().Unix()
}

// Mktime converts a "YYYY MM DD HH MM SS [DST]" spec (gawk's mktime
// argument format) into a Unix timestamp, or -1 if spec is malformed.
func Mktime(spec string) int64 {
	fields := strings.Fields(spec)
	if len(fields) < 6 {
		return -1
	}
	var parts [6]int
	for i := 0; i < 6; i++ {
		n, err := fmt.Sscanf(fields[i], "%d", &parts[i])
		if err != nil || n != 1 {
			return -1
		}
	}
	year, month, day, hour, min, sec := parts[0], parts[1], parts[2], parts[3], parts[4], parts[5]
	t := time.Date(year, time.Month(month), day, hour, min, sec, 0, time.Local)
	return t.Unix()
}

// Strftime formats ts according to a POSIX strftime-style layout,
// translating each "%x" directive by hand since Go's time.Format uses
// reference-time layouts rather than printf-style directives.
func Strftime(layout string, ts int64) string {
	t := time.Unix(ts, 0)
	if isUTC {
		t = t.UTC()
	}
	var out strings.Builder
	for i := 0; i < len(layout); i++ {
		c := layout[i]
		if c != '%' || i+1 >= len(layout) {
			out.WriteByte(c)
			continue
		}
		i++
		switch layout[i] {
		case 'Y':
			fmt.Fprintf(&out, "%04d", t.Year())
		case 'y':
			fmt.Fprintf(&out, "%02d", t.Year()%100)
		case 'm':
			fmt.Fprintf(&out, "%02d", int(t.Month()))
		case 'd':
			fmt.Fprintf(&out, "%02d", t.Day())
		case 'e':
			fmt.Fprintf(&out, "%2d", t.Day())
		case 'H':
			fmt.Fprintf(&out, "%02d", t.Hour())
		case 'I':
			h := t.Hour() % 12
			if h == 0 {
				h = 12
			}
			fmt.Fprintf(&out, "%02d", h)
		case 'M':
			fmt.Fprintf(&out, "%02d", t.Minute())
		case 'S':
			fmt.Fprintf(&out, "%02d", t.Second())
		case 'p':
			if t.Hour() < 12 {
				out.WriteString("AM")
			} else {
				out.WriteString("PM")
			}
		case 'A':
			out.WriteString(t.Weekday().String())
		case 'a':
			out.WriteString(t.Weekday().String()[:3])
		case 'B':
			out.WriteString(t.Month().String())
		case 'b', 'h':
			out.WriteString(t.Month().String()[:3])
		case 'j':
			fmt.Fprintf(&out, "%03d", t.YearDay())
		case 'Z':
			name, _ := t.Zone()
			out.WriteString(name)
		case 'z':
			_, offset := t.Zone()
			sign := "+"
			if offset < 0 {
				sign = "-"
				offset = -offset
			}
			fmt.Fprintf(&out, "%s%02d%02d", sign, offset/3600, (offset%3600)/60)
		case 'n':
			out.WriteByte('\n')
		case 't':
			out.WriteByte('\t')
		case '%':
			out.WriteByte('%')
		case 'T':
			fmt.Fprintf(&out, "%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
		case 'D':
			fmt.Fprintf(&out, "%02d/%02d/%02d", int(t.Month()), t.Day(), t.Year()%100)
		case 'F':
			fmt.Fprintf(&out, "%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
		case 'u':
			wd := int(t.Weekday())
			if wd == 0 {
				wd = 7
			}
			fmt.Fprintf(&out, "%d", wd)
		case 'w':
			fmt.Fprintf(&out, "%d", int(t.Weekday()))
		case 'C':
			fmt.Fprintf(&out, "%02d", t.Year()/100)
		case 'G':
			y, _ := t.ISOWeek()
			fmt.Fprintf(&out, "%04d", y)
		case 'V':
			_, w := t.ISOWeek()
			fmt.Fprintf(&out, "%02d", w)
		default:
			out.WriteByte('%')
			out.WriteByte(layout[i])
		}
	}
	return out.String()
}

// isUTC is a package-level override for tests; strftime normally uses
// local time, matching gawk's default.
var isUTC = false
