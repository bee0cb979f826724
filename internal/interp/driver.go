package interp

import (
	"io"
	"os"
	"strconv"

	"github.com/kolkov/rawk/internal/ast"
	"github.com/kolkov/rawk/internal/runtime"
	"github.com/kolkov/rawk/internal/token"
	"github.com/kolkov/rawk/internal/types"
)

// processAllInput runs the main record loop: read a record from the
// (possibly multi-file) main input stream, run the rules against it,
// and handle next/nextfile, until input is exhausted or exit fires.
func (ip *Interp) processAllInput() error {
	for {
		rec, ok, err := ip.readMainRecord()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := ip.setRecord0(rec); err != nil {
			return err
		}
		ip.nr++
		ip.fnr++
		if err := ip.runRulesForRecord(); err != nil {
			if err == errNextFile {
				if cerr := ip.closeMainFile(); cerr != nil {
					return cerr
				}
				continue
			}
			return err
		}
	}
}

func (ip *Interp) runRulesForRecord() error {
	for i, rule := range ip.prog.Rules {
		matched, err := ip.ruleMatches(i, rule)
		if err != nil {
			return err
		}
		if !matched {
			continue
		}
		var actErr error
		if rule.Action == nil {
			actErr = ip.printDefault()
		} else {
			actErr = ip.execBlock(rule.Action)
		}
		if actErr != nil {
			if actErr == errNext {
				return nil
			}
			return actErr
		}
	}
	return nil
}

func (ip *Interp) printDefault() error {
	_, err := io.WriteString(ip.output, ip.line+ip.ors)
	return err
}

func (ip *Interp) ruleMatches(i int, rule *ast.Rule) (bool, error) {
	if rule.Pattern == nil {
		return true, nil
	}
	if cx, ok := rule.Pattern.(*ast.CommaExpr); ok {
		return ip.rangeMatches(i, cx)
	}
	v, err := ip.eval(rule.Pattern)
	if err != nil {
		return false, err
	}
	return v.AsBool(), nil
}

func (ip *Interp) rangeMatches(i int, cx *ast.CommaExpr) (bool, error) {
	if !ip.rangeActive[i] {
		v, err := ip.eval(cx.Left)
		if err != nil {
			return false, err
		}
		if !v.AsBool() {
			return false, nil
		}
		ip.rangeActive[i] = true
		v2, err := ip.eval(cx.Right)
		if err != nil {
			return false, err
		}
		if v2.AsBool() {
			ip.rangeActive[i] = false
		}
		return true, nil
	}
	v2, err := ip.eval(cx.Right)
	if err != nil {
		return false, err
	}
	if v2.AsBool() {
		ip.rangeActive[i] = false
	}
	return true, nil
}

// readMainRecord is the single source of main-input records, used both
// by the record-loop and by bare getline (which reads from the exact
// same stream and file sequence).
func (ip *Interp) readMainRecord() (string, bool, error) {
	for {
		if ip.mi.cur == nil {
			ok, err := ip.advanceMainFile()
			if err != nil {
				return "", false, err
			}
			if !ok {
				return "", false, nil
			}
		}
		rec, ok, err := ip.mi.cur.ReadRecord(ip.rs)
		if err != nil {
			return "", false, ip.fatalf(token.NoPos, "error reading input: %v", err)
		}
		if ok {
			return rec, true, nil
		}
		if err := ip.closeMainFile(); err != nil {
			return "", false, err
		}
	}
}

func (ip *Interp) defaultInput() io.Reader {
	return ip.opts.DefaultInput
}

func (ip *Interp) advanceMainFile() (bool, error) {
	for {
		if ip.mi.argIdx >= ip.argc {
			if !ip.mi.usedAnyFile && !ip.mi.triedDefault {
				ip.mi.triedDefault = true
				r := ip.defaultInput()
				if r == nil {
					return false, nil
				}
				return ip.openMainSource("", r, nil)
			}
			return false, nil
		}
		idx := ip.mi.argIdx
		ip.mi.argIdx++
		if idx == 0 {
			continue
		}
		tok := ip.argv.Get(strconv.Itoa(idx)).AsStr(ip.convfmt)
		if tok == "" {
			continue
		}
		if name, val, ok := splitAssignment(tok); ok {
			if err := ip.setVar(name, types.NumStr(unescapeAssignValue(val)), token.NoPos); err != nil {
				return false, err
			}
			continue
		}
		ip.mi.usedAnyFile = true
		if tok == "-" || tok == "/dev/stdin" {
			r := ip.defaultInput()
			if r == nil {
				r = os.Stdin
			}
			return ip.openMainSource(tok, r, nil)
		}
		f, err := os.Open(tok)
		if err != nil {
			return false, ip.fatalf(token.NoPos, "can't open file %s", tok)
		}
		return ip.openMainSource(tok, f, f)
	}
}

func (ip *Interp) openMainSource(name string, r io.Reader, closer io.Closer) (bool, error) {
	rr, err := runtime.NewRecordReader(r, ip.regexCache)
	if err != nil {
		return false, ip.fatalf(token.NoPos, "can't read %s: %v", name, err)
	}
	ip.filename = name
	ip.fnr = 0
	ip.mi.cur = rr
	ip.mi.closer = closer
	ip.mi.opened = true
	for i := range ip.rangeActive {
		ip.rangeActive[i] = false
	}
	if err := ip.runBlocks(ip.prog.BeginFile); err != nil {
		return false, err
	}
	return true, nil
}

func (ip *Interp) closeMainFile() error {
	if !ip.mi.opened {
		return nil
	}
	err := ip.runBlocks(ip.prog.EndFile)
	if ip.mi.closer != nil {
		ip.mi.closer.Close()
	}
	ip.mi.cur = nil
	ip.mi.closer = nil
	ip.mi.opened = false
	for i := range ip.rangeActive {
		ip.rangeActive[i] = false
	}
	return err
}
