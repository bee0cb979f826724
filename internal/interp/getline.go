package interp

import (
	"github.com/kolkov/rawk/internal/ast"
	"github.com/kolkov/rawk/internal/types"
)

// evalGetline implements all six getline forms. Each form updates a
// different subset of NR/FNR/$0/NF/target-var, which is the one place
// this interpreter deliberately departs from the teacher's VM (which
// bumped NR and FNR uniformly for every form): POSIX only credits NR
// and FNR to the forms that actually read from the main input stream.
//
//	getline            - main input; sets $0, NF, NR, FNR
//	getline var        - main input; sets var,       NR, FNR
//	getline < file     - file;        sets $0, NF
//	getline var < file - file;        sets var
//	cmd | getline      - command;     sets $0, NF, NR
//	cmd | getline var  - command;     sets var,       NR
//
// Return value: 1 on success, 0 on end of input, -1 on error opening
// the source (a missing file or an unstartable command).
func (ip *Interp) evalGetline(n *ast.GetlineExpr) (types.Value, error) {
	switch {
	case n.Command != nil:
		return ip.getlineFrom(n, sourcePipe)
	case n.File != nil:
		return ip.getlineFrom(n, sourceFile)
	default:
		return ip.getlineMain(n)
	}
}

type getlineSource int

const (
	sourceFile getlineSource = iota
	sourcePipe
)

func (ip *Interp) getlineMain(n *ast.GetlineExpr) (types.Value, error) {
	rec, ok, err := ip.readMainRecord()
	if err != nil {
		return types.Value{}, err
	}
	if !ok {
		return types.Num(0), nil
	}
	ip.nr++
	ip.fnr++
	if err := ip.storeGetlineResult(n.Target, rec); err != nil {
		return types.Value{}, err
	}
	return types.Num(1), nil
}

func (ip *Interp) getlineFrom(n *ast.GetlineExpr, src getlineSource) (types.Value, error) {
	var nameExpr ast.Expr
	if src == sourcePipe {
		nameExpr = n.Command
	} else {
		nameExpr = n.File
	}
	nv, err := ip.eval(nameExpr)
	if err != nil {
		return types.Value{}, err
	}
	name := ip.toStr(nv)

	var rr interface {
		ReadRecord(rs string) (string, bool, error)
	}
	if src == sourcePipe {
		rr, err = ip.io.GetInputPipeRecord(name, ip.regexCache)
	} else {
		rr, err = ip.io.GetInputFileRecord(name, ip.regexCache)
	}
	if err != nil {
		return types.Num(-1), nil
	}

	rec, ok, err := rr.ReadRecord(ip.rs)
	if err != nil {
		return types.Num(-1), nil
	}
	if !ok {
		return types.Num(0), nil
	}
	if src == sourcePipe {
		ip.nr++
	}
	if err := ip.storeGetlineResult(n.Target, rec); err != nil {
		return types.Value{}, err
	}
	return types.Num(1), nil
}

// storeGetlineResult writes rec into either $0 (and re-splits fields)
// or the named target variable, per the calling form's semantics.
func (ip *Interp) storeGetlineResult(target ast.Expr, rec string) error {
	if target == nil {
		return ip.setRecord0(rec)
	}
	return ip.assignTo(target, types.NumStr(rec))
}
