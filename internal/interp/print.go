package interp

import (
	"io"
	"strings"

	"github.com/kolkov/rawk/internal/ast"
	"github.com/kolkov/rawk/internal/runtime"
	"github.com/kolkov/rawk/internal/token"
	"github.com/kolkov/rawk/internal/types"
)

// execPrint implements both print and printf, including the three
// output redirection forms (> file, >> file, | command).
func (ip *Interp) execPrint(n *ast.PrintStmt) error {
	w, err := ip.printDest(n)
	if err != nil {
		return err
	}

	if n.Printf {
		return ip.execPrintf(n, w)
	}

	if len(n.Args) == 0 {
		_, err := io.WriteString(w, ip.line+ip.ors)
		return err
	}

	var sb strings.Builder
	for i, a := range n.Args {
		if i > 0 {
			sb.WriteString(ip.ofs)
		}
		v, err := ip.eval(a)
		if err != nil {
			return err
		}
		sb.WriteString(v.AsStr(ip.ofmt))
	}
	sb.WriteString(ip.ors)
	_, err = io.WriteString(w, sb.String())
	return err
}

func (ip *Interp) execPrintf(n *ast.PrintStmt, w io.Writer) error {
	if len(n.Args) == 0 {
		return ip.fatalf(n.Pos(), "printf requires a format argument")
	}
	fv, err := ip.eval(n.Args[0])
	if err != nil {
		return err
	}
	args := make([]types.Value, 0, len(n.Args)-1)
	for _, a := range n.Args[1:] {
		v, err := ip.eval(a)
		if err != nil {
			return err
		}
		args = append(args, v)
	}
	_, err = io.WriteString(w, runtime.Sprintf(ip.toStr(fv), args))
	return err
}

// printDest resolves a print/printf statement's output target: plain
// stdout, or a cached file/pipe writer keyed by its destination string.
func (ip *Interp) printDest(n *ast.PrintStmt) (io.Writer, error) {
	if n.Redirect == token.ILLEGAL || n.Dest == nil {
		return ip.output, nil
	}
	dv, err := ip.eval(n.Dest)
	if err != nil {
		return nil, err
	}
	name := ip.toStr(dv)

	switch n.Redirect {
	case token.GREATER:
		return ip.io.GetOutputFile(name, false)
	case token.APPEND:
		return ip.io.GetOutputFile(name, true)
	case token.PIPE:
		return ip.io.GetOutputPipe(name)
	}
	return nil, ip.fatalf(n.Pos(), "unsupported print redirection")
}
