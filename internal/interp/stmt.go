package interp

import (
	"github.com/kolkov/rawk/internal/ast"
	"github.com/kolkov/rawk/internal/types"
)

// execBlock runs a block's statements in order, stopping at the first
// one that returns a non-nil error (ordinary error or control signal).
func (ip *Interp) execBlock(b *ast.BlockStmt) error {
	for _, s := range b.Stmts {
		if err := ip.execStmt(s); err != nil {
			return err
		}
	}
	return nil
}

// execStmt executes a single statement, propagating break/continue/
// next/nextfile/return/exit/fatal as Go errors for the nearest
// construct that knows how to catch its kind.
func (ip *Interp) execStmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.ExprStmt:
		_, err := ip.eval(n.Expr)
		return err
	case *ast.PrintStmt:
		return ip.execPrint(n)
	case *ast.BlockStmt:
		return ip.execBlock(n)
	case *ast.IfStmt:
		c, err := ip.eval(n.Cond)
		if err != nil {
			return err
		}
		if c.AsBool() {
			return ip.execStmt(n.Then)
		}
		if n.Else != nil {
			return ip.execStmt(n.Else)
		}
		return nil
	case *ast.WhileStmt:
		return ip.execWhile(n)
	case *ast.DoWhileStmt:
		return ip.execDoWhile(n)
	case *ast.ForStmt:
		return ip.execFor(n)
	case *ast.ForInStmt:
		return ip.execForIn(n)
	case *ast.BreakStmt:
		return errBreak
	case *ast.ContinueStmt:
		return errContinue
	case *ast.NextStmt:
		return errNext
	case *ast.NextFileStmt:
		return errNextFile
	case *ast.ReturnStmt:
		if n.Value == nil {
			return returnSignal{Value: types.Null()}
		}
		v, err := ip.eval(n.Value)
		if err != nil {
			return err
		}
		return returnSignal{Value: v}
	case *ast.ExitStmt:
		code := 0
		if n.Code != nil {
			v, err := ip.eval(n.Code)
			if err != nil {
				return err
			}
			code = int(v.AsNum())
		}
		return &ExitSignal{Code: code}
	case *ast.DeleteStmt:
		return ip.execDelete(n)
	}
	return ip.fatalf(s.Pos(), "unsupported statement %T", s)
}

func (ip *Interp) execWhile(n *ast.WhileStmt) error {
	for {
		c, err := ip.eval(n.Cond)
		if err != nil {
			return err
		}
		if !c.AsBool() {
			return nil
		}
		if err := ip.execStmt(n.Body); err != nil {
			if err == errBreak {
				return nil
			}
			if err == errContinue {
				continue
			}
			return err
		}
	}
}

func (ip *Interp) execDoWhile(n *ast.DoWhileStmt) error {
	for {
		if err := ip.execStmt(n.Body); err != nil {
			if err == errBreak {
				return nil
			}
			if err != errContinue {
				return err
			}
		}
		c, err := ip.eval(n.Cond)
		if err != nil {
			return err
		}
		if !c.AsBool() {
			return nil
		}
	}
}

func (ip *Interp) execFor(n *ast.ForStmt) error {
	if n.Init != nil {
		if err := ip.execStmt(n.Init); err != nil {
			return err
		}
	}
	for {
		if n.Cond != nil {
			c, err := ip.eval(n.Cond)
			if err != nil {
				return err
			}
			if !c.AsBool() {
				return nil
			}
		}
		if err := ip.execStmt(n.Body); err != nil {
			if err == errBreak {
				return nil
			}
			if err != errContinue {
				return err
			}
		}
		if n.Post != nil {
			if err := ip.execStmt(n.Post); err != nil {
				return err
			}
		}
	}
}

func (ip *Interp) execForIn(n *ast.ForInStmt) error {
	ident, ok := arrayIdent(n.Array)
	if !ok {
		return ip.fatalf(n.Pos(), "array reference must be a name")
	}
	arr, err := ip.arrayFor(ident.Name, ident.Pos())
	if err != nil {
		return err
	}
	for _, key := range arr.Keys() {
		if err := ip.setVar(n.Var.Name, types.NumStr(key), n.Var.Pos()); err != nil {
			return err
		}
		if err := ip.execStmt(n.Body); err != nil {
			if err == errBreak {
				return nil
			}
			if err == errContinue {
				continue
			}
			return err
		}
	}
	return nil
}

func (ip *Interp) execDelete(n *ast.DeleteStmt) error {
	ident, ok := arrayIdent(n.Array)
	if !ok {
		return ip.fatalf(n.Pos(), "array reference must be a name")
	}
	arr, err := ip.arrayFor(ident.Name, ident.Pos())
	if err != nil {
		return err
	}
	if len(n.Index) == 0 {
		arr.Clear()
		return nil
	}
	key, err := ip.subscriptKey(n.Index)
	if err != nil {
		return err
	}
	arr.Delete(key)
	return nil
}
