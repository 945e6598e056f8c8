package system

import (
	"github.com/d5/tengo/v2/parser"

	"github.com/younwookim/tilejump/internal/application/state"
)

// GotoTargets returns the levels a reaction can move the session to.
// For scripts only goto calls with an integer literal argument are found.
func GotoTargets(r Reaction) []state.LevelID {
	switch r := r.(type) {
	case Goto:
		return []state.LevelID{r.Level}
	case Repeat:
		return GotoTargets(r.Inner)
	case *Script:
		return r.gotoTargets()
	}
	return nil
}

func (s *Script) gotoTargets() []state.LevelID {
	src := []byte(s.source)
	fileSet := parser.NewFileSet()
	file := fileSet.AddFile("reaction", -1, len(src))
	parsed, err := parser.NewParser(file, src, nil).ParseFile()
	if err != nil {
		// NewScript already compiled the source
		return nil
	}

	w := &gotoWalker{}
	for _, stmt := range parsed.Stmts {
		w.stmt(stmt)
	}
	return w.targets
}

type gotoWalker struct {
	targets []state.LevelID
}

func (w *gotoWalker) stmt(s parser.Stmt) {
	switch s := s.(type) {
	case *parser.ExprStmt:
		w.expr(s.Expr)
	case *parser.AssignStmt:
		for _, e := range s.RHS {
			w.expr(e)
		}
	case *parser.BlockStmt:
		w.block(s)
	case *parser.IfStmt:
		if s.Init != nil {
			w.stmt(s.Init)
		}
		w.expr(s.Cond)
		w.block(s.Body)
		if s.Else != nil {
			w.stmt(s.Else)
		}
	case *parser.ForStmt:
		if s.Init != nil {
			w.stmt(s.Init)
		}
		w.expr(s.Cond)
		if s.Post != nil {
			w.stmt(s.Post)
		}
		w.block(s.Body)
	case *parser.ForInStmt:
		w.expr(s.Iterable)
		w.block(s.Body)
	case *parser.ReturnStmt:
		w.expr(s.Result)
	}
}

func (w *gotoWalker) block(b *parser.BlockStmt) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		w.stmt(s)
	}
}

func (w *gotoWalker) expr(e parser.Expr) {
	switch e := e.(type) {
	case *parser.CallExpr:
		if ident, ok := e.Func.(*parser.Ident); ok && ident.Name == "goto" && len(e.Args) == 1 {
			if lit, ok := unparen(e.Args[0]).(*parser.IntLit); ok {
				w.targets = append(w.targets, state.LevelID(lit.Value))
			}
		}
		w.expr(e.Func)
		for _, a := range e.Args {
			w.expr(a)
		}
	case *parser.BinaryExpr:
		w.expr(e.LHS)
		w.expr(e.RHS)
	case *parser.UnaryExpr:
		w.expr(e.Expr)
	case *parser.ParenExpr:
		w.expr(e.Expr)
	case *parser.CondExpr:
		w.expr(e.Cond)
		w.expr(e.True)
		w.expr(e.False)
	case *parser.FuncLit:
		w.block(e.Body)
	case *parser.ArrayLit:
		for _, el := range e.Elements {
			w.expr(el)
		}
	case *parser.MapLit:
		for _, el := range e.Elements {
			w.expr(el.Value)
		}
	case *parser.IndexExpr:
		w.expr(e.Expr)
		w.expr(e.Index)
	case *parser.SelectorExpr:
		w.expr(e.Expr)
	}
}

func unparen(e parser.Expr) parser.Expr {
	for {
		p, ok := e.(*parser.ParenExpr)
		if !ok {
			return e
		}
		e = p.Expr
	}
}
