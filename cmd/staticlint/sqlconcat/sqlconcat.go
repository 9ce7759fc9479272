// Package sqlconcat содержит анализатор, который находит SQL, собранный
// конкатенацией строк или через fmt.Sprintf и переданный в методы запросов
// (Raw, Exec, Where, Query...). Значения должны передаваться параметрами.
package sqlconcat

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
)

// Analyzer запрещает динамически собранный текст запроса.
var Analyzer = &analysis.Analyzer{
	Name: "sqlconcat",
	Doc:  "запрещает передавать в методы запросов SQL, собранный конкатенацией или fmt.Sprintf",
	Run:  run,
}

// NewAnalyzer возвращает анализатор sqlconcat.
func NewAnalyzer() *analysis.Analyzer {
	return Analyzer
}

// sqlMethods: имя метода и позиция аргумента с текстом запроса.
var sqlMethods = map[string]int{
	"Raw":             0,
	"Exec":            0,
	"Where":           0,
	"Or":              0,
	"Not":             0,
	"Having":          0,
	"Joins":           0,
	"Query":           0,
	"QueryRow":        0,
	"ExecContext":     1,
	"QueryContext":    1,
	"QueryRowContext": 1,
}

func run(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			idx, ok := sqlMethods[sel.Sel.Name]
			if !ok || len(call.Args) <= idx {
				return true
			}
			// только методы, не функции пакетов
			if _, isMethod := pass.TypesInfo.Selections[sel]; !isMethod {
				return true
			}

			arg := ast.Unparen(call.Args[idx])
			if !isString(pass, arg) {
				return true
			}
			switch {
			case isDynamicConcat(pass, arg):
				pass.Reportf(arg.Pos(), "SQL для %s собран конкатенацией строк; используйте параметры", sel.Sel.Name)
			case isSprintf(pass, arg):
				pass.Reportf(arg.Pos(), "SQL для %s собран через fmt.Sprintf; используйте параметры", sel.Sel.Name)
			}
			return true
		})
	}
	return nil, nil
}

func isString(pass *analysis.Pass, e ast.Expr) bool {
	tv, ok := pass.TypesInfo.Types[e]
	if !ok {
		return false
	}
	b, ok := tv.Type.Underlying().(*types.Basic)
	return ok && b.Info()&types.IsString != 0
}

// isDynamicConcat сообщает о сложении строк, значение которого не известно при компиляции.
func isDynamicConcat(pass *analysis.Pass, e ast.Expr) bool {
	bin, ok := e.(*ast.BinaryExpr)
	if !ok || bin.Op != token.ADD {
		return false
	}
	return pass.TypesInfo.Types[e].Value == nil
}

func isSprintf(pass *analysis.Pass, e ast.Expr) bool {
	call, ok := e.(*ast.CallExpr)
	if !ok {
		return false
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
	return ok && fn.FullName() == "fmt.Sprintf"
}
