// Package complexity measures the cyclomatic complexity of Go functions.
//
// A function's score starts at 1 and gains a point for every decision: each
// if, for and range statement, each non-default case or comm clause, and
// each && or || operator. Function literals accrue to the declaration that
// encloses them. Go has no exception branches, so nothing else counts.
package complexity

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"os"
)

// FuncScore is the measured complexity of a single function declaration.
type FuncScore struct {
	// Package is the Go package name.
	Package string `json:"package"`

	// Function is the declaration name, receiver-qualified for methods
	// (e.g., "Evaluate" or "(*Scheme).Evaluate").
	Function string `json:"function"`

	// File is the source path as given to the analyzer.
	File string `json:"file"`

	// Line is the line of the declaration.
	Line int `json:"line"`

	// Score is the cyclomatic complexity, always >= 1.
	Score int `json:"score"`
}

// AnalyzeFile parses one Go source file from disk and scores every function
// declaration in it.
func AnalyzeFile(path string) ([]FuncScore, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return AnalyzeSource(path, src)
}

// AnalyzeSource scores Go source held in memory. filename feeds positions
// and the File field only. Scores come back in declaration order.
func AnalyzeSource(filename string, src []byte) ([]FuncScore, error) {
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	var scores []FuncScore
	for _, decl := range node.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		scores = append(scores, FuncScore{
			Package:  node.Name.Name,
			Function: FuncName(fn),
			File:     filename,
			Line:     fset.Position(fn.Pos()).Line,
			Score:    Complexity(fn),
		})
	}
	return scores, nil
}

// Complexity scores one function declaration. A declaration without a body
// (assembly stubs) scores 1.
func Complexity(fn *ast.FuncDecl) int {
	v := &visitor{score: 1}
	if fn.Body != nil {
		ast.Walk(v, fn.Body)
	}
	return v.score
}

type visitor struct {
	score int
}

func (v *visitor) Visit(n ast.Node) ast.Visitor {
	switch n := n.(type) {
	case *ast.IfStmt, *ast.ForStmt, *ast.RangeStmt:
		v.score++
	case *ast.CaseClause:
		// a default clause is not a decision
		if n.List != nil {
			v.score++
		}
	case *ast.CommClause:
		if n.Comm != nil {
			v.score++
		}
	case *ast.BinaryExpr:
		if n.Op == token.LAND || n.Op == token.LOR {
			v.score++
		}
	}
	return v
}

// IsBlank reports whether src holds no Go tokens beyond comments. Empty
// and comment-only files have nothing to score, so callers can skip them
// instead of treating the missing package clause as a parse failure.
func IsBlank(src []byte) bool {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var s scanner.Scanner
	s.Init(file, src, nil, scanner.ScanComments)
	for {
		_, tok, _ := s.Scan()
		switch tok {
		case token.EOF:
			return true
		case token.COMMENT:
			continue
		default:
			return false
		}
	}
}

// FuncName renders a declaration name, qualifying methods by receiver.
func FuncName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return fn.Name.Name
	}
	return fmt.Sprintf("(%s).%s", recvString(fn.Recv.List[0].Type), fn.Name.Name)
}

func recvString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + recvString(t.X)
	case *ast.IndexExpr:
		return recvString(t.X)
	case *ast.IndexListExpr:
		return recvString(t.X)
	}
	return "?"
}
