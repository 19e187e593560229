/*
Staticlint runs a multichecker over the dodomains sources.

Usage:

	go run ./cmd/staticlint ./...

# Analyzers

The checker combines:

 1. The standard passes from golang.org/x/tools/go/analysis/passes.
 2. Every SA analyzer from honnef.co/go/tools/staticcheck.
 3. QF1001 from staticcheck and ST1005 and ST1002 from stylecheck.
 4. Two project analyzers, osexitlint and httpclientlint.

# Standard passes

appends, asmdecl, assign, atomic, bools, buildtag, cgocall, composite,
copylock, defers, directive, errorsas, framepointer, httpresponse,
ifaceassert, loopclosure, lostcancel, nilfunc, printf, shift, sigchanyzer,
slog, stdmethods, stdversion, stringintconv, structtag, testinggoroutine,
tests, timeformat, unmarshal, unreachable, unsafeptr, unusedresult and
waitgroup.

httpresponse and lostcancel matter most here: the generation gateway owns a
response body and a timeout context on every call.

# osexitlint

Reports a direct os.Exit call inside func main of package main. Deferred
logger syncs and the limiter cleanup never run after os.Exit.

	os.Exit call is forbidden in main function: os.Exit(1)

# httpclientlint

Reports use of http.DefaultClient and the package level helpers http.Get,
http.Head, http.Post and http.PostForm outside _test.go files. Outbound
calls go through a client handed to the gateway so that timeouts and
transports stay configurable.

	http.Get uses the default client, pass an *http.Client instead
*/
package main

import (
	"bytes"
	"go/ast"
	"go/printer"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck"

	"golang.org/x/tools/go/analysis/passes/appends"
	"golang.org/x/tools/go/analysis/passes/asmdecl"
	"golang.org/x/tools/go/analysis/passes/assign"
	"golang.org/x/tools/go/analysis/passes/atomic"
	"golang.org/x/tools/go/analysis/passes/bools"
	"golang.org/x/tools/go/analysis/passes/buildtag"
	"golang.org/x/tools/go/analysis/passes/cgocall"
	"golang.org/x/tools/go/analysis/passes/composite"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/defers"
	"golang.org/x/tools/go/analysis/passes/directive"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/framepointer"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/ifaceassert"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilfunc"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shift"
	"golang.org/x/tools/go/analysis/passes/sigchanyzer"
	"golang.org/x/tools/go/analysis/passes/slog"
	"golang.org/x/tools/go/analysis/passes/stdmethods"
	"golang.org/x/tools/go/analysis/passes/stdversion"
	"golang.org/x/tools/go/analysis/passes/stringintconv"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/testinggoroutine"
	"golang.org/x/tools/go/analysis/passes/tests"
	"golang.org/x/tools/go/analysis/passes/timeformat"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"golang.org/x/tools/go/analysis/passes/unsafeptr"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"golang.org/x/tools/go/analysis/passes/waitgroup"
)

var extraChecks = map[string]bool{
	"QF1001": true,
	"ST1002": true,
	"ST1005": true,
}

func main() {
	used := map[string]bool{}
	var analyzers []*analysis.Analyzer

	add := func(a *analysis.Analyzer) {
		if !used[a.Name] {
			analyzers = append(analyzers, a)
			used[a.Name] = true
		}
	}

	for _, a := range []*analysis.Analyzer{
		appends.Analyzer,
		asmdecl.Analyzer,
		assign.Analyzer,
		atomic.Analyzer,
		bools.Analyzer,
		buildtag.Analyzer,
		cgocall.Analyzer,
		composite.Analyzer,
		copylock.Analyzer,
		defers.Analyzer,
		directive.Analyzer,
		errorsas.Analyzer,
		framepointer.Analyzer,
		httpresponse.Analyzer,
		ifaceassert.Analyzer,
		inspect.Analyzer,
		loopclosure.Analyzer,
		lostcancel.Analyzer,
		nilfunc.Analyzer,
		printf.Analyzer,
		shift.Analyzer,
		sigchanyzer.Analyzer,
		slog.Analyzer,
		stdmethods.Analyzer,
		stdversion.Analyzer,
		stringintconv.Analyzer,
		structtag.Analyzer,
		testinggoroutine.Analyzer,
		tests.Analyzer,
		timeformat.Analyzer,
		unmarshal.Analyzer,
		unreachable.Analyzer,
		unsafeptr.Analyzer,
		unusedresult.Analyzer,
		waitgroup.Analyzer,
	} {
		add(a)
	}

	for _, a := range staticcheck.Analyzers {
		if strings.HasPrefix(a.Analyzer.Name, "SA") || extraChecks[a.Analyzer.Name] {
			add(a.Analyzer)
		}
	}
	for _, a := range stylecheck.Analyzers {
		if extraChecks[a.Analyzer.Name] {
			add(a.Analyzer)
		}
	}

	add(OsExitAnalyzer)
	add(HTTPClientAnalyzer)

	multichecker.Main(analyzers...)
}

func render(fset *token.FileSet, x interface{}) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, x); err != nil {
		panic(err)
	}
	return buf.String()
}

// pkgSelector returns the import path and selected name when sel refers to
// a package level identifier, as in os.Exit.
func pkgSelector(pass *analysis.Pass, sel *ast.SelectorExpr) (string, string, bool) {
	ident, ok := sel.X.(*ast.Ident)
	if !ok {
		return "", "", false
	}
	pkg, ok := pass.TypesInfo.Uses[ident].(*types.PkgName)
	if !ok {
		return "", "", false
	}
	return pkg.Imported().Path(), sel.Sel.Name, true
}

func isGenerated(pass *analysis.Pass, pos token.Pos) bool {
	return strings.Contains(pass.Fset.File(pos).Name(), "go-build")
}

// OsExitAnalyzer forbids os.Exit in func main.
var OsExitAnalyzer = &analysis.Analyzer{
	Name:     "osexitlint",
	Doc:      "reports os.Exit in func main",
	Run:      runOsExit,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

func runOsExit(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	insp.Preorder([]ast.Node{(*ast.FuncDecl)(nil)}, func(n ast.Node) {
		fn := n.(*ast.FuncDecl)
		if fn.Body == nil || fn.Recv != nil || fn.Name.Name != "main" {
			return
		}

		ast.Inspect(fn.Body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok || isGenerated(pass, call.Pos()) {
				return true
			}
			if path, name, ok := pkgSelector(pass, sel); ok && path == "os" && name == "Exit" {
				pass.Reportf(call.Pos(), "os.Exit call is forbidden in main function: %s", render(pass.Fset, call))
			}
			return true
		})
	})

	return nil, nil
}

var defaultClientHelpers = map[string]bool{
	"DefaultClient": true,
	"Get":           true,
	"Head":          true,
	"Post":          true,
	"PostForm":      true,
}

// HTTPClientAnalyzer forbids the net/http default client outside tests.
var HTTPClientAnalyzer = &analysis.Analyzer{
	Name:     "httpclientlint",
	Doc:      "reports use of the net/http default client outside tests",
	Run:      runHTTPClient,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

func runHTTPClient(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	insp.Preorder([]ast.Node{(*ast.SelectorExpr)(nil)}, func(n ast.Node) {
		sel := n.(*ast.SelectorExpr)
		if isGenerated(pass, sel.Pos()) || strings.HasSuffix(pass.Fset.File(sel.Pos()).Name(), "_test.go") {
			return
		}

		path, name, ok := pkgSelector(pass, sel)
		if !ok || path != "net/http" || !defaultClientHelpers[name] {
			return
		}
		pass.Reportf(sel.Pos(), "http.%s uses the default client, pass an *http.Client instead", name)
	})

	return nil, nil
}
