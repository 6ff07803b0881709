package ctcheck

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const targetPkg = "github.com/mapxus/secp256k1"

// secretFiles are the files whose code runs on private keys, nonces or
// intermediate values derived from them.
var secretFiles = map[string]bool{
	"basemult.go":   true,
	"consttime.go":  true,
	"curve.go":      true,
	"ecdh.go":       true,
	"field.go":      true,
	"modnscalar.go": true,
	"nonce.go":      true,
	"schnorr.go":    true,
}

func loadTarget(t *testing.T) []*packages.Package {
	t.Helper()
	cfg := &packages.Config{
		Mode: packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedFiles | packages.NeedName,
	}
	pkgs, err := packages.Load(cfg, targetPkg)
	if err != nil {
		t.Fatalf("load package: %v", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		t.Fatalf("package %s has errors", targetPkg)
	}
	return pkgs
}

func TestNoDirectByteComparison(t *testing.T) {
	var findings []string
	for _, pkg := range loadTarget(t) {
		for _, file := range pkg.Syntax {
			ast.Inspect(file, func(n ast.Node) bool {
				be, ok := n.(*ast.BinaryExpr)
				if !ok || (be.Op != token.EQL && be.Op != token.NEQ) {
					return true
				}
				left := pkg.TypesInfo.TypeOf(be.X)
				right := pkg.TypesInfo.TypeOf(be.Y)
				if isBytes(left) && isBytes(right) {
					pos := pkg.Fset.Position(be.Pos())
					findings = append(findings, fmt.Sprintf("%s: avoid == on byte arrays; compare limbs in constant time", pos))
				}
				return true
			})
		}
	}
	if len(findings) > 0 {
		t.Fatalf("constant-time policy violation:\n%s", strings.Join(findings, "\n"))
	}
}

func TestSecretFilesAvoidVariableTime(t *testing.T) {
	var findings []string
	seen := 0
	for _, pkg := range loadTarget(t) {
		for _, file := range pkg.Syntax {
			pos := pkg.Fset.Position(file.Pos())
			if !secretFiles[filepath.Base(pos.Filename)] {
				continue
			}
			seen++

			for _, imp := range file.Imports {
				path, err := strconv.Unquote(imp.Path.Value)
				if err != nil {
					continue
				}
				if path == "math/big" {
					findings = append(findings, fmt.Sprintf("%s: math/big is variable time",
						pkg.Fset.Position(imp.Pos())))
				}
			}

			ast.Inspect(file, func(n ast.Node) bool {
				call, ok := n.(*ast.CallExpr)
				if !ok {
					return true
				}
				sel, ok := call.Fun.(*ast.SelectorExpr)
				if !ok {
					return true
				}
				obj := pkg.TypesInfo.Uses[sel.Sel]
				if obj == nil || obj.Pkg() == nil {
					return true
				}
				if obj.Pkg().Path() == "bytes" && (obj.Name() == "Equal" || obj.Name() == "Compare") {
					findings = append(findings, fmt.Sprintf("%s: bytes.%s is variable time",
						pkg.Fset.Position(call.Pos()), obj.Name()))
				}
				return true
			})
		}
	}
	if seen != len(secretFiles) {
		t.Fatalf("found %d of %d checked files; update secretFiles", seen, len(secretFiles))
	}
	if len(findings) > 0 {
		t.Fatalf("constant-time policy violation:\n%s", strings.Join(findings, "\n"))
	}
}

func isBytes(typ types.Type) bool {
	if typ == nil {
		return false
	}
	switch tt := typ.(type) {
	case *types.Slice:
		return isByte(tt.Elem())
	case *types.Array:
		return isByte(tt.Elem())
	case *types.Pointer:
		return isBytes(tt.Elem())
	case *types.Named:
		return isBytes(tt.Underlying())
	default:
		return false
	}
}

func isByte(t types.Type) bool {
	basic, ok := t.(*types.Basic)
	return ok && basic.Kind() == types.Byte
}
