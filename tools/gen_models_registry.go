// Command gen_models_registry rewrites models_registry.go for a models
// package: every struct type with a TableName method is registered.
//
//	go run ./tools <models_dir>
package main

import (
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

const registryFile = "models_registry.go"

func main() {
	_ = godotenv.Load()

	var modelsDir string
	if len(os.Args) >= 2 {
		modelsDir = os.Args[1]
	} else {
		modelsDir = os.Getenv("SITECMS_MODELS_PATH")
		if modelsDir == "" {
			fmt.Println("Usage: go run ./tools <models_dir> OR set SITECMS_MODELS_PATH environment variable")
			os.Exit(1)
		}
	}

	pkg, names, err := collectModels(modelsDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	src, err := render(pkg, names)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	outputFile := filepath.Join(modelsDir, registryFile)
	if err := os.WriteFile(outputFile, src, 0644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Generated %s with %d models.\n", outputFile, len(names))
}

// collectModels returns the package name and the sorted names of struct
// types that declare a TableName method.
func collectModels(dir string) (string, []string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var pkg string
	structs := map[string]bool{}
	tables := map[string]bool{}
	for _, file := range files {
		name := file.Name()
		if file.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || name == registryFile {
			continue
		}
		node, err := parser.ParseFile(token.NewFileSet(), filepath.Join(dir, name), nil, 0)
		if err != nil {
			return "", nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		pkg = node.Name.Name

		for _, decl := range node.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				if d.Tok != token.TYPE {
					continue
				}
				for _, spec := range d.Specs {
					if ts, ok := spec.(*ast.TypeSpec); ok {
						if _, ok := ts.Type.(*ast.StructType); ok {
							structs[ts.Name.Name] = true
						}
					}
				}
			case *ast.FuncDecl:
				if d.Recv != nil && d.Name.Name == "TableName" && len(d.Recv.List) == 1 {
					if recv := receiverName(d.Recv.List[0].Type); recv != "" {
						tables[recv] = true
					}
				}
			}
		}
	}
	if pkg == "" {
		return "", nil, fmt.Errorf("no Go files in %s", dir)
	}

	var names []string
	for name := range tables {
		if structs[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return pkg, names, nil
}

func receiverName(expr ast.Expr) string {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name
	}
	return ""
}

func render(pkg string, names []string) ([]byte, error) {
	var b strings.Builder
	b.WriteString("// Code generated by tools/gen_models_registry.go; DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	b.WriteString("// ModelTypeRegistry lists every persisted model by name. Schema migrations\n")
	b.WriteString("// and the schema command walk it.\n")
	b.WriteString("var ModelTypeRegistry = map[string]any{\n")
	for _, name := range names {
		fmt.Fprintf(&b, "\t%q: %s{},\n", name, name)
	}
	b.WriteString("}\n")
	return format.Source([]byte(b.String()))
}
