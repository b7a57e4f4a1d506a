package composition

import (
	"github.com/alecthomas/participle/v2"
)

// importDecl is the subset of the ES import grammar the composition root uses:
//
//	import Default, { A, B as C } from 'mod';
//	import * as ns from 'mod';
//	import 'side-effect';
type importDecl struct {
	Default string        `parser:"'import' ( @Ident ','? )?"`
	Named   []*importSpec `parser:"( '{' ( @@ ','? )* '}' )?"`
	Star    string        `parser:"( '*' 'as' @Ident )?"`
	From    string        `parser:"'from'? @String ';'?"`
}

type importSpec struct {
	Name  string `parser:"@Ident"`
	Alias string `parser:"( 'as' @Ident )?"`
}

// Local is the name the specifier binds in the importing file
func (s *importSpec) Local() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.Name
}

// Binds reports whether the declaration introduces name into scope
func (d *importDecl) Binds(name string) bool {
	if d.Default == name || d.Star == name {
		return true
	}
	for _, spec := range d.Named {
		if spec.Local() == name {
			return true
		}
	}
	return false
}

// Module is the unquoted module specifier
func (d *importDecl) Module() string {
	if len(d.From) < 2 {
		return d.From
	}
	return d.From[1 : len(d.From)-1]
}

var importParser = participle.MustBuild[importDecl](
	participle.Lexer(tsLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)

// importStmt is a top-level import statement located in the source
type importStmt struct {
	start int  // offset of the import keyword
	end   int  // offset just past the statement (after ';' when present)
	quote byte // quote character of the module specifier
	semi  bool // statement terminated by ';'
	decl  *importDecl
}

// scanImports finds every top-level import statement. Dynamic imports and
// import.meta are skipped.
func scanImports(src string, toks []token) []importStmt {
	var out []importStmt
	depth := 0
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.kind == "Punct" {
			switch t.value {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth--
			}
			continue
		}
		if depth != 0 || !t.is("Ident", "import") {
			continue
		}
		if i > 0 && toks[i-1].punct(".") {
			continue
		}
		if i+1 < len(toks) && (toks[i+1].punct("(") || toks[i+1].punct(".") || toks[i+1].punct(":")) {
			continue
		}

		stmt, next, ok := readImport(src, toks, i)
		if !ok {
			continue
		}
		out = append(out, stmt)
		i = next - 1
	}
	return out
}

// readImport reads the statement starting at toks[i] and returns it with the
// index of the first token after it
func readImport(src string, toks []token, i int) (importStmt, int, bool) {
	j := i + 1
	for ; j < len(toks) && toks[j].kind != "String"; j++ {
		t := toks[j]
		if t.kind == "Ident" || t.punct("{") || t.punct("}") || t.punct(",") || t.punct("*") {
			continue
		}
		return importStmt{}, 0, false
	}
	if j >= len(toks) {
		return importStmt{}, 0, false
	}

	spec := toks[j]
	stmt := importStmt{
		start: toks[i].start,
		end:   spec.end,
		quote: src[spec.start],
	}

	if decl, err := importParser.ParseString("", src[stmt.start:spec.end]); err == nil {
		stmt.decl = decl
	}

	k := j + 1
	// import attributes: `with { type: 'json' }`
	if k+1 < len(toks) && (toks[k].is("Ident", "with") || toks[k].is("Ident", "assert")) && toks[k+1].punct("{") {
		closeIdx, err := matchClose(toks, k+1)
		if err != nil {
			return importStmt{}, 0, false
		}
		stmt.end = toks[closeIdx].end
		k = closeIdx + 1
	}
	if k < len(toks) && toks[k].punct(";") {
		stmt.semi = true
		stmt.end = toks[k].end
		k++
	}
	return stmt, k, true
}

// bindsSymbol reports whether any import brings name into scope
func bindsSymbol(imports []importStmt, name string) bool {
	for _, stmt := range imports {
		if stmt.decl != nil && stmt.decl.Binds(name) {
			return true
		}
	}
	return false
}
