// Package composition registers a generated module in the host's composition
// root (the file holding the root @Module decorator). It does not parse
// TypeScript; it lexes the file and locates two anchors, the last top-level
// import statement and the `imports: [...]` list of the decorator, then splices
// text at those two points only.
package composition

import (
	"fmt"
	"sort"
	"strings"
)

// Status is the outcome of a registration attempt
type Status string

const (
	StatusRegistered        Status = "registered"
	StatusAlreadyRegistered Status = "already-registered"
	StatusNoComposition     Status = "no-composition-file"
	StatusNoImportAnchor    Status = "no-import-anchor"
	StatusNoListAnchor      Status = "no-list-anchor"
	StatusUnparseable       Status = "unparseable"
)

// IsWarning reports whether the status left the composition root untouched
// for a reason the operator should hear about
func (s Status) IsWarning() bool {
	switch s {
	case StatusNoComposition, StatusNoImportAnchor, StatusNoListAnchor, StatusUnparseable:
		return true
	}
	return false
}

// Registration names the module symbol to register and the specifier to
// import it from
type Registration struct {
	Symbol     string
	ImportPath string
}

// Options tune the already-registered check
type Options struct {
	// Strict replaces the raw substring check with token-level checks: the
	// symbol must be bound by an import and appear as an entry of the list.
	// Whatever is missing is added.
	Strict bool
}

// Result is what Patch produced. Content equals the input unless Changed.
type Result struct {
	Content      string
	Changed      bool
	Status       Status
	Warnings     []string
	AnchorImport string // the import statement the new import was placed after
	Entries      int    // entries in the imports list after patching
}

type listAnchor struct {
	key   int // index of the `imports` key token
	open  int // index of '['
	close int // index of ']'
}

// edit replaces src[at:end] with text
type edit struct {
	at   int
	end  int
	text string
}

// Patch registers reg in src. It never returns an error: every reason for not
// patching is reported through Status and Warnings with Content unchanged.
func Patch(src string, reg Registration, opts Options) Result {
	res := Result{Content: src, Status: StatusAlreadyRegistered}

	if !opts.Strict && strings.Contains(src, reg.Symbol) {
		res.Entries = countEntries(src)
		return res
	}

	toks, err := tokenize(src)
	if err != nil {
		return unparseable(res, err)
	}
	imports := scanImports(src, toks)
	list, hasList, err := findListAnchor(toks)
	if err != nil {
		return unparseable(res, err)
	}

	needImport, needEntry := true, true
	if opts.Strict {
		needImport = !bindsSymbol(imports, reg.Symbol)
		needEntry = !hasList || !listed(toks, list, reg.Symbol)
		if !needImport && !needEntry {
			res.Entries = entriesIn(toks, list)
			return res
		}
	}

	// Both anchors are resolved before anything is spliced
	if needImport && len(imports) == 0 {
		res.Status = StatusNoImportAnchor
		res.Warnings = append(res.Warnings, fmt.Sprintf("no import statement found to anchor the import of %s; add it manually", reg.Symbol))
		return res
	}
	if needEntry && !hasList {
		res.Status = StatusNoListAnchor
		res.Warnings = append(res.Warnings, fmt.Sprintf("no `imports: [...]` list found in the @Module decorator; add %s manually", reg.Symbol))
		return res
	}

	var edits []edit
	if needImport {
		anchor := imports[len(imports)-1]
		res.AnchorImport = src[anchor.start:anchor.end]
		edits = append(edits, importEdit(src, toks, anchor, reg))
	}
	if needEntry {
		edits = append(edits, listEdits(src, toks, list, reg.Symbol)...)
	}

	out := applyEdits(src, edits)
	if checkBalanced(src) == nil {
		if err := checkBalanced(out); err != nil {
			res.Status = StatusUnparseable
			res.Warnings = append(res.Warnings, fmt.Sprintf("registration of %s abandoned, the result would not be balanced: %v", reg.Symbol, err))
			return res
		}
	}

	res.Content = out
	res.Changed = true
	res.Status = StatusRegistered
	res.Entries = countEntries(out)
	return res
}

func unparseable(res Result, err error) Result {
	res.Status = StatusUnparseable
	res.Warnings = append(res.Warnings, fmt.Sprintf("could not read the composition file structure: %v", err))
	return res
}

// findListAnchor locates the imports list of the @Module decorator. Without a
// decorator the first `imports: [` in the file is used.
func findListAnchor(toks []token) (listAnchor, bool, error) {
	for i := 0; i+3 < len(toks); i++ {
		if !(toks[i].punct("@") && toks[i+1].is("Ident", "Module") && toks[i+2].punct("(") && toks[i+3].punct("{")) {
			continue
		}
		objClose, err := matchClose(toks, i+3)
		if err != nil {
			return listAnchor{}, false, err
		}

		depth := 0
		for j := i + 4; j < objClose; j++ {
			t := toks[j]
			if t.kind == "Punct" {
				switch t.value {
				case "(", "[", "{":
					depth++
				case ")", "]", "}":
					depth--
				}
			}
			if depth != 0 || !isImportsKey(t) || j+2 >= objClose {
				continue
			}
			if prev := toks[j-1]; !(prev.punct("{") || prev.punct(",")) {
				continue
			}
			if toks[j+1].punct(":") && toks[j+2].punct("[") {
				return resolveList(toks, j)
			}
		}
		return listAnchor{}, false, nil
	}

	for i := 0; i+2 < len(toks); i++ {
		if isImportsKey(toks[i]) && toks[i+1].punct(":") && toks[i+2].punct("[") {
			return resolveList(toks, i)
		}
	}
	return listAnchor{}, false, nil
}

func resolveList(toks []token, key int) (listAnchor, bool, error) {
	closeIdx, err := matchClose(toks, key+2)
	if err != nil {
		return listAnchor{}, false, err
	}
	return listAnchor{key: key, open: key + 2, close: closeIdx}, true, nil
}

func isImportsKey(t token) bool {
	switch t.kind {
	case "Ident":
		return t.value == "imports"
	case "String":
		return len(t.value) > 2 && t.value[1:len(t.value)-1] == "imports"
	}
	return false
}

// listed reports whether sym is a direct entry of the list
func listed(toks []token, list listAnchor, sym string) bool {
	depth := 0
	for j := list.open + 1; j < list.close; j++ {
		t := toks[j]
		if t.kind == "Punct" {
			switch t.value {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth--
			}
			continue
		}
		if depth == 0 && t.is("Ident", sym) {
			return true
		}
	}
	return false
}

// entriesIn counts the comma-separated entries of the list
func entriesIn(toks []token, list listAnchor) int {
	count, depth, pending := 0, 0, false
	for j := list.open + 1; j < list.close; j++ {
		t := toks[j]
		if depth == 0 && t.punct(",") {
			if pending {
				count++
			}
			pending = false
			continue
		}
		if t.kind == "Punct" {
			switch t.value {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth--
			}
		}
		pending = true
	}
	if pending {
		count++
	}
	return count
}

// countEntries is entriesIn for a whole file; 0 when the list cannot be found
func countEntries(src string) int {
	toks, err := tokenize(src)
	if err != nil {
		return 0
	}
	list, ok, err := findListAnchor(toks)
	if err != nil || !ok {
		return 0
	}
	return entriesIn(toks, list)
}

func importEdit(src string, toks []token, anchor importStmt, reg Registration) edit {
	limit := len(src)
	for _, t := range toks {
		if t.start >= anchor.end {
			limit = t.start
			break
		}
	}

	quote := string(anchor.quote)
	stmt := fmt.Sprintf("import { %s } from %s%s%s", reg.Symbol, quote, reg.ImportPath, quote)
	if anchor.semi {
		stmt += ";"
	}

	at := safeLineEnd(src, anchor.end, limit)
	return edit{at: at, end: at, text: lineEnding(src) + stmt}
}

func listEdits(src string, toks []token, list listAnchor, sym string) []edit {
	eol := lineEnding(src)
	keyIndent := lineIndent(src, toks[list.key].start)
	unit := "  "
	if strings.Contains(keyIndent, "\t") {
		unit = "\t"
	}
	open, closing := toks[list.open], toks[list.close]

	if list.close == list.open+1 {
		inner := src[open.end:closing.start]
		if strings.TrimSpace(inner) == "" {
			return []edit{{at: open.end, end: closing.start, text: eol + keyIndent + unit + sym + "," + eol + keyIndent}}
		}
		// only comments inside; keep them below the new entry
		return []edit{{at: open.end, end: open.end, text: eol + keyIndent + unit + sym + ","}}
	}

	last := toks[list.close-1]
	trailingComma := last.punct(",")
	lastEntry := last
	if trailingComma {
		lastEntry = toks[list.close-2]
	}

	if !strings.Contains(src[open.start:closing.end], "\n") {
		if trailingComma {
			return []edit{{at: last.end, end: last.end, text: " " + sym + ","}}
		}
		return []edit{{at: lastEntry.end, end: lastEntry.end, text: ", " + sym}}
	}

	indent := keyIndent + unit
	if first := toks[list.open+1]; lineStart(src, first.start) != lineStart(src, open.start) {
		indent = lineIndent(src, first.start)
	}
	entry := eol + indent + sym + ","

	at := safeLineEnd(src, last.end, closing.start)
	if trailingComma {
		return []edit{{at: at, end: at, text: entry}}
	}
	if at == lastEntry.end {
		return []edit{{at: at, end: at, text: "," + entry}}
	}
	return []edit{
		{at: lastEntry.end, end: lastEntry.end, text: ","},
		{at: at, end: at, text: entry},
	}
}

// safeLineEnd returns the end of the line holding pos, or pos itself when the
// line end lies past limit or inside an unterminated block comment
func safeLineEnd(src string, pos, limit int) int {
	end := strings.IndexByte(src[pos:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += pos
	}
	if end > pos && src[end-1] == '\r' {
		end--
	}
	if end > limit {
		return pos
	}
	tail := src[pos:end]
	if i := strings.LastIndex(tail, "/*"); i >= 0 && !strings.Contains(tail[i:], "*/") {
		return pos
	}
	return end
}

func applyEdits(src string, edits []edit) string {
	sorted := append([]edit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].at > sorted[j].at })

	out := src
	for _, e := range sorted {
		out = out[:e.at] + e.text + out[e.end:]
	}
	return out
}

func lineEnding(src string) string {
	if strings.Contains(src, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

func lineStart(src string, pos int) int {
	return strings.LastIndexByte(src[:pos], '\n') + 1
}

func lineIndent(src string, pos int) string {
	start := lineStart(src, pos)
	end := start
	for end < pos && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return src[start:end]
}
