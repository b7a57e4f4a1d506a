package composition

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// tsLexer splits TypeScript source into just enough token classes to find the
// two anchors: comments and string literals are single tokens so keywords and
// brackets inside them are never matched. Regular-expression literals are not
// recognised; a '/' outside a comment lexes as punctuation.
var tsLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|/\*(?s:.*?)\*/`},
	{Name: "String", Pattern: `'(\\.|[^'\\\n])*'|"(\\.|[^"\\\n])*"`},
	{Name: "Template", Pattern: "`(?s:\\\\.|[^`\\\\])*`"},
	{Name: "Ident", Pattern: `[A-Za-z_$][A-Za-z0-9_$]*`},
	{Name: "Number", Pattern: `[0-9][0-9A-Za-z_.]*`},
	{Name: "Punct", Pattern: "[^\\sA-Za-z0-9_$'\"`]"},
	{Name: "Whitespace", Pattern: `\s+`},
})

var tokenNames = lexer.SymbolsByRune(tsLexer)

// token is a significant (non-whitespace, non-comment) lexeme with its byte
// span in the source
type token struct {
	kind  string
	value string
	start int
	end   int
}

func (t token) is(kind, value string) bool {
	return t.kind == kind && t.value == value
}

func (t token) punct(value string) bool {
	return t.is("Punct", value)
}

// tokenize lexes src and drops whitespace and comments
func tokenize(src string) ([]token, error) {
	lex, err := tsLexer.Lex("", strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, err
	}

	toks := make([]token, 0, len(raw)/2)
	for _, t := range raw {
		if t.EOF() {
			break
		}
		kind := tokenNames[t.Type]
		if kind == "Whitespace" || kind == "Comment" {
			continue
		}
		toks = append(toks, token{
			kind:  kind,
			value: t.Value,
			start: t.Pos.Offset,
			end:   t.Pos.Offset + len(t.Value),
		})
	}
	return toks, nil
}

var closers = map[string]string{"(": ")", "[": "]", "{": "}"}

// matchClose returns the index of the bracket closing toks[open]
func matchClose(toks []token, open int) (int, error) {
	var stack []string
	for i := open; i < len(toks); i++ {
		t := toks[i]
		if t.kind != "Punct" {
			continue
		}
		switch t.value {
		case "(", "[", "{":
			stack = append(stack, closers[t.value])
		case ")", "]", "}":
			if len(stack) == 0 || stack[len(stack)-1] != t.value {
				return -1, fmt.Errorf("unexpected %q at offset %d", t.value, t.start)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i, nil
			}
		}
	}
	return -1, fmt.Errorf("unterminated %q at offset %d", toks[open].value, toks[open].start)
}

// checkBalanced verifies every bracket in src is closed by its partner
func checkBalanced(src string) error {
	toks, err := tokenize(src)
	if err != nil {
		return err
	}

	var stack []token
	for _, t := range toks {
		if t.kind != "Punct" {
			continue
		}
		switch t.value {
		case "(", "[", "{":
			stack = append(stack, t)
		case ")", "]", "}":
			if len(stack) == 0 || closers[stack[len(stack)-1].value] != t.value {
				return fmt.Errorf("unexpected %q at offset %d", t.value, t.start)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return fmt.Errorf("unterminated %q at offset %d", top.value, top.start)
	}
	return nil
}
