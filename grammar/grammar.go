// Package grammar holds the EBNF definition of the scope expression
// language.
//
// The document is embedded in the binary and verified with
// golang.org/x/exp/ebnf; the hand-written parser in package parser
// implements it.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"

	"golang.org/x/exp/ebnf"
)

// Start is the start production of the grammar.
const Start = "Scope"

const filename = "scope.ebnf"

//go:embed scope.ebnf
var source []byte

// Source returns the grammar document as written.
func Source() string {
	return string(source)
}

// Load parses the embedded grammar and verifies it from Start.
func Load() (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, bytes.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}

	if err := ebnf.Verify(g, Start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}

	return g, nil
}

// Productions returns the production names of g in source order.
func Productions(g ebnf.Grammar) []string {
	prods := make([]*ebnf.Production, 0, len(g))
	for _, p := range g {
		prods = append(prods, p)
	}
	sort.Slice(prods, func(i, j int) bool {
		return prods[i].Pos().Offset < prods[j].Pos().Offset
	})

	names := make([]string, len(prods))
	for i, p := range prods {
		names[i] = p.Name.String
	}
	return names
}

// Literals returns the distinct quoted tokens used by the syntactic
// productions of g, sorted.
func Literals(g ebnf.Grammar) []string {
	seen := map[string]bool{}
	for name, p := range g {
		if isLexical(name) {
			continue
		}
		collectTokens(p.Expr, seen)
	}

	literals := make([]string, 0, len(seen))
	for lit := range seen {
		literals = append(literals, lit)
	}
	sort.Strings(literals)
	return literals
}

func collectTokens(expr ebnf.Expression, seen map[string]bool) {
	switch x := expr.(type) {
	case *ebnf.Token:
		seen[x.String] = true
	case ebnf.Alternative:
		for _, e := range x {
			collectTokens(e, seen)
		}
	case ebnf.Sequence:
		for _, e := range x {
			collectTokens(e, seen)
		}
	case *ebnf.Group:
		collectTokens(x.Body, seen)
	case *ebnf.Option:
		collectTokens(x.Body, seen)
	case *ebnf.Repetition:
		collectTokens(x.Body, seen)
	}
}

func isLexical(name string) bool {
	return name != "" && name[0] >= 'a' && name[0] <= 'z'
}
