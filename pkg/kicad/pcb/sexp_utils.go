package pcb

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceJTAG/pkg/sexp"
)

// S-expression navigation helpers. All of these work against the shared
// sexp.Node tree, so a board file's quoting and escaping is already
// handled once, by the parser, rather than being re-derived here.

// getListItems returns all items in a list excluding the first element
// (the key symbol). Example: getListItems((layers "F.Cu" "B.Cu")) returns
// ["F.Cu", "B.Cu"].
func getListItems(n sexp.Node) []sexp.Node {
	if !n.IsList() || len(n.Children) <= 1 {
		return nil
	}
	return n.Children[1:]
}

// getString extracts a Symbol's text at the given index in a list. Index
// 0 is the key, 1 is the first value, and so on.
func getString(n sexp.Node, in *sexp.Interner, index int) (string, error) {
	if !n.IsList() {
		return "", fmt.Errorf("expected list, got %v", n.Kind)
	}
	if index < 0 || index >= len(n.Children) {
		return "", fmt.Errorf("index %d out of bounds (length %d)", index, len(n.Children))
	}
	c := n.Children[index]
	if !c.IsSymbol() {
		return "", fmt.Errorf("expected symbol at index %d, got %v", index, c.Kind)
	}
	return c.SymbolText(in), nil
}

// getQuotedString is an alias for getString: the core parser already
// captures a quoted run (including embedded spaces) as a single Symbol
// token, so there is no rejoining work left to do here.
func getQuotedString(n sexp.Node, in *sexp.Interner, index int) (string, error) {
	return getString(n, in, index)
}

// getFloat extracts a Number value at the given index.
func getFloat(n sexp.Node, index int) (float64, error) {
	if !n.IsList() {
		return 0, fmt.Errorf("expected list, got %v", n.Kind)
	}
	if index < 0 || index >= len(n.Children) {
		return 0, fmt.Errorf("index %d out of bounds (length %d)", index, len(n.Children))
	}
	c := n.Children[index]
	if !c.IsNumber() {
		return 0, fmt.Errorf("expected number at index %d, got %v", index, c.Kind)
	}
	return c.Number, nil
}

// getInt extracts an integer-valued Number at the given index.
func getInt(n sexp.Node, index int) (int, error) {
	f, err := getFloat(n, index)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// hasSymbol reports whether n's children contain the symbol text, either as
// a bare symbol or as a one-element flag list such as (locked).
func hasSymbol(n sexp.Node, in *sexp.Interner, symbol string) bool {
	if !n.IsList() {
		return false
	}
	for _, c := range n.Children {
		if c.IsSymbol() && c.SymbolText(in) == symbol {
			return true
		}
		if c.IsList() && len(c.Children) == 1 && c.Head(in, symbol) {
			return true
		}
	}
	return false
}
