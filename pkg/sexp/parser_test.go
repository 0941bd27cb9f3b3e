package sexp

import "testing"

func TestParseSimpleList(t *testing.T) {
	root, in := Parse([]byte(`(kicad_pcb (version 20211014))`))
	if len(root.Children) != 1 {
		t.Fatalf("root has %d top-level forms, want 1", len(root.Children))
	}
	doc := root.Children[0]
	if !doc.Head(in, "kicad_pcb") {
		t.Fatalf("expected (kicad_pcb ...) as the sole top-level form, got %+v", doc)
	}
	version, ok := doc.Find(in, "version")
	if !ok {
		t.Fatal("missing version child")
	}
	if version.Children[1].Number != 20211014 {
		t.Errorf("version = %v, want 20211014", version.Children[1].Number)
	}
}

func TestParseQuotedString(t *testing.T) {
	root, in := Parse([]byte(`(layer "F.Cu")`))
	n := root.Children[0]
	if got := n.Children[1].SymbolText(in); got != "F.Cu" {
		t.Errorf("quoted string = %q, want F.Cu", got)
	}
}

func TestParseQuotedStringWithSpaces(t *testing.T) {
	root, in := Parse([]byte(`(title "My Board Rev A")`))
	n := root.Children[0]
	if got := n.Children[1].SymbolText(in); got != "My Board Rev A" {
		t.Errorf("quoted string = %q, want %q", got, "My Board Rev A")
	}
}

func TestParseEmbeddedEscapedQuote(t *testing.T) {
	root, in := Parse([]byte(`(title "say ""hi""")`))
	n := root.Children[0]
	if got := n.Children[1].SymbolText(in); got != `say "hi"` {
		t.Errorf("embedded quote = %q, want %q", got, `say "hi"`)
	}
}

func TestParseBackslashEscapes(t *testing.T) {
	root, in := Parse([]byte(`(x "a\nb")`))
	n := root.Children[0]
	if got := n.Children[1].SymbolText(in); got != "a\nb" {
		t.Errorf("escaped newline = %q, want %q", got, "a\nb")
	}
}

func TestParseNegativeAndFractionalNumbers(t *testing.T) {
	root, _ := Parse([]byte(`(at -1.5 2.25)`))
	n := root.Children[0]
	if n.Children[1].Number != -1.5 {
		t.Errorf("x = %v, want -1.5", n.Children[1].Number)
	}
	if n.Children[2].Number != 2.25 {
		t.Errorf("y = %v, want 2.25", n.Children[2].Number)
	}
}

func TestParseNestedLists(t *testing.T) {
	root, in := Parse([]byte(`(footprint "R_0603" (at 1 2) (pad "1" smd rect))`))
	fp := root.Children[0]
	at, ok := fp.Find(in, "at")
	if !ok || at.Children[1].Number != 1 || at.Children[2].Number != 2 {
		t.Errorf("at = %+v", at)
	}
	pad, ok := fp.Find(in, "pad")
	if !ok || pad.Children[1].SymbolText(in) != "1" {
		t.Errorf("pad = %+v", pad)
	}
}

func TestParseMultipleTopLevelForms(t *testing.T) {
	root, _ := Parse([]byte(`(a 1) (b 2)`))
	if len(root.Children) != 2 {
		t.Fatalf("got %d top-level forms, want 2", len(root.Children))
	}
}

func TestParseEmptyInput(t *testing.T) {
	root, _ := Parse([]byte(``))
	if len(root.Children) != 0 {
		t.Errorf("expected no top-level forms for empty input, got %d", len(root.Children))
	}
}

// The parser is infallible: truncated input closes out whatever token or
// list was left open rather than erroring.
func TestParseUnclosedList(t *testing.T) {
	root, in := Parse([]byte(`(kicad_pcb (version 1)`))
	if len(root.Children) != 1 {
		t.Fatalf("got %d top-level forms, want 1", len(root.Children))
	}
	doc := root.Children[0]
	if !doc.Head(in, "kicad_pcb") {
		t.Errorf("expected kicad_pcb form despite missing closing paren, got %+v", doc)
	}
}

func TestParseUnmatchedClosingParen(t *testing.T) {
	root, in := Parse([]byte(`(a 1)) (b 2)`))
	// The stray ')' is absorbed as literal text rather than erroring out,
	// so parsing continues and both well-formed forms still appear.
	if len(root.Children) < 2 {
		t.Fatalf("got %d top-level forms, want at least 2", len(root.Children))
	}
	if !root.Children[0].Head(in, "a") {
		t.Errorf("first form = %+v, want (a ...)", root.Children[0])
	}
}

func TestParseSharesInterner(t *testing.T) {
	in := NewInterner()
	ParseWithInterner([]byte(`(layer "F.Cu")`), in)
	ParseWithInterner([]byte(`(layer "F.Cu")`), in)
	// Re-parsing the same text with a shared interner should not grow the
	// symbol table: both documents intern identical atoms.
	if in.Len() != 2 { // "layer" and "F.Cu"
		t.Errorf("Len() = %d, want 2 after reusing one interner across parses", in.Len())
	}
}
