package sexp

import (
	"strconv"
	"strings"
)

// Parse reads a full S-expression stream from src and returns the root
// List node (whose children are the top-level forms) together with the
// Interner that owns every Symbol handle produced during the parse.
//
// The parser is infallible, per spec: every byte stream produces a Node
// tree. Malformed input degrades to Symbol tokens containing the
// malformed bytes, or to missing/implicit list closures at end-of-input.
func Parse(src []byte) (Node, *Interner) {
	in := NewInterner()
	return ParseWithInterner(src, in), in
}

// ParseString is a convenience wrapper around Parse for string input.
func ParseString(s string) (Node, *Interner) {
	return Parse([]byte(s))
}

// ParseWithInterner parses src, interning Symbol atoms into the caller-
// supplied Interner (so repeated parses can share one symbol table) and
// returns the root List node.
func ParseWithInterner(src []byte, in *Interner) Node {
	root := Node{Kind: KindList}
	stack := []*Node{&root}

	var work []byte

	inNumber := false
	inFraction := false
	inString := false // unquoted token in progress; includes numbers
	inQuote := false
	inEscape := false

	top := func() *Node { return stack[len(stack)-1] }

	emitNumber := func() {
		v, err := strconv.ParseFloat(string(work), 64)
		if err != nil {
			v = 0
		}
		t := top()
		t.Children = append(t.Children, NewNumber(v))
		work = work[:0]
		inString = false
	}

	emitSymbol := func() {
		h := in.Intern(work)
		t := top()
		t.Children = append(t.Children, NewSymbol(h))
		work = work[:0]
		inString = false
	}

	isSeparator := func(c byte) bool {
		switch c {
		case ' ', '\t', '\r', '\n', '(', ')':
			return true
		}
		return false
	}

	i := 0
	n := len(src)
	for i < n {
		c := src[i]
		i++

		if inNumber {
			if c >= '0' && c <= '9' {
				work = append(work, c)
				continue
			} else if !inFraction && c == '.' {
				work = append(work, c)
				inFraction = true
				continue
			} else {
				inNumber = false
				inFraction = false
				if isSeparator(c) {
					emitNumber()
					i-- // reprocess '(' / ')' outside of a value state
					continue
				}
				// Non-numeric, non-separator byte: the token collapses
				// back into a Symbol carrying the accumulated text. Fall
				// through into the inString handling below for c.
			}
		}

		if inString {
			if isSeparator(c) {
				emitSymbol()
				i--
				continue
			}
			work = append(work, c)
			continue
		}

		if inQuote {
			if inEscape {
				work = append(work, escapeByte(c))
				inEscape = false
				continue
			}
			if c == '"' {
				if i < n && src[i] == '"' {
					// Embedded "" is a literal quote within the string.
					work = append(work, '"')
					i++
					continue
				}
				h := in.Intern(work)
				top().Children = append(top().Children, NewSymbol(h))
				work = work[:0]
				inQuote = false
				continue
			}
			if c == '\\' {
				inEscape = true
				continue
			}
			work = append(work, c)
			continue
		}

		switch {
		case (c >= '0' && c <= '9') || c == '+' || c == '-':
			work = append(work, c)
			inNumber = true
			inString = true
		case c == '.':
			work = append(work, c)
			inNumber = true
			inFraction = true
			inString = true
		case c == '"':
			inQuote = true
		case c == '(':
			top().Children = append(top().Children, Node{Kind: KindList})
			newList := &top().Children[len(top().Children)-1]
			stack = append(stack, newList)
		case c == ')':
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			} else {
				// Unmatched closing ')': absorbed as literal text rather
				// than treated as an error.
				work = append(work, c)
				inString = true
			}
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			// token separator, otherwise ignored
		default:
			work = append(work, c)
			inString = true
		}
	}

	// Truncated input: close out whatever token was in progress and
	// implicitly close any open Lists.
	if inNumber {
		emitNumber()
	} else if inString {
		emitSymbol()
	} else if inQuote {
		h := in.Intern(work)
		top().Children = append(top().Children, NewSymbol(h))
	}

	return root
}

// escapeByte maps a backslash-escaped letter to its conventional C
// meaning. The original source's escape table maps every recognized
// letter to the bell character (0x07); this is a transcription bug (see
// spec §9 Open Question 1) and this implementation emits the intended
// control characters instead.
func escapeByte(c byte) byte {
	switch c {
	case 'a':
		return '\a'
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case 'v':
		return '\v'
	default:
		return c
	}
}

func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	// Go renders whole numbers like "3" without a decimal point; the
	// original grammar accepts that form back in on re-parse (leading
	// digit, no separator issue), so no special-casing is needed beyond
	// stripping an exponent form strconv may choose for very small/large
	// magnitudes that the §4.2 grammar's Number scanner can't re-lex.
	if strings.ContainsAny(s, "eE") {
		s = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return s
}
