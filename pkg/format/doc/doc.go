// Package doc implements the document intermediate representation the
// printers build and the width-aware renderer that lays it out. The
// model follows Wadler's prettier-printing algebra: groups render flat
// when they fit the remaining width and break otherwise, with Fill as
// the pairwise-fitting extension for argument-like sequences.
package doc

// Doc is a lazily laid out document fragment.
type Doc interface {
	isDoc()
}

type text struct {
	s string
}

// LineKind distinguishes the behavior of line separators.
type LineKind uint8

const (
	// LineSpace renders as a single space when flat, a newline otherwise.
	LineSpace LineKind = iota
	// LineSoft renders as nothing when flat, a newline otherwise.
	LineSoft
	// LineHard always renders as a newline and forces enclosing groups
	// to break.
	LineHard
	// LineLiteral always renders as a newline without re-indentation,
	// for verbatim content such as heredoc bodies.
	LineLiteral
)

type line struct {
	kind LineKind
}

type concat struct {
	parts []Doc
}

type indent struct {
	doc Doc
}

type align struct {
	cols int
	doc  Doc
}

type group struct {
	doc Doc
}

type fill struct {
	// parts alternate content and separator documents.
	parts []Doc
}

type breakParent struct{}

type ifBreak struct {
	broken Doc
	flat   Doc
}

func (text) isDoc()   {}
func (line) isDoc()   {}
func (concat) isDoc() {}
func (indent) isDoc() {}
func (align) isDoc()  {}
func (group) isDoc()  {}
func (fill) isDoc()        {}
func (breakParent) isDoc() {}
func (ifBreak) isDoc()     {}

// Nil is the empty document.
var Nil Doc = concat{}

// Text returns a document holding literal text. The text must not
// contain newlines; use Line kinds for those.
func Text(s string) Doc {
	return text{s: s}
}

// Line is a space when flat and a newline when broken.
var Line Doc = line{kind: LineSpace}

// SoftLine is nothing when flat and a newline when broken.
var SoftLine Doc = line{kind: LineSoft}

// HardLine is always a newline and forces enclosing groups to break.
var HardLine Doc = line{kind: LineHard}

// LiteralLine is a newline that suppresses re-indentation, keeping
// verbatim content such as heredoc bodies untouched.
var LiteralLine Doc = line{kind: LineLiteral}

// Concat joins documents in sequence.
func Concat(parts ...Doc) Doc {
	switch len(parts) {
	case 0:
		return Nil
	case 1:
		return parts[0]
	}
	return concat{parts: parts}
}

// Indent increases the indentation level for line breaks inside d.
func Indent(d Doc) Doc {
	return indent{doc: d}
}

// Align adds cols columns of alignment (always spaces) for line breaks
// inside d, independent of the indentation unit.
func Align(cols int, d Doc) Doc {
	return align{cols: cols, doc: d}
}

// Group renders d flat if it fits the remaining width and broken
// otherwise.
func Group(d Doc) Doc {
	return group{doc: d}
}

// Fill lays out alternating content and separator documents, fitting as
// many content items per line as the width allows. Unlike Group, a Fill
// that cannot stay entirely flat still packs items instead of breaking
// every separator.
func Fill(parts ...Doc) Doc {
	return fill{parts: parts}
}

// BreakParent renders nothing but forces every enclosing group to
// break, the same way a hard line does.
var BreakParent Doc = breakParent{}

// IfBreak renders broken when the enclosing group breaks and flat when
// it stays on one line. Used for trailing commas.
func IfBreak(broken, flat Doc) Doc {
	return ifBreak{broken: broken, flat: flat}
}

// Join interleaves sep between the given documents.
func Join(sep Doc, parts ...Doc) Doc {
	if len(parts) == 0 {
		return Nil
	}
	out := make([]Doc, 0, len(parts)*2-1)
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return Concat(out...)
}

// Pad returns d followed by spaces up to width display columns,
// measured by the given metric. Used for table alignment.
func Pad(d Doc, current, width int) Doc {
	if current >= width {
		return d
	}
	pad := make([]byte, width-current)
	for i := range pad {
		pad[i] = ' '
	}
	return Concat(d, Text(string(pad)))
}
