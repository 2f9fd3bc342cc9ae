package doc

import "strings"

// RenderOptions controls layout.
type RenderOptions struct {
	// Width is the target maximum line width in measure units.
	Width int

	// TabWidth is the number of columns per indentation level, and the
	// display width assumed for a tab.
	TabWidth int

	// UseTabs emits tab characters for indentation levels.
	UseTabs bool

	// Measure returns the width of a text fragment. Nil counts runes.
	Measure func(string) int
}

type mode uint8

const (
	modeFlat mode = iota
	modeBreak
)

// indentState tracks indentation levels plus alignment columns, which
// stay spaces even when tabs indent.
type indentState struct {
	levels int
	cols   int
}

func (in indentState) width(tabWidth int) int {
	return in.levels*tabWidth + in.cols
}

type cmd struct {
	ind  indentState
	mode mode
	doc  Doc
}

type renderer struct {
	opts    RenderOptions
	measure func(string) int
	out     strings.Builder
	pos     int
	stack   []cmd
}

// Render lays out the document within the given options and returns the
// text. Lines are terminated with \n; terminator policy is applied by
// the caller.
func Render(d Doc, opts RenderOptions) string {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}
	measure := opts.Measure
	if measure == nil {
		measure = func(s string) int { return len([]rune(s)) }
	}

	r := &renderer{opts: opts, measure: measure}
	r.stack = []cmd{{doc: d, mode: modeBreak}}
	for len(r.stack) > 0 {
		r.step()
	}
	return r.out.String()
}

func (r *renderer) pop() cmd {
	c := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	return c
}

func (r *renderer) push(cs ...cmd) {
	r.stack = append(r.stack, cs...)
}

// pushParts pushes parts so they pop in source order.
func (r *renderer) pushParts(ind indentState, m mode, parts []Doc) {
	for i := len(parts) - 1; i >= 0; i-- {
		r.push(cmd{ind: ind, mode: m, doc: parts[i]})
	}
}

func (r *renderer) step() {
	c := r.pop()
	switch d := c.doc.(type) {
	case text:
		r.out.WriteString(d.s)
		r.pos += r.measure(d.s)

	case concat:
		r.pushParts(c.ind, c.mode, d.parts)

	case indent:
		r.push(cmd{ind: indentState{levels: c.ind.levels + 1, cols: c.ind.cols}, mode: c.mode, doc: d.doc})

	case align:
		r.push(cmd{ind: indentState{levels: c.ind.levels, cols: c.ind.cols + d.cols}, mode: c.mode, doc: d.doc})

	case line:
		if c.mode == modeFlat && d.kind == LineSpace {
			r.out.WriteString(" ")
			r.pos++
			return
		}
		if c.mode == modeFlat && d.kind == LineSoft {
			return
		}
		r.out.WriteString("\n")
		if d.kind == LineLiteral {
			r.pos = 0
			return
		}
		r.writeIndent(c.ind)

	case group:
		if c.mode == modeFlat {
			r.push(cmd{ind: c.ind, mode: modeFlat, doc: d.doc})
			return
		}
		m := modeBreak
		if r.fits(r.opts.Width-r.pos, cmd{ind: c.ind, mode: modeFlat, doc: d.doc}, r.stack) {
			m = modeFlat
		}
		r.push(cmd{ind: c.ind, mode: m, doc: d.doc})

	case fill:
		r.stepFill(c, d)

	case breakParent:
		// Layout-only marker; fits rejects it in flat mode.

	case ifBreak:
		if c.mode == modeBreak {
			r.push(cmd{ind: c.ind, mode: c.mode, doc: d.broken})
		} else if d.flat != nil {
			r.push(cmd{ind: c.ind, mode: c.mode, doc: d.flat})
		}
	}
}

// stepFill fits content items pairwise: each separator breaks only when
// the following content cannot share the line.
func (r *renderer) stepFill(c cmd, d fill) {
	parts := d.parts
	if len(parts) == 0 {
		return
	}
	rem := r.opts.Width - r.pos

	contentFlat := cmd{ind: c.ind, mode: modeFlat, doc: parts[0]}
	contentBroken := cmd{ind: c.ind, mode: modeBreak, doc: parts[0]}
	contentFits := r.fits(rem, contentFlat, nil)

	if len(parts) == 1 {
		if contentFits {
			r.push(contentFlat)
		} else {
			r.push(contentBroken)
		}
		return
	}

	sepFlat := cmd{ind: c.ind, mode: modeFlat, doc: parts[1]}
	sepBroken := cmd{ind: c.ind, mode: modeBreak, doc: parts[1]}
	if len(parts) == 2 {
		if contentFits {
			r.push(sepFlat, contentFlat)
		} else {
			r.push(sepBroken, contentBroken)
		}
		return
	}

	remaining := cmd{ind: c.ind, mode: c.mode, doc: fill{parts: parts[2:]}}
	pair := cmd{ind: c.ind, mode: modeFlat, doc: Concat(parts[0], parts[1], parts[2])}
	switch {
	case r.fits(rem, pair, nil):
		r.push(remaining, sepFlat, contentFlat)
	case contentFits:
		r.push(remaining, sepBroken, contentFlat)
	default:
		r.push(remaining, sepBroken, contentBroken)
	}
}

func (r *renderer) writeIndent(in indentState) {
	if r.opts.UseTabs {
		r.out.WriteString(strings.Repeat("\t", in.levels))
	} else {
		r.out.WriteString(strings.Repeat(" ", in.levels*r.opts.TabWidth))
	}
	r.out.WriteString(strings.Repeat(" ", in.cols))
	r.pos = in.width(r.opts.TabWidth)
}

// fits reports whether first, followed by the rest of the current line
// from the live stack, can be laid out within the remaining width. A
// break-mode line ends the lookahead; a hard line inside flat content
// means the content cannot flatten.
func (r *renderer) fits(remaining int, first cmd, rest []cmd) bool {
	cmds := []cmd{first}
	// Index into rest, consumed from the top of the stack downward.
	restIdx := len(rest) - 1

	for remaining >= 0 {
		if len(cmds) == 0 {
			if restIdx < 0 {
				return true
			}
			cmds = append(cmds, rest[restIdx])
			restIdx--
		}
		c := cmds[len(cmds)-1]
		cmds = cmds[:len(cmds)-1]

		switch d := c.doc.(type) {
		case text:
			remaining -= r.measure(d.s)
		case concat:
			for i := len(d.parts) - 1; i >= 0; i-- {
				cmds = append(cmds, cmd{ind: c.ind, mode: c.mode, doc: d.parts[i]})
			}
		case fill:
			for i := len(d.parts) - 1; i >= 0; i-- {
				cmds = append(cmds, cmd{ind: c.ind, mode: c.mode, doc: d.parts[i]})
			}
		case indent:
			cmds = append(cmds, cmd{ind: indentState{levels: c.ind.levels + 1, cols: c.ind.cols}, mode: c.mode, doc: d.doc})
		case align:
			cmds = append(cmds, cmd{ind: indentState{levels: c.ind.levels, cols: c.ind.cols + d.cols}, mode: c.mode, doc: d.doc})
		case group:
			cmds = append(cmds, cmd{ind: c.ind, mode: c.mode, doc: d.doc})
		case breakParent:
			if c.mode == modeFlat {
				return false
			}
		case ifBreak:
			if c.mode == modeFlat {
				if d.flat != nil {
					cmds = append(cmds, cmd{ind: c.ind, mode: c.mode, doc: d.flat})
				}
			} else if d.broken != nil {
				cmds = append(cmds, cmd{ind: c.ind, mode: c.mode, doc: d.broken})
			}
		case line:
			if c.mode == modeFlat {
				switch d.kind {
				case LineHard, LineLiteral:
					return false
				case LineSpace:
					remaining--
				}
				continue
			}
			return true
		}
	}
	return false
}
