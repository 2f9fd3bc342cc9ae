package format

import (
	"sort"

	"github.com/yigitcukuren/phpfmt/pkg/php/ast"
	"github.com/yigitcukuren/phpfmt/pkg/php/token"
)

// Comments holds the trivia stream re-anchored onto syntax tree nodes.
// Attachment is total: every comment lands on exactly one node as
// leading, trailing, or dangling, in source order per anchor.
type Comments struct {
	leading  map[ast.Node][]token.Trivia
	trailing map[ast.Node][]token.Trivia
	dangling map[ast.Node][]token.Trivia
	count    int
}

// Leading returns comments anchored before the node.
func (c *Comments) Leading(n ast.Node) []token.Trivia { return c.leading[n] }

// Trailing returns same-line comments anchored after the node.
func (c *Comments) Trailing(n ast.Node) []token.Trivia { return c.trailing[n] }

// Dangling returns comments inside the node with no following sibling
// to lead.
func (c *Comments) Dangling(n ast.Node) []token.Trivia { return c.dangling[n] }

// Count returns the total number of attached comments.
func (c *Comments) Count() int { return c.count }

// AttachTrivia anchors every comment from the trivia stream onto the
// tree:
//
//   - a comment on the same line as the preceding construct trails the
//     outermost node ending closest before it;
//   - otherwise it leads the outermost node starting closest after it,
//     provided that node lies in the same enclosing scope;
//   - otherwise it dangles on the innermost node enclosing it.
func AttachTrivia(prog *ast.Program, trivia []token.Trivia, src []byte) *Comments {
	c := &Comments{
		leading:  make(map[ast.Node][]token.Trivia),
		trailing: make(map[ast.Node][]token.Trivia),
		dangling: make(map[ast.Node][]token.Trivia),
		count:    len(trivia),
	}
	if len(trivia) == 0 {
		return c
	}

	// Only nodes whose printers consult comments may anchor them;
	// anything else would silently drop the comment at print time.
	var nodes []ast.Node
	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	ast.Walk(prog, func(n ast.Node) error {
		if anchorable(n) {
			nodes = append(nodes, n)
		}
		return nil
	})

	// byStart: ascending start, outermost (largest) first on ties.
	byStart := make([]ast.Node, len(nodes))
	copy(byStart, nodes)
	sort.SliceStable(byStart, func(i, j int) bool {
		a, b := byStart[i].Span(), byStart[j].Span()
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End > b.End
	})

	// byEnd: ascending end, outermost (smallest start) last on ties so
	// that the last candidate scanned wins.
	byEnd := make([]ast.Node, len(nodes))
	copy(byEnd, nodes)
	sort.SliceStable(byEnd, func(i, j int) bool {
		a, b := byEnd[i].Span(), byEnd[j].Span()
		if a.End != b.End {
			return a.End < b.End
		}
		return a.Start > b.Start
	})

	lines := token.NewLineIndex(src)
	for _, tr := range trivia {
		if tr.SameLine() {
			if anchor := trailingAnchor(byEnd, tr); anchor != nil && sameLine(lines, anchor.Span().End-1, tr.Span.Start) {
				c.trailing[anchor] = append(c.trailing[anchor], tr)
				continue
			}
		}
		scope := enclosing(prog, tr)
		if anchor := leadingAnchor(byStart, tr); anchor != nil && within(scope, anchor) {
			c.leading[anchor] = append(c.leading[anchor], tr)
			continue
		}
		c.dangling[scope] = append(c.dangling[scope], tr)
	}
	return c
}

// leadingAnchor finds the outermost node starting at the smallest
// offset at or after the comment.
func leadingAnchor(byStart []ast.Node, tr token.Trivia) ast.Node {
	i := sort.Search(len(byStart), func(i int) bool {
		return byStart[i].Span().Start >= tr.Span.End
	})
	if i == len(byStart) {
		return nil
	}
	return byStart[i]
}

// trailingAnchor finds the outermost node ending at the greatest offset
// at or before the comment.
func trailingAnchor(byEnd []ast.Node, tr token.Trivia) ast.Node {
	i := sort.Search(len(byEnd), func(i int) bool {
		return byEnd[i].Span().End > tr.Span.Start
	})
	if i == 0 {
		return nil
	}
	return byEnd[i-1]
}

func sameLine(lines *token.LineIndex, a, b int) bool {
	if a < 0 {
		a = 0
	}
	la, _ := lines.Position(a)
	lb, _ := lines.Position(b)
	return la == lb
}

// enclosing finds the innermost dangling-capable node whose span
// contains the comment, falling back to the program root.
func enclosing(prog *ast.Program, tr token.Trivia) ast.Node {
	var best ast.Node = prog
	bestLen := prog.Span().Len()
	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	ast.Walk(prog, func(n ast.Node) error {
		if !danglingCapable(n) {
			return nil
		}
		sp := n.Span()
		if sp.Start <= tr.Span.Start && tr.Span.End <= sp.End && sp.Len() < bestLen {
			best, bestLen = n, sp.Len()
		}
		return nil
	})
	return best
}

func within(scope, n ast.Node) bool {
	return scope.Span().Encloses(n.Span())
}

// anchorable reports whether the node's printer emits leading and
// trailing comments. Statements, members, and list items qualify;
// arbitrary subexpressions do not, so a comment buried inside one
// attaches to the nearest construct that can carry it. Blocks are
// excluded: no printer emits comments before an opening brace, so a
// comment there anchors to the first statement inside or dangles.
func anchorable(n ast.Node) bool {
	if _, ok := n.(*ast.Block); ok {
		return false
	}
	switch n.(type) {
	case ast.Stmt, ast.Member,
		*ast.ArrayEntry, *ast.Arg, *ast.Param, *ast.MatchArm,
		*ast.CaseClause, *ast.UseEntry, *ast.ElseifClause,
		*ast.CatchClause, *ast.ConstEntry, *ast.PropertyEntry,
		*ast.DeclareDirective, *ast.ClosureUse, *ast.AttributeGroup:
		return true
	default:
		return false
	}
}

// danglingCapable reports whether the node's printer has a closing
// delimiter it can park otherwise unanchorable comments before.
func danglingCapable(n ast.Node) bool {
	switch n.(type) {
	case *ast.Program, *ast.Block, *ast.ArrayLit, *ast.ClassDecl,
		*ast.SwitchStmt, *ast.Match, *ast.Call, *ast.MethodCall,
		*ast.StaticCall, *ast.New, *ast.FunctionDecl, *ast.MethodDecl,
		*ast.Closure:
		return true
	default:
		return false
	}
}
