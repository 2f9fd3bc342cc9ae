package format

import (
	"strings"

	"github.com/yigitcukuren/phpfmt/pkg/format/doc"
	"github.com/yigitcukuren/phpfmt/pkg/php/ast"
	"github.com/yigitcukuren/phpfmt/pkg/style"
)

func (p *printer) expr(e ast.Expr) doc.Doc {
	switch v := e.(type) {
	case *ast.Variable:
		return doc.Text(v.Name)
	case *ast.Name:
		return p.nameExpr(v)
	case *ast.IntLit:
		return doc.Text(v.Text)
	case *ast.FloatLit:
		return doc.Text(v.Text)
	case *ast.StringLit:
		return doc.Text(p.stringLit(v.Text))
	case *ast.HeredocLit:
		return verbatim(v.Text)
	case *ast.ArrayLit:
		return p.arrayLit(v)
	case *ast.Call:
		return p.callExpr(v)
	case *ast.MethodCall, *ast.PropertyFetch:
		return p.chain(e)
	case *ast.StaticCall:
		return doc.Concat(p.expr(v.Class), doc.Text("::"+v.Name), p.argList(v, v.Args))
	case *ast.ClassConstFetch:
		return doc.Concat(p.expr(v.Class), doc.Text("::"+v.Name))
	case *ast.StaticPropertyFetch:
		return doc.Concat(p.expr(v.Class), doc.Text("::"+v.Name))
	case *ast.Index:
		if v.Dim == nil {
			return doc.Concat(p.expr(v.Target), doc.Text("[]"))
		}
		return doc.Concat(p.expr(v.Target), doc.Text("["), p.expr(v.Dim), doc.Text("]"))
	case *ast.New:
		return p.newExpr(v)
	case *ast.Unary:
		return p.unary(v)
	case *ast.Binary:
		return p.binary(v)
	case *ast.Assign:
		return p.assign(v, 0)
	case *ast.Ternary:
		return p.ternary(v)
	case *ast.Paren:
		return p.parenExpr(v)
	case *ast.Cast:
		sp := ""
		if p.cfg.SpaceAfterCast {
			sp = " "
		}
		return doc.Concat(doc.Text("("+p.kw(v.Type)+")"+sp), p.expr(v.Operand))
	case *ast.Closure:
		return p.closure(v)
	case *ast.ArrowFn:
		return p.arrowFn(v)
	case *ast.Match:
		return p.matchExpr(v)
	}
	return doc.Nil
}

// nameExpr prints a bare name in expression position. Constant-like
// keywords follow keyword_case; exit and die grow parentheses when
// parentheses_in_exit asks for them.
func (p *printer) nameExpr(n *ast.Name) doc.Doc {
	if len(n.Parts) == 1 && !n.Rooted {
		switch strings.ToLower(n.Parts[0]) {
		case "true", "false", "null":
			return doc.Text(p.kw(n.Parts[0]))
		case "exit", "die":
			if p.cfg.ParenthesesInExit {
				return doc.Text(p.kw(n.Parts[0]) + "()")
			}
			return doc.Text(p.kw(n.Parts[0]))
		}
	}
	return doc.Text(n.String())
}

func isExitName(e ast.Expr) (string, bool) {
	n, ok := e.(*ast.Name)
	if !ok || n.Rooted || len(n.Parts) != 1 {
		return "", false
	}
	switch strings.ToLower(n.Parts[0]) {
	case "exit", "die":
		return n.Parts[0], true
	}
	return "", false
}

func (p *printer) callExpr(v *ast.Call) doc.Doc {
	if name, ok := isExitName(v.Fun); ok && len(v.Args) == 0 {
		if p.cfg.ParenthesesInExit {
			return doc.Text(p.kw(name) + "()")
		}
		return doc.Text(p.kw(name))
	}
	callee := p.expr(v.Fun)
	if n, ok := v.Fun.(*ast.Name); ok {
		callee = doc.Text(n.String())
	}
	return doc.Concat(callee, p.argList(v, v.Args))
}

// stringLit rewrites the quote style where doing so cannot change the
// runtime value. Anything with interpolation or non-trivial escapes is
// left exactly as written.
func (p *printer) stringLit(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	if p.cfg.SingleQuote && raw[0] == '"' {
		if s, ok := doubleToSingle(raw); ok {
			return s
		}
	}
	if !p.cfg.SingleQuote && raw[0] == '\'' {
		if s, ok := singleToDouble(raw); ok {
			return s
		}
	}
	return raw
}

func doubleToSingle(raw string) (string, bool) {
	body := raw[1 : len(raw)-1]
	var out strings.Builder
	out.WriteByte('\'')
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch c {
		case '$', '{':
			// Potential interpolation.
			return "", false
		case '\'':
			out.WriteString("\\'")
		case '\\':
			if i+1 >= len(body) {
				return "", false
			}
			i++
			switch body[i] {
			case '\\':
				out.WriteString("\\\\")
			case '"':
				out.WriteByte('"')
			case '$':
				out.WriteByte('$')
			default:
				// A meaningful escape such as \n or \x41.
				return "", false
			}
		default:
			out.WriteByte(c)
		}
	}
	out.WriteByte('\'')
	return out.String(), true
}

func singleToDouble(raw string) (string, bool) {
	body := raw[1 : len(raw)-1]
	var out strings.Builder
	out.WriteByte('"')
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch c {
		case '$', '"', '{':
			// Would need escaping or become interpolation.
			return "", false
		case '\\':
			if i+1 >= len(body) {
				return "", false
			}
			i++
			switch body[i] {
			case '\\':
				out.WriteString("\\\\")
			case '\'':
				out.WriteByte('\'')
			default:
				// Literal backslash followed by an ordinary character;
				// keeping it verbatim would turn \n into a newline.
				return "", false
			}
		default:
			out.WriteByte(c)
		}
	}
	out.WriteByte('"')
	return out.String(), true
}

// binOpClass groups the left-associative operators whose chains flatten
// into a single break group. Comparison operators are non-associative
// and never chain.
func binOpClass(op string) string {
	switch strings.ToLower(op) {
	case "+", "-":
		return "add"
	case "*", "/", "%":
		return "mul"
	case ".":
		return "concat"
	case "&&":
		return "&&"
	case "||":
		return "||"
	case "and", "or", "xor", "??", "|", "&", "^":
		return strings.ToLower(op)
	}
	return ""
}

func isKeywordOp(op string) bool {
	switch strings.ToLower(op) {
	case "and", "or", "xor", "instanceof":
		return true
	}
	return false
}

func (p *printer) opSpaced(op string) bool {
	if op == "." {
		return p.cfg.SpaceAroundConcat
	}
	if isKeywordOp(op) {
		return true
	}
	return p.cfg.SpaceAroundBinaryOperators
}

func (p *printer) opText(op string) string {
	if isKeywordOp(op) {
		return p.kw(op)
	}
	return op
}

// binary prints an operator chain as one group: flat with configured
// spacing, or one operand per line with the operator leading or
// trailing per break_before_binary_operator.
func (p *printer) binary(b *ast.Binary) doc.Doc {
	class := binOpClass(b.Op)
	operands := []ast.Expr{b.Right}
	ops := []string{b.Op}
	left := b.Left
	for class != "" {
		lb, ok := left.(*ast.Binary)
		if !ok || binOpClass(lb.Op) != class {
			break
		}
		operands = append([]ast.Expr{lb.Right}, operands...)
		ops = append([]string{lb.Op}, ops...)
		left = lb.Left
	}

	parts := []doc.Doc{p.expr(left)}
	var tail []doc.Doc
	for i, op := range ops {
		spaced := p.opSpaced(op)
		sep := doc.Doc(doc.SoftLine)
		if spaced {
			sep = doc.Line
		}
		text := p.opText(op)
		if p.cfg.BreakBeforeBinaryOperator {
			if spaced {
				text += " "
			}
			tail = append(tail, sep, doc.Text(text), p.expr(operands[i]))
		} else {
			if spaced {
				text = " " + text
			}
			tail = append(tail, doc.Text(text), sep, p.expr(operands[i]))
		}
	}
	parts = append(parts, doc.Indent(doc.Concat(tail...)))
	return doc.Group(doc.Concat(parts...))
}

// assign prints target op value, padding the target out to alignCol
// when the statement belongs to an alignment run.
func (p *printer) assign(as *ast.Assign, alignCol int) doc.Doc {
	target := p.expr(as.Target)
	if lit, ok := as.Target.(*ast.ArrayLit); ok {
		// Destructuring target: list_style governs the bracket syntax.
		target = p.arrayLitStyled(lit, p.cfg.ListStyle)
	}
	if alignCol > 0 {
		if v, ok := as.Target.(*ast.Variable); ok {
			target = doc.Pad(doc.Text(v.Name), p.measure(v.Name), alignCol)
		}
	}
	// Values that lay out their own multi-line shape hug the operator;
	// breaking after = would orphan it even on short assignments, since
	// closure and match bodies carry hard lines.
	switch as.Value.(type) {
	case *ast.ArrayLit, *ast.Closure, *ast.Match, *ast.HeredocLit,
		*ast.Call, *ast.MethodCall, *ast.StaticCall, *ast.New:
		return doc.Concat(target, doc.Text(" "+as.Op+" "), p.expr(as.Value))
	}
	return doc.Concat(
		target,
		doc.Text(" "+as.Op),
		doc.Group(doc.Indent(doc.Concat(doc.Line, p.expr(as.Value)))),
	)
}

func (p *printer) ternary(t *ast.Ternary) doc.Doc {
	if t.Then == nil {
		return doc.Group(doc.Concat(
			p.expr(t.Cond),
			doc.Indent(doc.Concat(doc.Line, doc.Text("?: "), p.expr(t.Else))),
		))
	}
	return doc.Group(doc.Concat(
		p.expr(t.Cond),
		doc.Indent(doc.Concat(
			doc.Line, doc.Text("? "), p.expr(t.Then),
			doc.Line, doc.Text(": "), p.expr(t.Else),
		)),
	))
}

func (p *printer) unary(u *ast.Unary) doc.Doc {
	if u.Postfix {
		return doc.Concat(p.expr(u.Operand), doc.Text(u.Op))
	}
	switch u.Op {
	case "clone", "print", "throw":
		return doc.Concat(doc.Text(p.kw(u.Op)+" "), p.expr(u.Operand))
	case "!":
		sp := ""
		if p.cfg.SpaceAfterNot {
			sp = " "
		}
		return doc.Concat(doc.Text("!"+sp), p.expr(u.Operand))
	}
	return doc.Concat(doc.Text(u.Op), p.expr(u.Operand))
}

func (p *printer) parenExpr(v *ast.Paren) doc.Doc {
	if p.cfg.SpaceWithinGroupingParens {
		return doc.Concat(doc.Text("( "), p.expr(v.Inner), doc.Text(" )"))
	}
	return doc.Concat(doc.Text("("), p.expr(v.Inner), doc.Text(")"))
}

func (p *printer) newExpr(v *ast.New) doc.Doc {
	parens := v.HasParens
	switch p.cfg.ParenthesesAroundNew {
	case style.ParensAlways:
		parens = true
	case style.ParensNever:
		if len(v.Args) == 0 {
			parens = false
		}
	}
	head := doc.Concat(doc.Text(p.kw("new")+" "), p.expr(v.Class))
	if !parens {
		return head
	}
	return doc.Concat(head, p.argList(v, v.Args))
}

// chain prints a member-access chain. Short chains stay inline; chains
// with at least method_chain_min_links links become one group that puts
// every link on its own line once it breaks.
func (p *printer) chain(e ast.Expr) doc.Doc {
	base, links := collectChain(e)

	if len(links) < p.cfg.MethodChainMinLinks {
		parts := []doc.Doc{p.expr(base)}
		for _, l := range links {
			parts = append(parts, p.linkDoc(l))
		}
		return doc.Concat(parts...)
	}

	var tail []doc.Doc
	for _, l := range links {
		if p.cfg.MethodChainBreakingStyle == style.ChainSameLine {
			tail = append(tail, doc.Text(linkArrow(l)), doc.SoftLine, p.linkBody(l))
		} else {
			tail = append(tail, doc.SoftLine, p.linkDoc(l))
		}
	}
	if p.cfg.PreserveBreakingMemberAccessChain &&
		p.sourceBrokeBetween(base.Span().End, e.Span().End) {
		tail = append(tail, doc.BreakParent)
	}
	return doc.Group(doc.Concat(p.expr(base), doc.Indent(doc.Concat(tail...))))
}

func collectChain(e ast.Expr) (ast.Expr, []ast.Expr) {
	var links []ast.Expr
	for {
		switch v := e.(type) {
		case *ast.MethodCall:
			links = append([]ast.Expr{v}, links...)
			e = v.Receiver
		case *ast.PropertyFetch:
			links = append([]ast.Expr{v}, links...)
			e = v.Receiver
		default:
			return e, links
		}
	}
}

func linkArrow(l ast.Expr) string {
	switch v := l.(type) {
	case *ast.MethodCall:
		if v.Nullsafe {
			return "?->"
		}
	case *ast.PropertyFetch:
		if v.Nullsafe {
			return "?->"
		}
	}
	return "->"
}

func (p *printer) linkDoc(l ast.Expr) doc.Doc {
	return doc.Concat(doc.Text(linkArrow(l)), p.linkBody(l))
}

func (p *printer) linkBody(l ast.Expr) doc.Doc {
	switch v := l.(type) {
	case *ast.MethodCall:
		return doc.Concat(doc.Text(v.Name), p.argList(v, v.Args))
	case *ast.PropertyFetch:
		return doc.Text(v.Name)
	}
	return doc.Nil
}

// argList prints (...) as a group that breaks one argument per line,
// with a trailing comma when broken and trailing_comma is on. A source
// line break between two arguments keeps the list broken when
// preserve_breaking_argument_list is set.
func (p *printer) argList(owner ast.Node, args []*ast.Arg) doc.Doc {
	return p.argListForced(owner, args, false)
}

func (p *printer) argListForced(owner ast.Node, args []*ast.Arg, force bool) doc.Doc {
	if len(args) == 0 {
		if dangling := p.comments.Dangling(owner); len(dangling) > 0 {
			return doc.Concat(
				doc.Text("("),
				doc.Indent(doc.Concat(doc.HardLine, p.danglingDocs(owner))),
				doc.HardLine,
				doc.Text(")"),
			)
		}
		return doc.Text("()")
	}

	var items []doc.Doc
	for i, a := range args {
		if i > 0 {
			items = append(items, doc.Line)
		}
		items = append(items, p.leadingInline(a), p.argDoc(a))
		// The comma lands before any trailing comment so a line comment
		// cannot swallow it.
		if i < len(args)-1 {
			items = append(items, doc.Text(","))
		} else if p.cfg.TrailingComma {
			items = append(items, doc.IfBreak(doc.Text(","), nil))
		}
		items = append(items, p.trailingInline(a))
	}
	if force || (p.cfg.PreserveBreakingArgumentList && p.brokeBetweenItems(nodesOf(args))) {
		items = append(items, doc.BreakParent)
	}
	// A comment before the closing paren has no argument to lead; it
	// prints on its own line above the delimiter.
	if dangling := p.comments.Dangling(owner); len(dangling) > 0 {
		items = append(items, doc.HardLine, p.danglingDocs(owner))
	}
	return doc.Group(doc.Concat(
		doc.Text("("),
		doc.Indent(doc.Concat(doc.SoftLine, doc.Concat(items...))),
		doc.SoftLine,
		doc.Text(")"),
	))
}

func (p *printer) argDoc(a *ast.Arg) doc.Doc {
	var parts []doc.Doc
	if a.Name != "" {
		parts = append(parts, doc.Text(a.Name+": "))
	}
	if a.Spread {
		parts = append(parts, doc.Text("..."))
	}
	parts = append(parts, p.expr(a.Value))
	return doc.Concat(parts...)
}

// nodesOf converts a typed node slice to []ast.Node.
func nodesOf[T ast.Node](items []T) []ast.Node {
	out := make([]ast.Node, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

// brokeBetweenItems reports whether the source had a line break between
// any two adjacent list items.
func (p *printer) brokeBetweenItems(items []ast.Node) bool {
	for i := 1; i < len(items); i++ {
		if p.sourceBrokeBetween(items[i-1].Span().End, items[i].Span().Start) {
			return true
		}
	}
	return false
}

// matchExpr prints a match expression; arms always sit one per line.
func (p *printer) matchExpr(m *ast.Match) doc.Doc {
	var body []doc.Doc
	for i, arm := range m.Arms {
		if i > 0 {
			body = append(body, doc.HardLine)
			body = append(body, hardLines(p.blanksBetween(m.Arms[i-1].Span().End, arm.Span().Start)))
		}
		body = append(body, p.leadingInline(arm))
		if arm.Conds == nil {
			body = append(body, doc.Text(p.kw("default")))
		} else {
			conds := make([]doc.Doc, len(arm.Conds))
			for j, c := range arm.Conds {
				conds[j] = p.expr(c)
			}
			body = append(body, doc.Join(doc.Text(", "), conds...))
		}
		body = append(body, doc.Text(" => "), p.expr(arm.Body), doc.Text(","))
		body = append(body, p.trailingDoc(arm))
	}
	inner := doc.Concat(doc.HardLine, doc.Concat(body...))
	if dangling := p.comments.Dangling(m); len(dangling) > 0 {
		inner = doc.Concat(inner, doc.HardLine, p.danglingDocs(m))
	}
	return doc.Concat(
		doc.Text(p.kw("match")+" ("), p.expr(m.Cond), doc.Text(") {"),
		doc.Indent(inner),
		doc.HardLine,
		doc.Text("}"),
	)
}
