package ast

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n Node) error

// Walk performs a pre-order traversal of the tree starting at root.
// The callback is invoked for each node; children are enumerated in
// source order. A non-nil error from the callback stops the walk
// immediately and is returned.
//
// The child switch is exhaustive over the node set; adding a node type
// without extending it here would silently hide that node's subtree, so
// new types must be added to Children in the same change.
func Walk(root Node, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	if err := fn(root); err != nil {
		return err
	}
	for _, child := range Children(root) {
		if err := Walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}

// Children returns the direct child nodes of n in source order.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		// Typed-nil interface values show up when optional fields such
		// as *Block or Expr are absent.
		if c == nil {
			return
		}
		switch v := c.(type) {
		case *Block:
			if v == nil {
				return
			}
		case *TypeHint:
			if v == nil {
				return
			}
		case *Name:
			if v == nil {
				return
			}
		}
		out = append(out, c)
	}
	addExpr := func(e Expr) {
		if e != nil {
			out = append(out, e)
		}
	}
	addStmts := func(stmts []Stmt) {
		for _, s := range stmts {
			out = append(out, s)
		}
	}
	addArgs := func(args []*Arg) {
		for _, a := range args {
			out = append(out, a)
		}
	}
	addParams := func(params []*Param) {
		for _, p := range params {
			out = append(out, p)
		}
	}
	addAttrs := func(groups []*AttributeGroup) {
		for _, g := range groups {
			out = append(out, g)
		}
	}

	switch v := n.(type) {
	case *Program:
		addStmts(v.Stmts)

	// Expressions.
	case *Variable, *Name, *IntLit, *FloatLit, *StringLit, *HeredocLit:
		// Leaves.
	case *ArrayLit:
		for _, e := range v.Entries {
			out = append(out, e)
		}
	case *ArrayEntry:
		addExpr(v.Key)
		addExpr(v.Value)
	case *Arg:
		addExpr(v.Value)
	case *Call:
		addExpr(v.Fun)
		addArgs(v.Args)
	case *MethodCall:
		addExpr(v.Receiver)
		addArgs(v.Args)
	case *PropertyFetch:
		addExpr(v.Receiver)
	case *StaticCall:
		addExpr(v.Class)
		addArgs(v.Args)
	case *ClassConstFetch:
		addExpr(v.Class)
	case *StaticPropertyFetch:
		addExpr(v.Class)
	case *Index:
		addExpr(v.Target)
		addExpr(v.Dim)
	case *New:
		addExpr(v.Class)
		addArgs(v.Args)
	case *Unary:
		addExpr(v.Operand)
	case *Binary:
		addExpr(v.Left)
		addExpr(v.Right)
	case *Assign:
		addExpr(v.Target)
		addExpr(v.Value)
	case *Ternary:
		addExpr(v.Cond)
		addExpr(v.Then)
		addExpr(v.Else)
	case *Paren:
		addExpr(v.Inner)
	case *Cast:
		addExpr(v.Operand)
	case *TypeHint:
		// Leaf.
	case *Param:
		addAttrs(v.Attrs)
		add(v.Type)
		addExpr(v.Default)
	case *ClosureUse:
		// Leaf.
	case *Closure:
		addParams(v.Params)
		for _, u := range v.Uses {
			out = append(out, u)
		}
		add(v.ReturnType)
		add(v.Body)
	case *ArrowFn:
		addParams(v.Params)
		add(v.ReturnType)
		addExpr(v.Body)
	case *Match:
		addExpr(v.Cond)
		for _, a := range v.Arms {
			out = append(out, a)
		}
	case *MatchArm:
		for _, c := range v.Conds {
			addExpr(c)
		}
		addExpr(v.Body)

	// Statements.
	case *Block:
		addStmts(v.Stmts)
	case *ExprStmt:
		addExpr(v.X)
	case *EchoStmt:
		for _, e := range v.Exprs {
			addExpr(e)
		}
	case *ReturnStmt:
		addExpr(v.X)
	case *ElseifClause:
		addExpr(v.Cond)
		add(v.Body)
	case *IfStmt:
		addExpr(v.Cond)
		add(v.Then)
		for _, e := range v.Elseifs {
			out = append(out, e)
		}
		add(v.Else)
	case *WhileStmt:
		addExpr(v.Cond)
		add(v.Body)
	case *DoWhileStmt:
		add(v.Body)
		addExpr(v.Cond)
	case *ForStmt:
		for _, e := range v.Init {
			addExpr(e)
		}
		for _, e := range v.Cond {
			addExpr(e)
		}
		for _, e := range v.Post {
			addExpr(e)
		}
		add(v.Body)
	case *ForeachStmt:
		addExpr(v.Subject)
		addExpr(v.Key)
		addExpr(v.Value)
		add(v.Body)
	case *CaseClause:
		addExpr(v.Cond)
		addStmts(v.Stmts)
	case *SwitchStmt:
		addExpr(v.Subject)
		for _, c := range v.Cases {
			out = append(out, c)
		}
	case *BreakStmt, *ContinueStmt, *InlineHTMLStmt, *NamespaceStmt:
		// Leaves for traversal purposes.
	case *ThrowStmt:
		addExpr(v.X)
	case *CatchClause:
		for _, t := range v.Types {
			out = append(out, t)
		}
		add(v.Body)
	case *TryStmt:
		add(v.Body)
		for _, c := range v.Catches {
			out = append(out, c)
		}
		add(v.Finally)
	case *DeclareDirective:
		addExpr(v.Value)
	case *DeclareStmt:
		for _, d := range v.Directives {
			out = append(out, d)
		}
	case *ConstStmt:
		for _, c := range v.Consts {
			out = append(out, c)
		}
	case *UseEntry:
		add(v.Name)
	case *UseStmt:
		for _, e := range v.Entries {
			out = append(out, e)
		}
	case *Attribute:
		add(v.Name)
		addArgs(v.Args)
	case *AttributeGroup:
		for _, a := range v.Attrs {
			out = append(out, a)
		}
	case *FunctionDecl:
		addAttrs(v.Attrs)
		addParams(v.Params)
		add(v.ReturnType)
		add(v.Body)
	case *ClassDecl:
		addAttrs(v.Attrs)
		add(v.BackingType)
		for _, e := range v.Extends {
			out = append(out, e)
		}
		for _, e := range v.Implements {
			out = append(out, e)
		}
		for _, m := range v.Members {
			out = append(out, m)
		}

	// Members.
	case *ConstEntry:
		addExpr(v.Value)
	case *ClassConstDecl:
		addAttrs(v.Attrs)
		add(v.Type)
		for _, c := range v.Consts {
			out = append(out, c)
		}
	case *PropertyEntry:
		addExpr(v.Default)
	case *PropertyDecl:
		addAttrs(v.Attrs)
		add(v.Type)
		for _, p := range v.Props {
			out = append(out, p)
		}
	case *MethodDecl:
		addAttrs(v.Attrs)
		addParams(v.Params)
		add(v.ReturnType)
		add(v.Body)
	case *EnumCaseDecl:
		addAttrs(v.Attrs)
		addExpr(v.Value)
	case *UseTraitDecl:
		for _, nm := range v.Names {
			out = append(out, nm)
		}
	}
	return out
}

// FindAll returns all nodes under root matching the predicate.
func FindAll(root Node, predicate func(n Node) bool) []Node {
	var result []Node

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, func(n Node) error {
		if predicate(n) {
			result = append(result, n)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate in pre-order,
// or nil if none matches.
func FindFirst(root Node, predicate func(n Node) bool) Node {
	var found Node

	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	Walk(root, func(n Node) error {
		if predicate(n) {
			found = n
			return errStopWalk
		}
		return nil
	})

	return found
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string {
	return "stop walk"
}
