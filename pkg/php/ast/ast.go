// Package ast defines the syntax tree for the supported PHP subset.
//
// Nodes form a closed set of concrete types; consumers dispatch with an
// exhaustive type switch so that a construct without a printer fails
// loudly instead of silently dropping code. Every node carries the byte
// span of its source text, which trivia attachment relies on.
package ast

import "github.com/yigitcukuren/phpfmt/pkg/php/token"

// Node is implemented by every syntax tree node.
type Node interface {
	Span() token.Span
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Member is implemented by class-like body declarations.
type Member interface {
	Node
	memberNode()
}

// Program is the root of a parsed file.
type Program struct {
	// LeadingHTML is raw content before the opening tag, empty for pure
	// PHP files.
	LeadingHTML string

	Stmts []Stmt

	Pos token.Span
}

func (p *Program) Span() token.Span { return p.Pos }

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// Variable is $name.
type Variable struct {
	Name string // includes the $ sigil
	Pos  token.Span
}

// Name is a possibly qualified name such as Foo, Foo\Bar or \Foo\Bar.
type Name struct {
	Parts  []string
	Rooted bool // leading backslash
	Pos    token.Span
}

// IntLit is an integer literal, kept as source text to preserve base and
// digit separators.
type IntLit struct {
	Text string
	Pos  token.Span
}

// FloatLit is a floating point literal, kept as source text.
type FloatLit struct {
	Text string
	Pos  token.Span
}

// StringLit is a single- or double-quoted string, kept as the raw lexeme
// including quotes. Interpolation is opaque to the formatter.
type StringLit struct {
	Text string
	Pos  token.Span
}

// HeredocLit is a heredoc or nowdoc literal, kept verbatim.
type HeredocLit struct {
	Text string
	Pos  token.Span
}

// ArrayLit is [...] or array(...).
type ArrayLit struct {
	Long    bool // array() syntax in the source
	Entries []*ArrayEntry
	Pos     token.Span
}

// ArrayEntry is one element of an array literal.
type ArrayEntry struct {
	Key    Expr // nil for unkeyed entries
	ByRef  bool
	Spread bool
	Value  Expr
	Pos    token.Span
}

// Arg is a single call argument.
type Arg struct {
	Name   string // named-argument label, empty for positional
	Spread bool
	Value  Expr
	Pos    token.Span
}

// Call is a function call: callee(...).
type Call struct {
	Fun  Expr
	Args []*Arg
	Pos  token.Span
}

// MethodCall is $recv->name(...) or $recv?->name(...).
type MethodCall struct {
	Receiver Expr
	Nullsafe bool
	Name     string
	Args     []*Arg
	Pos      token.Span
}

// PropertyFetch is $recv->name or $recv?->name.
type PropertyFetch struct {
	Receiver Expr
	Nullsafe bool
	Name     string
	Pos      token.Span
}

// StaticCall is Class::name(...).
type StaticCall struct {
	Class Expr
	Name  string
	Args  []*Arg
	Pos   token.Span
}

// ClassConstFetch is Class::NAME, including Class::class.
type ClassConstFetch struct {
	Class Expr
	Name  string
	Pos   token.Span
}

// StaticPropertyFetch is Class::$name.
type StaticPropertyFetch struct {
	Class Expr
	Name  string // includes the $ sigil
	Pos   token.Span
}

// Index is target[dim]; Dim is nil for the push form target[].
type Index struct {
	Target Expr
	Dim    Expr
	Pos    token.Span
}

// New is a class instantiation.
type New struct {
	Class     Expr
	Args      []*Arg
	HasParens bool // whether the source had an argument list at all
	Pos       token.Span
}

// Unary is a prefix or postfix unary operation.
type Unary struct {
	Op      string // "-", "!", "~", "+", "@", "++", "--"
	Operand Expr
	Postfix bool
	Pos     token.Span
}

// Binary is a binary operation, including "." concatenation,
// "instanceof", and logical and/or/xor keywords.
type Binary struct {
	Op    string
	Left  Expr
	Right Expr
	Pos   token.Span
}

// Assign is target op value where op is "=" or a compound form.
type Assign struct {
	Op     string
	Target Expr
	Value  Expr
	Pos    token.Span
}

// Ternary is cond ? then : else; Then is nil for the short form cond ?: else.
type Ternary struct {
	Cond Expr
	Then Expr
	Else Expr
	Pos  token.Span
}

// Paren is an explicit grouping in the source; reprinted verbatim so the
// token sequence survives formatting.
type Paren struct {
	Inner Expr
	Pos   token.Span
}

// Cast is (int)$x and friends.
type Cast struct {
	Type    string
	Operand Expr
	Pos     token.Span
}

// TypeHint is a parameter, property, or return type.
type TypeHint struct {
	Nullable bool     // leading ?
	Types    []string // union or intersection members
	Sep      byte     // '|' or '&'; meaningless for single-element Types
	Pos      token.Span
}

// Param is a function, method, or closure parameter.
type Param struct {
	Attrs     []*AttributeGroup
	Modifiers []string // constructor promotion: public, readonly, ...
	Type      *TypeHint
	ByRef     bool
	Variadic  bool
	Name      string // includes the $ sigil
	Default   Expr
	Pos       token.Span
}

// ClosureUse is one variable in a closure use (...) clause.
type ClosureUse struct {
	ByRef bool
	Name  string
	Pos   token.Span
}

// Closure is an anonymous function literal.
type Closure struct {
	Static     bool
	ByRef      bool
	Params     []*Param
	Uses       []*ClosureUse
	ReturnType *TypeHint
	Body       *Block
	Pos        token.Span
}

// ArrowFn is fn(...) => expr.
type ArrowFn struct {
	Static     bool
	Params     []*Param
	ReturnType *TypeHint
	Body       Expr
	Pos        token.Span
}

// Match is a match (cond) { ... } expression.
type Match struct {
	Cond Expr
	Arms []*MatchArm
	Pos  token.Span
}

// MatchArm is one arm of a match expression; nil Conds means default.
type MatchArm struct {
	Conds []Expr
	Body  Expr
	Pos   token.Span
}

func (*Variable) exprNode()            {}
func (*Name) exprNode()                {}
func (*IntLit) exprNode()              {}
func (*FloatLit) exprNode()            {}
func (*StringLit) exprNode()           {}
func (*HeredocLit) exprNode()          {}
func (*ArrayLit) exprNode()            {}
func (*Call) exprNode()                {}
func (*MethodCall) exprNode()          {}
func (*PropertyFetch) exprNode()       {}
func (*StaticCall) exprNode()          {}
func (*ClassConstFetch) exprNode()     {}
func (*StaticPropertyFetch) exprNode() {}
func (*Index) exprNode()               {}
func (*New) exprNode()                 {}
func (*Unary) exprNode()               {}
func (*Binary) exprNode()              {}
func (*Assign) exprNode()              {}
func (*Ternary) exprNode()             {}
func (*Paren) exprNode()               {}
func (*Cast) exprNode()                {}
func (*Closure) exprNode()             {}
func (*ArrowFn) exprNode()             {}
func (*Match) exprNode()               {}

func (n *Variable) Span() token.Span            { return n.Pos }
func (n *Name) Span() token.Span                { return n.Pos }
func (n *IntLit) Span() token.Span              { return n.Pos }
func (n *FloatLit) Span() token.Span            { return n.Pos }
func (n *StringLit) Span() token.Span           { return n.Pos }
func (n *HeredocLit) Span() token.Span          { return n.Pos }
func (n *ArrayLit) Span() token.Span            { return n.Pos }
func (n *ArrayEntry) Span() token.Span          { return n.Pos }
func (n *Arg) Span() token.Span                 { return n.Pos }
func (n *Call) Span() token.Span                { return n.Pos }
func (n *MethodCall) Span() token.Span          { return n.Pos }
func (n *PropertyFetch) Span() token.Span       { return n.Pos }
func (n *StaticCall) Span() token.Span          { return n.Pos }
func (n *ClassConstFetch) Span() token.Span     { return n.Pos }
func (n *StaticPropertyFetch) Span() token.Span { return n.Pos }
func (n *Index) Span() token.Span               { return n.Pos }
func (n *New) Span() token.Span                 { return n.Pos }
func (n *Unary) Span() token.Span               { return n.Pos }
func (n *Binary) Span() token.Span              { return n.Pos }
func (n *Assign) Span() token.Span              { return n.Pos }
func (n *Ternary) Span() token.Span             { return n.Pos }
func (n *Paren) Span() token.Span               { return n.Pos }
func (n *Cast) Span() token.Span                { return n.Pos }
func (n *TypeHint) Span() token.Span            { return n.Pos }
func (n *Param) Span() token.Span               { return n.Pos }
func (n *ClosureUse) Span() token.Span          { return n.Pos }
func (n *Closure) Span() token.Span             { return n.Pos }
func (n *ArrowFn) Span() token.Span             { return n.Pos }
func (n *Match) Span() token.Span               { return n.Pos }
func (n *MatchArm) Span() token.Span            { return n.Pos }

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// Block is { ... }.
type Block struct {
	Stmts []Stmt
	Pos   token.Span
}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	X   Expr
	Pos token.Span
}

// EchoStmt is echo e1, e2, ...;
type EchoStmt struct {
	Exprs []Expr
	Pos   token.Span
}

// ReturnStmt is return [expr];
type ReturnStmt struct {
	X   Expr // nil for bare return
	Pos token.Span
}

// ElseifClause is one elseif branch.
type ElseifClause struct {
	Cond Expr
	Body *Block
	Pos  token.Span
}

// IfStmt is if/elseif/else with brace bodies.
type IfStmt struct {
	Cond    Expr
	Then    *Block
	Elseifs []*ElseifClause
	Else    *Block // nil when absent
	Pos     token.Span
}

// WhileStmt is while (cond) { ... }.
type WhileStmt struct {
	Cond Expr
	Body *Block
	Pos  token.Span
}

// DoWhileStmt is do { ... } while (cond);
type DoWhileStmt struct {
	Body *Block
	Cond Expr
	Pos  token.Span
}

// ForStmt is for (init; cond; post) { ... }.
type ForStmt struct {
	Init []Expr
	Cond []Expr
	Post []Expr
	Body *Block
	Pos  token.Span
}

// ForeachStmt is foreach (subject as [$k =>] [&]$v) { ... }.
type ForeachStmt struct {
	Subject Expr
	Key     Expr // nil when no key
	ByRef   bool
	Value   Expr
	Body    *Block
	Pos     token.Span
}

// CaseClause is one case (or default, when Cond is nil) of a switch.
type CaseClause struct {
	Cond  Expr
	Stmts []Stmt
	Pos   token.Span
}

// SwitchStmt is switch (subject) { case ...: }.
type SwitchStmt struct {
	Subject Expr
	Cases   []*CaseClause
	Pos     token.Span
}

// BreakStmt is break [n];
type BreakStmt struct {
	Level string // empty or the literal level
	Pos   token.Span
}

// ContinueStmt is continue [n];
type ContinueStmt struct {
	Level string
	Pos   token.Span
}

// ThrowStmt is throw expr;
type ThrowStmt struct {
	X   Expr
	Pos token.Span
}

// CatchClause is one catch (T1 | T2 $e) { ... }.
type CatchClause struct {
	Types []*Name
	Var   string // empty for catch without a variable
	Body  *Block
	Pos   token.Span
}

// TryStmt is try/catch/finally.
type TryStmt struct {
	Body    *Block
	Catches []*CatchClause
	Finally *Block // nil when absent
	Pos     token.Span
}

// DeclareDirective is one name=value inside declare().
type DeclareDirective struct {
	Name  string
	Value Expr
	Pos   token.Span
}

// DeclareStmt is declare(strict_types=1);
type DeclareStmt struct {
	Directives []*DeclareDirective
	Pos        token.Span
}

// NamespaceStmt is namespace Foo\Bar; (the unbraced form).
type NamespaceStmt struct {
	Name *Name // nil for the global namespace declaration
	Pos  token.Span
}

// UseType distinguishes use, use function, and use const imports.
type UseType uint8

const (
	UseClass UseType = iota
	UseFunction
	UseConst
)

// UseEntry is one imported name with an optional alias.
type UseEntry struct {
	Name  *Name
	Alias string
	Pos   token.Span
}

// UseStmt is a use import statement. Group imports are expanded into
// entries sharing the prefix at parse time.
type UseStmt struct {
	Type    UseType
	Entries []*UseEntry
	Pos     token.Span
}

// Attribute is one attribute inside an #[...] group.
type Attribute struct {
	Name *Name
	Args []*Arg
	Pos  token.Span
}

// AttributeGroup is one #[...] group.
type AttributeGroup struct {
	Attrs []*Attribute
	Pos   token.Span
}

// FunctionDecl is a named function declaration.
type FunctionDecl struct {
	Attrs      []*AttributeGroup
	ByRef      bool
	Name       string
	Params     []*Param
	ReturnType *TypeHint
	Body       *Block
	Pos        token.Span
}

// ClassKind distinguishes class-like declarations.
type ClassKind uint8

const (
	KindClass ClassKind = iota
	KindInterface
	KindTrait
	KindEnum
)

// ClassDecl is a class, interface, trait, or enum declaration.
type ClassDecl struct {
	Attrs       []*AttributeGroup
	Modifiers   []string // final, abstract, readonly
	Kind        ClassKind
	Name        string
	BackingType *TypeHint // enum backing type, nil otherwise
	Extends     []*Name
	Implements  []*Name
	Members     []Member
	Pos         token.Span
}

// ConstEntry is one name = value pair in a const declaration.
type ConstEntry struct {
	Name  string
	Value Expr
	Pos   token.Span
}

// ClassConstDecl is a class constant declaration.
type ClassConstDecl struct {
	Attrs     []*AttributeGroup
	Modifiers []string
	Type      *TypeHint
	Consts    []*ConstEntry
	Pos       token.Span
}

// PropertyEntry is one $name [= default] in a property declaration.
type PropertyEntry struct {
	Name    string // includes the $ sigil
	Default Expr
	Pos     token.Span
}

// PropertyDecl is a property declaration.
type PropertyDecl struct {
	Attrs     []*AttributeGroup
	Modifiers []string
	Type      *TypeHint
	Props     []*PropertyEntry
	Pos       token.Span
}

// MethodDecl is a method declaration; Body is nil for abstract and
// interface methods.
type MethodDecl struct {
	Attrs      []*AttributeGroup
	Modifiers  []string
	ByRef      bool
	Name       string
	Params     []*Param
	ReturnType *TypeHint
	Body       *Block
	Pos        token.Span
}

// EnumCaseDecl is one case of an enum.
type EnumCaseDecl struct {
	Attrs []*AttributeGroup
	Name  string
	Value Expr // nil for pure enums
	Pos   token.Span
}

// UseTraitDecl is a use TraitName; inside a class body.
type UseTraitDecl struct {
	Names []*Name
	Pos   token.Span
}

// ConstStmt is a top-level const declaration.
type ConstStmt struct {
	Consts []*ConstEntry
	Pos    token.Span
}

// InlineHTMLStmt is raw non-PHP content between close and open tags.
type InlineHTMLStmt struct {
	Text string
	Pos  token.Span
}

func (*Block) stmtNode()          {}
func (*ExprStmt) stmtNode()       {}
func (*EchoStmt) stmtNode()       {}
func (*ReturnStmt) stmtNode()     {}
func (*IfStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()      {}
func (*DoWhileStmt) stmtNode()    {}
func (*ForStmt) stmtNode()        {}
func (*ForeachStmt) stmtNode()    {}
func (*SwitchStmt) stmtNode()     {}
func (*BreakStmt) stmtNode()      {}
func (*ContinueStmt) stmtNode()   {}
func (*ThrowStmt) stmtNode()      {}
func (*TryStmt) stmtNode()        {}
func (*DeclareStmt) stmtNode()    {}
func (*NamespaceStmt) stmtNode()  {}
func (*UseStmt) stmtNode()        {}
func (*FunctionDecl) stmtNode()   {}
func (*ClassDecl) stmtNode()      {}
func (*ConstStmt) stmtNode()      {}
func (*InlineHTMLStmt) stmtNode() {}

func (*ClassConstDecl) memberNode() {}
func (*PropertyDecl) memberNode()   {}
func (*MethodDecl) memberNode()     {}
func (*EnumCaseDecl) memberNode()   {}
func (*UseTraitDecl) memberNode()   {}

func (n *Block) Span() token.Span            { return n.Pos }
func (n *ExprStmt) Span() token.Span         { return n.Pos }
func (n *EchoStmt) Span() token.Span         { return n.Pos }
func (n *ReturnStmt) Span() token.Span       { return n.Pos }
func (n *ElseifClause) Span() token.Span     { return n.Pos }
func (n *IfStmt) Span() token.Span           { return n.Pos }
func (n *WhileStmt) Span() token.Span        { return n.Pos }
func (n *DoWhileStmt) Span() token.Span      { return n.Pos }
func (n *ForStmt) Span() token.Span          { return n.Pos }
func (n *ForeachStmt) Span() token.Span      { return n.Pos }
func (n *CaseClause) Span() token.Span       { return n.Pos }
func (n *SwitchStmt) Span() token.Span       { return n.Pos }
func (n *BreakStmt) Span() token.Span        { return n.Pos }
func (n *ContinueStmt) Span() token.Span     { return n.Pos }
func (n *ThrowStmt) Span() token.Span        { return n.Pos }
func (n *CatchClause) Span() token.Span      { return n.Pos }
func (n *TryStmt) Span() token.Span          { return n.Pos }
func (n *DeclareDirective) Span() token.Span { return n.Pos }
func (n *DeclareStmt) Span() token.Span      { return n.Pos }
func (n *NamespaceStmt) Span() token.Span    { return n.Pos }
func (n *UseEntry) Span() token.Span         { return n.Pos }
func (n *UseStmt) Span() token.Span          { return n.Pos }
func (n *Attribute) Span() token.Span        { return n.Pos }
func (n *AttributeGroup) Span() token.Span   { return n.Pos }
func (n *FunctionDecl) Span() token.Span     { return n.Pos }
func (n *ClassDecl) Span() token.Span        { return n.Pos }
func (n *ConstEntry) Span() token.Span       { return n.Pos }
func (n *ClassConstDecl) Span() token.Span   { return n.Pos }
func (n *PropertyEntry) Span() token.Span    { return n.Pos }
func (n *PropertyDecl) Span() token.Span     { return n.Pos }
func (n *MethodDecl) Span() token.Span       { return n.Pos }
func (n *EnumCaseDecl) Span() token.Span     { return n.Pos }
func (n *UseTraitDecl) Span() token.Span     { return n.Pos }
func (n *ConstStmt) Span() token.Span        { return n.Pos }
func (n *InlineHTMLStmt) Span() token.Span   { return n.Pos }

// String returns the backslash-joined name, with a leading backslash
// when the name is fully qualified.
func (n *Name) String() string {
	s := ""
	if n.Rooted {
		s = "\\"
	}
	for i, p := range n.Parts {
		if i > 0 {
			s += "\\"
		}
		s += p
	}
	return s
}
