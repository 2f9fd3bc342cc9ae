package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigitcukuren/phpfmt/pkg/php/ast"
)

func parseOne(t *testing.T, src string) ast.Stmt {
	t.Helper()
	prog, _, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 1)
	return prog.Stmts[0]
}

func TestParseAssignment(t *testing.T) {
	stmt := parseOne(t, "<?php $x = 1 + 2 * 3;")
	es, ok := stmt.(*ast.ExprStmt)
	require.True(t, ok)
	as, ok := es.X.(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, "=", as.Op)

	sum, ok := as.Value.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", sum.Op)
	prod, ok := sum.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "*", prod.Op)
}

func TestParseConcatBindsBelowArithmetic(t *testing.T) {
	stmt := parseOne(t, `<?php $s = 'n=' . $a + $b;`)
	as := stmt.(*ast.ExprStmt).X.(*ast.Assign)
	cat, ok := as.Value.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ".", cat.Op)
	sum, ok := cat.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", sum.Op)
}

func TestParsePowIsRightAssociative(t *testing.T) {
	stmt := parseOne(t, "<?php $x = 2 ** 3 ** 2;")
	as := stmt.(*ast.ExprStmt).X.(*ast.Assign)
	outer := as.Value.(*ast.Binary)
	assert.Equal(t, "**", outer.Op)
	_, leftIsLit := outer.Left.(*ast.IntLit)
	assert.True(t, leftIsLit)
	inner, ok := outer.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "**", inner.Op)
}

func TestParseTernaryShortForm(t *testing.T) {
	stmt := parseOne(t, "<?php $x = $a ?: $b;")
	tern := stmt.(*ast.ExprStmt).X.(*ast.Assign).Value.(*ast.Ternary)
	assert.Nil(t, tern.Then)
	assert.NotNil(t, tern.Else)
}

func TestParseMethodChain(t *testing.T) {
	stmt := parseOne(t, "<?php $q->where('a')->limit(10)->get();")
	call, ok := stmt.(*ast.ExprStmt).X.(*ast.MethodCall)
	require.True(t, ok)
	assert.Equal(t, "get", call.Name)
	mid := call.Receiver.(*ast.MethodCall)
	assert.Equal(t, "limit", mid.Name)
	first := mid.Receiver.(*ast.MethodCall)
	assert.Equal(t, "where", first.Name)
	_, ok = first.Receiver.(*ast.Variable)
	assert.True(t, ok)
}

func TestParseNullsafeAndStatic(t *testing.T) {
	stmt := parseOne(t, "<?php $a?->b()::C;")
	cc, ok := stmt.(*ast.ExprStmt).X.(*ast.ClassConstFetch)
	require.True(t, ok)
	assert.Equal(t, "C", cc.Name)
	mc := cc.Class.(*ast.MethodCall)
	assert.True(t, mc.Nullsafe)
}

func TestParseArrayLiteral(t *testing.T) {
	stmt := parseOne(t, "<?php $a = ['k' => 1, 2, ...$rest,];")
	lit := stmt.(*ast.ExprStmt).X.(*ast.Assign).Value.(*ast.ArrayLit)
	assert.False(t, lit.Long)
	require.Len(t, lit.Entries, 3)
	assert.NotNil(t, lit.Entries[0].Key)
	assert.Nil(t, lit.Entries[1].Key)
	assert.True(t, lit.Entries[2].Spread)
}

func TestParseLongArraySyntax(t *testing.T) {
	stmt := parseOne(t, "<?php $a = array(1, 2);")
	lit := stmt.(*ast.ExprStmt).X.(*ast.Assign).Value.(*ast.ArrayLit)
	assert.True(t, lit.Long)
	assert.Len(t, lit.Entries, 2)
}

func TestParseClosure(t *testing.T) {
	stmt := parseOne(t, "<?php $f = static function (int $a, &$b) use ($c): string { return $a; };")
	c := stmt.(*ast.ExprStmt).X.(*ast.Assign).Value.(*ast.Closure)
	assert.True(t, c.Static)
	require.Len(t, c.Params, 2)
	assert.Equal(t, []string{"int"}, c.Params[0].Type.Types)
	assert.True(t, c.Params[1].ByRef)
	require.Len(t, c.Uses, 1)
	assert.Equal(t, "$c", c.Uses[0].Name)
	assert.Equal(t, []string{"string"}, c.ReturnType.Types)
}

func TestParseArrowFunction(t *testing.T) {
	stmt := parseOne(t, "<?php $f = fn ($x) => $x * 2;")
	fn := stmt.(*ast.ExprStmt).X.(*ast.Assign).Value.(*ast.ArrowFn)
	require.Len(t, fn.Params, 1)
	_, ok := fn.Body.(*ast.Binary)
	assert.True(t, ok)
}

func TestParseMatch(t *testing.T) {
	stmt := parseOne(t, `<?php $v = match ($x) { 1, 2 => 'low', default => throw new Oops(), };`)
	m := stmt.(*ast.ExprStmt).X.(*ast.Assign).Value.(*ast.Match)
	require.Len(t, m.Arms, 2)
	assert.Len(t, m.Arms[0].Conds, 2)
	assert.Nil(t, m.Arms[1].Conds)
	thr := m.Arms[1].Body.(*ast.Unary)
	assert.Equal(t, "throw", thr.Op)
}

func TestParseIfElseifElse(t *testing.T) {
	stmt := parseOne(t, "<?php if ($a) { x(); } elseif ($b) { y(); } else if ($c) { z(); } else { w(); }")
	ifs := stmt.(*ast.IfStmt)
	// "else if" folds into the elseif chain.
	assert.Len(t, ifs.Elseifs, 2)
	assert.NotNil(t, ifs.Else)
}

func TestParseUnbracedBodyGetsBlock(t *testing.T) {
	stmt := parseOne(t, "<?php if ($a) x();")
	ifs := stmt.(*ast.IfStmt)
	require.NotNil(t, ifs.Then)
	assert.Len(t, ifs.Then.Stmts, 1)
}

func TestParseForeach(t *testing.T) {
	stmt := parseOne(t, "<?php foreach ($items as $k => &$v) { use_($k, $v); }")
	fe := stmt.(*ast.ForeachStmt)
	assert.NotNil(t, fe.Key)
	assert.True(t, fe.ByRef)
}

func TestParseTryCatchFinally(t *testing.T) {
	stmt := parseOne(t, "<?php try { a(); } catch (FooError | BarError $e) { b(); } finally { c(); }")
	try := stmt.(*ast.TryStmt)
	require.Len(t, try.Catches, 1)
	assert.Len(t, try.Catches[0].Types, 2)
	assert.Equal(t, "$e", try.Catches[0].Var)
	assert.NotNil(t, try.Finally)
}

func TestParseGroupUseExpands(t *testing.T) {
	stmt := parseOne(t, `<?php use App\Models\{User, Post as Entry};`)
	use := stmt.(*ast.UseStmt)
	require.Len(t, use.Entries, 2)
	assert.Equal(t, `App\Models\User`, use.Entries[0].Name.String())
	assert.Equal(t, `App\Models\Post`, use.Entries[1].Name.String())
	assert.Equal(t, "Entry", use.Entries[1].Alias)
}

func TestParseClassDecl(t *testing.T) {
	src := `<?php
#[Entity]
final class User extends Model implements Jsonable, Countable
{
    public const STATUS = 'active';
    private ?string $name = null;

    public function __construct(private readonly int $id) {}

    abstract protected function load(): static;
}`
	stmt := parseOne(t, src)
	cls := stmt.(*ast.ClassDecl)
	assert.Equal(t, ast.KindClass, cls.Kind)
	assert.Equal(t, []string{"final"}, cls.Modifiers)
	require.Len(t, cls.Attrs, 1)
	assert.Len(t, cls.Implements, 2)
	require.Len(t, cls.Members, 4)

	konst := cls.Members[0].(*ast.ClassConstDecl)
	assert.Equal(t, []string{"public"}, konst.Modifiers)

	prop := cls.Members[1].(*ast.PropertyDecl)
	assert.True(t, prop.Type.Nullable)

	ctor := cls.Members[2].(*ast.MethodDecl)
	require.Len(t, ctor.Params, 1)
	assert.Equal(t, []string{"private", "readonly"}, ctor.Params[0].Modifiers)

	abs := cls.Members[3].(*ast.MethodDecl)
	assert.Nil(t, abs.Body)
}

func TestParseEnum(t *testing.T) {
	src := `<?php
enum Suit: string
{
    case Hearts = 'H';
    case Spades = 'S';

    public function color(): string
    {
        return match ($this) {
            Suit::Hearts => 'red',
            default => 'black',
        };
    }
}`
	cls := parseOne(t, src).(*ast.ClassDecl)
	assert.Equal(t, ast.KindEnum, cls.Kind)
	require.NotNil(t, cls.BackingType)
	assert.Equal(t, []string{"string"}, cls.BackingType.Types)
	_, isCase := cls.Members[0].(*ast.EnumCaseDecl)
	assert.True(t, isCase)
}

func TestParseFunctionDecl(t *testing.T) {
	stmt := parseOne(t, "<?php function add(int|float $a, int|float ...$rest): int|float { return $a; }")
	fd := stmt.(*ast.FunctionDecl)
	assert.Equal(t, "add", fd.Name)
	assert.Equal(t, []string{"int", "float"}, fd.Params[0].Type.Types)
	assert.True(t, fd.Params[1].Variadic)
}

func TestParseConstStmt(t *testing.T) {
	stmt := parseOne(t, "<?php const LIMIT = 100, OFFSET = 0;")
	cs := stmt.(*ast.ConstStmt)
	require.Len(t, cs.Consts, 2)
	assert.Equal(t, "LIMIT", cs.Consts[0].Name)
}

func TestParseDeclareAndNamespace(t *testing.T) {
	prog, _, err := Parse([]byte("<?php declare(strict_types=1);\nnamespace App\\Http;\n"))
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 2)
	ds := prog.Stmts[0].(*ast.DeclareStmt)
	assert.Equal(t, "strict_types", ds.Directives[0].Name)
	ns := prog.Stmts[1].(*ast.NamespaceStmt)
	assert.Equal(t, `App\Http`, ns.Name.String())
}

func TestParseInlineHTMLRoundTrip(t *testing.T) {
	prog, _, err := Parse([]byte("<html>\n<?php echo 1; ?>\n</html>"))
	require.NoError(t, err)
	assert.Equal(t, "<html>\n", prog.LeadingHTML)
	require.Len(t, prog.Stmts, 2)
	_, isEcho := prog.Stmts[0].(*ast.EchoStmt)
	assert.True(t, isEcho)
	_, isHTML := prog.Stmts[1].(*ast.InlineHTMLStmt)
	assert.True(t, isHTML)
}

func TestParseErrorCarriesPosition(t *testing.T) {
	_, _, err := Parse([]byte("<?php\n$x = ;\n"))
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
	assert.Equal(t, 6, perr.Col)
}

func TestParseTriviaSurvives(t *testing.T) {
	src := `<?php
// leading
$x = 1; // trailing
`
	_, trivia, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, trivia, 2)
	assert.False(t, trivia[0].SameLine())
	assert.True(t, trivia[1].SameLine())
}

func TestParseRejectsAlternativeSyntax(t *testing.T) {
	_, _, err := Parse([]byte("<?php if ($a): x(); endif;"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alternative syntax")
}
