package symbolic

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"

	"github.com/2x3systems/goaeon/goaeon"
)

// ModelExpr is a network in the .aeon text format:
//
//	A -> B      # activation
//	B -| A      # inhibition
//	C -? C      # unknown monotonicity; a trailing '?' marks a non-observable regulation
//	$A: B & !p
//	$B: f(A, C) | (A <=> C)
type ModelExpr struct {
	Items []*ModelItem `@@*`
}

type ModelItem struct {
	Update     *ModelUpdate     `  @@`
	Regulation *ModelRegulation `| @@`
}

type ModelRegulation struct {
	Source string `@Ident`
	Kind   string `@Arrow`
	Target string `@Ident`
}

type ModelUpdate struct {
	Target string   `"$" @Ident ":"`
	Fn     *FnExpr `@@`
}

type FnExpr struct {
	Left *FnOrExpr  `@@`
	Tail *FnImpTail `@@?`
}

type FnImpTail struct {
	Op    string  `@( "<=>" | "=>" )`
	Right *FnExpr `@@`
}

type FnOrExpr struct {
	Terms []*FnXorExpr `@@ ( "|" @@ )*`
}

type FnXorExpr struct {
	Terms []*FnAndExpr `@@ ( "^" @@ )*`
}

type FnAndExpr struct {
	Terms []*FnUnary `@@ ( "&" @@ )*`
}

type FnUnary struct {
	Not  *FnUnary `  "!" @@`
	Atom *FnAtom  `| @@`
}

type FnAtom struct {
	Sub *FnExpr `  "(" @@ ")"`
	Ref *FnRef  `| @@`
}

type FnRef struct {
	Name string  `@Ident`
	Call *FnArgs `@@?`
}

type FnArgs struct {
	Open bool     `@"("`
	Args []string `( @Ident ( "," @Ident )* )? ")"`
}

var sModelLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Arrow", Pattern: `-[>|?]\??`},
	{Name: "Op", Pattern: `<=>|=>|[!&|^$:(),]`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

var sParseModelExpr = participle.MustBuild[ModelExpr](
	participle.Lexer(sModelLexer),
	participle.Elide("Comment", "Whitespace"),
)

// ParseNetwork reads a BooleanNetwork from its .aeon text form.
// Variables are sorted by name; identifiers in update functions that are not variables become parameters.
func ParseNetwork(modelText string) (*BooleanNetwork, error) {
	expr, err := sParseModelExpr.ParseString("", modelText)
	if err != nil {
		return nil, errors.Wrap(goaeon.ErrBadModel, err.Error())
	}

	// Variables are every regulation endpoint and update target
	var names []string
	seen := map[string]bool{}
	addName := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, item := range expr.Items {
		if reg := item.Regulation; reg != nil {
			addName(reg.Source)
			addName(reg.Target)
		} else {
			addName(item.Update.Target)
		}
	}

	bn, err := NewBooleanNetwork(names...)
	if err != nil {
		return nil, err
	}

	for _, item := range expr.Items {
		if reg := item.Regulation; reg != nil {
			if err = bn.AddRegulation(reg.resolve(bn)); err != nil {
				return nil, err
			}
		}
	}

	for _, item := range expr.Items {
		if up := item.Update; up != nil {
			target, _ := bn.FindVariable(up.Target)
			fn, err := up.Fn.resolve(bn)
			if err != nil {
				return nil, errors.Wrapf(err, "update function of %q", up.Target)
			}
			if err = bn.SetUpdate(target, fn); err != nil {
				return nil, err
			}
		}
	}

	return bn, nil
}

func (reg *ModelRegulation) resolve(bn *BooleanNetwork) Regulation {
	src, _ := bn.FindVariable(reg.Source)
	dst, _ := bn.FindVariable(reg.Target)

	r := Regulation{
		Regulator:  src,
		Target:     dst,
		Observable: len(reg.Kind) == 2,
	}
	switch reg.Kind[1] {
	case '>':
		r.Monotonicity = Activation
	case '|':
		r.Monotonicity = Inhibition
	}
	return r
}

func (e *FnExpr) resolve(bn *BooleanNetwork) (*FnUpdate, error) {
	left, err := e.Left.resolve(bn)
	if err != nil || e.Tail == nil {
		return left, err
	}
	right, err := e.Tail.Right.resolve(bn)
	if err != nil {
		return nil, err
	}
	op := FnImp
	if e.Tail.Op == "<=>" {
		op = FnIff
	}
	return &FnUpdate{Op: op, Operands: []*FnUpdate{left, right}}, nil
}

func (e *FnOrExpr) resolve(bn *BooleanNetwork) (*FnUpdate, error) {
	terms := make([]*FnUpdate, 0, len(e.Terms))
	for _, t := range e.Terms {
		fn, err := t.resolve(bn)
		if err != nil {
			return nil, err
		}
		terms = append(terms, fn)
	}
	return joinTerms(FnOr, terms), nil
}

func (e *FnXorExpr) resolve(bn *BooleanNetwork) (*FnUpdate, error) {
	terms := make([]*FnUpdate, 0, len(e.Terms))
	for _, t := range e.Terms {
		fn, err := t.resolve(bn)
		if err != nil {
			return nil, err
		}
		terms = append(terms, fn)
	}
	// xor is binary; fold left
	fn := terms[0]
	for _, t := range terms[1:] {
		fn = &FnUpdate{Op: FnXor, Operands: []*FnUpdate{fn, t}}
	}
	return fn, nil
}

func (e *FnAndExpr) resolve(bn *BooleanNetwork) (*FnUpdate, error) {
	terms := make([]*FnUpdate, 0, len(e.Terms))
	for _, t := range e.Terms {
		fn, err := t.resolve(bn)
		if err != nil {
			return nil, err
		}
		terms = append(terms, fn)
	}
	return joinTerms(FnAnd, terms), nil
}

func joinTerms(op FnOp, terms []*FnUpdate) *FnUpdate {
	if len(terms) == 1 {
		return terms[0]
	}
	return &FnUpdate{Op: op, Operands: terms}
}

func (u *FnUnary) resolve(bn *BooleanNetwork) (*FnUpdate, error) {
	if u.Not != nil {
		inner, err := u.Not.resolve(bn)
		if err != nil {
			return nil, err
		}
		return &FnUpdate{Op: FnNot, Operands: []*FnUpdate{inner}}, nil
	}
	if u.Atom.Sub != nil {
		return u.Atom.Sub.resolve(bn)
	}
	return u.Atom.Ref.resolve(bn)
}

func (ref *FnRef) resolve(bn *BooleanNetwork) (*FnUpdate, error) {
	if ref.Call == nil {
		switch ref.Name {
		case "true":
			return &FnUpdate{Op: FnConst, Value: true}, nil
		case "false":
			return &FnUpdate{Op: FnConst, Value: false}, nil
		}
		if v, isVar := bn.FindVariable(ref.Name); isVar {
			return &FnUpdate{Op: FnVar, Var: v}, nil
		}
		id, err := bn.AddParameter(ref.Name, 0)
		if err != nil {
			return nil, err
		}
		return &FnUpdate{Op: FnParam, Param: id}, nil
	}

	args, err := bn.ResolveVariables(ref.Call.Args)
	if err != nil {
		return nil, errors.Wrapf(err, "argument of %q", ref.Name)
	}
	id, err := bn.AddParameter(ref.Name, len(args))
	if err != nil {
		return nil, err
	}
	return &FnUpdate{Op: FnParam, Param: id, Args: args}, nil
}
