package rgverify

import (
	"fmt"
	"strings"
)

// Sort is the type of a Symbol. The core only ever deals with
// integers (spec.md Non-goals: non-integer data), but the sort is
// kept explicit so the Oracle contract reads the same way it would
// for a richer theory.
type Sort int

const (
	SortInt Sort = iota
)

// Symbol is a named integer variable: a program global, a per-thread
// local, a per-thread PC symbol, or a symbol freshly minted during SP
// computation. Symbol identity is never compared structurally inside
// the core engine — only through Oracle.SymbolEqual. The Name field
// exists for printing and for the default Oracle's own bookkeeping,
// not as a shortcut for identity.
type Symbol struct {
	Name string
	Sort Sort
}

func (s Symbol) String() string { return s.Name }

// ArithOp is an arithmetic operator over integer terms.
type ArithOp int

const (
	OpAdd ArithOp = iota
	OpSub
	OpMul
	OpDiv
)

func (op ArithOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

// Term is an arithmetic expression over integer Symbols.
type Term interface {
	isTerm()
	String() string
}

type ConstTerm struct{ Value int64 }

func (ConstTerm) isTerm()          {}
func (t ConstTerm) String() string { return fmt.Sprintf("%d", t.Value) }

type VarTerm struct{ Sym Symbol }

func (VarTerm) isTerm()          {}
func (t VarTerm) String() string { return t.Sym.Name }

type BinTerm struct {
	Op          ArithOp
	Left, Right Term
}

func (BinTerm) isTerm() {}
func (t BinTerm) String() string {
	return fmt.Sprintf("(%s %s %s)", t.Left, t.Op, t.Right)
}

func IntConst(v int64) Term        { return ConstTerm{Value: v} }
func VarT(s Symbol) Term           { return VarTerm{Sym: s} }
func Add(l, r Term) Term           { return BinTerm{Op: OpAdd, Left: l, Right: r} }
func Sub(l, r Term) Term           { return BinTerm{Op: OpSub, Left: l, Right: r} }
func Mul(l, r Term) Term           { return BinTerm{Op: OpMul, Left: l, Right: r} }
func Div(l, r Term) Term           { return BinTerm{Op: OpDiv, Left: l, Right: r} }

// CmpOp is a comparison operator between two arithmetic terms.
type CmpOp int

const (
	CmpLt CmpOp = iota
	CmpLe
	CmpGt
	CmpGe
	CmpEq
	CmpNe
)

func (op CmpOp) String() string {
	switch op {
	case CmpLt:
		return "<"
	case CmpLe:
		return "<="
	case CmpGt:
		return ">"
	case CmpGe:
		return ">="
	case CmpEq:
		return "=="
	case CmpNe:
		return "!="
	default:
		return "?"
	}
}

func negateCmp(op CmpOp) CmpOp {
	switch op {
	case CmpLt:
		return CmpGe
	case CmpLe:
		return CmpGt
	case CmpGt:
		return CmpLe
	case CmpGe:
		return CmpLt
	case CmpEq:
		return CmpNe
	case CmpNe:
		return CmpEq
	default:
		panic("rgverify: unknown comparison operator")
	}
}

// Formula is an opaque symbolic first-order predicate over integer
// variables, per spec.md's Formula Oracle contract (4.1). The core
// never inspects a Formula's shape directly except through the
// builders and the Oracle — pattern matching on the concrete variants
// below is confined to this file and the oracle_*.go files.
type Formula interface {
	isFormula()
	String() string
}

type BoolFormula struct{ Value bool }

func (BoolFormula) isFormula() {}
func (f BoolFormula) String() string {
	if f.Value {
		return "true"
	}
	return "false"
}

type NotFormula struct{ Operand Formula }

func (NotFormula) isFormula()          {}
func (f NotFormula) String() string { return fmt.Sprintf("!(%s)", f.Operand) }

type AndFormula struct{ Operands []Formula }

func (AndFormula) isFormula() {}
func (f AndFormula) String() string { return joinFormulas(f.Operands, " && ") }

type OrFormula struct{ Operands []Formula }

func (OrFormula) isFormula() {}
func (f OrFormula) String() string { return joinFormulas(f.Operands, " || ") }

type ExistsFormula struct {
	Vars []Symbol
	Body Formula
}

func (ExistsFormula) isFormula() {}
func (f ExistsFormula) String() string {
	names := make([]string, len(f.Vars))
	for i, v := range f.Vars {
		names[i] = v.Name
	}
	return fmt.Sprintf("exists %s :: (%s)", strings.Join(names, ", "), f.Body)
}

type CmpFormula struct {
	Op          CmpOp
	Left, Right Term
}

func (CmpFormula) isFormula() {}
func (f CmpFormula) String() string {
	return fmt.Sprintf("%s %s %s", f.Left, f.Op, f.Right)
}

func joinFormulas(fs []Formula, sep string) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = fmt.Sprintf("(%s)", f)
	}
	return strings.Join(parts, sep)
}

// True and False are the Formula-level distinguished constants ⊤ and
// ⊥ from spec.md's Data Model.
func True() Formula  { return BoolFormula{Value: true} }
func False() Formula { return BoolFormula{Value: false} }

func IsTrue(f Formula) bool  { b, ok := f.(BoolFormula); return ok && b.Value }
func IsFalse(f Formula) bool { b, ok := f.(BoolFormula); return ok && !b.Value }

// Not builds a negation, collapsing double negation and the boolean
// constants eagerly so callers see a flat structure before Simplify
// ever runs.
func Not(f Formula) Formula {
	switch g := f.(type) {
	case BoolFormula:
		return BoolFormula{Value: !g.Value}
	case NotFormula:
		return g.Operand
	default:
		return NotFormula{Operand: f}
	}
}

// And builds a flattened, constant-absorbing conjunction.
func And(fs ...Formula) Formula {
	var out []Formula
	for _, f := range fs {
		switch g := f.(type) {
		case BoolFormula:
			if !g.Value {
				return False()
			}
			// drop True conjuncts
		case AndFormula:
			out = append(out, g.Operands...)
		default:
			out = append(out, f)
		}
	}
	switch len(out) {
	case 0:
		return True()
	case 1:
		return out[0]
	default:
		return AndFormula{Operands: out}
	}
}

// Or builds a flattened, constant-absorbing disjunction.
func Or(fs ...Formula) Formula {
	var out []Formula
	for _, f := range fs {
		switch g := f.(type) {
		case BoolFormula:
			if g.Value {
				return True()
			}
		case OrFormula:
			out = append(out, g.Operands...)
		default:
			out = append(out, f)
		}
	}
	switch len(out) {
	case 0:
		return False()
	case 1:
		return out[0]
	default:
		return OrFormula{Operands: out}
	}
}

// Exists builds an existential quantifier, dropping it entirely when
// there is nothing left to bind.
func Exists(vars []Symbol, body Formula) Formula {
	if len(vars) == 0 {
		return body
	}
	return ExistsFormula{Vars: vars, Body: body}
}

func Implies(cond, then Formula) Formula { return Or(Not(cond), then) }

func Lt(l, r Term) Formula { return CmpFormula{Op: CmpLt, Left: l, Right: r} }
func Le(l, r Term) Formula { return CmpFormula{Op: CmpLe, Left: l, Right: r} }
func Gt(l, r Term) Formula { return CmpFormula{Op: CmpGt, Left: l, Right: r} }
func Ge(l, r Term) Formula { return CmpFormula{Op: CmpGe, Left: l, Right: r} }
func Eq(l, r Term) Formula { return CmpFormula{Op: CmpEq, Left: l, Right: r} }
func Ne(l, r Term) Formula { return CmpFormula{Op: CmpNe, Left: l, Right: r} }

// termKey and formulaKey produce a canonical textual key for purely
// syntactic comparisons (deduplication, reflexive-atom folding). They
// are never used as a substitute for Oracle.SymbolEqual when two
// distinct symbols might denote the same value; they only ever say
// "these two terms/formulas were built identically."
func termKey(t Term) string { return t.String() }

func formulaKey(f Formula) string { return f.String() }
