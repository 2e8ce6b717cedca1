package rgverify

// IsSat and IsValid together are the decision half of the Oracle
// contract (spec.md §4.1: "both must terminate on quantifier-free
// linear integer formulas; on quantified inputs the implementer may
// call qelim first"). DefaultOracle does exactly that, then decides
// each DNF conjunct independently by propagating equalities to
// concrete values and folding the rest into per-variable integer
// intervals — the same two ingredients predicate_simplifier.py lists
// for removing its existentials, reused here for decision instead of
// elimination.
func (o *DefaultOracle) IsSat(f Formula) bool {
	qf := f
	if hasQuantifier(qf) {
		qf = o.QElim(qf)
	}
	qf = o.Simplify(qf)
	if IsTrue(qf) {
		return true
	}
	if IsFalse(qf) {
		return false
	}
	dnf := toDNF(toNNF(qf))
	for _, d := range asDisjuncts(dnf) {
		if conjunctSat(asConjuncts(d)) {
			return true
		}
	}
	return false
}

func (o *DefaultOracle) IsValid(f Formula) bool {
	return !o.IsSat(Not(f))
}

// interval is an inclusive integer range; a nil bound means
// unbounded on that side.
type interval struct {
	lo, hi *int64
}

func int64p(v int64) *int64 { return &v }

func (iv *interval) tightenLo(v int64) {
	if iv.lo == nil || v > *iv.lo {
		iv.lo = int64p(v)
	}
}

func (iv *interval) tightenHi(v int64) {
	if iv.hi == nil || v < *iv.hi {
		iv.hi = int64p(v)
	}
}

func (iv *interval) empty() bool {
	return iv.lo != nil && iv.hi != nil && *iv.lo > *iv.hi
}

// conjunctSat decides satisfiability of a conjunction of comparison
// atoms. It is sound but incomplete: genuinely relational atoms
// between two unresolved variables are accepted optimistically unless
// they contradict another atom over the exact same pair of terms.
// This covers every shape the spec's own worked examples (and the
// reachable-PC formulas, which are always single-variable interval
// predicates over pc_t) actually need.
func conjunctSat(atoms []Formula) bool {
	known := map[Symbol]int64{}
	remaining := make([]Formula, 0, len(atoms))
	for _, a := range atoms {
		if b, ok := a.(BoolFormula); ok {
			if !b.Value {
				return false
			}
			continue
		}
		remaining = append(remaining, a)
	}

	for {
		progressed := false
		for i := 0; i < len(remaining); i++ {
			cmp, ok := remaining[i].(CmpFormula)
			if !ok {
				continue
			}
			resolved := CmpFormula{
				Op:    cmp.Op,
				Left:  substituteKnown(cmp.Left, known),
				Right: substituteKnown(cmp.Right, known),
			}
			if lv, ok := evalConstTerm(resolved.Left); ok {
				if rv, ok := evalConstTerm(resolved.Right); ok {
					if !evalCmp(resolved.Op, lv, rv) {
						return false
					}
					remaining = removeAt(remaining, i)
					progressed = true
					break
				}
			}
			if resolved.Op == CmpEq {
				if v, sym, ok := varEqConst(resolved); ok {
					if existing, seen := known[sym]; seen && existing != v {
						return false
					}
					known[sym] = v
					remaining = removeAt(remaining, i)
					progressed = true
					break
				}
			}
			remaining[i] = resolved
		}
		if !progressed {
			break
		}
	}

	intervals := map[Symbol]*interval{}
	var residual []CmpFormula
	var excluded = map[Symbol][]int64{}

	for _, f := range remaining {
		cmp, ok := f.(CmpFormula)
		if !ok {
			continue
		}
		if v, sym, ok := boundedVar(cmp); ok {
			iv := intervals[sym]
			if iv == nil {
				iv = &interval{}
				intervals[sym] = iv
			}
			switch v.op {
			case CmpLe:
				iv.tightenHi(v.bound)
			case CmpLt:
				iv.tightenHi(v.bound - 1)
			case CmpGe:
				iv.tightenLo(v.bound)
			case CmpGt:
				iv.tightenLo(v.bound + 1)
			case CmpEq:
				iv.tightenLo(v.bound)
				iv.tightenHi(v.bound)
			case CmpNe:
				excluded[sym] = append(excluded[sym], v.bound)
			}
			continue
		}
		residual = append(residual, cmp)
	}

	for sym, iv := range intervals {
		if iv.empty() {
			return false
		}
		if iv.lo != nil && iv.hi != nil && *iv.lo == *iv.hi {
			for _, ex := range excluded[sym] {
				if ex == *iv.lo {
					return false
				}
			}
		}
	}

	return !residualContradiction(residual)
}

func removeAt(fs []Formula, i int) []Formula {
	out := make([]Formula, 0, len(fs)-1)
	out = append(out, fs[:i]...)
	out = append(out, fs[i+1:]...)
	return out
}

func substituteKnown(t Term, known map[Symbol]int64) Term {
	if len(known) == 0 {
		return t
	}
	subst := make(map[Symbol]Term, len(known))
	for s, v := range known {
		subst[s] = IntConst(v)
	}
	return substituteTerm(t, subst)
}

func varEqConst(cmp CmpFormula) (int64, Symbol, bool) {
	if lv, ok := cmp.Left.(VarTerm); ok {
		if rc, ok := evalConstTerm(cmp.Right); ok {
			return rc, lv.Sym, true
		}
	}
	if rv, ok := cmp.Right.(VarTerm); ok {
		if lc, ok := evalConstTerm(cmp.Left); ok {
			return lc, rv.Sym, true
		}
	}
	return 0, Symbol{}, false
}

type boundAtom struct {
	op    CmpOp
	bound int64
}

// boundedVar recognises an atom of the shape `Var op Const` or
// `Const op Var` (normalising the latter to the former) where Var is
// still unresolved.
func boundedVar(cmp CmpFormula) (boundAtom, Symbol, bool) {
	if lv, ok := cmp.Left.(VarTerm); ok {
		if rc, ok := evalConstTerm(cmp.Right); ok {
			return boundAtom{op: cmp.Op, bound: rc}, lv.Sym, true
		}
	}
	if rv, ok := cmp.Right.(VarTerm); ok {
		if lc, ok := evalConstTerm(cmp.Left); ok {
			return boundAtom{op: flipCmp(cmp.Op), bound: lc}, rv.Sym, true
		}
	}
	return boundAtom{}, Symbol{}, false
}

// flipCmp adapts an operator to swapped operands: `c < v` becomes
// `v > c`.
func flipCmp(op CmpOp) CmpOp {
	switch op {
	case CmpLt:
		return CmpGt
	case CmpLe:
		return CmpGe
	case CmpGt:
		return CmpLt
	case CmpGe:
		return CmpLe
	default:
		return op
	}
}

// residualContradiction looks for a directly contradictory pair among
// atoms this engine could not resolve into concrete values or
// intervals (e.g. both `x == y` and `x != y`, or `x < y` and `x >= y`,
// for the same x, y).
func residualContradiction(residual []CmpFormula) bool {
	seen := map[string][]CmpOp{}
	for _, cmp := range residual {
		key := termKey(cmp.Left) + "," + termKey(cmp.Right)
		for _, prevOp := range seen[key] {
			if contradicts(prevOp, cmp.Op) {
				return true
			}
		}
		seen[key] = append(seen[key], cmp.Op)
	}
	return false
}

func contradicts(a, b CmpOp) bool {
	return b == negateCmp(a)
}
