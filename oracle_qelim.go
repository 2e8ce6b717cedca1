package rgverify

// QElim eliminates quantifiers over linear integer arithmetic.
// spec.md §4.1 requires it to return a quantifier-free formula for
// inputs within that fragment; §9 warns against open-coding
// elimination in general, but the core only ever asks for
// elimination of the specific shape the SP and interference
// transformers build: ∃y,... :: y == E && rest, i.e. exactly the
// one-point rule from predicate_simplifier.py ("A.56: (exists x :: x
// == E && A) == A[x <- E]").
func (o *DefaultOracle) QElim(f Formula) Formula {
	switch g := f.(type) {
	case ExistsFormula:
		return o.qelimExists(g.Vars, o.QElim(g.Body))
	case AndFormula:
		out := make([]Formula, len(g.Operands))
		for i, x := range g.Operands {
			out[i] = o.QElim(x)
		}
		return And(out...)
	case OrFormula:
		out := make([]Formula, len(g.Operands))
		for i, x := range g.Operands {
			out[i] = o.QElim(x)
		}
		return Or(out...)
	case NotFormula:
		return Not(o.QElim(g.Operand))
	default:
		return f
	}
}

func (o *DefaultOracle) qelimExists(vars []Symbol, body Formula) Formula {
	dnf := toDNF(toNNF(body))
	disjuncts := asDisjuncts(dnf)
	out := make([]Formula, len(disjuncts))
	for i, d := range disjuncts {
		out[i] = o.eliminateOverConjunct(vars, asConjuncts(d))
	}
	return Or(out...)
}

// eliminateOverConjunct repeatedly applies the one-point rule to
// remove each bound variable that appears in an equality atom within
// this conjunction, then drops any bound variable left over that
// simply never occurred free (step 3 of predicate_simplifier.py). Any
// variable that survives both steps could not be eliminated in this
// disjunct and is re-quantified — which, for any formula the core
// itself produces, never happens (see hasQuantifier and its callers
// in sp.go).
func (o *DefaultOracle) eliminateOverConjunct(vars []Symbol, atoms []Formula) Formula {
	remaining := append([]Symbol(nil), vars...)

	for {
		progressed := false
		for i, v := range remaining {
			idx, replacement, ok := findOnePointAtom(v, atoms)
			if !ok {
				continue
			}
			subst := map[Symbol]Term{v: replacement}
			newAtoms := make([]Formula, 0, len(atoms)-1)
			for j, a := range atoms {
				if j == idx {
					continue
				}
				newAtoms = append(newAtoms, substituteFormula(a, subst, o))
			}
			atoms = newAtoms
			remaining = append(append([]Symbol(nil), remaining[:i]...), remaining[i+1:]...)
			progressed = true
			break
		}
		if !progressed {
			break
		}
	}

	var stillBound []Symbol
	for _, v := range remaining {
		if atomsMentionVar(atoms, v) {
			stillBound = append(stillBound, v)
		}
	}

	conj := And(atoms...)
	if len(stillBound) == 0 {
		return conj
	}
	return Exists(stillBound, conj)
}

// findOnePointAtom looks for an atom of the form v == E or E == v,
// where E does not itself mention v, and returns its index and E.
func findOnePointAtom(v Symbol, atoms []Formula) (int, Term, bool) {
	for i, a := range atoms {
		cmp, ok := a.(CmpFormula)
		if !ok || cmp.Op != CmpEq {
			continue
		}
		if lv, ok := cmp.Left.(VarTerm); ok && lv.Sym == v && !termMentionsVar(cmp.Right, v) {
			return i, cmp.Right, true
		}
		if rv, ok := cmp.Right.(VarTerm); ok && rv.Sym == v && !termMentionsVar(cmp.Left, v) {
			return i, cmp.Left, true
		}
	}
	return 0, nil, false
}

func termMentionsVar(t Term, v Symbol) bool {
	_, ok := freeVarsOfTerm(t)[v]
	return ok
}

func atomsMentionVar(atoms []Formula, v Symbol) bool {
	for _, a := range atoms {
		free := map[Symbol]struct{}{}
		collectFreeVars(a, nil, free)
		if _, ok := free[v]; ok {
			return true
		}
	}
	return false
}
