package rgverify

import "sort"

// computeSP implements the strongest-postcondition table of spec.md
// §4.4 for the five statement kinds. pre is the precondition already
// in force at s; the returned Formula is s's own postcondition before
// any stabilisation against interference or enclosing conditionals is
// applied (that is regenerate_proof's job, in regenerate.go).
func computeSP(oracle Oracle, s Statement, pre Formula) Formula {
	switch st := s.(type) {
	case *Assignment:
		return spAssignment(oracle, st, pre)
	case *Assumption:
		return spAssumption(pre, st.Cond)
	case *Assertion:
		// sp(pre, "assert cond;") = cond => pre (spec.md §4.4,
		// "Assertion"): the result is weaker than pre, since it also
		// admits every state in which cond is false. Whether cond actually holds at this pc is a separate,
		// verification-time question the driver checks directly
		// against st.Cond and st.Pre (driver.go), not something this
		// return value encodes.
		return Implies(st.Cond, pre)
	case *Conditional:
		return spConditional(st)
	case *Eof:
		return pre
	default:
		panic("rgverify: unknown statement kind in computeSP")
	}
}

// spAssignment computes sp(pre, "lhs := rhs") in the standard form
// exists fresh :: pre[lhs <- fresh] && lhs == rhs[lhs <- fresh]
// (spec.md §4.4, "Assignment"), then eliminates the fresh existential
// with the oracle so the result can be carried forward without ever
// growing an unbounded chain of quantifiers.
func spAssignment(oracle Oracle, a *Assignment, pre Formula) Formula {
	fresh := oracle.FreshIntSymbol()
	subst := map[Symbol]Term{a.Lhs: VarT(fresh)}
	renamedPre := oracle.Substitute(pre, subst)
	renamedRhs := substituteRhs(a.Rhs, a.Lhs, fresh)
	body := And(renamedPre, Eq(VarT(a.Lhs), renamedRhs))
	raw := Exists([]Symbol{fresh}, body)
	return eliminate(oracle, raw)
}

func substituteRhs(rhs Term, lhs, fresh Symbol) Term {
	return substituteTerm(rhs, map[Symbol]Term{lhs: VarT(fresh)})
}

// spAssumption computes sp(pre, "assume cond;") = pre && cond (spec.md
// §4.4, "Assumption").
func spAssumption(pre, cond Formula) Formula {
	return And(pre, cond)
}

// spConditional computes sp of a conditional node itself as the join
// of its two branch posts, once they have been regenerated (spec.md
// §4.4, "Conditional": "post = true_block_post || false_block_post").
// The branch posts are filled in by regenerate_proof before this is
// ever read; an empty false branch's post defaults to pre && !cond,
// matching a conditional with no else-clause.
func spConditional(c *Conditional) Formula {
	return Or(c.TrueBlockPost, c.FalseBlockPost)
}

// eliminate runs QElim only when f actually still contains a
// quantifier, then insists the result came out quantifier-free: per
// spec.md §4.1, qelim failing to clear every quantifier on a
// core-produced formula is a fatal internal error, not a user-facing
// verification failure.
func eliminate(oracle Oracle, f Formula) Formula {
	if !hasQuantifier(f) {
		return f
	}
	out := oracle.QElim(f)
	if hasQuantifier(out) {
		panic(OracleError{Message: "qelim left quantifiers in a core-produced formula"})
	}
	return out
}

// computeSPInterfere computes the image of a precondition already in
// force under a single interfering global assignment firing (spec.md
// §4.4, "Interference"):
//
//	( exists fresh, L, pc :: x = E[x<-fresh] && pre[x<-fresh] && a.Pre[x<-fresh] && pc = k ) && R
//
// where x/E/k are a's lhs/rhs/PC, L is the owner thread's locals, pc is
// the owner thread's pc symbol, and R is a.ReachablePCs.
//
// The assignment can only actually fire from a state satisfying its
// own precondition a.Pre — which is itself kept current by that
// assignment's own thread regenerating every round — so the candidate
// state fed to the assignment's SP rule is pre && a.Pre, not pre
// alone. Without this conjunction, interference would compound
// without bound (e.g. a global counter's own interfering increment
// would keep stacking a fresh disjunct every round); intersecting with
// a.Pre ties each interference step to a state the writing thread
// could actually have reached, which is what keeps the accumulated
// precondition finite.
//
// The owner thread's locals and pc symbol are existentially quantified
// out of the result rather than left free: they describe the writer's
// internal state at the moment it fired, which has no meaning to the
// observing thread once the step is done, and leaking them would let
// the observer's precondition accidentally correlate with variables it
// has no business mentioning. Finally, the whole image is conjoined
// with a.ReachablePCs, restricting the interference step to only the
// program points where this particular write could actually still be
// pending (spec.md §4.3).
func computeSPInterfere(oracle Oracle, a *Assignment, pre Formula) Formula {
	fresh := oracle.FreshIntSymbol()
	subst := map[Symbol]Term{a.Lhs: VarT(fresh)}
	renamedPre := oracle.Substitute(And(pre, a.Pre), subst)
	renamedRhs := substituteRhs(a.Rhs, a.Lhs, fresh)
	pcAnchor := Eq(VarT(a.Owner.PCSymbol), IntConst(int64(a.PC)))
	body := And(renamedPre, Eq(VarT(a.Lhs), renamedRhs), pcAnchor)

	quantVars := append([]Symbol{fresh}, sortedSymbols(a.Owner.Locals)...)
	quantVars = append(quantVars, a.Owner.PCSymbol)

	raw := Exists(quantVars, body)
	result := eliminate(oracle, raw)
	return And(result, a.ReachablePCs)
}

// sortedSymbols returns set's elements in a stable, name-sorted order
// so the quantifier list (and hence any printed formula) does not vary
// from one run to the next with Go's randomised map iteration.
func sortedSymbols(set map[Symbol]struct{}) []Symbol {
	out := make([]Symbol, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
