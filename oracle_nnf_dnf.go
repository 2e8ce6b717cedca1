package rgverify

// toNNF pushes negations down to the comparison atoms
// (predicate_simplifier.py step 4: "For each negated atom, flip the
// comparison ... and remove the negation"). Negation cannot be pushed
// through an existential without a universal quantifier variant, so
// Not(Exists(...)) is left as-is; the core never produces that shape
// because every Exists this engine builds is eliminated via QElim
// before it is combined with anything else.
func toNNF(f Formula) Formula {
	switch g := f.(type) {
	case BoolFormula:
		return g
	case CmpFormula:
		return g
	case ExistsFormula:
		return Exists(g.Vars, toNNF(g.Body))
	case AndFormula:
		out := make([]Formula, len(g.Operands))
		for i, x := range g.Operands {
			out[i] = toNNF(x)
		}
		return And(out...)
	case OrFormula:
		out := make([]Formula, len(g.Operands))
		for i, x := range g.Operands {
			out[i] = toNNF(x)
		}
		return Or(out...)
	case NotFormula:
		return toNNFNegated(g.Operand)
	default:
		return f
	}
}

func toNNFNegated(f Formula) Formula {
	switch g := f.(type) {
	case BoolFormula:
		return boolOf(!g.Value)
	case CmpFormula:
		return CmpFormula{Op: negateCmp(g.Op), Left: g.Left, Right: g.Right}
	case NotFormula:
		return toNNF(g.Operand)
	case AndFormula:
		out := make([]Formula, len(g.Operands))
		for i, x := range g.Operands {
			out[i] = toNNFNegated(x)
		}
		return Or(out...)
	case OrFormula:
		out := make([]Formula, len(g.Operands))
		for i, x := range g.Operands {
			out[i] = toNNFNegated(x)
		}
		return And(out...)
	case ExistsFormula:
		return NotFormula{Operand: Exists(g.Vars, toNNF(g.Body))}
	default:
		return NotFormula{Operand: f}
	}
}

// asDisjuncts/asConjuncts view a formula as, respectively, the
// operands of a top-level Or or And, treating any other formula as a
// singleton.
func asDisjuncts(f Formula) []Formula {
	if g, ok := f.(OrFormula); ok {
		return g.Operands
	}
	return []Formula{f}
}

func asConjuncts(f Formula) []Formula {
	if g, ok := f.(AndFormula); ok {
		return g.Operands
	}
	return []Formula{f}
}

// toDNF converts a formula already in negation normal form into a
// disjunction of conjunctions of atoms (predicate_simplifier.py step
// 1). Existentials are treated as opaque atoms here — callers that
// need them eliminated first should run QElim before toDNF.
func toDNF(f Formula) Formula {
	switch g := f.(type) {
	case OrFormula:
		var out []Formula
		for _, x := range g.Operands {
			out = append(out, asDisjuncts(toDNF(x))...)
		}
		return Or(out...)
	case AndFormula:
		dnfOperands := make([]Formula, len(g.Operands))
		for i, x := range g.Operands {
			dnfOperands[i] = toDNF(x)
		}
		return distributeAndOverOr(dnfOperands)
	default:
		return f
	}
}

// distributeAndOverOr takes a list of formulas already in DNF and
// returns their conjunction, also in DNF, by distributing And over
// each operand's top-level Or.
func distributeAndOverOr(dnfOperands []Formula) Formula {
	combos := [][]Formula{{}}
	for _, operand := range dnfOperands {
		var next [][]Formula
		for _, combo := range combos {
			for _, disjunct := range asDisjuncts(operand) {
				merged := make([]Formula, 0, len(combo)+1)
				merged = append(merged, combo...)
				merged = append(merged, asConjuncts(disjunct)...)
				next = append(next, merged)
			}
		}
		combos = next
	}
	disjuncts := make([]Formula, len(combos))
	for i, combo := range combos {
		disjuncts[i] = And(combo...)
	}
	return Or(disjuncts...)
}
