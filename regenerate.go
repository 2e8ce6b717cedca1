package rgverify

// RegenerateThread runs one round of proof-outline regeneration over a
// single thread: it threads a precondition through the thread's block,
// statement by statement, stabilising each one against its own prior
// precondition and against every interfering global assignment, and
// finally regenerates the synthetic Eof terminal (spec.md §4.5,
// "regenerate_proof"). It mutates every statement's Pre/Post (and a
// Conditional's TrueBlockPost/FalseBlockPost) in place and returns only
// an error, since the resulting postcondition is always read back off
// t.Procedure.Eof.Pre by the caller.
func RegenerateThread(oracle Oracle, t *Thread, entryPre Formula, cfg *EngineConfig) error {
	post, err := regenerateBlock(oracle, t.Procedure.Block, entryPre, cfg)
	if err != nil {
		return err
	}
	return regenerateStatement(oracle, t.Procedure.Eof, post, cfg)
}

// regenerateBlock regenerates every statement of block in order,
// threading each statement's post into the next statement's incoming
// precondition, and returns the post of the last statement (or
// incomingPre, if block is empty — an empty branch's post is whatever
// flowed into it).
func regenerateBlock(oracle Oracle, block []Statement, incomingPre Formula, cfg *EngineConfig) (Formula, error) {
	pre := incomingPre
	for _, s := range block {
		if err := regenerateStatement(oracle, s, pre, cfg); err != nil {
			return nil, err
		}
		pre = s.base().Post
	}
	return pre, nil
}

// regenerateStatement absorbs incomingPre into s's own running
// precondition, stabilises the result against every assignment in
// s.Interfering, and recomputes s's postcondition (recursing into both
// branches first, for a Conditional). Preconditions only ever grow
// across rounds: the new value is always old_pre || incoming ||
// (interference applications), so the result subsumes whatever was
// there before by construction. When cfg.Strict is set this is also
// checked explicitly with the oracle, catching a regression in this
// invariant rather than relying on it holding by construction alone.
func regenerateStatement(oracle Oracle, s Statement, incomingPre Formula, cfg *EngineConfig) error {
	base := s.base()

	absorbed := oracle.Simplify(Or(base.Pre, incomingPre))
	stabilised := absorbed
	for ia := range base.Interfering {
		stabilised = Or(stabilised, computeSPInterfere(oracle, ia, absorbed))
	}
	newPre := oracle.Simplify(stabilised)

	if cfg.Strict && !IsFalse(base.Pre) {
		if !oracle.IsValid(Implies(base.Pre, newPre)) {
			return OracleError{Message: "monotonicity invariant violated: new precondition does not subsume the old one"}
		}
	}
	base.Pre = newPre

	if cond, ok := s.(*Conditional); ok {
		truePost, err := regenerateBlock(oracle, cond.TrueBlock, And(newPre, cond.Cond), cfg)
		if err != nil {
			return err
		}
		falsePost, err := regenerateBlock(oracle, cond.FalseBlock, And(newPre, Not(cond.Cond)), cfg)
		if err != nil {
			return err
		}
		cond.TrueBlockPost = truePost
		cond.FalseBlockPost = falsePost
	}

	base.Post = computeSP(oracle, s, newPre)
	return nil
}
