package rgverify

// VerificationResult is the outcome of running the fixpoint driver to
// completion. Per spec.md §7, a verification failure — an assertion
// that does not follow from its precondition, or a final state that
// does not imply the postcondition spec — is a plain value here, not
// an error: Verify only returns an error for the fatal, spec.md §7
// "Input error" / "Oracle error" conditions.
type VerificationResult struct {
	Rounds             int
	Verified           bool
	FailedAssertions   []*Assertion
	PostconditionHolds bool
}

// Verify runs the outer fixpoint loop of spec.md §4.6: repeatedly
// regenerate every thread's proof outline until a round leaves every
// statement's precondition unchanged (up to the oracle's own notion of
// semantic equivalence), then checks every assertion and the final
// postcondition against the stabilised outlines. If no round stabilises
// within cfg.MaxRounds, it gives up and returns ErrFixpointNotReached
// rather than looping forever.
func Verify(prog *Program, oracle Oracle, cfg *EngineConfig) (*VerificationResult, error) {
	for _, t := range prog.Threads {
		t.Procedure.Eof.Pre = False()
		WalkProcedure(t.Procedure, func(s Statement) {
			s.base().Pre = False()
			s.base().Post = False()
		})
	}

	for round := 1; round <= cfg.MaxRounds; round++ {
		before := snapshotPres(prog)

		for _, t := range prog.Threads {
			if err := RegenerateThread(oracle, t, prog.Pre, cfg); err != nil {
				return nil, err
			}
		}

		if allStable(oracle, prog, before) {
			for _, t := range prog.Threads {
				t.FixpointReached = true
			}
			return finalizeResult(oracle, prog, round), nil
		}
	}

	return nil, ErrFixpointNotReached{Rounds: cfg.MaxRounds}
}

func snapshotPres(prog *Program) map[Statement]Formula {
	out := map[Statement]Formula{}
	for _, t := range prog.Threads {
		WalkProcedure(t.Procedure, func(s Statement) {
			out[s] = s.base().Pre
		})
	}
	return out
}

// allStable reports whether every statement's precondition this round
// is semantically equal to what it was before the round ran.
// Monotonicity already guarantees old => new; stability additionally
// requires new => old.
func allStable(oracle Oracle, prog *Program, before map[Statement]Formula) bool {
	for _, t := range prog.Threads {
		stableThread := true
		WalkProcedure(t.Procedure, func(s Statement) {
			if !stableThread {
				return
			}
			if !oracle.IsValid(Implies(s.base().Pre, before[s])) {
				stableThread = false
			}
		})
		if !stableThread {
			return false
		}
	}
	return true
}

// finalizeResult evaluates every assertion's condition against its
// stabilised precondition and checks the conjunction of every thread's
// final precondition against the program's postcondition spec (spec.md
// §4.6, "A program verifies iff every assertion holds and the
// conjunction of final preconditions implies the postcondition spec").
func finalizeResult(oracle Oracle, prog *Program, rounds int) *VerificationResult {
	res := &VerificationResult{Rounds: rounds}

	for _, t := range prog.Threads {
		WalkBlock(t.Procedure.Block, func(s Statement) {
			a, ok := s.(*Assertion)
			if !ok {
				return
			}
			if !oracle.IsValid(Implies(a.Pre, a.Cond)) {
				res.FailedAssertions = append(res.FailedAssertions, a)
			}
		})
	}

	finals := make([]Formula, len(prog.Threads))
	for i, t := range prog.Threads {
		finals[i] = t.Procedure.Eof.Pre
	}
	res.PostconditionHolds = oracle.IsValid(Implies(And(finals...), prog.PostSpec))

	res.Verified = len(res.FailedAssertions) == 0 && res.PostconditionHolds
	return res
}
