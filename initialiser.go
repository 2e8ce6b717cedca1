package rgverify

import "strings"

// Initialise prepares a freshly parsed Program for the fixpoint driver:
// it assigns program counters, computes each assignment's reachable-PC
// formula, collects each thread's global assignments and locals, wires
// the interfering sets, and validates names. Everything here runs
// exactly once, before regenerate_proof ever executes (spec.md §4.2,
// "Initialisation").
func Initialise(prog *Program, oracle Oracle) error {
	globals := make(map[Symbol]struct{}, len(prog.Globals))
	for _, g := range prog.Globals {
		globals[g] = struct{}{}
	}

	if err := validateNoReservedNames(prog.Globals); err != nil {
		return err
	}

	localsByThread := make([]map[Symbol]struct{}, len(prog.Threads))

	for i, t := range prog.Threads {
		assignProgramCounters(t)
		computeReachablePCs(t)
		computeGlobalAssignments(t, globals)

		locals := computeLocals(t, globals, oracle)
		if err := validateNoReservedNames(symbolSlice(locals)); err != nil {
			return err
		}
		t.Locals = locals
		localsByThread[i] = locals
	}

	if err := checkLocalsDisjoint(prog.Threads, localsByThread); err != nil {
		return err
	}

	wireInterference(prog.Threads)
	return nil
}

// assignProgramCounters numbers every statement of a thread's
// procedure, in CFG order, with the synthetic Eof last (spec.md §4.2:
// "Program counters are assigned by a linear traversal of the CFG").
func assignProgramCounters(t *Thread) {
	pc := 0
	WalkProcedure(t.Procedure, func(s Statement) {
		s.base().PC = pc
		s.base().Owner = t
		pc++
	})
}

// pcInterval is an inclusive range of program counters.
type pcInterval struct {
	lo, hi int
}

// computeReachablePCs computes, for every Assignment in t's procedure,
// the symbolic set of program counters reachable as that assignment's
// CFG successor (spec.md §4.3). Because PCs are assigned by a single
// pre-order walk, the statements following any point in the program
// text form one contiguous range — except across a Conditional, where
// only one of the two branches actually executes, so the reachable set
// is the union of "the rest of this branch" with whatever continues
// after the conditional as a whole, rather than a single contiguous
// range. computeReachablePCs is grounded on the same traversal contract
// as WalkBlock, walked back to front so each statement's reachable set
// can be built from the one already computed for its successor.
func computeReachablePCs(t *Thread) {
	tail := []pcInterval{{lo: t.Procedure.Eof.PC, hi: t.Procedure.Eof.PC}}
	walkBlockBackward(t.Procedure.Block, tail, t.PCSymbol)
}

// walkBlockBackward assigns ReachablePCs to every Assignment in block
// and returns the reachable-PC set for whatever precedes block, given
// that falling off the end of block continues into contTail.
func walkBlockBackward(block []Statement, contTail []pcInterval, pcSym Symbol) []pcInterval {
	tail := contTail
	for i := len(block) - 1; i >= 0; i-- {
		switch s := block[i].(type) {
		case *Assignment:
			s.ReachablePCs = intervalsToFormula(tail, pcSym)
			tail = mergeIntervals(append(tail, pcInterval{lo: s.PC, hi: s.PC}))
		case *Conditional:
			trueTail := walkBlockBackward(s.TrueBlock, tail, pcSym)
			falseTail := walkBlockBackward(s.FalseBlock, tail, pcSym)
			branches := mergeIntervals(append(append([]pcInterval{}, trueTail...), falseTail...))
			tail = mergeIntervals(append(branches, pcInterval{lo: s.PC, hi: s.PC}))
		default:
			tail = mergeIntervals(append(tail, pcInterval{lo: s.base().PC, hi: s.base().PC}))
		}
	}
	return tail
}

// mergeIntervals sorts and coalesces overlapping or adjacent intervals
// so the resulting formula stays compact.
func mergeIntervals(ivs []pcInterval) []pcInterval {
	if len(ivs) == 0 {
		return nil
	}
	sorted := append([]pcInterval{}, ivs...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1].lo > sorted[j].lo; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	out := []pcInterval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &out[len(out)-1]
		if iv.lo <= last.hi+1 {
			if iv.hi > last.hi {
				last.hi = iv.hi
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

func intervalsToFormula(ivs []pcInterval, pcSym Symbol) Formula {
	parts := make([]Formula, len(ivs))
	for i, iv := range ivs {
		if iv.lo == iv.hi {
			parts[i] = Eq(VarT(pcSym), IntConst(int64(iv.lo)))
			continue
		}
		parts[i] = And(Ge(VarT(pcSym), IntConst(int64(iv.lo))), Le(VarT(pcSym), IntConst(int64(iv.hi))))
	}
	return Or(parts...)
}

// computeGlobalAssignments collects, in CFG order, every assignment in
// t whose left-hand side is a declared global (spec.md §3: "a thread's
// global assignments are exactly the Assignment nodes in its procedure
// whose lhs is a global").
func computeGlobalAssignments(t *Thread, globals map[Symbol]struct{}) {
	t.GlobalAssigns = Assignments(t.Procedure.Block, func(a *Assignment) bool {
		_, ok := globals[a.Lhs]
		return ok
	})
}

// wireInterference attaches, to every statement of every thread
// (including its Eof terminal), the set of other threads' global
// assignments (spec.md §4.2: "interfering, for a statement of thread
// t, is the union of every other thread's global assignments"). Eof is
// included deliberately, by walking with WalkProcedure rather than
// WalkBlock: the final proof-outline precondition must stabilise
// against interference exactly like any other statement's, or the
// verdict at the end of the thread would be unsound.
func wireInterference(threads []*Thread) {
	for _, t := range threads {
		interfering := map[*Assignment]struct{}{}
		for _, other := range threads {
			if other == t {
				continue
			}
			for _, a := range other.GlobalAssigns {
				interfering[a] = struct{}{}
			}
		}
		WalkProcedure(t.Procedure, func(s Statement) {
			s.base().Interfering = interfering
		})
	}
}

// computeLocals infers a thread's locals as every symbol free in its
// procedure that is not a declared global and not the thread's own pc
// symbol (spec.md §3: "a thread's locals are inferred, not declared").
func computeLocals(t *Thread, globals map[Symbol]struct{}, oracle Oracle) map[Symbol]struct{} {
	used := map[Symbol]struct{}{}
	WalkProcedure(t.Procedure, func(s Statement) {
		switch st := s.(type) {
		case *Assignment:
			used[st.Lhs] = struct{}{}
			for v := range freeVarsOfTerm(st.Rhs) {
				used[v] = struct{}{}
			}
		case *Assumption:
			for v := range oracle.FreeVars(st.Cond) {
				used[v] = struct{}{}
			}
		case *Assertion:
			for v := range oracle.FreeVars(st.Cond) {
				used[v] = struct{}{}
			}
		case *Conditional:
			for v := range oracle.FreeVars(st.Cond) {
				used[v] = struct{}{}
			}
		}
	})

	locals := map[Symbol]struct{}{}
	for v := range used {
		if v == t.PCSymbol {
			continue
		}
		if _, isGlobal := globals[v]; isGlobal {
			continue
		}
		locals[v] = struct{}{}
	}
	return locals
}

// checkLocalsDisjoint rejects a program where the same variable name is
// inferred as a local in more than one thread: locals are per-thread
// storage, so a shared name would silently mean two different things
// depending which thread's block you are reading (spec.md §7, "Input
// error").
func checkLocalsDisjoint(threads []*Thread, localsByThread []map[Symbol]struct{}) error {
	owner := map[string]*Thread{}
	for i, locals := range localsByThread {
		t := threads[i]
		for v := range locals {
			if prev, ok := owner[v.Name]; ok && prev != t {
				return InputError{Message: "local \"" + v.Name + "\" is declared in more than one thread"}
			}
			owner[v.Name] = t
		}
	}
	return nil
}

// validateNoReservedNames rejects any symbol whose name collides with
// the "pc_<id>" naming scheme reserved for synthetic thread pc symbols
// (spec.md §3).
func validateNoReservedNames(symbols []Symbol) error {
	for _, s := range symbols {
		if s.Name == "pc" || strings.HasPrefix(s.Name, "pc_") {
			return InputError{Message: "\"" + s.Name + "\" is a reserved name"}
		}
	}
	return nil
}

func symbolSlice(set map[Symbol]struct{}) []Symbol {
	out := make([]Symbol, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	return out
}
