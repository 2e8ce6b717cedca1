package rgverify

// WalkBlock applies visit to every statement in block, in CFG order,
// descending into both branches of a Conditional before moving to the
// statement that follows it. This is the one traversal contract every
// initialiser phase in initialiser.go is built on (spec.md §4.2: "A
// recursive traversal utility walks a procedure, applying a visitor
// to every non-procedure node, descending into both branches of
// conditionals"), grounded in the original prototype's recurse_cfg
// and on this module's own Inspect-style AST walker.
func WalkBlock(block []Statement, visit func(Statement)) {
	for _, stmt := range block {
		visit(stmt)
		if cond, ok := stmt.(*Conditional); ok {
			WalkBlock(cond.TrueBlock, visit)
			WalkBlock(cond.FalseBlock, visit)
		}
	}
}

// WalkProcedure walks a procedure's block in CFG order and then
// visits its Eof terminal last.
func WalkProcedure(proc *Procedure, visit func(Statement)) {
	WalkBlock(proc.Block, visit)
	visit(proc.Eof)
}

// Assignments collects, in CFG order, every *Assignment in block
// (including those nested in conditionals) for which keep returns
// true.
func Assignments(block []Statement, keep func(*Assignment) bool) []*Assignment {
	var out []*Assignment
	WalkBlock(block, func(s Statement) {
		if a, ok := s.(*Assignment); ok && keep(a) {
			out = append(out, a)
		}
	})
	return out
}
