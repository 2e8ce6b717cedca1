package rgverify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignmentPretty(t *testing.T) {
	a := NewAssignment(Symbol{Name: "x"}, Add(VarT(Symbol{Name: "x"}), IntConst(1)))
	a.PC = 3
	assert.Equal(t, "3: x := (x + 1);", a.Pretty())
}

func TestNewThreadUsesIDInPCSymbolName(t *testing.T) {
	proc := NewProcedure("t", nil)
	th := NewThread(2, proc)
	assert.Equal(t, "pc_2", th.PCSymbol.Name)
}

func TestWalkBlockVisitsBothBranches(t *testing.T) {
	trueStmt := NewAssignment(Symbol{Name: "x"}, IntConst(1))
	falseStmt := NewAssignment(Symbol{Name: "x"}, IntConst(2))
	cond := NewConditional(True(), []Statement{trueStmt}, []Statement{falseStmt})
	outer := NewAssignment(Symbol{Name: "y"}, IntConst(0))

	var visited []Statement
	WalkBlock([]Statement{outer, cond}, func(s Statement) { visited = append(visited, s) })

	assert.Equal(t, []Statement{outer, cond, trueStmt, falseStmt}, visited)
}

func TestAssignmentsFilter(t *testing.T) {
	g := Symbol{Name: "g"}
	l := Symbol{Name: "l"}
	globalAssign := NewAssignment(g, IntConst(1))
	localAssign := NewAssignment(l, IntConst(2))
	block := []Statement{globalAssign, localAssign}

	only := Assignments(block, func(a *Assignment) bool { return a.Lhs == g })
	assert.Equal(t, []*Assignment{globalAssign}, only)
}
