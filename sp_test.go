package rgverify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSPAssignmentAddsOne(t *testing.T) {
	o := NewDefaultOracle()
	x := Symbol{Name: "x"}
	a := NewAssignment(x, Add(VarT(x), IntConst(1)))

	post := computeSP(o, a, Eq(VarT(x), IntConst(0)))
	assert.True(t, o.IsValid(Implies(post, Eq(VarT(x), IntConst(1)))))
	assert.True(t, o.IsValid(Implies(Eq(VarT(x), IntConst(1)), post)))
}

func TestSPAssumptionNarrows(t *testing.T) {
	x := Symbol{Name: "x"}
	assumption := NewAssumption(Ge(VarT(x), IntConst(0)))
	pre := True()
	post := computeSP(nil, assumption, pre)
	assert.Equal(t, Ge(VarT(x), IntConst(0)), post)
}

func TestSPAssertionImpliesCondIntoPre(t *testing.T) {
	x := Symbol{Name: "x"}
	assertion := NewAssertion(Ge(VarT(x), IntConst(0)))
	pre := Eq(VarT(x), IntConst(3))
	assert.Equal(t, Implies(assertion.Cond, pre), computeSP(nil, assertion, pre))
}

func TestSPConditionalJoinsBranchPosts(t *testing.T) {
	cond := NewConditional(True(), nil, nil)
	cond.TrueBlockPost = Eq(VarT(Symbol{Name: "x"}), IntConst(1))
	cond.FalseBlockPost = Eq(VarT(Symbol{Name: "x"}), IntConst(2))

	post := computeSP(nil, cond, True())
	assert.Equal(t, Or(cond.TrueBlockPost, cond.FalseBlockPost), post)
}

func TestComputeSPInterfereBoundsToWriterPrecondition(t *testing.T) {
	o := NewDefaultOracle()
	g := Symbol{Name: "g"}
	writer := NewAssignment(g, Add(VarT(g), IntConst(1)))
	writer.Pre = Eq(VarT(g), IntConst(0))
	writer.PC = 3
	writer.Owner = NewThread(0, NewProcedure("writer", nil))
	writer.ReachablePCs = True()

	// Observer believes g could be 0 or 5; only the 0 branch overlaps
	// with the writer's own precondition, so only g==1 should result.
	observerBelief := Or(Eq(VarT(g), IntConst(0)), Eq(VarT(g), IntConst(5)))
	result := computeSPInterfere(o, writer, observerBelief)

	assert.True(t, o.IsValid(Implies(result, Eq(VarT(g), IntConst(1)))))
}
