package rgverify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQElimOnePointRule(t *testing.T) {
	o := NewDefaultOracle()
	x := Symbol{Name: "x"}
	y := Symbol{Name: "y"}
	// exists y :: y == x + 1 && y > 0  ==  x + 1 > 0
	f := Exists([]Symbol{y}, And(Eq(VarT(y), Add(VarT(x), IntConst(1))), Gt(VarT(y), IntConst(0))))
	got := o.QElim(f)
	require.False(t, hasQuantifier(got))
	assert.True(t, o.IsValid(Implies(got, Gt(Add(VarT(x), IntConst(1)), IntConst(0)))))
	assert.True(t, o.IsValid(Implies(Gt(Add(VarT(x), IntConst(1)), IntConst(0)), got)))
}

func TestQElimDropsVarNotFree(t *testing.T) {
	o := NewDefaultOracle()
	x := Symbol{Name: "x"}
	y := Symbol{Name: "y"}
	f := Exists([]Symbol{y}, Lt(VarT(x), IntConst(5)))
	got := o.QElim(f)
	assert.Equal(t, Lt(VarT(x), IntConst(5)), o.Simplify(got))
}

func TestIsSatIntervalContradiction(t *testing.T) {
	o := NewDefaultOracle()
	x := VarT(Symbol{Name: "x"})
	assert.False(t, o.IsSat(And(Gt(x, IntConst(5)), Lt(x, IntConst(3)))))
	assert.True(t, o.IsSat(And(Gt(x, IntConst(5)), Lt(x, IntConst(10)))))
}

func TestIsSatEqualityPropagation(t *testing.T) {
	o := NewDefaultOracle()
	x := VarT(Symbol{Name: "x"})
	y := VarT(Symbol{Name: "y"})
	assert.False(t, o.IsSat(And(Eq(x, IntConst(3)), Eq(x, IntConst(4)))))
	assert.True(t, o.IsSat(And(Eq(x, IntConst(3)), Eq(y, Add(x, IntConst(1))), Eq(y, IntConst(4)))))
	assert.False(t, o.IsSat(And(Eq(x, IntConst(3)), Eq(y, Add(x, IntConst(1))), Eq(y, IntConst(5)))))
}

func TestIsValidTautology(t *testing.T) {
	o := NewDefaultOracle()
	x := VarT(Symbol{Name: "x"})
	assert.True(t, o.IsValid(Or(Lt(x, IntConst(0)), Ge(x, IntConst(0)))))
	assert.False(t, o.IsValid(Gt(x, IntConst(0))))
}

func TestSubstituteCaptureAvoidance(t *testing.T) {
	o := NewDefaultOracle()
	x := Symbol{Name: "x"}
	y := Symbol{Name: "y"}
	// exists y :: y == x, substituting x <- y must alpha-rename the bound y.
	f := Exists([]Symbol{y}, Eq(VarT(y), VarT(x)))
	got := o.Substitute(f, map[Symbol]Term{x: VarT(y)})
	ef, ok := got.(ExistsFormula)
	require.True(t, ok)
	assert.NotEqual(t, y, ef.Vars[0])
}

func TestFreeVars(t *testing.T) {
	o := NewDefaultOracle()
	x := Symbol{Name: "x"}
	y := Symbol{Name: "y"}
	f := Exists([]Symbol{y}, Eq(VarT(y), VarT(x)))
	free := o.FreeVars(f)
	_, hasX := free[x]
	_, hasY := free[y]
	assert.True(t, hasX)
	assert.False(t, hasY)
}
