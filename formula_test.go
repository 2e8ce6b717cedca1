package rgverify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAndAbsorbsTrueAndFlattens(t *testing.T) {
	x := VarT(Symbol{Name: "x"})
	f := And(True(), Lt(x, IntConst(3)), And(Ge(x, IntConst(0)), True()))
	and, ok := f.(AndFormula)
	require.True(t, ok)
	assert.Len(t, and.Operands, 2)
}

func TestAndWithFalseCollapses(t *testing.T) {
	x := VarT(Symbol{Name: "x"})
	assert.Equal(t, False(), And(Lt(x, IntConst(3)), False()))
}

func TestOrWithTrueCollapses(t *testing.T) {
	x := VarT(Symbol{Name: "x"})
	assert.Equal(t, True(), Or(Lt(x, IntConst(3)), True()))
}

func TestNotCollapsesDoubleNegationAndConstants(t *testing.T) {
	x := VarT(Symbol{Name: "x"})
	f := Lt(x, IntConst(3))
	assert.Equal(t, f, Not(Not(f)))
	assert.Equal(t, False(), Not(True()))
}

func TestExistsDropsEmptyVarList(t *testing.T) {
	f := Lt(VarT(Symbol{Name: "x"}), IntConst(3))
	assert.Equal(t, f, Exists(nil, f))
}

func TestSimplifyFoldsConstantComparison(t *testing.T) {
	o := NewDefaultOracle()
	assert.Equal(t, True(), o.Simplify(Lt(IntConst(1), IntConst(2))))
	assert.Equal(t, False(), o.Simplify(Lt(IntConst(2), IntConst(1))))
}

func TestSimplifyFoldsReflexiveAtoms(t *testing.T) {
	o := NewDefaultOracle()
	x := VarT(Symbol{Name: "x"})
	assert.Equal(t, True(), o.Simplify(Eq(x, x)))
	assert.Equal(t, False(), o.Simplify(Ne(x, x)))
}

func TestSimplifyDropsUnusedExistsVar(t *testing.T) {
	o := NewDefaultOracle()
	fresh := Symbol{Name: "$1"}
	x := VarT(Symbol{Name: "x"})
	f := Exists([]Symbol{fresh}, Lt(x, IntConst(3)))
	assert.Equal(t, Lt(x, IntConst(3)), o.Simplify(f))
}
