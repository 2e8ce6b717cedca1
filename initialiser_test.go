package rgverify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := ParseProgram([]byte(src))
	require.NoError(t, err)
	return prog
}

func TestAssignProgramCountersIsSequential(t *testing.T) {
	prog := mustParse(t, `
pre: true; post: true;
thread t {
  x := 1;
  if (x == 1) {
    x := 2;
  } else {
    x := 3;
  }
  x := 4;
}
`)
	th := prog.Threads[0]
	assignProgramCounters(th)

	block := th.Procedure.Block
	assert.Equal(t, 0, block[0].base().PC)
	assert.Equal(t, 1, block[1].base().PC)
	cond := block[1].(*Conditional)
	assert.Equal(t, 2, cond.TrueBlock[0].base().PC)
	assert.Equal(t, 3, cond.FalseBlock[0].base().PC)
	assert.Equal(t, 4, block[2].base().PC)
	assert.Equal(t, 5, th.Procedure.Eof.PC)
}

func TestComputeReachablePCsSkipsOtherBranch(t *testing.T) {
	o := NewDefaultOracle()
	prog := mustParse(t, `
pre: true; post: true;
thread t {
  x := 1;
  if (x == 1) {
    x := 2;
  } else {
    x := 3;
  }
  x := 4;
}
`)
	th := prog.Threads[0]
	assignProgramCounters(th)
	computeReachablePCs(th)

	cond := th.Procedure.Block[1].(*Conditional)
	trueAssign := cond.TrueBlock[0].(*Assignment)
	falseAssign := cond.FalseBlock[0].(*Assignment)
	lastAssign := th.Procedure.Block[2].(*Assignment)

	// Both branches rejoin at the same statement (pc 4) after the
	// conditional and then reach Eof (pc 5), never each other's own
	// branch pc.
	afterCond := And(Ge(VarT(th.PCSymbol), IntConst(4)), Le(VarT(th.PCSymbol), IntConst(5)))
	assert.True(t, o.IsValid(Implies(trueAssign.ReachablePCs, afterCond)))
	assert.True(t, o.IsValid(Implies(falseAssign.ReachablePCs, afterCond)))
	assert.True(t, o.IsValid(Implies(lastAssign.ReachablePCs, Eq(VarT(th.PCSymbol), IntConst(5)))))
}

func TestComputeGlobalAssignmentsAndInterference(t *testing.T) {
	prog := mustParse(t, `
pre: true; post: true;
globals: g;
thread a {
  g := g + 1;
}
thread b {
  g := g + 2;
}
`)
	oracle := NewDefaultOracle()
	require.NoError(t, Initialise(prog, oracle))

	ta, tb := prog.Threads[0], prog.Threads[1]
	require.Len(t, ta.GlobalAssigns, 1)
	require.Len(t, tb.GlobalAssigns, 1)

	aAssign := ta.Procedure.Block[0].(*Assignment)
	_, interferesWithSelf := aAssign.Interfering[ta.GlobalAssigns[0]]
	assert.False(t, interferesWithSelf)
	_, interferesWithB := aAssign.Interfering[tb.GlobalAssigns[0]]
	assert.True(t, interferesWithB)

	// Eof also stabilises against interference.
	_, eofInterferes := ta.Procedure.Eof.Interfering[tb.GlobalAssigns[0]]
	assert.True(t, eofInterferes)
}

func TestInitialiseRejectsReservedName(t *testing.T) {
	prog := mustParse(t, `
pre: true; post: true;
globals: pc_0;
thread t { assume true; }
`)
	err := Initialise(prog, NewDefaultOracle())
	require.Error(t, err)
	_, ok := err.(InputError)
	assert.True(t, ok)
}

func TestInitialiseRejectsDuplicateLocalAcrossThreads(t *testing.T) {
	prog := mustParse(t, `
pre: true; post: true;
thread a { x := x + 1; }
thread b { x := x + 2; }
`)
	err := Initialise(prog, NewDefaultOracle())
	require.Error(t, err)
	_, ok := err.(InputError)
	assert.True(t, ok)
}
