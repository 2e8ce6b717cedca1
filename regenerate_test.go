package rgverify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegenerateThreadSingleRoundNoInterference(t *testing.T) {
	prog := mustParse(t, `
pre: x == 0;
post: true;
globals: x;
thread t {
  x := x + 1;
  x := x + 1;
}
`)
	oracle := NewDefaultOracle()
	require.NoError(t, Initialise(prog, oracle))

	th := prog.Threads[0]
	for _, s := range th.Procedure.Block {
		s.base().Pre, s.base().Post = False(), False()
	}
	th.Procedure.Eof.Pre = False()

	cfg := NewEngineConfig()
	require.NoError(t, RegenerateThread(oracle, th, prog.Pre, cfg))

	last := th.Procedure.Block[1].(*Assignment)
	assert.True(t, oracle.IsValid(Implies(last.Post, Eq(VarT(Symbol{Name: "x"}), IntConst(2)))))
}

func TestRegenerateStatementStrictAcceptsNarrowerIncoming(t *testing.T) {
	oracle := NewDefaultOracle()
	x := Symbol{Name: "x"}
	a := NewAssignment(x, IntConst(0))
	a.Pre = Or(Eq(VarT(x), IntConst(0)), Eq(VarT(x), IntConst(1)))
	a.Interfering = map[*Assignment]struct{}{}

	cfg := &EngineConfig{MaxRounds: 1, Strict: true}
	// Incoming strictly narrower than the existing Pre: absorbed stays
	// wide (Or only grows), so this must still succeed rather than
	// falsely reporting a monotonicity violation.
	err := regenerateStatement(oracle, a, Eq(VarT(x), IntConst(0)), cfg)
	require.NoError(t, err)
}
