package rgverify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProgram = `
pre: x == 0 && y == 0;
post: x == 2;
globals: x, y;

thread adder {
  x := x + 1;
  assert x >= 1;
  if (x == 1) {
    x := x + 1;
  } else {
    y := y + 1;
  }
}

thread reader {
  assume x >= 0;
}
`

func TestParseProgramStructure(t *testing.T) {
	prog, err := ParseProgram([]byte(sampleProgram))
	require.NoError(t, err)
	require.Len(t, prog.Globals, 2)
	require.Len(t, prog.Threads, 2)

	adder := prog.Threads[0].Procedure
	assert.Equal(t, "adder", adder.Name)
	require.Len(t, adder.Block, 3)

	assign, ok := adder.Block[0].(*Assignment)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Lhs.Name)

	assertion, ok := adder.Block[1].(*Assertion)
	require.True(t, ok)
	assert.Equal(t, CmpGe, assertion.Cond.(CmpFormula).Op)

	cond, ok := adder.Block[2].(*Conditional)
	require.True(t, ok)
	require.Len(t, cond.TrueBlock, 1)
	require.Len(t, cond.FalseBlock, 1)
}

func TestParseProgramRejectsGarbage(t *testing.T) {
	_, err := ParseProgram([]byte("pre: x == 0 post: true;"))
	require.Error(t, err)
	_, ok := err.(InputError)
	assert.True(t, ok)
}

func TestParseProgramWithoutGlobalsOrThreads(t *testing.T) {
	prog, err := ParseProgram([]byte("pre: true; post: true;"))
	require.NoError(t, err)
	assert.Empty(t, prog.Globals)
	assert.Empty(t, prog.Threads)
}
