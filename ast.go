package rgverify

// Statement is the tagged-variant CFG node from spec.md §3. Every
// concrete variant embeds StmtBase, so the state common to all
// statements — pre, post, pc, owner, interfering — lives in one
// place and is only ever mutated by the initialiser (pc, interfering)
// and by proof regeneration (pre, post, and the conditional block
// posts).
type Statement interface {
	base() *StmtBase
	Pretty() string
}

// StmtBase carries the fields every statement has per spec.md §3.
type StmtBase struct {
	Pre   Formula
	Post  Formula
	PC    int
	Owner *Thread

	// Interfering is the set of sibling-thread global assignments that
	// may destabilise this statement's precondition. Set exactly once,
	// during initialisation, and never mutated afterward.
	Interfering map[*Assignment]struct{}
}

func newStmtBase() StmtBase {
	return StmtBase{Pre: False(), Post: False(), PC: -1}
}

func (b *StmtBase) base() *StmtBase { return b }

// Assignment is `lhs := rhs;`.
type Assignment struct {
	StmtBase
	Lhs Symbol
	Rhs Term

	// ReachablePCs is the symbolic set of PCs (over the owner thread's
	// pc symbol) this assignment's CFG successors can reach, computed
	// once by the initialiser (spec.md §4.3).
	ReachablePCs Formula
}

func NewAssignment(lhs Symbol, rhs Term) *Assignment {
	return &Assignment{StmtBase: newStmtBase(), Lhs: lhs, Rhs: rhs, ReachablePCs: True()}
}

func (a *Assignment) Pretty() string {
	return prettyPC(a.PC) + a.Lhs.Name + " := " + a.Rhs.String() + ";"
}

// Assumption is `assume cond;`.
type Assumption struct {
	StmtBase
	Cond Formula
}

func NewAssumption(cond Formula) *Assumption {
	return &Assumption{StmtBase: newStmtBase(), Cond: cond}
}

func (a *Assumption) Pretty() string {
	return prettyPC(a.PC) + "assume " + a.Cond.String() + ";"
}

// Assertion is `assert cond;`.
type Assertion struct {
	StmtBase
	Cond Formula
}

func NewAssertion(cond Formula) *Assertion {
	return &Assertion{StmtBase: newStmtBase(), Cond: cond}
}

func (a *Assertion) Pretty() string {
	return prettyPC(a.PC) + "assert " + a.Cond.String() + ";"
}

// Conditional is `if (cond) { trueBlock } else { falseBlock }`. An
// empty FalseBlock means there was no else-clause in the source
// program.
type Conditional struct {
	StmtBase
	Cond       Formula
	TrueBlock  []Statement
	FalseBlock []Statement

	// TrueBlockPost/FalseBlockPost cache the post of the last
	// statement regenerated in each branch (spec.md §4.5 step 3).
	TrueBlockPost  Formula
	FalseBlockPost Formula
}

func NewConditional(cond Formula, trueBlock, falseBlock []Statement) *Conditional {
	return &Conditional{
		StmtBase:       newStmtBase(),
		Cond:           cond,
		TrueBlock:      trueBlock,
		FalseBlock:     falseBlock,
		TrueBlockPost:  False(),
		FalseBlockPost: False(),
	}
}

func (c *Conditional) Pretty() string {
	s := prettyPC(c.PC) + "if (" + c.Cond.String() + ") {"
	for _, stmt := range c.TrueBlock {
		s += "\n  " + stmt.Pretty()
	}
	s += "\n} else {"
	for _, stmt := range c.FalseBlock {
		s += "\n  " + stmt.Pretty()
	}
	s += "\n}"
	return s
}

// Eof is the synthetic terminal statement of a procedure; its Pre is
// the thread's final proof-outline precondition.
type Eof struct {
	StmtBase
}

func NewEof() *Eof {
	return &Eof{StmtBase: newStmtBase()}
}

func (e *Eof) Pretty() string { return "<eof>" }

func prettyPC(pc int) string {
	if pc < 0 {
		return "?: "
	}
	return itoa(pc) + ": "
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Procedure is a thread's root CFG: an ordered sequence of statements
// plus the synthetic Eof terminal (spec.md §3).
type Procedure struct {
	Name  string
	Block []Statement
	Eof   *Eof
}

func NewProcedure(name string, block []Statement) *Procedure {
	return &Procedure{Name: name, Block: block, Eof: NewEof()}
}

func (p *Procedure) Pretty() string {
	s := "procedure " + p.Name + "() {"
	for _, stmt := range p.Block {
		s += "\n  " + stmt.Pretty()
	}
	s += "\n}"
	return s
}

// Thread owns a root Procedure, a PC symbol, its local variables, and
// the list of its own global assignments (spec.md §3).
type Thread struct {
	ID              int
	PCSymbol        Symbol
	Procedure       *Procedure
	Locals          map[Symbol]struct{}
	GlobalAssigns   []*Assignment
	FixpointReached bool
}

func NewThread(id int, procedure *Procedure) *Thread {
	return &Thread{
		ID:        id,
		PCSymbol:  Symbol{Name: "pc_" + itoa(id), Sort: SortInt},
		Procedure: procedure,
		Locals:    map[Symbol]struct{}{},
	}
}

// Program is the top-level verification unit: a precondition, a
// postcondition specification, the declared globals, and the parallel
// threads to verify against them (spec.md §3, "Procedure / Thread").
type Program struct {
	Pre      Formula
	PostSpec Formula
	Globals  []Symbol
	Threads  []*Thread
}
