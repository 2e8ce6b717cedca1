package rgverify

import "strings"

// FormatFunc renders one tree node's own text, given the already
// camera-ready string for whatever it wraps.
type FormatFunc[T any] func(input string, token T) string

// treePrinter is a small generic indenting writer. It is grounded on
// the teacher's tree_printer.go, repurposed here to print proof
// outlines instead of grammar trees: same indent/unindent/padding
// mechanics, applied to Statement instead of a grammar AST node.
type treePrinter[T any] struct {
	padStr *[]string
	output *strings.Builder
	format FormatFunc[T]
}

func newTreePrinter[T any](format FormatFunc[T]) *treePrinter[T] {
	return &treePrinter[T]{
		padStr: &[]string{},
		output: &strings.Builder{},
		format: format,
	}
}

func (tp *treePrinter[T]) indent(s string) {
	*tp.padStr = append(*tp.padStr, s)
}

func (tp *treePrinter[T]) unindent() {
	index := len(*tp.padStr) - 1
	*tp.padStr = (*tp.padStr)[:index]
}

func (tp *treePrinter[T]) padding() {
	for _, item := range *tp.padStr {
		tp.write(item)
	}
}

func (tp *treePrinter[T]) writel(s string) {
	tp.write(s)
	tp.output.WriteRune('\n')
}

func (tp *treePrinter[T]) pwritel(s string) {
	tp.pwrite(s)
	tp.output.WriteRune('\n')
}

func (tp *treePrinter[T]) write(s string) {
	tp.output.WriteString(s)
}

func (tp *treePrinter[T]) pwrite(s string) {
	tp.padding()
	tp.write(s)
}

// PrintProofOutline renders a thread's stabilised proof outline: every
// statement, annotated with its precondition and postcondition,
// indented to show conditional nesting (spec.md §5, "a proof outline
// is the sequence of (pre, statement, post) triples").
func PrintProofOutline(t *Thread) string {
	tp := newTreePrinter(func(input string, s Statement) string { return input })
	tp.writel("thread " + t.Procedure.Name + " {")
	tp.indent("  ")
	printBlock(tp, t.Procedure.Block)
	eof := t.Procedure.Eof
	tp.pwritel("{" + eof.Pre.String() + "}")
	tp.pwritel(eof.Pretty())
	tp.unindent()
	tp.writel("}")
	return tp.output.String()
}

func printBlock[T any](tp *treePrinter[T], block []Statement) {
	for _, s := range block {
		base := s.base()
		tp.pwritel("{" + base.Pre.String() + "}")
		if cond, ok := s.(*Conditional); ok {
			tp.pwritel(prettyPC(cond.PC) + "if (" + cond.Cond.String() + ") {")
			tp.indent("  ")
			printBlock(tp, cond.TrueBlock)
			tp.unindent()
			tp.pwritel("} // post: " + cond.TrueBlockPost.String())
			tp.pwritel("else {")
			tp.indent("  ")
			printBlock(tp, cond.FalseBlock)
			tp.unindent()
			tp.pwritel("} // post: " + cond.FalseBlockPost.String())
		} else {
			tp.pwritel(s.Pretty())
		}
		tp.pwritel("{" + base.Post.String() + "}")
	}
}
