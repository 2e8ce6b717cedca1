package rgverify

// Oracle is the Formula Oracle contract from spec.md §4.1 — a thin
// contract over an SMT backend, consumed by the core engine and
// nothing else. The core never manipulates a Formula's internal
// shape except by calling into an Oracle; this is what lets a real
// SMT solver be swapped in without touching sp.go, regenerate.go or
// driver.go (spec.md §1: "The SMT backend ... delegated to an
// oracle").
//
// DefaultOracle (oracle_default.go) is the bundled implementation: a
// from-scratch quantifier-free linear-integer-arithmetic engine, not
// a full decision procedure. See DESIGN.md for why no third-party SMT
// binding was wired in its place.
type Oracle interface {
	// FreshIntSymbol produces a symbol unique within the run.
	FreshIntSymbol() Symbol

	// Substitute performs capture-free substitution of symbols by
	// terms in f.
	Substitute(f Formula, subst map[Symbol]Term) Formula

	// FreeVars returns the free symbols of f.
	FreeVars(f Formula) map[Symbol]struct{}

	// IsValid reports whether f holds in every model.
	IsValid(f Formula) bool

	// IsSat reports whether f holds in some model.
	IsSat(f Formula) bool

	// QElim eliminates quantifiers from f. For inputs within the
	// quantifier-free-linear-integer-arithmetic-once-eliminated
	// fragment the core relies on, the result is guaranteed
	// quantifier-free.
	QElim(f Formula) Formula

	// Simplify is a semantic-preserving, idempotent rewriter.
	Simplify(f Formula) Formula

	// SymbolEqual is the only legal notion of symbol equality:
	// is_valid(a == b).
	SymbolEqual(a, b Symbol) bool
}

// hasQuantifier reports whether f contains an ExistsFormula anywhere
// in its tree. The core uses this to detect the fatal condition in
// spec.md §4.1: "Failure of qelim to eliminate all quantifiers on a
// core-produced formula is a fatal internal error."
func hasQuantifier(f Formula) bool {
	switch g := f.(type) {
	case ExistsFormula:
		return true
	case NotFormula:
		return hasQuantifier(g.Operand)
	case AndFormula:
		return anyHasQuantifier(g.Operands)
	case OrFormula:
		return anyHasQuantifier(g.Operands)
	default:
		return false
	}
}

func anyHasQuantifier(fs []Formula) bool {
	for _, f := range fs {
		if hasQuantifier(f) {
			return true
		}
	}
	return false
}
