package rgverify

// LoadProgram parses src and runs initialisation, returning a Program
// ready for Verify. This is the facade most callers want instead of
// calling ParseProgram and Initialise separately (mirroring the
// teacher's own api.go, which wrapped grammar parsing plus AST
// post-processing behind a single entry point).
func LoadProgram(src []byte, oracle Oracle) (*Program, error) {
	prog, err := ParseProgram(src)
	if err != nil {
		return nil, err
	}
	if err := Initialise(prog, oracle); err != nil {
		return nil, err
	}
	return prog, nil
}

// VerifySource is the single-call convenience path: parse, initialise
// with a fresh DefaultOracle, and run the fixpoint driver to
// completion.
func VerifySource(src []byte, cfg *EngineConfig) (*VerificationResult, *Program, error) {
	oracle := NewDefaultOracle()
	prog, err := LoadProgram(src, oracle)
	if err != nil {
		return nil, nil, err
	}
	if cfg == nil {
		cfg = NewEngineConfig()
	}
	res, err := Verify(prog, oracle, cfg)
	return res, prog, err
}
