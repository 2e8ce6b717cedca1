package rgverify

// EngineConfig holds the handful of knobs the driver and regeneration
// passes consult. Unlike the teacher's open-ended "grammar.*" /
// "compiler.*" namespaced Config map, this module's configuration
// surface is small and fixed — MaxRounds and Strict are the only two
// knobs spec.md §9 calls for — so it is a plain struct with defaults
// rather than a dynamically-typed path map.
type EngineConfig struct {
	// MaxRounds caps the number of outer fixpoint rounds the driver
	// will run before giving up and returning ErrFixpointNotReached
	// (spec.md §9, "an implementer may wish to expose an iteration
	// cap").
	MaxRounds int

	// Strict turns on the monotonicity assertion in regenerateStatement:
	// every regeneration round must produce a precondition implied by
	// the one it replaces. Costs an extra IsValid call per statement
	// per round, so it defaults to off.
	Strict bool
}

// NewEngineConfig returns the default configuration: a generous but
// finite round cap, and strict-mode checking off.
func NewEngineConfig() *EngineConfig {
	return &EngineConfig{
		MaxRounds: 1000,
		Strict:    false,
	}
}
