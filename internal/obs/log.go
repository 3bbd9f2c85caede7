// Package obs builds the zap-backed logger used by the CLI, which also
// hands it to the engine through sim.WithLogger. Line-level assembler errors are never routed
// through here — those go through the listing annotation contract in
// asm.Result — this package is strictly for operational visibility.
package obs

import "go.uber.org/zap"

// New builds a development-friendly sugared logger. verbose enables
// debug-level output (e.g. per-instruction scheduler tracing).
func New(verbose bool) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		// Config is static and controlled entirely by us; this can only
		// fail if the zap API itself changes shape.
		panic(err)
	}
	return logger.Sugar()
}

// Nop returns a logger that discards everything, for tests that don't
// want log noise.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
