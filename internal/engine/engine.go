// Package engine builds the configured extraction backend.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/pdf2csv/internal/common"
	"github.com/joseph-ayodele/pdf2csv/internal/engine/native"
	"github.com/joseph-ayodele/pdf2csv/internal/engine/tabulajava"
	"github.com/joseph-ayodele/pdf2csv/internal/extract"
)

// New returns the extractor named by cfg.Name.
func New(cfg common.EngineConfig, logger *slog.Logger) (extract.Extractor, error) {
	switch cfg.Name {
	case common.EngineTabulaJava, "":
		return tabulajava.NewClient(tabulajava.Config{
			JavaBin:   cfg.JavaBin,
			TabulaJar: cfg.TabulaJar,
			JavaOpts:  cfg.JavaOpts,
			Timeout:   cfg.Timeout,
		}, logger), nil
	case common.EngineNative:
		return native.NewClient(logger), nil
	default:
		return nil, common.MalformedArgumentErrorf("--engine native", "unknown engine %q", cfg.Name)
	}
}

// Check reports whether ex can run on this host. Backends without external
// prerequisites are always available.
func Check(ex extract.Extractor) error {
	type availabler interface{ Available() error }
	if a, ok := ex.(availabler); ok {
		return a.Available()
	}
	return nil
}

// Describe is a one-line summary of the engine configuration for humans.
func Describe(cfg common.EngineConfig) string {
	if cfg.Name == common.EngineNative {
		return common.EngineNative
	}
	return fmt.Sprintf("%s (java=%s jar=%s)", common.EngineTabulaJava, cfg.JavaBin, cfg.TabulaJar)
}
