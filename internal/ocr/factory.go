// Package ocr selects and constructs OCR engine implementations.
package ocr

import (
	"fmt"

	"receiptflow/internal/config"
	"receiptflow/internal/port"
)

// EngineFactory is a function that creates an OCREngine from the OCR config.
type EngineFactory func(cfg *config.OCRConfig) (port.OCREngine, error)

// registry of engine factories, populated explicitly via RegisterEngine.
var engines = map[string]EngineFactory{}

// RegisterEngine registers an OCR engine factory by name.
func RegisterEngine(name string, factory EngineFactory) {
	engines[name] = factory
}

// NewEngine creates an OCREngine from the config using the registered factory.
func NewEngine(cfg *config.OCRConfig) (port.OCREngine, error) {
	factory, ok := engines[cfg.Engine]
	if !ok {
		return nil, fmt.Errorf("unknown ocr engine: %s", cfg.Engine)
	}
	return factory(cfg)
}
