package drm2hosha

import (
	"strings"
	"testing"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()
	if cfg.contract != CONTRACT_NONE || cfg.exportDisplay || cfg.symmetricMerge || cfg.retainImpassable {
		t.Errorf("Optional stages should be disabled by default")
	}
	if cfg.cutLength != defaultCutLength || cfg.displayScale != defaultDisplayScale {
		t.Errorf("Cut length and display scale should be %f and %f, but got %f and %f", defaultCutLength, defaultDisplayScale, cfg.cutLength, cfg.displayScale)
	}
	if cfg.logger == nil {
		t.Errorf("Logger should never be nil")
	}

	cfg = NewConfig(WithContract(true), WithExportFormat(EXPORT_CSV), WithPedestrianRoadClasses([]int{2, 9}), WithLogger(nil))
	if cfg.contract != CONTRACT_PARTIAL {
		t.Errorf("Contraction should be '%s', but got '%s'", CONTRACT_PARTIAL, cfg.contract)
	}
	if cfg.logger == nil {
		t.Errorf("Nil logger should be ignored")
	}
	if !strings.Contains(cfg.String(), "export_format: 'csv'") {
		t.Errorf("String representation should contain export format, but got '%s'", cfg.String())
	}
}
