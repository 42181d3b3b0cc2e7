package rtos

import "testing"

func TestLoadDefaultsOnEmptyPath(t *testing.T) {
	cfg := Load("")
	if cfg.TickMS != 1 {
		t.Fatalf("TickMS = %d, want 1", cfg.TickMS)
	}
	if len(cfg.Tasks) != 3 {
		t.Fatalf("len(Tasks) = %d, want 3 default demo tasks", len(cfg.Tasks))
	}
}

func TestLoadFallsBackOnMissingFile(t *testing.T) {
	cfg := Load("/nonexistent/path/config.yml")
	if len(cfg.Tasks) == 0 {
		t.Fatalf("expected default tasks when file is missing")
	}
}
