package db

import "testing"

func TestBuildPoolConfig(t *testing.T) {
	const dbURL = "postgres://survey:pw@localhost:5432/survey"

	tests := []struct {
		name     string
		maxConns int
		minConns int
		wantMax  int32
		wantMin  int32
	}{
		{"configured sizing applied", 20, 5, 20, 5},
		{"zero falls back to defaults", 0, 0, defaultMaxConns, defaultMinConns},
		{"negative falls back to defaults", -1, -1, defaultMaxConns, defaultMinConns},
		{"min clamped to max", 4, 8, 4, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := buildPoolConfig(dbURL, tt.maxConns, tt.minConns)
			if err != nil {
				t.Fatalf("buildPoolConfig: %v", err)
			}
			if cfg.MaxConns != tt.wantMax {
				t.Errorf("MaxConns = %d, want %d", cfg.MaxConns, tt.wantMax)
			}
			if cfg.MinConns != tt.wantMin {
				t.Errorf("MinConns = %d, want %d", cfg.MinConns, tt.wantMin)
			}
		})
	}
}

func TestBuildPoolConfig_BadURL(t *testing.T) {
	if _, err := buildPoolConfig("://not-a-url", 10, 2); err == nil {
		t.Error("expected error for unparseable database URL")
	}
}
