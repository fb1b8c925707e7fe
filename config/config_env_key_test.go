package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"tracking": map[string]any{
			"debounceThreshold": 2,
			"evictionWindow":    "30m",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "TRACKING_DEBOUNCETHRESHOLD", want: "tracking.debounceThreshold"},
		{envKey: "TRACKING_EVICTIONWINDOW", want: "tracking.evictionWindow"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	if cfg.Tracking.DebounceThreshold != DefaultDebounceThreshold {
		t.Fatalf("debounce threshold = %d, want %d", cfg.Tracking.DebounceThreshold, DefaultDebounceThreshold)
	}
	if cfg.Tracking.EvictionWindow != DefaultEvictionWindow {
		t.Fatalf("eviction window = %s, want %s", cfg.Tracking.EvictionWindow, DefaultEvictionWindow)
	}
	if cfg.Alert.DefaultListLimit <= 0 || cfg.Alert.MaxListLimit < cfg.Alert.DefaultListLimit {
		t.Fatalf("alert list limits not defaulted: %+v", cfg.Alert)
	}
}

func TestApplyDefaults_KeepsConfiguredValues(t *testing.T) {
	cfg := &Config{
		Tracking: &TrackingConfig{DebounceThreshold: 5},
	}
	applyDefaults(cfg)

	if cfg.Tracking.DebounceThreshold != 5 {
		t.Fatalf("debounce threshold = %d, want 5", cfg.Tracking.DebounceThreshold)
	}
}
