package internal

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestHoursConfig_UnknownTimezone(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Hours.Timezone = "Mars/Olympus_Mons"
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown timezone should fail validation")
	}
}

func TestHoursConfig_StaleAfter(t *testing.T) {
	c := HoursConfig{StaleAfterHours: 48}
	if got := c.StaleAfter(); got != 48*time.Hour {
		t.Errorf("StaleAfter = %v", got)
	}
}

func TestPlacesConfig_DisabledSkipsValidation(t *testing.T) {
	c := PlacesConfig{} // no API key, everything else zero
	if c.Enabled() {
		t.Error("empty key should be disabled")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("disabled places config should validate: %v", err)
	}
}

func TestPlacesConfig_EnabledRequiresBaseURL(t *testing.T) {
	c := PlacesConfig{APIKey: "k", CacheTTLMinutes: 30, TimeoutSeconds: 10}
	if err := c.Validate(); err == nil {
		t.Fatal("enabled places config without base_url should fail")
	}
}

func TestDataConfig_RequiresPath(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Data.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty data path should fail validation")
	}
}

func TestHTTPConfig_Address(t *testing.T) {
	c := HTTPConfig{Port: 9090}
	if got := c.Address(); got != ":9090" {
		t.Errorf("Address = %q", got)
	}
}

func TestHTTPConfig_PortRange(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.App.HTTP.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatal("out-of-range port should fail validation")
	}
}
