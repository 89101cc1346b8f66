package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mitchellh/go-homedir"
)

func isolate(t *testing.T) string {
	t.Helper()
	homedir.DisableCache = true
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("AMPCRED_CONFIG_PATH", home)
	return home
}

func TestDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load(New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := &Config{
		Variant:    "amp",
		Mode:       "month",
		Sort:       "alphabetical",
		Locale:     "en",
		Tolerance:  1,
		WeekAnchor: 1,
		Columns:    []string{"Mon", "Tue", "Wed", "Thu", "Fri"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("defaults (-want +got):\n%s", diff)
	}
}

func TestEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("AMPCRED_MODE", "week")
	t.Setenv("AMPCRED_TOLERANCE", "0")
	t.Setenv("AMPCRED_COLUMNS", "Sat,Sun")
	cfg, err := Load(New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Mode != "week" || cfg.Tolerance != 0 {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if diff := cmp.Diff([]string{"Sat", "Sun"}, cfg.Columns); diff != "" {
		t.Fatalf("columns (-want +got):\n%s", diff)
	}
}

func TestConfigFile(t *testing.T) {
	home := isolate(t)
	data := "variant: cred\nsort: recent\nseed: ~/seed.yaml\nmonth: March 2026\n"
	if err := os.WriteFile(filepath.Join(home, ".ampcred.yaml"), []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Variant != "cred" || cfg.Sort != "recent" || cfg.Month != "March 2026" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if want := filepath.Join(home, "seed.yaml"); cfg.Seed != want {
		t.Fatalf("expected seed %s, got %s", want, cfg.Seed)
	}
}

func TestInvalidValues(t *testing.T) {
	cases := map[string]string{
		"AMPCRED_MODE":      "year",
		"AMPCRED_SORT":      "random",
		"AMPCRED_VARIANT":   "marketing",
		"AMPCRED_MONTH":     "Smarch",
		"AMPCRED_TOLERANCE": "-1",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			isolate(t)
			t.Setenv(key, value)
			if _, err := Load(New()); err == nil {
				t.Fatalf("expected %s=%s to be rejected", key, value)
			}
		})
	}
}
