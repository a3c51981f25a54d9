package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"`
	Port  int    `yaml:"port"`
	valid bool
}

func (s *sample) Validate() error {
	if s.Port <= 0 {
		return errors.New("port must be positive")
	}
	s.valid = true
	return nil
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ExpandsEnvAndValidates(t *testing.T) {
	t.Setenv("SAMPLE_NAME", "noteful")
	path := writeFile(t, "name: ${SAMPLE_NAME}\nport: 8080\n")

	var s sample
	if err := Load(path, &s); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "noteful" || s.Port != 8080 || !s.valid {
		t.Errorf("got %+v", s)
	}
}

func TestLoad_KeepsDefaults(t *testing.T) {
	path := writeFile(t, "name: x\n")
	s := sample{Port: 9000}
	if err := Load(path, &s); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Port != 9000 {
		t.Errorf("port = %d, want default kept", s.Port)
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := writeFile(t, "port: 0\n")
	var s sample
	err := Load(path, &s)
	if err == nil || !strings.Contains(err.Error(), "config validation failed") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadWithDefaults_MissingFile(t *testing.T) {
	s := sample{Port: 1}
	if err := LoadWithDefaults(filepath.Join(t.TempDir(), "absent.yaml"), "", &s); err != nil {
		t.Fatalf("missing file without default should validate defaults: %v", err)
	}
	if !s.valid {
		t.Error("defaults were not validated")
	}

	fallback := writeFile(t, "port: 7\n")
	s = sample{}
	if err := LoadWithDefaults(filepath.Join(t.TempDir(), "absent.yaml"), fallback, &s); err != nil {
		t.Fatalf("LoadWithDefaults: %v", err)
	}
	if s.Port != 7 {
		t.Errorf("port = %d, want 7 from fallback", s.Port)
	}
}
