package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/etnz/statement"
	"github.com/rs/zerolog"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"STMT_EXTRACT_COMMAND", "STMT_EXTRACT_ARGS", "STMT_EXTRACT_TIMEOUT", "STMT_LAYOUT", "STMT_ZONE", "STMT_GEMINI_MODEL", "STMT_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	s, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	want := ExtractorSettings{
		Command: "java",
		Args:    []string{"-jar", "pdfbox-app-2.0.19.jar", "ExtractText", "-console"},
		Timeout: 2 * time.Minute,
	}
	if !reflect.DeepEqual(s.Extractor, want) {
		t.Errorf("Extractor = %+v, want %+v", s.Extractor, want)
	}
	if s.Zone != statement.DefaultZone || s.Layout != "" {
		t.Errorf("Zone, Layout = %q, %q, want %q, \"\"", s.Zone, s.Layout, statement.DefaultZone)
	}
}

func TestLoadDotEnv(t *testing.T) {
	for _, key := range []string{"STMT_EXTRACT_COMMAND", "STMT_EXTRACT_TIMEOUT", "STMT_LAYOUT"} {
		t.Setenv(key, "")
		// godotenv never overrides a variable that is set, even empty.
		os.Unsetenv(key)
	}
	env := filepath.Join(t.TempDir(), ".env")
	content := "STMT_EXTRACT_COMMAND=pdftotext\nSTMT_EXTRACT_TIMEOUT=30s\nSTMT_LAYOUT=2017\n"
	if err := os.WriteFile(env, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(env)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if s.Extractor.Command != "pdftotext" || s.Extractor.Timeout != 30*time.Second || s.Layout != "2017" {
		t.Errorf("Load() = %+v", s)
	}
}

func TestLoadInvalidTimeout(t *testing.T) {
	for _, timeout := range []string{"soon", "0s", "-1m"} {
		t.Run(timeout, func(t *testing.T) {
			t.Setenv("STMT_EXTRACT_TIMEOUT", timeout)
			if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
				t.Errorf("Load() expected an error for timeout %q", timeout)
			}
		})
	}
}

func TestStatement(t *testing.T) {
	s := &Settings{Layout: "2017", Zone: "Europe/Paris"}
	cfg, err := s.Statement(zerolog.Nop())
	if err != nil {
		t.Fatalf("Statement() unexpected error: %v", err)
	}
	if cfg.Layout != statement.Revision2017 {
		t.Errorf("Layout = %p, want the 2017 revision", cfg.Layout)
	}
	if cfg.Zone.String() != "Europe/Paris" {
		t.Errorf("Zone = %v, want Europe/Paris", cfg.Zone)
	}

	s.Layout = "1999"
	if _, err := s.Statement(zerolog.Nop()); !errors.Is(err, statement.ErrUnknownLayout) {
		t.Errorf("Statement() error = %v, want ErrUnknownLayout", err)
	}
}
