// Package config loads the settings of the command line tool from the environment
// and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/etnz/statement"
	"github.com/etnz/statement/extract"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Settings holds all the settings of the tool.
type Settings struct {
	Extractor   ExtractorSettings
	Layout      string // Layout forces a layout revision by name, empty to detect it.
	Zone        string // Zone is the IANA name of the zone statement dates are printed in.
	GeminiModel string
	LogLevel    string
}

// ExtractorSettings configures the external command extracting the text of a PDF.
type ExtractorSettings struct {
	Command string   // Command is the program to run.
	Args    []string // Args come before the path of the document.
	Timeout time.Duration
}

// PDFBoxJar is the pdfbox release run by default to extract the text of a PDF.
const PDFBoxJar = "pdfbox-app-2.0.19.jar"

// Load reads the settings from environment variables and the .env files, if any.
func Load(files ...string) (*Settings, error) {
	// missing .env files are fine.
	_ = godotenv.Load(files...)

	pdfbox := extract.PDFBox(PDFBoxJar, 2*time.Minute)
	timeout, err := time.ParseDuration(getEnv("STMT_EXTRACT_TIMEOUT", pdfbox.Timeout.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid STMT_EXTRACT_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid STMT_EXTRACT_TIMEOUT: %v is not positive", timeout)
	}
	return &Settings{
		Extractor: ExtractorSettings{
			Command: getEnv("STMT_EXTRACT_COMMAND", pdfbox.Name),
			Args:    strings.Fields(getEnv("STMT_EXTRACT_ARGS", strings.Join(pdfbox.Args, " "))),
			Timeout: timeout,
		},
		Layout:      os.Getenv("STMT_LAYOUT"),
		Zone:        getEnv("STMT_ZONE", statement.DefaultZone),
		GeminiModel: getEnv("STMT_GEMINI_MODEL", "gemini-2.5-flash"),
		LogLevel:    os.Getenv("STMT_LOG_LEVEL"),
	}, nil
}

// Statement returns the parsing configuration for these settings.
func (s *Settings) Statement(log zerolog.Logger) (statement.Config, error) {
	cfg := statement.DefaultConfig()
	cfg.Logger = log
	if s.Layout != "" {
		layout, err := statement.LayoutByName(s.Layout)
		if err != nil {
			return cfg, err
		}
		cfg.Layout = layout
	}
	if s.Zone != "" {
		zone, err := time.LoadLocation(s.Zone)
		if err != nil {
			return cfg, fmt.Errorf("invalid zone %q: %w", s.Zone, err)
		}
		cfg.Zone = zone
	}
	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
