package common

import (
	"errors"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	chdirForTest(t, t.TempDir())
	for _, k := range []string{
		"PDF2CSV_ENGINE", "PDF2CSV_JAVA", "PDF2CSV_TABULA_JAR", "PDF2CSV_JAVA_OPTS",
		"PDF2CSV_ENGINE_TIMEOUT", "PDF2CSV_LOG_LEVEL", "PDF2CSV_LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()

	if cfg.Engine.Name != EngineTabulaJava {
		t.Fatalf("expected default engine %s, got %s", EngineTabulaJava, cfg.Engine.Name)
	}
	if cfg.Engine.JavaBin != "java" {
		t.Fatalf("expected default java binary java, got %s", cfg.Engine.JavaBin)
	}
	if cfg.Engine.TabulaJar != "tabula.jar" {
		t.Fatalf("expected default jar tabula.jar, got %s", cfg.Engine.TabulaJar)
	}
	if len(cfg.Engine.JavaOpts) != 1 || cfg.Engine.JavaOpts[0] != "-Dfile.encoding=UTF8" {
		t.Fatalf("unexpected default java opts: %v", cfg.Engine.JavaOpts)
	}
	if cfg.Engine.Timeout != 0 {
		t.Fatalf("expected no default timeout, got %s", cfg.Engine.Timeout)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Fatalf("unexpected log defaults: %+v", cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	chdirForTest(t, t.TempDir())
	t.Setenv("PDF2CSV_ENGINE", "native")
	t.Setenv("PDF2CSV_JAVA", "/opt/jdk/bin/java")
	t.Setenv("PDF2CSV_TABULA_JAR", "/opt/tabula/tabula-1.0.5.jar")
	t.Setenv("PDF2CSV_JAVA_OPTS", "-Xmx2g -Djava.awt.headless=true")
	t.Setenv("PDF2CSV_ENGINE_TIMEOUT", "90s")
	t.Setenv("PDF2CSV_LOG_LEVEL", "debug")
	t.Setenv("PDF2CSV_LOG_FORMAT", "json")

	cfg := LoadConfig()

	if cfg.Engine.Name != EngineNative {
		t.Fatalf("expected engine native, got %s", cfg.Engine.Name)
	}
	if cfg.Engine.JavaBin != "/opt/jdk/bin/java" {
		t.Fatalf("unexpected java binary: %s", cfg.Engine.JavaBin)
	}
	if len(cfg.Engine.JavaOpts) != 2 {
		t.Fatalf("expected 2 java opts, got %v", cfg.Engine.JavaOpts)
	}
	if cfg.Engine.Timeout != 90*time.Second {
		t.Fatalf("expected 90s timeout, got %s", cfg.Engine.Timeout)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
}

func TestConfig_Validate(t *testing.T) {
	base := Config{
		Engine: EngineConfig{Name: EngineTabulaJava, JavaBin: "java", TabulaJar: "tabula.jar"},
		Log:    LogConfig{Level: "info", Format: "text"},
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"native without jar", func(c *Config) { c.Engine.Name = EngineNative; c.Engine.TabulaJar = "" }, false},
		{"unknown engine", func(c *Config) { c.Engine.Name = "camelot" }, true},
		{"missing engine", func(c *Config) { c.Engine.Name = "" }, true},
		{"missing jar", func(c *Config) { c.Engine.TabulaJar = "" }, true},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"negative timeout", func(c *Config) { c.Engine.Timeout = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrMalformedArgument) {
				t.Fatalf("expected malformed argument error, got %v", err)
			}
		})
	}
}
