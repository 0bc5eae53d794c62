package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.config")
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatalf("Could not write %s: %s", path, err.Error())
	}
	return path
}

// The example configs are what 'epan help <mode>.config' hands users as
// a starting point, so every one of them has to read back cleanly.
func TestExampleConfigs(t *testing.T) {
	for name, mode := range ModeNames {
		path := writeConfig(t, mode.ExampleConfig())
		if err := mode.ReadConfig(path, nil); err != nil {
			t.Errorf("Expected the %s example config to read cleanly, "+
				"but got the error '%s'", name, err.Error())
		}
	}
}

func TestGlobalExampleConfig(t *testing.T) {
	config := &GlobalConfig{}
	path := writeConfig(t, config.ExampleConfig())
	if err := config.ReadConfig(path); err != nil {
		t.Fatalf("Expected the global example config to read cleanly, "+
			"but got the error '%s'", err.Error())
	}

	if config.Source != "path/to/eprem/run" {
		t.Errorf("Expected the example Source, got '%s'", config.Source)
	}
	if config.Output != "." {
		t.Errorf("Expected the default Output '.', got '%s'", config.Output)
	}
	if config.TimeUnit != "hour" {
		t.Errorf("Expected the default TimeUnit 'hour', got '%s'",
			config.TimeUnit)
	}
}

func TestGlobalConfigVersionMismatch(t *testing.T) {
	config := &GlobalConfig{}
	path := writeConfig(t, "[config]\nVersion = 999.0.0\nSource = run")
	if err := config.ReadConfig(path); err == nil {
		t.Errorf("Expected an error for a mismatched version.")
	}
}

func TestGlobalConfigMissingSource(t *testing.T) {
	config := &GlobalConfig{}
	path := writeConfig(t, "[config]\nOutput = figs")
	if err := config.ReadConfig(path); err == nil {
		t.Errorf("Expected an error for an unset Source.")
	}
}

func TestGlobalConfigBadUnit(t *testing.T) {
	config := &GlobalConfig{}
	path := writeConfig(t, "[config]\nSource = run\nTimeUnit = fortnight")
	if err := config.ReadConfig(path); err == nil {
		t.Errorf("Expected an error for an unsupported time unit.")
	}
}

func TestUnknownVariable(t *testing.T) {
	config := &FluxTimeConfig{}
	path := writeConfig(t, "[flux-time.config]\nBogus = 1")
	if err := config.ReadConfig(path, nil); err == nil {
		t.Errorf("Expected an error for an unknown variable.")
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	config := &WriteHistoryConfig{}
	path := writeConfig(t, "[write-history.config]\nStream = 0")
	flags := []string{"--Stream", "4", "--Quantities", "rho", "br"}
	if err := config.ReadConfig(path, flags); err != nil {
		t.Fatalf("ReadConfig failed: %s", err.Error())
	}

	if config.stream != 4 {
		t.Errorf("Expected the flag to override Stream with 4, got %d",
			config.stream)
	}
	if len(config.quantities) != 2 || config.quantities[0] != "rho" ||
		config.quantities[1] != "br" {
		t.Errorf("Expected Quantities [rho br], got %v", config.quantities)
	}
}

func TestBareFlags(t *testing.T) {
	config := &FluxTimeConfig{}
	flags := []string{"--Streams", "0", "3", "--Title", "false"}
	if err := config.ReadConfig("", flags); err != nil {
		t.Fatalf("ReadConfig failed: %s", err.Error())
	}

	if len(config.streams) != 2 || config.streams[0] != 0 ||
		config.streams[1] != 3 {
		t.Errorf("Expected Streams [0 3], got %v", config.streams)
	}
	if config.title {
		t.Errorf("Expected the Title flag to switch the title off.")
	}
}

func TestStreams3DPairedVariables(t *testing.T) {
	config := &Streams3DConfig{}
	err := config.ReadConfig("", []string{"--Mode", "flux"})
	if err == nil {
		t.Errorf("Expected an error for Mode without Observers.")
	}

	config = &Streams3DConfig{}
	err = config.ReadConfig("", []string{"--Observers", "0"})
	if err == nil {
		t.Errorf("Expected an error for Observers without Mode.")
	}
}
