package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/esimov/lowpoly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Entropy.SampleRadius != 4 {
		t.Errorf("expected sample radius 4, got %d", cfg.Entropy.SampleRadius)
	}
	if cfg.Entropy.Accuracy != 8 {
		t.Errorf("expected accuracy 8, got %d", cfg.Entropy.Accuracy)
	}
	if !cfg.Entropy.Grayscale {
		t.Error("expected grayscale to be true by default")
	}
	if cfg.Points.Detail != 1000 {
		t.Errorf("expected 1000 detail points, got %d", cfg.Points.Detail)
	}
	if cfg.Points.Border != 10 {
		t.Errorf("expected 10 border points, got %d", cfg.Points.Border)
	}
	if cfg.Input.MaxDimension != 350 {
		t.Errorf("expected max dimension 350, got %d", cfg.Input.MaxDimension)
	}
	if cfg.Render.MinDimension != lowpoly.DefaultMinDimension {
		t.Errorf("expected min dimension %d, got %d", lowpoly.DefaultMinDimension, cfg.Render.MinDimension)
	}
	if cfg.Output.Format != FormatPNG {
		t.Errorf("expected format png, got %s", cfg.Output.Format)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestDefaultProcessor(t *testing.T) {
	assert.Equal(t, lowpoly.DefaultProcessor(), Default().Processor())
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "lowpoly.yaml")

	yamlContent := `
entropy:
  sample_radius: 2
  accuracy: 12
  grayscale: false

points:
  detail: 250
  influence_strength: 2.5

render:
  wireframe: only
  noise: 10

logging:
  level: "debug"
  log_file: "lowpoly.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	assert.Equal(t, 2, cfg.Entropy.SampleRadius)
	assert.Equal(t, 12, cfg.Entropy.Accuracy)
	assert.False(t, cfg.Entropy.Grayscale)
	assert.Equal(t, 250, cfg.Points.Detail)
	assert.Equal(t, 2.5, cfg.Points.InfluenceStrength)
	assert.Equal(t, "only", cfg.Render.Wireframe)
	assert.Equal(t, 10, cfg.Render.Noise)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "lowpoly.log", cfg.Logging.LogFile)

	// Values missing from the file keep their defaults.
	assert.Equal(t, 10, cfg.Points.Border)
	assert.Equal(t, 350, cfg.Input.MaxDimension)
	assert.Equal(t, FormatPNG, cfg.Output.Format)

	assert.Equal(t, 4, cfg.Processor().ColorDepth)
	assert.Equal(t, lowpoly.WireframeOnly, cfg.RenderOptions().Wireframe)
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("points: [1, 2"), 0644))

	err := loadFromFile(Default(), configPath)
	assert.Error(t, err)

	err = loadFromFile(Default(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestLoadPriority(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	configPath := filepath.Join(t.TempDir(), "lowpoly.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("points:\n  detail: 500\n  border: 7\n"), 0644))

	flags := NewFlags("lowpoly", io.Discard)
	require.NoError(t, flags.Parse([]string{
		"-config", configPath,
		"-points", "200",
		"-gray=false",
		"-wireframe", "both",
		"-debug",
	}))

	cfg, err := Load(flags)
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.Points.Detail, "flag overrides the file")
	assert.Equal(t, 7, cfg.Points.Border, "an unset flag keeps the file value")
	assert.False(t, cfg.Entropy.Grayscale)
	assert.Equal(t, "both", cfg.Render.Wireframe)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 15, cfg.Points.InfluenceRadius, "default kept")
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	flags := NewFlags("lowpoly", io.Discard)
	require.NoError(t, flags.Parse([]string{"-format", "gif"}))

	_, err := Load(flags)
	assert.Error(t, err)
}

func TestFlagsParseError(t *testing.T) {
	flags := NewFlags("lowpoly", io.Discard)
	assert.Error(t, flags.Parse([]string{"-points", "many"}))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"accuracy too high", func(c *Config) { c.Entropy.Accuracy = 16 }, true},
		{"accuracy negative", func(c *Config) { c.Entropy.Accuracy = -1 }, true},
		{"wireframe upper case", func(c *Config) { c.Render.Wireframe = "ONLY" }, false},
		{"unknown wireframe", func(c *Config) { c.Render.Wireframe = "dotted" }, true},
		{"svg format", func(c *Config) { c.Output.Format = FormatSVG }, false},
		{"unknown format", func(c *Config) { c.Output.Format = "jpg" }, true},
		{"negative max dimension", func(c *Config) { c.Input.MaxDimension = -1 }, true},
		{"negative random", func(c *Config) { c.Points.Random = -5 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveTo(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "nested", "lowpoly.yaml")
	cfg := Default()
	cfg.Points.Detail = 321
	cfg.Render.Wireframe = "only"
	require.NoError(t, cfg.SaveTo(path))

	flags := NewFlags("lowpoly", io.Discard)
	require.NoError(t, flags.Parse([]string{"-config", path}))
	loaded, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
