package simulation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed config.schema.json
var configSchema string

const (
	// cellSizeRatio makes the grid cell a bit larger than the visible range
	cellSizeRatio = 1.1
	// fallbackCellSize is the grid cell used when the visible range is zero
	fallbackCellSize = 1.0
	// marginRatio is the share of the frame width where boids start turning
	marginRatio = 0.005
)

type Config struct {
	// Population
	BoidCount int `json:"boidCount"`

	// World Dimensions, the initial frame before any resize
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`
	Margin      float64 `json:"margin"` // 0 derives it from the width

	// Physics
	MinSpeed float64 `json:"minSpeed"`
	MaxSpeed float64 `json:"maxSpeed"`

	// Boids flocking parameters (matching pkg/behavior/boid.go)
	ProtectedRange float64 `json:"protectedRange"` // Personal space radius
	VisibleRange   float64 `json:"visibleRange"`   // How far can they see?

	AvoidFactor     float64 `json:"avoidFactor"`     // Separation strength
	MatchingFactor  float64 `json:"matchingFactor"`  // Alignment strength
	CenteringFactor float64 `json:"centeringFactor"` // Cohesion strength
	TurnFactor      float64 `json:"turnFactor"`      // Edge turning strength

	// Engine
	CellSize   float64 `json:"cellSize"` // 0 derives it from the visible range
	DrawRadius float64 `json:"drawRadius"`
	Workers    int     `json:"workers"` // 0 means GOMAXPROCS
}

func DefaultConfig() *Config {
	return &Config{
		BoidCount:       5000,
		WorldWidth:      1280,
		WorldHeight:     800,
		MinSpeed:        0.5,
		MaxSpeed:        3.0,
		ProtectedRange:  2.0,
		VisibleRange:    20.0,
		AvoidFactor:     0.10,
		MatchingFactor:  0.05,
		CenteringFactor: 0.0005,
		TurnFactor:      0.2,
		DrawRadius:      3.0,
	}
}

// LoadConfig reads a JSON or TOML file, validates it against the schema and
// overlays it on DefaultConfig. Keys absent from the file keep their default.
func LoadConfig(configFile string) (*Config, error) {
	// 1. Compile Schema
	sch, err := jsonschema.CompileString("config.schema.json", configSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	// 2. Read Config File, as JSON bytes whatever the source format
	b, err := readAsJSON(configFile)
	if err != nil {
		return nil, err
	}

	// 3. Validate
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// 4. Unmarshal into Struct
	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

func readAsJSON(configFile string) ([]byte, error) {
	switch ext := strings.ToLower(filepath.Ext(configFile)); ext {
	case ".json":
		b, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		return b, nil
	case ".toml":
		var m map[string]interface{}
		if _, err := toml.DecodeFile(configFile, &m); err != nil {
			return nil, fmt.Errorf("failed to decode config toml: %w", err)
		}
		b, err := json.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("failed to convert config toml: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported config format %q (want .json or .toml)", ext)
	}
}

// Params turns the configuration into validated simulation parameters,
// filling in the derived cell size and margin.
func (c *Config) Params() (flock.Params, error) {
	p := flock.Params{
		BoidCount:       c.BoidCount,
		Width:           c.WorldWidth,
		Height:          c.WorldHeight,
		Margin:          c.Margin,
		MinSpeed:        c.MinSpeed,
		MaxSpeed:        c.MaxSpeed,
		ProtectedRange:  c.ProtectedRange,
		VisibleRange:    c.VisibleRange,
		AvoidFactor:     c.AvoidFactor,
		MatchingFactor:  c.MatchingFactor,
		CenteringFactor: c.CenteringFactor,
		TurnFactor:      c.TurnFactor,
		CellSize:        c.CellSize,
		DrawRadius:      c.DrawRadius,
	}
	if p.CellSize == 0 {
		p.CellSize = c.VisibleRange * cellSizeRatio
		if p.CellSize <= 0 {
			// blind boids never look past their own cell, any side works
			p.CellSize = fallbackCellSize
		}
	}
	if p.Margin == 0 {
		p.Margin = c.WorldWidth * marginRatio
	}
	if err := p.Validate(); err != nil {
		return flock.Params{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return p, nil
}
