package garden

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Tuning holds the scene-wide constants supplied by the host.
type Tuning struct {
	SegmentWidth  float64 `yaml:"segmentWidth"`
	InitialOffset float64 `yaml:"initialOffset"`
	DotBand       Range   `yaml:"dotBand"`
}

// Config is the declarative scene description: tuning constants plus layer
// group declarations. Pure data; the host supplies it once at mount time.
type Config struct {
	Tuning Tuning  `yaml:"tuning"`
	Groups []Group `yaml:"groups"`
}

// LoadConfig parses and validates a YAML scene configuration. Malformed
// configuration is a developer-time mistake, so validation fails fast here
// (including a full layer composition pass) rather than surfacing later
// during rendering.
func LoadConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse scene config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("scene config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Tuning.SegmentWidth <= 0 {
		return fmt.Errorf("segmentWidth %g must be positive", c.Tuning.SegmentWidth)
	}
	if c.Tuning.InitialOffset < 0 || c.Tuning.InitialOffset >= c.Tuning.SegmentWidth {
		return fmt.Errorf("initialOffset %g outside [0, segmentWidth)", c.Tuning.InitialOffset)
	}

	band := c.Tuning.DotBand
	if band == (Range{}) {
		c.Tuning.DotBand = DefaultDotBand
	} else {
		if band.Min < 0 || band.Max > 1 || band.Min > band.Max {
			return fmt.Errorf("dot band [%g, %g] must satisfy 0 <= min <= max <= 1", band.Min, band.Max)
		}
	}

	// Composition shares the fail-fast contract; run it once so group/asset
	// mistakes surface at load time.
	if _, err := CompositeLayers(c.Groups); err != nil {
		return err
	}
	return nil
}

// Layers composites the configured groups into render layers.
func (c *Config) Layers() ([]Layer, error) {
	return CompositeLayers(c.Groups)
}
