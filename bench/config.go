package bench

import (
	"errors"
	"fmt"
	"math"

	"github.com/colorfulnotion/combinebench/combine"
	"github.com/colorfulnotion/combinebench/timing"
)

const DefaultSize = 1000000

var ErrInvalidConfig = errors.New("bench: invalid config")

// Config describes one benchmark run.
type Config struct {
	Title    string            `json:"title"`
	Size     int               `json:"size"`
	Cycles   int               `json:"cycles"`
	Variants []combine.Variant `json:"variants"`
}

// DefaultConfig runs every variant once over a million elements.
func DefaultConfig() Config {
	return Config{
		Title:    timing.DefaultTitle,
		Size:     DefaultSize,
		Cycles:   1,
		Variants: combine.Variants(),
	}
}

func (c Config) Validate() error {
	if c.Size < 0 || c.Size > math.MaxInt32 {
		return fmt.Errorf("%w: size %d out of range [0, %d]", ErrInvalidConfig, c.Size, math.MaxInt32)
	}
	if c.Cycles < 1 {
		return fmt.Errorf("%w: cycles must be at least 1, got %d", ErrInvalidConfig, c.Cycles)
	}
	if len(c.Variants) == 0 {
		return fmt.Errorf("%w: no variants selected", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Variants))
	for _, v := range c.Variants {
		if v.Fn == nil {
			return fmt.Errorf("%w: variant %q has no implementation", ErrInvalidConfig, v.Name)
		}
		if seen[v.Name] {
			return fmt.Errorf("%w: variant %q listed twice", ErrInvalidConfig, v.Name)
		}
		seen[v.Name] = true
	}
	return nil
}
