package entity

import (
	"fmt"

	"github.com/younwookim/toybow/internal/domain/geom"
)

// ShotScaleMapping is a linear remap from pull distance (meters) to an output
// range. The same remap serves shot strength and string-pull volume.
type ShotScaleMapping struct {
	DomainMin float64 `json:"domainMin"`
	DomainMax float64 `json:"domainMax"`
	RangeMin  float64 `json:"rangeMin"`
	RangeMax  float64 `json:"rangeMax"`
}

// DefaultShotStrength maps 0..0.6 m of pull onto a 1..15 force scalar
func DefaultShotStrength() ShotScaleMapping {
	return ShotScaleMapping{DomainMin: 0, DomainMax: 0.6, RangeMin: 1, RangeMax: 15}
}

// DefaultPullVolume maps 0..0.6 m of pull onto 0..0.2 volume
func DefaultPullVolume() ShotScaleMapping {
	return ShotScaleMapping{DomainMin: 0, DomainMax: 0.6, RangeMin: 0, RangeMax: 0.2}
}

// Map remaps value without clamping
func (m ShotScaleMapping) Map(value float64) float64 {
	return geom.RemapLinear(value, m.DomainMin, m.DomainMax, m.RangeMin, m.RangeMax)
}

// Validate rejects an empty domain
func (m ShotScaleMapping) Validate() error {
	if m.DomainMin == m.DomainMax {
		return fmt.Errorf("shot scale domain is empty: [%v, %v]", m.DomainMin, m.DomainMax)
	}
	return nil
}
