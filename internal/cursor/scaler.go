package cursor

import (
	"fmt"

	"golang.org/x/image/draw"
)

// Scaler produces enlarged copies of system cursors.
type Scaler struct {
	registry Registry
	interp   draw.Interpolator
}

// NewScaler returns a Scaler reading from and building through registry. A nil
// interp selects nearest-neighbour scaling.
func NewScaler(registry Registry, interp draw.Interpolator) *Scaler {
	if interp == nil {
		interp = draw.NearestNeighbor
	}
	return &Scaler{registry: registry, interp: interp}
}

// Scale loads the cursor bound to kind, resizes it to width x height and returns
// a new, independent cursor resource. Global cursor state is left untouched.
func (s *Scaler) Scale(kind Kind, width, height int) (Handle, error) {
	src, err := s.registry.Load(kind)
	if err != nil {
		return 0, err
	}

	scaled, err := ScaleBitmap(src, width, height, s.interp)
	if err != nil {
		return 0, fmt.Errorf("scale %s: %w", kind, err)
	}

	return s.registry.Build(kind, scaled)
}
