package images

import (
	"strings"

	"github.com/nfnt/resize"
)

// ResampleFilter defines the resampling algorithm used for image scaling.
type ResampleFilter int

const (
	// BilinearFilter uses bilinear interpolation (fast, good quality). It is the default.
	BilinearFilter ResampleFilter = iota
	// NearestNeighborFilter uses nearest-neighbor interpolation (fastest, lowest quality).
	NearestNeighborFilter
	// BicubicFilter uses bicubic interpolation (slower, better quality).
	BicubicFilter
	// MitchellNetravaliFilter uses the Mitchell-Netravali cubic filter (balanced).
	MitchellNetravaliFilter
	// LanczosFilter uses Lanczos resampling with a=2.
	LanczosFilter
	// Lanczos3Filter uses Lanczos resampling with a=3 (slowest, sharpest).
	Lanczos3Filter
)

var filterNames = map[ResampleFilter]string{
	BilinearFilter:          "bilinear",
	NearestNeighborFilter:   "nearest",
	BicubicFilter:           "bicubic",
	MitchellNetravaliFilter: "mitchell",
	LanczosFilter:           "lanczos",
	Lanczos3Filter:          "lanczos3",
}

// String returns the name accepted by ParseResampleFilter.
func (f ResampleFilter) String() string {
	if name, ok := filterNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseResampleFilter maps a filter name to a ResampleFilter. An empty name
// selects BilinearFilter.
func ParseResampleFilter(name string) (ResampleFilter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return BilinearFilter, nil
	}
	for f, n := range filterNames {
		if n == name {
			return f, nil
		}
	}
	return BilinearFilter, InvalidArgument("unknown resample filter %q", name)
}

// interpolation returns the nfnt/resize function backing the filter.
func (f ResampleFilter) interpolation() resize.InterpolationFunction {
	switch f {
	case NearestNeighborFilter:
		return resize.NearestNeighbor
	case BicubicFilter:
		return resize.Bicubic
	case MitchellNetravaliFilter:
		return resize.MitchellNetravali
	case LanczosFilter:
		return resize.Lanczos2
	case Lanczos3Filter:
		return resize.Lanczos3
	default:
		return resize.Bilinear
	}
}
