package planet

import (
	"fmt"
	"math"
	"time"

	"planetgen/internal/texture"
)

type SurfaceType string

const (
	SurfaceRocky SurfaceType = "rocky"
	SurfaceGas   SurfaceType = "gas"
	SurfaceIcy   SurfaceType = "icy"
)

// surfaceTypes is indexed by the deriver's uniform draw; order is part of
// the output contract.
var surfaceTypes = [...]SurfaceType{SurfaceRocky, SurfaceGas, SurfaceIcy}

func (s SurfaceType) Valid() bool {
	switch s {
	case SurfaceRocky, SurfaceGas, SurfaceIcy:
		return true
	}
	return false
}

// ParseSurfaceType accepts the canonical names. An empty string is not a
// surface type; callers treat it as "derive from the seed".
func ParseSurfaceType(s string) (SurfaceType, error) {
	st := SurfaceType(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSurfaceType, s)
	}
	return st, nil
}

// RGB is a display color, serialized as #rrggbb.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *RGB) UnmarshalText(text []byte) error {
	var r, g, b uint8
	if _, err := fmt.Sscanf(string(text), "#%02x%02x%02x", &r, &g, &b); err != nil {
		return fmt.Errorf("invalid color %q: %w", text, err)
	}
	*c = RGB{R: r, G: g, B: b}
	return nil
}

// OrbitalProfile holds the static per-body parameters a renderer animates.
type OrbitalProfile struct {
	OrbitRadius float64     `json:"orbit_radius"`
	OrbitSpeed  float64     `json:"orbit_speed"`
	OrbitTilt   float64     `json:"orbit_tilt"`
	Size        float64     `json:"size"`
	SurfaceType SurfaceType `json:"surface_type"`
	Color       RGB         `json:"color"`
}

const (
	minDisplayRadius = 0.2
	maxDisplayRadius = 0.6
)

// DisplayRadius clamps Size so bodies stay visually smaller than their star.
func (p OrbitalProfile) DisplayRadius() float64 {
	return math.Max(minDisplayRadius, math.Min(p.Size, maxDisplayRadius))
}

type GeneratedPlanet struct {
	Seed    int32           `json:"seed"`
	Profile OrbitalProfile  `json:"profile"`
	Texture *texture.Buffer `json:"texture,omitempty"`
}

// BatchResult summarizes one planet of a warmed batch. Pixels stay in the
// texture cache.
type BatchResult struct {
	Seed    int32          `json:"seed"`
	Profile OrbitalProfile `json:"profile"`
	Width   int            `json:"width"`
	Height  int            `json:"height"`
}

// Options override automatic derivation. Zero values mean "derive" for
// Surface and "default size" for Size.
type Options struct {
	Surface SurfaceType
	Size    int
	Lite    bool
}

func (o Options) textureSize() int {
	switch {
	case o.Size != 0:
		return o.Size
	case o.Lite:
		return texture.LiteSize
	default:
		return texture.DefaultSize
	}
}

// CatalogEntry is a named planet persisted in the catalog. Only the seed
// is authoritative; the profile columns are stored for querying.
type CatalogEntry struct {
	Seed      int32          `json:"seed"`
	Name      string         `json:"name"`
	Profile   OrbitalProfile `json:"profile"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
