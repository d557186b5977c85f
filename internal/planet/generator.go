package planet

import (
	"fmt"
	"math"

	"planetgen/internal/rng"
	"planetgen/internal/texture"
)

var surfaceColors = map[SurfaceType]RGB{
	SurfaceRocky: {R: 0xcc, G: 0x88, B: 0x55},
	SurfaceGas:   {R: 0xff, G: 0xcc, B: 0x66},
	SurfaceIcy:   {R: 0xaa, G: 0xdd, B: 0xff},
}

// Derive consumes exactly five draws, in this order: orbit radius, orbit
// speed, orbit tilt, size, surface type. Color is a lookup, not a draw.
func Derive(src rng.Float64er) OrbitalProfile {
	var p OrbitalProfile
	p.OrbitRadius = 4 + float64(src.Float64()*8)
	p.OrbitSpeed = 0.2 + float64(src.Float64()*0.5)
	p.OrbitTilt = float64(src.Float64() * 0.5)
	p.Size = 0.4 + float64(src.Float64()*1.2)

	idx := int(math.Floor(src.Float64() * float64(len(surfaceTypes))))
	idx = min(max(idx, 0), len(surfaceTypes)-1)
	p.SurfaceType = surfaceTypes[idx]
	p.Color = surfaceColors[p.SurfaceType]
	return p
}

// profileFor derives a profile from src and applies an optional surface
// override. The override replaces the derived type and its color only.
func profileFor(src rng.Float64er, surface SurfaceType) OrbitalProfile {
	p := Derive(src)
	if surface != "" {
		p.SurfaceType = surface
		p.Color = surfaceColors[surface]
	}
	return p
}

// Synthesize runs the texture algorithm for surface, continuing src.
func Synthesize(src rng.Float64er, surface SurfaceType, size int) (*texture.Buffer, error) {
	switch surface {
	case SurfaceRocky:
		return texture.Rocky(src, size)
	case SurfaceGas:
		return texture.Gas(src, size)
	case SurfaceIcy:
		return texture.Icy(src, size)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSurfaceType, surface)
	}
}

// Generate derives the profile and default-size texture for seed.
func Generate(seed int32) (*GeneratedPlanet, error) {
	return GenerateWith(seed, Options{})
}

// GenerateWith is Generate with an optional surface override and texture
// size. The five profile draws are always consumed first, so an override
// does not shift the texture's position in the draw sequence.
func GenerateWith(seed int32, opts Options) (*GeneratedPlanet, error) {
	size := opts.textureSize()
	if size <= 0 {
		return nil, fmt.Errorf("%w: texture size %d", texture.ErrInvalidDimension, size)
	}
	if opts.Surface != "" && !opts.Surface.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSurfaceType, opts.Surface)
	}

	src := rng.New(seed)
	profile := profileFor(src, opts.Surface)

	tex, err := Synthesize(src, profile.SurfaceType, size)
	if err != nil {
		return nil, err
	}

	return &GeneratedPlanet{
		Seed:    seed,
		Profile: profile,
		Texture: tex,
	}, nil
}
