package planet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"planetgen/internal/rng"
	apperrors "planetgen/internal/shared/errors"
	"planetgen/internal/texture"
)

const (
	defaultCatalogLimit = 50
	maxCatalogLimit     = 200
	maxNameLength       = 100
)

// Store is the catalog persistence used by Service.
type Store interface {
	SavePlanet(ctx context.Context, entry *CatalogEntry) (*CatalogEntry, error)
	GetBySeed(ctx context.Context, seed int32) (*CatalogEntry, error)
	ListPlanets(ctx context.Context, limit, offset int) ([]CatalogEntry, error)
	DeletePlanet(ctx context.Context, seed int32) error
}

type ServiceConfig struct {
	// DefaultSize replaces texture.DefaultSize for requests that name
	// neither a size nor lite mode.
	DefaultSize int
	Workers     int
	MaxBatch    int
	MaxSize     int
}

type Service struct {
	store  Store
	cache  TextureCache
	config ServiceConfig
	logger *slog.Logger
}

func NewService(store Store, cache TextureCache, config ServiceConfig, logger *slog.Logger) *Service {
	logger.Debug("Initializing planet service",
		"workers", config.Workers,
		"max_batch", config.MaxBatch,
		"max_size", config.MaxSize,
		"catalog", store != nil,
		"cache", cache != nil,
	)

	return &Service{
		store:  store,
		cache:  cache,
		config: config,
		logger: logger,
	}
}

func (s *Service) resolve(opts Options) Options {
	if opts.Size == 0 && !opts.Lite && s.config.DefaultSize > 0 {
		opts.Size = s.config.DefaultSize
	}
	return opts
}

func (s *Service) validateOptions(opts Options) error {
	size := opts.textureSize()
	if size <= 0 {
		return apperrors.InvalidParam("size", fmt.Errorf("%w: %d", texture.ErrInvalidDimension, size))
	}
	if s.config.MaxSize > 0 && size > s.config.MaxSize {
		return apperrors.OverLimit("size", size, s.config.MaxSize)
	}
	if opts.Surface != "" && !opts.Surface.Valid() {
		return apperrors.InvalidParam("surface", fmt.Errorf("%w: %q", ErrUnknownSurfaceType, opts.Surface))
	}
	return nil
}

// Profile derives the orbital profile for seed, applying an optional
// surface override.
func (s *Service) Profile(seed int32, surface SurfaceType) (*GeneratedPlanet, error) {
	if surface != "" && !surface.Valid() {
		return nil, apperrors.InvalidParam("surface", fmt.Errorf("%w: %q", ErrUnknownSurfaceType, surface))
	}

	return &GeneratedPlanet{Seed: seed, Profile: profileFor(rng.New(seed), surface)}, nil
}

// Texture returns the generated planet for seed, serving the texture from
// the cache when possible. The returned key identifies the exact variant.
func (s *Service) Texture(ctx context.Context, seed int32, opts Options) (*GeneratedPlanet, string, error) {
	opts = s.resolve(opts)
	if err := s.validateOptions(opts); err != nil {
		return nil, "", err
	}

	logger := s.logger.With("component", "planet_service", "operation", "texture", "seed", seed)

	profile := profileFor(rng.New(seed), opts.Surface)
	size := opts.textureSize()
	key := CacheKey(seed, profile.SurfaceType, size)

	if s.cache != nil {
		buf, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			logger.Warn("Texture cache read failed, generating", "key", key, "error", err)
		} else if ok {
			logger.Debug("Texture cache hit", "key", key)
			return &GeneratedPlanet{Seed: seed, Profile: profile, Texture: buf}, key, nil
		}
	}

	generated, err := GenerateWith(seed, Options{Surface: profile.SurfaceType, Size: size})
	if err != nil {
		return nil, "", apperrors.WrapInternal("failed to generate planet", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, generated.Texture); err != nil {
			logger.Warn("Texture cache write failed", "key", key, "error", err)
		}
	}

	logger.Debug("Texture generated", "key", key, "surface_type", profile.SurfaceType, "size", size)
	return generated, key, nil
}

// GenerateBatch generates every seed on a bounded worker pool and warms the
// texture cache with the results. Each job owns its generator and buffer,
// and results keep the order of seeds. Every texture stays referenced until
// the call returns; use WarmBatch when only summaries are needed.
func (s *Service) GenerateBatch(ctx context.Context, seeds []int32, opts Options) ([]*GeneratedPlanet, error) {
	results := make([]*GeneratedPlanet, len(seeds))
	err := s.runBatch(ctx, "generate_batch", seeds, opts, func(i int, p *GeneratedPlanet) {
		results[i] = p
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// WarmBatch is GenerateBatch for callers that only need profiles and
// dimensions. Each texture is released once it has been cached, so at most
// one buffer per worker is resident.
func (s *Service) WarmBatch(ctx context.Context, seeds []int32, opts Options) ([]BatchResult, error) {
	results := make([]BatchResult, len(seeds))
	err := s.runBatch(ctx, "warm_batch", seeds, opts, func(i int, p *GeneratedPlanet) {
		results[i] = BatchResult{
			Seed:    p.Seed,
			Profile: p.Profile,
			Width:   p.Texture.Width,
			Height:  p.Texture.Height,
		}
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// runBatch hands each generated and cached planet to collect, which runs on
// a worker goroutine and must only write to slot i.
func (s *Service) runBatch(ctx context.Context, operation string, seeds []int32, opts Options, collect func(i int, p *GeneratedPlanet)) error {
	if len(seeds) == 0 {
		return nil
	}
	if s.config.MaxBatch > 0 && len(seeds) > s.config.MaxBatch {
		return apperrors.OverLimit("seeds", len(seeds), s.config.MaxBatch)
	}
	opts = s.resolve(opts)
	if err := s.validateOptions(opts); err != nil {
		return err
	}

	logger := s.logger.With("component", "planet_service", "operation", operation, "count", len(seeds))
	logger.Debug("Generating batch")

	workers := min(max(s.config.Workers, 1), len(seeds))
	errs := make([]error, len(seeds))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				p, err := GenerateWith(seeds[i], opts)
				if err != nil {
					errs[i] = err
					continue
				}
				s.warm(ctx, logger, p, opts)
				collect(i, p)
			}
		}()
	}

dispatch:
	for i := range seeds {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		logger.Debug("Batch cancelled", "error", err)
		return err
	}
	for i, err := range errs {
		if err != nil {
			return apperrors.WrapInternal(fmt.Sprintf("failed to generate seed %d", seeds[i]), err)
		}
	}

	logger.Info("Batch generated", "workers", workers)
	return nil
}

// warm stores a batch result so later texture requests are cache hits.
func (s *Service) warm(ctx context.Context, logger *slog.Logger, p *GeneratedPlanet, opts Options) {
	if s.cache == nil {
		return
	}
	key := CacheKey(p.Seed, p.Profile.SurfaceType, opts.textureSize())
	if err := s.cache.Set(ctx, key, p.Texture); err != nil {
		logger.Warn("Texture cache write failed", "key", key, "error", err)
	}
}

func (s *Service) requireStore() error {
	if s.store == nil {
		return apperrors.Unavailable("planet catalog")
	}
	return nil
}

// Register derives the profile for seed and stores it under name, or under
// DefaultName(seed) when name is blank.
func (s *Service) Register(ctx context.Context, seed int32, name string) (*CatalogEntry, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName(seed)
	}
	if len(name) > maxNameLength {
		return nil, apperrors.Validationf("name must be at most %d characters", maxNameLength)
	}

	entry, err := s.store.SavePlanet(ctx, &CatalogEntry{
		Seed:    seed,
		Name:    name,
		Profile: profileFor(rng.New(seed), ""),
	})
	if err != nil {
		return nil, apperrors.WrapExternal("failed to save planet", err)
	}

	s.logger.Info("Planet registered", "component", "planet_service", "seed", seed, "name", name)
	return entry, nil
}

func (s *Service) Lookup(ctx context.Context, seed int32) (*CatalogEntry, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}

	entry, err := s.store.GetBySeed(ctx, seed)
	if errors.Is(err, ErrNotFound) {
		return nil, apperrors.NotFoundf("planet with seed %d not found", seed)
	}
	if err != nil {
		return nil, apperrors.WrapExternal("failed to get planet", err)
	}
	return entry, nil
}

func (s *Service) Catalog(ctx context.Context, limit, offset int) ([]CatalogEntry, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultCatalogLimit
	}
	limit = min(limit, maxCatalogLimit)
	offset = max(offset, 0)

	entries, err := s.store.ListPlanets(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.WrapExternal("failed to list planets", err)
	}
	if entries == nil {
		entries = []CatalogEntry{}
	}
	return entries, nil
}

func (s *Service) Unregister(ctx context.Context, seed int32) error {
	if err := s.requireStore(); err != nil {
		return err
	}

	err := s.store.DeletePlanet(ctx, seed)
	if errors.Is(err, ErrNotFound) {
		return apperrors.NotFoundf("planet with seed %d not found", seed)
	}
	if err != nil {
		return apperrors.WrapExternal("failed to delete planet", err)
	}

	s.logger.Info("Planet unregistered", "component", "planet_service", "seed", seed)
	return nil
}
