package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"planetgen/internal/planet"
	"planetgen/internal/shared/errors"
	"planetgen/internal/shared/response"
	"planetgen/internal/texture"
)

const maxBodyBytes = 1 << 20

type PlanetHandler struct {
	service *planet.Service
}

func NewPlanetHandler(service *planet.Service) *PlanetHandler {
	return &PlanetHandler{service: service}
}

func seedFromPath(r *http.Request) (int32, error) {
	seed, err := planet.ParseSeed(r.PathValue("seed"))
	if err != nil {
		return 0, errors.InvalidParam("seed", err)
	}
	return seed, nil
}

func surfaceFromQuery(r *http.Request) (planet.SurfaceType, error) {
	s := r.URL.Query().Get("surface")
	if s == "" {
		return "", nil
	}
	st, err := planet.ParseSurfaceType(s)
	if err != nil {
		return "", errors.InvalidParam("surface", err)
	}
	return st, nil
}

func optionsFromQuery(r *http.Request) (planet.Options, error) {
	surface, err := surfaceFromQuery(r)
	if err != nil {
		return planet.Options{}, err
	}
	opts := planet.Options{Surface: surface}

	q := r.URL.Query()
	if s := q.Get("size"); s != "" {
		if opts.Size, err = strconv.Atoi(s); err != nil {
			return planet.Options{}, errors.InvalidParam("size", err)
		}
		if opts.Size <= 0 {
			return planet.Options{}, errors.InvalidParam("size", fmt.Errorf("%w: %d", texture.ErrInvalidDimension, opts.Size))
		}
	}
	if s := q.Get("lite"); s != "" {
		if opts.Lite, err = strconv.ParseBool(s); err != nil {
			return planet.Options{}, errors.InvalidParam("lite", err)
		}
	}
	return opts, nil
}

// GetProfile serves the orbital profile for a seed without synthesizing a
// texture.
func (h *PlanetHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_planet_profile")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	seed, err := seedFromPath(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	surface, err := surfaceFromQuery(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	p, err := h.service.Profile(seed, surface)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, p)
}

// textureFor resolves the request to a generated texture and its strong
// validator. Textures are pure functions of the key, so the key doubles as
// the ETag.
func (h *PlanetHandler) textureFor(r *http.Request) (*planet.GeneratedPlanet, *texture.Buffer, string, error) {
	seed, err := seedFromPath(r)
	if err != nil {
		return nil, nil, "", err
	}
	opts, err := optionsFromQuery(r)
	if err != nil {
		return nil, nil, "", err
	}

	p, key, err := h.service.Texture(r.Context(), seed, opts)
	if err != nil {
		return nil, nil, "", err
	}

	buf := p.Texture
	if s := r.URL.Query().Get("preview"); s != "" {
		size, err := strconv.Atoi(s)
		if err != nil || size <= 0 || size > buf.Width {
			return nil, nil, "", errors.Validationf("preview must be between 1 and %d", buf.Width)
		}
		if buf, err = texture.Preview(buf, size); err != nil {
			return nil, nil, "", errors.WrapInternal("failed to scale texture", err)
		}
		key = fmt.Sprintf("%s:preview:%d", key, size)
	}

	return p, buf, `"` + key + `"`, nil
}

func writeTextureHeaders(w http.ResponseWriter, p *planet.GeneratedPlanet, buf *texture.Buffer, etag string) {
	h := w.Header()
	h.Set("ETag", etag)
	h.Set("Cache-Control", "public, max-age=31536000, immutable")
	h.Set("X-Texture-Width", strconv.Itoa(buf.Width))
	h.Set("X-Texture-Height", strconv.Itoa(buf.Height))
	h.Set("X-Surface-Type", string(p.Profile.SurfaceType))
}

func notModified(r *http.Request, etag string) bool {
	return r.Header.Get("If-None-Match") == etag
}

// GetTexture serves the synthesized texture as PNG.
func (h *PlanetHandler) GetTexture(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_planet_texture")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	p, buf, etag, err := h.textureFor(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	writeTextureHeaders(w, p, buf, etag)
	if notModified(r, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if err := texture.EncodePNG(w, buf); err != nil {
		logger.Warn("Failed to stream texture", "seed", p.Seed, "error", err)
	}
}

// GetRawTexture serves the RGBA8 bytes in row-major order with dimensions in
// headers, for clients that upload straight to a GPU texture.
func (h *PlanetHandler) GetRawTexture(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_planet_texture_raw")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	p, buf, etag, err := h.textureFor(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	writeTextureHeaders(w, p, buf, etag)
	if notModified(r, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(buf.Pix)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Pix); err != nil {
		logger.Warn("Failed to stream raw texture", "seed", p.Seed, "error", err)
	}
}

type BatchRequest struct {
	Seeds   []int32 `json:"seeds"`
	Surface string  `json:"surface,omitempty"`
	Size    int     `json:"size,omitempty"`
	Lite    bool    `json:"lite,omitempty"`
}

// GenerateBatch generates many seeds concurrently. Pixels are not inlined;
// clients fetch them from the texture endpoints, which the batch has warmed.
func (h *PlanetHandler) GenerateBatch(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "generate_planet_batch")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	var req BatchRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}

	opts := planet.Options{Size: req.Size, Lite: req.Lite}
	if req.Surface != "" {
		st, err := planet.ParseSurfaceType(req.Surface)
		if err != nil {
			response.Error(w, r, logger, errors.InvalidParam("surface", err))
			return
		}
		opts.Surface = st
	}

	items, err := h.service.WarmBatch(r.Context(), req.Seeds, opts)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, items)
}
