package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"planetgen/internal/planet"
	"planetgen/internal/shared/errors"
	"planetgen/internal/shared/response"
)

type CatalogHandler struct {
	service *planet.Service
}

func NewCatalogHandler(service *planet.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func queryInt(r *http.Request, name string) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.Validationf("%s must be a non-negative integer", name)
	}
	return n, nil
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "list_catalog")

	limit, err := queryInt(r, "limit")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	entries, err := h.service.Catalog(r.Context(), limit, offset)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, entries)
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_catalog_entry")

	seed, err := seedFromPath(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	entry, err := h.service.Lookup(r.Context(), seed)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, entry)
}

type RegisterRequest struct {
	Seed *int32 `json:"seed"`
	Name string `json:"name"`
}

func (h *CatalogHandler) Register(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "register_catalog_entry")

	var req RegisterRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}
	if req.Seed == nil {
		response.Error(w, r, logger, errors.Validation("seed is required"))
		return
	}

	entry, err := h.service.Register(r.Context(), *req.Seed, req.Name)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, entry)
}

func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "delete_catalog_entry")

	seed, err := seedFromPath(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if err := h.service.Unregister(r.Context(), seed); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
