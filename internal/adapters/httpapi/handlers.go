package httpapi

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/kamal-hamza/brandkit/internal/core/domain"
	"github.com/kamal-hamza/brandkit/internal/core/ports"
)

// ResolveResponse is the body of the resolve endpoints
type ResolveResponse struct {
	Input      string      `json:"input"`
	Kind       domain.Kind `json:"kind"`
	Asset      string      `json:"asset"`
	Tier       domain.Tier `json:"tier"`
	MatchedKey string      `json:"matched_key,omitempty"`
}

// HasResponse is the body of the has endpoints
type HasResponse struct {
	Input    string `json:"input"`
	HasAsset bool   `json:"has_asset"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleResolve never fails: a missing or empty name resolves to the default asset
func (s *Server) handleResolve(resolver ports.NameResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := resolver.Resolve(r.URL.Query().Get("name"))
		s.metrics.RecordResolution(res)

		writeJSON(w, http.StatusOK, ResolveResponse{
			Input:      res.Input,
			Kind:       res.Kind,
			Asset:      res.Asset.Path(),
			Tier:       res.Tier,
			MatchedKey: string(res.MatchedKey),
		})
	}
}

func (s *Server) handleHas(resolver ports.NameResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		writeJSON(w, http.StatusOK, HasResponse{
			Input:    name,
			HasAsset: resolver.HasAsset(name),
		})
	}
}

func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	if s.assets == nil {
		writeError(w, http.StatusNotFound, "no asset directory configured")
		return
	}

	path, err := s.assets.Open(r.Context(), mux.Vars(r)["path"])
	if err != nil {
		if os.IsNotExist(err) {
			writeError(w, http.StatusNotFound, "asset not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		writeError(w, http.StatusNotFound, "asset not found")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, path)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
