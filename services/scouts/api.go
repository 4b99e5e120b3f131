package scouts

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

// RegisterHandlers mounts the JSON trigger surface. Authorization is
// the caller's concern, see serviceutil.VerifyAccessToken.
func (s Service) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/api/scouts/verify", s.handleVerify)
	mux.HandleFunc("/api/scouts/status", s.handleStatus)
	mux.HandleFunc("/api/scouts/validate-url", s.handleValidateUrl)
	mux.HandleFunc("/api/scouts/resolve-urls", s.handleResolveUrls)
	mux.HandleFunc("/api/scouts/refresh-seasons", s.handleRefreshSeasons)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("encode response", "err", err)
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type verifyRequest struct {
	Tier      int64 `json:"tier"`
	Limit     int64 `json:"limit"`
	ProgramID int64 `json:"program_id"`
}

func (s Service) handleVerify(w http.ResponseWriter, r *http.Request) {
	req := verifyRequest{Tier: 1, Limit: 10}

	switch r.Method {
	case http.MethodGet:
		// unparsable values keep the defaults
		if v, err := strconv.ParseInt(r.URL.Query().Get("tier"), 10, 64); err == nil {
			req.Tier = v
		}
		if v, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64); err == nil {
			req.Limit = v
		}
	case http.MethodPost:
		// an empty or malformed body falls back to defaults
		var body verifyRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			if body.Tier != 0 {
				req.Tier = body.Tier
			}
			if body.Limit != 0 {
				req.Limit = body.Limit
			}
			req.ProgramID = body.ProgramID
		}
	default:
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
		return
	}

	if req.ProgramID != 0 {
		result, err := s.VerifySingleProgram(r.Context(), req.ProgramID)
		if err != nil {
			slog.ErrorContext(r.Context(), "single program verification failed", "err", err)
			writeJSON(w, http.StatusInternalServerError, errorBody{
				Error:   "Verification failed",
				Details: err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}

	result, err := s.VerifyPrograms(r.Context(), req.Tier, req.Limit)
	if err != nil {
		slog.ErrorContext(r.Context(), "verification failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error:   "Verification failed",
			Details: err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s Service) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
		return
	}

	report, err := s.Status(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "status failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error:   "Status failed",
			Details: err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s Service) handleValidateUrl(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
		return
	}

	var body struct {
		Url string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Url == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "URL required"})
		return
	}

	writeJSON(w, http.StatusOK, s.validator.Validate(r.Context(), body.Url))
}

func (s Service) handleResolveUrls(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var body struct {
			ProgramID int64 `json:"program_id"`
			Limit     int64 `json:"limit"`
		}
		// an empty body means "resolve a batch with defaults"
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Limit == 0 {
			body.Limit = 10
		}

		if body.ProgramID != 0 {
			result, err := s.ResolveProgramUrl(r.Context(), body.ProgramID)
			if err != nil {
				writeJSON(w, http.StatusInternalServerError, errorBody{
					Error:   "Resolution failed",
					Details: err.Error(),
				})
				return
			}
			writeJSON(w, http.StatusOK, result)
			return
		}

		results, err := s.ResolveMissingUrls(r.Context(), body.Limit)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorBody{
				Error:   "Resolution failed",
				Details: err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": results})

	case http.MethodGet:
		// kept for callers that land here instead of refresh-seasons
		s.handleRefreshSeasons(w, r)

	default:
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
	}
}

// handleRefreshSeasons runs a season refresh pass over every stored
// staff url.
func (s Service) handleRefreshSeasons(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
		return
	}

	updates, err := s.RefreshSeasonalUrls(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error:   "Update failed",
			Details: err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Updated %d seasonal URLs", len(updates)),
		"updates": updates,
	})
}
