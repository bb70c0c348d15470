package httpapi

import (
	"encoding/json"
	"net/http"

	"golang.org/x/text/language"

	"subtrans/internal/config"
	"subtrans/internal/subtitle"
	"subtrans/internal/translator"
)

type translateRequest struct {
	Content        string `json:"content"`
	TargetLanguage string `json:"target_language,omitempty"`
	Bulk           bool   `json:"bulk,omitempty"`
}

type translateResponse struct {
	Content        string `json:"content"`
	TargetLanguage string `json:"target_language"`
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	opts := s.cfg.TranslatorOptions()
	opts.Bulk = req.Bulk
	if req.TargetLanguage != "" {
		tag, err := language.Parse(req.TargetLanguage)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid target language: "+err.Error())
			return
		}
		opts.TargetLanguage = config.LanguageName(tag)
	}

	pipeline, err := translator.NewPipeline(s.completer, opts, s.stats)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	translated, err := pipeline.TranslateText(r.Context(), req.Content)
	if err != nil {
		status := http.StatusInternalServerError
		if translator.IsStructural(err) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, translateResponse{
		Content:        translated,
		TargetLanguage: opts.TargetLanguage,
	})
}

type analyzeRequest struct {
	Content  string `json:"content"`
	Detailed bool   `json:"detailed,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	entries, err := subtitle.Parse(req.Content)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse subtitles: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, subtitle.Analyze(entries, req.Detailed))
}

type previewRequest struct {
	Content string `json:"content"`
	Count   int    `json:"count,omitempty"`
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	entries, err := subtitle.Parse(req.Content)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse subtitles: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, subtitle.NewPreview(entries, req.Count))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	status := s.probe.Ping(r.Context())
	code := http.StatusOK
	if !status.Reachable {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

type infoResponse struct {
	Model          string              `json:"model"`
	TargetLanguage string              `json:"target_language"`
	ChunkSize      int                 `json:"chunk_size"`
	ContextWindow  int                 `json:"context_window"`
	MaxConcurrent  int                 `json:"max_concurrent"`
	Stats          translator.Snapshot `json:"stats"`
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, infoResponse{
		Model:          s.probe.Model(),
		TargetLanguage: config.LanguageName(s.cfg.Translate.TargetLanguage),
		ChunkSize:      s.cfg.Translate.ChunkSize,
		ContextWindow:  s.cfg.Translate.ContextWindow,
		MaxConcurrent:  s.cfg.Translate.MaxConcurrent,
		Stats:          s.stats.Snapshot(),
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": msg,
	})
}
