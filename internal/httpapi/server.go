package httpapi

import (
	"context"
	"net/http"
	"time"

	"subtrans/internal/config"
	"subtrans/internal/llm"
	"subtrans/internal/translator"
)

// pinger is the endpoint health probe surface of the LLM client.
type pinger interface {
	Ping(ctx context.Context) llm.Status
	Model() string
}

// Server exposes the translation pipeline over HTTP. All pipelines
// built for incoming requests share one completer and one stats
// accumulator, so /api/info reports across requests.
type Server struct {
	cfg       config.Config
	completer translator.Completer
	probe     pinger
	stats     *translator.Stats

	mux    *http.ServeMux
	server *http.Server
}

func NewServer(cfg config.Config, completer translator.Completer, probe pinger) *Server {
	s := &Server{
		cfg:       cfg,
		completer: completer,
		probe:     probe,
		stats:     translator.NewStats(),
		mux:       http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/translate", s.handleTranslate)
	s.mux.HandleFunc("/api/analyze", s.handleAnalyze)
	s.mux.HandleFunc("/api/preview", s.handlePreview)
	s.mux.HandleFunc("/api/status", s.handleStatus)
	s.mux.HandleFunc("/api/info", s.handleInfo)
}
