package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ByLCY/quire/generate"
	"github.com/ByLCY/quire/layout"
	"github.com/ByLCY/quire/renderer"
)

// apiErrorResponse 是生成失败时返回给前端的兜底文本。
const apiErrorResponse = "API error. Check quota or model availability."

// Options configures a Server.
type Options struct {
	Backend   renderer.Backend
	Profile   layout.Profile
	Generator generate.Generator // nil disables /generate
	StaticDir string             // empty disables static files
	MaxBody   int64
	Logger    *log.Logger
}

// Server serves the export and generation endpoints.
type Server struct {
	opts Options
	log  *log.Logger
}

// New creates a Server. Backend is required.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{opts: opts, log: logger}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /exportPDF", s.handleExport)
	mux.HandleFunc("POST /generate", s.handleGenerate)
	if s.opts.StaticDir != "" {
		mux.Handle("GET /", staticHandler(s.opts.StaticDir))
	}
	return mux
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Printf("服务已启动: http://localhost%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// staticHandler 提供 dir 下的静态文件，路径中任一段以 "." 开头时返回 404。
func staticHandler(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, seg := range strings.Split(r.URL.Path, "/") {
			if strings.HasPrefix(seg, ".") {
				http.NotFound(w, r)
				return
			}
		}
		files.ServeHTTP(w, r)
	})
}

type exportRequest struct {
	Content string `json:"content"`
	Title   string `json:"title,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No content provided"})
		return
	}

	doc, out, err := renderer.Export(s.opts.Backend, s.opts.Profile, req.Content, req.Title, req.Data)
	if err != nil {
		s.log.Printf("导出失败: %v", err)
		status := http.StatusInternalServerError
		if errors.Is(err, layout.ErrInvalidLayoutConfig) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", s.opts.Backend.ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename=export"+s.opts.Backend.Extension())
	w.Header().Set("X-Page-Count", itoa(len(doc.Pages)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		s.log.Printf("写出响应失败: %v", err)
	}
}

type generateRequest struct {
	Prompt  string             `json:"prompt"`
	History []generate.Message `json:"history"`
}

type generateResponse struct {
	Response string `json:"response"`
	Model    string `json:"model,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Prompt == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Prompt missing"})
		return
	}
	gen := s.opts.Generator
	if gen == nil {
		writeJSON(w, http.StatusServiceUnavailable, generateResponse{
			Error:    "text generation is not configured",
			Response: apiErrorResponse,
		})
		return
	}

	text, err := gen.Generate(r.Context(), req.Prompt, req.History)
	switch {
	case errors.Is(err, generate.ErrEmptyResponse):
		text = "No response"
	case err != nil:
		s.log.Printf("生成失败: %v", err)
		writeJSON(w, http.StatusInternalServerError, generateResponse{
			Error:    err.Error(),
			Response: apiErrorResponse,
		})
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{Response: text, Model: gen.Model()})
}

// decode reads a JSON body limited to MaxBody; on failure it writes a 400 and returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if s.opts.MaxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBody)
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
			return false
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
