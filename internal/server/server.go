// Package server exposes the cipher demo over HTTP: an upload endpoint that
// encrypts, decrypts and scores an image, a chart endpoint, and optional
// static files for the browser front end.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/andresmejia3/endcrypt/pkg/endcrypt"
	"github.com/andresmejia3/endcrypt/pkg/pixel"
	"github.com/andresmejia3/endcrypt/pkg/report"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Config holds the request defaults and listener settings.
type Config struct {
	Addr           string
	StaticDir      string
	DefaultLevel   int
	DefaultKey     float64
	CanvasSize     int
	Workers        int
	MaxLevel       int
	MaxUploadBytes int64
}

// DefaultConfig returns the settings used by `endcrypt serve` without flags.
func DefaultConfig() Config {
	return Config{
		Addr:           ":5000",
		DefaultLevel:   endcrypt.DefaultLevel,
		DefaultKey:     endcrypt.DefaultKey,
		CanvasSize:     pixel.CanvasSize,
		MaxLevel:       64,
		MaxUploadBytes: 32 << 20,
	}
}

// Server routes HTTP requests to the cipher pipeline.
type Server struct {
	cfg Config
	mux *http.ServeMux
}

// New builds a Server and registers its routes.
func New(cfg Config) *Server {
	s := &Server{cfg: cfg, mux: http.NewServeMux()}
	s.mux.HandleFunc("POST /api/process-image", s.handleProcessImage)
	s.mux.HandleFunc("POST /api/report", s.handleReport)
	if cfg.StaticDir != "" {
		s.mux.Handle("GET /", http.FileServer(http.Dir(cfg.StaticDir)))
	}
	return s
}

// Handler returns the routed handler wrapped with request logging.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		start := time.Now()
		w.Header().Set("X-Request-ID", id)
		s.mux.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
		log.Info().
			Str("request_id", id).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("Handled request")
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.Addr).Msg("Listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleProcessImage(w http.ResponseWriter, r *http.Request) {
	res, msg := s.process(w, r)
	if res == nil {
		writeFailure(w, msg)
		return
	}

	resp := processResponse{Success: true, Metrics: res.Metrics}
	for _, img := range []struct {
		dst *string
		src *pixel.Array
	}{
		{&resp.OriginalImage, res.Original},
		{&resp.EncryptedImage, res.Encrypted},
		{&resp.DecryptedImage, res.Decrypted},
	} {
		url, err := pixel.DataURL(img.src)
		if err != nil {
			logFailure(r, err, "Failed to encode image")
			writeFailure(w, err.Error())
			return
		}
		*img.dst = url
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	res, msg := s.process(w, r)
	if res == nil {
		writeJSON(w, http.StatusBadRequest, processResponse{Success: false, Message: msg})
		return
	}

	var buf bytes.Buffer
	subtitle := fmt.Sprintf("level %d, key %g", res.Level, res.Key)
	if err := report.WriteDashboard(&buf, res.Metrics, subtitle); err != nil {
		logFailure(r, err, "Failed to render report")
		writeJSON(w, http.StatusInternalServerError, processResponse{Success: false, Message: err.Error()})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// process parses the upload and runs the pipeline. On failure it returns a
// nil result and the message to show the client.
func (s *Server) process(w http.ResponseWriter, r *http.Request) (*endcrypt.Result, string) {
	level, key, err := s.params(w, r)
	if err != nil {
		logFailure(r, err, "Invalid parameters")
		return nil, err.Error()
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			logFailure(r, err, "Failed to read upload")
		}
		return nil, "No image file provided"
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logFailure(r, err, "Failed to read upload")
		return nil, err.Error()
	}
	img, err := pixel.DecodeBytes(data, s.cfg.CanvasSize)
	if err != nil {
		logFailure(r, err, "Failed to decode upload")
		return nil, "Invalid image file"
	}

	res, err := endcrypt.Process(img, key, level, endcrypt.Options{Workers: s.cfg.Workers})
	if err != nil {
		logFailure(r, err, "Failed to process image")
		return nil, err.Error()
	}

	log.Debug().
		Str("request_id", requestID(r.Context())).
		Int("level", level).
		Float64("key", key).
		Float64("encrypted_entropy", res.Metrics.EncryptedEntropy).
		Msg("Processed image")
	return res, ""
}

func (s *Server) params(w http.ResponseWriter, r *http.Request) (int, float64, error) {
	maxBytes := s.cfg.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = DefaultConfig().MaxUploadBytes
	}
	if r.ContentLength > maxBytes {
		return 0, 0, fmt.Errorf("upload exceeds %d bytes", maxBytes)
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return 0, 0, fmt.Errorf("upload exceeds %d bytes", maxBytes)
		}
		return 0, 0, fmt.Errorf("invalid form: %w", err)
	}

	level := s.cfg.DefaultLevel
	if v := r.FormValue("level"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid level %q: must be an integer", v)
		}
		level = n
	}
	maxLevel := s.cfg.MaxLevel
	if maxLevel <= 0 {
		maxLevel = DefaultConfig().MaxLevel
	}
	if level < 0 || level > maxLevel {
		return 0, 0, fmt.Errorf("invalid level %d: must be between 0 and %d", level, maxLevel)
	}

	key := s.cfg.DefaultKey
	if v := r.FormValue("key"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid key %q: must be a number", v)
		}
		key = f
	}
	return level, key, nil
}

type requestIDKey struct{}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func logFailure(r *http.Request, err error, msg string) {
	log.Error().Err(err).Str("request_id", requestID(r.Context())).Msg(msg)
}
