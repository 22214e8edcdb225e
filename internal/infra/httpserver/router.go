package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appjobs "github.com/nattycheck/api/internal/application/jobs"
	"github.com/nattycheck/api/internal/domain/analysis"
	domain "github.com/nattycheck/api/internal/domain/jobs"
	"github.com/nattycheck/api/internal/middleware"
)

// in-memory buffer before multipart parts spill to disk
const maxMultipartMemory = 32 << 20

// PhotoStore is what the upload endpoint needs from storage.
type PhotoStore interface {
	Put(ctx context.Context, r io.Reader, size int64, contentType string) (string, error)
}

// Options select the deployment mode and transport policy.
type Options struct {
	// Mode is "polling" (async jobs, the default) or "sync" (analyze blocks).
	Mode              string
	AllowedOrigins    []string
	RateLimitCapacity int
	RateLimitRefill   int
}

type Router struct {
	jobs     *appjobs.Service
	analyzer analysis.Analyzer
	photos   PhotoStore
}

func NewRouter(jobsSvc *appjobs.Service, analyzer analysis.Analyzer, photos PhotoStore, opts Options) http.Handler {
	r := &Router{jobs: jobsSvc, analyzer: analyzer, photos: photos}
	mux := chi.NewRouter()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"} // dev only; lock down later
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	if opts.RateLimitCapacity > 0 {
		mux.Use(middleware.RateLimitMiddleware(opts.RateLimitCapacity, opts.RateLimitRefill))
	}

	mux.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	mux.Get("/metrics", middleware.MetricsHandler)

	if opts.Mode == "sync" {
		mux.Post("/analyze", r.wrap(r.handleAnalyzeSync))
	} else {
		mux.Post("/analyze", r.wrap(r.handleAnalyze))
		mux.Get("/jobs/{jobID}", r.wrap(r.handleGetJob))
		if photos != nil {
			mux.Post("/uploads", r.wrap(r.handleUpload))
		}
	}

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// errBadRequest marks client-input failures; wrap maps it to 400.
var errBadRequest = errors.New("bad request")

func (rt *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		var schemaErr *analysis.SchemaError
		switch {
		case errors.As(err, &schemaErr):
			writeJSON(w, http.StatusBadGateway, map[string]any{
				"error":  "SchemaMismatch",
				"raw":    schemaErr.Raw,
				"detail": schemaErr.Detail,
			})
		case errors.Is(err, analysis.ErrNotConfigured):
			writeErr(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, analysis.ErrProvider):
			writeJSON(w, http.StatusBadGateway, map[string]any{
				"error":  "UpstreamError",
				"detail": err.Error(),
			})
		case errors.Is(err, errBadRequest):
			writeErr(w, http.StatusBadRequest, err.Error())
		default:
			writeErr(w, http.StatusInternalServerError, err.Error())
		}
	}
}

// POST /analyze (polling mode)
// Body: {"frontUrl": ..., "sideUrl": ..., "backUrl": ..., "userId": ...}
// All fields optional; URLs reference already-uploaded images. Returns the
// job id immediately, analysis runs in the background.
func (rt *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		FrontURL string `json:"frontUrl"`
		SideURL  string `json:"sideUrl"`
		BackURL  string `json:"backUrl"`
		UserID   string `json:"userId"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid json body", errBadRequest)
	}

	var photos analysis.PhotoSet
	for _, ref := range []struct {
		field string
		url   string
		dst   *analysis.Photo
	}{
		{"frontUrl", body.FrontURL, &photos.Front},
		{"sideUrl", body.SideURL, &photos.Side},
		{"backUrl", body.BackURL, &photos.Back},
	} {
		if ref.url == "" {
			continue
		}
		if err := middleware.ValidatePhotoURL(ref.url); err != nil {
			return fmt.Errorf("%w: %s: %v", errBadRequest, ref.field, err)
		}
		ref.dst.URL = ref.url
	}

	id, err := rt.jobs.Submit(req.Context(), photos)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"jobId":  id,
		"status": domain.StatusQueued,
	})
	return nil
}

// GET /jobs/{jobID} (polling mode)
// Unknown ids answer 200 with an error body, not 404 — the deployed mobile
// client depends on it.
func (rt *Router) handleGetJob(w http.ResponseWriter, req *http.Request) error {
	id := domain.JobID(chi.URLParam(req, "jobID"))

	job, err := rt.jobs.Poll(req.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeJSON(w, http.StatusOK, map[string]string{"error": "not_found"})
		return nil
	}
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, job)
	return nil
}

// POST /analyze (sync mode)
// multipart/form-data with parts front, side, back. Blocks until the backend
// responds and returns the full report.
func (rt *Router) handleAnalyzeSync(w http.ResponseWriter, req *http.Request) error {
	if err := req.ParseMultipartForm(maxMultipartMemory); err != nil {
		return fmt.Errorf("%w: invalid multipart form: %v", errBadRequest, err)
	}

	var photos analysis.PhotoSet
	for _, part := range []struct {
		name string
		dst  *analysis.Photo
	}{
		{"front", &photos.Front},
		{"side", &photos.Side},
		{"back", &photos.Back},
	} {
		photo, err := readPhotoPart(req, part.name)
		if err != nil {
			return err
		}
		*part.dst = photo
	}

	report, err := rt.analyzer.Analyze(req.Context(), photos)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, report)
	return nil
}

// POST /uploads (polling mode)
// multipart part "photo"; stores the image and returns the URL to pass to
// /analyze.
func (rt *Router) handleUpload(w http.ResponseWriter, req *http.Request) error {
	if err := req.ParseMultipartForm(maxMultipartMemory); err != nil {
		return fmt.Errorf("%w: invalid multipart form: %v", errBadRequest, err)
	}

	photo, err := readPhotoPart(req, "photo")
	if err != nil {
		return err
	}

	url, err := rt.photos.Put(req.Context(), bytes.NewReader(photo.Data), int64(len(photo.Data)), photo.ContentType)
	if err != nil {
		return fmt.Errorf("store photo: %w", err)
	}

	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
	return nil
}

// readPhotoPart pulls one image part out of a parsed multipart form and
// enforces the content-type and size policy.
func readPhotoPart(req *http.Request, name string) (analysis.Photo, error) {
	file, hdr, err := req.FormFile(name)
	if err != nil {
		return analysis.Photo{}, fmt.Errorf("%w: missing part %q", errBadRequest, name)
	}
	defer file.Close()

	contentType := hdr.Header.Get("Content-Type")
	if err := middleware.ValidatePhotoType(contentType); err != nil {
		return analysis.Photo{}, fmt.Errorf("%w: %s: %v", errBadRequest, name, err)
	}
	if err := middleware.ValidatePhotoSize(hdr.Size); err != nil {
		return analysis.Photo{}, fmt.Errorf("%w: %s: %v", errBadRequest, name, err)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return analysis.Photo{}, fmt.Errorf("read part %q: %w", name, err)
	}

	return analysis.Photo{Data: data, ContentType: contentType}, nil
}
