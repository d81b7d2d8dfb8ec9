package web

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hpungsan/lexis/internal/config"
	"github.com/hpungsan/lexis/internal/errors"
	"github.com/hpungsan/lexis/internal/filter"
	"github.com/hpungsan/lexis/internal/metrics"
	"github.com/hpungsan/lexis/internal/ops"
	"github.com/hpungsan/lexis/internal/store"
)

// maxBodyBytes bounds POST /strings bodies.
const maxBodyBytes = 1 << 20

// Handlers contains HTTP route handlers for the API.
type Handlers struct {
	store   store.Store
	cfg     *config.Config
	log     *zap.Logger
	metrics *metrics.Collector
	version string
	docs    []byte // rendered API guide
}

// NewHandlers creates the API handlers.
func NewHandlers(st store.Store, cfg *config.Config, log *zap.Logger, m *metrics.Collector, version string) (*Handlers, error) {
	docs, err := renderDocs(version, apiDoc)
	if err != nil {
		return nil, err
	}
	return &Handlers{
		store:   st,
		cfg:     cfg,
		log:     log,
		metrics: m,
		version: version,
		docs:    docs,
	}, nil
}

// HandleCreate handles POST /strings: analyze and store a value.
func (h *Handlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	args, err := decodeObject(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		renderError(w, err)
		return
	}

	rec, err := ops.Create(r.Context(), h.store, h.cfg, ops.CreateInput{Args: args})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if loc, ok := location(rec.Value); ok {
		w.Header().Set("Location", loc)
	}
	renderJSON(w, http.StatusCreated, rec)
}

// HandleGet handles GET /strings/{value}: fetch the record for a literal value.
func (h *Handlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	value, err := pathValue(r)
	if err != nil {
		renderError(w, err)
		return
	}

	rec, err := ops.Get(r.Context(), h.store, ops.GetInput{Value: value})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, rec)
}

// HandleDelete handles DELETE /strings/{value}: remove the record for a literal value.
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	value, err := pathValue(r)
	if err != nil {
		renderError(w, err)
		return
	}

	if _, err := ops.Delete(r.Context(), h.store, ops.DeleteInput{Value: value}); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleList handles GET /strings: list records matching structured filters.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	spec, err := filter.ParseQuery(r.URL.Query())
	if err != nil {
		renderError(w, err)
		return
	}

	result, err := ops.List(r.Context(), h.store, ops.ListInput{Filters: spec})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleFilterNatural handles GET /strings/filter-by-natural-language.
func (h *Handlers) HandleFilterNatural(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	result, err := ops.FilterNatural(r.Context(), h.store, ops.FilterNaturalInput{Query: query})
	h.metrics.ObserveTranslation(translationOutcome(err))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.Count(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"records": n,
		"version": h.version,
	})
}

// HandleDocs handles GET /: the rendered API guide.
func (h *Handlers) HandleDocs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.docs)
}

// HandleNotFound renders unknown routes as JSON.
func (h *Handlers) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	renderError(w, errors.NewRouteNotFound(r.URL.Path))
}

// HandleMethodNotAllowed renders unsupported methods as JSON.
func (h *Handlers) HandleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	renderError(w, errors.NewMethodNotAllowed(r.Method))
}

// fail logs unexpected errors before rendering them.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	if lErr := errors.As(err); lErr.Code == errors.ErrInternal {
		h.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Any("details", lErr.Details),
		)
	}
	renderError(w, err)
}

// decodeObject reads a JSON object body. Anything else is INVALID_REQUEST.
func decodeObject(body io.Reader) (map[string]any, error) {
	var raw any
	dec := json.NewDecoder(body)
	if err := dec.Decode(&raw); err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			return nil, errors.NewInvalidRequest("request body too large")
		}
		return nil, errors.NewInvalidRequest("request body must be valid JSON")
	}
	if dec.More() {
		return nil, errors.NewInvalidRequest("request body must contain a single JSON object")
	}

	args, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.NewInvalidRequest("request body must be a JSON object")
	}
	return args, nil
}

// pathValue returns the literal value addressed by /strings/{value...}.
// chi routes on RawPath when the client escaped the path, so the captured
// segment needs unescaping in that case only.
func pathValue(r *http.Request) (string, error) {
	v := chi.URLParam(r, "*")
	if r.URL.RawPath == "" {
		return v, nil
	}
	unescaped, err := url.PathUnescape(v)
	if err != nil {
		return "", errors.NewInvalidRequest("malformed path encoding")
	}
	return unescaped, nil
}

// location returns the path that fetches value. The empty string and the
// natural-language route name have no such path.
func location(value string) (string, bool) {
	if value == "" || value == naturalLanguageRoute {
		return "", false
	}
	return "/strings/" + url.PathEscape(value), true
}

// translationOutcome classifies a natural language filter result for metrics.
func translationOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, errors.ErrUnparseableQuery):
		return metrics.OutcomeUnparseable
	case errors.Is(err, errors.ErrConflictingFilters):
		return metrics.OutcomeConflicting
	default:
		return metrics.OutcomeInvalid
	}
}
