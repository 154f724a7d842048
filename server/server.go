// Package server exposes the pricing engine over HTTP.
package server

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	customerrors "workshop-quote/errors"
	"workshop-quote/formatter"
	"workshop-quote/metrics"
	"workshop-quote/models"
	"workshop-quote/parser"
	"workshop-quote/pricing"
	"workshop-quote/refdata"
)

const maxRequestBytes = 1 << 20

// Registry is the reference data the server publishes alongside quotes.
type Registry interface {
	refdata.Provider
	Prisons() []refdata.Prison
}

// Server handles quote requests. It holds no per-request state.
type Server struct {
	engine *pricing.Engine
	ref    Registry
	now    func() time.Time
	newID  func() uuid.UUID
}

// New builds a server around engine and the registry it was built with.
func New(engine *pricing.Engine, ref Registry) *Server {
	return &Server{
		engine: engine,
		ref:    ref,
		now:    time.Now,
		newID:  uuid.New,
	}
}

// QuoteResponse is the envelope returned by POST /quotes.
type QuoteResponse struct {
	QuoteID     uuid.UUID           `json:"quote_id"`
	GeneratedAt time.Time           `json:"generated_at"`
	Result      *models.QuoteResult `json:"result"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/quotes", s.handleQuote)
	r.Get("/prisons", s.handlePrisons)
	r.Get("/regions/{region}/bands", s.handleBands)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleQuote prices a JSON request. ?format=text or ?format=csv renders the
// result for people instead of returning the envelope.
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, err := parser.ParseRequest(http.MaxBytesReader(w, r.Body, maxRequestBytes), s.engine.Defaults())
	if err != nil {
		metrics.Observe("", nil, err, time.Since(start))
		writeError(w, err)
		return
	}

	var kind models.ContractKind
	if req.Contract != nil {
		kind = req.Contract.Kind()
	}
	result, err := s.engine.Quote(req)
	metrics.Observe(kind, result, err, time.Since(start))
	if err != nil {
		writeError(w, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(formatter.FormatText(result)))
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Write([]byte(formatter.FormatCSV(result)))
	default:
		writeJSON(w, http.StatusOK, QuoteResponse{
			QuoteID:     s.newID(),
			GeneratedAt: s.now().UTC(),
			Result:      result,
		})
	}
}

func (s *Server) handlePrisons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ref.Prisons())
}

func (s *Server) handleBands(w http.ResponseWriter, r *http.Request) {
	region := models.Region(chi.URLParam(r, "region"))
	if !region.IsValid() {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Status:  http.StatusNotFound,
			Kind:    string(customerrors.KindInvalidEnum),
			Message: "unknown region " + string(region),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"region":      region,
		"shadow_cost": s.ref.ShadowCost(region),
		"bands":       s.ref.SalaryBands(region),
	})
}

// statusOf maps an error to its HTTP status: malformed input is 400, a
// rejected request 422 and anything else 500.
func statusOf(err error) (int, customerrors.Kind) {
	var pe *customerrors.ParseError
	if errors.As(err, &pe) {
		return http.StatusBadRequest, "PARSE_ERROR"
	}
	kind := customerrors.KindOf(err)
	if kind == customerrors.KindInternal {
		return http.StatusInternalServerError, kind
	}
	return http.StatusUnprocessableEntity, kind
}

func writeError(w http.ResponseWriter, err error) {
	status, kind := statusOf(err)
	if status == http.StatusInternalServerError {
		log.Printf("Error pricing quote: %v", err)
	}
	writeJSON(w, status, ErrorResponse{Status: status, Kind: string(kind), Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}
