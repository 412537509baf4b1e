// Package server exposes the calculator over HTTP: JSON evaluation and
// prime search endpoints, a health check and Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/agbru/uintcalc/internal/biguint"
	"github.com/agbru/uintcalc/internal/calc"
	apperrors "github.com/agbru/uintcalc/internal/errors"
	"github.com/agbru/uintcalc/internal/logging"
	"github.com/agbru/uintcalc/internal/metrics"
	"github.com/agbru/uintcalc/internal/orchestration"
)

var tracer = otel.Tracer("github.com/agbru/uintcalc/internal/server")

// Default server settings.
const (
	DefaultTimeout         = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	readHeaderTimeout      = 5 * time.Second
)

// Config configures a Server.
type Config struct {
	// Addr is the TCP listen address, such as ":8080".
	Addr string
	// DefaultWidth is used by requests that name no width.
	DefaultWidth string
	// Timeout bounds one evaluation or prime search.
	Timeout time.Duration
	// ShutdownTimeout bounds the graceful shutdown.
	ShutdownTimeout time.Duration
	// Security configures headers, CORS and request limits.
	Security SecurityConfig
}

// Server serves the calculator endpoints.
type Server struct {
	factory    calc.CalculatorFactory
	cfg        Config
	logger     logging.Logger
	metrics    *Metrics
	memory     *metrics.MemoryCollector
	startTime  time.Time
	httpServer *http.Server
}

// NewServer creates a server on factory. A nil logger disables logging.
func NewServer(factory calc.CalculatorFactory, cfg Config, logger logging.Logger) *Server {
	if cfg.DefaultWidth == "" {
		cfg.DefaultWidth = "u256"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Security.MaxBodyBytes <= 0 {
		cfg.Security = DefaultSecurityConfig()
	}
	s := &Server{
		factory:   factory,
		cfg:       cfg,
		logger:    logger,
		metrics:   NewMetrics(),
		memory:    metrics.NewMemoryCollector(),
		startTime: time.Now(),
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

// Handler returns the routed handler with the security and metrics
// middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	route := func(path string, h http.HandlerFunc) {
		mux.HandleFunc(path, SecurityMiddleware(s.cfg.Security, s.metricsMiddleware(h)))
	}
	route("/v1/eval", s.handleEval)
	route("/v1/prime", s.handlePrime)
	route("/v1/widths", s.handleWidths)
	route("/healthz", s.handleHealth)
	route("/metrics", s.handleMetrics)
	return mux
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.log().Info("server listening", logging.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log().Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) log() logging.Logger {
	if s.logger == nil {
		return logging.NopLogger{}
	}
	return s.logger
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware tracks active requests, counts responses and logs each
// request at debug level.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		elapsed := time.Since(start)

		s.metrics.ObserveRequest(r.URL.Path, rec.status, elapsed)
		s.log().Debug("request served",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", rec.status),
			logging.Duration("duration", elapsed))
	}
}

// evalRequest is the body of POST /v1/eval.
type evalRequest struct {
	Width       string   `json:"width"`
	Op          string   `json:"op"`
	Args        []string `json:"args"`
	Radix       int      `json:"radix,omitempty"`
	Stride      int      `json:"stride,omitempty"`
	Delimiter   *string  `json:"delimiter,omitempty"`
	Strict      bool     `json:"strict,omitempty"`
	Repetitions int      `json:"repetitions,omitempty"`
}

// evalResponse is the body of a successful evaluation.
type evalResponse struct {
	Width      string   `json:"width"`
	Op         string   `json:"op"`
	Value      string   `json:"value"`
	Values     []string `json:"values"`
	Flags      []string `json:"flags"`
	DurationNs int64    `json:"duration_ns"`
}

type errorResponse struct {
	Error string   `json:"error"`
	Flags []string `json:"flags,omitempty"`
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req evalRequest
	if !s.decode(w, r, &req) {
		return
	}
	for i, a := range req.Args {
		if len(a) > s.cfg.Security.MaxArgLength {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("argument %d exceeds %d characters", i+1, s.cfg.Security.MaxArgLength))
			return
		}
	}
	c, ok := s.calculator(w, req.Width)
	if !ok {
		return
	}

	ctx, span := tracer.Start(r.Context(), "server.eval")
	span.SetAttributes(attribute.String("calc.width", c.Name()), attribute.String("calc.op", req.Op))
	defer span.End()
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	f := calc.DefaultFormat
	if req.Radix != 0 {
		f.Radix = req.Radix
	}
	f.Stride = req.Stride
	if req.Delimiter != nil {
		f.Delimiter = *req.Delimiter
	}
	res, err := c.Eval(ctx, calc.Request{
		Op:          req.Op,
		Args:        req.Args,
		Format:      f,
		Repetitions: req.Repetitions,
		Strict:      req.Strict,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if res.Op != "" {
			s.metrics.RecordEvaluation(res)
		}
		writeEvalError(w, err, res.Flags)
		return
	}
	s.metrics.RecordEvaluation(res)
	writeJSON(w, http.StatusOK, evalResponse{
		Width:      res.Width,
		Op:         res.Op,
		Value:      res.Value(),
		Values:     res.Values,
		Flags:      nonNil(res.Flags.Names()),
		DurationNs: res.Duration.Nanoseconds(),
	})
}

// primeRequest is the body of POST /v1/prime.
type primeRequest struct {
	Width       string `json:"width"`
	Repetitions int    `json:"repetitions,omitempty"`
	Workers     int    `json:"workers,omitempty"`
}

type primeResponse struct {
	Width      string `json:"width"`
	Bits       int    `json:"bits"`
	Value      string `json:"value"`
	Candidates uint64 `json:"candidates"`
	Workers    int    `json:"workers"`
	DurationNs int64  `json:"duration_ns"`
}

func (s *Server) handlePrime(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req primeRequest
	if !s.decode(w, r, &req) {
		return
	}
	c, ok := s.calculator(w, req.Width)
	if !ok {
		return
	}
	res, err := orchestration.SearchPrime(r.Context(), c, orchestration.SearchOptions{
		Workers:     min(max(req.Workers, 0), runtime.NumCPU()),
		Repetitions: req.Repetitions,
		Timeout:     s.cfg.Timeout,
		Logger:      s.logger,
	}, orchestration.NullProgressReporter{}, io.Discard)
	s.metrics.RecordPrimeSearch(c.Name(), res.Candidates, err == nil)
	if err != nil {
		writeEvalError(w, err, 0)
		return
	}
	writeJSON(w, http.StatusOK, primeResponse{
		Width:      res.Width,
		Bits:       res.Bits,
		Value:      res.Value,
		Candidates: res.Candidates,
		Workers:    res.Workers,
		DurationNs: res.Duration.Nanoseconds(),
	})
}

type widthInfo struct {
	Name      string   `json:"name"`
	Bits      int      `json:"bits"`
	DigitBits int      `json:"digit_bits"`
	Ops       []string `json:"ops"`
}

func (s *Server) handleWidths(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, http.MethodGet)
		return
	}
	all := s.factory.GetAll()
	var widths []widthInfo
	for _, name := range s.factory.List() {
		c := all[name]
		info := widthInfo{Name: c.Name(), Bits: c.Bits(), DigitBits: c.DigitBits()}
		for _, op := range c.Ops() {
			info.Ops = append(info.Ops, op.Name)
		}
		widths = append(widths, info)
	}
	writeJSON(w, http.StatusOK, widths)
}

type healthResponse struct {
	Status     string `json:"status"`
	UptimeNs   int64  `json:"uptime_ns"`
	HeapAlloc  uint64 `json:"heap_alloc"`
	Sys        uint64 `json:"sys"`
	NumGC      uint32 `json:"num_gc"`
	Goroutines int    `json:"goroutines"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, http.MethodGet)
		return
	}
	snap := s.memory.Snapshot()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:     "ok",
		UptimeNs:   time.Since(s.startTime).Nanoseconds(),
		HeapAlloc:  snap.HeapAlloc,
		Sys:        snap.Sys,
		NumGC:      snap.NumGC,
		Goroutines: runtime.NumGoroutine(),
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, http.MethodGet)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed string) {
	s.log().Debug("method not allowed", logging.String("method", r.Method), logging.String("path", r.URL.Path))
	w.Header().Set("Allow", allowed)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// decode reads a JSON body into v, answering 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.Security.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// calculator resolves a width name, answering 404 for an unknown one.
func (s *Server) calculator(w http.ResponseWriter, name string) (calc.Calculator, bool) {
	if name == "" {
		name = s.cfg.DefaultWidth
	}
	c, err := s.factory.Get(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return c, true
}

// writeEvalError maps an evaluation error to a status code.
func writeEvalError(w http.ResponseWriter, err error, flags biguint.Flags) {
	var (
		arith      apperrors.ArithmeticError
		validation apperrors.ValidationError
		timeout    apperrors.TimeoutError
		numErr     *biguint.NumberError
	)
	switch {
	case errors.As(err, &arith):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Flags: flags.Names()})
	case errors.Is(err, calc.ErrUnknownOp), errors.Is(err, calc.ErrArity),
		errors.As(err, &validation), errors.As(err, &numErr):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &timeout), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, err.Error())
	case errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
