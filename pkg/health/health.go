// Package health implements liveness and readiness probes for the API server.
//
// Registered checks run on a single background scheduler. A check flips to
// failing only after failing consecutively a few times, so a transient blip
// does not take the service out of rotation.
package health

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-faster/jx"
)

// Check reports nil when the probed component is healthy.
type Check func(ctx context.Context) error

// Kind separates liveness checks from readiness checks.
type Kind int

const (
	// Liveness checks decide whether the process should be restarted.
	Liveness Kind = iota
	// Readiness checks decide whether the process should receive traffic.
	Readiness
)

// failAfter is how many consecutive failures flip a probe to failing.
const failAfter = 3

type probe struct {
	name    string
	kind    Kind
	timeout time.Duration
	check   Check

	// fails is only touched by the scheduler goroutine.
	fails int

	failing atomic.Bool
	lastErr atomic.Pointer[string]
}

func (p *probe) observe(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.check(ctx); err != nil {
		msg := err.Error()
		p.lastErr.Store(&msg)
		p.fails++
		if p.fails >= failAfter {
			p.failing.Store(true)
		}
		return
	}
	p.fails = 0
	p.failing.Store(false)
}

func (p *probe) message() string {
	if m := p.lastErr.Load(); m != nil {
		return *m
	}
	return "failing"
}

// Service runs probes and serves the /livez and /readyz endpoints.
type Service struct {
	ready atomic.Bool

	mu     sync.Mutex
	probes []*probe
	cancel context.CancelFunc
}

// NewService creates a Service in the not-ready state. Register probes, call
// Start, then SetReady(true) once initialization finishes.
func NewService() *Service {
	return &Service{}
}

// Register adds a probe. Must be called before Start.
func (s *Service) Register(kind Kind, name string, timeout time.Duration, check Check) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.probes = append(s.probes, &probe{
		name:    name,
		kind:    kind,
		timeout: timeout,
		check:   check,
	})
}

// Start launches the scheduler, running every probe once per interval. The
// scheduler stops when ctx is cancelled or Stop is called.
func (s *Service) Start(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.cancel = cancel
	probes := make([]*probe, len(s.probes))
	copy(probes, s.probes)
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			for _, p := range probes {
				p.observe(ctx)
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop halts the scheduler. Safe to call more than once.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// SetReady marks the service as ready (after startup) or not ready (during
// shutdown, to drain traffic).
func (s *Service) SetReady(ready bool) {
	s.ready.Store(ready)
}

// IsReady reports whether the service is marked ready and all readiness
// probes pass.
func (s *Service) IsReady() bool {
	if !s.ready.Load() {
		return false
	}
	return len(s.failures(Readiness)) == 0
}

type failure struct {
	name    string
	message string
}

func (s *Service) failures(kind Kind) []failure {
	s.mu.Lock()
	probes := s.probes
	s.mu.Unlock()

	var out []failure
	for _, p := range probes {
		if p.kind == kind && p.failing.Load() {
			out = append(out, failure{name: p.name, message: p.message()})
		}
	}
	return out
}

// LiveHandler serves the liveness endpoint.
func (s *Service) LiveHandler(w http.ResponseWriter, _ *http.Request) {
	writeStatus(w, s.failures(Liveness))
}

// ReadyHandler serves the readiness endpoint.
func (s *Service) ReadyHandler(w http.ResponseWriter, _ *http.Request) {
	failures := s.failures(Readiness)
	if !s.ready.Load() {
		failures = append(failures, failure{name: "startup", message: "service is not ready"})
	}
	writeStatus(w, failures)
}

func writeStatus(w http.ResponseWriter, failures []failure) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("status")
	if len(failures) == 0 {
		e.Str("ok")
	} else {
		e.Str("unhealthy")
		e.FieldStart("checks")
		e.ObjStart()
		for _, f := range failures {
			e.FieldStart(f.name)
			e.Str(f.message)
		}
		e.ObjEnd()
	}
	e.ObjEnd()

	w.Header().Set("Content-Type", "application/json")
	if len(failures) == 0 {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_, _ = w.Write(e.Bytes())
}
