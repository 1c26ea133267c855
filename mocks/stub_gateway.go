package mocks

import (
	"consult-lab/contract"
	"consult-lab/domain"
	"consult-lab/errors"
	"context"
	"sync"
	"time"
)

var _ contract.IGateway = (*StubGateway)(nil)

// StubGateway answers from fixed per-endpoint tables and records every call.
// Unlike the generated mock it tolerates any call order, which suits concurrent callers.
type StubGateway struct {
	mu          sync.Mutex
	Responses   map[string]string
	Failures    map[string]error
	Delays      map[string]time.Duration
	calls       []domain.GatewayRequest
	inFlight    int
	maxInFlight int
}

func NewStubGateway(responses map[string]string) *StubGateway {
	return &StubGateway{
		Responses: responses,
		Failures:  map[string]error{},
		Delays:    map[string]time.Duration{},
	}
}

func (s *StubGateway) Send(ctx context.Context, request domain.GatewayRequest) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, request)
	s.inFlight++
	s.maxInFlight = max(s.maxInFlight, s.inFlight)
	delay := s.Delays[request.Endpoint]
	failure := s.Failures[request.Endpoint]
	response, known := s.Responses[request.Endpoint]
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}()

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", &errors.GatewayError{Endpoint: request.Endpoint, Timeout: true, Err: ctx.Err()}
		case <-timer.C:
		}
	}
	if failure != nil {
		return "", failure
	}
	if !known {
		return "", &errors.GatewayError{Endpoint: request.Endpoint, StatusCode: 404, Description: "workspace not found"}
	}
	return response, nil
}

// Calls returns the requests received so far, in arrival order.
func (s *StubGateway) Calls() []domain.GatewayRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.GatewayRequest(nil), s.calls...)
}

// Endpoints returns the endpoint of every call, in arrival order.
func (s *StubGateway) Endpoints() []string {
	calls := s.Calls()
	endpoints := make([]string, len(calls))
	for i, c := range calls {
		endpoints[i] = c.Endpoint
	}
	return endpoints
}

// MaxInFlight is the highest number of concurrent calls observed.
func (s *StubGateway) MaxInFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxInFlight
}
