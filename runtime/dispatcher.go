package runtime

import (
	"consult-lab/contract"
	"consult-lab/domain"
	"consult-lab/errors"
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

var _ contract.IDispatcher = (*Dispatcher)(nil)

type DispatcherConfig struct {
	MaxConcurrency int
	Timeout        time.Duration
	MaxAttempts    int
	RetryBackoff   time.Duration
}

// Dispatcher asks every selected specialty for an opinion.
// Calls run concurrently, at most MaxConcurrency at a time, and each one is
// bounded by Timeout. A failing specialty never stops the others.
type Dispatcher struct {
	log     *slog.Logger
	gateway contract.IGateway
	config  DispatcherConfig
}

func NewDispatcher(log *slog.Logger, gateway contract.IGateway, config DispatcherConfig) *Dispatcher {
	config.MaxConcurrency = max(config.MaxConcurrency, 1)
	config.MaxAttempts = max(config.MaxAttempts, 1)
	if config.Timeout <= 0 {
		config.Timeout = domain.DefaultGatewayTimeout
	}
	return &Dispatcher{
		log:     log,
		gateway: gateway,
		config:  config,
	}
}

// Query renders the question sent to one specialty.
func Query(specialty, condition, task string) domain.SpecialistQuery {
	return domain.SpecialistQuery{
		Specialty: specialty,
		Condition: condition,
		Prompt: fmt.Sprintf(`
You are a %s. Given the patient's details:
- Symptoms: %s
- Medical history: (if applicable)
- Current medications: (if applicable)
- Known allergies: (if applicable)

Task:
%s
`, specialty, condition, task),
	}
}

// Dispatch consults every specialty and returns one result per specialty in input order.
// Each goroutine owns the slot at its dispatch index, so completion order does not matter.
func (d *Dispatcher) Dispatch(ctx context.Context, specialties []string, condition, task, credential string) domain.AggregatedResponses {
	if len(specialties) == 0 {
		return Aggregate(nil)
	}

	d.log.Info("Dispatching to specialists",
		"count", len(specialties),
		"max_concurrency", d.config.MaxConcurrency)

	slots := make([]domain.SpecialistResult, len(specialties))
	var g errgroup.Group
	g.SetLimit(d.config.MaxConcurrency)
	for i, specialty := range specialties {
		query := Query(specialty, condition, task)
		g.Go(func() error {
			slots[i] = d.supervise(ctx, query, credential)
			return nil
		})
	}
	_ = g.Wait()

	return Aggregate(slots)
}

// supervise turns a panic during one consultation into a failed result for that specialty.
func (d *Dispatcher) supervise(ctx context.Context, query domain.SpecialistQuery, credential string) (result domain.SpecialistResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("Specialist call panicked",
				"specialty", query.Specialty,
				"panic", r)
			result = domain.SpecialistResult{
				Specialty: query.Specialty,
				Err: &errors.SpecialistFailure{
					Specialty: query.Specialty,
					Attempts:  1,
					Err:       fmt.Errorf("%w: %v", errors.ErrSpecialistPanic, r),
				},
				Duration: time.Since(start),
			}
		}
	}()
	return d.consult(ctx, query, credential)
}

func (d *Dispatcher) consult(ctx context.Context, query domain.SpecialistQuery, credential string) domain.SpecialistResult {
	start := time.Now()
	var lastErr error
	attempts := 0

	for attempt := 1; attempt <= d.config.MaxAttempts; attempt++ {
		if attempt > 1 && !d.wait(ctx, attempt) {
			break
		}
		attempts = attempt
		text, err := d.send(ctx, query, credential)
		if err == nil {
			d.log.Debug("Specialist answered",
				"specialty", query.Specialty,
				"attempts", attempts,
				"duration", time.Since(start))
			return domain.SpecialistResult{
				Specialty: query.Specialty,
				Response:  text,
				Duration:  time.Since(start),
			}
		}
		lastErr = err
		d.log.Warn("Specialist call failed",
			"specialty", query.Specialty,
			"attempt", attempt,
			"error", err)
	}

	return domain.SpecialistResult{
		Specialty: query.Specialty,
		Err: &errors.SpecialistFailure{
			Specialty: query.Specialty,
			Attempts:  attempts,
			Err:       lastErr,
		},
		Duration: time.Since(start),
	}
}

func (d *Dispatcher) send(ctx context.Context, query domain.SpecialistQuery, credential string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()

	text, err := d.gateway.Send(callCtx, domain.GatewayRequest{
		Endpoint:   query.Specialty,
		Prompt:     query.Prompt,
		Auxiliary:  query.Condition,
		Credential: credential,
	})
	if err != nil {
		return "", err
	}
	if domain.IsNoResponse(text) {
		return "", errors.ErrNoResponse
	}
	return text, nil
}

// wait sleeps before a new attempt and reports false if ctx ended first.
func (d *Dispatcher) wait(ctx context.Context, attempt int) bool {
	timer := time.NewTimer(d.config.RetryBackoff * time.Duration(attempt-1))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
