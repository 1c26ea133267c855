// Package synthesis merges specialist opinions into one report.
package synthesis

import (
	"consult-lab/contract"
	"consult-lab/domain"
	"consult-lab/errors"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"
)

var _ contract.ISynthesizer = (*Synthesizer)(nil)

type Config struct {
	Endpoint              string
	Timeout               time.Duration
	MaxAttempts           int
	RetryBackoff          time.Duration
	MinSuccessfulOpinions int
}

type Synthesizer struct {
	log     *slog.Logger
	gateway contract.IGateway
	config  Config
}

func NewSynthesizer(log *slog.Logger, gateway contract.IGateway, config Config) *Synthesizer {
	config.MaxAttempts = max(config.MaxAttempts, 1)
	config.MinSuccessfulOpinions = max(config.MinSuccessfulOpinions, 1)
	if config.Timeout <= 0 {
		config.Timeout = domain.DefaultGatewayTimeout
	}
	return &Synthesizer{log: log, gateway: gateway, config: config}
}

// Prompt builds the synthesis instruction from the successful opinions.
// Failed specialties are named but their text is left out.
func Prompt(aggregated domain.AggregatedResponses) string {
	opinions := lo.Map(aggregated.Succeeded(), func(r domain.SpecialistResult, _ int) string {
		return r.Response
	})

	var sb strings.Builder
	sb.WriteString("\nGiven the following specialist recommendations:\n")
	sb.WriteString(strings.Join(opinions, "\n"))
	sb.WriteString("\n")
	if failed := aggregated.Failed(); len(failed) > 0 {
		names := lo.Map(failed, func(r domain.SpecialistResult, _ int) string { return r.Specialty })
		fmt.Fprintf(&sb, "\nNote: %d specialist(s) did not respond: %s.\n", len(failed), strings.Join(names, ", "))
	}
	sb.WriteString("\nTask:\nIntegrate these into a single, comprehensive medication report as per the initial instructions.\n")
	return sb.String()
}

// Synthesize issues the final gateway call. It refuses to run when fewer than
// MinSuccessfulOpinions specialists answered, so the gateway never gets an empty report request.
func (s *Synthesizer) Synthesize(ctx context.Context, aggregated domain.AggregatedResponses, credential string) (domain.FinalReport, error) {
	succeeded := aggregated.SuccessCount()
	excluded := aggregated.FailureCount()

	if succeeded == 0 {
		return s.fail(excluded, errors.ErrNoSuccessfulOpinion)
	}
	if succeeded < s.config.MinSuccessfulOpinions {
		return s.fail(excluded, fmt.Errorf("%w: %d of %d required",
			errors.ErrNotEnoughOpinions, succeeded, s.config.MinSuccessfulOpinions))
	}

	prompt := Prompt(aggregated)
	s.log.Info("Synthesizing report",
		"opinions", succeeded,
		"excluded", excluded,
		"prompt_len", len(prompt))

	var lastErr error
	for attempt := 1; attempt <= s.config.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return s.fail(excluded, lastErr)
			case <-time.After(s.config.RetryBackoff * time.Duration(attempt-1)):
			}
		}
		text, err := s.send(ctx, prompt, credential)
		if err == nil {
			return domain.FinalReport{Text: text}, nil
		}
		lastErr = err
		s.log.Warn("Synthesis call failed", "attempt", attempt, "error", err)
	}
	return s.fail(excluded, lastErr)
}

func (s *Synthesizer) send(ctx context.Context, prompt, credential string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	text, err := s.gateway.Send(callCtx, domain.GatewayRequest{
		Endpoint:   s.config.Endpoint,
		Prompt:     prompt,
		Auxiliary:  "",
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

func (s *Synthesizer) fail(excluded int, cause error) (domain.FinalReport, error) {
	err := &errors.SynthesisError{Excluded: excluded, Err: cause}
	s.log.Error("Synthesis failed", "error", err)
	return domain.FinalReport{Err: err}, err
}
