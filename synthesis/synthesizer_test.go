package synthesis

import (
	"consult-lab/domain"
	"consult-lab/errors"
	"consult-lab/mocks"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newSynthesizer(t *testing.T, config Config) (*Synthesizer, *mocks.MockIGateway) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockIGateway(ctrl)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if config.Endpoint == "" {
		config.Endpoint = "medical-advanced"
	}
	if config.Timeout == 0 {
		config.Timeout = time.Second
	}
	return NewSynthesizer(log, gw, config), gw
}

func TestSynthesizer_Synthesize_Uses_Only_Successful_Opinions(t *testing.T) {
	req := require.New(t)
	s, gw := newSynthesizer(t, Config{})
	aggregated := domain.NewAggregatedResponses([]domain.SpecialistResult{
		{Specialty: "neurology", Response: "migraine workup"},
		{Specialty: "ophthalmology", Err: &errors.SpecialistFailure{Specialty: "ophthalmology", Err: errors.ErrNoResponse}},
	})

	gw.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r domain.GatewayRequest) (string, error) {
			req.Equal("medical-advanced", r.Endpoint)
			req.Empty(r.Auxiliary)
			req.Equal("key", r.Credential)
			req.Contains(r.Prompt, "Given the following specialist recommendations:")
			req.Contains(r.Prompt, "migraine workup")
			req.Contains(r.Prompt, "1 specialist(s) did not respond: ophthalmology")
			req.Contains(r.Prompt, "Integrate these into a single, comprehensive medication report")
			return "unified report", nil
		}).Times(1)

	report, err := s.Synthesize(context.Background(), aggregated, "key")

	req.NoError(err)
	req.True(report.Succeeded())
	req.Equal("unified report", report.Text)
}

func TestSynthesizer_Synthesize_Guards(t *testing.T) {
	tests := []struct {
		description string
		minimum     int
		results     []domain.SpecialistResult
		wantErr     error
		wantExcl    int
	}{
		{
			"Should not call the gateway when every specialist failed",
			1,
			[]domain.SpecialistResult{
				{Specialty: "neurology", Err: errors.ErrNoResponse},
				{Specialty: "cardiology", Err: errors.ErrNoResponse},
			},
			errors.ErrNoSuccessfulOpinion,
			2,
		},
		{
			"Should not call the gateway without any opinion",
			1,
			nil,
			errors.ErrNoSuccessfulOpinion,
			0,
		},
		{
			"Should not call the gateway below the configured minimum",
			2,
			[]domain.SpecialistResult{
				{Specialty: "neurology", Response: "ok"},
				{Specialty: "cardiology", Err: errors.ErrNoResponse},
			},
			errors.ErrNotEnoughOpinions,
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req := require.New(t)
			s, gw := newSynthesizer(t, Config{MinSuccessfulOpinions: tt.minimum})
			gw.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)

			report, err := s.Synthesize(context.Background(), domain.NewAggregatedResponses(tt.results), "key")

			req.ErrorIs(err, tt.wantErr)
			req.False(report.Succeeded())
			var synthesisErr *errors.SynthesisError
			req.ErrorAs(err, &synthesisErr)
			req.Equal(tt.wantExcl, synthesisErr.Excluded)
			req.Equal(errors.StageSynthesis, errors.StageOf(report.Err))
		})
	}
}

func TestSynthesizer_Synthesize_Gateway_Failure(t *testing.T) {
	req := require.New(t)
	s, gw := newSynthesizer(t, Config{MaxAttempts: 2, RetryBackoff: time.Millisecond})
	aggregated := domain.NewAggregatedResponses([]domain.SpecialistResult{{Specialty: "neurology", Response: "ok"}})
	gw.EXPECT().Send(gomock.Any(), gomock.Any()).
		Return("", &errors.GatewayError{Endpoint: "medical-advanced", Timeout: true}).Times(2)

	report, err := s.Synthesize(context.Background(), aggregated, "key")

	var gatewayErr *errors.GatewayError
	req.ErrorAs(err, &gatewayErr)
	req.True(gatewayErr.Timeout)
	req.Equal(errors.StageSynthesis, errors.StageOf(err))
	req.Empty(report.Text)
}

func TestSynthesizer_Synthesize_Timeout(t *testing.T) {
	req := require.New(t)
	gw := mocks.NewStubGateway(map[string]string{"medical-advanced": "report"})
	gw.Delays["medical-advanced"] = time.Second
	s := NewSynthesizer(slog.New(slog.NewTextHandler(io.Discard, nil)), gw,
		Config{Endpoint: "medical-advanced", Timeout: 20 * time.Millisecond})
	aggregated := domain.NewAggregatedResponses([]domain.SpecialistResult{{Specialty: "neurology", Response: "ok"}})

	report, err := s.Synthesize(context.Background(), aggregated, "key")

	var gatewayErr *errors.GatewayError
	req.ErrorAs(err, &gatewayErr)
	req.True(gatewayErr.Timeout)
	req.Equal(errors.StageSynthesis, errors.StageOf(err))
	req.Empty(report.Text)
	req.Len(gw.Calls(), 1)
}

func TestSynthesizer_Synthesize_No_Response(t *testing.T) {
	req := require.New(t)
	s, gw := newSynthesizer(t, Config{})
	aggregated := domain.NewAggregatedResponses([]domain.SpecialistResult{{Specialty: "neurology", Response: "ok"}})
	gw.EXPECT().Send(gomock.Any(), gomock.Any()).Return(domain.NoResponse, nil)

	_, err := s.Synthesize(context.Background(), aggregated, "key")

	req.ErrorIs(err, errors.ErrNoResponse)
}

func TestSynthesizer_Synthesize_Blank_Report(t *testing.T) {
	req := require.New(t)
	s, gw := newSynthesizer(t, Config{})
	aggregated := domain.NewAggregatedResponses([]domain.SpecialistResult{{Specialty: "neurology", Response: "ok"}})
	gw.EXPECT().Send(gomock.Any(), gomock.Any()).Return(" \n ", nil)

	report, err := s.Synthesize(context.Background(), aggregated, "key")

	req.ErrorIs(err, errors.ErrNoResponse)
	req.False(report.Succeeded())
}

func TestNewSynthesizer_Defaults(t *testing.T) {
	req := require.New(t)

	s := NewSynthesizer(slog.New(slog.NewTextHandler(io.Discard, nil)), mocks.NewStubGateway(nil), Config{})

	req.Equal(1, s.config.MaxAttempts)
	req.Equal(1, s.config.MinSuccessfulOpinions)
	req.Equal(domain.DefaultGatewayTimeout, s.config.Timeout)
}

func TestPrompt_Without_Failures(t *testing.T) {
	req := require.New(t)
	aggregated := domain.NewAggregatedResponses([]domain.SpecialistResult{
		{Specialty: "neurology", Response: "first"},
		{Specialty: "cardiology", Response: "second"},
	})

	prompt := Prompt(aggregated)

	req.Contains(prompt, "first\nsecond")
	req.NotContains(prompt, "did not respond")
}
