package e2e

import (
	"consult-lab/classifier"
	"consult-lab/domain"
	"consult-lab/runtime"
	"consult-lab/services"
	"consult-lab/synthesis"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
)

type testConsultationSuite struct {
	BaseGatewaySuite
}

func TestConsultationSuite(t *testing.T) {
	suite.Run(t, &testConsultationSuite{})
}

func (s *testConsultationSuite) TestDynamicConsultation() {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	gw := s.Gateway("Dynamic consultation against the live gateway")
	catalog := domain.DefaultCatalog()
	service := services.NewConsultationService(log,
		classifier.NewClassifier(log, gw, catalog, "determiner-bot", s.Config.Timeout),
		runtime.NewDispatcher(log, gw, runtime.DispatcherConfig{MaxConcurrency: 4, Timeout: s.Config.Timeout}),
		synthesis.NewSynthesizer(log, gw, synthesis.Config{Endpoint: "medical-advanced", Timeout: s.Config.Timeout}),
		nil,
	)
	ctx, cancel := s.Context()
	defer cancel()

	consultation, err := service.Consult(ctx, services.ConsultationRequest{
		Condition:  s.Config.Condition,
		Task:       "Suggest the next diagnostic steps.",
		Credential: s.Config.GatewayAPIKey,
		Mode:       domain.DynamicMode,
	})

	s.Require().NoError(err)
	s.Require().NotEmpty(consultation.Specialties)
	for _, specialty := range consultation.Specialties {
		s.True(catalog.Contains(specialty), specialty)
	}
	s.Equal(len(consultation.Specialties), consultation.Opinions.Len())
	s.NotEmpty(consultation.Report.Text)
}
