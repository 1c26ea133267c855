package services

import (
	"consult-lab/contract"
	"consult-lab/domain"
	"consult-lab/errors"
	"consult-lab/repositories"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// ConsultationRequest is everything a caller provides for one consultation.
// Specialties are only read in static mode, where they bypass the catalog.
type ConsultationRequest struct {
	Condition   string      `validate:"required"`
	Credential  string      `validate:"required"`
	Mode        domain.Mode `validate:"required,oneof=static dynamic"`
	Specialties []string    `validate:"dive,required"`
	Task        string
}

type IConsultationService interface {
	Consult(ctx context.Context, request ConsultationRequest) (domain.Consultation, error)
}

// ConsultationService chains classification, dispatch and synthesis.
type ConsultationService struct {
	log         *slog.Logger
	classifier  contract.IClassifier
	dispatcher  contract.IDispatcher
	synthesizer contract.ISynthesizer
	repository  repositories.IConsultationRepository
	now         func() time.Time
}

// NewConsultationService wires the pipeline. repository may be nil, nothing is stored then.
func NewConsultationService(log *slog.Logger,
	classifier contract.IClassifier,
	dispatcher contract.IDispatcher,
	synthesizer contract.ISynthesizer,
	repository repositories.IConsultationRepository,
) *ConsultationService {
	return &ConsultationService{
		log:         log,
		classifier:  classifier,
		dispatcher:  dispatcher,
		synthesizer: synthesizer,
		repository:  repository,
		now:         time.Now,
	}
}

func ValidateRequest(request ConsultationRequest) error {
	return validate.Struct(request)
}

// Consult runs one consultation.
//
// A validation or classification error is returned before any specialist is
// contacted, with a zero Consultation. A synthesis error is returned together
// with a Consultation still holding every specialist opinion, its Report carries
// the same error.
func (s *ConsultationService) Consult(ctx context.Context, request ConsultationRequest) (domain.Consultation, error) {
	if err := ValidateRequest(request); err != nil {
		return domain.Consultation{}, fmt.Errorf("invalid consultation request: %w", err)
	}

	specialties, err := s.selectSpecialties(ctx, request)
	if err != nil {
		return domain.Consultation{}, err
	}
	if len(specialties) == 0 {
		return domain.Consultation{}, errors.ErrNoSpecialty
	}

	consultation := domain.Consultation{
		ID:          uuid.New(),
		Condition:   request.Condition,
		Task:        request.Task,
		Mode:        request.Mode,
		Specialties: specialties,
		CreatedAt:   s.now(),
	}
	log := s.log.With("consultation", consultation.ID)

	consultation.Opinions = s.dispatcher.Dispatch(ctx, specialties, request.Condition, request.Task, request.Credential)
	log.Info("Specialist opinions collected",
		"succeeded", consultation.Opinions.SuccessCount(),
		"failed", consultation.Opinions.FailureCount())

	report, err := s.synthesizer.Synthesize(ctx, consultation.Opinions, request.Credential)
	consultation.Report = report
	if err != nil {
		consultation.Report.Err = err
	}

	s.store(log, consultation)
	return consultation, err
}

func (s *ConsultationService) selectSpecialties(ctx context.Context, request ConsultationRequest) ([]string, error) {
	if request.Mode == domain.StaticMode {
		s.log.Info("Using caller specialties", "specialties", request.Specialties)
		return request.Specialties, nil
	}
	result, err := s.classifier.Classify(ctx, request.Condition, request.Credential)
	if err != nil {
		s.log.Error("Classification failed, nothing dispatched", "error", err)
		return nil, err
	}
	return result.Specialties, nil
}

func (s *ConsultationService) store(log *slog.Logger, consultation domain.Consultation) {
	if s.repository == nil {
		return
	}
	if err := s.repository.Store(consultation); err != nil {
		log.Error("Unable to store consultation", "error", err)
		return
	}
	log.Debug("Consultation stored")
}
