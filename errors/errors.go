package errors

import (
	"fmt"
	"strings"
)

var (
	ErrNoResponse              = fmt.Errorf("no response received")
	ErrMalformedClassification = fmt.Errorf("classifier reply is not a valid specialists document")
	ErrNoRecognisedSpecialty   = fmt.Errorf("classifier returned no specialty from the catalog")
	ErrNoSpecialty             = fmt.Errorf("no specialty to consult")
	ErrSpecialistPanic         = fmt.Errorf("specialist call panicked")
	ErrNoSuccessfulOpinion     = fmt.Errorf("no specialist opinion succeeded")
	ErrNotEnoughOpinions       = fmt.Errorf("not enough specialist opinions succeeded")
	ErrConsultationNotFound    = fmt.Errorf("consultation not found")
	ErrInvalidConfig           = fmt.Errorf("invalid configuration")
)

// Stage names the pipeline step an error comes from.
type Stage string

const (
	StageGateway        Stage = "gateway"
	StageClassification Stage = "classification"
	StageSpecialist     Stage = "specialist"
	StageSynthesis      Stage = "synthesis"
)

// GatewayError is returned by the gateway client for transport failures,
// timeouts and non-200 answers.
type GatewayError struct {
	Endpoint    string
	StatusCode  int
	Description string
	Timeout     bool
	Err         error
}

func (e *GatewayError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "gateway endpoint %q", e.Endpoint)
	switch {
	case e.Timeout:
		sb.WriteString(" timed out")
	case e.StatusCode != 0:
		fmt.Fprintf(&sb, " answered with status %d", e.StatusCode)
	default:
		sb.WriteString(" failed")
	}
	if e.Description != "" {
		fmt.Fprintf(&sb, ": %s", e.Description)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

func (e *GatewayError) Unwrap() error { return e.Err }

func (e *GatewayError) Stage() Stage { return StageGateway }

// ClassificationError is fatal to a consultation: nothing is dispatched.
type ClassificationError struct {
	Reply string
	Err   error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classification failed: %v", e.Err)
}

func (e *ClassificationError) Unwrap() error { return e.Err }

func (e *ClassificationError) Stage() Stage { return StageClassification }

// SpecialistFailure stays local to one specialty.
type SpecialistFailure struct {
	Specialty string
	Attempts  int
	Err       error
}

func (e *SpecialistFailure) Error() string {
	return fmt.Sprintf("specialist %q failed after %d attempt(s): %v", e.Specialty, e.Attempts, e.Err)
}

func (e *SpecialistFailure) Unwrap() error { return e.Err }

func (e *SpecialistFailure) Stage() Stage { return StageSpecialist }

// SynthesisError means no final report, the specialist opinions remain usable.
type SynthesisError struct {
	Excluded int
	Err      error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesis failed (%d opinion(s) excluded): %v", e.Excluded, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

func (e *SynthesisError) Stage() Stage { return StageSynthesis }

// StageOf reports the outermost stage carried by err, or "" when none.
func StageOf(err error) Stage {
	for err != nil {
		if s, ok := err.(interface{ Stage() Stage }); ok {
			return s.Stage()
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
