package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Mode selects how the specialties of a consultation are chosen.
type Mode string

const (
	// DynamicMode asks the classifier which specialties are relevant.
	DynamicMode Mode = "dynamic"
	// StaticMode dispatches the caller's specialties verbatim.
	StaticMode Mode = "static"
)

// ClassificationResult lists the specialties chosen for a condition, in classifier order.
type ClassificationResult struct {
	Specialties []string
}

func (c ClassificationResult) IsEmpty() bool {
	return len(c.Specialties) == 0
}

// GatewayRequest is one chat call against a named workspace of the gateway.
type GatewayRequest struct {
	Endpoint   string
	Prompt     string
	Auxiliary  string
	Credential string
}

// SpecialistQuery is what the dispatcher sends for one specialty.
type SpecialistQuery struct {
	Specialty string
	Prompt    string
	Condition string
}

// SpecialistResult holds either the response of a specialist or the failure that prevented it.
type SpecialistResult struct {
	Specialty string
	Response  string
	Err       error
	Duration  time.Duration
}

func (r SpecialistResult) Succeeded() bool {
	return r.Err == nil
}

// AggregatedResponses keeps specialist results in dispatch order.
// Entries are never reordered, filtered or deduplicated.
type AggregatedResponses struct {
	results []SpecialistResult
}

func NewAggregatedResponses(results []SpecialistResult) AggregatedResponses {
	return AggregatedResponses{results: append([]SpecialistResult(nil), results...)}
}

func (a AggregatedResponses) Results() []SpecialistResult {
	return append([]SpecialistResult(nil), a.results...)
}

func (a AggregatedResponses) Len() int {
	return len(a.results)
}

func (a AggregatedResponses) Succeeded() []SpecialistResult {
	return lo.Filter(a.results, func(r SpecialistResult, _ int) bool { return r.Succeeded() })
}

func (a AggregatedResponses) Failed() []SpecialistResult {
	return lo.Filter(a.results, func(r SpecialistResult, _ int) bool { return !r.Succeeded() })
}

func (a AggregatedResponses) SuccessCount() int {
	return lo.CountBy(a.results, func(r SpecialistResult) bool { return r.Succeeded() })
}

func (a AggregatedResponses) FailureCount() int {
	return len(a.results) - a.SuccessCount()
}

// FinalReport is the synthesized report, or the reason it could not be produced.
type FinalReport struct {
	Text string
	Err  error
}

func (r FinalReport) Succeeded() bool {
	return r.Err == nil
}

// Consultation is the outcome of one pipeline run, handed to display, export and storage.
type Consultation struct {
	ID          uuid.UUID
	Condition   string
	Task        string
	Mode        Mode
	Specialties []string
	Opinions    AggregatedResponses
	Report      FinalReport
	CreatedAt   time.Time
}

// DefaultGatewayTimeout bounds one gateway call when a component is built without a timeout.
const DefaultGatewayTimeout = 60 * time.Second

// NoResponse stands in for the text of a gateway answer that carried none.
// It never counts as an opinion.
const NoResponse = "No response received."

// IsNoResponse reports whether text carries nothing usable: the NoResponse
// placeholder, an empty answer or whitespace only.
func IsNoResponse(text string) bool {
	return text == NoResponse || strings.TrimSpace(text) == ""
}
