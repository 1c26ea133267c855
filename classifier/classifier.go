// Package classifier maps a free-text condition to the specialties that should be consulted.
package classifier

import (
	"consult-lab/contract"
	"consult-lab/domain"
	"consult-lab/errors"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/samber/lo"
)

var _ contract.IClassifier = (*Classifier)(nil)

// maxReplyExcerpt bounds the classifier reply kept in a ClassificationError.
const maxReplyExcerpt = 512

type reply struct {
	Specialists *[]string `json:"Specialists"`
}

type Classifier struct {
	log      *slog.Logger
	gateway  contract.IGateway
	catalog  domain.SpecialtyCatalog
	endpoint string
	timeout  time.Duration
}

func NewClassifier(log *slog.Logger, gateway contract.IGateway, catalog domain.SpecialtyCatalog,
	endpoint string, timeout time.Duration) *Classifier {
	if timeout <= 0 {
		timeout = domain.DefaultGatewayTimeout
	}
	return &Classifier{
		log:      log,
		gateway:  gateway,
		catalog:  catalog,
		endpoint: endpoint,
		timeout:  timeout,
	}
}

// Prompt is the instruction sent ahead of the condition to the determiner workspace.
func (c *Classifier) Prompt() string {
	return fmt.Sprintf(`You are a medical assistant. Based on the provided medical condition, suggest the most appropriate medical specialty or specialties from the following list:
%s. If the condition requires more than one specialty, suggest all relevant specialties. Provide the response in the following format:

{
   "Specialists": ["<specialty1>", "<specialty2>", ...]
}

Where:

- "Specialists" is an array of specialties relevant to the given medical condition. Add general-practice if needed.

For example:
If the medical condition is "chronic headaches with vision issues", the response should be:
{
    "Specialists": ["neurology", "ophthalmology"]
}
Make sure it is from provided list only with same name.

Medical Condition:`, c.catalog.JSON())
}

// Classify asks the determiner workspace for specialties and keeps those of the catalog.
// Tags outside the catalog are dropped, and a tag proposed twice is kept once at its
// first position. The reply fails only when no catalog tag remains.
// Any failure is a *errors.ClassificationError: a consultation cannot go on without specialties.
func (c *Classifier) Classify(ctx context.Context, condition, credential string) (domain.ClassificationResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := c.gateway.Send(callCtx, domain.GatewayRequest{
		Endpoint:   c.endpoint,
		Prompt:     c.Prompt(),
		Auxiliary:  condition,
		Credential: credential,
	})
	if err != nil {
		return domain.ClassificationResult{}, &errors.ClassificationError{Err: err}
	}
	if domain.IsNoResponse(text) {
		return domain.ClassificationResult{}, &errors.ClassificationError{Reply: text, Err: errors.ErrNoResponse}
	}

	proposed, err := Parse(text)
	if err != nil {
		return domain.ClassificationResult{}, &errors.ClassificationError{Reply: excerpt(text), Err: err}
	}

	kept := c.Filter(proposed)
	if dropped := len(proposed) - len(kept); dropped > 0 {
		c.log.Warn("Classifier proposed specialties outside the catalog",
			"dropped", lo.Without(proposed, kept...))
	}
	if len(kept) == 0 {
		return domain.ClassificationResult{}, &errors.ClassificationError{
			Reply: excerpt(text),
			Err:   errors.ErrNoRecognisedSpecialty,
		}
	}

	c.log.Info("Condition classified", "specialties", kept)
	return domain.ClassificationResult{Specialties: kept}, nil
}

// Parse decodes a {"Specialists": [...]} document. The reply must be JSON as a whole.
func Parse(text string) ([]string, error) {
	var r reply
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &r); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrMalformedClassification, err)
	}
	if r.Specialists == nil {
		return nil, fmt.Errorf("%w: missing Specialists field", errors.ErrMalformedClassification)
	}
	return *r.Specialists, nil
}

// Filter keeps catalog members in reply order, once each.
func (c *Classifier) Filter(specialties []string) []string {
	return lo.Uniq(lo.FilterMap(specialties, func(s string, _ int) (string, bool) {
		s = strings.TrimSpace(s)
		return s, c.catalog.Contains(s)
	}))
}

// excerpt cuts text to at most maxReplyExcerpt bytes without splitting a rune.
func excerpt(text string) string {
	if len(text) <= maxReplyExcerpt {
		return text
	}
	cut := maxReplyExcerpt
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
