package classifier

import (
	"consult-lab/domain"
	"consult-lab/errors"
	"consult-lab/mocks"
	"context"
	stderrors "errors"
	"log/slog"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const condition = "chronic headaches with vision issues"

func newClassifier(t *testing.T) (*Classifier, *mocks.MockIGateway) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockIGateway(ctrl)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	return NewClassifier(log, gw, domain.DefaultCatalog(), "determiner-bot", time.Second), gw
}

func TestClassifier_Classify_Returns_Catalog_Specialties(t *testing.T) {
	req := require.New(t)
	c, gw := newClassifier(t)

	// Given a determiner answering with two known specialties
	gw.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, r domain.GatewayRequest) (string, error) {
			_, hasDeadline := ctx.Deadline()
			req.True(hasDeadline)
			req.Equal("determiner-bot", r.Endpoint)
			req.Equal(condition, r.Auxiliary)
			req.Equal("key", r.Credential)
			req.Contains(r.Prompt, `"pulmonary-and-critical-care"`)
			req.Contains(r.Prompt, `"Specialists"`)
			return `{"Specialists": ["neurology", "ophthalmology"]}`, nil
		}).Times(1)

	// When classifying the condition
	result, err := c.Classify(context.Background(), condition, "key")

	// Then both specialties are kept in order
	req.NoError(err)
	req.Equal([]string{"neurology", "ophthalmology"}, result.Specialties)
}

func TestClassifier_Classify_Failures(t *testing.T) {
	tests := []struct {
		description string
		reply       string
		gatewayErr  error
		wantErr     error
	}{
		{
			"Should fail on a reply that is not JSON",
			"I think you should see a neurologist",
			nil,
			errors.ErrMalformedClassification,
		},
		{
			"Should fail on a JSON reply wrapped in prose",
			`Sure! {"Specialists": ["neurology"]}`,
			nil,
			errors.ErrMalformedClassification,
		},
		{
			"Should fail on a JSON reply without Specialists",
			`{"Specialties": ["neurology"]}`,
			nil,
			errors.ErrMalformedClassification,
		},
		{
			"Should fail when no specialty belongs to the catalog",
			`{"Specialists": ["neurologist", "ophthalmologist"]}`,
			nil,
			errors.ErrNoRecognisedSpecialty,
		},
		{
			"Should fail on an empty specialists list",
			`{"Specialists": []}`,
			nil,
			errors.ErrNoRecognisedSpecialty,
		},
		{
			"Should fail on the no response placeholder",
			domain.NoResponse,
			nil,
			errors.ErrNoResponse,
		},
		{
			"Should fail when the gateway fails",
			"",
			&errors.GatewayError{Endpoint: "determiner-bot", StatusCode: 500},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req := require.New(t)
			c, gw := newClassifier(t)
			gw.EXPECT().Send(gomock.Any(), gomock.Any()).Return(tt.reply, tt.gatewayErr).Times(1)

			result, err := c.Classify(context.Background(), condition, "key")

			req.True(result.IsEmpty())
			var classificationErr *errors.ClassificationError
			req.True(stderrors.As(err, &classificationErr))
			req.Equal(errors.StageClassification, errors.StageOf(err))
			if tt.wantErr == nil {
				var gatewayErr *errors.GatewayError
				req.ErrorAs(err, &gatewayErr)
				return
			}
			req.ErrorIs(err, tt.wantErr)
		})
	}
}

func TestClassifier_Classify_Timeout(t *testing.T) {
	req := require.New(t)
	gw := mocks.NewStubGateway(map[string]string{"determiner-bot": `{"Specialists": ["neurology"]}`})
	gw.Delays["determiner-bot"] = time.Second
	c := NewClassifier(logs.GetLoggerFromLevel(slog.LevelDebug), gw, domain.DefaultCatalog(),
		"determiner-bot", 20*time.Millisecond)

	result, err := c.Classify(context.Background(), condition, "key")

	req.True(result.IsEmpty())
	req.Equal(errors.StageClassification, errors.StageOf(err))
	var gatewayErr *errors.GatewayError
	req.ErrorAs(err, &gatewayErr)
	req.True(gatewayErr.Timeout)
	req.ErrorIs(err, context.DeadlineExceeded)
}

func TestNewClassifier_Zero_Timeout_Uses_Default(t *testing.T) {
	c := NewClassifier(logs.GetLoggerFromLevel(slog.LevelDebug), mocks.NewStubGateway(nil),
		domain.DefaultCatalog(), "determiner-bot", 0)

	require.Equal(t, domain.DefaultGatewayTimeout, c.timeout)
}

func TestClassifier_Classify_Drops_Unknown_And_Duplicate_Specialties(t *testing.T) {
	req := require.New(t)
	c, gw := newClassifier(t)
	gw.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return("\n {\"Specialists\": [\"cardiology\", \"astrology\", \" neurology \", \"cardiology\"]} \n", nil)

	result, err := c.Classify(context.Background(), condition, "key")

	req.NoError(err)
	req.Equal([]string{"cardiology", "neurology"}, result.Specialties)
}

// Every kept specialty must belong to the catalog whatever the classifier proposes.
func TestClassifier_Filter_Catalog_Membership(t *testing.T) {
	req := require.New(t)
	catalog := domain.NewSpecialtyCatalog("neurology", "cardiology", "nursing")
	c := NewClassifier(slog.Default(), nil, catalog, "determiner-bot", time.Second)

	proposals := [][]string{
		{},
		{"neurology"},
		{"oncology", "NEUROLOGY", "nursing"},
		{"cardiology", "cardiology", "dermatology", "neurology"},
		strings.Fields("a b c nursing d"),
	}
	for _, proposal := range proposals {
		for _, kept := range c.Filter(proposal) {
			req.True(catalog.Contains(kept), kept)
		}
	}
}

func TestParse(t *testing.T) {
	req := require.New(t)

	specialties, err := Parse(`{"Specialists": ["neurology", "ophthalmology"]}`)
	req.NoError(err)
	req.Equal([]string{"neurology", "ophthalmology"}, specialties)

	_, err = Parse("```json\n{\"Specialists\": [\"neurology\"]}\n```")
	req.ErrorIs(err, errors.ErrMalformedClassification)
}

func TestExcerpt_Keeps_Runes_Whole(t *testing.T) {
	req := require.New(t)

	// "é" spans bytes 511 and 512, the cut lands inside it
	text := strings.Repeat("a", maxReplyExcerpt-1) + "é" + strings.Repeat("b", 100)
	cut := excerpt(text)

	req.True(utf8.ValidString(cut))
	req.Equal(strings.Repeat("a", maxReplyExcerpt-1)+"...", cut)
	req.Equal("short reply", excerpt("short reply"))
}
