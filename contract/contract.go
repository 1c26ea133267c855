//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"consult-lab/domain"
	"context"
)

// IGateway sends one chat message to a named workspace of the model gateway.
type IGateway interface {
	Send(ctx context.Context, request domain.GatewayRequest) (string, error)
}

type IClassifier interface {
	Classify(ctx context.Context, condition, credential string) (domain.ClassificationResult, error)
}

// IDispatcher never fails as a whole: every specialty gets its own result.
type IDispatcher interface {
	Dispatch(ctx context.Context, specialties []string, condition, task, credential string) domain.AggregatedResponses
}

type ISynthesizer interface {
	Synthesize(ctx context.Context, aggregated domain.AggregatedResponses, credential string) (domain.FinalReport, error)
}
