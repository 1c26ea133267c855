package runtime

import "consult-lab/domain"

// Aggregate wraps dispatcher results without filtering, deduplicating or reordering them.
// Failed entries keep their place so a display can still show which specialist failed.
func Aggregate(results []domain.SpecialistResult) domain.AggregatedResponses {
	return domain.NewAggregatedResponses(results)
}
