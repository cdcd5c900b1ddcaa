package triage

import (
	"slices"
	"strings"

	"github.com/custodia-labs/sahaaya/internal/core/domain"
)

// emergencyTypePriority orders emergency types when several match.
var emergencyTypePriority = []string{
	domain.EmergencyCardiac,
	domain.EmergencyRespiratory,
	domain.EmergencyUnconscious,
	domain.EmergencyBleeding,
	domain.EmergencyBurns,
	domain.EmergencyPoisoning,
}

// RankResources filters resources by query, then orders them emergency
// capable first, nearest next, and by name on ties. The result holds at
// most query.EffectiveLimit() entries. The input is not modified.
func RankResources(resources []domain.LocalResource, query domain.ResourceQuery) []domain.LocalResource {
	out := make([]domain.LocalResource, 0, len(resources))
	for _, r := range resources {
		if query.Matches(r) {
			out = append(out, r)
		}
	}

	slices.SortStableFunc(out, func(a, b domain.LocalResource) int {
		if a.EmergencyAvailable != b.EmergencyAvailable {
			if a.EmergencyAvailable {
				return -1
			}
			return 1
		}
		if a.DistanceKm != b.DistanceKm {
			if a.DistanceKm < b.DistanceKm {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})

	if limit := query.EffectiveLimit(); len(out) > limit {
		out = out[:limit]
	}
	return out
}

// PrimaryEmergencyType returns the most critical of types, or "" if none.
// Types outside the known priority list rank last, in input order.
func PrimaryEmergencyType(types []string) string {
	best, bestRank := "", len(emergencyTypePriority)+1
	for _, t := range types {
		rank := slices.Index(emergencyTypePriority, t)
		if rank < 0 {
			rank = len(emergencyTypePriority)
		}
		if rank < bestRank {
			best, bestRank = t, rank
		}
	}
	return best
}
