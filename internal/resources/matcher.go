package resources

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/rs/zerolog"
)

// ErrStoreUnavailable marks a missing or unreachable resource store. It is
// recovered inside the matcher and never surfaces to callers.
var ErrStoreUnavailable = errors.New("resource store unavailable")

const (
	// DefaultMaxDistance is the search radius in miles when the caller does
	// not specify one.
	DefaultMaxDistance = 50.0

	maxResults       = 10
	earthRadiusMiles = 3958.8
)

// Matcher filters and ranks facilities by distance and triage-level
// eligibility. It never fails: with no working store it serves a fixed
// fallback list, so callers only ever see an ordered (possibly empty) set.
type Matcher struct {
	repo Repository
	log  zerolog.Logger
}

func NewMatcher(repo Repository, log zerolog.Logger) *Matcher {
	return &Matcher{repo: repo, log: log}
}

// Find returns at most 10 facilities within maxDistance miles of origin,
// eligible for the given triage level, sorted ascending by distance (stable
// with respect to store order on ties).
func (m *Matcher) Find(ctx context.Context, origin Coordinates, triageLevel string, maxDistance float64) []Resource {
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}

	candidates, err := m.listCandidates(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("resource store unavailable, serving fallback list")
		return FallbackResources()
	}

	matched := make([]Resource, 0, len(candidates))
	for _, res := range candidates {
		distance := haversineMiles(origin, res.Coordinates)
		if distance > maxDistance {
			continue
		}
		if !eligibleForLevel(triageLevel, res.Type) {
			continue
		}
		res.Distance = roundMiles(distance)
		matched = append(matched, res)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Distance < matched[j].Distance
	})

	if len(matched) > maxResults {
		matched = matched[:maxResults]
	}
	return matched
}

func (m *Matcher) listCandidates(ctx context.Context) ([]Resource, error) {
	if m.repo == nil {
		return nil, ErrStoreUnavailable
	}
	return m.repo.ListAll(ctx)
}

// eligibleForLevel maps triage level to acceptable facility types: emergency
// admits hospitals only, urgent admits hospitals and urgent care, everything
// else admits all types.
func eligibleForLevel(triageLevel, facilityType string) bool {
	switch triageLevel {
	case "emergency":
		return facilityType == TypeHospital
	case "urgent":
		return facilityType == TypeHospital || facilityType == TypeUrgentCare
	default:
		return true
	}
}

func haversineMiles(a, b Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(h))
}

func roundMiles(d float64) float64 {
	return math.Round(d*10) / 10
}

// FallbackResources is the documented degraded-mode result: one hospital and
// one urgent care entry with fixed distances.
func FallbackResources() []Resource {
	return []Resource{
		{
			ID:               "mock_1",
			Name:             "City General Hospital",
			Type:             TypeHospital,
			Address:          "123 Medical Center Dr, San Francisco, CA",
			Distance:         2.1,
			Phone:            "(555) 123-4567",
			Hours:            "24/7",
			AcceptsInsurance: true,
			FinancialAid:     true,
			Rating:           4.8,
			Coordinates:      Coordinates{Lat: 37.7749, Lng: -122.4194},
			Specialties:      []string{"emergency", "trauma"},
			WaitTime:         "2-4 hours",
		},
		{
			ID:               "mock_2",
			Name:             "Urgent Care Express",
			Type:             TypeUrgentCare,
			Address:          "456 Health Plaza, San Francisco, CA",
			Distance:         1.3,
			Phone:            "(555) 987-6543",
			Hours:            "8AM-10PM",
			AcceptsInsurance: true,
			FinancialAid:     false,
			Rating:           4.5,
			Coordinates:      Coordinates{Lat: 37.7849, Lng: -122.4094},
			Specialties:      []string{"urgent_care"},
			WaitTime:         "30-60 minutes",
		},
	}
}
