// Package tz resolves locations to IANA timezones and evaluates working-hour
// compatibility between zones.
package tz

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"go.uber.org/zap"
)

// FallbackZone is substituted whenever a location cannot be resolved.
// Resolution failure is a soft degradation, never a pipeline abort.
const FallbackZone = "UTC"

// ErrUnknownLocation marks a definitive miss: the location is well-formed but
// not covered by the lookup. It is not retried.
var ErrUnknownLocation = errors.New("unknown location")

// Resolver maps free-text locations to IANA timezone names. Implementations
// must never fail: unresolved locations yield FallbackZone with resolved=false
// so reporting can flag uncertain compatibility scores.
type Resolver interface {
	Resolve(ctx context.Context, location string) (zone string, resolved bool)
}

// LookupFunc is a single resolution attempt against a backend (static table,
// geocoding API). It may be slow and may fail transiently.
type LookupFunc func(ctx context.Context, location string) (string, error)

// Service wraps a lookup backend with a per-call timeout and retries, and
// swallows all failures into the UTC fallback.
type Service struct {
	lookup   LookupFunc
	logger   *zap.Logger
	timeout  time.Duration
	attempts uint
}

func NewService(lookup LookupFunc, logger *zap.Logger) *Service {
	if lookup == nil {
		lookup = TableLookup
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		lookup:   lookup,
		logger:   logger,
		timeout:  10 * time.Second,
		attempts: 3,
	}
}

func (s *Service) Resolve(ctx context.Context, location string) (string, bool) {
	location = strings.TrimSpace(location)
	if location == "" {
		return FallbackZone, false
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var zone string
	err := retry.Do(
		func() error {
			var err error
			zone, err = s.lookup(ctx, location)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(s.attempts),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			// An unknown location is definitive; only transient failures retry.
			return err != nil && !errors.Is(err, ErrUnknownLocation)
		}),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Debug("retrying timezone lookup",
				zap.Uint("attempt", n+1),
				zap.String("location", location),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		s.logger.Warn("timezone resolution failed, falling back to UTC",
			zap.String("location", location),
			zap.Error(err),
		)
		return FallbackZone, false
	}

	return zone, true
}

// TableLookup resolves against the built-in city and country table.
func TableLookup(_ context.Context, location string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(location))
	if zone, ok := knownCities[key]; ok {
		return zone, nil
	}
	for _, entry := range countryZones {
		if strings.Contains(key, entry.keyword) {
			return entry.zone, nil
		}
	}
	return "", ErrUnknownLocation
}

// knownCities maps normalized city strings to their timezones.
var knownCities = map[string]string{
	"bogota, colombia":                 "America/Bogota",
	"bogota":                           "America/Bogota",
	"medellin, colombia":               "America/Bogota",
	"santo domingo, dominican republic": "America/Santo_Domingo",
	"santo domingo":                    "America/Santo_Domingo",
	"buenos aires, argentina":          "America/Argentina/Buenos_Aires",
	"buenos aires":                     "America/Argentina/Buenos_Aires",
	"lima, peru":                       "America/Lima",
	"lima":                             "America/Lima",
	"mexico city, mexico":              "America/Mexico_City",
	"mexico city":                      "America/Mexico_City",
	"santiago, chile":                  "America/Santiago",
	"santiago":                         "America/Santiago",
	"sao paulo, brazil":                "America/Sao_Paulo",
	"sao paulo":                        "America/Sao_Paulo",
	"caracas, venezuela":               "America/Caracas",
	"montevideo, uruguay":              "America/Montevideo",
	"new york, usa":                    "America/New_York",
	"new york":                         "America/New_York",
	"nyc":                              "America/New_York",
	"san francisco, usa":               "America/Los_Angeles",
	"san francisco":                    "America/Los_Angeles",
	"los angeles":                      "America/Los_Angeles",
	"austin, texas":                    "America/Chicago",
	"austin":                           "America/Chicago",
	"chicago":                          "America/Chicago",
	"toronto, canada":                  "America/Toronto",
	"toronto":                          "America/Toronto",
	"madrid, spain":                    "Europe/Madrid",
	"madrid":                           "Europe/Madrid",
	"barcelona, spain":                 "Europe/Madrid",
	"barcelona":                        "Europe/Madrid",
	"london, uk":                       "Europe/London",
	"london":                           "Europe/London",
	"paris, france":                    "Europe/Paris",
	"paris":                            "Europe/Paris",
	"berlin, germany":                  "Europe/Berlin",
	"berlin":                           "Europe/Berlin",
	"lisbon, portugal":                 "Europe/Lisbon",
	"lisbon":                           "Europe/Lisbon",
	"rome, italy":                      "Europe/Rome",
}

// countryZones is scanned in order after the exact city table misses; the
// zone is the country's most common business timezone.
var countryZones = []struct {
	keyword string
	zone    string
}{
	{"colombia", "America/Bogota"},
	{"dominican", "America/Santo_Domingo"},
	{"argentina", "America/Argentina/Buenos_Aires"},
	{"peru", "America/Lima"},
	{"mexico", "America/Mexico_City"},
	{"chile", "America/Santiago"},
	{"brazil", "America/Sao_Paulo"},
	{"venezuela", "America/Caracas"},
	{"ecuador", "America/Guayaquil"},
	{"uruguay", "America/Montevideo"},
	{"paraguay", "America/Asuncion"},
	{"bolivia", "America/La_Paz"},
	{"united states", "America/New_York"},
	{"usa", "America/New_York"},
	{"canada", "America/Toronto"},
	{"california", "America/Los_Angeles"},
	{"spain", "Europe/Madrid"},
	{"uk", "Europe/London"},
	{"united kingdom", "Europe/London"},
	{"france", "Europe/Paris"},
	{"germany", "Europe/Berlin"},
	{"italy", "Europe/Rome"},
	{"portugal", "Europe/Lisbon"},
}
