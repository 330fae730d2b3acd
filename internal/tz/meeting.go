package tz

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrNoZones is returned when a meeting suggestion is requested with no
// zones. It is an expected, displayable outcome for callers.
var ErrNoZones = errors.New("no zones provided")

// NoSuitableTime is the sentinel recommendation emitted when no hourly slot
// lands inside any zone's working window.
const NoSuitableTime = "No suitable time found"

// MeetingSuggestion is the result of the hourly-slot search. Suitable is
// false only when no slot worked for any zone; UTCHour and LocalTimes are
// meaningless in that case.
type MeetingSuggestion struct {
	UTCHour        int
	Zones          int
	Recommendation string
	LocalTimes     []string
	Suitable       bool
}

// SuggestMeetingTime scans the 24 hourly UTC slots and picks the one whose
// local time falls inside the working window for the most zones. Ties go to
// the earliest hour: the scan runs 0 to 23 with a strict greater-than
// comparison, so a later slot with an equal count never wins.
func (a *Assessor) SuggestMeetingTime(zones []string) (*MeetingSuggestion, error) {
	if len(zones) == 0 {
		return nil, ErrNoZones
	}

	locations := make([]*time.Location, 0, len(zones))
	for _, zone := range zones {
		loc, err := time.LoadLocation(zone)
		if err != nil {
			return nil, fmt.Errorf("loading timezone %q: %w", zone, err)
		}
		locations = append(locations, loc)
	}

	year, month, day := a.now().UTC().Date()

	bestHour := 0
	maxCount := 0
	for hour := 0; hour < 24; hour++ {
		instant := time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
		count := 0
		for _, loc := range locations {
			if a.inWorkingWindow(instant.In(loc)) {
				count++
			}
		}
		if count > maxCount {
			maxCount = count
			bestHour = hour
		}
	}

	// A full scan with zero hits is the genuine no-suitable-time condition,
	// independent of whichever hour happened to be examined last.
	if maxCount == 0 {
		a.logger.Warn("no meeting slot fits any zone", zap.Strings("zones", zones))
		return &MeetingSuggestion{Recommendation: NoSuitableTime}, nil
	}

	best := time.Date(year, month, day, bestHour, 0, 0, 0, time.UTC)
	localTimes := make([]string, 0, len(zones))
	for i, zone := range zones {
		localTimes = append(localTimes, fmt.Sprintf("%s: %s", zone, best.In(locations[i]).Format("03:04 PM")))
	}

	return &MeetingSuggestion{
		UTCHour:        bestHour,
		Zones:          maxCount,
		Recommendation: fmt.Sprintf("Suggested meeting time: %s UTC", best.Format("03:04 PM")),
		LocalTimes:     localTimes,
		Suitable:       true,
	}, nil
}

// inWorkingWindow tests wall-clock membership in [WorkStart:00, WorkEnd:00],
// inclusive on both ends.
func (a *Assessor) inWorkingWindow(t time.Time) bool {
	minutes := t.Hour()*60 + t.Minute()
	return minutes >= a.cfg.WorkStart*60 && minutes <= a.cfg.WorkEnd*60
}
