package ledger

import (
	"fmt"
	"time"

	"github.com/danukusuma/mutasi/internal/service"
)

// Zone is the civil calendar every date filter is interpreted in. A "day"
// is [00:00:00.000+07:00, 23:59:59.999+07:00] regardless of where the
// operator sits.
var Zone = time.FixedZone("UTC+7", 7*60*60)

const dayLayout = "2006-01-02"

// DayBounds converts an inclusive civil-date range into instant bounds:
// start at 00:00:00.000 and end at 23:59:59.999, both in Zone. Either side
// may be empty; an empty pair yields a nil range.
func DayBounds(startDate, endDate string) (*service.DateRange, error) {
	if startDate == "" && endDate == "" {
		return nil, nil
	}
	if startDate == "" {
		startDate = endDate
	}
	if endDate == "" {
		endDate = startDate
	}

	start, err := time.ParseInLocation(dayLayout, startDate, Zone)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := time.ParseInLocation(dayLayout, endDate, Zone)
	if err != nil {
		return nil, fmt.Errorf("invalid finish date %q: %w", endDate, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("finish date %s is before start date %s", endDate, startDate)
	}

	r := service.DateRange{
		Start: start,
		End:   time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999_000_000, Zone),
	}
	return &r, nil
}
