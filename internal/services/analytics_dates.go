package services

import (
	"time"

	"github.com/finora-app/finora-backend/internal/dto"
	"github.com/finora-app/finora-backend/internal/errs"
)

// resolveRangePreset turns a named range into explicit UTC calendar bounds.
// "this_*" presets run up to the current day.
func resolveRangePreset(preset string, now time.Time) (from, to time.Time, err error) {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch preset {
	case dto.RangeThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), today, nil
	case dto.RangeLastMonth:
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		lastOfPrev := firstOfMonth.AddDate(0, 0, -1)
		firstOfPrev := time.Date(lastOfPrev.Year(), lastOfPrev.Month(), 1, 0, 0, 0, 0, time.UTC)
		return firstOfPrev, lastOfPrev, nil
	case dto.RangeThisQuarter:
		return firstOfQuarter(now), today, nil
	case dto.RangeLastQuarter:
		f, l := prevQuarter(now)
		return f, l, nil
	case dto.RangeThisYear:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC), today, nil
	case dto.RangeLastYear:
		return time.Date(now.Year()-1, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(now.Year()-1, 12, 31, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, time.Time{}, errs.NewValidationError("unknown date range preset: " + preset)
}

// --- Calendar helpers ---

func firstOfQuarter(t time.Time) time.Time {
	m := int(t.Month())
	qStart := ((m-1)/3)*3 + 1
	return time.Date(t.Year(), time.Month(qStart), 1, 0, 0, 0, 0, t.Location())
}

func prevQuarter(t time.Time) (first, last time.Time) {
	thisFirst := firstOfQuarter(t)
	last = thisFirst.AddDate(0, 0, -1)
	first = firstOfQuarter(last)
	return
}
