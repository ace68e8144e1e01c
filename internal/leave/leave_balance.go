package leave

import (
	"math"
	"time"
)

const (
	annualVacationDays = 30.0
	daysPerYear        = 365.0
)

// Balance is the vacation entitlement of one employee at a point in time.
type Balance struct {
	TotalAccruedDays float64
	DaysTaken        float64
	PendingDays      float64
	RemainingDays    float64
}

// Available is what a new submission may still claim: pending requests hold their days.
func (b Balance) Available() float64 {
	return round1(b.RemainingDays - b.PendingDays)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// employedDays is the fractional number of days since hiredAt, never negative.
func employedDays(hiredAt, now time.Time) float64 {
	if now.Before(hiredAt) {
		return 0
	}
	return now.Sub(hiredAt).Hours() / 24
}

// DaysEmployed counts whole days elapsed since hiredAt, for display.
func DaysEmployed(hiredAt, now time.Time) int {
	return int(employedDays(hiredAt, now))
}

// ComputeBalance accrues 30 days a year pro rata and subtracts approved vacations.
// Pending vacations are reported separately and do not reduce RemainingDays.
func ComputeBalance(hiredAt, now time.Time, vacations []Request) Balance {
	accrued := round1(annualVacationDays * employedDays(hiredAt, now) / daysPerYear)

	var taken, pending int
	for _, v := range vacations {
		switch v.Status {
		case StatusApproved:
			taken += InclusiveDays(v.StartDate, v.EndDate)
		case StatusPending:
			pending += InclusiveDays(v.StartDate, v.EndDate)
		case StatusDenied:
		}
	}

	return Balance{
		TotalAccruedDays: accrued,
		DaysTaken:        float64(taken),
		PendingDays:      float64(pending),
		RemainingDays:    round1(accrued - float64(taken)),
	}
}
