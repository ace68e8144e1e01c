package workschedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const minutesPerDay = 24 * 60

// Clock is a time of day stored as minutes past midnight.
type Clock int

func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock accepts "15:04" or "15:04:05"; seconds are dropped.
func ParseClock(s string) (Clock, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewClock(t.Hour(), t.Minute()), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) Duration() time.Duration {
	return time.Duration(c) * time.Minute
}

type WorkSchedule struct {
	ID                 uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name               string    `gorm:"column:name;type:varchar(50);not null"`
	Description        string    `gorm:"column:description;type:varchar(200)"`
	StartTime          Clock     `gorm:"column:start_minute;not null"`
	EndTime            Clock     `gorm:"column:end_minute;not null"`
	RequiredWorkHours  int       `gorm:"column:required_work_hours;not null;default:8"`
	MinimumWorkMinutes int       `gorm:"column:minimum_work_minutes;not null;default:480"`
	MaxLatenessMinutes int       `gorm:"column:max_lateness_minutes;not null;default:15"`
	IsActive           bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt          time.Time `gorm:"column:created_at"`
}

func (WorkSchedule) TableName() string {
	return "work_schedules"
}

// Overnight reports whether the shift ends on the following day.
func (s WorkSchedule) Overnight() bool {
	return s.EndTime < s.StartTime
}

func timeOfDay(t time.Time) time.Duration {
	h, m, sec := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second
}

// IsWithinWorkHours checks the wall clock of t against the schedule,
// wrapping past midnight for overnight shifts.
func (s WorkSchedule) IsWithinWorkHours(t time.Time) bool {
	tod := timeOfDay(t)
	start, end := s.StartTime.Duration(), s.EndTime.Duration()
	if s.Overnight() {
		return tod >= start || tod <= end
	}
	return tod >= start && tod <= end
}

// ScheduledMinutes is the length of the shift; overnight shifts add a day.
func (s WorkSchedule) ScheduledMinutes() int {
	span := int(s.EndTime - s.StartTime)
	if s.Overnight() {
		span += minutesPerDay
	}
	return span
}

// Lateness is how far the check-in wall clock is past the start time, never negative.
func (s WorkSchedule) Lateness(checkIn time.Time) time.Duration {
	late := timeOfDay(checkIn) - s.StartTime.Duration()
	if late < 0 {
		return 0
	}
	return late
}

func (s WorkSchedule) IsLate(checkIn time.Time) bool {
	return s.Lateness(checkIn) > time.Duration(s.MaxLatenessMinutes)*time.Minute
}
