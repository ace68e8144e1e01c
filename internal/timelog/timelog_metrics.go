package timelog

import (
	"context"
	"fmt"
	"time"

	"github.com/Sedmeq/WorkTrack/internal/shared/i18n"
)

const (
	DateTimeLayout = "02.01.2006 15:04:05"
	DateLayout     = "02.01.2006"
	queryLayout    = "2006-01-02"
)

// FormatDuration renders HH:MM:SS, prefixed with a localized day count once
// the duration reaches 24 hours ("2 gün, 03:00:00").
func FormatDuration(ctx context.Context, d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	days := total / 86400
	hms := fmt.Sprintf("%02d:%02d:%02d", (total%86400)/3600, (total%3600)/60, total%60)
	if days > 0 {
		return i18n.T(ctx, "duration.days", map[string]any{"Days": days}) + ", " + hms
	}
	return hms
}

// totalDuration sums the exact duration of every closed session.
func totalDuration(logs []EmployeeTimeLog) time.Duration {
	var sum time.Duration
	for _, l := range logs {
		if d := l.WorkDuration(); d != nil {
			sum += *d
		}
	}
	return sum
}

func formatTotal(ctx context.Context, logs []EmployeeTimeLog) string {
	return FormatDuration(ctx, totalDuration(logs))
}

func formatTime(t time.Time) string {
	return t.In(time.Local).Format(DateTimeLayout)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := formatTime(*t)
	return &v
}

func mapToResponse(ctx context.Context, l EmployeeTimeLog) TimeLogResponse {
	resp := TimeLogResponse{
		ID:           l.ID.String(),
		EmployeeID:   l.EmployeeID.String(),
		CheckInTime:  formatTime(l.CheckInTime),
		CheckOutTime: formatTimePtr(l.CheckOutTime),
		Notes:        l.Notes,
		IsCheckedOut: !l.IsOpen(),
	}

	dur := l.WorkDuration()
	if dur != nil {
		v := FormatDuration(ctx, *dur)
		resp.WorkDuration = &v
		resp.WorkDurationInMinutes = int(*dur / time.Minute)
	}

	if l.Employee == nil {
		return resp
	}
	resp.EmployeeName = l.Employee.Username
	resp.RoleName = l.Employee.RoleName()

	ws := l.Employee.WorkSchedule
	if ws == nil {
		return resp
	}
	checkIn := l.CheckInTime.In(time.Local)
	resp.WorkScheduleName = ws.Name
	resp.ExpectedStartTime = ws.StartTime.String()
	resp.ExpectedEndTime = ws.EndTime.String()
	resp.LatenessTime = FormatDuration(ctx, ws.Lateness(checkIn))
	resp.IsLate = ws.IsLate(checkIn)
	resp.IsWithinSchedule = ws.IsWithinWorkHours(checkIn)

	if dur != nil {
		if scheduled := ws.ScheduledMinutes(); scheduled > 0 {
			resp.WorkEfficiency = fmt.Sprintf("%.1f%%", dur.Minutes()/float64(scheduled)*100)
		}
	}
	return resp
}

// parseWindow turns optional yyyy-mm-dd bounds into a Window whose upper
// bound covers the whole "to" day.
func parseWindow(q LogQuery) (Window, error) {
	var w Window
	if q.From != "" {
		from, err := time.ParseInLocation(queryLayout, q.From, time.Local)
		if err != nil {
			return Window{}, err
		}
		w.From = from
	}
	if q.To != "" {
		to, err := time.ParseInLocation(queryLayout, q.To, time.Local)
		if err != nil {
			return Window{}, err
		}
		w.To = to.AddDate(0, 0, 1)
	}
	return w, nil
}

func dayWindow(day time.Time) Window {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)
	return Window{From: start, To: start.AddDate(0, 0, 1)}
}
