package leave

import (
	"strings"
	"time"

	leaveerrors "github.com/Sedmeq/WorkTrack/internal/leave/errors"
)

const (
	inputDateLayout  = "2006-01-02"
	outputTimeLayout = "02.01.2006 15:04:05"
)

// parseDate accepts a plain calendar date or a full RFC3339 timestamp.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(inputDateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, leaveerrors.ErrInvalidDateFormat
}

func parseRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := parseDate(startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate(endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return start, end, nil
}

func mapToResponse(kind Kind, r Request) RequestResponse {
	resp := RequestResponse{
		ID:         r.ID.String(),
		Kind:       string(kind),
		EmployeeID: r.EmployeeID.String(),
		StartDate:  r.StartDate.In(time.Local).Format(outputTimeLayout),
		EndDate:    r.EndDate.In(time.Local).Format(outputTimeLayout),
		Days:       InclusiveDays(r.StartDate, r.EndDate),
		Reason:     r.Reason,
		Status:     r.Status.String(),
		CreatedAt:  r.CreatedAt.In(time.Local).Format(outputTimeLayout),
	}
	if r.BossID != nil {
		resp.BossID = r.BossID.String()
	}
	if r.Employee != nil {
		resp.EmployeeName = r.Employee.Username
	}
	return resp
}

func mapAll(kind Kind, rows []Request) []RequestResponse {
	out := make([]RequestResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapToResponse(kind, r))
	}
	return out
}
