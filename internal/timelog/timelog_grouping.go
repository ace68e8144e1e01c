package timelog

import (
	"context"
	"sort"
	"time"
)

const recentLogLimit = 10

func localDay(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

func sortNewestFirst(logs []EmployeeTimeLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].CheckInTime.After(logs[j].CheckInTime)
	})
}

func groupByDay(ctx context.Context, logs []EmployeeTimeLog) []DayGroup {
	byDay := make(map[time.Time][]EmployeeTimeLog)
	for _, l := range logs {
		day := localDay(l.CheckInTime)
		byDay[day] = append(byDay[day], l)
	}

	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	groups := make([]DayGroup, 0, len(days))
	for _, d := range days {
		dayLogs := byDay[d]
		sortNewestFirst(dayLogs)
		items := make([]TimeLogResponse, len(dayLogs))
		for i, l := range dayLogs {
			items[i] = mapToResponse(ctx, l)
		}
		groups = append(groups, DayGroup{
			Date:          d.Format(DateLayout),
			TotalWorkTime: formatTotal(ctx, dayLogs),
			CheckInCount:  len(dayLogs),
			TimeLogs:      items,
		})
	}
	return groups
}

func groupByEmployee(ctx context.Context, logs []EmployeeTimeLog) []EmployeeSummary {
	byEmployee := make(map[string][]EmployeeTimeLog)
	order := []string{}
	for _, l := range logs {
		key := l.EmployeeID.String()
		if _, ok := byEmployee[key]; !ok {
			order = append(order, key)
		}
		byEmployee[key] = append(byEmployee[key], l)
	}

	summaries := make([]EmployeeSummary, 0, len(order))
	for _, key := range order {
		empLogs := byEmployee[key]
		sortNewestFirst(empLogs)

		workDays := make(map[time.Time]struct{})
		for _, l := range empLogs {
			workDays[localDay(l.CheckInTime)] = struct{}{}
		}

		limit := len(empLogs)
		if limit > recentLogLimit {
			limit = recentLogLimit
		}
		recent := make([]RecentLog, limit)
		for i := 0; i < limit; i++ {
			r := mapToResponse(ctx, empLogs[i])
			recent[i] = RecentLog{
				Date:     localDay(empLogs[i].CheckInTime).Format(DateLayout),
				CheckIn:  r.CheckInTime,
				CheckOut: r.CheckOutTime,
				Duration: r.WorkDuration,
				Notes:    r.Notes,
			}
		}

		s := EmployeeSummary{
			EmployeeID:    key,
			TotalWorkTime: formatTotal(ctx, empLogs),
			TotalSessions: len(empLogs),
			WorkDays:      len(workDays),
			RecentLogs:    recent,
		}
		if e := empLogs[0].Employee; e != nil {
			s.EmployeeName = e.Username
			s.RoleName = e.RoleName()
		}
		summaries = append(summaries, s)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].EmployeeName < summaries[j].EmployeeName
	})
	return summaries
}

func buildGrouped(ctx context.Context, logs []EmployeeTimeLog) GroupedLogsResponse {
	groups := groupByDay(ctx, logs)
	return GroupedLogsResponse{
		Data:          groups,
		TotalDays:     len(groups),
		TotalSessions: len(logs),
	}
}
