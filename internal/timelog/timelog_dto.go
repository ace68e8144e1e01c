package timelog

type CheckInRequest struct {
	Notes string `json:"notes" binding:"max=500"`
}

type CheckOutRequest struct {
	Notes string `json:"notes" binding:"max=500"`
}

// LogQuery carries optional yyyy-mm-dd bounds; To covers its whole day.
type LogQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

type TimeLogResponse struct {
	ID                    string  `json:"id"`
	EmployeeID            string  `json:"employeeId"`
	EmployeeName          string  `json:"employeeName"`
	RoleName              string  `json:"roleName,omitempty"`
	CheckInTime           string  `json:"checkInTime"`
	CheckOutTime          *string `json:"checkOutTime"`
	WorkDuration          *string `json:"workDuration"`
	WorkDurationInMinutes int     `json:"workDurationInMinutes"`
	Notes                 string  `json:"notes"`
	IsCheckedOut          bool    `json:"isCheckedOut"`

	WorkScheduleName  string `json:"workScheduleName,omitempty"`
	ExpectedStartTime string `json:"expectedStartTime,omitempty"`
	ExpectedEndTime   string `json:"expectedEndTime,omitempty"`
	LatenessTime      string `json:"latenessTime,omitempty"`
	IsLate            bool   `json:"isLate"`
	IsWithinSchedule  bool   `json:"isWithinSchedule"`
	WorkEfficiency    string `json:"workEfficiency,omitempty"`
}

type StatusResponse struct {
	IsCheckedIn   bool             `json:"isCheckedIn"`
	ActiveSession *TimeLogResponse `json:"activeSession"`
	CurrentTime   string           `json:"currentTime"`
}

type EmployeeStatusResponse struct {
	EmployeeID    string           `json:"employeeId"`
	EmployeeName  string           `json:"employeeName"`
	RoleName      string           `json:"roleName"`
	IsCheckedIn   bool             `json:"isCheckedIn"`
	ActiveSession *TimeLogResponse `json:"activeSession"`
	CurrentTime   string           `json:"currentTime"`
}

// DayGroup is every session that started on one calendar day.
type DayGroup struct {
	Date          string            `json:"date"`
	TotalWorkTime string            `json:"totalWorkTime"`
	CheckInCount  int               `json:"checkInCount"`
	TimeLogs      []TimeLogResponse `json:"timeLogs"`
}

type GroupedLogsResponse struct {
	Data          []DayGroup `json:"data"`
	TotalDays     int        `json:"totalDays"`
	TotalSessions int        `json:"totalSessions"`
}

type RecentLog struct {
	Date     string  `json:"date"`
	CheckIn  string  `json:"checkIn"`
	CheckOut *string `json:"checkOut"`
	Duration *string `json:"duration"`
	Notes    string  `json:"notes"`
}

type EmployeeSummary struct {
	EmployeeID    string      `json:"employeeId"`
	EmployeeName  string      `json:"employeeName"`
	RoleName      string      `json:"roleName"`
	TotalWorkTime string      `json:"totalWorkTime"`
	TotalSessions int         `json:"totalSessions"`
	WorkDays      int         `json:"workDays"`
	RecentLogs    []RecentLog `json:"recentLogs"`
}

type EmployeeLogsResponse struct {
	Data           []EmployeeSummary `json:"data"`
	TotalEmployees int               `json:"totalEmployees"`
}

type EmployeeInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type EmployeeLogDetailResponse struct {
	EmployeeInfo  EmployeeInfo `json:"employeeInfo"`
	Data          []DayGroup   `json:"data"`
	TotalDays     int          `json:"totalDays"`
	TotalSessions int          `json:"totalSessions"`
}

type TotalWorkTimeResponse struct {
	EmployeeID    string `json:"employeeId"`
	From          string `json:"from"`
	To            string `json:"to"`
	TotalWorkTime string `json:"totalWorkTime"`
	TotalMinutes  int64  `json:"totalMinutes"`
	TotalSessions int    `json:"totalSessions"`
}
