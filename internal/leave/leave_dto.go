package leave

type SubmitRequest struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	Reason    string `json:"reason" binding:"max=500"`
}

type GrantRequest struct {
	EmployeeID string `json:"employeeId" binding:"required,uuid"`
	StartDate  string `json:"startDate" binding:"required"`
	EndDate    string `json:"endDate" binding:"required"`
	Reason     string `json:"reason" binding:"max=500"`
}

type RequestResponse struct {
	ID           string `json:"id"`
	Kind         string `json:"kind"`
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	BossID       string `json:"bossId,omitempty"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Days         int    `json:"days"`
	Reason       string `json:"reason,omitempty"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
}

type BalanceResponse struct {
	EmployeeID       string  `json:"employeeId"`
	EmployeeName     string  `json:"employeeName"`
	DaysEmployed     int     `json:"daysEmployed"`
	TotalAccruedDays float64 `json:"totalAccruedDays"`
	DaysTaken        float64 `json:"daysTaken"`
	PendingDays      float64 `json:"pendingDays"`
	RemainingDays    float64 `json:"remainingDays"`
	AvailableDays    float64 `json:"availableDays"`
}
