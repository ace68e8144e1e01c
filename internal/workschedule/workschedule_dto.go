package workschedule

type WorkScheduleResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	StartTime          string `json:"startTime"`
	EndTime            string `json:"endTime"`
	RequiredWorkHours  int    `json:"requiredWorkHours"`
	MinimumWorkMinutes int    `json:"minimumWorkMinutes"`
	MaxLatenessMinutes int    `json:"maxLatenessMinutes"`
	IsActive           bool   `json:"isActive"`
}
