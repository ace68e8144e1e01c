package employee

import "time"

const timeLayout = "02.01.2006 15:04:05"

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:        e.ID.String(),
		Username:  e.Username,
		Email:     e.Email,
		Phone:     e.Phone,
		Salary:    e.Salary,
		RoleName:  e.RoleName(),
		CreatedAt: e.CreatedAt.In(time.Local).Format(timeLayout),
	}
	if e.RoleID != nil {
		resp.RoleID = e.RoleID.String()
	}
	if e.WorkScheduleID != nil {
		resp.WorkScheduleID = e.WorkScheduleID.String()
	}
	if e.WorkSchedule != nil {
		resp.WorkScheduleName = e.WorkSchedule.Name
		resp.WorkStartTime = e.WorkSchedule.StartTime.String()
		resp.WorkEndTime = e.WorkSchedule.EndTime.String()
	}
	if e.BossID != nil {
		resp.BossID = e.BossID.String()
	}
	if e.Boss != nil {
		resp.BossName = e.Boss.Username
	}
	if e.UpdatedAt != nil {
		resp.UpdatedAt = e.UpdatedAt.In(time.Local).Format(timeLayout)
	}
	return resp
}

func mapToListResponse(rows []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(rows))
	for i, e := range rows {
		res[i] = mapToResponse(e)
	}
	return res
}
