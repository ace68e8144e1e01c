package employee

type CreateEmployeeRequest struct {
	Username       string  `json:"username" binding:"required,max=100"`
	Email          string  `json:"email" binding:"required,email,max=150"`
	Password       string  `json:"password" binding:"required,min=6"`
	Phone          string  `json:"phone" binding:"max=20"`
	Salary         float64 `json:"salary" binding:"min=0"`
	RoleID         string  `json:"roleId" binding:"omitempty,uuid"`
	WorkScheduleID string  `json:"workScheduleId" binding:"omitempty,uuid"`
	BossID         string  `json:"bossId" binding:"omitempty,uuid"`
}

// UpdateEmployeeRequest leaves the password unchanged when it is empty.
type UpdateEmployeeRequest struct {
	Username       string  `json:"username" binding:"required,max=100"`
	Email          string  `json:"email" binding:"required,email,max=150"`
	Password       string  `json:"password" binding:"omitempty,min=6"`
	Phone          string  `json:"phone" binding:"max=20"`
	Salary         float64 `json:"salary" binding:"min=0"`
	RoleID         string  `json:"roleId" binding:"omitempty,uuid"`
	WorkScheduleID string  `json:"workScheduleId" binding:"omitempty,uuid"`
	BossID         string  `json:"bossId" binding:"omitempty,uuid"`
}

type EmployeeResponse struct {
	ID               string  `json:"id"`
	Username         string  `json:"username"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone,omitempty"`
	Salary           float64 `json:"salary"`
	RoleID           string  `json:"roleId,omitempty"`
	RoleName         string  `json:"roleName,omitempty"`
	WorkScheduleID   string  `json:"workScheduleId,omitempty"`
	WorkScheduleName string  `json:"workScheduleName,omitempty"`
	WorkStartTime    string  `json:"workStartTime,omitempty"`
	WorkEndTime      string  `json:"workEndTime,omitempty"`
	BossID           string  `json:"bossId,omitempty"`
	BossName         string  `json:"bossName,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt,omitempty"`
}
