package leave

type ApplyLeaveRequest struct {
	LeaveType string `json:"leaveType" binding:"required,oneof=paid sick unpaid casual"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	Reason    string `json:"reason" binding:"required,max=1000"`
}

type ReviewLeaveRequest struct {
	ReviewComments string `json:"reviewComments" binding:"max=1000"`
}

type ListFilter struct {
	EmployeeID string `form:"-"`
	Status     string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	LeaveType  string `form:"leaveType" binding:"omitempty,oneof=paid sick unpaid casual"`
	Page       int    `form:"-"`
	Limit      int    `form:"-"`
}

type LeaveResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employeeId"`
	EmployeeName   string  `json:"employeeName,omitempty"`
	EmployeeCode   string  `json:"employeeCode,omitempty"`
	LeaveType      string  `json:"leaveType"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
	TotalDays      int     `json:"totalDays"`
	Reason         string  `json:"reason"`
	Status         string  `json:"status"`
	AppliedOn      string  `json:"appliedOn"`
	ReviewedBy     *string `json:"reviewedBy,omitempty"`
	ReviewedOn     *string `json:"reviewedOn,omitempty"`
	ReviewComments string  `json:"reviewComments,omitempty"`
}
