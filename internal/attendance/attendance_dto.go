package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type MarkAttendanceRequest struct {
	EmployeeID string `json:"employeeId" binding:"required,uuid"`
	Date       string `json:"date" binding:"required"`
	Status     string `json:"status" binding:"required,oneof=present absent half-day leave"`
	Remarks    string `json:"remarks" binding:"max=500"`
}

// Filter narrows attendance lists. Date wins over StartDate/EndDate.
type Filter struct {
	EmployeeID string
	Date       *time.Time
	StartDate  *time.Time
	EndDate    *time.Time
	Status     string
	Page       int
	Limit      int
}

type AttendanceResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employeeId"`
	EmployeeName string          `json:"employeeName,omitempty"`
	EmployeeCode string          `json:"employeeCode,omitempty"`
	Date         string          `json:"date"`
	CheckIn      *string         `json:"checkIn,omitempty"`
	CheckOut     *string         `json:"checkOut,omitempty"`
	Status       string          `json:"status"`
	WorkHours    decimal.Decimal `json:"workHours"`
	Remarks      string          `json:"remarks,omitempty"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}
