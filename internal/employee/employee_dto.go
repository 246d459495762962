package employee

import (
	"github.com/shopspring/decimal"
)

type BankDetailsInput struct {
	AccountNumber string `json:"accountNumber" binding:"omitempty,max=34"`
	BankName      string `json:"bankName" binding:"omitempty,max=100"`
	IFSCCode      string `json:"ifscCode" binding:"omitempty,len=11"`
	PANNo         string `json:"panNo" binding:"omitempty,len=10"`
	UANNo         string `json:"uanNo" binding:"omitempty,max=12"`
}

type CreatePersonalDetails struct {
	FirstName     string            `json:"firstName" binding:"required,max=100"`
	LastName      string            `json:"lastName" binding:"required,max=100"`
	Phone         string            `json:"phone" binding:"omitempty,max=20"`
	Address       string            `json:"address"`
	DateOfBirth   string            `json:"dateOfBirth"`
	Gender        string            `json:"gender" binding:"omitempty,oneof=male female other prefer-not-to-say"`
	MaritalStatus string            `json:"maritalStatus" binding:"omitempty,oneof=single married divorced widowed"`
	Nationality   string            `json:"nationality"`
	BankDetails   *BankDetailsInput `json:"bankDetails"`
}

type CreateJobDetails struct {
	Designation    string `json:"designation" binding:"required"`
	Department     string `json:"department" binding:"required"`
	JoiningDate    string `json:"joiningDate"`
	EmploymentType string `json:"employmentType" binding:"omitempty,oneof=full-time part-time contract intern"`
	Manager        string `json:"manager"`
	Location       string `json:"location"`
}

type CreateEmployeeRequest struct {
	Email           string                `json:"email" binding:"required,email"`
	Role            string                `json:"role" binding:"omitempty,oneof=employee hr admin"`
	PersonalDetails CreatePersonalDetails `json:"personalDetails"`
	JobDetails      CreateJobDetails      `json:"jobDetails"`
	MonthWage       *decimal.Decimal      `json:"monthWage"`
}

// PersonalDetailsPatch and JobDetailsPatch carry only the fields a caller
// wants to change. Every non-nil field is checked against the field
// permission table.
type PersonalDetailsPatch struct {
	FirstName     *string           `json:"firstName" binding:"omitempty,min=1,max=100"`
	LastName      *string           `json:"lastName" binding:"omitempty,min=1,max=100"`
	Phone         *string           `json:"phone" binding:"omitempty,max=20"`
	Address       *string           `json:"address"`
	DateOfBirth   *string           `json:"dateOfBirth"`
	Gender        *string           `json:"gender" binding:"omitempty,oneof=male female other prefer-not-to-say"`
	MaritalStatus *string           `json:"maritalStatus" binding:"omitempty,oneof=single married divorced widowed"`
	Nationality   *string           `json:"nationality"`
	BankDetails   *BankDetailsInput `json:"bankDetails"`
}

type JobDetailsPatch struct {
	Designation    *string `json:"designation" binding:"omitempty,min=1"`
	Department     *string `json:"department" binding:"omitempty,min=1"`
	JoiningDate    *string `json:"joiningDate"`
	EmploymentType *string `json:"employmentType" binding:"omitempty,oneof=full-time part-time contract intern"`
	Manager        *string `json:"manager"`
	Location       *string `json:"location"`
}

type UpdateEmployeeRequest struct {
	PersonalDetails *PersonalDetailsPatch `json:"personalDetails"`
	JobDetails      *JobDetailsPatch      `json:"jobDetails"`
}

// FieldPaths lists the dotted paths the request writes, e.g. personalDetails.phone.
func (r UpdateEmployeeRequest) FieldPaths() []string {
	var paths []string
	add := func(set bool, path string) {
		if set {
			paths = append(paths, path)
		}
	}

	if p := r.PersonalDetails; p != nil {
		add(p.FirstName != nil, "personalDetails.firstName")
		add(p.LastName != nil, "personalDetails.lastName")
		add(p.Phone != nil, "personalDetails.phone")
		add(p.Address != nil, "personalDetails.address")
		add(p.DateOfBirth != nil, "personalDetails.dateOfBirth")
		add(p.Gender != nil, "personalDetails.gender")
		add(p.MaritalStatus != nil, "personalDetails.maritalStatus")
		add(p.Nationality != nil, "personalDetails.nationality")
		add(p.BankDetails != nil, "personalDetails.bankDetails")
	}
	if j := r.JobDetails; j != nil {
		add(j.Designation != nil, "jobDetails.designation")
		add(j.Department != nil, "jobDetails.department")
		add(j.JoiningDate != nil, "jobDetails.joiningDate")
		add(j.EmploymentType != nil, "jobDetails.employmentType")
		add(j.Manager != nil, "jobDetails.manager")
		add(j.Location != nil, "jobDetails.location")
	}
	return paths
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListFilter struct {
	Department string
	Status     string
	Query      string
	Page       int
	Limit      int
}

type BankDetailsResponse struct {
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
	IFSCCode      string `json:"ifscCode"`
	PANNo         string `json:"panNo"`
	UANNo         string `json:"uanNo"`
}

type PersonalDetailsResponse struct {
	FirstName     string              `json:"firstName"`
	LastName      string              `json:"lastName"`
	FullName      string              `json:"fullName"`
	Email         string              `json:"email"`
	Phone         string              `json:"phone"`
	Address       string              `json:"address"`
	DateOfBirth   string              `json:"dateOfBirth,omitempty"`
	Gender        string              `json:"gender,omitempty"`
	MaritalStatus string              `json:"maritalStatus,omitempty"`
	Nationality   string              `json:"nationality,omitempty"`
	BankDetails   BankDetailsResponse `json:"bankDetails"`
}

type JobDetailsResponse struct {
	Designation    string `json:"designation"`
	Department     string `json:"department"`
	JoiningDate    string `json:"joiningDate"`
	EmploymentType string `json:"employmentType"`
	Manager        string `json:"manager,omitempty"`
	Location       string `json:"location,omitempty"`
}

type EmployeeResponse struct {
	ID              string                  `json:"id"`
	EmployeeCode    string                  `json:"employeeCode"`
	LoginID         string                  `json:"loginId"`
	Status          string                  `json:"status"`
	PersonalDetails PersonalDetailsResponse `json:"personalDetails"`
	JobDetails      JobDetailsResponse      `json:"jobDetails"`
	CreatedAt       string                  `json:"createdAt"`
	UpdatedAt       string                  `json:"updatedAt"`
}

type CreateEmployeeResponse struct {
	Employee          EmployeeResponse `json:"employee"`
	LoginID           string           `json:"loginId"`
	TemporaryPassword string           `json:"temporaryPassword"`
}

type EmployeeOption struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}
