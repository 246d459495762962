package app

import (
	"dayflow-hrms/internal/attendance"
	"dayflow-hrms/internal/employee"
	"dayflow-hrms/internal/leave"
	"dayflow-hrms/internal/messaging/kafka"
	"dayflow-hrms/internal/payroll"
	"dayflow-hrms/internal/shared/counter"
	"dayflow-hrms/internal/user"

	"gorm.io/gorm"
)

func migrate(db *gorm.DB) error {
	// employees first: payroll, attendance and leave read it through
	// narrower structs bound to the same table.
	if err := db.AutoMigrate(&employee.Employee{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&user.User{},
		&counter.SequenceCounter{},
		&payroll.Payroll{},
		&attendance.Attendance{},
		&leave.Leave{},
		&kafka.OutboxRecord{},
	)
}
