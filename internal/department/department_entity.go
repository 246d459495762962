package department

// Summary is one department as seen through the employees table. There is no
// separate department table; a department exists while an employee names it.
type Summary struct {
	Name      string `gorm:"column:name"`
	Headcount int64  `gorm:"column:headcount"`
	Active    int64  `gorm:"column:active"`
}
