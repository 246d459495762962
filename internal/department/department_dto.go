package department

type DepartmentResponse struct {
	Name      string `json:"name"`
	Headcount int64  `json:"headcount"`
	Active    int64  `json:"active"`
}
