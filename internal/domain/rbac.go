package domain

// EnforceRequest asks whether an employee may perform action on resource
// inside one company (restaurant). Role is the role claim from the token and
// is used when the employee has no explicit role assignment.
type EnforceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	CompanyID  string `json:"company_id" binding:"required"`
	Role       string `json:"role"`
	Resource   string `json:"resource" binding:"required"`
	Action     string `json:"action" binding:"required"`
}
