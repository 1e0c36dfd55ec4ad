package employee

type CreateEmployeeRequest struct {
	FullName   string             `json:"full_name" binding:"required"`
	Nickname   string             `json:"nickname"`
	Email      string             `json:"email" binding:"required,email"`
	Phone      string             `json:"phone"`
	Position   string             `json:"position" binding:"required"`
	ShiftRates map[string]float64 `json:"shift_rates" binding:"omitempty,dive,keys,oneof=morning evening double,endkeys,gte=0"`
}

type UpdateEmployeeRequest struct {
	FullName   string             `json:"full_name" binding:"required"`
	Nickname   string             `json:"nickname"`
	Email      string             `json:"email" binding:"required,email"`
	Phone      string             `json:"phone"`
	Position   string             `json:"position" binding:"required"`
	ShiftRates map[string]float64 `json:"shift_rates" binding:"omitempty,dive,keys,oneof=morning evening double,endkeys,gte=0"`
	IsActive   *bool              `json:"is_active"`
}

type EmployeeResponse struct {
	ID           string             `json:"id"`
	EmployeeCode string             `json:"employee_code"`
	FullName     string             `json:"full_name"`
	Nickname     string             `json:"nickname,omitempty"`
	Email        string             `json:"email"`
	Phone        string             `json:"phone,omitempty"`
	Position     string             `json:"position"`
	ShiftRates   map[string]float64 `json:"shift_rates,omitempty"`
	IsActive     bool               `json:"is_active"`
	CompanyID    string             `json:"company_id"`
}

// EmployeeOptionResponse feeds pickers (swap target, roster editor).
type EmployeeOptionResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
}
