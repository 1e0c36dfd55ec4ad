package rbac

const (
	RoleOwner   = "OWNER"
	RoleManager = "MANAGER"
	RoleStaff   = "STAFF"
)

// DefaultPermissions apply to a company that has not configured any role
// permission of its own.
var DefaultPermissions = []RolePermissionRow{
	{Role: RoleStaff, Resource: "roster", Action: "read"},
	{Role: RoleStaff, Resource: "shift", Action: "read"},
	{Role: RoleStaff, Resource: "attendance", Action: "read"},
	{Role: RoleStaff, Resource: "attendance", Action: "create"},
	{Role: RoleStaff, Resource: "swap", Action: "read"},
	{Role: RoleStaff, Resource: "swap", Action: "create"},
	{Role: RoleStaff, Resource: "swap", Action: "respond"},
	{Role: RoleStaff, Resource: "employee", Action: "options"},

	{Role: RoleManager, Resource: "employee", Action: "read"},
	{Role: RoleManager, Resource: "employee", Action: "options"},
	{Role: RoleManager, Resource: "employee", Action: "create"},
	{Role: RoleManager, Resource: "employee", Action: "update"},
	{Role: RoleManager, Resource: "shift", Action: "read"},
	{Role: RoleManager, Resource: "shift", Action: "manage"},
	{Role: RoleManager, Resource: "roster", Action: "read"},
	{Role: RoleManager, Resource: "roster", Action: "manage"},
	{Role: RoleManager, Resource: "attendance", Action: "read"},
	{Role: RoleManager, Resource: "attendance", Action: "create"},
	{Role: RoleManager, Resource: "attendance", Action: "manage"},
	{Role: RoleManager, Resource: "swap", Action: "read"},
	{Role: RoleManager, Resource: "swap", Action: "create"},
	{Role: RoleManager, Resource: "swap", Action: "respond"},
	{Role: RoleManager, Resource: "swap", Action: "approve"},
	{Role: RoleManager, Resource: "payroll", Action: "read"},
	{Role: RoleManager, Resource: "payroll", Action: "create"},
}

// ownerResources get every action for RoleOwner.
var ownerResources = map[string][]string{
	"employee":   {"read", "options", "create", "update", "delete"},
	"shift":      {"read", "manage"},
	"roster":     {"read", "manage"},
	"attendance": {"read", "create", "manage"},
	"swap":       {"read", "create", "respond", "approve"},
	"payroll":    {"read", "create", "approve", "pay", "delete", "configure"},
}

func defaultPermissions() []RolePermissionRow {
	rows := make([]RolePermissionRow, 0, len(DefaultPermissions)+32)
	rows = append(rows, DefaultPermissions...)
	for resource, actions := range ownerResources {
		for _, action := range actions {
			rows = append(rows, RolePermissionRow{Role: RoleOwner, Resource: resource, Action: action})
		}
	}
	return rows
}
