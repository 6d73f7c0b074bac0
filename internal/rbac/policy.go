package rbac

// Role names as stored on the user row.
const (
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
	RoleAdmin    = "ADMIN"
)

type policyRule struct {
	role     string
	resource string
	action   string
}

// defaultPolicies adalah tabel kapabilitas statis per role.
// MANAGER mewarisi EMPLOYEE, ADMIN mewarisi MANAGER (lihat roleInheritance).
var defaultPolicies = []policyRule{
	// Semua user terautentikasi
	{RoleEmployee, "user", "read"},
	{RoleEmployee, "user", "update"},
	{RoleEmployee, "attendance", "read"},
	{RoleEmployee, "attendance", "check"},
	{RoleEmployee, "leave", "read"},
	{RoleEmployee, "leave", "create"},
	{RoleEmployee, "leave", "update"},
	{RoleEmployee, "leave", "delete"},
	{RoleEmployee, "task", "read"},
	{RoleEmployee, "task", "update"},
	{RoleEmployee, "message", "read"},
	{RoleEmployee, "message", "create"},
	{RoleEmployee, "message", "update"},
	{RoleEmployee, "message", "delete"},

	// Manajerial
	{RoleManager, "attendance", "read_all"},
	{RoleManager, "attendance", "create"},
	{RoleManager, "attendance", "update"},
	{RoleManager, "leave", "read_all"},
	{RoleManager, "leave", "approve"},
	{RoleManager, "task", "read_all"},
	{RoleManager, "task", "create"},
	{RoleManager, "task", "delete"},

	// Administrasi
	{RoleAdmin, "attendance", "delete"},
	{RoleAdmin, "user", "manage"},
}

var roleInheritance = [][2]string{
	{RoleManager, RoleEmployee},
	{RoleAdmin, RoleManager},
}
