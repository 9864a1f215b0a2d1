package domain

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
	RoleWorker Role = "worker"
)

// ValidRoles is the canonical set of accepted role strings.
var ValidRoles = map[string]bool{
	"admin": true, "client": true, "worker": true,
}

type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// ValidTaskStatuses is the canonical set of accepted task status strings.
var ValidTaskStatuses = map[string]bool{
	"todo": true, "in_progress": true, "done": true,
}

type ExpenseCategory string

const (
	ExpenseMaterials ExpenseCategory = "Materials"
	ExpenseProducts  ExpenseCategory = "Products"
	ExpenseLabour    ExpenseCategory = "Labour"
	ExpenseTransport ExpenseCategory = "Transport"
	ExpenseOthers    ExpenseCategory = "Others"
)

// ValidExpenseCategories is the canonical set of accepted expense categories.
var ValidExpenseCategories = map[string]bool{
	"Materials": true, "Products": true, "Labour": true,
	"Transport": true, "Others": true,
}

type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "Pending"
	ExpenseApproved ExpenseStatus = "Approved"
	ExpenseRejected ExpenseStatus = "Rejected"
)

type InventoryCategory string

const (
	InventoryServices  InventoryCategory = "Services"
	InventoryMaterials InventoryCategory = "Materials"
	InventoryProducts  InventoryCategory = "Products"
	InventoryLabour    InventoryCategory = "Labour"
)

// ValidInventoryCategories is the canonical set of accepted inventory categories.
var ValidInventoryCategories = map[string]bool{
	"Services": true, "Materials": true, "Products": true, "Labour": true,
}

type InventoryStatus string

const (
	InventoryInstalled InventoryStatus = "Installed"
	InventoryPending   InventoryStatus = "Pending"
	InventoryInBudget  InventoryStatus = "In_Budget"
)

type NotificationKind string

const (
	NotifyTaskAssigned    NotificationKind = "task_assigned"
	NotifyTaskCompleted   NotificationKind = "task_completed"
	NotifyExpenseDecision NotificationKind = "expense_decision"
	NotifyProjectUpdate   NotificationKind = "project_update"
)
