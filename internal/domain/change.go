package domain

// EntityKind identifies which nested project collection a change targets.
type EntityKind string

const (
	KindTask      EntityKind = "task"
	KindExpense   EntityKind = "expense"
	KindInventory EntityKind = "inventory"
	KindTeam      EntityKind = "team"
)

// ChangeOp is the mutation operation recorded in the dirty set.
type ChangeOp string

const (
	OpCreate ChangeOp = "create"
	OpUpdate ChangeOp = "update"
	OpDelete ChangeOp = "delete"
)

// PendingChange is one uncommitted mutation against the selected project.
// Exactly one payload field matching Kind is set; deletes carry no payload.
// The payloads are full post-mutation snapshots, so repeated updates to the
// same entity collapse into a single record.
type PendingChange struct {
	Kind     EntityKind
	Op       ChangeOp
	EntityID string

	Task      *Task
	Expense   *Expense
	Inventory *InventoryItem
	Worker    *Worker
}
