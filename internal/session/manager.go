package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/obradev/obra/internal/domain"
)

// SwitchChoice is the user's resolution when switching projects while dirty.
type SwitchChoice int

const (
	SaveAndSwitch SwitchChoice = iota
	DiscardAndSwitch
	CancelSwitch
)

// Manager owns the edit session for the currently selected project: the full
// project list, a working copy of the selection, the last-saved snapshot, and
// the dirty set of uncommitted mutations.
//
// The manager is single-writer and not safe for concurrent use. All state
// transitions happen on the UI event loop; consumers read the working copy
// through Selected and mutate only through the mutator methods.
type Manager struct {
	persister Persister

	projects []*domain.Project // last-saved baselines, one per known project
	selected *domain.Project   // working copy, optimistically mutated
	baseline *domain.Project   // revert target for DiscardChanges

	dirty         changeSet
	saving        bool
	pendingSwitch string // project ID held during conflict resolution
}

func NewManager(p Persister) *Manager {
	return &Manager{persister: p}
}

// Selected returns the working copy of the selected project, or nil.
// Callers must treat it as read-only and mutate through the manager.
func (m *Manager) Selected() *domain.Project { return m.selected }

// Projects returns the full project list as of the last hydration.
func (m *Manager) Projects() []*domain.Project { return m.projects }

// ProjectByID returns the baseline project with the given ID, or nil.
func (m *Manager) ProjectByID(id string) *domain.Project {
	for _, p := range m.projects {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// HasChanges reports whether the dirty set is non-empty.
func (m *Manager) HasChanges() bool { return !m.dirty.empty() }

// IsSaving reports whether a save is in flight.
func (m *Manager) IsSaving() bool { return m.saving }

// PendingChanges returns a copy of the merged dirty set.
func (m *Manager) PendingChanges() []domain.PendingChange { return m.dirty.list() }

// SetAllProjects replaces the full project list after a fetch or refresh and
// resets the dirty set. Empty input is a no-op so a failed fetch can never
// clobber existing state with nothing.
//
// If the selected project still exists in the new list, the selection is
// rehydrated from it; otherwise the selection is cleared.
func (m *Manager) SetAllProjects(projects []*domain.Project) {
	if len(projects) == 0 {
		return
	}
	m.projects = projects
	m.dirty.reset()
	m.pendingSwitch = ""

	if m.selected == nil {
		return
	}
	if p := m.ProjectByID(m.selected.ID); p != nil {
		m.baseline = p.Clone()
		m.selected = p.Clone()
	} else {
		m.baseline = nil
		m.selected = nil
	}
}

// Select makes the project with the given ID the working selection.
// It refuses with ErrUnsavedChanges while dirty; switching with unsaved
// changes must go through RequestSwitch/ResolveSwitch. An unknown ID keeps
// the previous selection and returns nil.
func (m *Manager) Select(id string) error {
	if m.HasChanges() {
		return ErrUnsavedChanges
	}
	p := m.ProjectByID(id)
	if p == nil {
		return nil
	}
	m.baseline = p.Clone()
	m.selected = p.Clone()
	return nil
}

// ── switch protocol ──────────────────────────────────────────────────────────

// RequestSwitch asks to change the selection to the given project. When the
// session is clean the switch happens immediately and needsResolve is false.
// When dirty, the target ID is held and needsResolve is true: the caller must
// present the three-way choice and call ResolveSwitch.
func (m *Manager) RequestSwitch(id string) (needsResolve bool) {
	if m.selected != nil && m.selected.ID == id {
		return false
	}
	if !m.HasChanges() {
		_ = m.Select(id)
		return false
	}
	m.pendingSwitch = id
	return true
}

// PendingSwitchID returns the held switch target, or "" when none is pending.
func (m *Manager) PendingSwitchID() string { return m.pendingSwitch }

// ResolveSwitch completes a held switch with the user's choice.
//
// SaveAndSwitch saves the dirty project first; a failed save returns the
// error and keeps both the dirty set and the held target, so the switch never
// advances past an unresolved save. DiscardAndSwitch reverts to the snapshot
// and switches. CancelSwitch drops the held target and changes nothing else.
func (m *Manager) ResolveSwitch(ctx context.Context, choice SwitchChoice) error {
	if m.pendingSwitch == "" {
		return ErrNoSwitchPending
	}

	switch choice {
	case CancelSwitch:
		m.pendingSwitch = ""
		return nil

	case SaveAndSwitch:
		if err := m.SaveChanges(ctx); err != nil {
			return err
		}

	case DiscardAndSwitch:
		m.DiscardChanges()
	}

	target := m.pendingSwitch
	m.pendingSwitch = ""
	return m.Select(target)
}

// ── persistence ──────────────────────────────────────────────────────────────

// SaveChanges commits the dirty set to the backend. It is a no-op when clean
// and rejects overlapping calls with ErrSaveInFlight. On success the working
// copy becomes the new baseline and the dirty set clears; on failure every
// pending edit is kept so the user can retry explicitly.
func (m *Manager) SaveChanges(ctx context.Context) error {
	if m.saving {
		return ErrSaveInFlight
	}
	if m.dirty.empty() {
		return nil
	}

	m.saving = true
	defer func() { m.saving = false }()

	if err := m.persister.SaveProject(ctx, m.selected.Clone(), m.dirty.list()); err != nil {
		return err
	}

	m.baseline = m.selected.Clone()
	m.replaceBaseline(m.baseline)
	m.dirty.reset()
	return nil
}

// DiscardChanges reverts the working copy to the last-saved snapshot and
// clears the dirty set. It never calls the backend.
func (m *Manager) DiscardChanges() {
	if m.selected == nil {
		return
	}
	m.selected = m.baseline.Clone()
	m.dirty.reset()
}

func (m *Manager) replaceBaseline(p *domain.Project) {
	for i, existing := range m.projects {
		if existing.ID == p.ID {
			m.projects[i] = p.Clone()
			return
		}
	}
}

// RestoreChanges replays a previously staged dirty set onto the freshly
// selected project, rebuilding both the working copy and the dirty set. This
// lets an edit session staged in one process resume in the next. The session
// must be clean when called.
func (m *Manager) RestoreChanges(changes []domain.PendingChange) error {
	if m.selected == nil {
		return ErrNoProject
	}
	if m.HasChanges() {
		return ErrUnsavedChanges
	}

	for _, c := range changes {
		switch c.Kind {
		case domain.KindTask:
			if c.Op == domain.OpDelete {
				m.restoreTaskDelete(c.EntityID)
			} else if c.Task != nil {
				m.restoreTask(c.Op, *c.Task)
			}
		case domain.KindExpense:
			if c.Op == domain.OpDelete {
				m.restoreExpenseDelete(c.EntityID)
			} else if c.Expense != nil {
				m.restoreExpense(c.Op, *c.Expense)
			}
		case domain.KindInventory:
			if c.Op == domain.OpDelete {
				m.restoreInventoryDelete(c.EntityID)
			} else if c.Inventory != nil {
				m.restoreInventory(c.Op, *c.Inventory)
			}
		case domain.KindTeam:
			if c.Op == domain.OpDelete {
				m.restoreTeamDelete(c.EntityID)
			} else if c.Worker != nil {
				m.restoreTeam(c.Op, *c.Worker)
			}
		}
	}

	m.selected.RefreshTotals()
	return nil
}

func (m *Manager) restoreTask(op domain.ChangeOp, t domain.Task) {
	if existing := m.findTask(t.ID); existing != nil {
		*existing = t.Clone()
	} else {
		m.selected.Tasks = append(m.selected.Tasks, t.Clone())
	}
	snap := t.Clone()
	m.dirty.record(domain.PendingChange{Kind: domain.KindTask, Op: op, EntityID: t.ID, Task: &snap})
}

func (m *Manager) restoreTaskDelete(id string) {
	for i, t := range m.selected.Tasks {
		if t.ID == id {
			m.selected.Tasks = append(m.selected.Tasks[:i], m.selected.Tasks[i+1:]...)
			break
		}
	}
	m.dirty.record(domain.PendingChange{Kind: domain.KindTask, Op: domain.OpDelete, EntityID: id})
}

func (m *Manager) restoreExpense(op domain.ChangeOp, e domain.Expense) {
	if existing := m.findExpense(e.ID); existing != nil {
		*existing = e.Clone()
	} else {
		m.selected.Expenses = append(m.selected.Expenses, e.Clone())
	}
	snap := e.Clone()
	m.dirty.record(domain.PendingChange{Kind: domain.KindExpense, Op: op, EntityID: e.ID, Expense: &snap})
}

func (m *Manager) restoreExpenseDelete(id string) {
	for i, e := range m.selected.Expenses {
		if e.ID == id {
			m.selected.Expenses = append(m.selected.Expenses[:i], m.selected.Expenses[i+1:]...)
			break
		}
	}
	m.dirty.record(domain.PendingChange{Kind: domain.KindExpense, Op: domain.OpDelete, EntityID: id})
}

func (m *Manager) restoreInventory(op domain.ChangeOp, item domain.InventoryItem) {
	if existing := m.findInventoryItem(item.ID); existing != nil {
		*existing = item
	} else {
		m.selected.Inventory = append(m.selected.Inventory, item)
	}
	snap := item
	m.dirty.record(domain.PendingChange{Kind: domain.KindInventory, Op: op, EntityID: item.ID, Inventory: &snap})
}

func (m *Manager) restoreInventoryDelete(id string) {
	for i, item := range m.selected.Inventory {
		if item.ID == id {
			m.selected.Inventory = append(m.selected.Inventory[:i], m.selected.Inventory[i+1:]...)
			break
		}
	}
	m.dirty.record(domain.PendingChange{Kind: domain.KindInventory, Op: domain.OpDelete, EntityID: id})
}

func (m *Manager) restoreTeam(op domain.ChangeOp, w domain.Worker) {
	replaced := false
	for i, member := range m.selected.Team {
		if member.ID == w.ID {
			m.selected.Team[i] = w.Clone()
			replaced = true
			break
		}
	}
	if !replaced {
		m.selected.Team = append(m.selected.Team, w.Clone())
	}
	snap := w.Clone()
	m.dirty.record(domain.PendingChange{Kind: domain.KindTeam, Op: op, EntityID: w.ID, Worker: &snap})
}

func (m *Manager) restoreTeamDelete(id string) {
	for i, member := range m.selected.Team {
		if member.ID == id {
			m.selected.Team = append(m.selected.Team[:i], m.selected.Team[i+1:]...)
			break
		}
	}
	m.dirty.record(domain.PendingChange{Kind: domain.KindTeam, Op: domain.OpDelete, EntityID: id})
}

// ── task mutators ────────────────────────────────────────────────────────────

// TaskPatch holds the optional fields of a partial task update.
type TaskPatch struct {
	Title       *string
	Description *string
	Assignee    *string
	WorkerID    *string
	Status      *domain.TaskStatus
	DueDate     *time.Time
}

// AddTask appends a task to the selected project, generating an ID when the
// task has none, and records a create in the dirty set.
func (m *Manager) AddTask(t domain.Task) (domain.Task, error) {
	if err := m.canMutate(); err != nil {
		return domain.Task{}, err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = domain.TaskTodo
	}

	m.selected.Tasks = append(m.selected.Tasks, t)
	m.recordTask(domain.OpCreate, t)
	return t, nil
}

// UpdateTask applies the non-nil patch fields to the task with the given ID.
func (m *Manager) UpdateTask(id string, patch TaskPatch) error {
	if err := m.canMutate(); err != nil {
		return err
	}
	t := m.findTask(id)
	if t == nil {
		return ErrEntityNotFound
	}

	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Assignee != nil {
		t.Assignee = *patch.Assignee
	}
	if patch.WorkerID != nil {
		t.WorkerID = *patch.WorkerID
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.DueDate != nil {
		d := *patch.DueDate
		t.DueDate = &d
	}
	t.UpdatedAt = time.Now().UTC()

	m.recordTask(domain.OpUpdate, *t)
	return nil
}

// UpdateTaskStatus is a specialized update touching only status and the
// updated-at stamp.
func (m *Manager) UpdateTaskStatus(id string, status domain.TaskStatus) error {
	s := status
	return m.UpdateTask(id, TaskPatch{Status: &s})
}

// DeleteTask removes the task from the working copy and records a delete.
func (m *Manager) DeleteTask(id string) error {
	if err := m.canMutate(); err != nil {
		return err
	}
	for i, t := range m.selected.Tasks {
		if t.ID == id {
			m.selected.Tasks = append(m.selected.Tasks[:i], m.selected.Tasks[i+1:]...)
			m.dirty.record(domain.PendingChange{Kind: domain.KindTask, Op: domain.OpDelete, EntityID: id})
			m.selected.RefreshTotals()
			return nil
		}
	}
	return ErrEntityNotFound
}

func (m *Manager) findTask(id string) *domain.Task {
	for i := range m.selected.Tasks {
		if m.selected.Tasks[i].ID == id {
			return &m.selected.Tasks[i]
		}
	}
	return nil
}

func (m *Manager) recordTask(op domain.ChangeOp, t domain.Task) {
	snap := t.Clone()
	m.dirty.record(domain.PendingChange{Kind: domain.KindTask, Op: op, EntityID: t.ID, Task: &snap})
	m.selected.RefreshTotals()
}

// ── expense mutators ─────────────────────────────────────────────────────────

// ExpensePatch holds the optional fields of a partial expense update.
type ExpensePatch struct {
	Title       *string
	Date        *time.Time
	Category    *domain.ExpenseCategory
	Description *string
	Amount      *float64
	Status      *domain.ExpenseStatus
	ApprovedBy  *string
	Notes       *string
}

func (m *Manager) AddExpense(e domain.Expense) (domain.Expense, error) {
	if err := m.canMutate(); err != nil {
		return domain.Expense{}, err
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Status == "" {
		e.Status = domain.ExpensePending
	}
	if e.Date.IsZero() {
		e.Date = time.Now().UTC()
	}

	m.selected.Expenses = append(m.selected.Expenses, e)
	m.recordExpense(domain.OpCreate, e)
	return e, nil
}

func (m *Manager) UpdateExpense(id string, patch ExpensePatch) error {
	if err := m.canMutate(); err != nil {
		return err
	}
	e := m.findExpense(id)
	if e == nil {
		return ErrEntityNotFound
	}

	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Category != nil {
		e.Category = *patch.Category
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.Amount != nil {
		e.Amount = *patch.Amount
	}
	if patch.ApprovedBy != nil {
		e.Approval.ApprovedBy = *patch.ApprovedBy
	}
	if patch.Notes != nil {
		e.Approval.Notes = *patch.Notes
	}
	if patch.Status != nil {
		e.Status = *patch.Status
		now := time.Now().UTC()
		e.Approval.UpdatedAt = &now
	}

	m.recordExpense(domain.OpUpdate, *e)
	return nil
}

func (m *Manager) DeleteExpense(id string) error {
	if err := m.canMutate(); err != nil {
		return err
	}
	for i, e := range m.selected.Expenses {
		if e.ID == id {
			m.selected.Expenses = append(m.selected.Expenses[:i], m.selected.Expenses[i+1:]...)
			m.dirty.record(domain.PendingChange{Kind: domain.KindExpense, Op: domain.OpDelete, EntityID: id})
			m.selected.RefreshTotals()
			return nil
		}
	}
	return ErrEntityNotFound
}

func (m *Manager) findExpense(id string) *domain.Expense {
	for i := range m.selected.Expenses {
		if m.selected.Expenses[i].ID == id {
			return &m.selected.Expenses[i]
		}
	}
	return nil
}

func (m *Manager) recordExpense(op domain.ChangeOp, e domain.Expense) {
	snap := e.Clone()
	m.dirty.record(domain.PendingChange{Kind: domain.KindExpense, Op: op, EntityID: e.ID, Expense: &snap})
	m.selected.RefreshTotals()
}

// ── inventory mutators ───────────────────────────────────────────────────────

// InventoryPatch holds the optional fields of a partial inventory update.
type InventoryPatch struct {
	Name     *string
	Category *domain.InventoryCategory
	TotalQty *float64
	UsedQty  *float64
	Unit     *string
	UnitCost *float64
	Supplier *string
	Status   *domain.InventoryStatus
}

func (m *Manager) AddInventoryItem(item domain.InventoryItem) (domain.InventoryItem, error) {
	if err := m.canMutate(); err != nil {
		return domain.InventoryItem{}, err
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.Status == "" {
		item.Status = domain.InventoryPending
	}

	m.selected.Inventory = append(m.selected.Inventory, item)
	m.recordInventory(domain.OpCreate, item)
	return item, nil
}

func (m *Manager) UpdateInventoryItem(id string, patch InventoryPatch) error {
	if err := m.canMutate(); err != nil {
		return err
	}
	item := m.findInventoryItem(id)
	if item == nil {
		return ErrEntityNotFound
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.TotalQty != nil {
		item.TotalQty = *patch.TotalQty
	}
	if patch.UsedQty != nil {
		item.UsedQty = *patch.UsedQty
	}
	if patch.Unit != nil {
		item.Unit = *patch.Unit
	}
	if patch.UnitCost != nil {
		item.UnitCost = *patch.UnitCost
	}
	if patch.Supplier != nil {
		item.Supplier = *patch.Supplier
	}
	if patch.Status != nil {
		item.Status = *patch.Status
	}

	m.recordInventory(domain.OpUpdate, *item)
	return nil
}

func (m *Manager) DeleteInventoryItem(id string) error {
	if err := m.canMutate(); err != nil {
		return err
	}
	for i, item := range m.selected.Inventory {
		if item.ID == id {
			m.selected.Inventory = append(m.selected.Inventory[:i], m.selected.Inventory[i+1:]...)
			m.dirty.record(domain.PendingChange{Kind: domain.KindInventory, Op: domain.OpDelete, EntityID: id})
			return nil
		}
	}
	return ErrEntityNotFound
}

func (m *Manager) findInventoryItem(id string) *domain.InventoryItem {
	for i := range m.selected.Inventory {
		if m.selected.Inventory[i].ID == id {
			return &m.selected.Inventory[i]
		}
	}
	return nil
}

func (m *Manager) recordInventory(op domain.ChangeOp, item domain.InventoryItem) {
	snap := item
	m.dirty.record(domain.PendingChange{Kind: domain.KindInventory, Op: op, EntityID: item.ID, Inventory: &snap})
}

// ── team mutators ────────────────────────────────────────────────────────────

// AddTeamMember adds the worker to the selected project's team. Adding a
// worker who is already a member is a no-op and does not mark the session
// dirty; added reports whether the roster changed.
func (m *Manager) AddTeamMember(w domain.Worker) (added bool, err error) {
	if err := m.canMutate(); err != nil {
		return false, err
	}
	for _, member := range m.selected.Team {
		if member.ID == w.ID {
			return false, nil
		}
	}

	m.selected.Team = append(m.selected.Team, w.Clone())
	snap := w.Clone()
	m.dirty.record(domain.PendingChange{Kind: domain.KindTeam, Op: domain.OpCreate, EntityID: w.ID, Worker: &snap})
	return true, nil
}

// RemoveTeamMember removes the worker with the given ID from the team.
func (m *Manager) RemoveTeamMember(id string) error {
	if err := m.canMutate(); err != nil {
		return err
	}
	for i, member := range m.selected.Team {
		if member.ID == id {
			m.selected.Team = append(m.selected.Team[:i], m.selected.Team[i+1:]...)
			m.dirty.record(domain.PendingChange{Kind: domain.KindTeam, Op: domain.OpDelete, EntityID: id})
			return nil
		}
	}
	return ErrEntityNotFound
}

// canMutate guards every mutator: a project must be selected and no save may
// be in flight.
func (m *Manager) canMutate() error {
	if m.selected == nil {
		return ErrNoProject
	}
	if m.saving {
		return ErrSaveInFlight
	}
	return nil
}
