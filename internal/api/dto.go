package api

import (
	"time"

	"github.com/obradev/obra/internal/domain"
)

// Wire types for the backend's JSON payloads. Every dynamic payload crosses
// this boundary through an explicit mapping function; domain types never
// carry json tags.

type projectDTO struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Admin       string         `json:"admin"`
	BudgetLimit float64        `json:"budget_limit"`
	Spend       float64        `json:"spend"`
	Progress    progressDTO    `json:"progress"`
	Location    string         `json:"location,omitempty"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     *time.Time     `json:"end_date,omitempty"`
	Status      string         `json:"status"`
	Clients     []string       `json:"clients,omitempty"`
	Tasks       []taskDTO      `json:"tasks"`
	Team        []workerDTO    `json:"team"`
	Inventory   []inventoryDTO `json:"inventory"`
	Expenses    []expenseDTO   `json:"expenses"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type progressDTO struct {
	Done       int `json:"done"`
	InProgress int `json:"in_progress"`
	Todo       int `json:"todo"`
}

type taskDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Assignee    string     `json:"assignee,omitempty"`
	WorkerID    string     `json:"worker_id,omitempty"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type expenseDTO struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Date        time.Time      `json:"date"`
	Category    string         `json:"category"`
	Description string         `json:"description,omitempty"`
	Amount      float64        `json:"amount"`
	Status      string         `json:"status"`
	ProjectInfo projectInfoDTO `json:"project_info"`
}

type projectInfoDTO struct {
	ApprovedBy string     `json:"approved_by,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

type inventoryDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	TotalQty float64 `json:"total_quantity"`
	UsedQty  float64 `json:"used_quantity"`
	Unit     string  `json:"unit"`
	UnitCost float64 `json:"unit_cost"`
	Supplier string  `json:"supplier,omitempty"`
	Status   string  `json:"status"`
}

type workerDTO struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Role             string   `json:"role,omitempty"`
	Phone            string   `json:"phone,omitempty"`
	Contact          string   `json:"contact,omitempty"`
	Skills           []string `json:"skills,omitempty"`
	Availability     string   `json:"availability,omitempty"`
	AssignedProjects []string `json:"assigned_projects,omitempty"`
	TasksCompleted   int      `json:"tasks_completed"`
	TasksInProgress  int      `json:"tasks_in_progress"`
	Efficiency       float64  `json:"efficiency"`
}

type notificationDTO struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id,omitempty"`
	TaskID    string    `json:"task_id,omitempty"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type changeDTO struct {
	Entity    string        `json:"entity"`
	Op        string        `json:"op"`
	EntityID  string        `json:"entity_id"`
	Task      *taskDTO      `json:"task,omitempty"`
	Expense   *expenseDTO   `json:"expense,omitempty"`
	Inventory *inventoryDTO `json:"inventory,omitempty"`
	Worker    *workerDTO    `json:"worker,omitempty"`
}

// saveProjectRequest is the body of PUT /projects/{id}: the full post-edit
// project plus the merged change batch that produced it.
type saveProjectRequest struct {
	Project projectDTO  `json:"project"`
	Changes []changeDTO `json:"changes"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// ── wire → domain ────────────────────────────────────────────────────────────

func toDomainProject(d projectDTO) *domain.Project {
	p := &domain.Project{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Admin:       d.Admin,
		BudgetLimit: d.BudgetLimit,
		Spend:       d.Spend,
		Progress:    domain.Progress{Done: d.Progress.Done, InProgress: d.Progress.InProgress, Todo: d.Progress.Todo},
		Location:    d.Location,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Status:      domain.ProjectStatus(d.Status),
		Clients:     d.Clients,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	for _, t := range d.Tasks {
		p.Tasks = append(p.Tasks, toDomainTask(t))
	}
	for _, w := range d.Team {
		p.Team = append(p.Team, toDomainWorker(w))
	}
	for _, i := range d.Inventory {
		p.Inventory = append(p.Inventory, toDomainInventory(i))
	}
	for _, e := range d.Expenses {
		p.Expenses = append(p.Expenses, toDomainExpense(e))
	}
	return p
}

func toDomainTask(d taskDTO) domain.Task {
	return domain.Task{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Assignee:    d.Assignee,
		WorkerID:    d.WorkerID,
		Status:      domain.TaskStatus(d.Status),
		DueDate:     d.DueDate,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toDomainExpense(d expenseDTO) domain.Expense {
	return domain.Expense{
		ID:          d.ID,
		Title:       d.Title,
		Date:        d.Date,
		Category:    domain.ExpenseCategory(d.Category),
		Description: d.Description,
		Amount:      d.Amount,
		Status:      domain.ExpenseStatus(d.Status),
		Approval: domain.ApprovalInfo{
			ApprovedBy: d.ProjectInfo.ApprovedBy,
			Notes:      d.ProjectInfo.Notes,
			UpdatedAt:  d.ProjectInfo.UpdatedAt,
		},
	}
}

func toDomainInventory(d inventoryDTO) domain.InventoryItem {
	return domain.InventoryItem{
		ID:       d.ID,
		Name:     d.Name,
		Category: domain.InventoryCategory(d.Category),
		TotalQty: d.TotalQty,
		UsedQty:  d.UsedQty,
		Unit:     d.Unit,
		UnitCost: d.UnitCost,
		Supplier: d.Supplier,
		Status:   domain.InventoryStatus(d.Status),
	}
}

func toDomainWorker(d workerDTO) domain.Worker {
	return domain.Worker{
		ID:               d.ID,
		Name:             d.Name,
		Role:             d.Role,
		Phone:            d.Phone,
		Contact:          d.Contact,
		Skills:           d.Skills,
		Availability:     d.Availability,
		AssignedProjects: d.AssignedProjects,
		TasksCompleted:   d.TasksCompleted,
		TasksInProgress:  d.TasksInProgress,
		Efficiency:       d.Efficiency,
	}
}

func toDomainNotification(d notificationDTO) *domain.Notification {
	return &domain.Notification{
		ID:        d.ID,
		ProjectID: d.ProjectID,
		TaskID:    d.TaskID,
		Kind:      domain.NotificationKind(d.Kind),
		Message:   d.Message,
		Read:      d.Read,
		CreatedAt: d.CreatedAt,
	}
}

// ── domain → wire ────────────────────────────────────────────────────────────

func fromDomainProject(p *domain.Project) projectDTO {
	d := projectDTO{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Admin:       p.Admin,
		BudgetLimit: p.BudgetLimit,
		Spend:       p.Spend,
		Progress:    progressDTO{Done: p.Progress.Done, InProgress: p.Progress.InProgress, Todo: p.Progress.Todo},
		Location:    p.Location,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Status:      string(p.Status),
		Clients:     p.Clients,
		Tasks:       []taskDTO{},
		Team:        []workerDTO{},
		Inventory:   []inventoryDTO{},
		Expenses:    []expenseDTO{},
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for _, t := range p.Tasks {
		d.Tasks = append(d.Tasks, fromDomainTask(t))
	}
	for _, w := range p.Team {
		d.Team = append(d.Team, fromDomainWorker(w))
	}
	for _, i := range p.Inventory {
		d.Inventory = append(d.Inventory, fromDomainInventory(i))
	}
	for _, e := range p.Expenses {
		d.Expenses = append(d.Expenses, fromDomainExpense(e))
	}
	return d
}

func fromDomainTask(t domain.Task) taskDTO {
	return taskDTO{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Assignee:    t.Assignee,
		WorkerID:    t.WorkerID,
		Status:      string(t.Status),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func fromDomainExpense(e domain.Expense) expenseDTO {
	return expenseDTO{
		ID:          e.ID,
		Title:       e.Title,
		Date:        e.Date,
		Category:    string(e.Category),
		Description: e.Description,
		Amount:      e.Amount,
		Status:      string(e.Status),
		ProjectInfo: projectInfoDTO{
			ApprovedBy: e.Approval.ApprovedBy,
			Notes:      e.Approval.Notes,
			UpdatedAt:  e.Approval.UpdatedAt,
		},
	}
}

func fromDomainInventory(i domain.InventoryItem) inventoryDTO {
	return inventoryDTO{
		ID:       i.ID,
		Name:     i.Name,
		Category: string(i.Category),
		TotalQty: i.TotalQty,
		UsedQty:  i.UsedQty,
		Unit:     i.Unit,
		UnitCost: i.UnitCost,
		Supplier: i.Supplier,
		Status:   string(i.Status),
	}
}

func fromDomainWorker(w domain.Worker) workerDTO {
	return workerDTO{
		ID:               w.ID,
		Name:             w.Name,
		Role:             w.Role,
		Phone:            w.Phone,
		Contact:          w.Contact,
		Skills:           w.Skills,
		Availability:     w.Availability,
		AssignedProjects: w.AssignedProjects,
		TasksCompleted:   w.TasksCompleted,
		TasksInProgress:  w.TasksInProgress,
		Efficiency:       w.Efficiency,
	}
}

func fromDomainChange(c domain.PendingChange) changeDTO {
	d := changeDTO{
		Entity:   string(c.Kind),
		Op:       string(c.Op),
		EntityID: c.EntityID,
	}
	if c.Task != nil {
		t := fromDomainTask(*c.Task)
		d.Task = &t
	}
	if c.Expense != nil {
		e := fromDomainExpense(*c.Expense)
		d.Expense = &e
	}
	if c.Inventory != nil {
		i := fromDomainInventory(*c.Inventory)
		d.Inventory = &i
	}
	if c.Worker != nil {
		w := fromDomainWorker(*c.Worker)
		d.Worker = &w
	}
	return d
}
