package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/obradev/obra/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token(ctx context.Context) (string, error) { return string(s), nil }

func testClient(t *testing.T, handler http.Handler) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	return NewClient(cfg, staticToken("test-token"), NoopObserver{})
}

func TestListProjects_MapsWirePayloadToDomain(t *testing.T) {
	due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	payload := []projectDTO{{
		ID:          "p1",
		Title:       "Riverside Apartments",
		Admin:       "Ana",
		BudgetLimit: 50000,
		Spend:       12000,
		Progress:    progressDTO{Done: 2, InProgress: 1, Todo: 3},
		Status:      "active",
		StartDate:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Tasks: []taskDTO{
			{ID: "t1", Title: "Pour foundation", Status: "done"},
			{ID: "t2", Title: "Frame walls", Status: "in_progress", DueDate: &due},
		},
		Expenses: []expenseDTO{
			{ID: "e1", Title: "Cement", Category: "Materials", Amount: 800, Status: "Approved",
				ProjectInfo: projectInfoDTO{ApprovedBy: "Ana", Notes: "bulk order"}},
		},
		Inventory: []inventoryDTO{
			{ID: "i1", Name: "Rebar", Category: "Materials", TotalQty: 500, UsedQty: 120, Unit: "kg", UnitCost: 1.2, Status: "Installed"},
		},
		Team: []workerDTO{
			{ID: "w1", Name: "Luis", Role: "Electrician", Skills: []string{"wiring"}, Efficiency: 87.5},
		},
	}}

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(payload)
	}))

	projects, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)

	p := projects[0]
	assert.Equal(t, "Riverside Apartments", p.Title)
	assert.Equal(t, domain.ProjectActive, p.Status)
	assert.Equal(t, domain.Progress{Done: 2, InProgress: 1, Todo: 3}, p.Progress)

	require.Len(t, p.Tasks, 2)
	assert.Equal(t, domain.TaskInProgress, p.Tasks[1].Status)
	require.NotNil(t, p.Tasks[1].DueDate)

	require.Len(t, p.Expenses, 1)
	assert.Equal(t, domain.ExpenseCategory("Materials"), p.Expenses[0].Category)
	assert.Equal(t, "Ana", p.Expenses[0].Approval.ApprovedBy)

	require.Len(t, p.Inventory, 1)
	assert.Equal(t, float64(380), p.Inventory[0].RemainingQty())

	require.Len(t, p.Team, 1)
	assert.Equal(t, 87.5, p.Team[0].Efficiency)
}

func TestSaveProject_SendsFullProjectAndChangeBatch(t *testing.T) {
	var got saveProjectRequest
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects/p1", r.URL.Path)
		assert.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))

	p := &domain.Project{
		ID:    "p1",
		Title: "Riverside Apartments",
		Tasks: []domain.Task{{ID: "t1", Title: "Pour foundation", Status: domain.TaskTodo}},
	}
	changes := []domain.PendingChange{
		{Kind: domain.KindTask, Op: domain.OpCreate, EntityID: "t1",
			Task: &domain.Task{ID: "t1", Title: "Pour foundation", Status: domain.TaskTodo}},
		{Kind: domain.KindExpense, Op: domain.OpDelete, EntityID: "e9"},
	}

	require.NoError(t, client.SaveProject(context.Background(), p, changes))

	assert.Equal(t, "p1", got.Project.ID)
	require.Len(t, got.Changes, 2)
	assert.Equal(t, "task", got.Changes[0].Entity)
	assert.Equal(t, "create", got.Changes[0].Op)
	require.NotNil(t, got.Changes[0].Task)
	assert.Equal(t, "Pour foundation", got.Changes[0].Task.Title)
	assert.Equal(t, "delete", got.Changes[1].Op)
	assert.Nil(t, got.Changes[1].Expense, "deletes carry no payload")
}

func TestClient_Unauthorized(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.ListProjects(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_NotFound(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetProject(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_ConnectionRefusedMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listening anymore

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	client := NewClient(cfg, nil, NoopObserver{})

	_, err := client.ListProjects(context.Background())
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestLogin_ReturnsToken(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ana@example.com", req.Email)
		json.NewEncoder(w).Encode(loginResponse{Token: "issued-token"})
	}))

	token, err := client.Login(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "issued-token", token)
}

func TestNotifications_ListAndMarkRead(t *testing.T) {
	var markedPath string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/notifications":
			json.NewEncoder(w).Encode([]notificationDTO{
				{ID: "n1", ProjectID: "p1", Kind: "task_assigned", Message: "You were assigned Wiring"},
			})
		case r.Method == http.MethodPut:
			markedPath = r.URL.Path
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	ctx := context.Background()
	notifications, err := client.ListNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, domain.NotifyTaskAssigned, notifications[0].Kind)
	assert.False(t, notifications[0].Read)

	require.NoError(t, client.MarkNotificationRead(ctx, "n1"))
	assert.Equal(t, "/notifications/n1/read", markedPath)

	require.NoError(t, client.MarkAllNotificationsRead(ctx, "p1"))
	assert.Equal(t, "/notifications/p1/mark_all_read", markedPath)
}
