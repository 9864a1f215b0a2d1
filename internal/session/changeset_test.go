package session

import (
	"testing"

	"github.com/obradev/obra/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskChange(op domain.ChangeOp, id, title string) domain.PendingChange {
	c := domain.PendingChange{Kind: domain.KindTask, Op: op, EntityID: id}
	if op != domain.OpDelete {
		c.Task = &domain.Task{ID: id, Title: title}
	}
	return c
}

func TestChangeSet_UpdateAfterCreateFoldsIntoCreate(t *testing.T) {
	var cs changeSet
	cs.record(taskChange(domain.OpCreate, "t1", "Pour foundation"))
	cs.record(taskChange(domain.OpUpdate, "t1", "Pour foundation slab"))

	changes := cs.list()
	require.Len(t, changes, 1)
	assert.Equal(t, domain.OpCreate, changes[0].Op)
	assert.Equal(t, "Pour foundation slab", changes[0].Task.Title)
}

func TestChangeSet_RepeatedUpdatesCollapse(t *testing.T) {
	var cs changeSet
	cs.record(taskChange(domain.OpUpdate, "t1", "v1"))
	cs.record(taskChange(domain.OpUpdate, "t1", "v2"))
	cs.record(taskChange(domain.OpUpdate, "t1", "v3"))

	changes := cs.list()
	require.Len(t, changes, 1)
	assert.Equal(t, domain.OpUpdate, changes[0].Op)
	assert.Equal(t, "v3", changes[0].Task.Title)
}

func TestChangeSet_DeleteAfterCreateCancelsBoth(t *testing.T) {
	var cs changeSet
	cs.record(taskChange(domain.OpCreate, "t1", "ephemeral"))
	cs.record(taskChange(domain.OpDelete, "t1", ""))

	assert.True(t, cs.empty(), "the backend never saw the entity, nothing to send")
}

func TestChangeSet_DeleteReplacesUpdate(t *testing.T) {
	var cs changeSet
	cs.record(taskChange(domain.OpUpdate, "t1", "edited"))
	cs.record(taskChange(domain.OpDelete, "t1", ""))

	changes := cs.list()
	require.Len(t, changes, 1)
	assert.Equal(t, domain.OpDelete, changes[0].Op)
}

func TestChangeSet_SameIDDifferentKindsStaySeparate(t *testing.T) {
	var cs changeSet
	cs.record(taskChange(domain.OpUpdate, "shared", "task"))
	cs.record(domain.PendingChange{Kind: domain.KindExpense, Op: domain.OpDelete, EntityID: "shared"})

	assert.Len(t, cs.list(), 2)
}

func TestChangeSet_PreservesInsertionOrder(t *testing.T) {
	var cs changeSet
	cs.record(taskChange(domain.OpCreate, "t1", "first"))
	cs.record(domain.PendingChange{Kind: domain.KindTeam, Op: domain.OpDelete, EntityID: "w1"})
	cs.record(taskChange(domain.OpUpdate, "t2", "third"))

	changes := cs.list()
	require.Len(t, changes, 3)
	assert.Equal(t, "t1", changes[0].EntityID)
	assert.Equal(t, "w1", changes[1].EntityID)
	assert.Equal(t, "t2", changes[2].EntityID)
}
