package session

import "github.com/obradev/obra/internal/domain"

// changeSet is the dirty set: the ordered, merged collection of uncommitted
// mutations for the selected project. Merging keeps at most one record per
// (kind, entity) pair:
//
//   - an update after a create folds into the create (payload replaced)
//   - repeated updates collapse into one
//   - a delete after a create cancels both (the backend never saw the entity)
//   - a delete replaces any prior update
type changeSet struct {
	changes []domain.PendingChange
}

func (cs *changeSet) empty() bool { return len(cs.changes) == 0 }

func (cs *changeSet) reset() { cs.changes = nil }

// list returns a copy of the merged changes in insertion order.
func (cs *changeSet) list() []domain.PendingChange {
	out := make([]domain.PendingChange, len(cs.changes))
	copy(out, cs.changes)
	return out
}

func (cs *changeSet) record(c domain.PendingChange) {
	idx := cs.find(c.Kind, c.EntityID)

	switch c.Op {
	case domain.OpCreate:
		cs.changes = append(cs.changes, c)

	case domain.OpUpdate:
		if idx < 0 {
			cs.changes = append(cs.changes, c)
			return
		}
		prev := cs.changes[idx]
		if prev.Op == domain.OpCreate {
			// Keep the create, refresh its payload.
			c.Op = domain.OpCreate
		}
		cs.changes[idx] = c

	case domain.OpDelete:
		if idx >= 0 && cs.changes[idx].Op == domain.OpCreate {
			cs.changes = append(cs.changes[:idx], cs.changes[idx+1:]...)
			return
		}
		if idx >= 0 {
			cs.changes[idx] = c
			return
		}
		cs.changes = append(cs.changes, c)
	}
}

func (cs *changeSet) find(kind domain.EntityKind, id string) int {
	for i, c := range cs.changes {
		if c.Kind == kind && c.EntityID == id {
			return i
		}
	}
	return -1
}
