package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/obradev/obra/internal/domain"
)

func TestCanView(t *testing.T) {
	for _, s := range AllSections {
		assert.True(t, CanView(domain.RoleAdmin, s), "admin should see %s", s)
	}

	assert.True(t, CanView(domain.RoleClient, SectionExpenses))
	assert.True(t, CanView(domain.RoleClient, SectionReports))
	assert.False(t, CanView(domain.RoleClient, SectionInventory))
	assert.False(t, CanView(domain.RoleClient, SectionTeam))

	assert.True(t, CanView(domain.RoleWorker, SectionInventory))
	assert.True(t, CanView(domain.RoleWorker, SectionTeam))
	assert.False(t, CanView(domain.RoleWorker, SectionExpenses))
	assert.False(t, CanView(domain.RoleWorker, SectionReports))

	assert.False(t, CanView(domain.Role("intruder"), SectionDashboard))
}

func TestSectionsFor(t *testing.T) {
	assert.Equal(t, AllSections, SectionsFor(domain.RoleAdmin))

	worker := SectionsFor(domain.RoleWorker)
	assert.Contains(t, worker, SectionInventory)
	assert.NotContains(t, worker, SectionExpenses)

	assert.Empty(t, SectionsFor(domain.Role("")))
}
