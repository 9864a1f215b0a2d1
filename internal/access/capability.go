// Package access maps user roles to the dashboard sections they may open.
package access

import "github.com/obradev/obra/internal/domain"

// Section identifies a navigable area of the client.
type Section string

const (
	SectionDashboard     Section = "dashboard"
	SectionProjects      Section = "projects"
	SectionTasks         Section = "tasks"
	SectionExpenses      Section = "expenses"
	SectionInventory     Section = "inventory"
	SectionTeam          Section = "team"
	SectionNotifications Section = "notifications"
	SectionReports       Section = "reports"
)

// AllSections lists every section in display order.
var AllSections = []Section{
	SectionDashboard,
	SectionProjects,
	SectionTasks,
	SectionExpenses,
	SectionInventory,
	SectionTeam,
	SectionNotifications,
	SectionReports,
}

var roleSections = map[domain.Role]map[Section]bool{
	domain.RoleAdmin: {
		SectionDashboard:     true,
		SectionProjects:      true,
		SectionTasks:         true,
		SectionExpenses:      true,
		SectionInventory:     true,
		SectionTeam:          true,
		SectionNotifications: true,
		SectionReports:       true,
	},
	domain.RoleClient: {
		SectionDashboard:     true,
		SectionProjects:      true,
		SectionTasks:         true,
		SectionExpenses:      true,
		SectionNotifications: true,
		SectionReports:       true,
	},
	domain.RoleWorker: {
		SectionDashboard:     true,
		SectionProjects:      true,
		SectionTasks:         true,
		SectionInventory:     true,
		SectionTeam:          true,
		SectionNotifications: true,
	},
}

// CanView reports whether role may open section. Unknown roles see nothing.
func CanView(role domain.Role, section Section) bool {
	return roleSections[role][section]
}

// SectionsFor returns the sections visible to role, in display order.
func SectionsFor(role domain.Role) []Section {
	var out []Section
	for _, s := range AllSections {
		if roleSections[role][s] {
			out = append(out, s)
		}
	}
	return out
}
