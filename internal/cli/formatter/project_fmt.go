package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/obradev/obra/internal/domain"
)

// FormatProjectList renders a styled project table inside a bordered box.
func FormatProjectList(projects []*domain.Project, selectedID string) string {
	headers := []string{"", "ID", "TITLE", "STATUS", "BUDGET", "SPEND", "END"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		marker := " "
		if p.ID == selectedID {
			marker = StyleGreen.Render("▸")
		}

		endStr := Dim("--")
		if p.EndDate != nil {
			endStr = RelativeDateStyled(*p.EndDate)
		}

		rows = append(rows, []string{
			marker,
			TruncID(p.ID),
			Bold(p.Title),
			StatusPill(p.Status),
			Money(p.BudgetLimit),
			MoneyStyled(p.Spend, p.BudgetLimit),
			endStr,
		})
	}

	table := RenderTable(headers, rows)
	return RenderBox("Projects", table)
}

// FormatProjectInspect renders a styled project card with metadata on the
// left and budget/progress figures on the right.
func FormatProjectInspect(p *domain.Project) string {
	left := buildMetadataPanel(p)
	right := buildFiguresPanel(p)
	combined := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
	return RenderBox("", combined)
}

func buildMetadataPanel(p *domain.Project) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(p.Title) + "\n")
	if p.Location != "" {
		b.WriteString(Dim(p.Location) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STATUS"), StatusPill(p.Status)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ID    "), TruncID(p.ID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ADMIN "), StyleFg.Render(p.Admin)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("START "), StyleFg.Render(HumanDate(p.StartDate))))

	if p.EndDate != nil {
		endRelative := RelativeDateStyled(*p.EndDate)
		endAbsolute := p.EndDate.Format("Jan 2, 2006")
		b.WriteString(fmt.Sprintf("%s  %s %s\n", StyleDim.Render("END   "), endRelative, Dim("("+endAbsolute+")")))
	}

	b.WriteString(fmt.Sprintf("%s %s\n", StyleDim.Render("UPDATED"), HumanTimestamp(p.UpdatedAt)))

	if p.Description != "" {
		b.WriteString("\n" + StyleFg.Render(p.Description) + "\n")
	}

	return lipgloss.NewStyle().Width(45).Render(b.String())
}

func buildFiguresPanel(p *domain.Project) string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render("BUDGET") + "\n")
	b.WriteString(RenderBudgetBar(p.Spend, p.BudgetLimit, 16) + "\n")
	if p.OverBudget() {
		b.WriteString(StyleRed.Render("** OVER BUDGET **") + "\n")
	}
	b.WriteString("\n")

	total := p.Progress.Done + p.Progress.InProgress + p.Progress.Todo
	b.WriteString(StyleHeader.Render("TASKS") + "\n")
	if total > 0 {
		pct := float64(p.Progress.Done) / float64(total)
		b.WriteString(RenderProgress(pct, 16) + "\n")
	}
	b.WriteString(fmt.Sprintf("%d total  %s done  %s active  %s todo\n",
		total,
		StyleGreen.Render(fmt.Sprintf("%d", p.Progress.Done)),
		StyleYellow.Render(fmt.Sprintf("%d", p.Progress.InProgress)),
		StyleBlue.Render(fmt.Sprintf("%d", p.Progress.Todo)),
	))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s %d member(s)  %s %d item(s)  %s %d expense(s)\n",
		Dim("Team"), len(p.Team),
		Dim("Inventory"), len(p.Inventory),
		Dim("Expenses"), len(p.Expenses),
	))

	return b.String()
}
