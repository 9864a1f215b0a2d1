package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/obradev/obra/internal/cli/formatter"
	"github.com/obradev/obra/internal/domain"
	"github.com/obradev/obra/internal/session"
)

// inventoryListView lists the selected project's materials and supplies.
type inventoryListView struct {
	state  *SharedState
	cursor int
}

func newInventoryListView(state *SharedState) *inventoryListView {
	return &inventoryListView{state: state}
}

func (v *inventoryListView) ID() ViewID    { return ViewInventoryList }
func (v *inventoryListView) Title() string { return "Inventory" }

func (v *inventoryListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "use stock")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	}
}

func (v *inventoryListView) Init() tea.Cmd { return nil }

func (v *inventoryListView) items() []domain.InventoryItem {
	sel := v.state.App.Session.Selected()
	if sel == nil {
		return nil
	}
	return sel.Inventory
}

func (v *inventoryListView) currentItem() *domain.InventoryItem {
	items := v.items()
	if v.cursor >= len(items) {
		return nil
	}
	item := items[v.cursor]
	return &item
}

func (v *inventoryListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		if n := len(v.items()); v.cursor >= n && v.cursor > 0 {
			v.cursor = n - 1
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.items())-1 {
				v.cursor++
			}
		case "n":
			return v, v.newItemWizard()
		case "e":
			return v, v.editItemWizard()
		case "u":
			return v, v.useStockWizard()
		case "x":
			return v, v.deleteItemWizard()
		case "s":
			return v, saveSessionCmd(v.state)
		}
	}
	return v, nil
}

func (v *inventoryListView) newItemWizard() tea.Cmd {
	if v.state.App.Session.Selected() == nil {
		return setStatus(v.state.App.T("project.none_selected"))
	}

	var name, totalQty, unit, unitCost, supplier string
	usedQty := "0"
	category := string(domain.InventoryMaterials)
	status := string(domain.InventoryPending)

	form := inventoryForm(&name, &category, &totalQty, &usedQty, &unit, &unitCost, &supplier, &status)
	return startWizard(v.state, "New Inventory Item", form, func() tea.Cmd {
		app := v.state.App
		return tea.Batch(
			mutate(v.state, app.T("inventory.created", name), func() error {
				_, err := app.Session.AddInventoryItem(domain.InventoryItem{
					Name:     name,
					Category: domain.InventoryCategory(category),
					TotalQty: parseAmount(totalQty),
					UsedQty:  parseAmount(usedQty),
					Unit:     unit,
					UnitCost: parseAmount(unitCost),
					Supplier: supplier,
					Status:   domain.InventoryStatus(status),
				})
				return err
			}),
			refreshViews(),
		)
	})
}

func (v *inventoryListView) editItemWizard() tea.Cmd {
	item := v.currentItem()
	if item == nil {
		return nil
	}

	name := item.Name
	category := string(item.Category)
	totalQty := formatter.Qty(item.TotalQty)
	usedQty := formatter.Qty(item.UsedQty)
	unit := item.Unit
	unitCost := fmt.Sprintf("%.2f", item.UnitCost)
	supplier := item.Supplier
	status := string(item.Status)
	itemID := item.ID

	form := inventoryForm(&name, &category, &totalQty, &usedQty, &unit, &unitCost, &supplier, &status)
	return startWizard(v.state, "Edit Inventory Item", form, func() tea.Cmd {
		app := v.state.App
		return tea.Batch(
			mutate(v.state, app.T("inventory.updated", name), func() error {
				cat := domain.InventoryCategory(category)
				total := parseAmount(totalQty)
				used := parseAmount(usedQty)
				cost := parseAmount(unitCost)
				st := domain.InventoryStatus(status)
				patch := session.InventoryPatch{
					Name:     &name,
					Category: &cat,
					TotalQty: &total,
					UsedQty:  &used,
					Unit:     &unit,
					UnitCost: &cost,
					Supplier: &supplier,
					Status:   &st,
				}
				return app.Session.UpdateInventoryItem(itemID, patch)
			}),
			refreshViews(),
		)
	})
}

// useStockWizard records consumption: the entered quantity is added to the
// item's used count.
func (v *inventoryListView) useStockWizard() tea.Cmd {
	item := v.currentItem()
	if item == nil {
		return nil
	}
	itemID, name, usedNow := item.ID, item.Name, item.UsedQty

	var qty string
	form := quantityForm(fmt.Sprintf("Quantity of %q to use", name), &qty)
	return startWizard(v.state, "Use Stock", form, func() tea.Cmd {
		app := v.state.App
		return tea.Batch(
			mutate(v.state, app.T("inventory.updated", name), func() error {
				used := usedNow + parseAmount(qty)
				return app.Session.UpdateInventoryItem(itemID, session.InventoryPatch{UsedQty: &used})
			}),
			refreshViews(),
		)
	})
}

func (v *inventoryListView) deleteItemWizard() tea.Cmd {
	item := v.currentItem()
	if item == nil {
		return nil
	}
	itemID, name := item.ID, item.Name

	confirmed := false
	form := confirmForm(fmt.Sprintf("Delete inventory item %q?", name), &confirmed)
	return startWizard(v.state, "Delete Inventory Item", form, func() tea.Cmd {
		if !confirmed {
			return nil
		}
		app := v.state.App
		return tea.Batch(
			mutate(v.state, app.T("inventory.deleted"), func() error {
				return app.Session.DeleteInventoryItem(itemID)
			}),
			refreshViews(),
		)
	})
}

func (v *inventoryListView) View() string {
	sel := v.state.App.Session.Selected()
	if sel == nil {
		return "\n  " + formatter.Dim(v.state.App.T("project.none_selected"))
	}

	items := v.items()
	if len(items) == 0 {
		return "\n  " + formatter.Dim("No inventory yet.") +
			"  " + formatter.Dim("(press 'n' to add an item)")
	}

	var b strings.Builder
	b.WriteString("\n")

	totalValue := 0.0
	for i, item := range items {
		cursor := "  "
		style := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			style = formatter.StyleBold
		}

		b.WriteString(fmt.Sprintf("%s%s  %s %s  %s/%s %s  %s\n",
			cursor,
			style.Render(formatter.PadRight(item.Name, 24)),
			formatter.CategoryBadge(string(item.Category)),
			formatter.InventoryStatusPill(item.Status),
			formatter.Qty(item.UsedQty),
			formatter.Qty(item.TotalQty),
			formatter.Dim(item.Unit),
			formatter.Money(item.TotalQty*item.UnitCost),
		))
		totalValue += item.TotalQty * item.UnitCost
	}

	b.WriteString("\n  " + formatter.Dim("Stock value: ") + formatter.Bold(formatter.Money(totalValue)) + "\n")
	return b.String()
}
