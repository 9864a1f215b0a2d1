package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obradev/obra/internal/access"
	"github.com/obradev/obra/internal/cli/formatter"
	"github.com/obradev/obra/internal/domain"
	"github.com/obradev/obra/internal/session"
)

func newInventoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv"},
		Short:   "Manage inventory on the selected project",
	}

	cmd.AddCommand(
		newInventoryListCmd(app),
		newInventoryAddCmd(app),
		newInventoryUpdateCmd(app),
		newInventoryUseCmd(app),
		newInventoryRemoveCmd(app),
	)

	return cmd
}

func inventoryContext(ctx context.Context, app *App) error {
	if _, err := requireSection(ctx, app, access.SectionInventory); err != nil {
		return err
	}
	return requireSelected(ctx, app)
}

func resolveInventoryID(app *App, input string) (string, error) {
	items := app.Session.Selected().Inventory
	for _, it := range items {
		if it.ID == input {
			return it.ID, nil
		}
	}
	var matches []string
	for _, it := range items {
		if len(input) >= 4 && len(it.ID) >= len(input) && it.ID[:len(input)] == input {
			matches = append(matches, it.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("inventory item not found: %q", input)
	default:
		return "", fmt.Errorf("inventory ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newInventoryListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List inventory items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := inventoryContext(ctx, app); err != nil {
				return err
			}
			fmt.Println(formatter.FormatInventoryList(app.Session.Selected().Inventory))
			return nil
		},
	}
}

func newInventoryAddCmd(app *App) *cobra.Command {
	var name, category, unit, supplier, status string
	var totalQty, usedQty, unitCost float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Stage a new inventory item",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := inventoryContext(ctx, app); err != nil {
				return err
			}

			if name == "" {
				if !app.Interactive {
					return fmt.Errorf("--name is required in non-interactive mode")
				}
				var totalStr, usedStr, costStr string
				category = string(domain.InventoryMaterials)
				status = string(domain.InventoryInBudget)
				form := inventoryForm(&name, &category, &totalStr, &usedStr, &unit, &costStr, &supplier, &status)
				if err := form.Run(); err != nil {
					return err
				}
				totalQty = parseAmount(totalStr)
				usedQty = parseAmount(usedStr)
				unitCost = parseAmount(costStr)
			}

			if category != "" && !domain.ValidInventoryCategories[category] {
				return fmt.Errorf("invalid category %q", category)
			}
			if category == "" {
				category = string(domain.InventoryMaterials)
			}

			item := domain.InventoryItem{
				Name:     name,
				Category: domain.InventoryCategory(category),
				TotalQty: totalQty,
				UsedQty:  usedQty,
				Unit:     unit,
				UnitCost: unitCost,
				Supplier: supplier,
				Status:   domain.InventoryStatus(status),
			}
			created, err := app.Session.AddInventoryItem(item)
			if err != nil {
				return err
			}
			if err := persistSession(ctx, app); err != nil {
				return err
			}

			fmt.Println(app.T("inventory.created", created.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().StringVar(&category, "category", "", "Category (Services|Materials|Products|Labour)")
	cmd.Flags().Float64Var(&totalQty, "total", 0, "Total quantity")
	cmd.Flags().Float64Var(&usedQty, "used", 0, "Used quantity")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit of measure")
	cmd.Flags().Float64Var(&unitCost, "cost", 0, "Unit cost")
	cmd.Flags().StringVar(&supplier, "supplier", "", "Supplier")
	cmd.Flags().StringVar(&status, "status", "", "Status (Installed|Pending|In_Budget)")

	return cmd
}

func newInventoryUpdateCmd(app *App) *cobra.Command {
	var name, category, unit, supplier, status string
	var totalQty, usedQty, unitCost float64

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Stage changes to an inventory item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := inventoryContext(ctx, app); err != nil {
				return err
			}
			id, err := resolveInventoryID(app, args[0])
			if err != nil {
				return err
			}

			var patch session.InventoryPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("category") {
				if !domain.ValidInventoryCategories[category] {
					return fmt.Errorf("invalid category %q", category)
				}
				c := domain.InventoryCategory(category)
				patch.Category = &c
			}
			if cmd.Flags().Changed("total") {
				patch.TotalQty = &totalQty
			}
			if cmd.Flags().Changed("used") {
				patch.UsedQty = &usedQty
			}
			if cmd.Flags().Changed("unit") {
				patch.Unit = &unit
			}
			if cmd.Flags().Changed("cost") {
				patch.UnitCost = &unitCost
			}
			if cmd.Flags().Changed("supplier") {
				patch.Supplier = &supplier
			}
			if cmd.Flags().Changed("status") {
				s := domain.InventoryStatus(status)
				patch.Status = &s
			}

			if err := app.Session.UpdateInventoryItem(id, patch); err != nil {
				return err
			}
			if err := persistSession(ctx, app); err != nil {
				return err
			}

			fmt.Println(app.T("inventory.updated", inventoryName(app, id)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().StringVar(&category, "category", "", "Category")
	cmd.Flags().Float64Var(&totalQty, "total", 0, "Total quantity")
	cmd.Flags().Float64Var(&usedQty, "used", 0, "Used quantity")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit of measure")
	cmd.Flags().Float64Var(&unitCost, "cost", 0, "Unit cost")
	cmd.Flags().StringVar(&supplier, "supplier", "", "Supplier")
	cmd.Flags().StringVar(&status, "status", "", "Status (Installed|Pending|In_Budget)")

	return cmd
}

// newInventoryUseCmd records consumption: it adds to the used quantity
// rather than replacing it.
func newInventoryUseCmd(app *App) *cobra.Command {
	var qty float64

	cmd := &cobra.Command{
		Use:   "use ID",
		Short: "Record quantity used from stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := inventoryContext(ctx, app); err != nil {
				return err
			}
			id, err := resolveInventoryID(app, args[0])
			if err != nil {
				return err
			}
			if qty <= 0 {
				return fmt.Errorf("--qty must be positive")
			}

			var current *domain.InventoryItem
			for i := range app.Session.Selected().Inventory {
				if app.Session.Selected().Inventory[i].ID == id {
					current = &app.Session.Selected().Inventory[i]
					break
				}
			}
			if current == nil {
				return session.ErrEntityNotFound
			}

			used := current.UsedQty + qty
			if err := app.Session.UpdateInventoryItem(id, session.InventoryPatch{UsedQty: &used}); err != nil {
				return err
			}
			if err := persistSession(ctx, app); err != nil {
				return err
			}

			fmt.Println(app.T("inventory.updated", current.Name))
			return nil
		},
	}

	cmd.Flags().Float64Var(&qty, "qty", 0, "Quantity consumed")
	_ = cmd.MarkFlagRequired("qty")

	return cmd
}

func newInventoryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Stage an inventory item deletion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := inventoryContext(ctx, app); err != nil {
				return err
			}
			id, err := resolveInventoryID(app, args[0])
			if err != nil {
				return err
			}
			if err := app.Session.DeleteInventoryItem(id); err != nil {
				return err
			}
			if err := persistSession(ctx, app); err != nil {
				return err
			}
			fmt.Println(app.T("inventory.deleted"))
			return nil
		},
	}
}

func inventoryName(app *App, id string) string {
	for _, it := range app.Session.Selected().Inventory {
		if it.ID == id {
			return it.Name
		}
	}
	return id
}
