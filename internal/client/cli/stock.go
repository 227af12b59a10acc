package cli

import (
	"context"
	"fmt"

	pkgapi "github.com/majisoft/majidesk/pkg/api"
)

func (c *Cli) runStock(ctx context.Context, args []string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: majidesk stock <list|add|log>")
	}

	switch args[0] {
	case "list":
		return c.runStockList(ctx, args[1:])
	case "add":
		return c.runStockAdd(ctx)
	case "log":
		return c.runStockLog(ctx)
	default:
		return fmt.Errorf("unknown subcommand: %s. Usage: majidesk stock <list|add|log>", args[0])
	}
}

func (c *Cli) runStockList(ctx context.Context, args []string) error {
	page, _, err := parsePageFlag(args)
	if err != nil {
		return err
	}

	items, err := c.apiClient.GetStockItems(ctx, page, nil)
	if err != nil {
		return fmt.Errorf("failed to list stock: %w", err)
	}

	c.io.Println("=== Stock ===")
	c.io.Println()

	if len(items.Results) == 0 {
		c.io.Println("No stock items found.")
		return nil
	}

	for _, item := range items.Results {
		c.io.Printf("%d. %s — %.1f %s", item.ID, item.Name, item.Quantity, item.Unit)
		if item.ReorderLevel > 0 && item.Quantity <= item.ReorderLevel {
			c.io.Printf("  ⚠ below reorder level (%.1f)", item.ReorderLevel)
		}
		c.io.Println()
	}

	printPageFooter(c, items)
	return nil
}

func (c *Cli) runStockAdd(ctx context.Context) error {
	c.io.Println("=== New Stock Item ===")
	c.io.Println()

	name, err := c.io.ReadInput("Name: ")
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	unit, err := c.io.ReadInput("Unit (pcs/litres) [pcs]: ")
	if err != nil {
		return fmt.Errorf("failed to read unit: %w", err)
	}
	if unit == "" {
		unit = "pcs"
	}

	quantity, err := c.readFloat("Quantity: ")
	if err != nil {
		return err
	}

	reorder, err := c.readFloat("Reorder level (empty for none): ")
	if err != nil {
		return err
	}

	item, err := c.apiClient.CreateStockItem(ctx, pkgapi.StockItemRequest{
		Name:         name,
		Unit:         unit,
		Quantity:     quantity,
		ReorderLevel: reorder,
	})
	if err != nil {
		return fmt.Errorf("failed to create stock item: %w", err)
	}

	c.io.Println()
	c.io.Printf("✓ Stock item created with ID %d\n", item.ID)
	return nil
}

func (c *Cli) runStockLog(ctx context.Context) error {
	c.io.Println("=== Stock Movement ===")
	c.io.Println()

	item, err := c.readInt("Item ID: ")
	if err != nil {
		return err
	}
	if item == 0 {
		return fmt.Errorf("item is required")
	}

	change, err := c.readFloat("Change (negative for outflow): ")
	if err != nil {
		return err
	}
	if change == 0 {
		return fmt.Errorf("change cannot be zero")
	}

	reason, err := c.io.ReadInput("Reason (purchase/sale/damage/adjustment): ")
	if err != nil {
		return fmt.Errorf("failed to read reason: %w", err)
	}
	if reason == "" {
		return fmt.Errorf("reason cannot be empty")
	}

	entry, err := c.apiClient.CreateStockLog(ctx, pkgapi.StockLogRequest{
		Item:   item,
		Change: change,
		Reason: reason,
	})
	if err != nil {
		return fmt.Errorf("failed to record stock movement: %w", err)
	}

	c.io.Println()
	c.io.Printf("✓ Movement %d recorded: %+.1f (%s)\n", entry.ID, entry.Change, entry.Reason)
	return nil
}
