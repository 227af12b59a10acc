package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runDashboard(ctx context.Context) error {
	if err := c.requireAuth(); err != nil {
		return err
	}

	stats, err := c.apiClient.GetDashboardStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}

	c.io.Println("=== Today ===")
	c.io.Println()
	c.io.Printf("Sales:          %s\n", formatMoney(stats.SalesToday))
	c.io.Printf("Refills:        %d\n", stats.RefillsToday)
	c.io.Printf("Litres sold:    %.1f L\n", stats.LitresToday)
	c.io.Printf("Expenses:       %s\n", formatMoney(stats.ExpensesToday))
	c.io.Printf("New customers:  %d\n", stats.NewCustomers)
	c.io.Printf("Credit owed:    %s\n", formatMoney(stats.CreditOutstanding))

	if stats.LowStockItems > 0 {
		c.io.Println()
		c.io.Printf("⚠ %d stock item(s) below reorder level. Run 'majidesk stock list'.\n", stats.LowStockItems)
	}

	return nil
}
