package cli

import (
	"context"
	"fmt"

	pkgapi "github.com/majisoft/majidesk/pkg/api"
)

func (c *Cli) runRefills(ctx context.Context, args []string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: majidesk refills <list|add>")
	}

	switch args[0] {
	case "list":
		return c.runRefillsList(ctx, args[1:])
	case "add":
		return c.runRefillsAdd(ctx)
	default:
		return fmt.Errorf("unknown subcommand: %s. Usage: majidesk refills <list|add>", args[0])
	}
}

func (c *Cli) runRefillsList(ctx context.Context, args []string) error {
	page, _, err := parsePageFlag(args)
	if err != nil {
		return err
	}

	refills, err := c.apiClient.GetRefills(ctx, page, nil)
	if err != nil {
		return fmt.Errorf("failed to list refills: %w", err)
	}

	c.io.Println("=== Refills ===")
	c.io.Println()

	if len(refills.Results) == 0 {
		c.io.Println("No refills found.")
		return nil
	}

	for _, r := range refills.Results {
		c.io.Printf("%d. %s — customer %d, %.1f L, %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Customer,
			r.Litres, formatMoney(r.Amount))
	}

	printPageFooter(c, refills)
	return nil
}

func (c *Cli) runRefillsAdd(ctx context.Context) error {
	c.io.Println("=== New Refill ===")
	c.io.Println()

	customer, err := c.readInt("Customer ID: ")
	if err != nil {
		return err
	}
	if customer == 0 {
		return fmt.Errorf("customer is required")
	}

	litres, err := c.readFloat("Litres: ")
	if err != nil {
		return err
	}
	if litres <= 0 {
		return fmt.Errorf("litres must be positive")
	}

	amount, err := c.readFloat("Amount (KES): ")
	if err != nil {
		return err
	}

	refill, err := c.apiClient.CreateRefill(ctx, pkgapi.RefillRequest{
		Customer: customer,
		Litres:   litres,
		Amount:   amount,
	})
	if err != nil {
		return fmt.Errorf("failed to record refill: %w", err)
	}

	c.io.Println()
	c.io.Printf("✓ Refill %d recorded: %.1f L, %s\n", refill.ID, refill.Litres, formatMoney(refill.Amount))
	return nil
}
