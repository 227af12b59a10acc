package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runShops(ctx context.Context, args []string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	if len(args) == 0 || args[0] == "list" {
		return c.runShopsList(ctx, args)
	}
	return fmt.Errorf("unknown subcommand: %s. Usage: majidesk shops list", args[0])
}

func (c *Cli) runShopsList(ctx context.Context, args []string) error {
	page, _, err := parsePageFlag(args)
	if err != nil {
		return err
	}

	shops, err := c.apiClient.GetShops(ctx, page, nil)
	if err != nil {
		return fmt.Errorf("failed to list shops: %w", err)
	}

	c.io.Println("=== Shops ===")
	c.io.Println()

	if len(shops.Results) == 0 {
		c.io.Println("No shops found.")
		return nil
	}

	for _, s := range shops.Results {
		c.io.Printf("%d. %s\n", s.ID, s.Name)
		c.io.Printf("   Location: %s\n", s.Location)
		if s.PhoneNumber != "" {
			c.io.Printf("   Phone:    %s\n", s.PhoneNumber)
		}
		c.io.Println()
	}

	printPageFooter(c, shops)
	return nil
}
