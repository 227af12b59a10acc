package cli

import (
	"context"
	"fmt"

	"github.com/majisoft/majidesk/internal/validation"
	pkgapi "github.com/majisoft/majidesk/pkg/api"
)

func (c *Cli) runCustomers(ctx context.Context, args []string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: majidesk customers <list|add>")
	}

	switch args[0] {
	case "list":
		return c.runCustomersList(ctx, args[1:])
	case "add":
		return c.runCustomersAdd(ctx)
	default:
		return fmt.Errorf("unknown subcommand: %s. Usage: majidesk customers <list|add>", args[0])
	}
}

func (c *Cli) runCustomersList(ctx context.Context, args []string) error {
	page, rest, err := parsePageFlag(args)
	if err != nil {
		return err
	}

	filters := map[string]string{}
	if len(rest) > 0 {
		filters["search"] = rest[0]
	}

	customers, err := c.apiClient.GetCustomers(ctx, page, filters)
	if err != nil {
		return fmt.Errorf("failed to list customers: %w", err)
	}

	c.io.Println("=== Customers ===")
	c.io.Println()

	if len(customers.Results) == 0 {
		c.io.Println("No customers found.")
		c.io.Println()
		c.io.Println("Use 'majidesk customers add' to register your first customer.")
		return nil
	}

	for _, cust := range customers.Results {
		c.io.Printf("%d. %s\n", cust.ID, cust.FullName)
		c.io.Printf("   Phone:   %s\n", cust.PhoneNumber)
		c.io.Printf("   Bottles: %d\n", cust.Bottles)
		if cust.LoyaltyPoints > 0 {
			c.io.Printf("   Points:  %d\n", cust.LoyaltyPoints)
		}
		c.io.Println()
	}

	printPageFooter(c, customers)
	return nil
}

func (c *Cli) runCustomersAdd(ctx context.Context) error {
	c.io.Println("=== New Customer ===")
	c.io.Println()

	name, err := c.io.ReadInput("Full name: ")
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	phone, err := c.io.ReadInput("Phone number: ")
	if err != nil {
		return fmt.Errorf("failed to read phone number: %w", err)
	}
	if err := validation.ValidatePhoneNumber(phone); err != nil {
		return fmt.Errorf("invalid phone number: %w", err)
	}

	created, err := c.apiClient.CreateCustomer(ctx, pkgapi.CustomerRequest{
		FullName:    name,
		PhoneNumber: phone,
	})
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	c.io.Println()
	c.io.Printf("✓ Customer created with ID %d\n", created.ID)
	return nil
}
