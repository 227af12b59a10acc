package cli

import (
	"context"
	"fmt"

	pkgapi "github.com/majisoft/majidesk/pkg/api"
)

func (c *Cli) runSales(ctx context.Context, args []string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: majidesk sales <list|add>")
	}

	switch args[0] {
	case "list":
		return c.runSalesList(ctx, args[1:])
	case "add":
		return c.runSalesAdd(ctx)
	default:
		return fmt.Errorf("unknown subcommand: %s. Usage: majidesk sales <list|add>", args[0])
	}
}

func (c *Cli) runSalesList(ctx context.Context, args []string) error {
	page, _, err := parsePageFlag(args)
	if err != nil {
		return err
	}

	sales, err := c.apiClient.GetSales(ctx, page, nil)
	if err != nil {
		return fmt.Errorf("failed to list sales: %w", err)
	}

	c.io.Println("=== Sales ===")
	c.io.Println()

	if len(sales.Results) == 0 {
		c.io.Println("No sales found.")
		return nil
	}

	for _, s := range sales.Results {
		c.io.Printf("%d. %s x%d — %s (%s)\n",
			s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.Quantity,
			formatMoney(s.Amount), s.PaymentMethod)
	}

	printPageFooter(c, sales)
	return nil
}

func (c *Cli) runSalesAdd(ctx context.Context) error {
	c.io.Println("=== New Sale ===")
	c.io.Println()

	// Показываем тарифы, чтобы не вводить ID вслепую
	packages, err := c.apiClient.GetPackages(ctx, 0, nil)
	if err != nil {
		return fmt.Errorf("failed to load packages: %w", err)
	}
	for _, p := range packages.Results {
		c.io.Printf("%d. %s — %.1f L, %s\n", p.ID, p.Name, p.Litres, formatMoney(p.Price))
	}
	c.io.Println()

	pkg, err := c.readInt("Package ID: ")
	if err != nil {
		return err
	}
	if pkg == 0 {
		return fmt.Errorf("package is required")
	}

	quantity, err := c.readInt("Quantity [1]: ")
	if err != nil {
		return err
	}
	if quantity == 0 {
		quantity = 1
	}

	amount, err := c.readFloat("Amount (KES): ")
	if err != nil {
		return err
	}

	method, err := c.io.ReadInput("Payment method (cash/mpesa/credit) [cash]: ")
	if err != nil {
		return fmt.Errorf("failed to read payment method: %w", err)
	}
	if method == "" {
		method = "cash"
	}

	customer, err := c.readInt("Customer ID (empty for walk-in): ")
	if err != nil {
		return err
	}
	if method == "credit" && customer == 0 {
		return fmt.Errorf("credit sales require a customer")
	}

	sale, err := c.apiClient.CreateSale(ctx, pkgapi.SaleRequest{
		Package:       pkg,
		Quantity:      quantity,
		Amount:        amount,
		PaymentMethod: method,
		Customer:      customer,
	})
	if err != nil {
		return fmt.Errorf("failed to record sale: %w", err)
	}

	c.io.Println()
	c.io.Printf("✓ Sale %d recorded: %s\n", sale.ID, formatMoney(sale.Amount))
	return nil
}
