package cli

import (
	"context"
	"fmt"
	"strconv"

	pkgapi "github.com/majisoft/majidesk/pkg/api"
)

func (c *Cli) runCredits(ctx context.Context, args []string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: majidesk credits <list|pay>")
	}

	switch args[0] {
	case "list":
		return c.runCreditsList(ctx, args[1:])
	case "pay":
		return c.runCreditsPay(ctx, args[1:])
	default:
		return fmt.Errorf("unknown subcommand: %s. Usage: majidesk credits <list|pay>", args[0])
	}
}

func (c *Cli) runCreditsList(ctx context.Context, args []string) error {
	page, _, err := parsePageFlag(args)
	if err != nil {
		return err
	}

	credits, err := c.apiClient.GetCredits(ctx, page, nil)
	if err != nil {
		return fmt.Errorf("failed to list credits: %w", err)
	}

	c.io.Println("=== Outstanding Credits ===")
	c.io.Println()

	if len(credits.Results) == 0 {
		c.io.Println("No outstanding credits.")
		return nil
	}

	for _, cr := range credits.Results {
		c.io.Printf("%d. customer %d — %s of %s outstanding\n",
			cr.ID, cr.Customer, formatMoney(cr.Balance), formatMoney(cr.Amount))
	}

	printPageFooter(c, credits)
	return nil
}

func (c *Cli) runCreditsPay(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing credit ID. Usage: majidesk credits pay <id>")
	}
	creditID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid credit ID %q", args[0])
	}

	c.io.Println("=== Credit Payment ===")
	c.io.Println()

	amount, err := c.readFloat("Amount (KES): ")
	if err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	method, err := c.io.ReadInput("Payment method (cash/mpesa) [cash]: ")
	if err != nil {
		return fmt.Errorf("failed to read payment method: %w", err)
	}
	if method == "" {
		method = "cash"
	}

	credit, err := c.apiClient.PayCredit(ctx, creditID, pkgapi.CreditPaymentRequest{
		Amount:        amount,
		PaymentMethod: method,
	})
	if err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}

	c.io.Println()
	if credit.Balance <= 0 {
		c.io.Printf("✓ Payment recorded. Credit %d fully settled.\n", credit.ID)
	} else {
		c.io.Printf("✓ Payment recorded. Remaining balance: %s\n", formatMoney(credit.Balance))
	}
	return nil
}
