package cli

import (
	"context"
	"fmt"
)

// Run выполняет одну команду. Ошибку печатает вызывающая сторона
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "dashboard":
		return c.runDashboard(ctx)
	case "shops":
		return c.runShops(ctx, args)
	case "customers":
		return c.runCustomers(ctx, args)
	case "sales":
		return c.runSales(ctx, args)
	case "refills":
		return c.runRefills(ctx, args)
	case "stock":
		return c.runStock(ctx, args)
	case "expenses":
		return c.runExpenses(ctx, args)
	case "meter":
		return c.runMeter(ctx, args)
	case "credits":
		return c.runCredits(ctx, args)
	case "sms":
		return c.runSMS(ctx, args)
	case "help":
		c.PrintUsage()
		return nil
	default:
		c.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}
