package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/majisoft/majidesk/internal/client/api"
)

func (c *Cli) runExpenses(ctx context.Context, args []string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: majidesk expenses <list|add>")
	}

	switch args[0] {
	case "list":
		return c.runExpensesList(ctx, args[1:])
	case "add":
		return c.runExpensesAdd(ctx, args[1:])
	default:
		return fmt.Errorf("unknown subcommand: %s. Usage: majidesk expenses <list|add>", args[0])
	}
}

func (c *Cli) runExpensesList(ctx context.Context, args []string) error {
	page, _, err := parsePageFlag(args)
	if err != nil {
		return err
	}

	expenses, err := c.apiClient.GetExpenses(ctx, page, nil)
	if err != nil {
		return fmt.Errorf("failed to list expenses: %w", err)
	}

	c.io.Println("=== Expenses ===")
	c.io.Println()

	if len(expenses.Results) == 0 {
		c.io.Println("No expenses found.")
		return nil
	}

	for _, e := range expenses.Results {
		c.io.Printf("%d. %s — %s, %s\n",
			e.ID, e.CreatedAt.Format("2006-01-02"), e.Category, formatMoney(e.Amount))
		if e.Description != "" {
			c.io.Printf("   %s\n", e.Description)
		}
	}

	printPageFooter(c, expenses)
	return nil
}

// runExpensesAdd записывает расход. Первый позиционный аргумент —
// необязательный путь к изображению чека
func (c *Cli) runExpensesAdd(ctx context.Context, args []string) error {
	c.io.Println("=== New Expense ===")
	c.io.Println()

	var receipt *api.Upload
	if len(args) > 0 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read receipt file: %w", err)
		}
		receipt = &api.Upload{
			FieldName: "receipt",
			FileName:  filepath.Base(args[0]),
			Content:   content,
		}
	}

	category, err := c.io.ReadInput("Category (electricity/rent/maintenance/...): ")
	if err != nil {
		return fmt.Errorf("failed to read category: %w", err)
	}
	if category == "" {
		return fmt.Errorf("category cannot be empty")
	}

	amount, err := c.readFloat("Amount (KES): ")
	if err != nil {
		return err
	}
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	description, err := c.io.ReadInput("Description (optional): ")
	if err != nil {
		return fmt.Errorf("failed to read description: %w", err)
	}

	expense, err := c.apiClient.CreateExpense(ctx, category, amount, description, receipt)
	if err != nil {
		return fmt.Errorf("failed to record expense: %w", err)
	}

	c.io.Println()
	c.io.Printf("✓ Expense %d recorded: %s\n", expense.ID, formatMoney(expense.Amount))
	return nil
}
