package cli

import (
	"context"
	"fmt"

	"github.com/majisoft/majidesk/internal/validation"
	pkgapi "github.com/majisoft/majidesk/pkg/api"
)

func (c *Cli) runSMS(ctx context.Context, args []string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: majidesk sms <send|bulk|history>")
	}

	switch args[0] {
	case "send":
		return c.runSMSSend(ctx)
	case "bulk":
		return c.runSMSBulk(ctx)
	case "history":
		return c.runSMSHistory(ctx, args[1:])
	default:
		return fmt.Errorf("unknown subcommand: %s. Usage: majidesk sms <send|bulk|history>", args[0])
	}
}

func (c *Cli) runSMSSend(ctx context.Context) error {
	c.io.Println("=== Send SMS ===")
	c.io.Println()

	recipient, err := c.io.ReadInput("Recipient phone: ")
	if err != nil {
		return fmt.Errorf("failed to read recipient: %w", err)
	}
	if err := validation.ValidatePhoneNumber(recipient); err != nil {
		return fmt.Errorf("invalid phone number: %w", err)
	}

	body, err := c.io.ReadInput("Message: ")
	if err != nil {
		return fmt.Errorf("failed to read message: %w", err)
	}
	if body == "" {
		return fmt.Errorf("message cannot be empty")
	}

	resp, err := c.apiClient.SendSMS(ctx, pkgapi.SendSMSRequest{
		Recipient: recipient,
		Body:      body,
	})
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	c.io.Println()
	c.io.Printf("✓ Queued %d message(s), status: %s\n", resp.Queued, resp.Status)
	return nil
}

func (c *Cli) runSMSBulk(ctx context.Context) error {
	c.io.Println("=== Bulk SMS ===")
	c.io.Println()

	body, err := c.io.ReadInput("Message: ")
	if err != nil {
		return fmt.Errorf("failed to read message: %w", err)
	}
	if body == "" {
		return fmt.Errorf("message cannot be empty")
	}

	ok, err := c.io.Confirm("Send to ALL customers?")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !ok {
		c.io.Println("Aborted.")
		return nil
	}

	resp, err := c.apiClient.SendBulkSMS(ctx, pkgapi.BulkSMSRequest{Body: body})
	if err != nil {
		return fmt.Errorf("failed to send bulk SMS: %w", err)
	}

	c.io.Println()
	c.io.Printf("✓ Queued %d message(s), status: %s\n", resp.Queued, resp.Status)
	return nil
}

func (c *Cli) runSMSHistory(ctx context.Context, args []string) error {
	page, _, err := parsePageFlag(args)
	if err != nil {
		return err
	}

	messages, err := c.apiClient.GetSMSHistory(ctx, page, nil)
	if err != nil {
		return fmt.Errorf("failed to load SMS history: %w", err)
	}

	c.io.Println("=== SMS History ===")
	c.io.Println()

	if len(messages.Results) == 0 {
		c.io.Println("No messages found.")
		return nil
	}

	for _, m := range messages.Results {
		c.io.Printf("%d. %s → %s [%s]\n",
			m.ID, m.SentAt.Format("2006-01-02 15:04"), m.Recipient, m.Status)
		c.io.Printf("   %s\n", m.Body)
	}

	printPageFooter(c, messages)
	return nil
}
