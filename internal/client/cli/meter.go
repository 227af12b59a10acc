package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/majisoft/majidesk/internal/client/api"
)

func (c *Cli) runMeter(ctx context.Context, args []string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: majidesk meter <list|add>")
	}

	switch args[0] {
	case "list":
		return c.runMeterList(ctx, args[1:])
	case "add":
		return c.runMeterAdd(ctx, args[1:])
	default:
		return fmt.Errorf("unknown subcommand: %s. Usage: majidesk meter <list|add>", args[0])
	}
}

func (c *Cli) runMeterList(ctx context.Context, args []string) error {
	page, _, err := parsePageFlag(args)
	if err != nil {
		return err
	}

	readings, err := c.apiClient.GetMeterReadings(ctx, page, nil)
	if err != nil {
		return fmt.Errorf("failed to list meter readings: %w", err)
	}

	c.io.Println("=== Meter Readings ===")
	c.io.Println()

	if len(readings.Results) == 0 {
		c.io.Println("No readings found.")
		return nil
	}

	for _, r := range readings.Results {
		c.io.Printf("%d. %s — %.2f m³\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Reading)
	}

	printPageFooter(c, readings)
	return nil
}

// runMeterAdd отправляет показание счётчика. Фото обязательно —
// ручной ввод без подтверждения снимком сервер не принимает
func (c *Cli) runMeterAdd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing photo. Usage: majidesk meter add <photo-file>")
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read photo file: %w", err)
	}
	photo := &api.Upload{
		FieldName: "photo",
		FileName:  filepath.Base(args[0]),
		Content:   content,
	}

	c.io.Println("=== New Meter Reading ===")
	c.io.Println()

	shop, err := c.readInt("Shop ID: ")
	if err != nil {
		return err
	}
	if shop == 0 {
		if user := c.manager.User(); user != nil {
			shop = user.Shop
		}
	}
	if shop == 0 {
		return fmt.Errorf("shop is required")
	}

	reading, err := c.readFloat("Reading (m³): ")
	if err != nil {
		return err
	}
	if reading <= 0 {
		return fmt.Errorf("reading must be positive")
	}

	created, err := c.apiClient.CreateMeterReading(ctx, shop, reading, photo)
	if err != nil {
		return fmt.Errorf("failed to submit reading: %w", err)
	}

	c.io.Println()
	c.io.Printf("✓ Reading %d submitted: %.2f m³\n", created.ID, created.Reading)
	return nil
}
