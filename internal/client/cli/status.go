package cli

import (
	"context"
	"fmt"

	"github.com/majisoft/majidesk/internal/client/auth"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println()

	if err := c.ensureSession(ctx); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	if c.manager.Status() != auth.StatusAuthenticated {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'majidesk login' to authenticate.")
		return nil
	}

	user := c.manager.User()
	c.io.Println("Status: Authenticated")
	if user != nil {
		c.io.Printf("Name:  %s\n", user.FullName)
		c.io.Printf("Phone: %s\n", user.PhoneNumber)
		c.io.Printf("Role:  %s\n", user.Role)
		if user.Shop != 0 {
			c.io.Printf("Shop:  %d\n", user.Shop)
		}
	}

	return nil
}
