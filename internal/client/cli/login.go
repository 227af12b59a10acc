package cli

import (
	"context"
	"fmt"

	"github.com/majisoft/majidesk/internal/validation"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	phone, err := c.io.ReadInput("Phone number: ")
	if err != nil {
		return fmt.Errorf("failed to read phone number: %w", err)
	}
	if err := validation.ValidatePhoneNumber(phone); err != nil {
		return fmt.Errorf("invalid phone number: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	// Сообщение об ошибке пользователь уже увидел через toast:error
	if err := c.manager.Login(ctx, phone, password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	user := c.manager.User()
	c.io.Println()
	c.io.Println("Login successful!")
	if user != nil {
		c.io.Printf("Name: %s\n", user.FullName)
		c.io.Printf("Role: %s\n", user.Role)
	}
	c.io.Println()
	c.io.Println("Your session has been saved securely.")

	return nil
}
