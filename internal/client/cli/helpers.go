package cli

import (
	"fmt"
	"strconv"

	pkgapi "github.com/majisoft/majidesk/pkg/api"
)

// readInt запрашивает целое число; пустой ввод возвращает 0
func (c *Cli) readInt(prompt string) (int64, error) {
	input, err := c.io.ReadInput(prompt)
	if err != nil {
		return 0, err
	}
	if input == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", input)
	}
	return n, nil
}

// readFloat запрашивает число с плавающей точкой; пустой ввод возвращает 0
func (c *Cli) readFloat(prompt string) (float64, error) {
	input, err := c.io.ReadInput(prompt)
	if err != nil {
		return 0, err
	}
	if input == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", input)
	}
	return f, nil
}

// formatMoney печатает сумму в кенийских шиллингах
func formatMoney(amount float64) string {
	return fmt.Sprintf("KES %.2f", amount)
}

// printPageFooter печатает итог списочной команды
func printPageFooter[T any](c *Cli, page *pkgapi.Page[T]) {
	c.io.Println()
	c.io.Printf("Total: %d\n", page.Count)
	if page.HasMore() {
		c.io.Println("More results available. Use --page to fetch the next page.")
	}
}

// parsePageFlag выделяет значение --page N из аргументов подкоманды
// и возвращает остаток. Нулевая страница означает первую
func parsePageFlag(args []string) (int, []string, error) {
	rest := make([]string, 0, len(args))
	page := 0
	for i := 0; i < len(args); i++ {
		if args[i] != "--page" {
			rest = append(rest, args[i])
			continue
		}
		if i+1 >= len(args) {
			return 0, nil, fmt.Errorf("--page requires a value")
		}
		n, err := strconv.Atoi(args[i+1])
		if err != nil || n < 1 {
			return 0, nil, fmt.Errorf("invalid page %q", args[i+1])
		}
		page = n
		i++
	}
	return page, rest, nil
}
