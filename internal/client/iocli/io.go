package iocli

//go:generate moq -out io_mock.go . IO

// IO — абстракция терминального ввода-вывода для команд CLI.
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	Confirm(prompt string) (bool, error)
}
