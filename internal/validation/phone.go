package validation

import (
	"fmt"
	"regexp"
)

// PhonePattern определяет допустимый формат номера телефона
// Локальный формат 07XXXXXXXX / 01XXXXXXXX или международный +254XXXXXXXXX
var PhonePattern = regexp.MustCompile(`^(0[17][0-9]{8}|\+254[17][0-9]{8})$`)

// ValidatePhoneNumber проверяет, что номер телефона соответствует
// формату, который принимает бэкенд (логин и получатель SMS)
func ValidatePhoneNumber(phone string) error {
	if phone == "" {
		return fmt.Errorf("phone number cannot be empty")
	}

	if !PhonePattern.MatchString(phone) {
		return fmt.Errorf("phone number must look like 0712345678 or +254712345678")
	}

	return nil
}

// ValidatePassword проверяет минимальные требования к паролю
// Минимум 6 символов
func ValidatePassword(password string) error {
	const minPasswordLen = 6

	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLen)
	}

	return nil
}
