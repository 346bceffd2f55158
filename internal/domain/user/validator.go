package user

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	MinLoginLen    = 3
	MaxLoginLen    = 64
	MinPasswordLen = 8
	MaxPasswordLen = 72 // предел bcrypt
)

// Validator проверяет учётные данные до обращения к хранилищу.
type Validator interface {
	ValidateRegister(login, password string) error
	ValidateLogin(login string) error
	ValidatePassword(password string) error
}

// Rule - одно правило для логина или пароля.
type Rule func(s string) error

// CredentialsValidator применяет правила по порядку, первая ошибка возвращается.
type CredentialsValidator struct {
	login    []Rule
	password []Rule
}

type ValidatorOption func(*CredentialsValidator)

// WithStrongPasswords добавляет требования регистра и спецсимвола.
func WithStrongPasswords() ValidatorOption {
	return func(v *CredentialsValidator) {
		v.password = append(v.password,
			requireClass("a lowercase letter", unicode.IsLower),
			requireClass("an uppercase letter", unicode.IsUpper),
			requireClass("a special character", func(r rune) bool {
				return unicode.IsPunct(r) || unicode.IsSymbol(r)
			}),
		)
	}
}

// WithPasswordRules добавляет произвольные правила для пароля.
func WithPasswordRules(rules ...Rule) ValidatorOption {
	return func(v *CredentialsValidator) { v.password = append(v.password, rules...) }
}

// NewCredentialsValidator: логин - email или короткое имя, пароль - буквы и цифры.
func NewCredentialsValidator(opts ...ValidatorOption) *CredentialsValidator {
	v := &CredentialsValidator{
		login: []Rule{
			lengthBetween("login", MinLoginLen, MaxLoginLen),
			loginCharset,
			loginShape,
		},
		password: []Rule{
			lengthBetween("password", MinPasswordLen, MaxPasswordLen),
			requireClass("a letter", unicode.IsLetter),
			requireClass("a digit", unicode.IsDigit),
		},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *CredentialsValidator) ValidateRegister(login, password string) error {
	if err := v.ValidateLogin(login); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := v.ValidatePassword(password); err != nil {
		return fmt.Errorf("password: %w", err)
	}
	return nil
}

func (v *CredentialsValidator) ValidateLogin(login string) error {
	return apply(v.login, login)
}

func (v *CredentialsValidator) ValidatePassword(password string) error {
	return apply(v.password, password)
}

func apply(rules []Rule, s string) error {
	for _, rule := range rules {
		if err := rule(s); err != nil {
			return err
		}
	}
	return nil
}

func lengthBetween(what string, lo, hi int) Rule {
	return func(s string) error {
		n := len([]rune(s))
		if n < lo || n > hi {
			return fmt.Errorf("%s must be %d to %d characters", what, lo, hi)
		}
		return nil
	}
}

func requireClass(name string, in func(rune) bool) Rule {
	return func(s string) error {
		if strings.IndexFunc(s, in) < 0 {
			return fmt.Errorf("must contain %s", name)
		}
		return nil
	}
}

func loginCharset(s string) error {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("._-@", r) {
			continue
		}
		return fmt.Errorf("unexpected character %q", r)
	}
	return nil
}

// loginShape: не более одного '@', и он не на краю.
func loginShape(s string) error {
	switch at := strings.Count(s, "@"); {
	case at > 1:
		return errors.New("more than one '@'")
	case at == 1 && (strings.HasPrefix(s, "@") || strings.HasSuffix(s, "@")):
		return errors.New("incomplete email address")
	}
	return nil
}
