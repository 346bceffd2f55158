package card

import (
	"fmt"
	"time"
)

// Допустимые форматы даты срока действия: год, год-месяц, полная дата.
var validityLayouts = []string{"2006-01-02", "2006-01", "2006"}

// ParseValidity разбирает дату срока действия и возвращает начало периода:
// "2027" -> 2027-01-01, "2027-06" -> 2027-06-01.
func ParseValidity(s string) (time.Time, error) {
	for _, layout := range validityLayouts {
		if len(s) != len(layout) {
			continue
		}
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: bad validity date %q (want YYYY, YYYY-MM or YYYY-MM-DD)", ErrInvalidData, s)
}

// ValidateValidity требует, чтобы конец срока был строго позже начала.
func ValidateValidity(from, to string) error {
	if from == "" || to == "" {
		return invalid("validity period is required")
	}

	start, err := ParseValidity(from)
	if err != nil {
		return err
	}
	end, err := ParseValidity(to)
	if err != nil {
		return err
	}

	if !end.After(start) {
		return fmt.Errorf("%w: %s - %s", ErrInvalidValidity, from, to)
	}
	return nil
}
