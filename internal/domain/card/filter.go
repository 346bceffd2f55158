package card

import (
	"strings"
)

// Filter оставляет карточки, у которых имя владельца, регистрационный
// номер или программа содержат q без учёта регистра. Пустой запрос
// возвращает cards как есть.
func Filter(cards []Card, q string) []Card {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return cards
	}

	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		if matches(c, q) {
			out = append(out, c)
		}
	}
	return out
}

func matches(c Card, q string) bool {
	return strings.Contains(strings.ToLower(c.HolderName), q) ||
		strings.Contains(strings.ToLower(c.RegistrationCode), q) ||
		strings.Contains(strings.ToLower(c.Programme), q)
}
