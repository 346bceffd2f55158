package card

import (
	"strings"
)

// Цветовые схемы карточки. Пустая схема трактуется как SchemeBlue.
const (
	SchemeBlue   = "blue"
	SchemeRed    = "red"
	SchemeGreen  = "green"
	SchemePurple = "purple"
	SchemeOrange = "orange"
	SchemeTeal   = "teal"

	DefaultScheme = SchemeBlue
)

var schemes = map[string]struct{}{
	SchemeBlue:   {},
	SchemeRed:    {},
	SchemeGreen:  {},
	SchemePurple: {},
	SchemeOrange: {},
	SchemeTeal:   {},
}

// Schemes возвращает допустимые цветовые схемы в порядке отображения.
func Schemes() []string {
	return []string{SchemeBlue, SchemeRed, SchemeGreen, SchemePurple, SchemeOrange, SchemeTeal}
}

// KnownScheme сообщает, поддерживается ли схема.
func KnownScheme(s string) bool {
	_, ok := schemes[s]
	return ok
}

// Fields - редактируемые поля студенческой карточки.
type Fields struct {
	InstitutionName  string `json:"institution_name" bson:"institution_name" yaml:"institution_name"`
	HolderName       string `json:"holder_name" bson:"holder_name" yaml:"holder_name"`
	Programme        string `json:"programme" bson:"programme" yaml:"programme"`
	RegistrationCode string `json:"registration_code" bson:"registration_code" yaml:"registration_code"`
	ValidFrom        string `json:"valid_from" bson:"valid_from" yaml:"valid_from"`
	ValidTo          string `json:"valid_to" bson:"valid_to" yaml:"valid_to"`
	PhotoURL         string `json:"photo_url,omitempty" bson:"photo_url,omitempty" yaml:"photo_url,omitempty"`
	ColorScheme      string `json:"color_scheme" bson:"color_scheme" yaml:"color_scheme"`
}

// Card - сохранённая карточка. Временные метки в миллисекундах с эпохи.
type Card struct {
	ID      string `json:"id" bson:"_id" yaml:"id"`
	OwnerID int    `json:"owner_id" bson:"owner_id" yaml:"owner_id"`
	Fields  `bson:",inline" yaml:",inline"`

	CreatedAt int64 `json:"created_at" bson:"created_at" yaml:"created_at"`
	UpdatedAt int64 `json:"updated_at" bson:"updated_at" yaml:"updated_at"`
}

// Normalize обрезает пробелы по краям и подставляет схему по умолчанию.
func (f Fields) Normalize() Fields {
	f.InstitutionName = strings.TrimSpace(f.InstitutionName)
	f.HolderName = strings.TrimSpace(f.HolderName)
	f.Programme = strings.TrimSpace(f.Programme)
	f.RegistrationCode = strings.TrimSpace(f.RegistrationCode)
	f.ValidFrom = strings.TrimSpace(f.ValidFrom)
	f.ValidTo = strings.TrimSpace(f.ValidTo)
	f.PhotoURL = strings.TrimSpace(f.PhotoURL)
	f.ColorScheme = strings.ToLower(strings.TrimSpace(f.ColorScheme))
	if f.ColorScheme == "" {
		f.ColorScheme = DefaultScheme
	}
	return f
}

// Validate проверяет обязательные поля и срок действия.
// Ожидает нормализованные поля.
func (f Fields) Validate() error {
	switch {
	case f.InstitutionName == "":
		return invalid("institution name is required")
	case f.HolderName == "":
		return invalid("holder name is required")
	case !KnownScheme(f.ColorScheme):
		return invalid("unknown color scheme %q", f.ColorScheme)
	}

	if err := ValidatePhotoURL(f.PhotoURL); err != nil {
		return err
	}

	return ValidateValidity(f.ValidFrom, f.ValidTo)
}

// Version - ключ версии записи, меняется при каждом обновлении.
func (c Card) Version() string {
	return c.ID + "@" + itoa64(c.UpdatedAt)
}
