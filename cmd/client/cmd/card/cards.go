package card

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"idcards/internal/domain/card"
)

// CardCmd - родительская команда для операций с карточками.
var CardCmd = &cobra.Command{
	Use:     "card",
	Aliases: []string{"cards"},
	Short:   "Управление студенческими билетами",
	Long:    `Создание, просмотр, поиск, обновление, удаление, превью и экспорт карточек.`,
}

// fieldFlags - флаги редактируемых полей карточки.
type fieldFlags struct {
	institution string
	holder      string
	programme   string
	code        string
	validFrom   string
	validTo     string
	photo       string
	scheme      string
}

func (f *fieldFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.institution, "institution", "", "название учебного заведения")
	fs.StringVar(&f.holder, "holder", "", "имя владельца")
	fs.StringVar(&f.programme, "programme", "", "программа обучения")
	fs.StringVar(&f.code, "code", "", "регистрационный номер")
	fs.StringVar(&f.validFrom, "from", "", "начало действия: YYYY, YYYY-MM или YYYY-MM-DD")
	fs.StringVar(&f.validTo, "to", "", "окончание действия, позже начала")
	fs.StringVar(&f.photo, "photo", "", "URL фотографии")
	fs.StringVar(&f.scheme, "scheme", "", "цветовая схема: "+strings.Join(card.Schemes(), ", "))
}

func (f *fieldFlags) fields() card.Fields {
	return card.Fields{
		InstitutionName:  f.institution,
		HolderName:       f.holder,
		Programme:        f.programme,
		RegistrationCode: f.code,
		ValidFrom:        f.validFrom,
		ValidTo:          f.validTo,
		PhotoURL:         f.photo,
		ColorScheme:      f.scheme,
	}
}

// apply переносит в base только явно заданные флаги.
func (f *fieldFlags) apply(fs *pflag.FlagSet, base card.Fields) card.Fields {
	fields := []struct {
		flag string
		dst  *string
		src  string
	}{
		{"institution", &base.InstitutionName, f.institution},
		{"holder", &base.HolderName, f.holder},
		{"programme", &base.Programme, f.programme},
		{"code", &base.RegistrationCode, f.code},
		{"from", &base.ValidFrom, f.validFrom},
		{"to", &base.ValidTo, f.validTo},
		{"photo", &base.PhotoURL, f.photo},
		{"scheme", &base.ColorScheme, f.scheme},
	}
	for _, field := range fields {
		if fs.Changed(field.flag) {
			*field.dst = field.src
		}
	}
	return base
}
