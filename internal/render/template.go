// Package render строит DOM карточки в headless Chrome и реализует для
// него порты конвейера экспорта.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"idcards/internal/domain/card"
	"idcards/internal/export"
)

//go:embed templates/card.html.tmpl
var templatesFS embed.FS

var cardTmpl = template.Must(template.ParseFS(templatesFS, "templates/card.html.tmpl"))

// Цвета шапки и подвала по схемам.
var accents = map[string]string{
	card.SchemeBlue:   "#2563eb",
	card.SchemeRed:    "#dc2626",
	card.SchemeGreen:  "#16a34a",
	card.SchemePurple: "#9333ea",
	card.SchemeOrange: "#ea580c",
	card.SchemeTeal:   "#0d9488",
}

// Accent возвращает цвет схемы; неизвестная схема даёт синий.
func Accent(scheme string) string {
	if c, ok := accents[scheme]; ok {
		return c
	}
	return accents[card.DefaultScheme]
}

type cardView struct {
	card.Fields
	SurfaceID string
	Accent    template.CSS
}

// HTML рендерит документ с одной смонтированной карточкой.
func HTML(c card.Card) ([]byte, error) {
	v := cardView{
		Fields:    c.Fields,
		SurfaceID: export.SurfaceID(c.ID),
		Accent:    template.CSS(Accent(c.ColorScheme)),
	}

	var buf bytes.Buffer
	if err := cardTmpl.Execute(&buf, v); err != nil {
		return nil, fmt.Errorf("render card %s: %w", c.ID, err)
	}
	return buf.Bytes(), nil
}
