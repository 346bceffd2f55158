package card

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"idcards/internal/domain/card"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func printCards(w io.Writer, format string, cards []card.Card) error {
	switch format {
	case formatJSON:
		return printJSON(w, cards)
	case formatYAML:
		return yaml.NewEncoder(w).Encode(cards)
	case formatText, "":
	default:
		return fmt.Errorf("неизвестный формат вывода: %s", format)
	}

	if len(cards) == 0 {
		fmt.Fprintln(w, "Карточек нет")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tВЛАДЕЛЕЦ\tНОМЕР\tПРОГРАММА\tСРОК")
	for _, c := range cards {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.HolderName, c.RegistrationCode, c.Programme, validity(c.Fields))
	}
	return tw.Flush()
}

func printCard(w io.Writer, format string, c *card.Card) error {
	switch format {
	case formatJSON:
		return printJSON(w, c)
	case formatYAML:
		return yaml.NewEncoder(w).Encode(c)
	case formatText, "":
	default:
		return fmt.Errorf("неизвестный формат вывода: %s", format)
	}

	bold := color.New(color.Bold)
	bold.Fprintf(w, "%s\n", c.HolderName)
	fmt.Fprintf(w, "ID:            %s\n", c.ID)
	fmt.Fprintf(w, "Учреждение:    %s\n", c.InstitutionName)
	fmt.Fprintf(w, "Программа:     %s\n", c.Programme)
	fmt.Fprintf(w, "Номер:         %s\n", c.RegistrationCode)
	fmt.Fprintf(w, "Срок действия: %s\n", validity(c.Fields))
	fmt.Fprintf(w, "Цвет:          %s\n", c.ColorScheme)
	if c.PhotoURL != "" {
		fmt.Fprintf(w, "Фото:          %s\n", c.PhotoURL)
	}
	fmt.Fprintf(w, "Создана:       %s\n", millis(c.CreatedAt))
	fmt.Fprintf(w, "Обновлена:     %s\n", millis(c.UpdatedAt))
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func validity(f card.Fields) string {
	if f.ValidFrom == "" && f.ValidTo == "" {
		return "-"
	}
	return strings.TrimSpace(f.ValidFrom + " .. " + f.ValidTo)
}

func millis(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02 15:04:05")
}
