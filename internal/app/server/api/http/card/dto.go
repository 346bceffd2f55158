package card

import (
	"idcards/internal/domain/card"
)

// CardRequest - редактируемые поля карточки.
type CardRequest struct {
	InstitutionName  string `json:"institution_name" minLength:"1" example:"Springfield University"`
	HolderName       string `json:"holder_name" minLength:"1" example:"Ann Lee"`
	Programme        string `json:"programme,omitempty" example:"Computer Science"`
	RegistrationCode string `json:"registration_code,omitempty" example:"CS-2023-0042"`
	ValidFrom        string `json:"valid_from,omitempty" example:"2023-09" doc:"YYYY, YYYY-MM or YYYY-MM-DD"`
	ValidTo          string `json:"valid_to,omitempty" example:"2027-06" doc:"Must be after valid_from"`
	PhotoURL         string `json:"photo_url,omitempty" doc:"Absolute http(s) URL of the holder photo"`
	ColorScheme      string `json:"color_scheme,omitempty" doc:"blue, red, green, purple, orange or teal; blue when empty"`
}

func (r CardRequest) fields() card.Fields {
	return card.Fields{
		InstitutionName:  r.InstitutionName,
		HolderName:       r.HolderName,
		Programme:        r.Programme,
		RegistrationCode: r.RegistrationCode,
		ValidFrom:        r.ValidFrom,
		ValidTo:          r.ValidTo,
		PhotoURL:         r.PhotoURL,
		ColorScheme:      r.ColorScheme,
	}
}

type idParam struct {
	ID string `path:"id" format:"uuid" doc:"Card id"`
}

type listInput struct {
	Query string `query:"q" doc:"Case-insensitive match on holder, registration code or programme"`
}

type listOutput struct {
	Body ListResponse
}

type ListResponse struct {
	Cards []card.Card `json:"cards"`
	Total int         `json:"total"`
}

type createInput struct {
	Body CardRequest
}

type createOutput struct {
	Location string `header:"Location"`
	Body     CreateResponse
}

type CreateResponse struct {
	ID string `json:"id"`
}

type getInput struct {
	idParam
}

type cardOutput struct {
	Body card.Card
}

type updateInput struct {
	idParam
	Body CardRequest
}

type deleteInput struct {
	idParam
}

type previewOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

type exportInput struct {
	idParam
}

type exportOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}
