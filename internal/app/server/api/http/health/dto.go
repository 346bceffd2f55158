package health

type Input struct{}

type Output struct {
	Body Response
}

type Response struct {
	Status string            `json:"status" example:"OK" doc:"Health status of the service"`
	Checks map[string]string `json:"checks,omitempty" doc:"Status of each dependency"`
}
