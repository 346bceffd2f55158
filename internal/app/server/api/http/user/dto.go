package user

type Credentials struct {
	Login    string `json:"login" minLength:"1" example:"ann" doc:"User login"`
	Password string `json:"password" minLength:"1" doc:"User password"`
}

type registerInput struct {
	Body Credentials
}

type registerOutput struct {
	Body RegisterResponse
}

type RegisterResponse struct {
	ID     int    `json:"user_id"`
	Status string `json:"status"`
}

type loginInput struct {
	Body Credentials
}

type loginOutput struct {
	Body LoginResponse
}

type LoginResponse struct {
	Token  string `json:"token"`
	Status string `json:"status"`
}

type logoutOutput struct {
	Body StatusResponse
}

type StatusResponse struct {
	Status string `json:"status"`
}

type meOutput struct {
	Body MeResponse
}

type MeResponse struct {
	ID    int    `json:"user_id"`
	Login string `json:"login"`
}
