package login

// LoginRequest is the credentials payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse confirms the session and identifies the signed-in account
type LoginResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
