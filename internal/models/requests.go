package models

// RegisterRequest is the body of POST /register
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries an issued JWT
type TokenResponse struct {
	Token string `json:"token"`
}

// SaveDateRequest is the body of POST /dates
type SaveDateRequest struct {
	Date      string `json:"date"` // YYYY-MM-DD or DD.MM.YYYY
	Label     string `json:"label"`
	Subscribe bool   `json:"subscribe"`
}

// ErrorResponse is returned with every non-2xx status
type ErrorResponse struct {
	Error string `json:"error"`
}
