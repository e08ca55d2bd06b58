package handler

import "github.com/usercore/account-service/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type registerRequest struct {
	Account       string `json:"account"        validate:"required"`
	Password      string `json:"password"       validate:"required"`
	CheckPassword string `json:"check_password" validate:"required"`
}

type registerResponse struct {
	UserID int64 `json:"user_id"`
}

type loginRequest struct {
	Account  string `json:"account"  validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string                `json:"token"`
	User  *domain.SanitizedUser `json:"user"`
}

type searchRequest struct {
	Name     string `query:"name"`
	Page     int64  `query:"page"`
	PageSize int64  `query:"page_size" validate:"omitempty,max=100"`
}
