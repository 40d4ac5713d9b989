package response

import (
	"brow-studio-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type AuthResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	Role        string    `json:"role"`
	AccessToken string    `json:"access_token"`
}

func FromLoginResult(result *commands.LoginResult) AuthResponse {
	return AuthResponse{
		UserID:      result.UserID,
		Role:        string(result.Role),
		AccessToken: result.AccessToken,
	}
}
