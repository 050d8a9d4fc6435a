package usecase

import (
	"context"

	authdomain "jobtrail-backend/internal/auth/domain"
	authdto "jobtrail-backend/internal/auth/dto"
)

// AuthUsecase covers account lifecycle plus mailbox linking.
type AuthUsecase interface {
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)
	Logout(refreshToken string) error
	ValidateToken(tokenString string) (*authdomain.User, error)

	GoogleAuthURL(state string) string
	HandleGoogleCallback(ctx context.Context, userID, code string) error
	LinkImap(userID string, req *authdto.ImapLinkRequest) error
	UnlinkGmail(userID string) error
}
