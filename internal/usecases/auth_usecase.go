package usecases

import (
	"context"

	"github.com/google/uuid"

	domainerrors "smart-upi.backend/internal/domain/errors"
	"smart-upi.backend/pkg/crypto"
	"smart-upi.backend/pkg/jwt"
)

// AuthUsecase authenticates the merchant against a single shared secret and
// issues JWT bearer tokens for the privileged endpoints.
type AuthUsecase struct {
	jwtService *jwt.JWTService
	secretHash string
	merchantID uuid.UUID
}

// NewAuthUsecase creates the auth usecase. secretHash must be a bcrypt hash;
// use NewAuthUsecaseFromPlainSecret when only the plain secret is configured.
func NewAuthUsecase(jwtService *jwt.JWTService, secretHash string) *AuthUsecase {
	return &AuthUsecase{
		jwtService: jwtService,
		secretHash: secretHash,
		merchantID: uuid.New(),
	}
}

// NewAuthUsecaseFromPlainSecret hashes the configured secret at startup
func NewAuthUsecaseFromPlainSecret(jwtService *jwt.JWTService, secret string) (*AuthUsecase, error) {
	hash, err := crypto.HashSecret(secret)
	if err != nil {
		return nil, err
	}
	return NewAuthUsecase(jwtService, hash), nil
}

// Login checks the merchant secret and returns a token pair
func (uc *AuthUsecase) Login(ctx context.Context, secret string) (*jwt.TokenPair, error) {
	if !crypto.CheckSecret(secret, uc.secretHash) {
		return nil, domainerrors.Unauthorized("invalid merchant secret")
	}
	pair, err := uc.jwtService.GenerateTokenPair(uc.merchantID, jwt.RoleMerchant)
	if err != nil {
		return nil, domainerrors.Internal("failed to issue tokens", err)
	}
	return pair, nil
}

// Refresh validates a refresh token and issues a fresh pair
func (uc *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := uc.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid refresh token")
	}
	pair, err := uc.jwtService.GenerateTokenPair(claims.MerchantID, claims.Role)
	if err != nil {
		return nil, domainerrors.Internal("failed to issue tokens", err)
	}
	return pair, nil
}
