package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/utils"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const tokenTTL = 24 * time.Hour

type (
	JWTService interface {
		GenerateTokenUser(userID uint, role string) (string, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetUserIDByToken(ctx context.Context, token string) (uint, string, error)
		RevokeToken(ctx context.Context, token string) error
	}

	jwtUserClaim struct {
		UserID uint   `json:"user_id"`
		Role   string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		tokens    TokenRepository
	}
)

func NewJWTService(tokens TokenRepository) JWTService {
	return NewJWTServiceWithSecret(utils.GetConfig("JWT_SECRET"), tokens)
}

func NewJWTServiceWithSecret(secret string, tokens TokenRepository) JWTService {
	return &jwtService{
		secretKey: secret,
		issuer:    "FOODGRAM",
		tokens:    tokens,
	}
}

func (j *jwtService) GenerateTokenUser(userID uint, role string) (string, error) {
	now := time.Now()
	claims := jwtUserClaim{
		userID,
		role,
		jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) claims(token string) (*jwtUserClaim, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return nil, domain.ErrTokenInvalid
	}
	return t_Token.Claims.(*jwtUserClaim), nil
}

func (j *jwtService) GetUserIDByToken(ctx context.Context, token string) (uint, string, error) {
	claims, err := j.claims(token)
	if err != nil {
		return 0, "", err
	}

	if claims.ID != "" && j.tokens != nil {
		revoked, err := j.tokens.IsRevoked(ctx, claims.ID)
		if err != nil {
			return 0, "", err
		}
		if revoked {
			return 0, "", domain.ErrTokenInvalid
		}
	}
	return claims.UserID, claims.Role, nil
}

// RevokeToken stores the token ID so later requests carrying it are rejected.
func (j *jwtService) RevokeToken(ctx context.Context, token string) error {
	claims, err := j.claims(token)
	if err != nil {
		return err
	}
	if j.tokens == nil || claims.ID == "" {
		return nil
	}

	expiresAt := time.Now().Add(tokenTTL)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return j.tokens.Revoke(ctx, entities.RevokedToken{
		JTI:       claims.ID,
		UserID:    claims.UserID,
		ExpiresAt: expiresAt,
	})
}
