package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"property-backend/internal/models"
)

const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

var ErrWrongTokenType = errors.New("wrong token type")

type Claims struct {
	UserID    int    `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TenantID  *int   `json:"tenant_id,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	secret     []byte
	issuer     string
	ttl        time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewJWTManager(secret, issuer string, expirationHours int) *JWTManager {
	if expirationHours <= 0 {
		expirationHours = 24
	}
	return &JWTManager{
		secret:     []byte(secret),
		issuer:     issuer,
		ttl:        time.Duration(expirationHours) * time.Hour,
		refreshTTL: 7 * 24 * time.Hour,
		now:        time.Now,
	}
}

// SetRefreshTTL overrides the 7 day refresh token lifetime.
func (j *JWTManager) SetRefreshTTL(d time.Duration) {
	if d > 0 {
		j.refreshTTL = d
	}
}

// GenerateToken creates a signed HS256 access token for a user.
func (j *JWTManager) GenerateToken(user *models.User) (string, error) {
	token, _, err := j.sign(user, TokenAccess, j.ttl, "")
	return token, err
}

// GenerateRefreshToken creates a long-lived token carrying a unique id so it can be revoked.
func (j *JWTManager) GenerateRefreshToken(user *models.User) (string, *Claims, error) {
	return j.sign(user, TokenRefresh, j.refreshTTL, uuid.NewString())
}

func (j *JWTManager) sign(user *models.User, tokenType string, ttl time.Duration, id string) (string, *Claims, error) {
	now := j.now()
	claims := &Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		TenantID:  user.TenantID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    j.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// ValidateToken accepts access tokens only.
func (j *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	return j.validate(tokenString, TokenAccess)
}

// ValidateRefreshToken accepts refresh tokens only.
func (j *JWTManager) ValidateRefreshToken(tokenString string) (*Claims, error) {
	claims, err := j.validate(tokenString, TokenRefresh)
	if err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, errors.New("refresh token without id")
	}
	return claims, nil
}

// validate verifies signature, expiry, issuer and token type.
func (j *JWTManager) validate(tokenString, tokenType string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return j.secret, nil
	}, jwt.WithIssuer(j.issuer))
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.TokenType != tokenType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
