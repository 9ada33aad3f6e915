package service

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	apperrors "equipment-system/pkg/errors"
)

// SessionClaims is the per-request session state: which factory is logged in
// and whether the session was opened with the administrator password.
type SessionClaims struct {
	FactoryID      uint64 `json:"factoryId"`
	IsAdmin        bool   `json:"isAdmin"`
	IsRefreshToken bool   `json:"isRefresh"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateTokens(factoryID uint64, isAdmin bool) (access string, refresh string, err error)
	ValidateToken(tokenString string) (*SessionClaims, error)
	AccessTokenTTL() time.Duration
	RefreshTokenTTL() time.Duration
}

type jwtService struct {
	secretKey       string
	accessTokenExp  time.Duration
	refreshTokenExp time.Duration
}

func NewJWTService(secretKey string, accessTokenExp, refreshTokenExp time.Duration) JWTService {
	return &jwtService{
		secretKey:       secretKey,
		accessTokenExp:  accessTokenExp,
		refreshTokenExp: refreshTokenExp,
	}
}

func (s *jwtService) GenerateTokens(factoryID uint64, isAdmin bool) (string, string, error) {
	now := time.Now()

	sign := func(isRefresh bool, ttl time.Duration) (string, error) {
		claims := &SessionClaims{
			FactoryID:      factoryID,
			IsAdmin:        isAdmin,
			IsRefreshToken: isRefresh,
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			},
		}
		return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(s.secretKey))
	}

	access, err := sign(false, s.accessTokenExp)
	if err != nil {
		return "", "", err
	}
	refresh, err := sign(true, s.refreshTokenExp)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *jwtService) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.ErrTokenExpired
	}
	return claims, nil
}

func (s *jwtService) AccessTokenTTL() time.Duration  { return s.accessTokenExp }
func (s *jwtService) RefreshTokenTTL() time.Duration { return s.refreshTokenExp }
