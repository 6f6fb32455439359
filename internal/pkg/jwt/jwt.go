package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer - издатель токенов сервиса
const Issuer = "matricula"

// Claims содержит payload JWT токена сотрудника
type Claims struct {
	OperatorID uuid.UUID           `json:"operator_id"`
	Name       string              `json:"name"`
	Role       domain.OperatorRole `json:"role"`
	jwt.RegisteredClaims
}

// Operator возвращает сотрудника из claims
func (c *Claims) Operator() *domain.Operator {
	return &domain.Operator{ID: c.OperatorID, Name: c.Name, Role: c.Role}
}

// TokenService управляет созданием и валидацией JWT токенов
type TokenService struct {
	secretKey    string
	accessExpiry time.Duration
}

// Token - выданный токен
type Token struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// NewTokenService создает новый сервис для работы с токенами
func NewTokenService(secretKey string, accessExpiry time.Duration) *TokenService {
	return &TokenService{
		secretKey:    secretKey,
		accessExpiry: accessExpiry,
	}
}

// GenerateToken выпускает токен для сотрудника
func (ts *TokenService) GenerateToken(op *domain.Operator) (*Token, error) {
	if _, err := domain.ParseOperatorRole(string(op.Role)); err != nil {
		return nil, err
	}
	if op.ID == uuid.Nil {
		op.ID = uuid.New()
	}

	now := time.Now()
	expiresAt := now.Add(ts.accessExpiry)

	claims := &Claims{
		OperatorID: op.ID,
		Name:       op.Name,
		Role:       op.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   op.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(ts.secretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Token{AccessToken: signed, ExpiresAt: expiresAt}, nil
}

// ValidateToken валидирует JWT токен и возвращает claims
func (ts *TokenService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Проверяем алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.secretKey), nil
	}, jwt.WithIssuer(Issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	if _, err := domain.ParseOperatorRole(string(claims.Role)); err != nil {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}
