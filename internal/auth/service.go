package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/drawshapes/drawshapes/internal/typeid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongCanvas  = errors.New("token is for a different canvas")
)

// TokenTTL is how long a canvas token stays valid.
const TokenTTL = 24 * time.Hour

// Service issues and checks canvas tokens. A token's subject is the id of
// the canvas it grants access to.
type Service struct {
	jwtSecret []byte
	now       func() time.Time
}

func NewService(jwtSecret string) *Service {
	return &Service{
		jwtSecret: []byte(jwtSecret),
		now:       time.Now,
	}
}

type TokenResult struct {
	CanvasID  string `json:"canvasId"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// IssueToken signs a token for canvasID.
func (s *Service) IssueToken(canvasID string) (*TokenResult, error) {
	if err := typeid.Validate(canvasID, typeid.PrefixCanvas); err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	now := s.now()
	exp := now.Add(TokenTTL)
	claims := jwt.MapClaims{
		"sub": canvasID,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &TokenResult{CanvasID: canvasID, Token: signed, ExpiresAt: exp.Unix()}, nil
}

// ValidateToken checks the signature and expiry and returns the canvas id.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	canvasID, ok := claims["sub"].(string)
	if !ok || canvasID == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return canvasID, nil
}

// Authorize checks that tokenString grants access to canvasID.
func (s *Service) Authorize(tokenString, canvasID string) error {
	sub, err := s.ValidateToken(tokenString)
	if err != nil {
		return err
	}
	if sub != canvasID {
		return ErrWrongCanvas
	}
	return nil
}
