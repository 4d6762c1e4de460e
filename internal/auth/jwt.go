package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"bookhub/pkg/models"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token expired")
	ErrWrongTokenType = errors.New("invalid token type")
)

type TokenService struct {
	Secret     []byte
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Claims carries subject=username plus the user id and a type discriminator
// separating access from refresh tokens.
type Claims struct {
	UserID string `json:"user_id"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

func (ts TokenService) IssueAccess(u *models.User) (string, time.Time, error) {
	return ts.sign(u.Username, u.ID, TypeAccess, ts.AccessTTL)
}

func (ts TokenService) IssueRefresh(u *models.User) (string, time.Time, error) {
	return ts.sign(u.Username, u.ID, TypeRefresh, ts.RefreshTTL)
}

func (ts TokenService) sign(username, userID, typ string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)

	claims := Claims{
		UserID: userID,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.Issuer,
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(ts.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return s, exp, nil
}

func (ts TokenService) Parse(tokenString string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		// enforce HS256
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.Secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Verify parses the token and checks that it was issued for the expected use.
func (ts TokenService) Verify(tokenString, expectedType string) (*Claims, error) {
	claims, err := ts.Parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != expectedType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

// ErrorMessage maps a Verify error to the fixed text sent to clients.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrExpiredToken):
		return ErrExpiredToken.Error()
	case errors.Is(err, ErrWrongTokenType):
		return ErrWrongTokenType.Error()
	default:
		return ErrInvalidToken.Error()
	}
}
