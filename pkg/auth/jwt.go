package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
)

const defaultIssuer = "duelhub"

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid token claims")
)

// IdentityProvider turns a bearer token into the caller's user id. Tokens
// are issued by the account service; Issue exists for tooling and tests.
type IdentityProvider interface {
	Issue(userID int, ttl time.Duration) (string, error)
	Verify(token string) (*Claims, error)
}

// Claims carry the user id as the standard subject.
type Claims struct {
	jwt.StandardClaims
}

func (c *Claims) UserID() (int, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: subject %q", ErrInvalidClaims, c.Subject)
	}
	return id, nil
}

type HMACProvider struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewHMACProvider(secret, issuer string) *HMACProvider {
	if issuer == "" {
		issuer = defaultIssuer
	}
	return &HMACProvider{secret: []byte(secret), issuer: issuer, now: time.Now}
}

func (p *HMACProvider) Issue(userID int, ttl time.Duration) (string, error) {
	now := p.now()
	claims := Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.Itoa(userID),
			Issuer:    p.issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

func (p *HMACProvider) Verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !claims.VerifyIssuer(p.issuer, true) {
		return nil, ErrInvalidClaims
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}
	return claims, nil
}
