package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims is what a validated token carries.
type Claims struct {
	StaffID string
	Name    string
	Role    string
}

type Tokens struct {
	secret []byte
	now    func() time.Time
}

func NewTokens(secret string) (*Tokens, error) {
	if secret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}
	return &Tokens{secret: []byte(secret), now: time.Now}, nil
}

func (t *Tokens) Generate(staff *Staff) (string, error) {
	if staff == nil || staff.ID == "" {
		return "", errors.New("empty staff id passed to Generate")
	}

	claims := jwt.MapClaims{
		"staffID": staff.ID,
		"name":    staff.Name,
		"role":    staff.Role,
		"exp":     t.now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *Tokens) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	staffID, _ := claims["staffID"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	if staffID == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{StaffID: staffID, Name: name, Role: role}, nil
}
