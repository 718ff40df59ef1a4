package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

// Claims - a struct that will be encoded to JWT
type Claims struct {
	ProfileID string `json:"profileId"`
	Name      string `json:"name"`
	jwt.RegisteredClaims
}

// JWTToken - JWT Token
type JWTToken struct {
	Value     string
	ExpiresAt time.Time
}

type Service interface {
	FetchJWTToken(token string) (*Claims, error)
	CreateJWTToken(profileID, name string, tokenExpiration time.Duration) (*JWTToken, error)
}

type service struct {
	jwtKey string
}

func NewService(jwtKey string) Service {
	return &service{jwtKey: jwtKey}
}

func (s *service) FetchJWTToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("the JWT Token is invalid")
	}

	return claims, nil
}

func (s *service) CreateJWTToken(profileID, name string, tokenExpiration time.Duration) (*JWTToken, error) {
	expirationTime := time.Now().Add(tokenExpiration)
	claims := &Claims{
		ProfileID: profileID,
		Name:      name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtKey))
	if err != nil {
		return nil, errors.Wrap(err, "unable to sign token")
	}

	return &JWTToken{Value: signed, ExpiresAt: expirationTime}, nil
}
