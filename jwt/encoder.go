package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/researchhub/researchhub/errors"
)

type Claims struct {
	UserID  int  `json:"user_id"`
	IsAdmin bool `json:"is_admin"`
	jwt.RegisteredClaims
}

type EncodeDecoder struct {
	key []byte
}

func NewEncodeDecoder(key []byte) *EncodeDecoder {
	return &EncodeDecoder{
		key: key,
	}
}

func (e *EncodeDecoder) Encode(userID int, isAdmin bool) (string, error) {
	claims := Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().AddDate(0, 2, 0)),
			Issuer:    "researchhub",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(e.key)
}

func (e *EncodeDecoder) Decode(bearer string) (Claims, error) {
	claims := Claims{}

	token, err := jwt.ParseWithClaims(bearer, &claims, func(token *jwt.Token) (interface{}, error) {
		return e.key, nil
	})
	if err != nil {
		return Claims{}, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return *claims, nil
	}

	return Claims{}, errors.New("could not get claims")
}
