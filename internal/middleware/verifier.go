package middleware

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var errInvalidBearer = errors.New("invalid bearer token")

// Verifier checks opaque bearer tokens against the identity authority's
// signing secret and extracts the stable uid and email. Used by the
// capability issuer, which cannot rely on the gin middleware because a
// missing or bad token is a policy decision there, not a hard reject.
type Verifier struct {
	Secret string
}

func (v *Verifier) Verify(tokenStr string) (uid, email string, err error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidBearer
		}
		return []byte(v.Secret), nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", "", errInvalidBearer
	}
	return claims.UserID, claims.Email, nil
}
