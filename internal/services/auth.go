package services

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/openimagingdata/radelement-api/internal/config"
)

// ValidateToken parses and verifies a bearer token against the configured
// HMAC secret. The issuer is enforced when JWT_ISSUER is set.
func ValidateToken(cfg *config.Config, tokenString string) (jwt.MapClaims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithExpirationRequired(),
	}
	if cfg.JWTIssuer != "" {
		options = append(options, jwt.WithIssuer(cfg.JWTIssuer))
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	}, options...)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", token.Claims)
	}
	return claims, nil
}
