package transport

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
)

const (
	originKey = "origin"
	roleAdmin = "admin"
)

// Claims carries the caller account in sub and an optional role.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Auth resolves the caller origin from a Bearer HS256 token. Admin role or a listed admin account acts as root.
func Auth(secret []byte, admins []model.AccountID) gin.HandlerFunc {
	adminSet := make(map[string]struct{}, len(admins))
	for _, a := range admins {
		adminSet[string(a)] = struct{}{}
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if header == "" || !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims := &Claims{}
		if _, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
			return secret, nil
		}); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token has no subject"})
			return
		}

		origin := model.Signed(model.AccountID(sub))
		if _, listed := adminSet[sub]; listed || claims.Role == roleAdmin {
			origin = model.RootOrigin()
		}
		c.Set(originKey, origin)
		c.Next()
	}
}

// IssueToken signs a token for account. Used by operator tooling and tests.
func IssueToken(secret []byte, account model.AccountID, role string) (string, error) {
	if account == "" {
		return "", errors.New("account is required")
	}
	claims := Claims{
		Role:             role,
		RegisteredClaims: jwt.RegisteredClaims{Subject: string(account)},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func originFrom(c *gin.Context) model.Origin {
	v, ok := c.Get(originKey)
	if !ok {
		return model.Origin{}
	}
	origin, _ := v.(model.Origin)
	return origin
}
