package middlewares

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context key under which the verified user id is stored. Handlers read it
// through CurrentUserId.
const userIdKey = "userId"

func secret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// parseUserId validates the signed bearer token and extracts the subject
// (user id). Issuing tokens is the auth collaborator's job; this server only
// verifies the claims it is handed.
func parseUserId(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret(), nil
	})
	if err != nil {
		return "", err
	}
	return token.Claims.GetSubject()
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	// Fall back to a query token so media elements that cannot set headers
	// can still authenticate.
	return c.Query("token")
}

// JWT rejects requests that don't carry a valid bearer token, and stores the
// verified user id on the request context for handlers downstream.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"statusCode": http.StatusUnauthorized,
				"message":    "missing bearer token",
			})
			c.Abort()
			return
		}

		userId, err := parseUserId(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"statusCode": http.StatusUnauthorized,
				"message":    "invalid bearer token",
			})
			c.Abort()
			return
		}

		c.Set(userIdKey, userId)
		c.Next()
	}
}

// OptionalJWT stores the user id when a valid token is present but lets
// anonymous requests through. Public read endpoints use it so that
// viewer-dependent fields (isLiked, isSubscribed) can be filled in.
func OptionalJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if userId, err := parseUserId(token); err == nil {
				c.Set(userIdKey, userId)
			}
		}
		c.Next()
	}
}

// CurrentUserId returns the verified user id set by JWT/OptionalJWT, or
// empty string for anonymous requests.
func CurrentUserId(c *gin.Context) string {
	return c.GetString(userIdKey)
}

// SignToken mints a token carrying the given user id as subject. The running
// server never calls this on behalf of clients (session issuance lives in
// the auth service); it documents the claim contract and backs tests.
func SignToken(userId string, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userId,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}
