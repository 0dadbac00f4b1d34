package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	config "github.com/GioRdrz/food-delivery/configs"
	"github.com/GioRdrz/food-delivery/internal/apperr"
	"github.com/GioRdrz/food-delivery/internal/models"
	"github.com/GioRdrz/food-delivery/internal/repository"
)

var (
	tokenSecret []byte
	tokenTTL    time.Duration
)

const contextUserKey = "current_user"

func Init(cfg config.AuthConfig) {
	tokenSecret = []byte(cfg.TokenSecret)
	tokenTTL = cfg.TokenTTL
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// IssueToken signs a bearer token whose subject is the user id.
func IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tokenSecret)
}

func parseToken(raw string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.Unauthenticatedf("unexpected signing method")
		}
		return tokenSecret, nil
	})
	if err != nil || !token.Valid {
		return "", apperr.Unauthenticatedf("could not validate credentials")
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", apperr.Unauthenticatedf("could not validate credentials")
	}
	return claims.Subject, nil
}

// RequireAuth resolves the bearer token to a user and injects it into the
// gin context. Inactive or blocked users are rejected even with a valid
// token.
func RequireAuth(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		userID, err := parseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperr.Reason(err)})
			return
		}

		user, err := users.GetByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		if !user.IsActive || user.IsBlocked {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "user is inactive or blocked"})
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user placed on the context by
// RequireAuth. Panics if the middleware did not run.
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(contextUserKey).(*models.User)
}
