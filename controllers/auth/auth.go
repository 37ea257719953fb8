package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"

	"github.com/goleiroon/goleiroon/config"
	"github.com/goleiroon/goleiroon/models"
	"github.com/goleiroon/goleiroon/types"
)

const CurrentUserKey = "CurrentUser"

var (
	ErrMissingSecret = errors.New("jwt secret is not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

// Auth struct represents parsed jwt information.
type Auth struct {
	Type types.UserType `json:"tipo"`

	jwt.StandardClaims
}

func (a *Auth) UserID() (uint64, error) {
	return strconv.ParseUint(a.Subject, 10, 64)
}

func secret() ([]byte, error) {
	if len(config.Environment.JWTSecret) == 0 {
		return nil, ErrMissingSecret
	}

	return []byte(config.Environment.JWTSecret), nil
}

func ttl() time.Duration {
	d, err := time.ParseDuration(config.Environment.JWTTTL)
	if err != nil || d <= 0 {
		return 30 * 24 * time.Hour
	}

	return d
}

// IssueToken signs an HS256 session token for user.
func IssueToken(user *models.User) (string, time.Time, error) {
	key, err := secret()
	if err != nil {
		return "", time.Time{}, err
	}

	now := time.Now()
	expiresAt := now.Add(ttl())

	claims := &Auth{
		Type: user.Type,
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.FormatUint(user.ID, 10),
			IssuedAt:  now.Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

func ParseToken(token string) (*Auth, error) {
	key, err := secret()
	if err != nil {
		return nil, err
	}

	auth := &Auth{}
	parsed, err := jwt.ParseWithClaims(token, auth, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return auth, nil
}

// GetCurrentUser returns the user the Authenticate middleware stored on the request.
func GetCurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(CurrentUserKey).(*models.User)

	return user
}
