package security

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/it407/it-assets/internal/store"
	"github.com/it407/it-assets/pkg/models"
	"github.com/it407/it-assets/pkg/roles"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Principal is the signed-in user a request acts for.
type Principal struct {
	UserID     string     `json:"user_id"`
	EmployeeID string     `json:"employee_id"`
	Email      string     `json:"email"`
	Role       roles.Role `json:"role"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == roles.Admin
}

// AuthenticateUser looks the user up in user_access. A row matches on email,
// password, active flag and a known role together; one email may own several rows.
func AuthenticateUser(ctx context.Context, tables store.TableStore, email, password string) (*models.User, error) {
	users, err := store.Load(ctx, tables, store.UserAccess)
	if err != nil {
		return nil, err
	}

	for _, row := range users.Rows {
		user := models.UserFromRow(row)
		if !strings.EqualFold(user.Email, strings.TrimSpace(email)) {
			continue
		}
		if !user.IsActive || !user.Role.IsValid() {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
			continue
		}
		return &user, nil
	}

	return nil, ErrInvalidCredentials
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (i *TokenIssuer) GenerateJWT(p Principal) (string, error) {
	claims := jwt.MapClaims{
		"userID":     p.UserID,
		"employeeID": p.EmployeeID,
		"email":      p.Email,
		"role":       p.Role.String(),
		"exp":        i.now().Add(i.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func (i *TokenIssuer) Parse(tokenString string) (Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		return Principal{}, err
	}
	if !token.Valid {
		return Principal{}, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, fmt.Errorf("unexpected claims type")
	}

	p := Principal{
		UserID:     claimString(claims, "userID"),
		EmployeeID: claimString(claims, "employeeID"),
		Email:      claimString(claims, "email"),
		Role:       roles.Role(claimString(claims, "role")),
	}
	if !p.Role.IsValid() {
		return Principal{}, fmt.Errorf("unknown role %q", p.Role)
	}

	return p, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}
