package auth // package auth provides password hashing and bearer token primitives

import (
	"errors" // sentinel error values and errors.Is
	"time"   // expiry computation

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens

	"github.com/iliyamo/product-inventory/internal/model"
)

// ErrTokenExpired is returned by VerifyToken when the token's signature
// is valid but its expiry has passed. ErrTokenInvalid covers every other
// verification failure (bad signature, wrong algorithm, malformed
// structure). The two are distinct so callers can produce different
// user-facing messages.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims is the verified identity payload embedded in a token.
type Claims struct {
	UserID    uint64    // subject user id
	Username  string    // username at issuance time
	Email     string    // email at issuance time
	IssuedAt  time.Time // iat
	ExpiresAt time.Time // exp
}

// IssueToken builds and signs an HS256 JWT for a user. The token embeds
// the user id, username, email and issued-at; expiry is issued-at plus
// ttl. Expiry is enforced at verification time, not here.
func IssueToken(secret string, u model.User, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":      u.ID,
		"username": u.Username,
		"email":    u.Email,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// VerifyToken validates the signature and expiry of a signed token and
// returns its claims. Expired tokens fail with ErrTokenExpired; every
// other failure maps to ErrTokenInvalid.
func VerifyToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC signatures are acceptable; reject anything else.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}

	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrTokenInvalid
	}

	var c Claims
	switch sub := mc["sub"].(type) {
	case float64:
		c.UserID = uint64(sub)
	default:
		return Claims{}, ErrTokenInvalid
	}
	c.Username, _ = mc["username"].(string)
	c.Email, _ = mc["email"].(string)
	if iat, ok := mc["iat"].(float64); ok {
		c.IssuedAt = time.Unix(int64(iat), 0).UTC()
	}
	if exp, ok := mc["exp"].(float64); ok {
		c.ExpiresAt = time.Unix(int64(exp), 0).UTC()
	}
	return c, nil
}
