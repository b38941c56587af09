package auth // package auth provides token issuance, verification and hashing

import (
    "crypto/sha256" // SHA‑256 hashing for stored refresh tokens
    "encoding/hex"  // hex encoding of digests
    "errors"        // sentinel error values
    "time"          // expiry computation

    "github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// ErrInvalidToken is returned when a token fails signature verification,
// has expired according to its exp claim, or does not carry a usable
// subject claim.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken represents a signed JWT access token along with its expiry.
// Access tokens are short‑lived and sent in the Authorization header when
// calling protected endpoints.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// RefreshToken represents a long‑lived token used to obtain new access
// tokens without re-authentication.  The Token field is the signed JWT
// returned to the client.  Refresh tokens are single-use: the store keeps a
// SHA‑256 hash of the string together with an explicit expiry, and the row
// is deleted when the token is exchanged or revoked.
type RefreshToken struct {
    Token string    // the serialized JWT string returned to the client
    Exp   time.Time // UTC expiration time, also persisted server-side
}

// NewAccessToken builds and signs an HS256 JWT for a user.  It takes the
// access-token secret, the user ID and a TTL in minutes.  The JWT carries
// the standard subject (sub), expiration (exp) and issued at (iat) claims;
// the subject is the user ID.  Role is deliberately not embedded: the auth
// middleware loads the user row on every request, so a role change takes
// effect without waiting for old tokens to expire.
func NewAccessToken(secret string, userID uint64, ttlMin int) (AccessToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub": userID,
        "exp": exp.Unix(),
        "iat": time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// NewRefreshToken builds and signs an HS256 JWT refresh token.  It is
// signed with a secret distinct from the access-token secret so the two
// token kinds can never be substituted for one another.  The ttlDays
// parameter controls how many days the token is valid; the same expiry is
// written to the refresh token store.
func NewRefreshToken(secret string, userID uint64, ttlDays int) (RefreshToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour)
    claims := jwt.MapClaims{
        "sub": userID,
        "exp": exp.Unix(),
        "iat": time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return RefreshToken{}, err
    }
    return RefreshToken{Token: signed, Exp: exp}, nil
}

// VerifyToken parses a signed token with the given secret and returns the
// user ID from its subject claim.  Only HMAC-signed tokens are accepted;
// anything else, including expired or malformed tokens, yields
// ErrInvalidToken.
func VerifyToken(secret, raw string) (uint64, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return 0, ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return 0, ErrInvalidToken
    }
    // Numeric JSON claims decode as float64.
    sub, ok := claims["sub"].(float64)
    if !ok || sub <= 0 {
        return 0, ErrInvalidToken
    }
    return uint64(sub), nil
}

// HashRefresh returns the SHA‑256 hash of a refresh token string as a hex
// string.  Storing only the hash in the database prevents attackers from
// using stolen database entries to refresh sessions.
func HashRefresh(raw string) string {
    sum := sha256.Sum256([]byte(raw))
    return hex.EncodeToString(sum[:])
}
