package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

// Pair is the bearer credential pair handed out at registration and login.
type Pair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssuePair mints a short-lived access token and a longer-lived refresh token
// for the given user.
func (m *Manager) IssuePair(userUUID string) (*Pair, error) {
	access, err := m.sign(userUUID, KindAccess, m.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := m.sign(userUUID, KindRefresh, m.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &Pair{Refresh: refresh, Access: access}, nil
}

func (m *Manager) sign(userUUID, kind string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"uid": userUUID,
		"typ": kind,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
		"iss": "chatapi",
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// ParseAccess validates an access token and returns the user it was issued to.
// Refresh tokens are rejected here: they must not authenticate requests.
func (m *Manager) ParseAccess(tokenStr string) (string, error) {
	uid, kind, err := m.parse(tokenStr)
	if err != nil {
		return "", err
	}
	if kind != KindAccess {
		return "", ErrInvalidToken
	}
	return uid, nil
}

func (m *Manager) parse(tokenStr string) (string, string, error) {
	if tokenStr == "" {
		return "", "", ErrInvalidToken
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", ErrInvalidToken
	}
	uid, ok1 := claims["uid"].(string)
	kind, ok2 := claims["typ"].(string)
	if !ok1 || !ok2 {
		return "", "", ErrInvalidToken
	}
	return uid, kind, nil
}
