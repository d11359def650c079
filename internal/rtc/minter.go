package rtc

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Grants is the capability set encoded into a signed join token. The
// media server enforces exactly what is encoded here; nothing is stored
// server-side.
type Grants struct {
	RoomJoin       bool   `json:"roomJoin"`
	Room           string `json:"room"`
	CanPublish     bool   `json:"canPublish"`
	CanSubscribe   bool   `json:"canSubscribe"`
	CanPublishData bool   `json:"canPublishData"`
}

type capabilityClaims struct {
	Name  string `json:"name,omitempty"`
	Video Grants `json:"video"`
	jwt.RegisteredClaims
}

// Minter signs time-bounded capability tokens for the media transport.
type Minter struct {
	APIKey    string
	APISecret string
	ServerURL string
	TTL       time.Duration
}

// Configured reports whether signing credentials and the transport
// endpoint are all present.
func (m *Minter) Configured() bool {
	return m.APIKey != "" && m.APISecret != "" && m.ServerURL != ""
}

// Mint signs a capability token binding identity and displayName to the
// grant set. Returns the token and the media server URL clients connect
// to.
func (m *Minter) Mint(identity, displayName string, grants Grants) (token, url string, err error) {
	if !m.Configured() {
		return "", "", ErrTransportMisconfigured
	}
	ttl := m.TTL
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	now := time.Now().UTC()
	claims := capabilityClaims{
		Name:  displayName,
		Video: grants,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.APIKey,
			Subject:   identity,
			ID:        uuid.NewString(),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(m.APISecret))
	if err != nil {
		return "", "", err
	}
	return signed, m.ServerURL, nil
}
