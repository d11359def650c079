package rtc

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintRejectsMissingCredentials(t *testing.T) {
	cases := []Minter{
		{APISecret: "s", ServerURL: "wss://x"},
		{APIKey: "k", ServerURL: "wss://x"},
		{APIKey: "k", APISecret: "s"},
	}
	for _, m := range cases {
		_, _, err := m.Mint("student_u1", "Amy", Grants{Room: "r1", RoomJoin: true})
		assert.ErrorIs(t, err, ErrTransportMisconfigured)
	}
}

func TestMintEncodesGrantsAndIdentity(t *testing.T) {
	m := Minter{APIKey: "key1", APISecret: "secret1", ServerURL: "wss://media.example.com", TTL: time.Hour}
	grants := Grants{
		RoomJoin:       true,
		Room:           "r1",
		CanPublish:     false,
		CanSubscribe:   true,
		CanPublishData: true,
	}
	token, url, err := m.Mint("observer_u1", "Admin", grants)
	require.NoError(t, err)
	assert.Equal(t, "wss://media.example.com", url)

	claims := &capabilityClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tk *jwt.Token) (interface{}, error) {
		return []byte("secret1"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	assert.Equal(t, "key1", claims.Issuer)
	assert.Equal(t, "observer_u1", claims.Subject)
	assert.Equal(t, "Admin", claims.Name)
	assert.Equal(t, grants, claims.Video)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}
