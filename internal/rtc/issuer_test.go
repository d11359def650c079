package rtc

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	uid   string
	email string
	err   error
}

func (f *fakeVerifier) Verify(token string) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	return f.uid, f.email, nil
}

type fakeRoles struct {
	roles map[string]string
	err   error
}

func (f *fakeRoles) RoleOf(uid string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.roles[uid], nil
}

type fakeMinter struct {
	lastIdentity string
	lastName     string
	lastGrants   Grants
	calls        int
	err          error
}

func (f *fakeMinter) Mint(identity, displayName string, grants Grants) (string, string, error) {
	f.calls++
	f.lastIdentity = identity
	f.lastName = displayName
	f.lastGrants = grants
	if f.err != nil {
		return "", "", f.err
	}
	return "signed-token", "wss://media.example.com", nil
}

func newIssuer(v IdentityVerifier, r RoleStore, m TokenMinter, hardened bool) *Issuer {
	return &Issuer{
		Verifier:    v,
		Roles:       r,
		Minter:      m,
		RequireAuth: hardened,
		Suffix:      func() (string, error) { return "abc123", nil },
	}
}

func TestStoredRoleOverridesClaimedRole(t *testing.T) {
	cases := []struct {
		claimed string
		stored  string
		want    string
	}{
		{"student", "tutor", "tutor"},
		{"tutor", "student", "student"},
		{"admin", "student", "student"},
		{"student", "admin", "admin"},
		{"tutor", "", "student"}, // no stored role defaults to student
	}
	for _, tc := range cases {
		minter := &fakeMinter{}
		iss := newIssuer(
			&fakeVerifier{uid: "u1", email: "u1@example.com"},
			&fakeRoles{roles: map[string]string{"u1": tc.stored}},
			minter, false,
		)
		grant, err := iss.Issue(JoinRequest{Room: "r1", ClaimedRole: tc.claimed, BearerToken: "tok"})
		require.NoError(t, err)
		assert.Equal(t, tc.want, grant.Role, "claimed=%s stored=%s", tc.claimed, tc.stored)
	}
}

func TestIdentityPrefixMatchesRole(t *testing.T) {
	cases := []struct {
		stored string
		prefix string
	}{
		{"tutor", "tutor_"},
		{"student", "student_"},
		{"admin", "observer_"},
	}
	for _, tc := range cases {
		minter := &fakeMinter{}
		iss := newIssuer(
			&fakeVerifier{uid: "u1"},
			&fakeRoles{roles: map[string]string{"u1": tc.stored}},
			minter, false,
		)
		grant, err := iss.Issue(JoinRequest{Room: "r1", BearerToken: "tok"})
		require.NoError(t, err)
		assert.Equal(t, tc.prefix+"u1", grant.Identity)
	}
}

func TestAdminNeverPublishes(t *testing.T) {
	for _, role := range []string{"admin", "tutor", "student"} {
		minter := &fakeMinter{}
		iss := newIssuer(
			&fakeVerifier{uid: "u1"},
			&fakeRoles{roles: map[string]string{"u1": role}},
			minter, false,
		)
		_, err := iss.Issue(JoinRequest{Room: "r1", BearerToken: "tok"})
		require.NoError(t, err)
		assert.Equal(t, role != "admin", minter.lastGrants.CanPublish, "role=%s", role)
		assert.True(t, minter.lastGrants.CanSubscribe)
		assert.True(t, minter.lastGrants.CanPublishData)
		assert.True(t, minter.lastGrants.RoomJoin)
		assert.Equal(t, "r1", minter.lastGrants.Room)
	}
}

func TestHardenedModeRejectsMissingOrBadToken(t *testing.T) {
	minter := &fakeMinter{}
	iss := newIssuer(&fakeVerifier{err: errors.New("bad")}, &fakeRoles{}, minter, true)

	_, err := iss.Issue(JoinRequest{Room: "r1"})
	assert.ErrorIs(t, err, ErrAuthRequired)

	_, err = iss.Issue(JoinRequest{Room: "r1", BearerToken: "garbage"})
	assert.ErrorIs(t, err, ErrInvalidToken)

	assert.Zero(t, minter.calls, "no capability may be minted on auth failure")
}

func TestRelaxedModeFallsBackToAnonymous(t *testing.T) {
	minter := &fakeMinter{}
	iss := newIssuer(&fakeVerifier{err: errors.New("bad")}, &fakeRoles{}, minter, false)

	grant, err := iss.Issue(JoinRequest{Room: "r1", ClaimedRole: "tutor", BearerToken: "garbage"})
	require.NoError(t, err)
	// unverifiable token is never trusted; claimed role only shapes the
	// anonymous prefix
	assert.Equal(t, "tutor", grant.Role)
	assert.Equal(t, "tutor_anon_abc123", grant.Identity)
}

func TestAnonymousIdentityWithoutToken(t *testing.T) {
	minter := &fakeMinter{}
	iss := newIssuer(&fakeVerifier{}, &fakeRoles{}, minter, false)

	grant, err := iss.Issue(JoinRequest{Room: "r1"})
	require.NoError(t, err)
	assert.Equal(t, "student", grant.Role)
	assert.True(t, strings.HasPrefix(grant.Identity, "student_anon_"))
}

func TestDisplayNameFallsBackToEmailThenIdentity(t *testing.T) {
	minter := &fakeMinter{}
	iss := newIssuer(
		&fakeVerifier{uid: "u1", email: "amy@example.com"},
		&fakeRoles{roles: map[string]string{"u1": "tutor"}},
		minter, false,
	)
	_, err := iss.Issue(JoinRequest{Room: "r1", BearerToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "amy@example.com", minter.lastName)

	_, err = iss.Issue(JoinRequest{Room: "r1", Name: "Amy", BearerToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "Amy", minter.lastName)
}

func TestMinterErrorFailsWholeRequest(t *testing.T) {
	minter := &fakeMinter{err: ErrTransportMisconfigured}
	iss := newIssuer(
		&fakeVerifier{uid: "u1"},
		&fakeRoles{roles: map[string]string{"u1": "student"}},
		minter, false,
	)
	_, err := iss.Issue(JoinRequest{Room: "r1", BearerToken: "tok"})
	assert.ErrorIs(t, err, ErrTransportMisconfigured)
}
