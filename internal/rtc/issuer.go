package rtc

import (
	"fmt"
	"strings"
)

// IdentityVerifier checks an opaque bearer token against the identity
// authority and returns the stable uid and email behind it.
type IdentityVerifier interface {
	Verify(token string) (uid, email string, err error)
}

// RoleStore returns the role assigned to a uid at account creation, or
// "" when the uid has no stored role.
type RoleStore interface {
	RoleOf(uid string) (string, error)
}

// TokenMinter signs a capability token for the media transport.
type TokenMinter interface {
	Mint(identity, displayName string, grants Grants) (token, url string, err error)
}

// RandomSuffix produces the short random tail of anonymous identities.
type RandomSuffix func() (string, error)

// JoinRequest is a capability request for one room. ClaimedRole and
// Name come from the client and are advisory; BearerToken, when
// verifiable, is authoritative.
type JoinRequest struct {
	Room        string
	Name        string
	ClaimedRole string
	BearerToken string
}

// JoinGrant is the resolved, signed result handed back to the client.
type JoinGrant struct {
	Token    string
	URL      string
	Room     string
	Identity string
	Role     string
	Name     string
}

// Issuer mints scoped join capabilities. Stateless per request: nothing
// is cached or retained between calls, so concurrent requests never
// contend.
type Issuer struct {
	Verifier IdentityVerifier
	Roles    RoleStore
	Minter   TokenMinter
	// RequireAuth selects hardened mode: requests without a verifiable
	// bearer token are rejected instead of downgraded to anonymous.
	RequireAuth bool
	// Suffix generates the anon identity tail; defaults to a 6-char code.
	Suffix RandomSuffix
}

// Issue resolves the requester's identity and role, builds the
// prefix-tagged identity string and mints the capability. The stored
// role always overrides the claimed one when a verified identity
// exists; the claimed role is only a default for anonymous requests.
func (i *Issuer) Issue(req JoinRequest) (JoinGrant, error) {
	uid, email, verified, err := i.resolveIdentity(req.BearerToken)
	if err != nil {
		return JoinGrant{}, err
	}

	role := normalizeRole(req.ClaimedRole)
	if verified {
		stored, err := i.Roles.RoleOf(uid)
		if err != nil {
			return JoinGrant{}, fmt.Errorf("role lookup: %w", err)
		}
		if stored == "" {
			stored = "student"
		}
		role = stored
	}

	identity, err := i.buildIdentity(role, uid, verified)
	if err != nil {
		return JoinGrant{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		if email != "" {
			name = email
		} else {
			name = identity
		}
	}

	grants := Grants{
		RoomJoin:       true,
		Room:           req.Room,
		CanPublish:     role != "admin", // admins observe silently
		CanSubscribe:   true,
		CanPublishData: true,
	}
	token, url, err := i.Minter.Mint(identity, name, grants)
	if err != nil {
		return JoinGrant{}, err
	}
	return JoinGrant{
		Token:    token,
		URL:      url,
		Room:     req.Room,
		Identity: identity,
		Role:     role,
		Name:     name,
	}, nil
}

func (i *Issuer) resolveIdentity(bearer string) (uid, email string, verified bool, err error) {
	bearer = strings.TrimSpace(bearer)
	if bearer == "" {
		if i.RequireAuth {
			return "", "", false, ErrAuthRequired
		}
		return "", "", false, nil
	}
	uid, email, verr := i.Verifier.Verify(bearer)
	if verr != nil {
		if i.RequireAuth {
			return "", "", false, ErrInvalidToken
		}
		// relaxed mode: unverifiable tokens degrade to anonymous, they
		// are never trusted as-is
		return "", "", false, nil
	}
	return uid, email, true, nil
}

func (i *Issuer) buildIdentity(role, uid string, verified bool) (string, error) {
	prefix := "student_"
	switch role {
	case "tutor":
		prefix = "tutor_"
	case "admin":
		prefix = "observer_"
	}
	if verified {
		return prefix + uid, nil
	}
	suffix := i.Suffix
	if suffix == nil {
		suffix = defaultSuffix
	}
	tail, err := suffix()
	if err != nil {
		return "", fmt.Errorf("anon identity: %w", err)
	}
	return prefix + "anon_" + tail, nil
}

func normalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "tutor":
		return "tutor"
	case "admin":
		return "admin"
	default:
		return "student"
	}
}
