package rtc

import "errors"

var (
	// ErrAuthRequired is returned in hardened mode when no bearer token
	// accompanies a capability request.
	ErrAuthRequired = errors.New("authentication required")

	// ErrInvalidToken is returned in hardened mode when the supplied
	// bearer token fails verification.
	ErrInvalidToken = errors.New("invalid identity token")

	// ErrTransportMisconfigured means signing credentials or the media
	// server URL are missing; the whole request fails, no partial grant.
	ErrTransportMisconfigured = errors.New("media transport misconfigured")
)
