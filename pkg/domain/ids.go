package domain

import (
	"github.com/google/uuid"

	dErrors "consentd/pkg/domain-errors"
)

// Typed identifiers keep approved sites, whitelist entries and client
// registrations from being mixed up at compile time.
type (
	ApprovedSiteID    uuid.UUID
	WhitelistedSiteID uuid.UUID
	ClientID          uuid.UUID
)

func (i ApprovedSiteID) String() string    { return uuid.UUID(i).String() }
func (i WhitelistedSiteID) String() string { return uuid.UUID(i).String() }
func (i ClientID) String() string          { return uuid.UUID(i).String() }

func (i ApprovedSiteID) IsNil() bool    { return uuid.UUID(i) == uuid.Nil }
func (i WhitelistedSiteID) IsNil() bool { return uuid.UUID(i) == uuid.Nil }
func (i ClientID) IsNil() bool          { return uuid.UUID(i) == uuid.Nil }

// NewApprovedSiteID returns a fresh random identifier.
func NewApprovedSiteID() ApprovedSiteID { return ApprovedSiteID(uuid.New()) }

// NewWhitelistedSiteID returns a fresh random identifier.
func NewWhitelistedSiteID() WhitelistedSiteID { return WhitelistedSiteID(uuid.New()) }

// NewClientID returns a fresh random identifier.
func NewClientID() ClientID { return ClientID(uuid.New()) }

func ParseApprovedSiteID(s string) (ApprovedSiteID, error) {
	u, err := parseUUID(s, "approved site")
	return ApprovedSiteID(u), err
}

func ParseWhitelistedSiteID(s string) (WhitelistedSiteID, error) {
	u, err := parseUUID(s, "whitelisted site")
	return WhitelistedSiteID(u), err
}

func ParseClientID(s string) (ClientID, error) {
	u, err := parseUUID(s, "client")
	return ClientID(u), err
}

// parseUUID rejects empty, malformed and nil UUIDs.
func parseUUID(s, kind string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind+" id")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id cannot be nil")
	}
	return u, nil
}

func (i ApprovedSiteID) MarshalText() ([]byte, error)    { return uuid.UUID(i).MarshalText() }
func (i WhitelistedSiteID) MarshalText() ([]byte, error) { return uuid.UUID(i).MarshalText() }
func (i ClientID) MarshalText() ([]byte, error)          { return uuid.UUID(i).MarshalText() }

func (i *ApprovedSiteID) UnmarshalText(b []byte) error    { return (*uuid.UUID)(i).UnmarshalText(b) }
func (i *WhitelistedSiteID) UnmarshalText(b []byte) error { return (*uuid.UUID)(i).UnmarshalText(b) }
func (i *ClientID) UnmarshalText(b []byte) error          { return (*uuid.UUID)(i).UnmarshalText(b) }
