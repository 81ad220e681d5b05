package model

import (
	"errors"
	"strings"
	"time"
)

// AccessMode governs how much article body an API key receives.
// Modes are ordered: metadata < snippet < full.
type AccessMode string

const (
	AccessMetadata AccessMode = "metadata"
	AccessSnippet  AccessMode = "snippet"
	AccessFull     AccessMode = "full"
)

var accessModeRank = map[AccessMode]int{
	AccessMetadata: 0,
	AccessSnippet:  1,
	AccessFull:     2,
}

func (m AccessMode) Valid() bool {
	_, ok := accessModeRank[m]
	return ok
}

// Exceeds reports whether m grants more than cap.
func (m AccessMode) Exceeds(cap AccessMode) bool {
	return accessModeRank[m] > accessModeRank[cap]
}

// AtMost clamps m to cap.
func (m AccessMode) AtMost(cap AccessMode) AccessMode {
	if m.Exceeds(cap) {
		return cap
	}
	return m
}

// UserRole is a user's role inside its organization.
type UserRole string

const (
	RoleOwner  UserRole = "owner"
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

var validUserRoles = map[UserRole]bool{
	RoleOwner:  true,
	RoleAdmin:  true,
	RoleMember: true,
}

func (r UserRole) Valid() bool {
	return validUserRoles[r]
}

var (
	ErrMissingOrgName      = errors.New("organization name is required")
	ErrMissingEmail        = errors.New("user email is required")
	ErrInvalidRole         = errors.New("unknown user role")
	ErrMissingPlanName     = errors.New("plan name is required")
	ErrMissingPlanSlug     = errors.New("plan slug is required")
	ErrInvalidRequestLimit = errors.New("plan request limit must be -1 or greater")
	ErrInvalidRateLimit    = errors.New("plan rate limit must be positive")
	ErrInvalidBurst        = errors.New("plan burst must be at least 1")
	ErrInvalidAccessMode   = errors.New("unknown access mode")
)

// Slugify turns a display name into a URL-safe slug.
func Slugify(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingDash = false
		default:
			pendingDash = true
		}
	}
	return b.String()
}

// Organization is a customer account. Every API key belongs to one.
type Organization struct {
	ID        int64
	Name      string
	Slug      string
	PlanID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o *Organization) Validate() error {
	if o.Name == "" {
		return ErrMissingOrgName
	}
	return nil
}

type User struct {
	ID        int64
	OrgID     int64
	Email     string
	Name      string
	Role      UserRole
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) Validate() error {
	if u.Email == "" {
		return ErrMissingEmail
	}
	if !u.Role.Valid() {
		return ErrInvalidRole
	}
	return nil
}

// UnlimitedRequests marks a plan without a daily request cap.
const UnlimitedRequests = -1

// BillingPlan is the static description of what an organization may do.
// RequestLimit is requests per day; -1 means unlimited.
type BillingPlan struct {
	ID                int64
	Name              string
	Slug              string
	MonthlyPriceCents int64
	RequestLimit      int
	RateLimit         float64
	Burst             int
	MaxAccessMode     AccessMode
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (p *BillingPlan) Validate() error {
	if p.Name == "" {
		return ErrMissingPlanName
	}
	if p.Slug == "" {
		return ErrMissingPlanSlug
	}
	if p.RequestLimit < UnlimitedRequests {
		return ErrInvalidRequestLimit
	}
	if p.RateLimit <= 0 {
		return ErrInvalidRateLimit
	}
	if p.Burst < 1 {
		return ErrInvalidBurst
	}
	if !p.MaxAccessMode.Valid() {
		return ErrInvalidAccessMode
	}
	return nil
}

// Unlimited reports whether the plan has no daily request cap.
func (p *BillingPlan) Unlimited() bool {
	return p.RequestLimit == UnlimitedRequests
}
