package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// KeyTokenPrefix starts every issued API key token.
const KeyTokenPrefix = "nw_"

var ErrMissingKeyName = errors.New("api key name is required")

// APIKey authenticates requests against the API. The token is returned
// to the caller once at creation and stored verbatim.
type APIKey struct {
	ID         int64
	OrgID      int64
	Name       string
	Token      string
	AccessMode AccessMode
	Enabled    bool
	CreatedAt  time.Time
	LastUsedAt *time.Time
	RevokedAt  *time.Time
}

// Active reports whether the key may authenticate requests.
func (k *APIKey) Active() bool {
	return k.Enabled && k.RevokedAt == nil
}

// RedactedToken keeps the prefix and last four characters, masking the rest.
func (k *APIKey) RedactedToken() string {
	t := k.Token
	if len(t) <= len(KeyTokenPrefix)+4 {
		return t
	}
	return KeyTokenPrefix + strings.Repeat("*", 8) + t[len(t)-4:]
}

// NewKeyToken generates a fresh key token.
func NewKeyToken() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return KeyTokenPrefix + raw
}

// DailyUsage is an organization's request count for one day, summed
// across its keys.
type DailyUsage struct {
	Date     time.Time
	Requests int64
}
