package model

import (
	"errors"
	"testing"
)

func validPlan() BillingPlan {
	return BillingPlan{
		Name:          "Pro",
		Slug:          "pro",
		RequestLimit:  10000,
		RateLimit:     10,
		Burst:         20,
		MaxAccessMode: AccessFull,
	}
}

func TestBillingPlanValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BillingPlan)
		wantErr error
	}{
		{"valid", func(p *BillingPlan) {}, nil},
		{"unlimited requests allowed", func(p *BillingPlan) { p.RequestLimit = UnlimitedRequests }, nil},
		{"zero requests allowed", func(p *BillingPlan) { p.RequestLimit = 0 }, nil},
		{"request limit below -1", func(p *BillingPlan) { p.RequestLimit = -2 }, ErrInvalidRequestLimit},
		{"missing name", func(p *BillingPlan) { p.Name = "" }, ErrMissingPlanName},
		{"missing slug", func(p *BillingPlan) { p.Slug = "" }, ErrMissingPlanSlug},
		{"zero rate limit", func(p *BillingPlan) { p.RateLimit = 0 }, ErrInvalidRateLimit},
		{"zero burst", func(p *BillingPlan) { p.Burst = 0 }, ErrInvalidBurst},
		{"bad access mode", func(p *BillingPlan) { p.MaxAccessMode = "everything" }, ErrInvalidAccessMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPlan()
			tt.mutate(&p)
			err := p.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBillingPlanUnlimited(t *testing.T) {
	p := validPlan()
	if p.Unlimited() {
		t.Error("plan with a cap reported unlimited")
	}
	p.RequestLimit = UnlimitedRequests
	if !p.Unlimited() {
		t.Error("plan with -1 limit should be unlimited")
	}
}

func TestAccessModeOrdering(t *testing.T) {
	if AccessMetadata.Exceeds(AccessSnippet) {
		t.Error("metadata should not exceed snippet")
	}
	if !AccessFull.Exceeds(AccessSnippet) {
		t.Error("full should exceed snippet")
	}
	if AccessFull.Exceeds(AccessFull) {
		t.Error("a mode should not exceed itself")
	}
}

func TestAccessModeAtMost(t *testing.T) {
	tests := []struct {
		mode, cap, want AccessMode
	}{
		{AccessFull, AccessSnippet, AccessSnippet},
		{AccessSnippet, AccessFull, AccessSnippet},
		{AccessMetadata, AccessMetadata, AccessMetadata},
		{AccessFull, AccessFull, AccessFull},
	}
	for _, tt := range tests {
		if got := tt.mode.AtMost(tt.cap); got != tt.want {
			t.Errorf("%s.AtMost(%s) = %s, want %s", tt.mode, tt.cap, got, tt.want)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Media", "acme-media"},
		{"  Tip & Tap GmbH ", "tip-tap-gmbh"},
		{"already-a-slug", "already-a-slug"},
		{"Desk 24/7", "desk-24-7"},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUserValidate(t *testing.T) {
	u := User{Email: "ana@example.com", Role: RoleMember}
	if err := u.Validate(); err != nil {
		t.Errorf("valid user rejected: %v", err)
	}

	u.Role = "superuser"
	if err := u.Validate(); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}

	u = User{Role: RoleOwner}
	if err := u.Validate(); !errors.Is(err, ErrMissingEmail) {
		t.Errorf("expected ErrMissingEmail, got %v", err)
	}
}
