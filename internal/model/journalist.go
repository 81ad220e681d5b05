package model

import (
	"errors"
	"time"
)

// ContactPointType classifies how a journalist can be reached.
type ContactPointType string

const (
	ContactEmail    ContactPointType = "email"
	ContactPhone    ContactPointType = "phone"
	ContactTwitter  ContactPointType = "twitter"
	ContactLinkedIn ContactPointType = "linkedin"
	ContactWebform  ContactPointType = "webform"
)

var validContactPointTypes = map[ContactPointType]bool{
	ContactEmail:    true,
	ContactPhone:    true,
	ContactTwitter:  true,
	ContactLinkedIn: true,
	ContactWebform:  true,
}

func (t ContactPointType) Valid() bool {
	return validContactPointTypes[t]
}

// ContactPointStatus tracks whether a contact point is still usable.
type ContactPointStatus string

const (
	ContactStatusUnverified ContactPointStatus = "unverified"
	ContactStatusVerified   ContactPointStatus = "verified"
	ContactStatusBounced    ContactPointStatus = "bounced"
	ContactStatusRetired    ContactPointStatus = "retired"
)

var validContactPointStatuses = map[ContactPointStatus]bool{
	ContactStatusUnverified: true,
	ContactStatusVerified:   true,
	ContactStatusBounced:    true,
	ContactStatusRetired:    true,
}

func (s ContactPointStatus) Valid() bool {
	return validContactPointStatuses[s]
}

var (
	ErrMissingJournalistName = errors.New("journalist name is required")
	ErrInvalidContactType    = errors.New("unknown contact point type")
	ErrInvalidContactStatus  = errors.New("unknown contact point status")
	ErrMissingContactValue   = errors.New("contact point value is required")
)

// Journalist is a byline author tracked across sources.
type Journalist struct {
	ID              string
	Name            string
	Title           string
	TwitterHandle   string
	Locations       []string
	TopTopics       []string
	AvgMonthlyPosts int
	AddedAt         time.Time
	UpdatedAt       time.Time

	ContactPoints []ContactPoint
}

func (j *Journalist) Validate() error {
	if j.Name == "" {
		return ErrMissingJournalistName
	}
	return nil
}

// ContactPoint is one way of reaching a journalist. New contact points
// start unverified.
type ContactPoint struct {
	ID           int64
	JournalistID string
	Type         ContactPointType
	Value        string
	Status       ContactPointStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (c *ContactPoint) Validate() error {
	if !c.Type.Valid() {
		return ErrInvalidContactType
	}
	if c.Value == "" {
		return ErrMissingContactValue
	}
	if c.Status != "" && !c.Status.Valid() {
		return ErrInvalidContactStatus
	}
	return nil
}

// JournalistFilter narrows journalist listings.
type JournalistFilter struct {
	Topic  string
	Source string
	Limit  int
	Offset int
}
