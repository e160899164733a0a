// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ClientStatus is the lifecycle state of a client: Active, or Deleted at a point in time.
type ClientStatus struct {
	deletedAt *time.Time
}

// ActiveStatus returns the status of a client that has not been deleted.
func ActiveStatus() ClientStatus {
	return ClientStatus{}
}

// DeletedStatus returns the status of a client soft-deleted at the given time.
func DeletedStatus(at time.Time) ClientStatus {
	return ClientStatus{deletedAt: &at}
}

// IsActive reports whether the client is not deleted.
func (s ClientStatus) IsActive() bool {
	return s.deletedAt == nil
}

// DeletedAt returns the deletion time and true when the client is deleted.
func (s ClientStatus) DeletedAt() (time.Time, bool) {
	if s.deletedAt == nil {
		return time.Time{}, false
	}
	return *s.deletedAt, true
}

// String returns "active" or "deleted".
func (s ClientStatus) String() string {
	if s.IsActive() {
		return "active"
	}
	return "deleted"
}

// Client represents a named counterparty for whom money is sent or received.
type Client struct {
	ID        uuid.UUID
	Name      string
	Status    ClientStatus
	CreatedBy *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewClient creates a new active Client.
func NewClient(name string, createdBy *uuid.UUID) *Client {
	now := time.Now().UTC()
	return &Client{
		ID:        uuid.New(),
		Name:      name,
		Status:    ActiveStatus(),
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Rename changes the display name.
func (c *Client) Rename(name string) {
	c.Name = name
	c.UpdatedAt = time.Now().UTC()
}

// SoftDelete marks the client as deleted. Transactions are kept.
func (c *Client) SoftDelete(at time.Time) {
	c.Status = DeletedStatus(at)
	c.UpdatedAt = at
}
