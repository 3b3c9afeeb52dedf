package workflow

import (
	"fmt"
)

// FilterAll is the UI filter token that disables status filtering.
const FilterAll = "all"

// Storage values.
const (
	VendorUnverified = "unverified"
	VendorPending    = "pending"
	VendorVerified   = "verified"
	VendorRejected   = "rejected"

	ListingPendingReview = "pending_review"
	ListingApproved      = "approved"
	ListingRejected      = "rejected"

	ReviewPending   = "pending"
	ReviewPublished = "published"
	ReviewRemoved   = "removed"

	ComplaintOpen      = "Open"
	ComplaintInReview  = "In Review"
	ComplaintResolved  = "Resolved"
	ComplaintEscalated = "Escalated"

	CertificationActive  = "Active"
	CertificationRevoked = "Revoked"
)

// Mapping translates one entity's status between the vocabulary the
// dashboards speak and the values stored in the database.
type Mapping struct {
	entity    string
	toStorage map[string]string
	toUI      map[string]string
}

func newMapping(entity string, pairs ...[2]string) *Mapping {
	m := &Mapping{
		entity:    entity,
		toStorage: make(map[string]string, len(pairs)),
		toUI:      make(map[string]string, len(pairs)),
	}
	for _, p := range pairs {
		m.toStorage[p[0]] = p[1]
		m.toUI[p[1]] = p[0]
	}
	return m
}

var (
	VendorStatus = newMapping("vendor",
		[2]string{"unverified", VendorUnverified},
		[2]string{"pending", VendorPending},
		[2]string{"approved", VendorVerified},
		[2]string{"rejected", VendorRejected},
	)

	ListingStatus = newMapping("listing",
		[2]string{"pending", ListingPendingReview},
		[2]string{"approved", ListingApproved},
		[2]string{"rejected", ListingRejected},
	)

	ReviewStatus = newMapping("review",
		[2]string{"pending", ReviewPending},
		[2]string{"published", ReviewPublished},
		[2]string{"removed", ReviewRemoved},
	)

	ComplaintStatus = newMapping("complaint",
		[2]string{"open", ComplaintOpen},
		[2]string{"in_review", ComplaintInReview},
		[2]string{"resolved", ComplaintResolved},
		[2]string{"escalated", ComplaintEscalated},
	)
)

func (m *Mapping) Entity() string {
	return m.entity
}

func (m *Mapping) ToStorage(ui string) (string, error) {
	v, ok := m.toStorage[ui]
	if !ok {
		return "", fmt.Errorf("unknown %s status %q", m.entity, ui)
	}
	return v, nil
}

func (m *Mapping) ToUI(stored string) (string, error) {
	v, ok := m.toUI[stored]
	if !ok {
		return "", fmt.Errorf("unknown stored %s status %q", m.entity, stored)
	}
	return v, nil
}

func (m *Mapping) ValidUI(ui string) bool {
	_, ok := m.toStorage[ui]
	return ok
}

func (m *Mapping) ValidStorage(stored string) bool {
	_, ok := m.toUI[stored]
	return ok
}

// UIValues lists the UI tokens in no particular order.
func (m *Mapping) UIValues() []string {
	out := make([]string, 0, len(m.toStorage))
	for k := range m.toStorage {
		out = append(out, k)
	}
	return out
}

// StorageFilter resolves a UI filter into the stored values to match.
// The all token (or an empty filter) returns nil, meaning no filter.
func (m *Mapping) StorageFilter(ui string) ([]string, error) {
	if ui == "" || ui == FilterAll {
		return nil, nil
	}
	v, err := m.ToStorage(ui)
	if err != nil {
		return nil, err
	}
	return []string{v}, nil
}
