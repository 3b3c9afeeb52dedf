package workflow

// Table is a fixed set of legal status moves for one entity. Staying in the
// current status is always legal so repeated calls are no-ops.
type Table struct {
	entity  string
	mapping *Mapping
	edges   map[string]map[string]bool
}

func newTable(entity string, mapping *Mapping, edges map[string][]string) *Table {
	t := &Table{
		entity:  entity,
		mapping: mapping,
		edges:   make(map[string]map[string]bool, len(edges)),
	}
	for from, tos := range edges {
		t.edges[from] = make(map[string]bool, len(tos))
		for _, to := range tos {
			t.edges[from][to] = true
		}
	}
	return t
}

var (
	// Rejected is terminal. Documents move an unverified vendor into review.
	VendorTransitions = newTable("vendor", VendorStatus, map[string][]string{
		VendorUnverified: {VendorPending},
		VendorPending:    {VendorVerified, VendorRejected},
	})

	ListingTransitions = newTable("listing", ListingStatus, map[string][]string{
		ListingPendingReview: {ListingApproved, ListingRejected},
	})

	ReviewTransitions = newTable("review", ReviewStatus, map[string][]string{
		ReviewPending:   {ReviewPublished, ReviewRemoved},
		ReviewPublished: {ReviewRemoved},
		ReviewRemoved:   {ReviewPublished},
	})

	// Resolved is only left through an explicit reopen.
	ComplaintTransitions = newTable("complaint", ComplaintStatus, map[string][]string{
		ComplaintOpen:      {ComplaintInReview, ComplaintEscalated, ComplaintResolved},
		ComplaintInReview:  {ComplaintResolved, ComplaintEscalated},
		ComplaintEscalated: {ComplaintInReview, ComplaintResolved},
		ComplaintResolved:  {ComplaintOpen},
	})
)

func (t *Table) Entity() string {
	return t.entity
}

// CanTransition reports whether a record in stored status from may move to
// stored status to. Both values must belong to the entity's vocabulary.
func (t *Table) CanTransition(from, to string) bool {
	if !t.mapping.ValidStorage(to) {
		return false
	}
	if from == to {
		return t.mapping.ValidStorage(from)
	}
	return t.edges[from][to]
}

// IsNoop reports a legal self-transition.
func (t *Table) IsNoop(from, to string) bool {
	return from == to && t.mapping.ValidStorage(to)
}
