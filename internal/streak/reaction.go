package streak

import "context"

// Marker keys in the device-local store. Values are yyyy-mm-dd strings naming
// the last day each modal variant was shown; stale values are superseded by
// comparison, never cleared.
const (
	MarkerBrokenShown   = "streak_broken_shown_date"
	MarkerPositiveShown = "streak_positive_shown_date"
)

// MarkerStore is the persisted idempotence-marker surface. Failures are
// tolerated everywhere: the markers only exist to avoid duplicate prompts.
type MarkerStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Variant identifies which reaction modal is showing.
type Variant int

const (
	VariantNone Variant = iota
	VariantBroken
	VariantPositive
	VariantOverview
)

// Machine decides which reaction modal to present, enforcing
// at-most-once-per-day for the automatic variants. It is idle or showing
// exactly one variant; the explicit overview bypasses markers entirely.
type Machine struct {
	markers MarkerStore

	showing            Variant
	initialLoadHandled bool
}

// NewMachine creates an idle machine over the given marker store.
func NewMachine(markers MarkerStore) *Machine {
	return &Machine{markers: markers, showing: VariantNone}
}

// Showing returns the open variant, or VariantNone when idle.
func (m *Machine) Showing() Variant {
	return m.showing
}

// Close returns to idle from any state.
func (m *Machine) Close() {
	m.showing = VariantNone
}

// HandleRefreshOutcome runs after every dashboard refresh settles. Only the
// first completion of the session is eligible to open the broken modal, and
// only when that refresh succeeded (snap non-nil), the streak is broken, and
// the modal has not been shown today. The one-shot flag is consumed whether
// or not anything opens.
func (m *Machine) HandleRefreshOutcome(ctx context.Context, snap *Snapshot, today string) (Modal, bool) {
	first := !m.initialLoadHandled
	m.initialLoadHandled = true

	if !first || snap == nil || !snap.Broken {
		return Modal{}, false
	}
	if m.showing != VariantNone {
		return Modal{}, false
	}
	if m.shownToday(ctx, MarkerBrokenShown, today) {
		return Modal{}, false
	}

	m.showing = VariantBroken
	m.markShown(ctx, MarkerBrokenShown, today)
	return brokenModal(), true
}

// HandleInsert runs after a successful transaction insertion. Edits never
// reach this path. The positive modal opens only for an entry dated today
// while the streak is alive, at most once per day.
func (m *Machine) HandleInsert(ctx context.Context, snap Snapshot, submittedDate, today string) (Modal, bool) {
	if submittedDate == "" || submittedDate != today {
		return Modal{}, false
	}
	if snap.Broken || snap.Count <= 0 {
		return Modal{}, false
	}
	if m.showing != VariantNone {
		return Modal{}, false
	}
	if m.shownToday(ctx, MarkerPositiveShown, today) {
		return Modal{}, false
	}

	m.showing = VariantPositive
	m.markShown(ctx, MarkerPositiveShown, today)
	return positiveModal(snap.Count), true
}

// OpenOverview is the user-requested variant: always opens, reads and writes
// no markers, and replaces whatever was showing.
func (m *Machine) OpenOverview(snap Snapshot) Modal {
	m.showing = VariantOverview
	return overviewModal(snap)
}

// shownToday is fail-open: a marker read error counts as "not shown yet".
func (m *Machine) shownToday(ctx context.Context, key, today string) bool {
	value, found, err := m.markers.Get(ctx, key)
	if err != nil {
		return false
	}
	return found && value == today
}

// markShown is fail-open: a marker write error never blocks the modal.
func (m *Machine) markShown(ctx context.Context, key, today string) {
	_ = m.markers.Set(ctx, key, today)
}
