package models

// RotationDefinition is the sole source of truth for who is up for a shared
// task: an anchor date plus an ordered participant list. No per-day history
// is kept; assignment for any date is derived from these two fields and the
// day-range spec embedded in the key.
type RotationDefinition struct {
	Key          RotationKey
	Anchor       string // YYYY-MM-DD; participants[0] is assigned on this date
	Participants []string
}
