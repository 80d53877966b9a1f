// Package viewport tracks which museums fall inside the map's visible bounds.
package viewport

import (
	"museum-map-api/internal/models"
)

// Sync computes the set of museum ids whose coordinates lie inside the
// current bounding box and reports the set only when its membership changes.
// Pan gestures that leave the same pins visible produce no new notification.
// The zero value is ready to use. Not safe for concurrent use; the owning
// orchestrator serializes calls.
type Sync struct {
	reported bool
	prev     map[int64]struct{}
	ids      []int64
}

// Update recomputes visibility for the given candidate list and bounds.
// Museums missing either coordinate are excluded, never an error. It returns
// the visible ids in candidate order, and whether membership differs from the
// previously reported set. Callers must invoke Update after every candidate
// list change even when bounds did not move: newly loaded records may fall
// inside an unchanged viewport.
func (s *Sync) Update(candidates []models.Museum, bounds models.Bounds) ([]int64, bool) {
	ids := make([]int64, 0, len(candidates))
	set := make(map[int64]struct{}, len(candidates))
	for _, m := range candidates {
		if !m.HasCoordinates() {
			continue
		}
		if bounds.Contains(*m.Latitude, *m.Longitude) {
			ids = append(ids, m.ID)
			set[m.ID] = struct{}{}
		}
	}

	if s.reported && sameMembers(set, s.prev) {
		return s.ids, false
	}

	s.reported = true
	s.prev = set
	s.ids = ids
	return ids, true
}

// Current returns the last reported visible id set.
func (s *Sync) Current() []int64 { return s.ids }

// Reset forgets the previously reported set, so the next Update always
// notifies. Used when the map surface remounts.
func (s *Sync) Reset() {
	s.reported = false
	s.prev = nil
	s.ids = nil
}

func sameMembers(a, b map[int64]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if _, ok := b[id]; !ok {
			return false
		}
	}
	return true
}
