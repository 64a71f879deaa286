package terminal

import (
	"maps"
	"time"

	"github.com/MKhiriev/go-pos-sync/models"
)

// Watermarks holds the per entity type sync cursor of a terminal. A cursor
// is the newest LastUpdated the terminal has applied for that type; it only
// moves forward and always comes from server data, never from the local
// clock.
//
// Watermarks values are immutable: Advance returns a new value.
type Watermarks map[models.EntityType]time.Time

// Get returns the cursor for t; the zero time means "from the beginning".
func (w Watermarks) Get(t models.EntityType) time.Time {
	return w[t]
}

// Advance returns a copy of w with the cursor for t moved to ts when ts is
// newer than the current cursor.
func (w Watermarks) Advance(t models.EntityType, ts time.Time) Watermarks {
	if !ts.After(w[t]) {
		return w
	}

	next := make(Watermarks, len(w)+1)
	maps.Copy(next, w)
	next[t] = ts
	return next
}

// Request builds the change-feed request for terminalID. LastSync carries
// the oldest cursor so that servers unaware of per-type watermarks never
// skip rows.
func (w Watermarks) Request(terminalID string) models.ChangeRequest {
	req := models.ChangeRequest{
		TerminalID: terminalID,
		Watermarks: make(map[models.EntityType]time.Time, len(models.AllEntityTypes)),
	}

	for i, t := range models.AllEntityTypes {
		cursor := w.Get(t)
		req.Watermarks[t] = cursor
		if i == 0 || cursor.Before(req.LastSync) {
			req.LastSync = cursor
		}
	}
	return req
}
