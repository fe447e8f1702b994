package track

import "github.com/google/uuid"

// Store owns all track records of one tracking session, keyed by the
// identity assigned by the external association engine. Records are created
// lazily on first observation and never deleted: identities are unique only
// within a session and may legitimately reappear at any point, continuing to
// accumulate on the same record.
type Store struct {
	// Session identifies this tracking session in exported artifacts.
	Session            uuid.UUID
	records            map[int64]*TrackRecord
	trajectoryCapacity int
	// smoothingDT is the Kalman filter time step; 0 disables smoothing.
	smoothingDT float64
}

// NewStore creates an empty store. Records created by it keep at most
// trajectoryCapacity trajectory points.
func NewStore(trajectoryCapacity int) *Store {
	return &Store{
		Session:            uuid.New(),
		records:            make(map[int64]*TrackRecord),
		trajectoryCapacity: trajectoryCapacity,
	}
}

// GetOrCreate returns the record for the given identity, inserting an empty
// record on first sight. It never fails.
func (store *Store) GetOrCreate(id int64) *TrackRecord {
	if record, ok := store.records[id]; ok {
		return record
	}
	var smoother *pointSmoother
	if store.smoothingDT > 0 {
		smoother = newPointSmoother(store.smoothingDT)
	}
	record := newTrackRecord(id, store.trajectoryCapacity, smoother)
	store.records[id] = record
	return record
}

// Get returns the record for the given identity, if present.
func (store *Store) Get(id int64) (*TrackRecord, bool) {
	record, ok := store.records[id]
	return record, ok
}

// Len returns the number of records in the store.
func (store *Store) Len() int {
	return len(store.records)
}

// Records returns the underlying record map. Be careful: this is not a copy,
// but a reference to it.
func (store *Store) Records() map[int64]*TrackRecord {
	return store.records
}

// Confirmed returns read-only views of the records whose observation count
// strictly exceeds the given threshold.
func (store *Store) Confirmed(confirmThreshold uint64) map[int64]TrackView {
	confirmed := make(map[int64]TrackView)
	for id, record := range store.records {
		if record.observations > confirmThreshold {
			confirmed[id] = newTrackView(record)
		}
	}
	return confirmed
}
