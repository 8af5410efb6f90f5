package store

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	bolt "go.etcd.io/bbolt"

	"github.com/baiwei666/CineTrack/internal/model"
)

const (
	bucketName  = "snapshots"
	recordsKey  = "cinetrack_data"
	settingsKey = "cinetrack_settings"
)

var (
	// ErrBadImport is returned when an import payload is not an array of
	// records or fails the minimal shape check.
	ErrBadImport = errors.New("import payload is not a record list")
)

// Store owns the in-memory record list and persists it as a whole snapshot
// under a fixed key after every mutation. A second fixed key holds the
// settings snapshot. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	db      *bolt.DB
	records []model.WatchRecord
}

// Open opens (or creates) the snapshot file at path and loads the record
// list. A missing, corrupt or non-array snapshot falls back to the seed
// list with freshly generated ids; load problems are logged, never returned.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists([]byte(bucketName))
		return e
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	s := &Store{db: db}
	s.records = s.load()
	return s, nil
}

// NewInMemory returns a store with no backing file. Used by tests.
func NewInMemory(records []model.WatchRecord) *Store {
	return &Store{records: append([]model.WatchRecord(nil), records...)}
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) load() []model.WatchRecord {
	raw := s.get(recordsKey)
	if raw != nil {
		var recs []model.WatchRecord
		if err := json.Unmarshal(raw, &recs); err == nil {
			return recs
		} else {
			log.Warn().Err(err).Msg("record snapshot corrupt, seeding defaults")
		}
	} else {
		log.Info().Msg("no record snapshot, seeding defaults")
	}
	seeded := Seed()
	s.persist(seeded)
	return seeded
}

// Records returns a copy of the current list, newest-first as stored.
func (s *Store) Records() []model.WatchRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.WatchRecord(nil), s.records...)
}

// SaveAll replaces the whole list and persists it. The write is skipped for
// an empty list, matching the source application's behavior of never
// overwriting a populated snapshot with nothing.
func (s *Store) SaveAll(records []model.WatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]model.WatchRecord(nil), records...)
	return s.persist(s.records)
}

// Add prepends a record. An empty id gets a generated one.
func (s *Store) Add(rec model.WatchRecord) (model.WatchRecord, error) {
	if rec.ID == "" {
		rec.ID = xid.New().String()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]model.WatchRecord{rec}, s.records...)
	return rec, s.persist(s.records)
}

// Replace swaps the record with a matching id in place. Unknown ids are a
// no-op and report found=false.
func (s *Store) Replace(rec model.WatchRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == rec.ID {
			s.records[i] = rec
			return true, s.persist(s.records)
		}
	}
	return false, nil
}

// Remove deletes the record with the given id.
func (s *Store) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true, s.persist(s.records)
		}
	}
	return false, nil
}

// Import merges an exported payload additively: candidates whose id already
// exists are dropped silently, survivors are prepended in payload order.
// The payload is rejected outright when it is not an array, or when its
// first element carries neither a title nor an id.
func (s *Store) Import(payload []byte) (int, error) {
	var incoming []model.WatchRecord
	if err := json.Unmarshal(payload, &incoming); err != nil {
		return 0, ErrBadImport
	}
	if len(incoming) > 0 && incoming[0].Title == "" && incoming[0].ID == "" {
		return 0, ErrBadImport
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing := make(map[string]struct{}, len(s.records))
	for _, r := range s.records {
		existing[r.ID] = struct{}{}
	}
	var fresh []model.WatchRecord
	for _, r := range incoming {
		if _, dup := existing[r.ID]; dup {
			continue
		}
		fresh = append(fresh, r)
	}
	if len(fresh) == 0 {
		return 0, nil
	}
	s.records = append(fresh, s.records...)
	return len(fresh), s.persist(s.records)
}

// Export serializes the full list pretty-printed, suitable for a
// byte-identical round trip through Import.
func (s *Store) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.MarshalIndent(s.records, "", "  ")
}

// LoadSettings reads the settings snapshot decoded over defaults, so fields
// absent from disk keep their default values.
func (s *Store) LoadSettings(defaults model.AppSettings) model.AppSettings {
	out := defaults
	raw := s.get(settingsKey)
	if raw == nil {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Warn().Err(err).Msg("settings snapshot corrupt, using defaults")
		return defaults
	}
	return out
}

// SaveSettings overwrites the settings snapshot.
func (s *Store) SaveSettings(settings model.AppSettings) error {
	b, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.put(settingsKey, b)
}

// persist writes the record snapshot. Empty lists are skipped; callers hold
// the mutex.
func (s *Store) persist(records []model.WatchRecord) error {
	if len(records) == 0 {
		return nil
	}
	b, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.put(recordsKey, b)
}

func (s *Store) get(key string) []byte {
	if s.db == nil {
		return nil
	}
	var out []byte
	_ = s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucketName)).Get([]byte(key)); v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	return out
}

func (s *Store) put(key string, val []byte) error {
	if s.db == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(key), val)
	})
}
