package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"

	"github.com/NvMustang/fomo-sub000/pkg/engine"
	"github.com/NvMustang/fomo-sub000/pkg/history"
)

var bucketName = []byte("responses")

// record is the durable form of a submitted mutation.
type record struct {
	engine.Mutation
	RecordedAt time.Time `json:"recordedAt"`
}

// BoltSink is a durable local stand-in for the backend persistence service.
// Every mutation appends one record keyed by (user, event, id); nothing is
// ever overwritten.
type BoltSink struct {
	db *bolt.DB
}

var _ engine.Remote = (*BoltSink)(nil)

func NewBoltSink(path string) (*BoltSink, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("remote: opening bbolt db at %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("remote: creating responses bucket: %w", err)
	}

	return &BoltSink{db: db}, nil
}

func (s *BoltSink) Submit(ctx context.Context, m engine.Mutation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := time.Now()
	key := fmt.Sprintf("%s|%s|%s", m.UserID, m.EventID, history.NewID(now))
	data, err := json.Marshal(record{Mutation: m, RecordedAt: now.UTC()})
	if err != nil {
		return fmt.Errorf("remote: marshaling mutation for %s: %w", m.EventID, err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("remote: writing mutation for %s: %w", m.EventID, err)
	}

	log.WithFields(log.Fields{
		"user":  m.UserID,
		"event": m.EventID,
		"final": m.Final.String(),
	}).Debug("remote: recorded mutation")
	return nil
}

// All returns every recorded mutation, mostly for inspection and tests.
func (s *BoltSink) All(_ context.Context) ([]engine.Mutation, error) {
	var out []engine.Mutation
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).ForEach(func(k, v []byte) error {
			var r record
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("remote: unmarshaling record %s: %w", string(k), err)
			}
			out = append(out, r.Mutation)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BoltSink) Close() error {
	return s.db.Close()
}
