package mobileconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// ProfileRecord is what the local store remembers about a profile this
// tool installed: enough to decide whether a definition has drifted
// from what is on the machine.
type ProfileRecord struct {
	Identifier  string    `json:"identifier"`
	UUID        string    `json:"uuid"`
	Digest      string    `json:"digest"`
	InstalledAt time.Time `json:"installed_at"`
}

// Store persists ProfileRecords keyed by profile identifier.
type Store interface {
	SaveProfile(context.Context, ProfileRecord) error
	GetProfile(context.Context, string) (*ProfileRecord, error)
	DeleteProfile(context.Context, string) error
	Close() error
}

const profilesBucket = "profiles"

// BoltStore is a Store backed by a local bbolt database file.
type BoltStore struct {
	db *bolt.DB
}

func NewBoltStore(name string) (*BoltStore, error) {
	db, err := bolt.Open(name, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(profilesBucket)); err != nil {
			return fmt.Errorf("create bucket %s: %s", profilesBucket, err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (b *BoltStore) Close() error {
	return b.db.Close()
}

func (b *BoltStore) SaveProfile(ctx context.Context, record ProfileRecord) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(profilesBucket))
		raw, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshalling profile record: %w", err)
		}
		return bkt.Put([]byte(record.Identifier), raw)
	})
}

func (b *BoltStore) GetProfile(ctx context.Context, identifier string) (*ProfileRecord, error) {
	var raw []byte
	b.db.View(func(tx *bolt.Tx) error {
		raw = tx.Bucket([]byte(profilesBucket)).Get([]byte(identifier))
		return nil
	})

	if raw == nil {
		return nil, ErrNotFound
	}

	var record ProfileRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}

	return &record, nil
}

func (b *BoltStore) DeleteProfile(ctx context.Context, identifier string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(profilesBucket)).Delete([]byte(identifier))
	})
}
