//go:generate go run go.uber.org/mock/mockgen -source=nick.go -destination=../mocks/mock_nick_repository.go -package=mocks
package repositories

import (
	goerrors "errors"
	"fmt"
	"log/slog"
	"nick-lab/domain/nick"
	"nick-lab/errors"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// INickRepository is the identity store the nick commands work against.
// Values are attached to a group, so every nick of a group reads the same values.
type INickRepository interface {
	// ResolveGroupID returns the group of the nick. An unknown nick gets a fresh
	// group when create is true, otherwise errors.ErrNickNotFound is returned.
	ResolveGroupID(nickname nick.Nickname, create bool) (nick.GroupID, error)
	// GetValue returns nil when the nick or the field is unknown.
	GetValue(nickname nick.Nickname, field string) (*int64, error)
	SetValue(nickname nick.Nickname, field string, value int64) error
	// MergeGroups moves every nick of the duplicate's group into the primary's group.
	MergeGroups(primary, duplicate nick.Nickname) error
	// RemoveFromGroup forgets the nick. It fails with errors.ErrAlreadySingleton
	// when the nick is alone in its group.
	RemoveFromGroup(nickname nick.Nickname) error
	ListNicknamesInGroup(id nick.GroupID) ([]nick.Nickname, error)
}

const (
	nickPrefix  = "nick:"
	groupPrefix = "group:"
	valuePrefix = "value:"
	sequenceKey = "seq:nick_id"
)

type NickRepository struct {
	db  *badger.DB
	log *slog.Logger
	seq *badger.Sequence
}

// NickRecord is the value stored under "nick:{slug}".
type NickRecord struct {
	ID        int64  `json:"id"`
	Canonical string `json:"canonical"`
}

func NewNickRepository(db *badger.DB, log *slog.Logger) (*NickRepository, error) {
	seq, err := db.GetSequence([]byte(sequenceKey), 100)
	if err != nil {
		return nil, fmt.Errorf("nick id sequence: %w", err)
	}
	return &NickRepository{db: db, log: log, seq: seq}, nil
}

// Close gives back the unused leased ids.
func (r *NickRepository) Close() error {
	return r.seq.Release()
}

func (r *NickRepository) ResolveGroupID(nickname nick.Nickname, create bool) (nick.GroupID, error) {
	var record NickRecord
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		record, err = getRecord(txn, nickname)
		return err
	})
	switch {
	case err == nil:
		return nick.GroupID(record.ID), nil
	case create && goerrors.Is(err, errors.ErrNickNotFound):
		return r.create(nickname)
	default:
		return 0, err
	}
}

func (r *NickRepository) create(nickname nick.Nickname) (nick.GroupID, error) {
	id, err := r.nextID()
	if err != nil {
		return 0, err
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		existing, err := getRecord(txn, nickname)
		if err == nil {
			id = existing.ID
			return nil
		}
		if !goerrors.Is(err, errors.ErrNickNotFound) {
			return err
		}
		return putMember(txn, nickname.Slug(), nickname.String(), id)
	})
	if err != nil {
		return 0, err
	}
	r.log.Debug("Nick group created", "nick", nickname, "group", id)
	return nick.GroupID(id), nil
}

// nextID skips 0, the first value handed out by a fresh badger sequence.
func (r *NickRepository) nextID() (int64, error) {
	for {
		id, err := r.seq.Next()
		if err != nil {
			return 0, fmt.Errorf("nick id sequence: %w", err)
		}
		if id > 0 {
			return int64(id), nil
		}
	}
}

func (r *NickRepository) GetValue(nickname nick.Nickname, field string) (*int64, error) {
	var value *int64
	err := r.db.View(func(txn *badger.Txn) error {
		record, err := getRecord(txn, nickname)
		if goerrors.Is(err, errors.ErrNickNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		value, err = getValue(txn, valueKey(record.ID, field))
		return err
	})
	return value, err
}

func (r *NickRepository) SetValue(nickname nick.Nickname, field string, value int64) error {
	id, err := r.ResolveGroupID(nickname, true)
	if err != nil {
		return err
	}
	bytes, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(valueKey(int64(id), field), bytes)
	})
}

// MergeGroups keeps the primary's values. A value only known by the duplicate's
// group is copied over, then the duplicate's values are dropped and its nicks
// are re-pointed to the primary's group, all in one transaction.
func (r *NickRepository) MergeGroups(primary, duplicate nick.Nickname) error {
	primaryID, err := r.ResolveGroupID(primary, true)
	if err != nil {
		return err
	}
	duplicateID, err := r.ResolveGroupID(duplicate, true)
	if err != nil {
		return err
	}
	if primaryID == duplicateID {
		return nil
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		values, err := scanPrefix(txn, fmt.Sprintf("%s%d:", valuePrefix, duplicateID))
		if err != nil {
			return err
		}
		for _, kv := range values {
			target := valueKey(int64(primaryID), kv.suffix)
			if _, err = txn.Get(target); goerrors.Is(err, badger.ErrKeyNotFound) {
				if err = txn.Set(target, kv.value); err != nil {
					return err
				}
			} else if err != nil {
				return err
			}
			if err = txn.Delete(kv.key); err != nil {
				return err
			}
		}

		members, err := scanPrefix(txn, groupKeyPrefix(int64(duplicateID)))
		if err != nil {
			return err
		}
		for _, kv := range members {
			if err = txn.Delete(kv.key); err != nil {
				return err
			}
			if err = putMember(txn, kv.suffix, string(kv.value), int64(primaryID)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("merge of group %d into %d: %w", duplicateID, primaryID, err)
	}
	r.log.Debug("Nick groups merged", "primary", primaryID, "duplicate", duplicateID)
	return nil
}

func (r *NickRepository) RemoveFromGroup(nickname nick.Nickname) error {
	return r.db.Update(func(txn *badger.Txn) error {
		record, err := getRecord(txn, nickname)
		if err != nil {
			return err
		}
		members, err := scanPrefix(txn, groupKeyPrefix(record.ID))
		if err != nil {
			return err
		}
		if len(members) < 2 {
			return fmt.Errorf("%w: %s", errors.ErrAlreadySingleton, nickname)
		}
		if err = txn.Delete(nickKey(nickname.Slug())); err != nil {
			return err
		}
		return txn.Delete(groupKey(record.ID, nickname.Slug()))
	})
}

// ListNicknamesInGroup returns the canonical nicks of the group, ordered by slug.
func (r *NickRepository) ListNicknamesInGroup(id nick.GroupID) ([]nick.Nickname, error) {
	var nicknames []nick.Nickname
	err := r.db.View(func(txn *badger.Txn) error {
		members, err := scanPrefix(txn, groupKeyPrefix(int64(id)))
		if err != nil {
			return err
		}
		for _, kv := range members {
			nicknames = append(nicknames, nick.Nickname(kv.value))
		}
		return nil
	})
	return nicknames, err
}

type keyValue struct {
	key    []byte
	suffix string
	value  []byte
}

// scanPrefix copies keys and values out of the iterator so callers can write
// in the same transaction afterwards.
func scanPrefix(txn *badger.Txn, prefix string) ([]keyValue, error) {
	var kvs []keyValue
	options := badger.DefaultIteratorOptions
	options.Prefix = []byte(prefix)
	it := txn.NewIterator(options)
	defer it.Close()

	for it.Seek(options.Prefix); it.ValidForPrefix(options.Prefix); it.Next() {
		item := it.Item()
		value, err := item.ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		key := item.KeyCopy(nil)
		kvs = append(kvs, keyValue{
			key:    key,
			suffix: strings.TrimPrefix(string(key), prefix),
			value:  value,
		})
	}
	return kvs, nil
}

func getRecord(txn *badger.Txn, nickname nick.Nickname) (NickRecord, error) {
	var record NickRecord
	item, err := txn.Get(nickKey(nickname.Slug()))
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return record, fmt.Errorf("%w: %s", errors.ErrNickNotFound, nickname)
	}
	if err != nil {
		return record, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &record)
	})
	if err != nil {
		return record, fmt.Errorf("%w: %s: %v", errors.ErrCorruptedRecord, nickname, err)
	}
	return record, nil
}

func getValue(txn *badger.Txn, key []byte) (*int64, error) {
	item, err := txn.Get(key)
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var value int64
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &value)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errors.ErrCorruptedRecord, key, err)
	}
	return &value, nil
}

func putMember(txn *badger.Txn, slug, canonical string, id int64) error {
	bytes, err := json.Marshal(NickRecord{ID: id, Canonical: canonical})
	if err != nil {
		return err
	}
	if err = txn.Set(nickKey(slug), bytes); err != nil {
		return err
	}
	return txn.Set(groupKey(id, slug), []byte(canonical))
}

func nickKey(slug string) []byte {
	return []byte(nickPrefix + slug)
}

func groupKeyPrefix(id int64) string {
	return fmt.Sprintf("%s%d:", groupPrefix, id)
}

func groupKey(id int64, slug string) []byte {
	return []byte(groupKeyPrefix(id) + slug)
}

func valueKey(id int64, field string) []byte {
	return []byte(fmt.Sprintf("%s%d:%s", valuePrefix, id, field))
}
