//go:generate go run go.uber.org/mock/mockgen -source=outcome_repository.go -destination=../../mocks/mock_outcome_repository.go -package=mocks
package storage

import (
	"anon-chat/domain/event"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const outcomePrefix = "outcome:"

type IOutcomeRepository interface {
	StoreOutcome(outcome DiskOutcome) error
	GetOutcomes(cursor *string) ([]DiskOutcome, *string, error)
}

// DiskOutcome is what is kept of a session once it is over.
// It never holds a handle or a piece of content.
type DiskOutcome struct {
	ID        uuid.UUID
	Reason    event.EndReason
	StartedAt time.Time
	EndedAt   time.Time
	Relayed   int
}

type OutcomeRepository struct {
	db           *badger.DB
	log          *slog.Logger
	limitEntries *int
}

func NewOutcomeRepository(db *badger.DB, log *slog.Logger, limitEntries *int) OutcomeRepository {
	return OutcomeRepository{db: db, log: log, limitEntries: limitEntries}
}

// StoreOutcome persists an outcome in BadgerDB.
// The key is formatted as "outcome:{ended_at_padded}:{uuid}" so that a reverse
// prefix scan returns the most recent sessions first.
func (r OutcomeRepository) StoreOutcome(outcome DiskOutcome) error {
	key := fmt.Sprintf("%s%019d:%s", outcomePrefix, outcome.EndedAt.UnixNano(), outcome.ID)
	msg, err := fromDiskOutcome(outcome)
	if err != nil {
		return err
	}
	bytes, err := proto.Marshal(msg)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// GetOutcomes returns outcomes newest first, starting after cursor when given.
// The returned cursor points at the last entry read.
func (r OutcomeRepository) GetOutcomes(cursor *string) ([]DiskOutcome, *string, error) {
	var raw [][]byte
	var lastKey string
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(outcomePrefix)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			seekKey = append([]byte(outcomePrefix), []byte("9999999999999999999")...)
		default:
			seekKey = append([]byte(outcomePrefix), []byte(*cursor)...)
		}

		it.Seek(seekKey)
		if cursor != nil && it.ValidForPrefix(prefix) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if r.limitEntries != nil && len(raw) == *r.limitEntries {
				r.log.Debug(fmt.Sprintf("Maximum of %d outcomes reached", *r.limitEntries))
				break
			}
			item := it.Item()
			lastKey = string(item.Key()[len(prefix):])
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			raw = append(raw, value)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	outcomes := make([]DiskOutcome, 0, len(raw))
	for _, b := range raw {
		var msg structpb.Struct
		if err = proto.Unmarshal(b, &msg); err != nil {
			return nil, nil, err
		}
		outcome, err := toDiskOutcome(&msg)
		if err != nil {
			return nil, nil, err
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, &lastKey, nil
}

func fromDiskOutcome(outcome DiskOutcome) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"id":         outcome.ID.String(),
		"reason":     string(outcome.Reason),
		"started_at": outcome.StartedAt.UTC().Format(time.RFC3339Nano),
		"ended_at":   outcome.EndedAt.UTC().Format(time.RFC3339Nano),
		"relayed":    outcome.Relayed,
	})
}

func toDiskOutcome(msg *structpb.Struct) (DiskOutcome, error) {
	fields := msg.GetFields()
	id, err := uuid.Parse(fields["id"].GetStringValue())
	if err != nil {
		return DiskOutcome{}, err
	}
	startedAt, err := time.Parse(time.RFC3339Nano, fields["started_at"].GetStringValue())
	if err != nil {
		return DiskOutcome{}, err
	}
	endedAt, err := time.Parse(time.RFC3339Nano, fields["ended_at"].GetStringValue())
	if err != nil {
		return DiskOutcome{}, err
	}
	return DiskOutcome{
		ID:        id,
		Reason:    event.EndReason(fields["reason"].GetStringValue()),
		StartedAt: startedAt,
		EndedAt:   endedAt,
		Relayed:   int(fields["relayed"].GetNumberValue()),
	}, nil
}
