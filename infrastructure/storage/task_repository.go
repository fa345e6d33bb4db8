//go:generate go run go.uber.org/mock/mockgen -source=task_repository.go -destination=../../mocks/mock_task_repository.go -package=mocks
package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"autocaption/domain"

	"github.com/dgraph-io/badger/v4"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const (
	pendingPrefix    = "work:pending:"
	processingPrefix = "work:processing:"
	seenPrefix       = "work:seen:"
)

// CaptionTask is one inbox file waiting for its caption.
// It is stored in BadgerDB so a restart neither loses nor repeats work.
type CaptionTask struct {
	ID        string
	Path      string
	ChannelID domain.ChannelID
	GroupID   string
	MimeType  string
	Size      int64
	CreatedAt time.Time
}

type ITaskRepository interface {
	EnqueueTask(task CaptionTask) error
	IsKnown(path string) (bool, error)
	GetNextBatch(limit int) ([]CaptionTask, error)
	MarkAsProcessing(task CaptionTask) error
	MarkDone(task CaptionTask, at time.Time) error
	RequeueProcessing() (int, error)
}

type TaskRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewTaskRepository(db *badger.DB, log *slog.Logger) *TaskRepository {
	return &TaskRepository{
		db:  db,
		log: log,
	}
}

// EnqueueTask persists a task with a chronological key and remembers its path.
func (t TaskRepository) EnqueueTask(task CaptionTask) error {
	data, err := marshalTask(task)
	if err != nil {
		return err
	}
	return t.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(pendingKey(task), data); err != nil {
			return err
		}
		return txn.Set([]byte(seenPrefix+task.Path), []byte(task.ID))
	})
}

// IsKnown reports whether the path was ever enqueued, whatever its current state.
func (t TaskRepository) IsKnown(path string) (bool, error) {
	err := t.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(seenPrefix + path))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetNextBatch retrieves up to limit pending tasks, oldest first.
func (t TaskRepository) GetNextBatch(limit int) ([]CaptionTask, error) {
	var tasks []CaptionTask
	prefix := []byte(pendingPrefix)

	err := t.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchSize = max(limit, 1)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix) && len(tasks) < limit; it.Next() {
			err := it.Item().Value(func(v []byte) error {
				task, err := unmarshalTask(v)
				if err != nil {
					return err
				}
				tasks = append(tasks, task)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error during batch fetch: %w", err)
	}
	return tasks, nil
}

// MarkAsProcessing moves a task from pending to processing atomically.
// Two workers racing for the same task cannot both succeed.
func (t TaskRepository) MarkAsProcessing(task CaptionTask) error {
	data, err := marshalTask(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task for processing: %w", err)
	}
	return t.db.Update(func(txn *badger.Txn) error {
		key := pendingKey(task)
		_, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("task %s is no longer pending", task.ID)
		}
		if err != nil {
			return err
		}
		if err := txn.Delete(key); err != nil {
			return err
		}
		return txn.Set([]byte(processingPrefix+task.ID), data)
	})
}

// MarkDone drops the task and stamps its path with the completion time.
func (t TaskRepository) MarkDone(task CaptionTask, at time.Time) error {
	stamp, err := proto.Marshal(timestamppb.New(at))
	if err != nil {
		return err
	}
	return t.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(processingPrefix + task.ID)); err != nil {
			return err
		}
		return txn.Set([]byte(seenPrefix+task.Path), stamp)
	})
}

// RequeueProcessing puts back tasks left in processing by a previous run.
func (t TaskRepository) RequeueProcessing() (int, error) {
	prefix := []byte(processingPrefix)
	var stale []CaptionTask

	err := t.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(v []byte) error {
				task, err := unmarshalTask(v)
				if err != nil {
					return err
				}
				stale = append(stale, task)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, task := range stale {
		data, err := marshalTask(task)
		if err != nil {
			return 0, err
		}
		err = t.db.Update(func(txn *badger.Txn) error {
			if err := txn.Delete([]byte(processingPrefix + task.ID)); err != nil {
				return err
			}
			return txn.Set(pendingKey(task), data)
		})
		if err != nil {
			return 0, err
		}
		t.log.Info("Task requeued", "id", task.ID, "path", task.Path)
	}
	return len(stale), nil
}

func pendingKey(task CaptionTask) []byte {
	return []byte(fmt.Sprintf("%s%019d:%s", pendingPrefix, task.CreatedAt.UnixNano(), task.ID))
}

func marshalTask(task CaptionTask) ([]byte, error) {
	record := &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":         structpb.NewStringValue(task.ID),
		"path":       structpb.NewStringValue(task.Path),
		"channel_id": intValue(int64(task.ChannelID)),
		"group_id":   structpb.NewStringValue(task.GroupID),
		"mime_type":  structpb.NewStringValue(task.MimeType),
		"size":       intValue(task.Size),
		"created_at": timeValue(task.CreatedAt),
	}}
	return proto.Marshal(record)
}

func unmarshalTask(data []byte) (CaptionTask, error) {
	var record structpb.Struct
	if err := proto.Unmarshal(data, &record); err != nil {
		return CaptionTask{}, fmt.Errorf("failed to unmarshal task: %w", err)
	}
	f := record.GetFields()
	channelID, err := intField(f, "channel_id")
	if err != nil {
		return CaptionTask{}, err
	}
	size, err := intField(f, "size")
	if err != nil {
		return CaptionTask{}, err
	}
	createdAt, err := timeField(f, "created_at")
	if err != nil {
		return CaptionTask{}, err
	}
	return CaptionTask{
		ID:        f["id"].GetStringValue(),
		Path:      f["path"].GetStringValue(),
		ChannelID: domain.ChannelID(channelID),
		GroupID:   f["group_id"].GetStringValue(),
		MimeType:  f["mime_type"].GetStringValue(),
		Size:      size,
		CreatedAt: createdAt,
	}, nil
}
