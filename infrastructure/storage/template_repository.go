//go:generate go run go.uber.org/mock/mockgen -source=template_repository.go -destination=../../mocks/mock_template_repository.go -package=mocks
package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"autocaption/domain"
	caperrors "autocaption/errors"

	"github.com/dgraph-io/badger/v4"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const templatePrefix = "tpl:channel:"

type ITemplateRepository interface {
	Get(channelID domain.ChannelID) (domain.ChannelTemplate, error)
	Set(channelID domain.ChannelID, template string, at time.Time) (domain.ChannelTemplate, error)
	Delete(channelID domain.ChannelID) error
	List() ([]domain.ChannelTemplate, error)
}

// TemplateRepository keeps one caption template per channel in BadgerDB.
// Values are protobuf encoded structpb.Struct records.
type TemplateRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewTemplateRepository(db *badger.DB, log *slog.Logger) *TemplateRepository {
	return &TemplateRepository{
		db:  db,
		log: log,
	}
}

// Get returns errors.ErrTemplateNotFound when the channel never set a template.
func (r TemplateRepository) Get(channelID domain.ChannelID) (domain.ChannelTemplate, error) {
	var tpl domain.ChannelTemplate
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(templateKey(channelID))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			decoded, err := decodeTemplate(channelID, v)
			if err != nil {
				return err
			}
			tpl = decoded
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.ChannelTemplate{}, caperrors.ErrTemplateNotFound
	}
	if err != nil {
		return domain.ChannelTemplate{}, fmt.Errorf("failed to read template of channel %d: %w", channelID, err)
	}
	return tpl, nil
}

// Set creates or replaces the template, CreatedAt is kept across updates.
func (r TemplateRepository) Set(channelID domain.ChannelID, template string, at time.Time) (domain.ChannelTemplate, error) {
	if strings.TrimSpace(template) == "" {
		return domain.ChannelTemplate{}, caperrors.ErrEmptyTemplate
	}
	tpl := domain.ChannelTemplate{
		ChannelID: channelID,
		Template:  template,
		CreatedAt: at.UTC(),
		UpdatedAt: at.UTC(),
	}

	err := r.db.Update(func(txn *badger.Txn) error {
		key := templateKey(channelID)
		item, err := txn.Get(key)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
		case err != nil:
			return err
		default:
			if err := item.Value(func(v []byte) error {
				previous, err := decodeTemplate(channelID, v)
				if err != nil {
					return err
				}
				tpl.CreatedAt = previous.CreatedAt
				return nil
			}); err != nil {
				return err
			}
		}

		data, err := encodeTemplate(tpl)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return domain.ChannelTemplate{}, fmt.Errorf("failed to save template of channel %d: %w", channelID, err)
	}
	r.log.Debug("Template saved", "channel", channelID)
	return tpl, nil
}

// Delete is a no-op for channels without a template.
func (r TemplateRepository) Delete(channelID domain.ChannelID) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(templateKey(channelID))
	})
}

func (r TemplateRepository) List() ([]domain.ChannelTemplate, error) {
	var templates []domain.ChannelTemplate
	prefix := []byte(templatePrefix)

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			channelID, err := channelFromKey(string(item.Key()))
			if err != nil {
				r.log.Warn("Skipping malformed template key", "key", string(item.Key()), "error", err)
				continue
			}
			err = item.Value(func(v []byte) error {
				tpl, err := decodeTemplate(channelID, v)
				if err != nil {
					return err
				}
				templates = append(templates, tpl)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

func templateKey(channelID domain.ChannelID) []byte {
	return []byte(fmt.Sprintf("%s%d", templatePrefix, channelID))
}

func channelFromKey(key string) (domain.ChannelID, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(key, templatePrefix), 10, 64)
	if err != nil {
		return 0, err
	}
	return domain.ChannelID(id), nil
}

func encodeTemplate(tpl domain.ChannelTemplate) ([]byte, error) {
	record := &structpb.Struct{Fields: map[string]*structpb.Value{
		"template":   structpb.NewStringValue(tpl.Template),
		"created_at": timeValue(tpl.CreatedAt),
		"updated_at": timeValue(tpl.UpdatedAt),
	}}
	return proto.Marshal(record)
}

func decodeTemplate(channelID domain.ChannelID, data []byte) (domain.ChannelTemplate, error) {
	var record structpb.Struct
	if err := proto.Unmarshal(data, &record); err != nil {
		return domain.ChannelTemplate{}, fmt.Errorf("failed to unmarshal template: %w", err)
	}
	fields := record.GetFields()
	createdAt, err := timeField(fields, "created_at")
	if err != nil {
		return domain.ChannelTemplate{}, err
	}
	updatedAt, err := timeField(fields, "updated_at")
	if err != nil {
		return domain.ChannelTemplate{}, err
	}
	return domain.ChannelTemplate{
		ChannelID: channelID,
		Template:  fields["template"].GetStringValue(),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
