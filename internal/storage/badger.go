package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	"linkcategorizer/internal/domain"
)

// BadgerRepository implements Repository on top of BadgerDB.
type BadgerRepository struct {
	db  *badger.DB
	log logrus.FieldLogger
}

// NewBadgerRepository opens (or creates) the database at dbPath.
func NewBadgerRepository(dbPath string, logger logrus.FieldLogger) (*BadgerRepository, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = &badgerLogger{logger.WithField("component", "badgerdb")}

	db, err := badger.Open(opts)
	if err != nil {
		logger.WithError(err).Error("Failed to open BadgerDB")
		return nil, fmt.Errorf("failed to open badger db at %s: %w", dbPath, err)
	}
	logger.Info("BadgerDB opened successfully at path: ", dbPath)

	return &BadgerRepository{
		db:  db,
		log: logger.WithField("component", "repository"),
	}, nil
}

// Close closes the BadgerDB database.
func (r *BadgerRepository) Close() error {
	r.log.Info("Closing BadgerDB...")
	if err := r.db.Close(); err != nil {
		r.log.WithError(err).Error("Error closing BadgerDB")
		return err
	}
	r.log.Info("BadgerDB closed.")
	return nil
}

// Format: user:{userID}:link:{linkURL}
func linkKey(userID int64, linkURL string) []byte {
	return []byte(fmt.Sprintf("user:%d:link:%s", userID, linkURL))
}

// Format: user:{userID}:link:
func userPrefix(userID int64) []byte {
	return []byte(fmt.Sprintf("user:%d:link:", userID))
}

// SaveLink stores or replaces a link.
func (r *BadgerRepository) SaveLink(ctx context.Context, link domain.SavedLink) error {
	log := r.log.WithFields(logrus.Fields{
		"user_id":  link.UserID,
		"url":      link.URL,
		"category": link.Category,
	})
	log.Debug("Saving link")

	if link.Timestamp.IsZero() {
		link.Timestamp = time.Now()
	}

	linkBytes, err := json.Marshal(link)
	if err != nil {
		log.WithError(err).Error("Failed to marshal link to JSON")
		return fmt.Errorf("failed to marshal link: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(linkKey(link.UserID, link.URL), linkBytes))
	})
	if err != nil {
		log.WithError(err).Error("Failed to save link to BadgerDB")
		return fmt.Errorf("failed to save link: %w", err)
	}

	log.Debug("Link saved")
	return nil
}

// GetLinksByUser returns the user's links sorted newest first.
func (r *BadgerRepository) GetLinksByUser(ctx context.Context, userID int64) ([]domain.SavedLink, error) {
	log := r.log.WithField("user_id", userID)

	var links []domain.SavedLink
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := userPrefix(userID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				var link domain.SavedLink
				if err := json.Unmarshal(val, &link); err != nil {
					log.WithError(err).WithField("key", string(item.Key())).Error("Failed to unmarshal link from DB")
					return fmt.Errorf("failed to unmarshal link data for key %s: %w", string(item.Key()), err)
				}
				links = append(links, link)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Failed to retrieve links from BadgerDB")
		return nil, fmt.Errorf("failed to get links for user %d: %w", userID, err)
	}

	sort.SliceStable(links, func(i, j int) bool {
		return links[i].Timestamp.After(links[j].Timestamp)
	})

	log.WithField("link_count", len(links)).Debug("Links retrieved")
	return links, nil
}

// DeleteLink removes one link. Badger deletes are idempotent.
func (r *BadgerRepository) DeleteLink(ctx context.Context, userID int64, linkURL string) error {
	log := r.log.WithFields(logrus.Fields{
		"user_id": userID,
		"url":     linkURL,
	})

	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(linkKey(userID, linkURL))
	})
	if err != nil {
		log.WithError(err).Error("Failed to delete link from BadgerDB")
		return fmt.Errorf("failed to delete link %s for user %d: %w", linkURL, userID, err)
	}

	log.Debug("Link deleted")
	return nil
}

// DeleteLinksByUser removes all of a user's links.
func (r *BadgerRepository) DeleteLinksByUser(ctx context.Context, userID int64) error {
	log := r.log.WithField("user_id", userID)

	if err := r.db.DropPrefix(userPrefix(userID)); err != nil {
		log.WithError(err).Error("Failed to drop user links from BadgerDB")
		return fmt.Errorf("failed to delete links for user %d: %w", userID, err)
	}

	log.Info("Deleted all links for user")
	return nil
}

// badgerLogger adapts logrus.FieldLogger to Badger's logger interface.
type badgerLogger struct {
	logger logrus.FieldLogger
}

func (l *badgerLogger) Errorf(f string, v ...interface{}) {
	l.logger.Errorf(f, v...)
}
func (l *badgerLogger) Warningf(f string, v ...interface{}) {
	l.logger.Warningf(f, v...)
}
func (l *badgerLogger) Infof(f string, v ...interface{}) {
	l.logger.Infof(f, v...)
}
func (l *badgerLogger) Debugf(f string, v ...interface{}) {
	l.logger.Debugf(f, v...)
}
