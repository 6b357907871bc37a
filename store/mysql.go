package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// document is the single-table layout backing the MySQL document store.
// Every collection shares the table; the payload lives in a JSON column and
// is queried with JSON_EXTRACT.
type document struct {
	ID         string    `gorm:"primaryKey;size:36"`
	Collection string    `gorm:"size:64;index:idx_documents_collection;not null"`
	Doc        string    `gorm:"type:json;not null"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (document) TableName() string { return "documents" }

// MySQLStore implements DocumentStore on top of a MySQL JSON column.
type MySQLStore struct {
	db *gorm.DB
}

// NewMySQLStore migrates the documents table and returns the store.
func NewMySQLStore(db *gorm.DB) (*MySQLStore, error) {
	if err := db.AutoMigrate(&document{}); err != nil {
		return nil, fmt.Errorf("migrate documents table: %w", err)
	}
	return &MySQLStore{db: db}, nil
}

// Field names are interpolated into JSON paths, so they must stay plain
// identifiers.
var fieldNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func jsonPath(field string) (string, error) {
	if !fieldNameRe.MatchString(field) {
		return "", fmt.Errorf("invalid document field name %q", field)
	}
	return "$." + field, nil
}

func (s *MySQLStore) QueryAll(ctx context.Context, collection, orderBy string, desc bool) ([]RawDocument, error) {
	path, err := jsonPath(orderBy)
	if err != nil {
		return nil, err
	}
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	var rows []document
	err = s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order(fmt.Sprintf("JSON_UNQUOTE(JSON_EXTRACT(doc, '%s')) %s", path, dir)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return decodeRows(rows)
}

func (s *MySQLStore) QueryWhere(ctx context.Context, collection, field string, value any) ([]RawDocument, error) {
	path, err := jsonPath(field)
	if err != nil {
		return nil, err
	}
	var rows []document
	err = s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Where(fmt.Sprintf("JSON_UNQUOTE(JSON_EXTRACT(doc, '%s')) = ?", path), fmt.Sprint(value)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return decodeRows(rows)
}

func (s *MySQLStore) Insert(ctx context.Context, collection string, fields RawDocument) (string, error) {
	id := uuid.NewString()
	payload := make(RawDocument, len(fields)+1)
	for k, v := range fields {
		payload[k] = v
	}
	payload["id"] = id
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	row := document{ID: id, Collection: collection, Doc: string(raw)}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", err
	}
	return id, nil
}

func (s *MySQLStore) UpdateFields(ctx context.Context, collection, id string, fields RawDocument) error {
	// Read-merge-write inside a transaction so concurrent partial updates on
	// different fields do not clobber each other.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row document
		err := tx.Where("collection = ? AND id = ?", collection, id).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDocNotFound
		}
		if err != nil {
			return err
		}
		var doc RawDocument
		if err := json.Unmarshal([]byte(row.Doc), &doc); err != nil {
			return fmt.Errorf("decode document %s: %w", id, err)
		}
		for k, v := range fields {
			doc[k] = v
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		return tx.Model(&document{}).
			Where("collection = ? AND id = ?", collection, id).
			Update("doc", string(raw)).Error
	})
}

func (s *MySQLStore) Delete(ctx context.Context, collection, id string) error {
	res := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&document{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDocNotFound
	}
	return nil
}

func decodeRows(rows []document) ([]RawDocument, error) {
	docs := make([]RawDocument, 0, len(rows))
	for _, row := range rows {
		var doc RawDocument
		if err := json.Unmarshal([]byte(row.Doc), &doc); err != nil {
			return nil, fmt.Errorf("decode document %s: %w", row.ID, err)
		}
		doc["id"] = row.ID
		docs = append(docs, doc)
	}
	return docs, nil
}
