// Package snapshot exports the whole store to a JSON document and imports
// such a document back, validating it against an embedded JSON schema first.
package snapshot

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/thenoetrevino/todoey/internal/database"
	"github.com/thenoetrevino/todoey/internal/events"
	"github.com/thenoetrevino/todoey/internal/models"
	"github.com/thenoetrevino/todoey/internal/types"
)

// FormatVersion is written to every export and required on import
const FormatVersion = 1

const schemaURL = "https://todoey.local/snapshot.schema.json"

//go:embed schema.json
var schemaJSON string

var (
	// ErrInvalidDocument wraps every schema or decoding failure
	ErrInvalidDocument = fmt.Errorf("%w: invalid snapshot document", models.ErrValidation)

	// ErrDuplicateCategory means the document names a category that already exists
	ErrDuplicateCategory = fmt.Errorf("%w: category already exists", models.ErrValidation)

	// ErrDuplicateItem means an item ID is already stored or repeats within the document
	ErrDuplicateItem = fmt.Errorf("%w: item already exists", models.ErrValidation)
)

// Document is the serialized form of the store
type Document struct {
	Version    int        `json:"version"`
	ExportedAt time.Time  `json:"exported_at"`
	Categories []Category `json:"categories"`
}

// Category is a category with its items inlined
type Category struct {
	ID        types.CategoryID `json:"id"`
	Name      string           `json:"name"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Items     []Item           `json:"items"`
}

// Item is an item inside a Category
type Item struct {
	ID        types.ItemID `json:"id"`
	Title     string       `json:"title"`
	Done      bool         `json:"done"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Summary reports what an import wrote
type Summary struct {
	Categories int
	Items      int
}

// Service moves whole-store snapshots in and out
type Service interface {
	Export(ctx context.Context, w io.Writer) error
	Import(ctx context.Context, r io.Reader) (Summary, error)
}

type service struct {
	repo        database.DataStore
	eventClient events.Publisher
	schema      *jsonschema.Schema
	clock       func() time.Time
}

// NewService compiles the embedded schema and returns a snapshot service
func NewService(repo database.DataStore, eventClient events.Publisher) (Service, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	return &service{
		repo:        repo,
		eventClient: eventClient,
		schema:      schema,
		clock:       time.Now,
	}, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// Export writes every category and its items, in insertion order, as
// indented JSON. Reads happen in one transaction for a consistent view.
func (s *service) Export(ctx context.Context, w io.Writer) error {
	doc := Document{
		Version:    FormatVersion,
		ExportedAt: s.clock().UTC(),
		Categories: make([]Category, 0),
	}

	err := s.repo.InTx(ctx, func(tx database.DataStore) error {
		categories, err := tx.GetAllCategories(ctx)
		if err != nil {
			return err
		}
		for _, c := range categories {
			items, err := tx.ListItems(ctx, database.ItemQuery{CategoryID: c.ID})
			if err != nil {
				return err
			}
			doc.Categories = append(doc.Categories, fromModels(c, items))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to read store: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Import validates the document and writes it in a single transaction.
// Either everything in the document is stored or nothing is.
func (s *service) Import(ctx context.Context, r io.Reader) (Summary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Summary{}, fmt.Errorf("read snapshot: %w", err)
	}

	doc, err := s.decode(data)
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	err = s.repo.InTx(ctx, func(tx database.DataStore) error {
		for _, c := range doc.Categories {
			exists, err := tx.CategoryExists(ctx, c.ID)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("%w: %s", ErrDuplicateCategory, c.ID)
			}

			category, items := c.toModels()
			if err := tx.InsertCategory(ctx, category); err != nil {
				return err
			}
			for _, item := range items {
				// Earlier inserts are visible inside the transaction, so this
				// also catches an ID repeated within the document.
				exists, err := tx.ItemExists(ctx, item.ID)
				if err != nil {
					return err
				}
				if exists {
					return fmt.Errorf("%w: %s", ErrDuplicateItem, item.ID)
				}
				if err := tx.InsertItem(ctx, item); err != nil {
					return err
				}
			}
			summary.Categories++
			summary.Items += len(items)
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	slog.Info("snapshot imported", "categories", summary.Categories, "items", summary.Items)
	for _, c := range doc.Categories {
		events.PublishCategory(s.eventClient, c.ID)
	}

	return summary, nil
}

// decode validates raw JSON against the schema, then decodes it
func (s *service) decode(data []byte) (*Document, error) {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if err := s.schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, describeValidationError(err))
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return &doc, nil
}

// describeValidationError reports the first leaf cause of a schema failure
func describeValidationError(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	location := ve.InstanceLocation
	if location == "" {
		location = "/"
	}
	return fmt.Sprintf("%s: %s", location, ve.Message)
}

func fromModels(c *models.Category, items []*models.Item) Category {
	out := Category{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Items:     make([]Item, len(items)),
	}
	for i, item := range items {
		out.Items[i] = Item{
			ID:        item.ID,
			Title:     item.Title,
			Done:      item.Done,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		}
	}
	return out
}

// toModels converts back, filling missing timestamps with the import time
func (c Category) toModels() (*models.Category, []*models.Item) {
	fallback := time.Now().UTC()
	orNow := func(t time.Time) time.Time {
		if t.IsZero() {
			return fallback
		}
		return t
	}

	category := &models.Category{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: orNow(c.CreatedAt),
		UpdatedAt: orNow(c.UpdatedAt),
	}
	items := make([]*models.Item, len(c.Items))
	for i, it := range c.Items {
		items[i] = &models.Item{
			ID:         it.ID,
			Title:      it.Title,
			Done:       it.Done,
			CategoryID: c.ID,
			CreatedAt:  orNow(it.CreatedAt),
			UpdatedAt:  orNow(it.UpdatedAt),
		}
	}
	return category, items
}
