// Package store implements create/update/delete/list-by-range once for every ledger table.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/bhushanhacker007/solar-burji-app/internal/models"
	"github.com/bhushanhacker007/solar-burji-app/internal/period"
	"github.com/bhushanhacker007/solar-burji-app/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned by Update and Delete in strict mode when no row matched.
var ErrNotFound = errors.New("record not found")

// Descriptor tells a Store how one ledger table is shaped.
type Descriptor struct {
	Name       string   // ledger name used in logs and file names
	Key        string   // identity column
	DateColumn string   // column filtered by ListByRange
	OrderBy    []string // ascending sort columns for ListByRange
	// UpsertColumns, when set, turns Create into insert-or-overwrite on Key.
	UpsertColumns []string
	// Updatable whitelists the columns a Patch may touch.
	Updatable []string
}

// Patch is a typed partial update; Changes holds only the fields the client sent.
type Patch interface {
	Validate() error
	Changes() map[string]any
}

type validator interface {
	Validate() error
}

// Store is a ledger table accessed through gorm. Each operation is one statement.
type Store[T any] struct {
	db     *gorm.DB
	desc   Descriptor
	strict bool
}

// Option configures a Store.
type Option func(*options)

type options struct {
	strict bool
}

// WithStrictNotFound makes Update/Delete return ErrNotFound when nothing matched.
func WithStrictNotFound(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

func New[T any](db *gorm.DB, desc Descriptor, opts ...Option) *Store[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T]{db: db, desc: desc, strict: o.strict}
}

func (s *Store[T]) Descriptor() Descriptor { return s.desc }

// Create validates rec and inserts it; for upsert ledgers an existing row with the
// same key has every UpsertColumns value overwritten, not merged.
func (s *Store[T]) Create(ctx context.Context, rec *T) error {
	if v, ok := any(rec).(validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	tx := s.db.WithContext(ctx)
	if len(s.desc.UpsertColumns) > 0 {
		tx = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: s.desc.Key}},
			DoUpdates: clause.AssignmentColumns(s.desc.UpsertColumns),
		})
	}
	if err := tx.Create(rec).Error; err != nil {
		return fmt.Errorf("create %s: %w", s.desc.Name, err)
	}
	return nil
}

// Update applies only the fields present in p to the row identified by key.
// Zero matched rows is success unless the store is strict.
func (s *Store[T]) Update(ctx context.Context, key any, p Patch) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	changes, err := s.allowed(p.Changes())
	if err != nil {
		return 0, err
	}
	if len(changes) == 0 {
		return 0, util.Invalidf("Nothing to update")
	}

	res := s.db.WithContext(ctx).
		Model(new(T)).
		Where(clause.Eq{Column: clause.Column{Name: s.desc.Key}, Value: key}).
		Updates(changes)
	if res.Error != nil {
		return 0, fmt.Errorf("update %s: %w", s.desc.Name, res.Error)
	}
	if s.strict && res.RowsAffected == 0 {
		return 0, ErrNotFound
	}
	return res.RowsAffected, nil
}

// Delete removes zero or one row.
func (s *Store[T]) Delete(ctx context.Context, key any) (int64, error) {
	res := s.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: s.desc.Key}, Value: key}).
		Delete(new(T))
	if res.Error != nil {
		return 0, fmt.Errorf("delete %s: %w", s.desc.Name, res.Error)
	}
	if s.strict && res.RowsAffected == 0 {
		return 0, ErrNotFound
	}
	return res.RowsAffected, nil
}

// ListByRange returns the rows whose date falls in r (inclusive), in OrderBy order.
func (s *Store[T]) ListByRange(ctx context.Context, r period.Range) ([]T, error) {
	date := clause.Column{Name: s.desc.DateColumn}
	tx := s.db.WithContext(ctx).Where(clause.And(
		clause.Gte{Column: date, Value: r.Start},
		clause.Lte{Column: date, Value: r.End},
	))
	for _, col := range s.desc.OrderBy {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: col}})
	}

	rows := make([]T, 0)
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", s.desc.Name, err)
	}
	return rows, nil
}

// Get loads one row by key; used by callers that need to read back a write.
func (s *Store[T]) Get(ctx context.Context, key any) (*T, error) {
	var rec T
	err := s.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: s.desc.Key}, Value: key}).
		Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.desc.Name, err)
	}
	return &rec, nil
}

func (s *Store[T]) allowed(changes map[string]any) (map[string]any, error) {
	if len(s.desc.Updatable) == 0 {
		return changes, nil
	}
	ok := make(map[string]bool, len(s.desc.Updatable))
	for _, col := range s.desc.Updatable {
		ok[col] = true
	}
	for col := range changes {
		if !ok[col] {
			return nil, util.Invalidf("%s cannot be updated", col)
		}
	}
	return changes, nil
}

// Ledgers bundles the three stores the service exposes.
type Ledgers struct {
	Sales      *Store[models.Sale]
	Borrowings *Store[models.Borrowing]
	Solar      *Store[models.SolarDaily]
}

var (
	SalesDescriptor = Descriptor{
		Name:       "sales",
		Key:        "id",
		DateColumn: "txn_date",
		OrderBy:    []string{"txn_date", "id"},
		Updatable:  []string{"amount", "payment_method", "note"},
	}
	BorrowingsDescriptor = Descriptor{
		Name:       "borrowings",
		Key:        "id",
		DateColumn: "txn_date",
		OrderBy:    []string{"txn_date", "id"},
		Updatable:  []string{"customer_name", "amount", "is_repayment", "note"},
	}
	SolarDescriptor = Descriptor{
		Name:          "solar",
		Key:           "reading_date",
		DateColumn:    "reading_date",
		OrderBy:       []string{"reading_date"},
		UpsertColumns: models.SolarUpsertColumns,
		Updatable:     []string{"import_kwh", "export_kwh", "generation_kwh", "notes"},
	}
)

// NewLedgers wires one Store per ledger table.
func NewLedgers(db *gorm.DB, opts ...Option) *Ledgers {
	return &Ledgers{
		Sales:      New[models.Sale](db, SalesDescriptor, opts...),
		Borrowings: New[models.Borrowing](db, BorrowingsDescriptor, opts...),
		Solar:      New[models.SolarDaily](db, SolarDescriptor, opts...),
	}
}
