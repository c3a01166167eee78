// Package instance provides the shared persistence behavior of the data
// wrappers: a gorm row guarded by a per-instance mutex, reloading by id and
// transactional saving.
package instance

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"gorm.io/gorm"
)

// Row is implemented by the pointer types of the gorm models.
type Row[T any] interface {
	*T
	GetID() string
}

// Options configure an Instance.
type Options struct {
	// Entity names the wrapped rows in logs and metrics.
	Entity string
	// Preloads are the associations loaded with the row on Reload.
	Preloads []string
}

// Instance wraps one database row.
// All access to the row goes through View, Update and Save which hold the instance mutex.
type Instance[T any, PT Row[T]] struct {
	mu   sync.Mutex
	db   *gorm.DB
	row  PT
	opts Options

	dbID       string
	reloadable atomic.Bool
}

// New wraps row. A nil row is replaced by a new, unsaved one.
func New[T any, PT Row[T]](db *gorm.DB, row PT, opts Options) *Instance[T, PT] {
	if row == nil {
		row = PT(new(T))
	}

	i := &Instance[T, PT]{
		db:   db,
		row:  row,
		opts: opts,
		dbID: row.GetID(),
	}
	i.reloadable.Store(i.dbID != "")

	return i
}

// DB returns the database handle of the instance.
func (i *Instance[T, PT]) DB() *gorm.DB {
	return i.db
}

// Entity returns the entity name of the instance.
func (i *Instance[T, PT]) Entity() string {
	return i.opts.Entity
}

// View calls fn with the row while holding the lock. fn must not keep the row.
func (i *Instance[T, PT]) View(fn func(row PT)) {
	i.mu.Lock()
	defer i.mu.Unlock()

	fn(i.row)
}

// Update calls fn with the row while holding the lock so fn may mutate it.
func (i *Instance[T, PT]) Update(fn func(row PT)) {
	i.mu.Lock()
	defer i.mu.Unlock()

	fn(i.row)
}

// IsReloadable reports whether the row has a database id and can be read again.
func (i *Instance[T, PT]) IsReloadable() bool {
	if i.reloadable.Load() {
		return true
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	return i.dbID != ""
}

// ID returns the database id used for reloading; empty before the first save.
func (i *Instance[T, PT]) ID() string {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.dbID
}

// Reload replaces the row with the stored copy.
func (i *Instance[T, PT]) Reload(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.dbID == "" {
		return ErrNotReloadable
	}

	tx := i.db.WithContext(ctx)
	for _, preload := range i.opts.Preloads {
		tx = tx.Preload(preload)
	}

	row := PT(new(T))

	err := tx.Where("id = ?", i.dbID).First(row).Error
	Observe(i.opts.Entity, "reload", err)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NothingMatchedf("%s ID '%s' is invalid", i.opts.Entity, i.dbID)
	}

	if err != nil {
		return err
	}

	i.row = row

	return nil
}

// SaveFunc persists row inside the transaction tx.
type SaveFunc[T any, PT Row[T]] func(tx *gorm.DB, row PT) error

// Save persists the row in one transaction. A nil fn saves the row without its associations.
func (i *Instance[T, PT]) Save(ctx context.Context, fn SaveFunc[T, PT]) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if fn == nil {
		fn = func(tx *gorm.DB, row PT) error {
			return tx.Save(row).Error
		}
	}

	err := i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx, i.row)
	})
	Observe(i.opts.Entity, "save", err)

	if err != nil {
		return err
	}

	i.dbID = i.row.GetID()
	i.reloadable.Store(i.dbID != "")

	return nil
}

// Delete removes the stored row. Deleting an unsaved row is a no-op.
func (i *Instance[T, PT]) Delete(ctx context.Context, fn SaveFunc[T, PT]) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.dbID == "" {
		return nil
	}

	if fn == nil {
		fn = func(tx *gorm.DB, row PT) error {
			return tx.Delete(row).Error
		}
	}

	err := i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx, i.row)
	})
	Observe(i.opts.Entity, "delete", err)

	if err != nil {
		return err
	}

	i.dbID = ""
	i.reloadable.Store(false)

	return nil
}
