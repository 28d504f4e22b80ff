// Package stock serializes access to the inventory store for the HTTP
// surface and the scheduler. The store itself carries no lock; this
// service is the single external serialization point.
package stock

import (
	"sync"

	"go.uber.org/zap"

	"github.com/mbodji/stockroom/internal/inventory"
)

// Service wraps the store with a mutex and binds it to the configured
// inventory file.
type Service struct {
	mu       sync.Mutex
	store    *inventory.Store
	journal  *inventory.MemoryJournal
	filePath string
	logger   *zap.Logger
}

// NewService wires a new stock service instance.
func NewService(store *inventory.Store, journal *inventory.MemoryJournal, filePath string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		journal:  journal,
		filePath: filePath,
		logger:   logger,
	}
}

// AddItem increments the stock of item by qty and returns the
// resulting quantity, observed under the same critical section as the
// mutation.
func (s *Service) AddItem(item string, qty int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Add(item, qty); err != nil {
		return 0, err
	}
	now, _ := s.store.Quantity(item)
	return now, nil
}

// RemoveItem decrements the stock of item by qty, deleting the entry
// when it drains, and returns the resulting quantity (0 after a drain),
// observed under the same critical section as the mutation.
func (s *Service) RemoveItem(item string, qty int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Remove(item, qty); err != nil {
		return 0, err
	}
	now, _ := s.store.Quantity(item)
	return now, nil
}

// Quantity returns the current stock of item, 0 when absent.
func (s *Service) Quantity(item string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Quantity(item)
}

// LowStock lists item names strictly below threshold.
func (s *Service) LowStock(threshold int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.LowStock(threshold)
}

// Report renders the sorted stock listing.
func (s *Service) Report() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Report()
}

// Persist writes the stock to the configured inventory file.
func (s *Service) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Save(s.filePath)
}

// Restore replaces the stock from the configured inventory file. A
// missing file keeps the current stock and is not an error; a malformed
// file is absorbed here so startup and reload requests never abort on
// bad data, only report it.
func (s *Service) Restore() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Load(s.filePath); err != nil {
		s.logger.Error("restore failed, keeping current stock", zap.Error(err))
		return err
	}
	return nil
}

// Journal returns a snapshot of the retained mutation entries, oldest
// first. Nil when no journal was attached.
func (s *Service) Journal() []inventory.Entry {
	if s.journal == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.journal.Entries()
}
