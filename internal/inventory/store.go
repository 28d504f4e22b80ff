// Package inventory implements the in-memory stock map and its JSON
// file round-trip. The store is not safe for concurrent use; callers
// serialize access externally.
package inventory

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Store owns the mapping from item name to non-negative quantity.
// Entries never hold a quantity below 1; a removal that drains an item
// deletes the entry instead.
type Store struct {
	stock   map[string]int
	journal Journal
	logger  *zap.Logger
}

// New creates an empty store. Both logger and journal may be nil.
func New(logger *zap.Logger, journal Journal) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		stock:   make(map[string]int),
		journal: journal,
		logger:  logger,
	}
}

// Add increments the quantity of item by qty, creating the entry if absent.
// qty must be >= 0 and item must be non-empty.
func (s *Store) Add(item string, qty int) error {
	if item == "" {
		s.logger.Warn("rejected add", zap.String("reason", "empty item name"))
		return invalid("item", "must be a non-empty string")
	}
	if qty < 0 {
		s.logger.Warn("rejected add", zap.String("item", item), zap.Int("qty", qty))
		return invalid("qty", "must be non-negative")
	}

	previous := s.stock[item]
	s.stock[item] = previous + qty

	s.record(fmt.Sprintf("Added %d of %s (was %d, now %d)", qty, item, previous, s.stock[item]))
	s.logger.Info("stock added",
		zap.String("item", item),
		zap.Int("qty", qty),
		zap.Int("previous", previous),
		zap.Int("now", s.stock[item]))
	return nil
}

// Remove decrements the quantity of item by qty. When qty reaches or
// exceeds the current quantity the entry is deleted entirely.
func (s *Store) Remove(item string, qty int) error {
	if item == "" {
		s.logger.Warn("rejected remove", zap.String("reason", "empty item name"))
		return invalid("item", "must be a non-empty string")
	}
	if qty <= 0 {
		s.logger.Warn("rejected remove", zap.String("item", item), zap.Int("qty", qty))
		return invalid("qty", "must be a positive integer")
	}

	current, ok := s.stock[item]
	if !ok {
		s.logger.Warn("attempted to remove non-existent item", zap.String("item", item))
		return fmt.Errorf("%q: %w", item, ErrNotFound)
	}

	if qty >= current {
		delete(s.stock, item)
		s.record(fmt.Sprintf("Removed %s from stock (removed all %d)", item, current))
		s.logger.Info("item removed from stock",
			zap.String("item", item),
			zap.Int("removed", current))
		return nil
	}

	s.stock[item] = current - qty
	s.record(fmt.Sprintf("Decreased %s by %d (new qty=%d)", item, qty, s.stock[item]))
	s.logger.Info("stock decreased",
		zap.String("item", item),
		zap.Int("qty", qty),
		zap.Int("now", s.stock[item]))
	return nil
}

// Quantity returns the current quantity of item, or 0 when absent.
func (s *Store) Quantity(item string) (int, error) {
	if item == "" {
		return 0, invalid("item", "must be a non-empty string")
	}
	return s.stock[item], nil
}

// LowStock returns the names of all items with quantity strictly below
// threshold, in arbitrary order.
func (s *Store) LowStock(threshold int) ([]string, error) {
	if threshold < 0 {
		return nil, invalid("threshold", "must be non-negative")
	}

	var low []string
	for name, qty := range s.stock {
		if qty < threshold {
			low = append(low, name)
		}
	}
	return low, nil
}

// Len reports the number of distinct items in stock.
func (s *Store) Len() int {
	return len(s.stock)
}

// Items returns a copy of the current stock mapping.
func (s *Store) Items() map[string]int {
	out := make(map[string]int, len(s.stock))
	for name, qty := range s.stock {
		out[name] = qty
	}
	return out
}

// Load replaces the whole stock with the JSON object at path. Entries
// with an empty key or a value that does not coerce to a non-negative
// integer are skipped with a warning. A missing file leaves the current
// stock untouched and is not an error; malformed JSON leaves the stock
// untouched and returns an IOError.
func (s *Store) Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Info("inventory file not found, keeping current stock",
				zap.String("path", path))
			return nil
		}
		s.logger.Error("failed reading inventory file",
			zap.String("path", path), zap.Error(err))
		return &IOError{Op: "load", Path: path, Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		s.logger.Error("inventory file does not contain a JSON object",
			zap.String("path", path), zap.Error(err))
		return &IOError{Op: "load", Path: path, Err: err}
	}
	if raw == nil {
		s.logger.Error("inventory file does not contain a JSON object",
			zap.String("path", path))
		return &IOError{Op: "load", Path: path, Err: errors.New("not a JSON object")}
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		s.logger.Error("inventory file has trailing data after the JSON object",
			zap.String("path", path))
		return &IOError{Op: "load", Path: path, Err: errors.New("trailing data after JSON object")}
	}

	validated := make(map[string]int, len(raw))
	for name, value := range raw {
		if name == "" {
			s.logger.Warn("skipping entry with empty item name", zap.String("path", path))
			continue
		}
		qty, ok := coerceQuantity(value)
		if !ok {
			s.logger.Warn("skipping entry with non-integer quantity",
				zap.String("item", name), zap.Any("value", value))
			continue
		}
		if qty < 0 {
			s.logger.Warn("skipping entry with negative quantity",
				zap.String("item", name), zap.Int("qty", qty))
			continue
		}
		validated[name] = qty
	}

	s.stock = validated
	s.logger.Info("inventory loaded",
		zap.String("path", path), zap.Int("items", len(validated)))
	return nil
}

// Save writes the whole stock to path as an indented JSON object,
// overwriting any existing file.
func (s *Store) Save(path string) error {
	b, err := json.MarshalIndent(s.stock, "", "  ")
	if err != nil {
		s.logger.Error("failed encoding inventory", zap.Error(err))
		return &IOError{Op: "save", Path: path, Err: err}
	}

	if err := os.WriteFile(path, b, 0o644); err != nil {
		s.logger.Error("failed writing inventory file",
			zap.String("path", path), zap.Error(err))
		return &IOError{Op: "save", Path: path, Err: err}
	}

	s.logger.Info("inventory saved",
		zap.String("path", path), zap.Int("items", len(s.stock)))
	return nil
}

// Report renders a deterministic, alphabetically sorted listing of the
// current stock.
func (s *Store) Report() string {
	var sb strings.Builder
	sb.WriteString("Items Report\n")

	if len(s.stock) == 0 {
		sb.WriteString("(no items)\n")
		return sb.String()
	}

	names := make([]string, 0, len(s.stock))
	for name := range s.stock {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(&sb, "%s -> %d\n", name, s.stock[name])
	}
	return sb.String()
}

func (s *Store) record(msg string) {
	if s.journal == nil {
		return
	}
	s.journal.Append(Entry{At: time.Now(), Message: msg})
}

// coerceQuantity accepts JSON numbers with no fractional part and digit
// strings; everything else is rejected.
func coerceQuantity(value any) (int, bool) {
	switch v := value.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			if n > math.MaxInt || n < math.MinInt {
				return 0, false
			}
			return int(n), true
		}
		f, err := v.Float64()
		if err != nil || f != math.Trunc(f) || f > math.MaxInt || f < math.MinInt {
			return 0, false
		}
		return int(f), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
