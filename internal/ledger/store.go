// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ledger holds the active family's domain data in memory. It is the
// snapshot source for the sync engine and reloads itself from the snapshot
// cache after a file was loaded.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-family-sync/internal/logger"
	"github.com/MKhiriev/go-family-sync/internal/store"
	"github.com/MKhiriev/go-family-sync/internal/utils"
	"github.com/MKhiriev/go-family-sync/internal/validators"
	"github.com/MKhiriev/go-family-sync/models"
)

// Store is the in-memory ledger of the loaded family.
type Store struct {
	cache     store.SnapshotCache
	validator validators.Validator
	log       *logger.Logger
	newID     func() string
	now       func() time.Time

	// writeMu serializes mutations and is held by HoldWrites while the
	// engine replaces the cache.
	writeMu sync.Mutex

	mu       sync.RWMutex
	familyID string
	snapshot models.DomainSnapshot
	subs     []func()
}

func NewStore(cache store.SnapshotCache, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		cache:     cache,
		validator: validators.NewLedgerValidator(),
		log:       log,
		newID:     utils.NewID,
		now:       time.Now,
	}
}

// Subscribe registers fn to run after every mutation.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// FamilyID returns the loaded family, if any.
func (s *Store) FamilyID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.familyID
}

// Export returns a copy of the current snapshot.
func (s *Store) Export(context.Context) (models.DomainSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.familyID == "" {
		return models.DomainSnapshot{}, ErrNoFamily
	}
	return s.snapshot.Clone(), nil
}

// Reload replaces the in-memory state with the cached snapshot of
// familyID.
func (s *Store) Reload(ctx context.Context, familyID string) error {
	snapshot, err := s.cache.GetSnapshot(ctx, familyID)
	if err != nil {
		return fmt.Errorf("read cached snapshot: %w", err)
	}

	s.mu.Lock()
	s.familyID = familyID
	s.snapshot = snapshot
	s.mu.Unlock()

	s.log.Debug().Str("func", "Store.Reload").
		Str("family_id", familyID).
		Int("entities", snapshot.Len()).
		Msg("ledger reloaded")
	return nil
}

// Members lists the family members.
func (s *Store) Members() ([]models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return decodeAll[models.Member](s.snapshot.Members)
}

// Accounts lists the family accounts.
func (s *Store) Accounts() ([]models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return decodeAll[models.Account](s.snapshot.Accounts)
}

// Transactions lists the transactions of accountID, or all of them when
// accountID is empty.
func (s *Store) Transactions(accountID string) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all, err := decodeAll[models.Transaction](s.snapshot.Transactions)
	if err != nil {
		return nil, err
	}
	if accountID == "" {
		return all, nil
	}
	out := make([]models.Transaction, 0, len(all))
	for _, tx := range all {
		if tx.AccountID == accountID {
			out = append(out, tx)
		}
	}
	return out, nil
}

// Balance is the opening balance plus every transaction of the account.
func (s *Store) Balance(accountID string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, err := s.findAccount(accountID)
	if err != nil {
		return decimal.Zero, err
	}
	txs, err := decodeAll[models.Transaction](s.snapshot.Transactions)
	if err != nil {
		return decimal.Zero, err
	}

	balance := account.OpeningBalance
	for _, tx := range txs {
		if tx.AccountID == accountID {
			balance = balance.Add(tx.Amount)
		}
	}
	return balance, nil
}

// AddMember adds a family member.
func (s *Store) AddMember(ctx context.Context, name string) (models.Member, error) {
	m := models.Member{ID: s.newID(), Name: strings.TrimSpace(name)}
	if err := s.validate(ctx, m); err != nil {
		return models.Member{}, err
	}

	err := s.mutate(ctx, func(snap *models.DomainSnapshot) error {
		return appendEntity(&snap.Members, m)
	})
	return m, err
}

// AddAccount opens an account. The currency code is upper-cased.
func (s *Store) AddAccount(ctx context.Context, name, currency string, opening decimal.Decimal) (models.Account, error) {
	a := models.Account{
		ID:             s.newID(),
		Name:           strings.TrimSpace(name),
		Currency:       strings.ToUpper(strings.TrimSpace(currency)),
		OpeningBalance: opening,
	}
	if err := s.validate(ctx, a); err != nil {
		return models.Account{}, err
	}

	err := s.mutate(ctx, func(snap *models.DomainSnapshot) error {
		return appendEntity(&snap.Accounts, a)
	})
	return a, err
}

// AddTransaction records tx against an existing account. ID and Date are
// filled in when empty.
func (s *Store) AddTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if tx.ID == "" {
		tx.ID = s.newID()
	}
	if tx.Date.IsZero() {
		tx.Date = s.now().UTC()
	}
	tx.Description = strings.TrimSpace(tx.Description)
	if err := s.validate(ctx, tx); err != nil {
		return models.Transaction{}, err
	}

	err := s.mutate(ctx, func(snap *models.DomainSnapshot) error {
		if _, err := s.findAccount(tx.AccountID); err != nil {
			return err
		}
		if tx.MemberID != "" {
			if err := s.findMember(tx.MemberID); err != nil {
				return err
			}
		}
		return appendEntity(&snap.Transactions, tx)
	})
	return tx, err
}

func (s *Store) validate(ctx context.Context, entity any) error {
	if err := s.validator.Validate(ctx, entity); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}
	return nil
}

// HoldWrites blocks mutations until release is called. Reload still works
// while writes are held.
func (s *Store) HoldWrites() (release func()) {
	s.writeMu.Lock()
	return s.writeMu.Unlock
}

// mutate applies fn to a copy of the snapshot, writes the copy to the
// cache and only then makes it current. Subscribers run afterwards.
func (s *Store) mutate(ctx context.Context, fn func(snap *models.DomainSnapshot) error) error {
	subs, err := s.apply(ctx, fn)
	if err != nil {
		return err
	}
	for _, sub := range subs {
		sub()
	}
	return nil
}

func (s *Store) apply(ctx context.Context, fn func(snap *models.DomainSnapshot) error) ([]func(), error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.familyID == "" {
		return nil, ErrNoFamily
	}

	next := s.snapshot.Clone()
	if err := fn(&next); err != nil {
		return nil, err
	}
	if err := s.cache.ReplaceSnapshot(ctx, s.familyID, next); err != nil {
		return nil, fmt.Errorf("write cached snapshot: %w", err)
	}
	s.snapshot = next
	return append([]func(){}, s.subs...), nil
}

// findAccount must be called with mu held.
func (s *Store) findAccount(id string) (models.Account, error) {
	accounts, err := decodeAll[models.Account](s.snapshot.Accounts)
	if err != nil {
		return models.Account{}, err
	}
	for _, a := range accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
}

// findMember must be called with mu held.
func (s *Store) findMember(id string) error {
	members, err := decodeAll[models.Member](s.snapshot.Members)
	if err != nil {
		return err
	}
	for _, m := range members {
		if m.ID == id {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrMemberNotFound, id)
}

func appendEntity[T any](dst *[]json.RawMessage, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal entity: %w", err)
	}
	*dst = append(*dst, raw)
	return nil
}

// decodeAll decodes the known fields of every entity; unknown fields stay
// untouched in the snapshot.
func decodeAll[T any](raws []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%w: entity %d: %w", ErrInvalidEntity, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
