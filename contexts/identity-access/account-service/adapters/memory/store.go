package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"pixmart/contexts/identity-access/account-service/domain/entities"
	domainerrors "pixmart/contexts/identity-access/account-service/domain/errors"
	"pixmart/contexts/identity-access/account-service/ports"
)

type Store struct {
	mu       sync.RWMutex
	accounts map[string]entities.Account
	byEmail  map[string]string
	sequence uint64
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]entities.Account),
		byEmail:  make(map[string]string),
	}
}

func (s *Store) CreateAccount(ctx context.Context, account entities.Account) (entities.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[account.Email]; taken {
		return entities.Account{}, domainerrors.ErrEmailTaken
	}
	s.accounts[account.AccountID] = account
	s.byEmail[account.Email] = account.AccountID
	return cloneAccount(account), nil
}

func (s *Store) GetAccount(ctx context.Context, accountID string) (entities.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return entities.Account{}, domainerrors.ErrAccountNotFound
	}
	return cloneAccount(account), nil
}

func (s *Store) GetAccountByEmail(ctx context.Context, email string) (entities.Account, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accountID, ok := s.byEmail[email]
	if !ok {
		return entities.Account{}, false, nil
	}
	return cloneAccount(s.accounts[accountID]), true, nil
}

func (s *Store) CountAccounts(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.accounts)), nil
}

func (s *Store) UpdateAccount(ctx context.Context, account entities.Account) (entities.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.accounts[account.AccountID]
	if !ok {
		return entities.Account{}, domainerrors.ErrAccountNotFound
	}
	if existing.Email != account.Email {
		if otherID, taken := s.byEmail[account.Email]; taken && otherID != account.AccountID {
			return entities.Account{}, domainerrors.ErrEmailTaken
		}
		delete(s.byEmail, existing.Email)
		s.byEmail[account.Email] = account.AccountID
	}
	s.accounts[account.AccountID] = account
	return cloneAccount(account), nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]entities.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		items = append(items, cloneAccount(account))
	}
	sortNewestFirst(items)
	return items, nil
}

func (s *Store) ListAccountsByRole(ctx context.Context, role entities.Role) ([]entities.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Account, 0)
	for _, account := range s.accounts {
		if account.Role == role {
			items = append(items, cloneAccount(account))
		}
	}
	sortNewestFirst(items)
	return items, nil
}

func (s *Store) NewID(ctx context.Context) (string, error) {
	return s.nextID("acct"), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) nextID(prefix string) string {
	n := atomic.AddUint64(&s.sequence, 1)
	return fmt.Sprintf("%s_%d", prefix, n)
}

func sortNewestFirst(items []entities.Account) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].AccountID > items[j].AccountID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func cloneAccount(in entities.Account) entities.Account {
	out := in
	if in.PreviousStatus != nil {
		previous := *in.PreviousStatus
		out.PreviousStatus = &previous
	}
	return out
}

var _ ports.Repository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
