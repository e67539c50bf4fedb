package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/relengar/shopping-list-server/internal/domain"
	"github.com/relengar/shopping-list-server/internal/repository"
)

// In-memory repository fakes. They honor the same sentinel error contract as
// the postgres implementations.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]domain.User
	// forced errors per method, nil means behave normally
	failCreate error
	failDelete error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	for _, u := range r.users {
		if u.Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failDelete != nil {
		return r.failDelete
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) Search(_ context.Context, params repository.UserSearchParams) ([]domain.UserSearchRow, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var rows []domain.UserSearchRow
	for _, u := range r.users {
		if u.ID == params.RequesterID {
			continue
		}
		if params.Username != "" && !strings.Contains(strings.ToLower(u.Username), strings.ToLower(params.Username)) {
			continue
		}
		rows = append(rows, domain.UserSearchRow{ID: u.ID, Username: u.Username})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Username < rows[j].Username })

	total := len(rows)
	if params.Offset >= len(rows) {
		return nil, total, nil
	}
	rows = rows[params.Offset:]
	if params.Limit < len(rows) {
		rows = rows[:params.Limit]
	}
	return rows, total, nil
}

type fakeListRepo struct {
	mu     sync.Mutex
	lists  map[uuid.UUID]domain.ShoppingList
	shares *fakeShareRepo
}

func newFakeListRepo(shares *fakeShareRepo) *fakeListRepo {
	return &fakeListRepo{lists: map[uuid.UUID]domain.ShoppingList{}, shares: shares}
}

func (r *fakeListRepo) Create(_ context.Context, list *domain.ShoppingList) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists[list.ID] = *list
	return nil
}

func (r *fakeListRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.ShoppingList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lists[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &l, nil
}

func (r *fakeListRepo) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.ShoppingList, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var lists []domain.ShoppingList
	for _, l := range r.lists {
		if l.OwnerID == userID || r.shares.exists(l.ID, userID) {
			lists = append(lists, l)
		}
	}
	sort.Slice(lists, func(i, j int) bool { return lists[i].Title < lists[j].Title })

	total := len(lists)
	if offset >= len(lists) {
		return nil, total, nil
	}
	lists = lists[offset:]
	if limit < len(lists) {
		lists = lists[:limit]
	}
	return lists, total, nil
}

func (r *fakeListRepo) Update(_ context.Context, list *domain.ShoppingList) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lists[list.ID]; !ok {
		return repository.ErrNotFound
	}
	r.lists[list.ID] = *list
	return nil
}

func (r *fakeListRepo) DeleteWithItems(_ context.Context, listID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lists, listID)
	r.shares.deleteByList(listID)
	return nil
}

func (r *fakeListRepo) IsOwner(_ context.Context, listID, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lists[listID]
	return ok && l.OwnerID == userID, nil
}

func (r *fakeListRepo) HasAccess(_ context.Context, listID, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lists[listID]
	if ok && l.OwnerID == userID {
		return true, nil
	}
	return r.shares.exists(listID, userID), nil
}

type shareKey struct {
	listID uuid.UUID
	userID uuid.UUID
}

type fakeShareRepo struct {
	mu     sync.Mutex
	grants map[shareKey]struct{}
}

func newFakeShareRepo() *fakeShareRepo {
	return &fakeShareRepo{grants: map[shareKey]struct{}{}}
}

func (r *fakeShareRepo) exists(listID, userID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.grants[shareKey{listID, userID}]
	return ok
}

func (r *fakeShareRepo) deleteByList(listID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.grants {
		if k.listID == listID {
			delete(r.grants, k)
		}
	}
}

func (r *fakeShareRepo) Create(_ context.Context, listID, targetUserID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := shareKey{listID, targetUserID}
	if _, ok := r.grants[key]; ok {
		return repository.ErrDuplicate
	}
	r.grants[key] = struct{}{}
	return nil
}

func (r *fakeShareRepo) Delete(_ context.Context, listID, targetUserID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.grants, shareKey{listID, targetUserID})
	return nil
}

func (r *fakeShareRepo) Exists(_ context.Context, listID, targetUserID uuid.UUID) (bool, error) {
	return r.exists(listID, targetUserID), nil
}

func (r *fakeShareRepo) ListByList(_ context.Context, listID uuid.UUID) ([]domain.ShareGrant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var grants []domain.ShareGrant
	for k := range r.grants {
		if k.listID == listID {
			grants = append(grants, domain.ShareGrant{ShoppingListID: k.listID, TargetUserID: k.userID})
		}
	}
	return grants, nil
}

type fakeItemRepo struct {
	mu         sync.Mutex
	items      map[uuid.UUID]domain.Item
	failCreate map[string]error // keyed by item name
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[uuid.UUID]domain.Item{}, failCreate: map[string]error{}}
}

func (r *fakeItemRepo) Create(_ context.Context, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.failCreate[item.Name]; ok {
		return err
	}
	r.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &it, nil
}

func (r *fakeItemRepo) ListByList(_ context.Context, listID uuid.UUID, limit, offset int) ([]domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []domain.Item
	for _, it := range r.items {
		if it.ShoppingListID == listID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	if offset >= len(items) {
		return nil, nil
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return repository.ErrNotFound
	}
	r.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

// recordingSender captures share notifications instead of sending them.
type recordingSender struct {
	mu   sync.Mutex
	sent []string // recipient addresses
	err  error
}

func (s *recordingSender) SendListShared(_ context.Context, to, _, _, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, to)
	return nil
}

func (s *recordingSender) recipients() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}
