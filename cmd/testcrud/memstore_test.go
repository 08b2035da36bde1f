package main

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"user-crud/internal/model"
	"user-crud/internal/store"
)

// memStore 是測試用的 UserStore，行為與資料庫實作一致：
// email 唯一、未知 id 回 ErrNotFound、updatedAt 嚴格遞增
type memStore struct {
	mu    sync.Mutex
	seq   int
	users map[string]model.User
	clock func() time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users: map[string]model.User{},
		clock: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func (m *memStore) emailTaken(email, except string) bool {
	for id, u := range m.users {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

func (m *memStore) ListUsers(context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) GetUser(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (m *memStore) CreateUser(_ context.Context, u *model.User) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.emailTaken(u.Email, "") {
		return nil, store.ErrDuplicateEmail
	}
	m.seq++
	t := m.clock()
	created := *u
	created.ID = fmt.Sprintf("%024x", m.seq)
	created.CreatedAt = t
	created.UpdatedAt = t
	m.users[created.ID] = created
	return &created, nil
}

func (m *memStore) UpdateUser(_ context.Context, id string, p model.UserPatch) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if p.Email != nil && m.emailTaken(*p.Email, id) {
		return nil, store.ErrDuplicateEmail
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Age != nil {
		u.Age = p.Age
	}
	t := m.clock()
	if min := u.UpdatedAt.Add(time.Millisecond); t.Before(min) {
		t = min
	}
	u.UpdatedAt = t
	m.users[id] = u
	return &u, nil
}

func (m *memStore) DeleteUser(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	delete(m.users, id)
	return &u, nil
}

var _ store.UserStore = (*memStore)(nil)
