package core

import (
	"context"
	"sync"
	"time"
)

// fakeUserRepo is an in-memory UserRepository for service and router tests.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]UserRecord
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[int64]UserRecord{}}
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (*UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := u
	return &copied, nil
}

func (f *fakeUserRepo) Create(_ context.Context, email, hashedPassword string) (*UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			return nil, ErrEmailTaken
		}
	}
	f.nextID++
	u := UserRecord{
		ID:             f.nextID,
		Email:          email,
		HashedPassword: hashedPassword,
		IsActive:       true,
		CreatedAt:      time.Now(),
	}
	f.byID[u.ID] = u
	copied := u
	return &copied, nil
}

func (f *fakeUserRepo) Update(_ context.Context, id int64, in UserUpdateInput) (*UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if in.Email != nil {
		for otherID, other := range f.byID {
			if otherID != id && other.Email == *in.Email {
				return nil, ErrEmailTaken
			}
		}
		u.Email = *in.Email
	}
	if in.HashedPassword != nil {
		u.HashedPassword = *in.HashedPassword
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	now := time.Now()
	u.UpdatedAt = &now
	f.byID[id] = u
	copied := u
	return &copied, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) (*UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(f.byID, id)
	copied := u
	return &copied, nil
}

func (f *fakeUserRepo) List(_ context.Context, skip, limit int) ([]UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]UserRecord, 0, len(f.byID))
	for id := int64(1); id <= f.nextID; id++ {
		if u, ok := f.byID[id]; ok {
			items = append(items, u)
		}
	}
	if skip >= len(items) {
		return []UserRecord{}, nil
	}
	items = items[skip:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items, nil
}
