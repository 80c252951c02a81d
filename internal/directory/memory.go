package directory

import (
	"context"
	"sync"
)

// InMemoryDirectory is an implementation of Directory backed by an
// ordered slice.  It is safe for concurrent use: a single lock covers
// every mutation together with the id scan it depends on.  Data stored
// here is not persisted beyond the lifetime of the process.
type InMemoryDirectory struct {
	mu    sync.RWMutex
	users []User
}

// NewInMemoryDirectory constructs a directory holding a copy of seed.
// Pass DefaultUsers() for the standard startup records or nil for an
// empty directory.
func NewInMemoryDirectory(seed []User) *InMemoryDirectory {
	users := make([]User, len(seed))
	copy(users, seed)
	return &InMemoryDirectory{users: users}
}

// List returns a snapshot of all records in insertion order.
func (d *InMemoryDirectory) List(ctx context.Context) ([]User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	users := make([]User, len(d.users))
	copy(users, d.users)
	return users, nil
}

// Get retrieves a record by id.
func (d *InMemoryDirectory) Get(ctx context.Context, id int32) (User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if i := indexOf(d.users, id); i >= 0 {
		return d.users[i], nil
	}
	return User{}, &NotFoundError{ID: id}
}

// Create appends candidate under the next max-plus-one id.  The
// candidate itself is not retained.
func (d *InMemoryDirectory) Create(ctx context.Context, candidate *User) (User, error) {
	if err := validateCandidate(candidate); err != nil {
		return User{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	user := User{
		ID:    nextID(d.users),
		Name:  candidate.Name,
		Email: candidate.Email,
	}
	d.users = append(d.users, user)
	return user, nil
}

// Update overwrites name and email of an existing record in place.
func (d *InMemoryDirectory) Update(ctx context.Context, id int32, patch User) (User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := indexOf(d.users, id)
	if i < 0 {
		return User{}, &NotFoundError{ID: id}
	}
	d.users[i].Name = patch.Name
	d.users[i].Email = patch.Email
	return d.users[i], nil
}

// Delete removes a record, preserving the order of the rest.
func (d *InMemoryDirectory) Delete(ctx context.Context, id int32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := indexOf(d.users, id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}
	d.users = append(d.users[:i], d.users[i+1:]...)
	return nil
}
