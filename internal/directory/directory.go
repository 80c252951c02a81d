package directory

import (
	"context"
	"errors"
	"fmt"
)

// User is a single directory record.  The ID is assigned by the
// directory on creation and never changes afterwards.
type User struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

var (
	// ErrNotFound is matched by every error returned for an id that is
	// not present in the directory.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidInput is returned by Create when the candidate record is
	// missing or incomplete.
	ErrInvalidInput = errors.New("invalid user data")
)

// NotFoundError reports the id that could not be found.  It matches
// ErrNotFound under errors.Is.
type NotFoundError struct {
	ID int32
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("User with ID %d not found.", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidInputError carries a client-facing reason for a rejected
// candidate.  It matches ErrInvalidInput under errors.Is.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Reason
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Directory defines the contract for a registry of user records.
//
// Implementations may use different backends (in-memory by default,
// Redis when configured).  Transports depend on this abstraction rather
// than on a concrete backend.
//
// All methods accept a context for cancellation and deadlines.  Records
// are returned by value, so callers can never mutate stored state
// directly.
type Directory interface {
	// List returns every record in insertion order.
	List(ctx context.Context) ([]User, error)
	// Get returns the record identified by id or a *NotFoundError.
	Get(ctx context.Context, id int32) (User, error)
	// Create stores candidate under a new id (the largest existing id
	// plus one, or 1 when empty).  Any id set on candidate is ignored.
	// A nil candidate or an empty name or email yields ErrInvalidInput.
	Create(ctx context.Context, candidate *User) (User, error)
	// Update overwrites the name and email of the record identified by
	// id.  The id itself is never changed.
	Update(ctx context.Context, id int32, patch User) (User, error)
	// Delete removes the record identified by id.
	Delete(ctx context.Context, id int32) error
}

// validateCandidate enforces the required fields for a new record.
func validateCandidate(candidate *User) error {
	if candidate == nil {
		return &InvalidInputError{Reason: "User data is required."}
	}
	if candidate.Name == "" || candidate.Email == "" {
		return &InvalidInputError{Reason: "Name and email are required."}
	}
	return nil
}

// nextID implements max-plus-one assignment over users.
func nextID(users []User) int32 {
	var highest int32
	for _, u := range users {
		if u.ID > highest {
			highest = u.ID
		}
	}
	return highest + 1
}

// indexOf returns the slice position of id or -1.
func indexOf(users []User, id int32) int {
	for i, u := range users {
		if u.ID == id {
			return i
		}
	}
	return -1
}
