package mcptools

import (
	"github.com/afoley587/coding-challenges-2025/user-directory-api/internal/directory"
)

// ListUsersInput takes no arguments.
type ListUsersInput struct{}

// ListUsersOutput holds every record in insertion order.
type ListUsersOutput struct {
	Users []directory.User `json:"users"`
}

// GetUserInput is the input for the get_user tool.
type GetUserInput struct {
	ID int32 `json:"id" jsonschema:"id of the user to fetch"`
}

// CreateUserInput is the input for the create_user tool.
type CreateUserInput struct {
	Name  string `json:"name" jsonschema:"display name of the new user"`
	Email string `json:"email" jsonschema:"email address of the new user"`
}

// UpdateUserInput is the input for the update_user tool.
type UpdateUserInput struct {
	ID    int32  `json:"id" jsonschema:"id of the user to update"`
	Name  string `json:"name" jsonschema:"new display name"`
	Email string `json:"email" jsonschema:"new email address"`
}

// DeleteUserInput is the input for the delete_user tool.
type DeleteUserInput struct {
	ID int32 `json:"id" jsonschema:"id of the user to delete"`
}

// UserOutput wraps a single record.
type UserOutput struct {
	User directory.User `json:"user"`
}

// DeleteUserOutput reports the removed id.
type DeleteUserOutput struct {
	Deleted int32 `json:"deleted"`
}
