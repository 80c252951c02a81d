// Package rpc holds the wire contract of the UserDirectory gRPC
// service.  Messages are plain Go structs encoded with the JSON codec
// registered in codec.go.
package rpc

import (
	"github.com/afoley587/coding-challenges-2025/user-directory-api/internal/directory"
)

// User is the wire form of a directory record.
type User = directory.User

// GetUserRequest selects a record by id.
type GetUserRequest struct {
	Id int32 `json:"id"`
}

// CreateUserRequest carries the fields of a new record.  A nil User is
// rejected with InvalidArgument.
type CreateUserRequest struct {
	User *User `json:"user"`
}

// UpdateUserRequest overwrites name and email of the record with Id.
type UpdateUserRequest struct {
	Id   int32 `json:"id"`
	User *User `json:"user"`
}

// DeleteUserRequest removes the record with Id.
type DeleteUserRequest struct {
	Id int32 `json:"id"`
}
