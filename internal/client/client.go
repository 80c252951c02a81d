package client

import (
	"context"
	"errors"
	"io"

	"github.com/afoley587/coding-challenges-2025/user-directory-api/internal/rpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// ListUsers drains the ListUsers stream into a slice.
func (c *GRPCClient) ListUsers(ctx context.Context) ([]rpc.User, error) {
	stream, err := c.api.ListUsers(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, err
	}
	var users []rpc.User
	for {
		user, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return users, nil
		}
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
}

// GetUser returns the user with id, or (nil, nil) when the server
// reports NotFound.
func (c *GRPCClient) GetUser(ctx context.Context, id int32) (*rpc.User, error) {
	user, err := c.api.GetUser(ctx, &rpc.GetUserRequest{Id: id})
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	return user, err
}

func (c *GRPCClient) CreateUser(ctx context.Context, name, email string) (*rpc.User, error) {
	return c.api.CreateUser(ctx, &rpc.CreateUserRequest{
		User: &rpc.User{Name: name, Email: email},
	})
}

func (c *GRPCClient) UpdateUser(ctx context.Context, id int32, name, email string) (*rpc.User, error) {
	return c.api.UpdateUser(ctx, &rpc.UpdateUserRequest{
		Id:   id,
		User: &rpc.User{Name: name, Email: email},
	})
}

func (c *GRPCClient) DeleteUser(ctx context.Context, id int32) error {
	_, err := c.api.DeleteUser(ctx, &rpc.DeleteUserRequest{Id: id})
	return err
}
