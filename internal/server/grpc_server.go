package server

import (
	"context"
	"errors"
	"log"

	"github.com/afoley587/coding-challenges-2025/user-directory-api/internal/directory"
	"github.com/afoley587/coding-challenges-2025/user-directory-api/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// grpcServer implements the UserDirectory service by delegating
// operations to a Directory.  It contains no storage logic of its own.
//
// Use NewGRPCServer to construct an instance.
type grpcServer struct {
	rpc.UnimplementedUserDirectoryServer
	dir directory.Directory
}

// NewGRPCServer constructs a gRPC service implementation backed by the
// provided directory.
func NewGRPCServer(dir directory.Directory) rpc.UserDirectoryServer {
	return &grpcServer{dir: dir}
}

// ListUsers streams all users to the client in insertion order.  If no
// users exist, the stream is closed without sending any messages.
func (s *grpcServer) ListUsers(_ *emptypb.Empty, stream grpc.ServerStreamingServer[rpc.User]) error {
	users, err := s.dir.List(stream.Context())
	if err != nil {
		return toStatus("list users", err)
	}
	for i := range users {
		if err := stream.Send(&users[i]); err != nil {
			return err
		}
	}
	return nil
}

// GetUser returns a single user identified by id.  If the user is not
// found, a NotFound status code is returned.
func (s *grpcServer) GetUser(ctx context.Context, req *rpc.GetUserRequest) (*rpc.User, error) {
	user, err := s.dir.Get(ctx, req.Id)
	if err != nil {
		return nil, toStatus("get user", err)
	}
	return &user, nil
}

// CreateUser stores a new user.  Name and email are required; a
// missing user or empty field yields InvalidArgument.
func (s *grpcServer) CreateUser(ctx context.Context, req *rpc.CreateUserRequest) (*rpc.User, error) {
	user, err := s.dir.Create(ctx, req.User)
	if err != nil {
		return nil, toStatus("create user", err)
	}
	return &user, nil
}

// UpdateUser overwrites name and email of an existing user.
func (s *grpcServer) UpdateUser(ctx context.Context, req *rpc.UpdateUserRequest) (*rpc.User, error) {
	if req.User == nil {
		return nil, status.Error(codes.InvalidArgument, "User data is required.")
	}
	user, err := s.dir.Update(ctx, req.Id, *req.User)
	if err != nil {
		return nil, toStatus("update user", err)
	}
	return &user, nil
}

// DeleteUser removes a user.
func (s *grpcServer) DeleteUser(ctx context.Context, req *rpc.DeleteUserRequest) (*emptypb.Empty, error) {
	if err := s.dir.Delete(ctx, req.Id); err != nil {
		return nil, toStatus("delete user", err)
	}
	return &emptypb.Empty{}, nil
}

// toStatus maps directory errors onto gRPC status codes.
func toStatus(op string, err error) error {
	switch {
	case errors.Is(err, directory.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, directory.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		log.Printf("%s failed: %v", op, err)
		return status.Errorf(codes.Internal, "%s failed", op)
	}
}
