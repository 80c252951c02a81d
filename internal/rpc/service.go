package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "userdirectory.v1.UserDirectory"

// Full method names.
const (
	ListUsersMethod  = "/" + ServiceName + "/ListUsers"
	GetUserMethod    = "/" + ServiceName + "/GetUser"
	CreateUserMethod = "/" + ServiceName + "/CreateUser"
	UpdateUserMethod = "/" + ServiceName + "/UpdateUser"
	DeleteUserMethod = "/" + ServiceName + "/DeleteUser"
)

// UserDirectoryServer is the server API for the UserDirectory service.
// Implementations must embed UnimplementedUserDirectoryServer.
type UserDirectoryServer interface {
	ListUsers(*emptypb.Empty, grpc.ServerStreamingServer[User]) error
	GetUser(context.Context, *GetUserRequest) (*User, error)
	CreateUser(context.Context, *CreateUserRequest) (*User, error)
	UpdateUser(context.Context, *UpdateUserRequest) (*User, error)
	DeleteUser(context.Context, *DeleteUserRequest) (*emptypb.Empty, error)
	mustEmbedUnimplementedUserDirectoryServer()
}

// UnimplementedUserDirectoryServer answers every method with
// codes.Unimplemented.
type UnimplementedUserDirectoryServer struct{}

func (UnimplementedUserDirectoryServer) ListUsers(*emptypb.Empty, grpc.ServerStreamingServer[User]) error {
	return status.Error(codes.Unimplemented, "method ListUsers not implemented")
}
func (UnimplementedUserDirectoryServer) GetUser(context.Context, *GetUserRequest) (*User, error) {
	return nil, status.Error(codes.Unimplemented, "method GetUser not implemented")
}
func (UnimplementedUserDirectoryServer) CreateUser(context.Context, *CreateUserRequest) (*User, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateUser not implemented")
}
func (UnimplementedUserDirectoryServer) UpdateUser(context.Context, *UpdateUserRequest) (*User, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateUser not implemented")
}
func (UnimplementedUserDirectoryServer) DeleteUser(context.Context, *DeleteUserRequest) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteUser not implemented")
}
func (UnimplementedUserDirectoryServer) mustEmbedUnimplementedUserDirectoryServer() {}

// RegisterUserDirectoryServer registers srv on s.
func RegisterUserDirectoryServer(s grpc.ServiceRegistrar, srv UserDirectoryServer) {
	s.RegisterService(&UserDirectory_ServiceDesc, srv)
}

func unaryHandler[Req any](method string, call func(UserDirectoryServer, context.Context, *Req) (any, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(UserDirectoryServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(UserDirectoryServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func listUsersHandler(srv any, stream grpc.ServerStream) error {
	m := new(emptypb.Empty)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(UserDirectoryServer).ListUsers(m, &grpc.GenericServerStream[emptypb.Empty, User]{ServerStream: stream})
}

// UserDirectory_ServiceDesc describes the UserDirectory service for
// grpc.ServiceRegistrar.
var UserDirectory_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UserDirectoryServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetUser",
			Handler: unaryHandler(GetUserMethod, func(s UserDirectoryServer, ctx context.Context, in *GetUserRequest) (any, error) {
				return s.GetUser(ctx, in)
			}),
		},
		{
			MethodName: "CreateUser",
			Handler: unaryHandler(CreateUserMethod, func(s UserDirectoryServer, ctx context.Context, in *CreateUserRequest) (any, error) {
				return s.CreateUser(ctx, in)
			}),
		},
		{
			MethodName: "UpdateUser",
			Handler: unaryHandler(UpdateUserMethod, func(s UserDirectoryServer, ctx context.Context, in *UpdateUserRequest) (any, error) {
				return s.UpdateUser(ctx, in)
			}),
		},
		{
			MethodName: "DeleteUser",
			Handler: unaryHandler(DeleteUserMethod, func(s UserDirectoryServer, ctx context.Context, in *DeleteUserRequest) (any, error) {
				return s.DeleteUser(ctx, in)
			}),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "ListUsers",
			Handler:       listUsersHandler,
			ServerStreams: true,
		},
	},
	Metadata: "userdirectory/v1/userdirectory.proto",
}

// UserDirectoryClient is the client API for the UserDirectory service.
type UserDirectoryClient interface {
	ListUsers(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (grpc.ServerStreamingClient[User], error)
	GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*User, error)
	CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*User, error)
	UpdateUser(ctx context.Context, in *UpdateUserRequest, opts ...grpc.CallOption) (*User, error)
	DeleteUser(ctx context.Context, in *DeleteUserRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type userDirectoryClient struct {
	cc grpc.ClientConnInterface
}

// NewUserDirectoryClient returns a client that always requests the JSON
// codec registered by this package.
func NewUserDirectoryClient(cc grpc.ClientConnInterface) UserDirectoryClient {
	return &userDirectoryClient{cc: cc}
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func (c *userDirectoryClient) ListUsers(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (grpc.ServerStreamingClient[User], error) {
	stream, err := c.cc.NewStream(ctx, &UserDirectory_ServiceDesc.Streams[0], ListUsersMethod, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[emptypb.Empty, User]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *userDirectoryClient) GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*User, error) {
	out := new(User)
	if err := c.cc.Invoke(ctx, GetUserMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userDirectoryClient) CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*User, error) {
	out := new(User)
	if err := c.cc.Invoke(ctx, CreateUserMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userDirectoryClient) UpdateUser(ctx context.Context, in *UpdateUserRequest, opts ...grpc.CallOption) (*User, error) {
	out := new(User)
	if err := c.cc.Invoke(ctx, UpdateUserMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *userDirectoryClient) DeleteUser(ctx context.Context, in *DeleteUserRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, DeleteUserMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}
