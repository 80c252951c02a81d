package mcptools

import (
	"context"

	"github.com/afoley587/coding-challenges-2025/user-directory-api/internal/directory"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DirectoryService adapts a Directory to MCP tool handlers.  Directory
// errors are returned as tool errors and carry the same messages as the
// HTTP API.
type DirectoryService struct {
	dir directory.Directory
}

// NewDirectoryService creates a DirectoryService over dir.
func NewDirectoryService(dir directory.Directory) *DirectoryService {
	return &DirectoryService{dir: dir}
}

func (s *DirectoryService) ListUsers(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListUsersInput,
) (*mcp.CallToolResult, ListUsersOutput, error) {
	users, err := s.dir.List(ctx)
	if err != nil {
		return nil, ListUsersOutput{}, err
	}
	return nil, ListUsersOutput{Users: users}, nil
}

func (s *DirectoryService) GetUser(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetUserInput,
) (*mcp.CallToolResult, UserOutput, error) {
	user, err := s.dir.Get(ctx, input.ID)
	if err != nil {
		return nil, UserOutput{}, err
	}
	return nil, UserOutput{User: user}, nil
}

func (s *DirectoryService) CreateUser(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateUserInput,
) (*mcp.CallToolResult, UserOutput, error) {
	user, err := s.dir.Create(ctx, &directory.User{Name: input.Name, Email: input.Email})
	if err != nil {
		return nil, UserOutput{}, err
	}
	return nil, UserOutput{User: user}, nil
}

func (s *DirectoryService) UpdateUser(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateUserInput,
) (*mcp.CallToolResult, UserOutput, error) {
	user, err := s.dir.Update(ctx, input.ID, directory.User{Name: input.Name, Email: input.Email})
	if err != nil {
		return nil, UserOutput{}, err
	}
	return nil, UserOutput{User: user}, nil
}

func (s *DirectoryService) DeleteUser(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteUserInput,
) (*mcp.CallToolResult, DeleteUserOutput, error) {
	if err := s.dir.Delete(ctx, input.ID); err != nil {
		return nil, DeleteUserOutput{}, err
	}
	return nil, DeleteUserOutput{Deleted: input.ID}, nil
}
