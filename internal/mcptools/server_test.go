package mcptools

import (
	"context"
	"encoding/json"
	"net"
	"sort"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afoley587/coding-challenges-2025/user-directory-api/internal/directory"
)

// setupServerClient wires an MCP server and client together using
// in-memory transports over a freshly seeded directory.
func setupServerClient(t *testing.T) *mcp.ClientSession {
	t.Helper()

	svc := NewDirectoryService(directory.NewInMemoryDirectory(directory.DefaultUsers()))
	server := NewDirectoryMCPServer(svc)

	st, ct := mcp.NewInMemoryTransports()
	ctx := context.Background()

	_, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		session.Close()
	})
	return session
}

// callTool invokes name and decodes its structured output into out.
func callTool(t *testing.T, session *mcp.ClientSession, name string, args any, out any) *mcp.CallToolResult {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	if out != nil && !result.IsError {
		require.NotNil(t, result.StructuredContent)
		raw, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out))
	}
	return result
}

func toolErrorText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.True(t, result.IsError)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func TestMCPListTools(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		names[i] = tool.Name
	}
	sort.Strings(names)
	assert.Equal(t, []string{"create_user", "delete_user", "get_user", "list_users", "update_user"}, names)
}

func TestMCPUserLifecycle(t *testing.T) {
	session := setupServerClient(t)

	var list ListUsersOutput
	callTool(t, session, "list_users", map[string]any{}, &list)
	assert.Len(t, list.Users, 5)

	var created UserOutput
	result := callTool(t, session, "create_user", CreateUserInput{Name: "X", Email: "x@x.com"}, &created)
	require.False(t, result.IsError)
	assert.Equal(t, directory.User{ID: 6, Name: "X", Email: "x@x.com"}, created.User)

	var updated UserOutput
	callTool(t, session, "update_user", UpdateUserInput{ID: 6, Name: "Y", Email: "y@y.com"}, &updated)
	assert.Equal(t, directory.User{ID: 6, Name: "Y", Email: "y@y.com"}, updated.User)

	var got UserOutput
	callTool(t, session, "get_user", GetUserInput{ID: 6}, &got)
	assert.Equal(t, updated.User, got.User)

	var deleted DeleteUserOutput
	callTool(t, session, "delete_user", DeleteUserInput{ID: 6}, &deleted)
	assert.Equal(t, int32(6), deleted.Deleted)

	result = callTool(t, session, "get_user", GetUserInput{ID: 6}, nil)
	assert.Equal(t, "User with ID 6 not found.", toolErrorText(t, result))
}

func TestMCPCreateUserRejectsEmptyFields(t *testing.T) {
	session := setupServerClient(t)

	result := callTool(t, session, "create_user", CreateUserInput{Name: "X"}, nil)
	assert.Equal(t, "Name and email are required.", toolErrorText(t, result))
}

// TestServeOverHTTPStopsOnCancel talks to the tools over streamable HTTP
// and checks that cancelling the context shuts the listener down cleanly.
func TestServeOverHTTPStopsOnCancel(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	svc := NewDirectoryService(directory.NewInMemoryDirectory(directory.DefaultUsers()))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, lis, svc, 2*time.Second)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint:             "http://" + lis.Addr().String(),
		DisableStandaloneSSE: true,
	}, nil)
	require.NoError(t, err)

	var out ListUsersOutput
	result := callTool(t, session, "list_users", map[string]any{}, &out)
	assert.False(t, result.IsError)
	assert.Len(t, out.Users, 5)
	require.NoError(t, session.Close())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServeReportsListenerFailure(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, lis.Close())

	svc := NewDirectoryService(directory.NewInMemoryDirectory(nil))
	err = Serve(context.Background(), lis, svc, time.Second)
	assert.Error(t, err)
}
