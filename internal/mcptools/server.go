package mcptools

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewDirectoryMCPServer creates an MCP server with the five user tools
// registered.
func NewDirectoryMCPServer(svc *DirectoryService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "user-directory",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_users",
		Description: "List every user record in insertion order.",
	}, svc.ListUsers)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_user",
		Description: "Fetch a single user record by id.",
	}, svc.GetUser)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_user",
		Description: "Create a user record. The id is assigned by the directory as the largest existing id plus one.",
	}, svc.CreateUser)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_user",
		Description: "Overwrite the name and email of an existing user. The id never changes.",
	}, svc.UpdateUser)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_user",
		Description: "Delete a user record by id.",
	}, svc.DeleteUser)

	return server
}

// Handler returns an HTTP handler serving server over the streamable
// HTTP transport.
func Handler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)
}

// RunMCPServer serves the directory tools on addr until ctx is cancelled,
// then shuts down within shutdownTimeout.
func RunMCPServer(ctx context.Context, svc *DirectoryService, addr string, shutdownTimeout time.Duration) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return Serve(ctx, lis, svc, shutdownTimeout)
}

// Serve is RunMCPServer over an existing listener.
func Serve(ctx context.Context, lis net.Listener, svc *DirectoryService, shutdownTimeout time.Duration) error {
	httpServer := &http.Server{
		Handler: Handler(NewDirectoryMCPServer(svc)),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("mcp shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
