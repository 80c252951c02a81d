package app

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/afoley587/coding-challenges-2025/user-directory-api/internal/config"
	"github.com/afoley587/coding-challenges-2025/user-directory-api/internal/directory"
	"github.com/afoley587/coding-challenges-2025/user-directory-api/internal/httpapi"
	"github.com/afoley587/coding-challenges-2025/user-directory-api/internal/mcptools"
	"github.com/afoley587/coding-challenges-2025/user-directory-api/internal/server"
)

// App owns the directory for the lifetime of the process and hands it
// to every transport.
type App struct {
	Config    config.Config
	Directory directory.Directory
	Router    http.Handler

	closer func() error
}

// New builds the directory selected by cfg and the HTTP router over it.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	var seed []directory.User
	if cfg.Seed {
		seed = directory.DefaultUsers()
	}

	a := &App{Config: cfg, closer: func() error { return nil }}
	switch cfg.Storage {
	case config.StorageRedis:
		rd, err := directory.NewRedisDirectory(ctx, redisOptions(cfg.Redis), seed)
		if err != nil {
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}
		a.Directory = rd
		a.closer = rd.Close
	default:
		a.Directory = directory.NewInMemoryDirectory(seed)
	}

	a.Router = httpapi.New(a.Directory, httpapi.Options{
		Prefix:         cfg.APIPrefix,
		Environment:    cfg.Env,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	return a, nil
}

func redisOptions(rc config.RedisConfig) directory.RedisOptions {
	opts := directory.RedisOptions{
		Addr:     rc.Addr,
		Password: rc.Password,
		DB:       rc.DB,
		Key:      rc.Key,
	}
	if rc.TLS {
		host, _, err := net.SplitHostPort(rc.Addr)
		if err != nil {
			host = rc.Addr
		}
		opts.TLS = &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}
	}
	return opts
}

// Close releases backend connections.
func (a *App) Close() error {
	return a.closer()
}

// Run serves every configured listener until ctx is cancelled or one of
// them fails, then shuts the others down within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	var grpcServer *grpc.Server
	if a.Config.GRPCAddr != "" {
		var opts []grpc.ServerOption
		if a.Config.TLS.MTLS {
			creds, err := server.LoadMTLS(a.Config.TLS.CertFile, a.Config.TLS.KeyFile, a.Config.TLS.CAFile)
			if err != nil {
				return err
			}
			opts = append(opts, grpc.Creds(creds))
		}
		grpcServer = server.New(a.Directory, opts...)
	}

	g, gctx := errgroup.WithContext(ctx)

	if a.Config.HTTPAddr != "" {
		httpServer := &http.Server{Addr: a.Config.HTTPAddr, Handler: a.Router}
		g.Go(func() error {
			log.Printf("Starting HTTP server on %s", a.Config.HTTPAddr)
			return serveHTTP(gctx, httpServer, a.Config.ShutdownTimeout)
		})
	}

	if grpcServer != nil {
		g.Go(func() error {
			if a.Config.TLS.MTLS {
				log.Printf("Starting gRPC server with mTLS on %s", a.Config.GRPCAddr)
			} else {
				log.Printf("Starting insecure gRPC server on %s", a.Config.GRPCAddr)
			}
			return server.Serve(gctx, a.Config.GRPCAddr, grpcServer)
		})
	}

	if a.Config.MCPAddr != "" {
		svc := mcptools.NewDirectoryService(a.Directory)
		g.Go(func() error {
			log.Printf("Starting MCP server on %s", a.Config.MCPAddr)
			return mcptools.RunMCPServer(gctx, svc, a.Config.MCPAddr, a.Config.ShutdownTimeout)
		})
	}

	return g.Wait()
}

func serveHTTP(ctx context.Context, srv *http.Server, timeout time.Duration) error {
	lis, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
