package server

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/afoley587/coding-challenges-2025/user-directory-api/internal/directory"
	"github.com/afoley587/coding-challenges-2025/user-directory-api/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

// New builds a gRPC server exposing dir.  Pass nil opts for an insecure
// server or grpc.Creds(...) to enable TLS.
func New(dir directory.Directory, opts ...grpc.ServerOption) *grpc.Server {
	grpcServer := grpc.NewServer(opts...)
	rpc.RegisterUserDirectoryServer(grpcServer, NewGRPCServer(dir))
	return grpcServer
}

// Serve listens on addr and serves grpcServer until ctx is cancelled,
// then stops gracefully.
func Serve(ctx context.Context, addr string, grpcServer *grpc.Server) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			grpcServer.GracefulStop()
		case <-stopped:
		}
	}()
	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// LoadMTLS builds server credentials that require and verify client
// certificates.
func LoadMTLS(certFile, keyFile, caFile string) (credentials.TransportCredentials, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("load server key pair: %w", err)
	}
	caPEM, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("read client CA: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return nil, fmt.Errorf("no certificates found in %s", caFile)
	}
	return credentials.NewTLS(&tls.Config{
		Certificates: []tls.Certificate{cert},
		ClientAuth:   tls.RequireAndVerifyClientCert,
		ClientCAs:    pool,
		MinVersion:   tls.VersionTLS12,
	}), nil
}
