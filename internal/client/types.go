package client

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"github.com/afoley587/coding-challenges-2025/user-directory-api/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

type DialConfig struct {
	Address    string
	Insecure   bool
	RootCA     string // optional root CA cert
	ClientCert string // optional client cert (mTLS)
	ClientKey  string // optional client key (mTLS)
}

type GRPCClient struct {
	conn *grpc.ClientConn
	api  rpc.UserDirectoryClient
}

func (c *GRPCClient) Close() {
	c.conn.Close()
}

func NewClient(cfg DialConfig) (*GRPCClient, error) {
	conn, err := dial(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to dial server: %w", err)
	}
	return &GRPCClient{conn: conn, api: rpc.NewUserDirectoryClient(conn)}, nil
}

func dial(cfg DialConfig) (*grpc.ClientConn, error) {
	creds, err := transportCredentials(cfg)
	if err != nil {
		return nil, err
	}
	return grpc.NewClient(cfg.Address, grpc.WithTransportCredentials(creds))
}

// transportCredentials picks plaintext, server-verified TLS or mutual
// TLS depending on which files are configured.
func transportCredentials(cfg DialConfig) (credentials.TransportCredentials, error) {
	if cfg.Insecure {
		return insecure.NewCredentials(), nil
	}
	tlsCfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if cfg.RootCA != "" {
		caPEM, err := os.ReadFile(cfg.RootCA)
		if err != nil {
			return nil, fmt.Errorf("read root CA: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caPEM) {
			return nil, fmt.Errorf("no certificates found in %s", cfg.RootCA)
		}
		tlsCfg.RootCAs = pool
	}
	if cfg.ClientCert != "" || cfg.ClientKey != "" {
		if cfg.ClientCert == "" || cfg.ClientKey == "" {
			return nil, fmt.Errorf("both client cert and key are required for mTLS")
		}
		cert, err := tls.LoadX509KeyPair(cfg.ClientCert, cfg.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("load client key pair: %w", err)
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}
	return credentials.NewTLS(tlsCfg), nil
}
