package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/afoley587/coding-challenges-2025/user-directory-api/internal/app"
	"github.com/afoley587/coding-challenges-2025/user-directory-api/internal/config"
)

var (
	// optional explicit config file
	configFile string

	// flag-bound overrides; applied only when set on the command line
	serverFlags = config.Default()
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the user directory server",
	Long:  "Commands related to running the HTTP, gRPC and MCP listeners.",
}

var runServerCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadServerConfig(cmd.Flags())
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := app.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		log.Printf("Using %s storage (seeded: %t)", cfg.Storage, cfg.Seed)
		if err := a.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		log.Printf("Server stopped")
		return nil
	},
}

// loadServerConfig layers flags that were explicitly set over the file
// and environment configuration.
func loadServerConfig(flags *pflag.FlagSet) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.LoadFile(configFile)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return config.Config{}, err
	}

	overrides := map[string]func(){
		"addr":             func() { cfg.GRPCAddr = serverFlags.GRPCAddr },
		"http-addr":        func() { cfg.HTTPAddr = serverFlags.HTTPAddr },
		"mcp-addr":         func() { cfg.MCPAddr = serverFlags.MCPAddr },
		"api-prefix":       func() { cfg.APIPrefix = serverFlags.APIPrefix },
		"env":              func() { cfg.Env = serverFlags.Env },
		"allowed-origins":  func() { cfg.AllowedOrigins = serverFlags.AllowedOrigins },
		"storage":          func() { cfg.Storage = serverFlags.Storage },
		"seed":             func() { cfg.Seed = serverFlags.Seed },
		"redis-address":    func() { cfg.Redis.Addr = serverFlags.Redis.Addr },
		"redis-password":   func() { cfg.Redis.Password = serverFlags.Redis.Password },
		"redis-db":         func() { cfg.Redis.DB = serverFlags.Redis.DB },
		"redis-key":        func() { cfg.Redis.Key = serverFlags.Redis.Key },
		"redis-tls":        func() { cfg.Redis.TLS = serverFlags.Redis.TLS },
		"mtls":             func() { cfg.TLS.MTLS = serverFlags.TLS.MTLS },
		"cert":             func() { cfg.TLS.CertFile = serverFlags.TLS.CertFile },
		"key":              func() { cfg.TLS.KeyFile = serverFlags.TLS.KeyFile },
		"ca":               func() { cfg.TLS.CAFile = serverFlags.TLS.CAFile },
		"shutdown-timeout": func() { cfg.ShutdownTimeout = serverFlags.ShutdownTimeout },
	}
	flags.Visit(func(f *pflag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply()
		}
	})
	return cfg, cfg.Validate()
}

func init() {
	f := runServerCmd.Flags()

	f.StringVarP(&configFile,
		"config", "c", "", "Path to a YAML config file (default: ./userdir.yml if present)")

	f.StringVarP(&serverFlags.GRPCAddr,
		"addr", "a", serverFlags.GRPCAddr, "gRPC address to listen on (empty disables gRPC)")

	f.StringVar(&serverFlags.HTTPAddr,
		"http-addr", serverFlags.HTTPAddr, "HTTP address to listen on (empty disables HTTP)")

	f.StringVar(&serverFlags.MCPAddr,
		"mcp-addr", serverFlags.MCPAddr, "MCP streamable HTTP address (empty disables MCP)")

	f.StringVar(&serverFlags.APIPrefix,
		"api-prefix", serverFlags.APIPrefix, "Path prefix for HTTP routes, e.g. /api")

	f.StringVar(&serverFlags.Env,
		"env", serverFlags.Env, "Environment name reported by the status endpoint")

	f.StringSliceVar(&serverFlags.AllowedOrigins,
		"allowed-origins", serverFlags.AllowedOrigins, "Origins allowed by CORS")

	f.StringVarP(&serverFlags.Storage,
		"storage", "s", serverFlags.Storage, "Storage backend: memory or redis")

	f.BoolVar(&serverFlags.Seed,
		"seed", serverFlags.Seed, "Seed the directory with the default users")

	f.StringVarP(&serverFlags.Redis.Addr,
		"redis-address", "r", serverFlags.Redis.Addr, "Redis address")

	f.StringVarP(&serverFlags.Redis.Password,
		"redis-password", "p", "", "Redis password")

	f.IntVar(&serverFlags.Redis.DB,
		"redis-db", 0, "Redis database number")

	f.StringVar(&serverFlags.Redis.Key,
		"redis-key", serverFlags.Redis.Key, "Redis key holding the directory")

	f.BoolVar(&serverFlags.Redis.TLS,
		"redis-tls", false, "Connect to Redis over TLS")

	f.BoolVar(&serverFlags.TLS.MTLS,
		"mtls", false, "Enable mutual TLS on gRPC (requires --cert, --key, --ca)")

	f.StringVar(&serverFlags.TLS.CertFile,
		"cert", "", "Path to server certificate (PEM)")

	f.StringVar(&serverFlags.TLS.KeyFile,
		"key", "", "Path to server private key (PEM)")

	f.StringVar(&serverFlags.TLS.CAFile,
		"ca", "", "Path to CA certificate for verifying client certificates (PEM)")

	f.DurationVar(&serverFlags.ShutdownTimeout,
		"shutdown-timeout", serverFlags.ShutdownTimeout, "Graceful shutdown timeout")

	serverCmd.AddCommand(runServerCmd)
	rootCmd.AddCommand(serverCmd)
}
