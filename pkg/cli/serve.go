package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/getreqd/reqd/pkg/admin"
	"github.com/getreqd/reqd/pkg/config"
	"github.com/getreqd/reqd/pkg/logging"
	"github.com/getreqd/reqd/pkg/secrets"
	"github.com/getreqd/reqd/pkg/store"
	"github.com/spf13/cobra"
)

// serveFlagVals is the package-level instance bound to cobra flags.
var serveFlagVals serveFlags

// serveFlags holds all parsed command-line flags for the serve command.
type serveFlags struct {
	port       int
	configFile string
	dataDir    string
	secret     string

	logLevel  string
	logFormat string

	execTimeout int
	corsOrigins []string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reqd server (foreground)",
	Long: `Start the reqd API server. Workspaces, folders, request definitions,
and variables are persisted to the data directory; variable values are
encrypted with a key derived from the configured secret.

Without an encryption secret the server still starts, but variable endpoints
and workspace-scoped substitution report a configuration error until one is
set via --secret, the config file, or the REQD_ENCRYPTION_SECRET environment
variable.`,
	Example: `  # Start with defaults
  reqd serve

  # Custom port and data directory
  reqd serve --port 3000 --data-dir ~/reqd-data

  # Provide the encryption secret via environment
  REQD_ENCRYPTION_SECRET=change-me-please-now reqd serve

  # Bound outbound calls to 30 seconds
  reqd serve --execute-timeout 30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, &serveFlagVals)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	f := &serveFlagVals

	serveCmd.Flags().IntVarP(&f.port, "port", "p", 0, "API server port (default from config, then 4380)")
	serveCmd.Flags().StringVarP(&f.configFile, "config", "c", "reqd.yaml", "Path to configuration file")
	serveCmd.Flags().StringVar(&f.dataDir, "data-dir", "", "Data directory for persistent storage")
	serveCmd.Flags().StringVar(&f.secret, "secret", "", "Variable encryption secret (prefer REQD_ENCRYPTION_SECRET)")

	serveCmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&f.logFormat, "log-format", "", "Log format (text, json)")

	serveCmd.Flags().IntVar(&f.execTimeout, "execute-timeout", 0, "Outbound request timeout in seconds (0 = unbounded)")
	serveCmd.Flags().StringSliceVar(&f.corsOrigins, "cors-origins", nil, "CORS allowed origins (default: all)")
}

// runServe loads configuration, builds the API, and blocks until a shutdown
// signal arrives. Flags explicitly set on the command line win over the
// config file.
func runServe(cmd *cobra.Command, f *serveFlags) error {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return err
	}
	applyServeFlags(cmd, f, cfg)

	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: logging.ParseFormat(cfg.Log.Format),
	})

	// Open the store here so a corrupt or unreadable data file refuses
	// startup instead of serving an empty state over it.
	dataStore := store.NewFileStore(cfg.DataDir, log)
	if err := dataStore.Open(context.Background()); err != nil {
		return fmt.Errorf("open data store: %w", err)
	}

	opts := []admin.Option{
		admin.WithLogger(log),
		admin.WithVersion(Version),
		admin.WithStore(dataStore),
	}
	if d := cfg.ExecuteTimeout(); d > 0 {
		opts = append(opts, admin.WithExecuteTimeout(d))
	}
	if len(cfg.CORS.AllowedOrigins) > 0 {
		cors := admin.DefaultCORSConfig()
		cors.AllowedOrigins = cfg.CORS.AllowedOrigins
		opts = append(opts, admin.WithCORS(cors))
	}

	if secret := cfg.ResolveSecret(); secret != "" {
		if err := config.ValidateSecret(secret); err != nil {
			return err
		}
		codec, err := secrets.Shared(secret)
		if err != nil {
			return fmt.Errorf("initialize encryption: %w", err)
		}
		opts = append(opts, admin.WithCodec(codec))
	} else {
		log.Warn("no encryption secret configured; variable endpoints will be unavailable")
	}

	api := admin.New(cfg.Port, opts...)
	if err := api.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	fmt.Printf("reqd server started\n\n")
	fmt.Printf("  API: http://localhost:%d\n\n", cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	fmt.Println("\nShutting down...")

	if err := api.Stop(); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	fmt.Println("Server stopped")
	return nil
}

// applyServeFlags overlays command-line flags onto the loaded config.
// Only flags the user actually changed are applied.
func applyServeFlags(cmd *cobra.Command, f *serveFlags, cfg *config.Config) {
	if cmd.Flags().Changed("port") {
		cfg.Port = f.port
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = f.dataDir
	}
	if cmd.Flags().Changed("secret") {
		cfg.Encryption.Secret = f.secret
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
	if cmd.Flags().Changed("execute-timeout") {
		cfg.Execute.TimeoutSeconds = f.execTimeout
	}
	if cmd.Flags().Changed("cors-origins") {
		cfg.CORS.AllowedOrigins = f.corsOrigins
	}
}
