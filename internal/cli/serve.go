package cli

import (
	"context"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	httpserver "github.com/njchilds90/hyperreal/internal/server"
	"github.com/njchilds90/hyperreal/mcptool"
)

// EnvPrefix prefixes the environment variables read by serve, e.g.
// HYPERREAL_ADDR and HYPERREAL_MODE.
const EnvPrefix = "HYPERREAL"

// Serve modes.
const (
	ModeHTTP     = "http"
	ModeMCPHTTP  = "mcp-http"
	ModeMCPStdio = "mcp-stdio"
)

var validModes = []string{ModeHTTP, ModeMCPHTTP, ModeMCPStdio}

// ServeConfig is the resolved configuration of the serve command.
type ServeConfig struct {
	Mode string `mapstructure:"mode" json:"mode" yaml:"mode"`
	Addr string `mapstructure:"addr" json:"addr" yaml:"addr"`
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tools over HTTP or MCP",
		Long: `Serve the parse, evaluate, newton and integrate tools.

The server can run in three modes:
- http: JSON tool server with /tool, /schema, /health and /metrics
- mcp-http: MCP streamable HTTP server at /mcp
- mcp-stdio: MCP over standard input/output

Flags may also be set with HYPERREAL_MODE and HYPERREAL_ADDR.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd.OutOrStdout())
			cfg, err := resolveServeConfig(cmd)
			if err != nil {
				return f.fail(ExitCommandError, ErrCodeArgs, err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if err := runServe(ctx, cfg, rootOpts.Log); err != nil {
				return f.fail(ExitFailure, ErrCodeServe, errors.WithMessage(err, "error running server"))
			}
			return nil
		},
	}
	cmd.Flags().String("mode", ModeHTTP, "server mode (http|mcp-http|mcp-stdio)")
	cmd.Flags().String("addr", ":8080", "listen address for the http modes")
	return cmd
}

// resolveServeConfig merges flags with HYPERREAL_* environment variables.
// Flags set on the command line win.
func resolveServeConfig(cmd *cobra.Command) (ServeConfig, error) {
	vip := viper.New()
	vip.SetEnvPrefix(EnvPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vip.AutomaticEnv()
	if err := vip.BindPFlags(cmd.Flags()); err != nil {
		return ServeConfig{}, errors.Wrap(err, "bind flags")
	}

	var cfg ServeConfig
	if err := vip.Unmarshal(&cfg); err != nil {
		return ServeConfig{}, errors.Wrap(err, "decode configuration")
	}
	for _, m := range validModes {
		if cfg.Mode == m {
			return cfg, nil
		}
	}
	return ServeConfig{}, errors.Errorf("invalid mode %q: must be one of %v", cfg.Mode, validModes)
}

func newMCPServer(log *logrus.Logger) *server.MCPServer {
	hooks := &server.Hooks{}
	hooks.AddOnRegisterSession(func(ctx context.Context, session server.ClientSession) {
		log.WithField("session_id", session.SessionID()).Info("MCP client session registered")
	})
	hooks.AddOnUnregisterSession(func(ctx context.Context, session server.ClientSession) {
		log.WithField("session_id", session.SessionID()).Info("MCP client session unregistered")
	})

	s := server.NewMCPServer(
		"hyperreal",
		"0.1.0",
		server.WithToolCapabilities(false),
		server.WithLogging(),
		server.WithRecovery(),
		server.WithHooks(hooks),
	)
	mcptool.Register(s)
	return s
}

func runServe(ctx context.Context, cfg ServeConfig, log *logrus.Logger) error {
	log.WithFields(logrus.Fields{"mode": cfg.Mode, "address": cfg.Addr}).Info("Initializing server")

	switch cfg.Mode {
	case ModeHTTP:
		return httpserver.New(httpserver.Config{Addr: cfg.Addr}, log).ListenAndServe(ctx)

	case ModeMCPStdio:
		errChan := make(chan error, 1)
		go func() {
			errChan <- server.ServeStdio(newMCPServer(log))
		}()
		select {
		case err := <-errChan:
			return err
		case <-ctx.Done():
			log.Info("Shutting down stdio server")
			return nil
		}

	case ModeMCPHTTP:
		httpServer := server.NewStreamableHTTPServer(newMCPServer(log))
		log.WithField("endpoint", "http://localhost"+cfg.Addr+"/mcp").Info("MCP server will be available at endpoint")
		errChan := make(chan error, 1)
		go func() {
			errChan <- httpServer.Start(cfg.Addr)
		}()
		select {
		case err := <-errChan:
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return errors.Wrap(err, "graceful shutdown")
			}
			log.Info("MCP HTTP server shutdown completed")
			return nil
		}
	}
	return errors.Errorf("unsupported mode: %s", cfg.Mode)
}
