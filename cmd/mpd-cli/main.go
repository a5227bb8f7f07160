package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/pior/mpd"
	"github.com/pior/mpd/proto"
)

type app struct {
	conn    *mpd.Conn
	printer Printer
	timeout time.Duration
}

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		pterm.Error.Println(err)
		os.Exit(exitCode(err))
	}
}

// session holds the connection opened for the running subcommand.
type session struct {
	conn *mpd.Conn
}

func (s *session) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// run executes the command line. The connection is closed whether the
// subcommand succeeded or not: cobra skips post-run hooks after a failure.
func run(ctx context.Context, args []string) error {
	var s session
	defer s.Close()

	root := newRootCommand(&s)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCommand(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:           "mpd-cli",
		Short:         "Music Player Daemon command line client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var (
		configFile string
		host       string
		port       string
		password   string
		timeout    time.Duration
		jsonOut    bool
		noColor    bool
		logLevel   string
		logFormat  string
		breaker    bool
	)

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default $XDG_CONFIG_HOME/mpd-cli/config.toml)")
	root.PersistentFlags().StringVarP(&host, "host", "H", "", "MPD host (env MPD_HOST)")
	root.PersistentFlags().StringVarP(&port, "port", "p", "", "MPD port (env MPD_PORT)")
	root.PersistentFlags().StringVar(&password, "password", "", "MPD password")
	root.PersistentFlags().DurationVarP(&timeout, "timeout", "t", 0, "command timeout (default 5s)")
	root.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output json")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable color")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")
	root.PersistentFlags().BoolVar(&breaker, "circuit-breaker", false, "fail fast after repeated connection failures")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if noColor {
			pterm.DisableColor()
		}

		logCfg := LogConfig{
			Level:  resolve(logLevel, "MPD_LOG_LEVEL", cfg.Log.Level, "warn"),
			Format: resolve(logFormat, "MPD_LOG_FORMAT", cfg.Log.Format, "text"),
		}

		if timeout == 0 {
			timeout = cfg.Timeout.Duration
		}
		if timeout == 0 {
			timeout = 5 * time.Second
		}

		addr := net.JoinHostPort(
			resolve(host, "MPD_HOST", cfg.Host, "localhost"),
			resolve(port, "MPD_PORT", cfg.Port, "6600"),
		)

		config := mpd.Config{
			Timeout:  timeout,
			Password: resolve(password, "MPD_PASSWORD", cfg.Password, ""),
			Logger:   newLogger(logCfg),
		}
		if breaker {
			config.NewCircuitBreaker = mpd.NewCircuitBreakerConfig(1, time.Minute, 10*time.Second)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		conn, err := mpd.Dial(ctx, "tcp", addr, config)
		if err != nil {
			return err
		}

		var printer Printer = HumanPrinter{}
		if jsonOut {
			printer = JSONPrinter{}
		}

		s.conn = conn
		cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, &app{
			conn:    conn,
			printer: printer,
			timeout: timeout,
		}))
		return nil
	}

	root.AddCommand(statusCommand())
	root.AddCommand(currentCommand())
	root.AddCommand(queueCommand())
	root.AddCommand(outputsCommand())
	root.AddCommand(statsCommand())
	root.AddCommand(playlistsCommand())
	root.AddCommand(decodersCommand())
	root.AddCommand(mountsCommand())
	root.AddCommand(neighborsCommand())
	root.AddCommand(channelsCommand())
	root.AddCommand(sendCommand())
	root.AddCommand(readCommand())
	root.AddCommand(idleCommand())
	root.AddCommand(execCommand())
	root.AddCommand(batchCommand())
	root.AddCommand(versionCommand())

	return root
}

type appKey struct{}

func fromContext(cmd *cobra.Command) *app {
	val := cmd.Context().Value(appKey{})
	if val == nil {
		return nil
	}
	return val.(*app)
}

func (a *app) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.timeout)
}

// exitCode maps server rejections to 2 and every other failure to 1.
func exitCode(err error) int {
	var ack *proto.AckError
	if errors.As(err, &ack) {
		return 2
	}
	return 1
}
