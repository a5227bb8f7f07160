package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/pior/mpd"
	"github.com/pior/mpd/proto"
)

// simpleCommand builds a command that runs fetch with the app timeout and
// prints its result.
func simpleCommand(use, short string, fetch func(ctx context.Context, c *mpd.Conn) (any, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := app.withTimeout(cmd.Context())
			defer cancel()

			result, err := fetch(ctx, app.conn)
			if err != nil {
				return err
			}
			return app.printer.Print(result)
		},
	}
}

func statusCommand() *cobra.Command {
	return simpleCommand("status", "Show player status", func(ctx context.Context, c *mpd.Conn) (any, error) {
		return c.Status(ctx)
	})
}

func currentCommand() *cobra.Command {
	return simpleCommand("current", "Show the current song", func(ctx context.Context, c *mpd.Conn) (any, error) {
		return c.CurrentSong(ctx)
	})
}

func queueCommand() *cobra.Command {
	return simpleCommand("queue", "List the queue", func(ctx context.Context, c *mpd.Conn) (any, error) {
		return c.Queue(ctx)
	})
}

func statsCommand() *cobra.Command {
	return simpleCommand("stats", "Show server statistics", func(ctx context.Context, c *mpd.Conn) (any, error) {
		return c.ServerStats(ctx)
	})
}

func decodersCommand() *cobra.Command {
	return simpleCommand("decoders", "List decoder plugins", func(ctx context.Context, c *mpd.Conn) (any, error) {
		return c.Decoders(ctx)
	})
}

func mountsCommand() *cobra.Command {
	return simpleCommand("mounts", "List mounted storages", func(ctx context.Context, c *mpd.Conn) (any, error) {
		return c.Mounts(ctx)
	})
}

func neighborsCommand() *cobra.Command {
	return simpleCommand("neighbors", "List storages found on the network", func(ctx context.Context, c *mpd.Conn) (any, error) {
		return c.Neighbors(ctx)
	})
}

func channelsCommand() *cobra.Command {
	return simpleCommand("channels", "List client-to-client channels", func(ctx context.Context, c *mpd.Conn) (any, error) {
		return c.Channels(ctx)
	})
}

func outputsCommand() *cobra.Command {
	cmd := simpleCommand("outputs", "List audio outputs", func(ctx context.Context, c *mpd.Conn) (any, error) {
		return c.Outputs(ctx)
	})

	toggle := func(use, short string, fn func(*mpd.Conn, context.Context, uint32) error) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.ParseUint(args[0], 10, 32)
				if err != nil {
					return fmt.Errorf("invalid output id %q", args[0])
				}
				app := fromContext(cmd)
				ctx, cancel := app.withTimeout(cmd.Context())
				defer cancel()
				return fn(app.conn, ctx, uint32(id))
			},
		}
	}
	cmd.Args = cobra.NoArgs
	cmd.AddCommand(toggle("enable", "Enable an output", (*mpd.Conn).EnableOutput))
	cmd.AddCommand(toggle("disable", "Disable an output", (*mpd.Conn).DisableOutput))
	return cmd
}

func playlistsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "playlists [name]",
		Short: "List stored playlists, or the songs of one",
		Args:  cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := app.withTimeout(cmd.Context())
			defer cancel()

			var (
				result any
				err    error
			)
			if len(args) == 1 {
				result, err = app.conn.PlaylistSongs(ctx, args[0])
			} else {
				result, err = app.conn.Playlists(ctx)
			}
			if err != nil {
				return err
			}
			return app.printer.Print(result)
		},
	}
}

func sendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "send <channel> <message>",
		Short: "Send a message to a channel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := app.withTimeout(cmd.Context())
			defer cancel()
			return app.conn.SendMessage(ctx, args[0], args[1])
		},
	}
}

func readCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "read <channel>...",
		Short: "Subscribe to channels and print messages as they arrive",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			for _, channel := range args {
				ctx, cancel := app.withTimeout(cmd.Context())
				err := app.conn.Subscribe(ctx, channel)
				cancel()
				if err != nil {
					return err
				}
			}

			return watch(cmd.Context(), app, []mpd.Subsystem{mpd.SubsystemMessage}, func(ctx context.Context, _ []mpd.Subsystem) error {
				msgs, err := app.conn.ReadMessages(ctx)
				if err != nil {
					return err
				}
				return app.printer.Print(msgs)
			})
		},
	}
}

func idleCommand() *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "idle [subsystem]...",
		Short: "Wait for changes in the given subsystems",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			subsystems := lo.Map(args, func(s string, _ int) mpd.Subsystem { return mpd.Subsystem(s) })

			if !follow {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				changed, err := app.conn.Idle(ctx, subsystems...)
				if err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				return app.printer.Print(changed)
			}

			return watch(cmd.Context(), app, subsystems, func(_ context.Context, changed []mpd.Subsystem) error {
				return app.printer.Print(changed)
			})
		},
	}
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "keep waiting until interrupted")

	return cmd
}

// watch runs fn after every idle wakeup until interrupted.
func watch(parent context.Context, app *app, subsystems []mpd.Subsystem, fn func(context.Context, []mpd.Subsystem) error) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	for {
		changed, err := app.conn.Idle(ctx, subsystems...)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return err
		}

		cctx, cancel := app.withTimeout(parent)
		err = fn(cctx, changed)
		cancel()
		if err != nil {
			return err
		}
	}
}

func execCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <command> [arg]...",
		Short: "Run a raw command and print the response pairs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := app.withTimeout(cmd.Context())
			defer cancel()

			rec, err := mpd.Get(ctx, app.conn, mpd.RecordDecoder, args[0], args[1:]...)
			if err != nil {
				return err
			}
			return app.printer.Print(rec)
		},
	}
}

func batchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "batch",
		Short: "Run one command per stdin line as a single command list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cmds []proto.Command
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				fields := strings.Fields(scanner.Text())
				if len(fields) == 0 {
					continue
				}
				cmds = append(cmds, proto.NewCommand(fields[0], fields[1:]...))
			}
			if err := scanner.Err(); err != nil {
				return err
			}

			app := fromContext(cmd)
			ctx, cancel := app.withTimeout(cmd.Context())
			defer cancel()

			records, err := app.conn.ExecBatch(ctx, cmds...)
			if printErr := app.printer.Print(records); printErr != nil {
				return printErr
			}
			return err
		},
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the server protocol version and connection counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fromContext(cmd)
			ctx, cancel := app.withTimeout(cmd.Context())
			defer cancel()
			if err := app.conn.Ping(ctx); err != nil {
				return err
			}

			pterm.Info.Printfln("%s: MPD protocol %s", app.conn.Addr(), app.conn.Version())
			return app.printer.Print(app.conn.Stats())
		},
	}
}
