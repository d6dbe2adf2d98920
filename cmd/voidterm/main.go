// Command voidterm runs a shell inside the emulator core. The run
// command attaches the calling terminal to a PTY-backed session and
// mirrors output while maintaining a parsed screen model; the snapshot
// command replays a captured byte stream and prints the final screen.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/deep60/VoidCLI/internal/config"
	"github.com/deep60/VoidCLI/internal/logging"
	"github.com/deep60/VoidCLI/internal/terminal"
	"github.com/deep60/VoidCLI/internal/vt"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	app := buildApp()
	if err := app.Run(context.Background(), args); err != nil {
		var exitErr *exitCodeError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintln(os.Stderr, "voidterm:", err)
		return 1
	}
	return 0
}

// exitCodeError propagates a child exit code through cli.Run without
// printing an error line.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string { return fmt.Sprintf("exit code %d", e.code) }

func buildApp() *cli.Command {
	return &cli.Command{
		Name:    "voidterm",
		Usage:   "terminal emulator core: PTY session plus ANSI screen model",
		Version: version,
		Commands: []*cli.Command{
			buildRunCommand(),
			buildSnapshotCommand(),
		},
	}
}

func buildRunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "start a shell on a PTY and attach the current terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to a YAML config file"},
			&cli.StringFlag{Name: "command", Aliases: []string{"c"}, Usage: "command line to run instead of the login shell"},
			&cli.StringFlag{Name: "dir", Usage: "working directory for the child"},
			&cli.IntFlag{Name: "cols", Usage: "initial columns (0 = inherit)"},
			&cli.IntFlag{Name: "rows", Usage: "initial rows (0 = inherit)"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn, or error"},
			&cli.StringFlag{Name: "log-sink", Usage: "stderr, file, or none"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			closeLog, err := logging.Init(cfg.Logging, logging.InitOptions{App: "voidterm", Version: version})
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()
			return runShell(ctx, cfg)
		},
	}
}

func buildSnapshotCommand() *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "replay an ANSI byte stream from stdin and print the final screen",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "cols", Value: 80, Usage: "screen columns"},
			&cli.IntFlag{Name: "rows", Value: 24, Usage: "screen rows"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runSnapshot(cmd.Writer, os.Stdin, cmd.Int("cols"), cmd.Int("rows"))
		},
	}
}

func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if v := cmd.String("command"); v != "" {
		cfg.Command = v
	}
	if v := cmd.String("dir"); v != "" {
		cfg.Dir = v
	}
	if v := cmd.Int("cols"); v > 0 {
		cfg.Cols = v
	}
	if v := cmd.Int("rows"); v > 0 {
		cfg.Rows = v
	}
	cfg.Logging = logging.Merge(cfg.Logging, logFlagOverrides(cmd.String("log-level"), cmd.String("log-sink")))
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// logFlagOverrides lifts the logging flags into a sparse config so the
// file config keeps any fields the flags leave unset.
func logFlagOverrides(level, sink string) logging.Config {
	var override logging.Config
	if level != "" {
		override.Level = &level
	}
	if sink != "" {
		override.Sink = &sink
	}
	return override
}

// runShell attaches the process's controlling terminal to a child on a
// PTY. Output bytes are mirrored to stdout and fed through the parser
// so the screen model tracks what the user sees.
func runShell(ctx context.Context, cfg config.Config) error {
	cols, rows := cfg.Cols, cfg.Rows
	stdinFD := int(os.Stdin.Fd())
	interactive := term.IsTerminal(stdinFD)
	if interactive {
		if w, h, err := term.GetSize(stdinFD); err == nil && w > 0 && h > 0 {
			cols, rows = w, h
		}
	}

	name, args, err := cfg.CommandArgs()
	if err != nil {
		return err
	}
	tm, err := terminal.New(terminal.Options{
		Command: name,
		Args:    args,
		Dir:     cfg.Dir,
		Env:     cfg.EnvList(),
		Cols:    cols,
		Rows:    rows,
	})
	if err != nil {
		return err
	}
	defer func() { _ = tm.Close() }()

	screen := vt.NewScreen(cols, rows)
	if cfg.Scrollback != 0 {
		screen.SetMaxScrollback(max(cfg.Scrollback, 0))
	}
	parser := vt.NewParser()

	restore := func() {}
	if interactive {
		oldState, err := term.MakeRaw(stdinFD)
		if err != nil {
			return fmt.Errorf("raw mode: %w", err)
		}
		restore = func() { _ = term.Restore(stdinFD, oldState) }
		defer restore()
	}

	// Forward stdin to the child. The goroutine exits when the session
	// closes and Write starts failing.
	go forwardInput(tm, os.Stdin)

	winch := make(chan os.Signal, 1)
	notifyResize(winch)
	defer signal.Stop(winch)

	exitCode := 0
loop:
	for {
		select {
		case <-ctx.Done():
			_ = tm.Kill()
			return ctx.Err()
		case <-winch:
			if w, h, err := term.GetSize(stdinFD); err == nil && w > 0 && h > 0 {
				_ = tm.Resize(w, h)
			}
		case ev, ok := <-tm.Events():
			if !ok {
				break loop
			}
			switch ev := ev.(type) {
			case terminal.OutputEvent:
				for _, action := range parser.Parse(ev.Data) {
					screen.Apply(action)
				}
				if _, err := os.Stdout.Write(ev.Data); err != nil {
					slog.Warn("stdout write failed", "err", err)
				}
			case terminal.ResizeEvent:
				screen.Resize(ev.Cols, ev.Rows)
			case terminal.ExitEvent:
				exitCode = ev.Code
				if exitCode < 0 {
					exitCode = 1
				}
				break loop
			case terminal.ErrorEvent:
				slog.Error("session error", "err", ev.Err)
			}
		}
	}

	restore()
	fmt.Printf("\n[%s exited %d]\n", screen.Title(), exitCode)
	if exitCode != 0 {
		return &exitCodeError{code: exitCode}
	}
	return nil
}

func forwardInput(tm *terminal.Terminal, r io.Reader) {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if werr := tm.Write(buf[:n]); werr != nil {
				return
			}
		}
		if err != nil {
			return
		}
	}
}

func runSnapshot(w io.Writer, r io.Reader, cols, rows int) error {
	if w == nil {
		w = os.Stdout
	}
	screen := vt.NewScreen(cols, rows)
	parser := vt.NewParser()

	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			for _, action := range parser.Parse(buf[:n]) {
				screen.Apply(action)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("read stream: %w", err)
		}
	}

	if title := screen.Title(); title != "" {
		fmt.Fprintf(w, "title: %s\n", title)
	}
	row, col := screen.CursorPosition()
	fmt.Fprintf(w, "cursor: %d,%d\n\n", row, col)
	fmt.Fprintln(w, screen.String())
	return nil
}
