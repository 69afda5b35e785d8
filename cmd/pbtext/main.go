// pbtext copies stdin to the macOS clipboard and pastes it back out.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/tinyrange/clip"
	"golang.org/x/term"
)

// clipboard is the part of *clip.Context the commands use.
type clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

func main() {
	if err := run(); err != nil {
		if errors.Is(err, clip.ErrNoTextContent) {
			fmt.Fprintf(os.Stderr, "pbtext: clipboard holds no text\n")
		} else {
			fmt.Fprintf(os.Stderr, "pbtext: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	configPath := fs.String("config", "", "Config file (default: <user config dir>/pbtext/config.yml)")
	verbose := fs.Bool("v", false, "Enable debug logging")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <command> [command flags]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  copy    Copy stdin to the clipboard\n")
		fmt.Fprintf(os.Stderr, "  paste   Write the clipboard text to stdout\n")
		fmt.Fprintf(os.Stderr, "  soak    Round-trip text through the clipboard and report memory growth\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	level, err := cfg.level()
	if err != nil {
		return err
	}
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	args := fs.Args()
	if len(args) < 1 {
		fs.Usage()
		return fmt.Errorf("command required")
	}

	cb, err := clip.New()
	if err != nil {
		return err
	}
	defer cb.Close()

	switch args[0] {
	case "copy":
		return runCopy(cb, cfg, args[1:], os.Stdin)
	case "paste":
		return runPaste(cb, args[1:], os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
	case "soak":
		return runSoak(cb, cfg, args[1:], os.Stdout, os.Stderr)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runCopy(cb clipboard, cfg Config, args []string, stdin io.Reader) error {
	fs := flag.NewFlagSet("copy", flag.ContinueOnError)
	stripANSI := fs.Bool("strip-ansi", cfg.StripANSI, "Remove ANSI escape sequences")
	trim := fs.Bool("trim", cfg.TrimNewline, "Drop one trailing newline")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	text := string(data)
	if *stripANSI {
		text = ansi.Strip(text)
	}
	if *trim {
		text = trimNewline(text)
	}

	slog.Debug("copying", "bytes", len(text))
	return cb.WriteText(text)
}

func trimNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		s = strings.TrimSuffix(s, "\n")
		s = strings.TrimSuffix(s, "\r")
	}
	return s
}

func runPaste(cb clipboard, args []string, stdout io.Writer, tty bool) error {
	fs := flag.NewFlagSet("paste", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	text, err := cb.ReadText()
	if err != nil {
		return err
	}
	if tty && text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err = io.WriteString(stdout, text)
	return err
}
