package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/margin/internal/core/annotate"
	"github.com/colonyops/margin/pkg/iojson"
)

type CiteCmd struct {
	flags *Flags

	// flags
	file       string
	jsonOutput bool
}

// NewCiteCmd creates a new cite command
func NewCiteCmd(flags *Flags) *CiteCmd {
	return &CiteCmd{flags: flags}
}

// Register adds the cite command to the application
func (cmd *CiteCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "cite",
		Usage:     "Extract citation markers from assistant-style text",
		UsageText: "margin cite [--file path] [--json]",
		Description: `Reads text containing [start:end] citation markers from stdin (or --file)
and prints the extracted citations plus the cleaned display text.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to text file (reads from stdin if not provided)",
				Destination: &cmd.file,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// citeResult is the JSON output format for margin cite --json.
type citeResult struct {
	Display   string              `json:"display"`
	Citations []annotate.Citation `json:"citations"`
}

func (cmd *CiteCmd) run(ctx context.Context, c *cli.Command) error {
	raw, err := cmd.readInput()
	if err != nil {
		return err
	}

	result := citeResult{
		Display:   annotate.DisplayText(raw),
		Citations: annotate.ExtractCitations(raw),
	}
	if result.Citations == nil {
		result.Citations = []annotate.Citation{}
	}

	out := c.Root().Writer

	if cmd.jsonOutput || !term.IsTerminal(int(os.Stdout.Fd())) {
		return iojson.WriteWith(out, os.Stderr, result)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "N\tSTART\tEND")
	for i, cit := range result.Citations {
		_, _ = fmt.Fprintf(w, "%d\t%d\t%d\n", i+1, cit.Start, cit.End)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, result.Display)
	return nil
}

func (cmd *CiteCmd) readInput() (string, error) {
	var reader io.Reader

	if cmd.file != "" {
		f, err := os.Open(cmd.file)
		if err != nil {
			return "", fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	} else {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return "", fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe text input")
		}
		reader = os.Stdin
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}
