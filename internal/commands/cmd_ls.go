package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/margin/internal/core/document"
	"github.com/colonyops/margin/pkg/iojson"
)

type LsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List reviewable documents under a directory",
		UsageText: "margin ls [dir] [--json]",
		Description: `Walks the directory (default .) and lists files matching the configured
documents.globs patterns, newest first. The first entry is what 'margin'
opens when run without a path.`,
		Flags: []cli.Flag{
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

// docInfo is the JSON output format for margin ls --json.
type docInfo struct {
	Path     string `json:"path"`
	RelPath  string `json:"rel_path"`
	Modified string `json:"modified"`
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	root := c.Args().First()
	if root == "" {
		root = "."
	}

	docs, err := document.Discover(root, cmd.flags.Config.Documents.Globs)
	if err != nil {
		return fmt.Errorf("discover documents: %w", err)
	}

	if len(docs) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No documents found\n")
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		infos := make([]docInfo, 0, len(docs))
		for _, d := range docs {
			infos = append(infos, docInfo{
				Path:     d.Path,
				RelPath:  d.RelPath,
				Modified: d.ModTime.Format("2006-01-02T15:04:05Z07:00"),
			})
		}
		return iojson.WriteWith(out, os.Stderr, infos)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DOCUMENT\tMODIFIED")
	for _, d := range docs {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", d.RelPath, d.ModTime.Format("2006-01-02 15:04"))
	}
	_ = w.Flush()

	return nil
}
