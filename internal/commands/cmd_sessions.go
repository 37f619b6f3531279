package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/margin/internal/core/annotate"
	"github.com/colonyops/margin/internal/stores"
	"github.com/colonyops/margin/pkg/iojson"
)

type SessionsCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewSessionsCmd creates a new sessions command
func NewSessionsCmd(flags *Flags) *SessionsCmd {
	return &SessionsCmd{flags: flags}
}

// Register adds the sessions command group to the application
func (cmd *SessionsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "sessions",
		Usage:     "Manage persisted annotation sessions",
		UsageText: "margin sessions <list|export|rm> [args]",
		Commands: []*cli.Command{
			{
				Name:      "list",
				Usage:     "List saved sessions",
				UsageText: "margin sessions list [--json]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.runList,
			},
			{
				Name:      "export",
				Usage:     "Print a session's snapshot as JSON",
				UsageText: "margin sessions export <session-id>",
				Action:    cmd.runExport,
			},
			{
				Name:      "rm",
				Usage:     "Delete a saved session",
				UsageText: "margin sessions rm <session-id>",
				Action:    cmd.runRemove,
			},
		},
	})

	return app
}

// sessionInfo is the JSON output format for margin sessions list --json.
type sessionInfo struct {
	ID          string `json:"id"`
	Document    string `json:"document"`
	ContentHash string `json:"content_hash"`
	UpdatedAt   string `json:"updated_at"`
}

func (cmd *SessionsCmd) runList(ctx context.Context, c *cli.Command) error {
	sessions, err := cmd.flags.Sessions.List(ctx)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	if len(sessions) == 0 {
		if !cmd.jsonOutput {
			fmt.Fprintf(os.Stderr, "No sessions found\n")
		}
		return nil
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		infos := make([]sessionInfo, 0, len(sessions))
		for _, s := range sessions {
			infos = append(infos, sessionInfo{
				ID:          s.ID,
				Document:    s.DocumentPath,
				ContentHash: s.ContentHash,
				UpdatedAt:   s.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
			})
		}
		return iojson.WriteWith(out, os.Stderr, infos)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tDOCUMENT\tUPDATED")
	for _, s := range sessions {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.DocumentPath, s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	_ = w.Flush()

	return nil
}

// sessionExport is the JSON output format for margin sessions export.
type sessionExport struct {
	ID          string            `json:"id"`
	Document    string            `json:"document"`
	ContentHash string            `json:"content_hash"`
	Snapshot    annotate.Snapshot `json:"snapshot"`
}

func (cmd *SessionsCmd) runExport(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("session id required")
	}

	sess, snap, err := cmd.flags.Sessions.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("export session: %w", err)
	}

	return iojson.WriteWith(c.Root().Writer, os.Stderr, sessionExport{
		ID:          sess.ID,
		Document:    sess.DocumentPath,
		ContentHash: sess.ContentHash,
		Snapshot:    snap,
	})
}

func (cmd *SessionsCmd) runRemove(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("session id required")
	}

	if _, _, err := cmd.flags.Sessions.Get(ctx, id); err != nil {
		if err == stores.ErrSessionNotFound {
			return fmt.Errorf("no session with id %q", id)
		}
		return err
	}

	return cmd.flags.Sessions.Delete(ctx, id)
}
