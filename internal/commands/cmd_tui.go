package commands

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/margin/internal/assistant"
	"github.com/colonyops/margin/internal/core/annotate"
	"github.com/colonyops/margin/internal/core/document"
	"github.com/colonyops/margin/internal/stores"
	"github.com/colonyops/margin/internal/tui"
)

type TuiCmd struct {
	flags *Flags
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, c *cli.Command) error {
	doc, err := cmd.pickDocument(c.Args().First())
	if err != nil {
		return err
	}

	store, err := cmd.restoreSession(ctx, doc)
	if err != nil {
		return err
	}

	var streamer assistant.Streamer
	if argv := cmd.flags.Config.Assistant.Command; len(argv) > 0 {
		streamer = assistant.NewCommandStreamer(argv)
	}

	model := tui.New(tui.Deps{
		Config:   cmd.flags.Config,
		Store:    store,
		Doc:      doc,
		Streamer: streamer,
		Sessions: cmd.flags.Sessions,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.StartWatching(p.Send)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// pickDocument loads the document at path, or falls back to the most recently
// modified document matching the configured globs under the current directory.
func (cmd *TuiCmd) pickDocument(path string) (document.Document, error) {
	if path != "" {
		return document.Load(path)
	}

	docs, err := document.Discover(".", cmd.flags.Config.Documents.Globs)
	if err != nil {
		return document.Document{}, fmt.Errorf("discover documents: %w", err)
	}
	if len(docs) == 0 {
		return document.Document{}, errors.New("no documents found; pass a path or adjust documents.globs")
	}

	return document.Load(docs[0].Path)
}

// restoreSession seeds the engine state, loading a prior session for the
// document when one exists. A saved session whose content hash no longer
// matches still restores; stale ranges degrade at render time instead of
// discarding the user's annotations.
func (cmd *TuiCmd) restoreSession(ctx context.Context, doc document.Document) (*annotate.Store, error) {
	sess, snap, err := cmd.flags.Sessions.Load(ctx, doc.Path)
	switch {
	case errors.Is(err, stores.ErrSessionNotFound):
		store := annotate.NewStore()
		store.Dispatch(annotate.SetContent{Content: doc.Content})
		return store, nil
	case err != nil:
		return nil, fmt.Errorf("restore session: %w", err)
	}

	if sess.ContentHash != doc.Hash() {
		log.Info().Str("session", sess.ID).Msg("document changed since last save; annotations may have drifted")
	}

	store := annotate.NewStoreFrom(snap)
	store.Dispatch(annotate.SetContent{Content: doc.Content})
	return store, nil
}
