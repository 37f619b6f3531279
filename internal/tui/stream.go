package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/margin/internal/assistant"
)

// streamChunkMsg carries one chunk of the in-flight assistant reply.
type streamChunkMsg struct {
	chunk string
}

// streamDoneMsg marks the end of a reply stream. err is non-nil when the
// stream failed partway; the text received before the failure is still
// committed to the transcript.
type streamDoneMsg struct {
	err error
}

// startStream opens the reply stream and returns the command reading its
// first chunk. The stream handle lives on the model so later reads and
// teardown can reach it.
func (m *Model) startStream(prompt string) tea.Cmd {
	state := m.store.State()

	req := assistant.Request{
		Document:   state.Content,
		Transcript: state.Messages,
		Prompt:     prompt,
		Tools:      assistant.ToolsFor(state.Content),
	}

	ctx, cancel := context.WithCancel(context.Background())
	stream, err := m.streamer.Stream(ctx, req)
	if err != nil {
		cancel()
		return func() tea.Msg { return streamDoneMsg{err: err} }
	}

	m.stream = stream
	m.cancelStream = cancel
	m.pending = ""

	return readNext(stream)
}

// readNext pulls the next chunk off the stream.
func readNext(stream assistant.RawStream) tea.Cmd {
	return func() tea.Msg {
		chunk, done, err := stream.Next()
		if err != nil {
			return streamDoneMsg{err: err}
		}
		if done {
			return streamDoneMsg{}
		}
		return streamChunkMsg{chunk: chunk}
	}
}

// closeStream tears down the current stream, if any.
func (m *Model) closeStream() {
	if m.cancelStream != nil {
		m.cancelStream()
		m.cancelStream = nil
	}
	if m.stream != nil {
		if err := m.stream.Close(); err != nil {
			log.Debug().Err(err).Msg("closing assistant stream")
		}
		m.stream = nil
	}
}
