// Package tui implements the interactive annotation view: the segmented
// document on the left, the conversation and comment rail on the right.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/margin/internal/assistant"
	"github.com/colonyops/margin/internal/core/annotate"
	"github.com/colonyops/margin/internal/core/config"
	"github.com/colonyops/margin/internal/core/document"
	"github.com/colonyops/margin/internal/core/styles"
	"github.com/colonyops/margin/internal/stores"
	"github.com/colonyops/margin/pkg/randid"
)

// mode is the input mode of the view.
type mode int

const (
	modeNormal mode = iota
	modeChat
	modeComment
	modeSearch
)

// scrollSettledMsg fires after the settle delay following a scroll, clearing
// the one-shot scroll target.
type scrollSettledMsg struct {
	id string
}

// Deps are the collaborators the view needs. Sessions and Streamer may be
// nil; the corresponding features degrade to no-ops with a status notice.
type Deps struct {
	Config   *config.Config
	Store    *annotate.Store
	Doc      document.Document
	Streamer assistant.Streamer
	Sessions *stores.SessionStore
}

// Model is the bubbletea model for the annotation view.
type Model struct {
	cfg      *config.Config
	store    *annotate.Store
	doc      document.Document
	streamer assistant.Streamer
	sessions *stores.SessionStore

	keys       KeyMap
	viewer     Viewer
	transcript Transcript
	chatInput  textinput.Model
	comment    textarea.Model
	search     textinput.Model
	spin       spinner.Model

	mode   mode
	width  int
	height int
	status string

	// in-flight assistant reply
	stream       assistant.RawStream
	cancelStream func()
	pending      string // raw text received so far, markers included

	// search matches over the current content
	matches    []annotate.Citation
	matchIndex int

	stopWatch func()
}

// New builds the annotation view over an already-initialized engine state.
func New(deps Deps) *Model {
	chat := textinput.New()
	chat.Placeholder = "ask the assistant…"
	chat.CharLimit = 2000

	search := textinput.New()
	search.Placeholder = "search…"
	search.Prompt = "/"

	comment := textarea.New()
	comment.Placeholder = "comment…"
	comment.SetHeight(3)

	spin := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Subtle))

	return &Model{
		cfg:        deps.Config,
		store:      deps.Store,
		doc:        deps.Doc,
		streamer:   deps.Streamer,
		sessions:   deps.Sessions,
		keys:       DefaultKeyMap(),
		viewer:     NewViewer(),
		transcript: NewTranscript(),
		chatInput:  chat,
		comment:    comment,
		search:     search,
		spin:       spin,
		matchIndex: -1,
	}
}

// StartWatching attaches the file watcher once the program is running. send
// is the running program's Send.
func (m *Model) StartWatching(send func(tea.Msg)) {
	stop, err := watchFile(m.doc.Path, send)
	if err != nil {
		log.Warn().Err(err).Str("path", m.doc.Path).Msg("file watching disabled")
		return
	}
	m.stopWatch = stop
}

func (m *Model) Init() tea.Cmd {
	m.viewer.Refresh(m.store.State())
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.viewer.Refresh(m.store.State())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case streamChunkMsg:
		m.pending += msg.chunk
		return m, readNext(m.stream)

	case streamDoneMsg:
		return m, m.finishStream(msg.err)

	case fileChangedMsg:
		return m, m.reloadDocument()

	case scrollSettledMsg:
		// Only clear if the target is still the one this tick was armed
		// for; a newer scroll request owns the cursor now.
		if annotate.IsScrollPending(m.store.State(), msg.id) {
			m.dispatch(annotate.SetScrollTarget{})
		}
		return m, nil

	case spinner.TickMsg:
		if !m.store.State().Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeChat:
		return m.handleChatKey(msg)
	case modeComment:
		return m.handleCommentKey(msg)
	case modeSearch:
		return m.handleSearchKey(msg)
	}
	return m.handleNormalKey(msg)
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.store.State()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextHighlight):
		m.viewer.CycleSelection(1)
		m.viewer.Refresh(state)
		return m, nil

	case key.Matches(msg, m.keys.PrevHighlight):
		m.viewer.CycleSelection(-1)
		m.viewer.Refresh(state)
		return m, nil

	case key.Matches(msg, m.keys.ToggleFocus):
		if id := m.viewer.SelectedHighlight(); id != "" {
			m.dispatch(annotate.ToggleFocus(state, id))
		}
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		m.dispatch(annotate.ClearFocus())
		m.status = ""
		return m, nil

	case key.Matches(msg, m.keys.Comment):
		if m.viewer.SelectedHighlight() == "" {
			m.status = "select a highlight to comment on"
			return m, nil
		}
		m.mode = modeComment
		m.comment.Reset()
		return m, m.comment.Focus()

	case key.Matches(msg, m.keys.Delete):
		if id := m.viewer.SelectedHighlight(); id != "" {
			m.dispatch(annotate.RemoveHighlight{ID: id})
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.search.Reset()
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.NextMatch):
		m.cycleMatch(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevMatch):
		m.cycleMatch(-1)
		return m, nil

	case key.Matches(msg, m.keys.AddHighlight):
		return m, m.highlightCurrentMatch()

	case key.Matches(msg, m.keys.Chat):
		m.mode = modeChat
		return m, m.chatInput.Focus()

	case key.Matches(msg, m.keys.Save):
		return m, m.saveSession()
	}

	// Digits activate the numbered citations of the latest assistant reply.
	if len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '9' {
		return m, m.activateCitation(int(msg.Runes[0] - '1'))
	}

	switch msg.String() {
	case "up", "k":
		m.viewer.LineUp(1)
	case "down", "j":
		m.viewer.LineDown(1)
	}
	return m, nil
}

func (m *Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeNormal
		m.chatInput.Blur()
		return m, nil
	case tea.KeyEnter:
		prompt := strings.TrimSpace(m.chatInput.Value())
		m.mode = modeNormal
		m.chatInput.Reset()
		m.chatInput.Blur()
		if prompt == "" {
			return m, nil
		}
		return m, m.sendPrompt(prompt)
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m *Model) handleCommentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeNormal
		m.comment.Blur()
		return m, nil
	case tea.KeyEnter:
		text := strings.TrimSpace(m.comment.Value())
		id := m.viewer.SelectedHighlight()
		m.mode = modeNormal
		m.comment.Blur()
		if text == "" || id == "" {
			return m, nil
		}
		m.dispatch(annotate.AddComment{Comment: annotate.Comment{
			ID:          "cm-" + randid.Generate(8),
			HighlightID: id,
			Text:        text,
			CreatedAt:   time.Now(),
		}})
		return m, nil
	}

	var cmd tea.Cmd
	m.comment, cmd = m.comment.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeNormal
		m.search.Blur()
		m.matches = nil
		m.matchIndex = -1
		m.status = ""
		return m, nil
	case tea.KeyEnter:
		query := m.search.Value()
		m.mode = modeNormal
		m.search.Blur()
		m.runSearch(query)
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// dispatch applies an action and refreshes the viewer from the new state.
func (m *Model) dispatch(a annotate.Action) {
	m.store.Dispatch(a)
	m.viewer.Refresh(m.store.State())
}

// settleScroll reacts to a pending scroll target: scroll the viewport, focus
// the highlight, and arm the settle timer that clears the one-shot target.
// A target the viewer cannot locate stays pending untouched.
func (m *Model) settleScroll() tea.Cmd {
	state := m.store.State()
	id := state.ScrollTo
	if id == "" {
		return nil
	}
	if !m.viewer.ScrollTo(state, id) {
		return nil
	}

	m.dispatch(annotate.SetFocus{ID: id})

	settle := annotate.DefaultScrollSettle
	if m.cfg != nil && m.cfg.TUI.ScrollSettle > 0 {
		settle = m.cfg.TUI.ScrollSettle
	}
	return tea.Tick(settle, func(time.Time) tea.Msg {
		return scrollSettledMsg{id: id}
	})
}

// sendPrompt records the user message and kicks off the assistant stream.
func (m *Model) sendPrompt(prompt string) tea.Cmd {
	if m.streamer == nil {
		m.status = "no assistant command configured"
		return nil
	}
	if m.stream != nil {
		m.status = "assistant is already replying"
		return nil
	}

	cmd := m.startStream(prompt)

	m.dispatch(annotate.AddMessage{Message: annotate.Message{
		ID:        "msg-" + randid.Generate(8),
		Role:      annotate.RoleUser,
		Content:   prompt,
		CreatedAt: time.Now(),
	}})
	m.dispatch(annotate.SetLoading{Loading: true})
	return tea.Batch(cmd, m.spin.Tick)
}

// finishStream commits whatever text arrived to the transcript. On error the
// partial text is kept and the failure is surfaced as its own entry rather
// than discarding the reply.
func (m *Model) finishStream(streamErr error) tea.Cmd {
	m.closeStream()

	raw := m.pending
	m.pending = ""

	if raw != "" {
		m.dispatch(annotate.AddMessage{Message: annotate.Message{
			ID:        "msg-" + randid.Generate(8),
			Role:      annotate.RoleAssistant,
			Content:   annotate.DisplayText(raw),
			Citations: annotate.ExtractCitations(raw),
			CreatedAt: time.Now(),
		}})
	}

	if streamErr != nil {
		log.Error().Err(streamErr).Msg("assistant stream failed")
		m.dispatch(annotate.AddMessage{Message: annotate.Message{
			ID:        "msg-" + randid.Generate(8),
			Role:      annotate.RoleAssistant,
			Content:   "(reply interrupted: " + streamErr.Error() + ")",
			CreatedAt: time.Now(),
		}})
	}

	m.dispatch(annotate.SetLoading{Loading: false})
	return nil
}

// activateCitation turns citation i of the newest assistant reply into a
// highlight (or reuses an existing one) and navigates to it.
func (m *Model) activateCitation(i int) tea.Cmd {
	state := m.store.State()

	var citations []annotate.Citation
	for j := len(state.Messages) - 1; j >= 0; j-- {
		if state.Messages[j].Role == annotate.RoleAssistant {
			citations = state.Messages[j].Citations
			break
		}
	}
	if i < 0 || i >= len(citations) {
		return nil
	}

	color := annotate.DefaultColor
	if m.cfg != nil {
		color = annotate.Color(m.cfg.Assistant.CitationColor)
	}

	_, actions := annotate.ResolveCitation(state, citations[i], color)
	for _, a := range actions {
		m.dispatch(a)
	}
	return m.settleScroll()
}

func (m *Model) runSearch(query string) {
	if query == "" {
		m.matches = nil
		m.matchIndex = -1
		m.status = ""
		return
	}
	m.matches = annotate.FindOccurrences(m.store.State().Content, query)
	if len(m.matches) == 0 {
		m.matchIndex = -1
		m.status = fmt.Sprintf("no matches for %q", query)
		return
	}
	m.matchIndex = 0
	m.showMatch()
}

func (m *Model) cycleMatch(delta int) {
	if len(m.matches) == 0 {
		return
	}
	m.matchIndex = (m.matchIndex + delta + len(m.matches)) % len(m.matches)
	m.showMatch()
}

func (m *Model) showMatch() {
	match := m.matches[m.matchIndex]
	content := m.store.State().Content
	line := strings.Count(content[:min(match.Start, len(content))], "\n")
	m.viewer.viewport.SetYOffset(line)
	m.status = fmt.Sprintf("match %d/%d", m.matchIndex+1, len(m.matches))
}

// highlightCurrentMatch adds a highlight over the active search match.
func (m *Model) highlightCurrentMatch() tea.Cmd {
	if m.matchIndex < 0 || m.matchIndex >= len(m.matches) {
		return nil
	}
	match := m.matches[m.matchIndex]
	id, actions := annotate.ResolveCitation(m.store.State(), match, annotate.DefaultColor)
	for _, a := range actions {
		m.dispatch(a)
	}
	log.Debug().Str("highlight", id).Int("start", match.Start).Int("end", match.End).Msg("highlighted search match")
	return m.settleScroll()
}

func (m *Model) reloadDocument() tea.Cmd {
	content, err := m.doc.Reload()
	if err != nil {
		log.Warn().Err(err).Str("path", m.doc.Path).Msg("reload failed")
		m.status = "reload failed: " + err.Error()
		return nil
	}
	m.dispatch(annotate.SetContent{Content: content})
	m.matches = nil
	m.matchIndex = -1
	m.status = "document reloaded"
	return nil
}

func (m *Model) saveSession() tea.Cmd {
	if m.sessions == nil {
		m.status = "persistence not available"
		return nil
	}
	snap := m.store.State().Snapshot()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := m.sessions.Save(ctx, m.doc.Path, m.doc.Hash(), snap)
	if err != nil {
		log.Error().Err(err).Msg("session save failed")
		m.status = "save failed: " + err.Error()
		return nil
	}
	m.status = "session saved"
	return nil
}

func (m *Model) shutdown() {
	m.closeStream()
	if m.stopWatch != nil {
		m.stopWatch()
		m.stopWatch = nil
	}
}

func (m *Model) layout() {
	docWidth := m.width * 3 / 5
	m.viewer.SetSize(docWidth, m.height-2)
	m.transcript.SetSize(m.width - docWidth - 1)
}

func (m *Model) View() string {
	state := m.store.State()

	docWidth := m.width * 3 / 5
	sideWidth := m.width - docWidth - 1

	left := lipgloss.NewStyle().Width(docWidth).Render(m.viewer.View())

	var right strings.Builder
	right.WriteString(m.transcript.Render(state, annotate.DisplayText(m.pending)))
	if state.Loading && m.pending == "" {
		right.WriteString(m.spin.View())
		right.WriteString(styles.Subtle.Render("thinking"))
		right.WriteString("\n")
	}
	if comments := m.transcript.RenderComments(state, m.commentWidth()); comments != "" {
		right.WriteString("\n")
		right.WriteString(comments)
	}
	rightPane := lipgloss.NewStyle().Width(sideWidth).Height(m.height - 2).Render(right.String())

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", rightPane)

	return body + "\n" + m.statusLine()
}

func (m *Model) statusLine() string {
	switch m.mode {
	case modeChat:
		return m.chatInput.View()
	case modeComment:
		return m.comment.View()
	case modeSearch:
		return m.search.View()
	}
	if m.status != "" {
		return styles.Subtle.Render(m.status)
	}
	return styles.Subtle.Render(m.doc.RelPath)
}

func (m *Model) commentWidth() int {
	if m.cfg != nil && m.cfg.TUI.CommentWidth > 0 {
		return m.cfg.TUI.CommentWidth
	}
	return 80
}
