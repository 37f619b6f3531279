// Package assistant defines the boundary to the language-model collaborator.
//
// The engine sends the full current document text and the full prior
// transcript; the assistant answers with a stream of text chunks that may
// contain citation markers of the form [start:end], half-open byte offsets
// into the document. Transport mechanics beyond this contract (providers,
// retries, auth) are out of scope.
package assistant

import (
	"context"
	"strings"

	"github.com/colonyops/margin/internal/core/annotate"
)

// Request carries everything a streamer needs for one reply.
type Request struct {
	Document   string
	Transcript []annotate.Message
	Prompt     string
	Tools      Tools
}

// Tools are the two document query callbacks exposed to the assistant: find
// the ranges where a snippet occurs, and read the exact text of a range with
// optional padding. Both operate over the current document text only.
type Tools struct {
	FindOccurrences func(snippet string) []annotate.Citation
	TextForRange    func(start, end, pad int) string
}

// ToolsFor builds the standard tool set over a document snapshot.
func ToolsFor(content string) Tools {
	return Tools{
		FindOccurrences: func(snippet string) []annotate.Citation {
			return annotate.FindOccurrences(content, snippet)
		},
		TextForRange: func(start, end, pad int) string {
			return annotate.TextForRange(content, start, end, pad)
		},
	}
}

// RawStream is a read-only sequential pull of reply chunks. The caller must
// Close it when finished, including after an error.
type RawStream interface {
	Next() (chunk string, done bool, err error)
	Close() error
}

// Streamer produces a reply stream for a request. Implementations must
// respect ctx cancellation and release resources promptly.
type Streamer interface {
	Stream(ctx context.Context, req Request) (RawStream, error)
}

// BuildPrompt renders the plain-text prompt a command-backed streamer writes
// to the assistant's stdin: citation instructions, document, transcript, and
// the new user message.
func BuildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("You are reviewing a document with the user. ")
	b.WriteString("Cite document ranges as [start:end] using byte offsets into the document below.\n\n")
	b.WriteString("--- DOCUMENT ---\n")
	b.WriteString(req.Document)
	b.WriteString("\n--- END DOCUMENT ---\n\n")

	for _, m := range req.Transcript {
		b.WriteString(string(m.Role))
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}

	b.WriteString("user: ")
	b.WriteString(req.Prompt)
	b.WriteString("\n")
	return b.String()
}
