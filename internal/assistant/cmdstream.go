package assistant

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/margin/pkg/executil"
)

// ErrNoCommand is returned when no assistant command is configured.
var ErrNoCommand = errors.New("no assistant command configured")

const chunkSize = 512

// CommandStreamer runs a configured external command and streams its stdout
// as reply chunks. The rendered prompt is passed as the final argument.
type CommandStreamer struct {
	Argv []string
	Exec executil.Executor
}

var _ Streamer = (*CommandStreamer)(nil)

// NewCommandStreamer returns a streamer for the given argv.
func NewCommandStreamer(argv []string) *CommandStreamer {
	return &CommandStreamer{Argv: argv, Exec: &executil.RealExecutor{}}
}

// Stream starts the command and returns a pull stream over its stdout.
func (c *CommandStreamer) Stream(ctx context.Context, req Request) (RawStream, error) {
	if len(c.Argv) == 0 {
		return nil, ErrNoCommand
	}

	runCtx, cancel := context.WithCancel(ctx)
	pr, pw := io.Pipe()

	args := make([]string, 0, len(c.Argv))
	args = append(args, c.Argv[1:]...)
	args = append(args, BuildPrompt(req))

	go func() {
		var stderr bytes.Buffer
		err := c.Exec.RunStream(runCtx, pw, &stderr, c.Argv[0], args...)
		if err != nil && stderr.Len() > 0 {
			log.Debug().Str("stderr", stderr.String()).Msg("assistant: command failed")
		}
		// Propagate the failure to the reader side; a clean exit closes it.
		pw.CloseWithError(err)
	}()

	return &cmdStream{r: pr, cancel: cancel}, nil
}

type cmdStream struct {
	r      *io.PipeReader
	cancel context.CancelFunc
}

func (s *cmdStream) Next() (string, bool, error) {
	buf := make([]byte, chunkSize)
	n, err := s.r.Read(buf)
	if n > 0 {
		return string(buf[:n]), false, nil
	}
	if errors.Is(err, io.EOF) {
		return "", true, nil
	}
	return "", true, err
}

func (s *cmdStream) Close() error {
	s.cancel()
	return s.r.Close()
}
