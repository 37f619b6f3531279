package assistant

import "context"

// Scripted replays a fixed sequence of chunks. It backs tests and the
// offline demo mode; Err, when set, is returned after the chunks to exercise
// failure paths.
type Scripted struct {
	Chunks []string
	Err    error
}

var _ Streamer = (*Scripted)(nil)

// Stream returns a stream over the canned chunks.
func (s *Scripted) Stream(ctx context.Context, _ Request) (RawStream, error) {
	return &scriptedStream{ctx: ctx, chunks: s.Chunks, err: s.Err}, nil
}

type scriptedStream struct {
	ctx    context.Context
	chunks []string
	err    error
	pos    int
}

func (s *scriptedStream) Next() (string, bool, error) {
	if err := s.ctx.Err(); err != nil {
		return "", true, err
	}
	if s.pos >= len(s.chunks) {
		if s.err != nil {
			return "", true, s.err
		}
		return "", true, nil
	}
	chunk := s.chunks[s.pos]
	s.pos++
	return chunk, false, nil
}

func (s *scriptedStream) Close() error { return nil }
