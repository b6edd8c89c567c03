package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/marmos91/filebridge/internal/logger"
	"github.com/marmos91/filebridge/pkg/adapter"
	"github.com/marmos91/filebridge/pkg/entry"
)

var _ adapter.Adapter = (*Server)(nil)

// request is one newline-delimited command from the host.
type request struct {
	ID     uint64 `json:"id"`
	Action string `json:"action"`
	Args   []any  `json:"args"`
}

// response answers one request. On failure only the numeric error code is
// carried; native error detail stays on this side of the boundary.
type response struct {
	ID     uint64 `json:"id"`
	Result any    `json:"result,omitempty"`
	Error  *int   `json:"error,omitempty"`
}

// Server drives a Bridge over a newline-delimited JSON stream, one request
// per line. It implements adapter.Adapter.
type Server struct {
	bridge *Bridge
	in     io.Reader
	out    io.Writer

	mu      sync.Mutex
	stopped chan struct{}
	once    sync.Once
}

// NewServer builds a stream server over the given reader/writer pair.
func NewServer(b *Bridge, in io.Reader, out io.Writer) *Server {
	return &Server{
		bridge:  b,
		in:      in,
		out:     out,
		stopped: make(chan struct{}),
	}
}

// Protocol returns the transport name.
func (s *Server) Protocol() string {
	return "stdio"
}

// Stop unblocks Serve. Safe to call multiple times and concurrently.
func (s *Server) Stop(_ context.Context) error {
	s.once.Do(func() { close(s.stopped) })
	return nil
}

// Serve reads requests until EOF, context cancellation or Stop.
//
// Each request runs to completion before its response is written; requests
// are processed in arrival order.
func (s *Server) Serve(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopped:
			return nil
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			logger.Warn("SERVE dropped malformed request: error=%v", err)
			if err := s.reply(response{ID: req.ID, Error: codePtr(entry.ErrSyntax)}); err != nil {
				return err
			}
			continue
		}

		result, err := s.bridge.Exec(ctx, req.Action, req.Args)
		resp := response{ID: req.ID, Result: result}
		if err != nil {
			resp.Result = nil
			resp.Error = codePtr(errorCode(err))
		}
		if err := s.reply(resp); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read request stream: %w", err)
	}
	return nil
}

func (s *Server) reply(resp response) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	payload = append(payload, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.out.Write(payload); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

func errorCode(err error) entry.ErrorCode {
	if typed, ok := err.(*entry.Error); ok {
		return typed.Code
	}
	return entry.ErrInvalidState
}

func codePtr(code entry.ErrorCode) *int {
	v := int(code)
	return &v
}
