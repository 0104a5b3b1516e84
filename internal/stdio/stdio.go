// Package stdio serves the tool protocol over newline-delimited JSON-RPC
// frames. Requests are handled strictly sequentially: one frame is read,
// answered, and flushed before the next is read. Nothing but protocol
// frames may be written to the output stream; all logging goes to stderr.
package stdio

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/apifuse/apifuse/internal/protocol"
	"github.com/rs/zerolog/log"
)

// Frames larger than this are rejected by the scanner.
const maxFrameSize = 4 * 1024 * 1024

type Server struct {
	handler *protocol.Handler
	in      io.Reader
	out     io.Writer
}

func NewServer(handler *protocol.Handler, in io.Reader, out io.Writer) *Server {
	return &Server{handler: handler, in: in, out: out}
}

// Run reads frames until the input stream closes or ctx is cancelled.
// A closed stdin is a normal client disconnect, not an error. Scanning
// happens in a separate goroutine because a blocked read on an idle stream
// must not pin the loop past cancellation; on SIGINT the transport has to
// stop even when no frame is pending.
func (s *Server) Run(ctx context.Context) error {
	frames := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(frames)
		scanner := bufio.NewScanner(s.in)
		scanner.Buffer(make([]byte, 64*1024), maxFrameSize)
		for scanner.Scan() {
			select {
			case frames <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	enc := json.NewEncoder(s.out)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case raw, ok := <-frames:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return err
					}
				default:
				}
				log.Info().Msg("stdio stream closed")
				return nil
			}
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}
			resp := s.handler.HandleRaw(ctx, []byte(line))
			if err := enc.Encode(resp); err != nil {
				return err
			}
		}
	}
}
