package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sitelens/sitelens-mcp-server/internal/protocol"
)

// ServeStdio reads newline-delimited JSON-RPC requests from r and writes
// one response per request to w. stdout must carry nothing but responses;
// all diagnostics go through the logger. Returns nil on EOF.
func ServeStdio(ctx context.Context, s *Server, r io.Reader, w io.Writer, log *logrus.Entry) error {
	reader := bufio.NewReader(r)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var req protocol.Request
		if err := json.Unmarshal(line, &req); err != nil {
			if log != nil {
				log.WithError(err).Warn("dropping malformed request line")
			}
			continue
		}
		// Notifications carry no id and get no response.
		if req.ID == nil && strings.HasPrefix(req.Method, "notifications/") {
			continue
		}

		if err := enc.Encode(s.Handle(ctx, req)); err != nil {
			return err
		}
	}
}
