package mcp

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/sitelens/sitelens-mcp-server/internal/protocol"
)

// RunHTTP starts an HTTP server that serves MCP JSON-RPC requests via POST
// to the root path, one request per call. /health answers liveness probes.
func RunHTTP(server *Server, addr string, log *logrus.Entry) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req protocol.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, protocol.Response{JSONRPC: "2.0", ID: "0", Error: &protocol.ResponseError{Code: -32700, Message: "invalid JSON"}}, http.StatusBadRequest)
			return
		}

		writeJSON(w, server.Handle(r.Context(), req), http.StatusOK)
	})

	if log != nil {
		log.WithField("addr", addr).Info("HTTP MCP server listening")
	}
	return http.ListenAndServe(addr, mux)
}

func writeJSON(w http.ResponseWriter, resp protocol.Response, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(resp)
}
