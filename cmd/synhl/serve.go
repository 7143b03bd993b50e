package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/gophlex/synhl"
	"github.com/gophlex/synhl/grammardef"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type tokenizeServer struct {
	reg         *synhl.Registry
	defaultName string
}

type helloFrame struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
	Grammar   string `json:"grammar"`
}

type requestFrame struct {
	Grammar string `json:"grammar"`
	Text    string `json:"text"`
}

type resultFrame struct {
	Type   string         `json:"type"`
	Tokens []jsonFragment `json:"tokens"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func (s *tokenizeServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.NewString()
	log.Printf("[%s] client connected", sessionID)

	if err := conn.WriteJSON(helloFrame{Type: "hello", SessionID: sessionID, Grammar: s.defaultName}); err != nil {
		log.Printf("[%s] write hello: %v", sessionID, err)
		return
	}

	for {
		var req requestFrame
		if err := conn.ReadJSON(&req); err != nil {
			log.Printf("[%s] disconnected: %v", sessionID, err)
			return
		}

		grammarName := req.Grammar
		if grammarName == "" {
			grammarName = s.defaultName
		}
		g, ok := s.reg.Get(grammarName)
		if !ok {
			_ = conn.WriteJSON(errorFrame{Type: "error", Error: fmt.Sprintf("unknown grammar %q", grammarName)})
			continue
		}

		frags := synhl.Tokenize(req.Text, g)
		if err := conn.WriteJSON(resultFrame{Type: "tokens", Tokens: fragmentsToJSON(frags)}); err != nil {
			log.Printf("[%s] write tokens: %v", sessionID, err)
			return
		}
	}
}

func serveCmd(cfg *config) *cobra.Command {
	var addr, grammarsDir, grammarName string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve tokenization over a websocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			if grammarsDir == "" {
				grammarsDir = cfg.GrammarsDir
			}
			if grammarName == "" {
				grammarName = cfg.Grammar
			}

			loader := grammardef.NewLoader()
			reg, err := loader.LoadDir(grammarsDir)
			if err != nil {
				return fmt.Errorf("load grammars: %w", err)
			}

			srv := &tokenizeServer{reg: reg, defaultName: grammarName}
			mux := http.NewServeMux()
			mux.HandleFunc("/ws", srv.handleWS)

			log.Printf("synhl serve listening on %s", addr)
			return http.ListenAndServe(addr, mux)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8089", "Listen address")
	cmd.Flags().StringVar(&grammarsDir, "grammars", "", "Directory of grammar definition files")
	cmd.Flags().StringVar(&grammarName, "grammar", "", "Default grammar name")
	return cmd
}
