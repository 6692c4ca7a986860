package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/itemcheck/internal/rules"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := s.orchestrator.Stats()
	if stats == nil {
		jsonError(w, "audit stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"queue_depth": s.orchestrator.QueueDepth(),
		"stats":       stats.Snapshot(),
	})
}

// handleRules reports the server-wide rules new jobs start from.
func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	defaults := s.orchestrator.Defaults()
	cfg := rules.DefaultConfig()
	if defaults.Rules.StemWords != nil {
		cfg.StemWords = defaults.Rules.StemWords
	}
	if defaults.Rules.OptionWords != nil {
		cfg.OptionWords = defaults.Rules.OptionWords
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"stem_words":    cfg.StemWords,
		"option_words":  cfg.OptionWords,
		"threshold":     defaults.Threshold,
		"drag_and_drop": rules.DragAndDropPhrase,
		"vocabulary":    defaults.Extra != nil,
	})
}
