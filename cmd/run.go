package cmd

import (
	"fmt"

	"github.com/Shivaram1629/smart-research-assistant/internal/app"
	"github.com/Shivaram1629/smart-research-assistant/internal/assistant"
	"github.com/Shivaram1629/smart-research-assistant/internal/document"
	"github.com/Shivaram1629/smart-research-assistant/internal/llm"
	"github.com/Shivaram1629/smart-research-assistant/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
// When path is non-empty, the document is loaded before the UI starts.
func runApp(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		return fmt.Errorf("configure LLM provider: %w", err)
	}

	session := assistant.NewSession(provider, assistant.DefaultConfig())

	opts := app.Options{
		Session:   session,
		EventRepo: st.EventRepo(),
	}
	if path != "" {
		doc, err := document.Extract(path)
		if err != nil {
			return fmt.Errorf("load document: %w", err)
		}
		if err := session.LoadDocument(doc); err != nil {
			return err
		}
		opts.Document = &doc
	}

	return app.Run(opts)
}
