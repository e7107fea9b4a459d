package cmd

import (
	"fmt"

	"github.com/Shivaram1629/smart-research-assistant/internal/assistant"
	"github.com/Shivaram1629/smart-research-assistant/internal/document"
	"github.com/Shivaram1629/smart-research-assistant/internal/llm"
	"github.com/Shivaram1629/smart-research-assistant/internal/store"
	"github.com/spf13/cobra"
)

// openSession builds a one-shot session around the document at path.
// The caller must Close the returned store.
func openSession(cmd *cobra.Command, path string) (*assistant.Session, *store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	provider, err := llm.NewProviderFromEnv(cmd.Context(), st.EventRepo())
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("configure LLM provider: %w", err)
	}

	doc, err := document.Extract(path)
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("load document: %w", err)
	}

	session := assistant.NewSession(provider, assistant.DefaultConfig())
	if err := session.LoadDocument(doc); err != nil {
		st.Close()
		return nil, nil, err
	}
	return session, st, nil
}
