package cmd

import (
	"fmt"

	"github.com/Shivaram1629/smart-research-assistant/internal/document"
	"github.com/spf13/cobra"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file>",
	Short: "Summarize a document in at most 150 words",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, st, err := openSession(cmd, args[0])
		if err != nil {
			return err
		}
		defer st.Close()

		sum, err := session.Summarize(cmd.Context())
		if err != nil {
			return err
		}

		doc, _ := session.Document()
		stats := document.ComputeStats(doc)
		fmt.Printf("%s — %d words, %d lines, ~%d min read\n\n", doc.Filename, stats.Words, stats.Lines, stats.ReadingMins)
		fmt.Println(sum.Text)
		if sum.Truncated {
			fmt.Println("\n(note: the document was truncated to fit the model context)")
		}
		return nil
	},
}
