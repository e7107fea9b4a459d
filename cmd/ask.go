package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <file> <question>",
	Short: "Ask a question about a document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, st, err := openSession(cmd, args[0])
		if err != nil {
			return err
		}
		defer st.Close()

		ans, err := session.Ask(cmd.Context(), args[1])
		if err != nil {
			return err
		}

		fmt.Println(ans.Text)
		if len(ans.Citations) > 0 {
			fmt.Println("\nSources:")
			for i, c := range ans.Citations {
				fmt.Printf("  [%d] %s\n", i+1, c)
			}
		}
		if ans.Truncated {
			fmt.Println("\n(note: the document was truncated to fit the model context)")
		}
		return nil
	},
}
