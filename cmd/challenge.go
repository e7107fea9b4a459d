package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var challengeCmd = &cobra.Command{
	Use:   "challenge <file>",
	Short: "Generate three comprehension questions and grade your answers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, st, err := openSession(cmd, args[0])
		if err != nil {
			return err
		}
		defer st.Close()

		questions, err := session.GenerateChallenge(cmd.Context())
		if err != nil {
			return err
		}

		reader := bufio.NewReader(os.Stdin)
		total := 0
		for i, q := range questions {
			fmt.Printf("\nQuestion %d of %d [%s]\n%s\n\n> ", i+1, len(questions), q.Reasoning, q.Prompt)

			answer, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read answer: %w", err)
			}
			answer = strings.TrimSpace(answer)
			if answer == "" {
				fmt.Println("(skipped)")
				continue
			}

			eval, err := session.EvaluateAnswer(cmd.Context(), q.ID, answer)
			if err != nil {
				return err
			}
			total += eval.Score

			fmt.Printf("\nScore: %d/100 (%s)\n", eval.Score, eval.Verdict)
			for _, s := range eval.Strengths {
				fmt.Printf("  + %s\n", s)
			}
			for _, g := range eval.Gaps {
				fmt.Printf("  - %s\n", g)
			}
			fmt.Printf("  %s\n", eval.Justification)
		}

		fmt.Printf("\nTotal: %d/%d\n", total, len(questions)*100)
		return nil
	},
}
