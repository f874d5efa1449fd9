package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// text2sigmaCmd is the one command that can reach the LLM adapter. It
// fails with LlmUnavailable unless --llm-endpoint was set on the root
// command, per §4.10: there is no default text_to_sigma behavior beyond
// that strict post-processing path.
var text2sigmaCmd = &cobra.Command{
	Use:   "text2sigma [text-file]",
	Short: "Generate a Sigma rule from free text via the optional LLM adapter",
	Args:  cobra.ExactArgs(1),
	Run:   text2sigma,
}

func text2sigma(cmd *cobra.Command, args []string) {
	data, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatal(err)
	}

	orch, err := newOrchestrator()
	if err != nil {
		log.Fatal(err)
	}

	hints := map[string]string{
		"product":  viper.GetString("text2sigma.product"),
		"category": viper.GetString("text2sigma.category"),
	}

	resp, err := orch.TextToSigma(context.Background(), args[0], viper.GetString("text2sigma.profile"), string(data), hints)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(resp.OutputSigma)
	for _, n := range resp.CorrelationNotes {
		log.Warn(n)
	}
}

func init() {
	rootCmd.AddCommand(text2sigmaCmd)

	text2sigmaCmd.Flags().String("profile", "", "Profile id to resolve fields against once the rule is generated.")
	viper.BindPFlag("text2sigma.profile", text2sigmaCmd.Flags().Lookup("profile"))

	text2sigmaCmd.Flags().String("product", "", "Logsource product hint for the LLM adapter.")
	viper.BindPFlag("text2sigma.product", text2sigmaCmd.Flags().Lookup("product"))

	text2sigmaCmd.Flags().String("category", "", "Logsource category hint for the LLM adapter.")
	viper.BindPFlag("text2sigma.category", text2sigmaCmd.Flags().Lookup("category"))
}
