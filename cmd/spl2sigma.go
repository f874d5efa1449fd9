package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Johnny9802/sigma-spl-bridge/internal/splrecognizer"
)

var spl2sigmaCmd = &cobra.Command{
	Use:   "spl2sigma [spl-file]",
	Short: "Reconstruct a Sigma rule from a restricted Splunk SPL query (C9)",
	Args:  cobra.ExactArgs(1),
	Run:   spl2sigma,
}

func spl2sigma(cmd *cobra.Command, args []string) {
	data, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatal(err)
	}

	orch, err := newOrchestrator()
	if err != nil {
		log.Fatal(err)
	}

	meta := splrecognizer.RuleMeta{
		Title:           viper.GetString("spl2sigma.title"),
		DefaultProduct:  viper.GetString("spl2sigma.product"),
		DefaultCategory: viper.GetString("spl2sigma.category"),
	}

	resp, err := orch.SPLToSigma(args[0], viper.GetString("spl2sigma.profile"), string(data), meta)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(resp.OutputSigma)

	for _, n := range resp.CorrelationNotes {
		log.Warn(n)
	}
	if len(resp.Gaps) > 0 {
		fmt.Fprintf(os.Stderr, "%d unresolved field(s) in reconstructed rule\n", len(resp.Gaps))
	}
}

func init() {
	rootCmd.AddCommand(spl2sigmaCmd)

	spl2sigmaCmd.Flags().String("profile", "", "Profile id to reverse target fields against.")
	viper.BindPFlag("spl2sigma.profile", spl2sigmaCmd.Flags().Lookup("profile"))

	spl2sigmaCmd.Flags().String("title", "", "Title for the reconstructed rule.")
	viper.BindPFlag("spl2sigma.title", spl2sigmaCmd.Flags().Lookup("title"))

	spl2sigmaCmd.Flags().String("product", "", "Logsource product fallback when the SPL preamble has none.")
	viper.BindPFlag("spl2sigma.product", spl2sigmaCmd.Flags().Lookup("product"))

	spl2sigmaCmd.Flags().String("category", "", "Logsource category fallback when the SPL preamble has none.")
	viper.BindPFlag("spl2sigma.category", spl2sigmaCmd.Flags().Lookup("category"))
}
