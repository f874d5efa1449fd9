package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Johnny9802/sigma-spl-bridge/internal/spl"
)

var sigma2splCmd = &cobra.Command{
	Use:   "sigma2spl [sigma-file]",
	Short: "Translate a Sigma rule to Splunk SPL (C1->C4->C5, with C6/C7)",
	Args:  cobra.ExactArgs(1),
	Run:   sigma2spl,
}

func sigma2spl(cmd *cobra.Command, args []string) {
	data, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatal(err)
	}

	orch, err := newOrchestrator()
	if err != nil {
		log.Fatal(err)
	}

	overrides := spl.Overrides{
		Index:      viper.GetString("sigma2spl.index"),
		Sourcetype: viper.GetString("sigma2spl.sourcetype"),
		TimeRange:  viper.GetString("sigma2spl.time-range"),
	}

	resp, err := orch.SigmaToSPL(args[0], viper.GetString("sigma2spl.profile"), string(data), overrides)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(resp.OutputSPL)

	if len(resp.Gaps) > 0 {
		log.Warnf("%d unresolved field(s); see gaps below", len(resp.Gaps))
		for _, g := range resp.Gaps {
			log.WithField("field", g.Field).Warn(g.Impact)
		}
	}
	if viper.GetBool("sigma2spl.show-prereqs") {
		for _, rl := range resp.Prerequisites.RequiredLogs {
			fmt.Fprintf(os.Stderr, "required log: %s (%s)\n", rl.Name, rl.Description)
		}
	}
}

func init() {
	rootCmd.AddCommand(sigma2splCmd)

	sigma2splCmd.Flags().String("profile", "", "Profile id to resolve fields against (default profile if unset).")
	viper.BindPFlag("sigma2spl.profile", sigma2splCmd.Flags().Lookup("profile"))

	sigma2splCmd.Flags().String("index", "", "Override the emitted index=.")
	viper.BindPFlag("sigma2spl.index", sigma2splCmd.Flags().Lookup("index"))

	sigma2splCmd.Flags().String("sourcetype", "", "Override the emitted sourcetype=.")
	viper.BindPFlag("sigma2spl.sourcetype", sigma2splCmd.Flags().Lookup("sourcetype"))

	sigma2splCmd.Flags().String("time-range", "", "Override the emitted earliest= (e.g. 24h).")
	viper.BindPFlag("sigma2spl.time-range", sigma2splCmd.Flags().Lookup("time-range"))

	sigma2splCmd.Flags().Bool("show-prereqs", false, "Print required log sources to stderr.")
	viper.BindPFlag("sigma2spl.show-prereqs", sigma2splCmd.Flags().Lookup("show-prereqs"))
}
