package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Johnny9802/sigma-spl-bridge/internal/sigmarule"
)

// parseCmd is the diagnostic counterpart to sigma2spl: it recursively
// parses a Sigma rule directory and reports how many rules parse
// cleanly, without requiring a profile or emitting SPL. Grounded on the
// teacher's cmd/parse.go ok/fail/unsupported counters.
var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a Sigma ruleset directory for testing",
	Long:  `Recursively parses every *.yml/*.yaml file under the given directories and reports how many parse cleanly.`,
	Run:   parse,
}

func parse(cmd *cobra.Command, args []string) {
	dirs := viper.GetStringSlice("parse.rules.dir")
	if len(dirs) == 0 {
		dirs = args
	}
	files, err := sigmarule.DiscoverRuleFiles(dirs)
	if err != nil {
		log.Fatal(err)
	}
	for _, f := range files {
		log.Debug(f)
	}
	log.Infof("found %d rule files", len(files))

	result := sigmarule.LoadRuleSet(files)

	unsupported := 0
	for _, f := range result.Failures {
		switch f.Err.(type) {
		case sigmarule.ErrUnknownModifier, sigmarule.ErrUnresolvedSelection, sigmarule.ErrUnsupportedToken:
			unsupported++
			log.Warnf("%s: %s", f.Path, f.Err)
		default:
			log.Errorf("%s: %s", f.Path, f.Err)
		}
	}
	fail := len(result.Failures) - unsupported
	log.Infof("OK: %d; FAIL: %d; UNSUPPORTED: %d", len(result.Rules), fail, unsupported)
	for product, handles := range result.ByProduct {
		log.Infof("  product=%s: %d rule(s)", product, len(handles))
	}
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringSlice("rules-dir", []string{}, "Directories that contain sigma rules.")
	viper.BindPFlag("parse.rules.dir", parseCmd.Flags().Lookup("rules-dir"))
}
