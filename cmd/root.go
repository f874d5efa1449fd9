package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Johnny9802/sigma-spl-bridge/internal/applog"
	"github.com/Johnny9802/sigma-spl-bridge/internal/convert"
	"github.com/Johnny9802/sigma-spl-bridge/internal/coverage"
	"github.com/Johnny9802/sigma-spl-bridge/internal/llm"
	"github.com/Johnny9802/sigma-spl-bridge/internal/profile"
)

var (
	cfgFile string
	quiet   bool
	debug   bool

	log *logrus.Logger
)

// rootCmd is the base command for the sigma-spl-bridge CLI: a reference
// driver for the translation engine's three orchestrator entry points
// plus the parse report, the coverage check and the read-only profile
// commands (profile list/suggest).
var rootCmd = &cobra.Command{
	Use:   "sigma-spl",
	Short: "Bidirectional Sigma <-> Splunk SPL rule translator",
	Long: `sigma-spl translates Sigma detection rules to Splunk SPL and back,
reporting field mappings, unresolved fields, required log sources, and
coverage against an active Sysmon/Windows-audit configuration.`,
}

// Execute adds all child commands to the root command and runs it. This
// is called by main.main() once.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.sigma-spl.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"Quiet output. Suppress warnings. Takes precedence over --debug.")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false,
		"Debug mode. Enable trace logging.")

	rootCmd.PersistentFlags().StringSlice("profiles-file", []string{},
		"YAML files holding profile/mapping bundles to preload (§3 Profile/Mapping).")
	viper.BindPFlag("profiles.file", rootCmd.PersistentFlags().Lookup("profiles-file"))

	rootCmd.PersistentFlags().StringSlice("sysmon-config", []string{},
		"YAML files holding Sysmon config snapshots to preload.")
	viper.BindPFlag("coverage.sysmon.file", rootCmd.PersistentFlags().Lookup("sysmon-config"))

	rootCmd.PersistentFlags().StringSlice("audit-config", []string{},
		"YAML files holding Windows-audit config snapshots to preload.")
	viper.BindPFlag("coverage.audit.file", rootCmd.PersistentFlags().Lookup("audit-config"))

	rootCmd.PersistentFlags().String("llm-endpoint", "",
		"Optional LLM adapter endpoint for the text_to_sigma command. Empty disables it.")
	viper.BindPFlag("llm.endpoint", rootCmd.PersistentFlags().Lookup("llm-endpoint"))

	rootCmd.PersistentFlags().String("llm-api-key", "",
		"API key for the LLM adapter endpoint.")
	viper.BindPFlag("llm.api_key", rootCmd.PersistentFlags().Lookup("llm-api-key"))
}

// initConfig reads in config file and ENV variables if set, the same
// precedence order as the teacher's cmd/root.go.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".sigma-spl")
	}

	viper.SetEnvPrefix("SIGMA_SPL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func initLogging() {
	log = applog.New(quiet, debug)
}

// newOrchestrator builds the process-wide stores this run of the CLI
// needs and preloads them from whatever bundle files the persistent
// flags/config named, the CLI's stand-in for the persistence adapter
// §6.1 defines as an external collaborator.
func newOrchestrator() (*convert.Orchestrator, error) {
	profiles := profile.NewStore()
	for _, f := range viper.GetStringSlice("profiles.file") {
		if err := profile.LoadFile(profiles, f); err != nil {
			return nil, fmt.Errorf("loading profile bundle %s: %w", f, err)
		}
	}

	cov := coverage.NewStore()
	for _, f := range viper.GetStringSlice("coverage.sysmon.file") {
		if err := cov.LoadSysmonConfigFile(f); err != nil {
			return nil, fmt.Errorf("loading sysmon config %s: %w", f, err)
		}
	}
	for _, f := range viper.GetStringSlice("coverage.audit.file") {
		if err := cov.LoadAuditConfigFile(f); err != nil {
			return nil, fmt.Errorf("loading audit config %s: %w", f, err)
		}
	}

	var adapter llm.Adapter
	if endpoint := viper.GetString("llm.endpoint"); endpoint != "" {
		adapter = llm.NewHTTPAdapter(llm.HTTPAdapterConfig{
			Endpoint: endpoint,
			APIKey:   viper.GetString("llm.api_key"),
		})
	}

	return convert.New(profiles, cov, adapter, log), nil
}
