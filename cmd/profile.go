package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect field-mapping profiles preloaded via --profiles-file (C2)",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every preloaded profile",
	Run:   profileList,
}

func profileList(cmd *cobra.Command, args []string) {
	orch, err := newOrchestrator()
	if err != nil {
		log.Fatal(err)
	}
	for _, p := range orch.Profiles().List() {
		fmt.Printf("%s\t%s\tdefault=%v\tcim=%v\n", p.ID, p.Name, p.IsDefault, p.CIMEnabled)
	}
}

var profileSuggestCmd = &cobra.Command{
	Use:   "suggest [profile-id] [sigma-field...]",
	Short: "Heuristically suggest CIM target fields for Sigma field names",
	Args:  cobra.MinimumNArgs(2),
	Run:   profileSuggest,
}

func profileSuggest(cmd *cobra.Command, args []string) {
	orch, err := newOrchestrator()
	if err != nil {
		log.Fatal(err)
	}
	suggestions, err := orch.Profiles().Suggest(args[0], args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if len(suggestions) == 0 {
		fmt.Println("no suggestions (profile has cim_enabled=false or no CIM match)")
		return
	}
	for field, target := range suggestions {
		fmt.Printf("%s -> %s\n", field, target)
	}
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileListCmd, profileSuggestCmd)
}
