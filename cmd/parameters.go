package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ramcloud-tools/rcprofile/pkg/cloudlab"
	"github.com/ramcloud-tools/rcprofile/pkg/params"
)

// parametersCmd represents the params command
var parametersCmd = &cobra.Command{
	Use:     "params",
	Aliases: []string{"parameters"},
	Short:   "lists the parameters of the profile",
	Long: `Lists the parameters a cluster is configured with, their defaults and legal values.

Every parameter can be set in the config file or as environment variable, e.g. RCPROFILE_NUM_RCNODES=8.`,
	Run: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")

		tw := new(tabwriter.Writer)
		tw.Init(cmd.OutOrStdout(), 0, 8, 2, '\t', 0)
		fmt.Fprintln(tw, "NAME\tTYPE\tDEFAULT\tLEGAL VALUES\tPROMPT")

		for _, parameter := range params.Parameters {
			fmt.Fprintf(tw, "%s\t%s\t%v\t%s\t%s", parameter.Name, parameter.Type, parameter.Default, legalValues(parameter.Legal), parameter.Prompt)
			fmt.Fprintln(tw)
		}
		tw.Flush()

		if !verbose {
			return
		}

		for _, parameter := range params.Parameters {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n", parameter.Name)
			for _, choice := range parameter.Legal {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s\n", choice.Value, choice.Label)
			}
			if parameter.Description != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", parameter.Description)
			}
		}
	},
}

func legalValues(choices []cloudlab.Choice) string {
	if len(choices) == 0 {
		return "-"
	}

	return strings.Join(cloudlab.Values(choices), ",")
}

func init() {
	rootCmd.AddCommand(parametersCmd)

	parametersCmd.Flags().BoolP("verbose", "v", false, "Print labels and descriptions")
}
