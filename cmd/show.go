package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ramcloud-tools/rcprofile/pkg/params"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:     "show",
	Aliases: []string{"ls"},
	Short:   "lists the nodes of a cluster without generating the request",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindClusterFlags(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := params.Bind(viper.GetViper(), logger)
		if err != nil {
			return err
		}

		return generate(spec, nil, nil, cmd.OutOrStdout(), true)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	addClusterFlags(showCmd)
}
