package cmd

import (
	"os"

	"github.com/go-kit/kit/log/level"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ramcloud-tools/rcprofile/pkg/params"
	"github.com/ramcloud-tools/rcprofile/pkg/phases"
)

var cfgFile string
var DebugMode bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rcprofile",
	Short: "A CLI tool to generate CloudLab requests for RAMCloud clusters",
	Long: `A tool for generating the CloudLab request (RSpec) of a RAMCloud cluster.

The cluster consists of a management node called 'rcmaster', a node called 'rcnfs'
exporting a shared NFS file system and a configurable number of RAMCloud servers
called rc01, rc02, ... All nodes share one LAN.
	`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	phases.FatalOnError(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file to use")
	rootCmd.PersistentFlags().BoolVarP(&DebugMode, "debug", "d", false, "debug mode")

	params.RegisterDefaults(viper.GetViper())
	viper.SetDefault(aggregateKey, defaultAggregate)
	viper.SetDefault(formatKey, defaultFormat)
}

// initConfig sets up logging, then reads in config file and ENV variables if set.
func initConfig() {
	logger = newLogger(os.Stderr, DebugMode)

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		setConfigDirectory()
	}

	// read in environment variables that match, e.g. RCPROFILE_NUM_RCNODES
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		level.Debug(logger).Log("msg", "using config file", "file", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		level.Error(logger).Log("msg", "unable to read config file", "file", cfgFile, "err", err)
		os.Exit(1)
	}
}
