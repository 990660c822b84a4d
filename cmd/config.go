package cmd

import (
	"os"

	"github.com/go-kit/kit/log/level"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ramcloud-tools/rcprofile/pkg/cloudlab"
	"github.com/ramcloud-tools/rcprofile/pkg/manifest"
	"github.com/ramcloud-tools/rcprofile/pkg/params"
)

const (
	envPrefix      = "RCPROFILE"
	configFileName = ".rcprofile"

	aggregateKey = "aggregate"
	formatKey    = "format"

	defaultFormat = manifest.FormatRSpec
)

var defaultAggregate = cloudlab.Utah.Name

// clusterFlags maps the flags shared by all commands building a cluster onto configuration keys
var clusterFlags = map[string]string{
	"workers":       params.ClusterSizeKey,
	"hardware-type": params.HardwareTypeKey,
	"image":         params.ImageKey,
	"aggregate":     aggregateKey,
}

func addClusterFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("workers", "w", 4, "Number of RAMCloud servers, rcmaster and rcnfs come on top")
	cmd.Flags().String("hardware-type", cloudlab.HardwareTypes[0].Value, "Hardware type of all nodes")
	cmd.Flags().String("image", cloudlab.DiskImages[0].Value, "Disk image all nodes are booted with")
	cmd.Flags().String("aggregate", defaultAggregate, "Aggregate the disk image is resolved on")
}

// bindClusterFlags makes the flags of the running command override config file and environment.
// It runs before each command as several commands share the same keys.
func bindClusterFlags(cmd *cobra.Command) error {
	for flag, key := range clusterFlags {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return errors.Wrapf(err, "unable to bind flag --%s", flag)
		}
	}

	return nil
}

func setConfigDirectory() {
	// Find config dir based on XDG Base Directory Specification
	// https://specifications.freedesktop.org/basedir-spec/basedir-spec-latest.html
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig != "" {
		viper.AddConfigPath(xdgConfig)
	}

	// Failback to home directory
	home, err := homedir.Dir()
	if err == nil {
		viper.AddConfigPath(home)
	} else {
		level.Debug(logger).Log("msg", "unable to detect home directory", "err", err)
	}

	// Search config directory with name ".rcprofile" (without extension).
	viper.SetConfigName(configFileName)
}
