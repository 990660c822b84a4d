package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ramcloud-tools/rcprofile/pkg/cloudlab"
	"github.com/ramcloud-tools/rcprofile/pkg/manifest"
	"github.com/ramcloud-tools/rcprofile/pkg/params"
	"github.com/ramcloud-tools/rcprofile/pkg/phases"
	"github.com/ramcloud-tools/rcprofile/pkg/topology"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "generates the request for a cluster",
	Long: `This command prints the request describing a RAMCloud cluster, ready to be submitted to CloudLab.

The most simple command is: rcprofile generate
This will request rcmaster, rcnfs and 4 RAMCloud servers rc01..rc04 on m510 machines.

Every node runs '/local/repository/setup.sh /local/nfs /local/rcbackup' once provisioned.
rcnfs gets a 200GB block store at /local/nfs, exported via NFS, and every RAMCloud
server gets a 200GB block store at /local/rcbackup for backups.

For a replication factor of 3 at least 4 servers are needed. Smaller clusters are
generated anyway, with a warning.
	`,
	PreRunE: validateGenerateFlags,
	RunE:    runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	spec, err := params.Bind(viper.GetViper(), logger)
	if err != nil {
		return err
	}

	aggregate, err := cloudlab.LookupAggregate(viper.GetString(aggregateKey))
	if err != nil {
		return err
	}

	emitter, err := manifest.NewEmitter(viper.GetString(formatKey), aggregate)
	if err != nil {
		return err
	}

	summary, _ := cmd.Flags().GetBool("summary")
	outputFile, _ := cmd.Flags().GetString("output")

	if outputFile == "" {
		return generate(spec, emitter, cmd.OutOrStdout(), cmd.ErrOrStderr(), summary)
	}

	err = writeOutput(outputFile, func(out io.Writer) error {
		return generate(spec, emitter, out, cmd.ErrOrStderr(), summary)
	})
	if err != nil {
		return err
	}

	level.Info(logger).Log("msg", "request written", "file", outputFile)
	return nil
}

// writeOutput renders into a temporary file next to path and moves it into place once complete.
// A failing render leaves an existing file at path untouched.
func writeOutput(path string, render func(io.Writer) error) error {
	file, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "unable to create output file")
	}
	defer os.Remove(file.Name())

	if err := render(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Chmod(0644); err != nil {
		file.Close()
		return errors.Wrap(err, "unable to write output file")
	}
	if err := file.Close(); err != nil {
		return errors.Wrap(err, "unable to write output file")
	}

	return errors.Wrap(os.Rename(file.Name(), path), "unable to write output file")
}

// generate builds the manifest and hands it to the emitter. A nil emitter only builds and summarizes.
func generate(spec topology.ClusterSpec, emitter topology.ManifestEmitter, out io.Writer, summaryOut io.Writer, summary bool) error {
	generation := &phases.Generation{Spec: spec}

	phaseChain := phases.NewPhaseChain()
	phaseChain.AddPhase(phases.NewBuildTopologyPhase(generation, logger))
	if emitter != nil {
		phaseChain.AddPhase(phases.NewEmitManifestPhase(generation, emitter, out, logger))
	}
	phaseChain.AddPhase(phases.NewPrintSummaryPhase(generation, summaryOut, summary))

	return phaseChain.Run()
}

func validateGenerateFlags(cmd *cobra.Command, args []string) error {
	if err := bindClusterFlags(cmd); err != nil {
		return err
	}
	if err := viper.BindPFlag(formatKey, cmd.Flags().Lookup("format")); err != nil {
		return errors.Wrap(err, "unable to bind flag --format")
	}

	if workers := viper.GetInt(params.ClusterSizeKey); workers < 0 {
		return fmt.Errorf("the number of workers cannot be negative. %d was provided", workers)
	}

	if _, err := cloudlab.LookupAggregate(viper.GetString(aggregateKey)); err != nil {
		return err
	}

	if _, err := manifest.NewEmitter(viper.GetString(formatKey), cloudlab.Utah); err != nil {
		return err
	}

	if outputFile, _ := cmd.Flags().GetString("output"); outputFile != "" {
		if _, err := os.Stat(filepath.Dir(outputFile)); os.IsNotExist(err) {
			return fmt.Errorf("output directory '%s' not found", filepath.Dir(outputFile))
		}
	}

	return nil
}

func init() {
	rootCmd.AddCommand(generateCmd)

	addClusterFlags(generateCmd)
	generateCmd.Flags().StringP("format", "f", defaultFormat, "Output format, one of rspec, json, yaml")
	generateCmd.Flags().StringP("output", "o", "", "Write the request to this file instead of stdout")
	generateCmd.Flags().Bool("summary", false, "Print a node summary to stderr")
}
