package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramcloud-tools/rcprofile/pkg/cloudlab"
	"github.com/ramcloud-tools/rcprofile/pkg/manifest"
	"github.com/ramcloud-tools/rcprofile/pkg/topology"
)

// resetFlags restores the flags of the shared commands once the test is done
func resetFlags(t *testing.T, cmds ...*cobra.Command) {
	t.Cleanup(func() {
		for _, cmd := range cmds {
			cmd.Flags().VisitAll(func(flag *pflag.Flag) {
				flag.Value.Set(flag.DefValue)
				flag.Changed = false
			})
		}
	})
}

func TestGenerateCmdValidate(t *testing.T) {
	cmd := generateCmd
	resetFlags(t, cmd)

	cmd.ParseFlags([]string{"--workers", "2"})
	err := validateGenerateFlags(cmd, []string{})
	if err != nil {
		t.Error(err)
	}

	cmd.ParseFlags([]string{"--workers=-1"})
	err = validateGenerateFlags(cmd, []string{})
	if err == nil {
		t.Error("no errors occurred with a negative worker count, but should")
	}

	cmd.ParseFlags([]string{"--workers", "0", "--format", "toml"})
	err = validateGenerateFlags(cmd, []string{})
	if err == nil {
		t.Error("no errors occurred with an unknown format, but should")
	}

	cmd.ParseFlags([]string{"--format", "json", "--aggregate", "mars"})
	err = validateGenerateFlags(cmd, []string{})
	if err == nil {
		t.Error("no errors occurred with an unknown aggregate, but should")
	}

	cmd.ParseFlags([]string{"--aggregate", "clemson", "--output", "/nonexistent-rcprofile-dir/request.xml"})
	err = validateGenerateFlags(cmd, []string{})
	if err == nil {
		t.Error("no errors occurred with a missing output directory, but should")
	}

	cmd.ParseFlags([]string{"--output", filepath.Join(t.TempDir(), "request.xml")})
	err = validateGenerateFlags(cmd, []string{})
	if err != nil {
		t.Error(err)
	}
}

func TestGenerate(t *testing.T) {
	var out, summary bytes.Buffer
	spec := topology.ClusterSpec{WorkerCount: 4, HardwareType: "m510", DiskImage: "UBUNTU16-64-STD"}

	err := generate(spec, manifest.NewRSpecEmitter(cloudlab.Utah), &out, &summary, true)
	require.NoError(t, err)

	assert.Equal(t, 6, strings.Count(out.String(), "<node "))
	assert.Contains(t, out.String(), `<node client_id="rc04" exclusive="true">`)
	assert.Contains(t, summary.String(), "storage-gateway")
}

func TestGenerate_SummaryOnly(t *testing.T) {
	var summary bytes.Buffer
	spec := topology.ClusterSpec{WorkerCount: 0, HardwareType: "m510", DiskImage: "UBUNTU16-64-STD"}

	require.NoError(t, generate(spec, nil, nil, &summary, true))

	lines := strings.Split(strings.TrimSpace(summary.String()), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "rcmaster"))
	assert.True(t, strings.HasPrefix(lines[2], "rcnfs"))
}

func TestRootCmd_Generate(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	defer rootCmd.SetOut(nil)
	defer rootCmd.SetErr(nil)

	resetFlags(t, generateCmd)

	rootCmd.SetArgs([]string{"generate", "--workers", "0", "--format", "yaml"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "hostname: rcmaster")
	assert.Contains(t, out.String(), "hostname: rcnfs")
	assert.NotContains(t, out.String(), "hostname: rc01")
}

func TestRootCmd_GenerateToFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "request.xml")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	defer rootCmd.SetOut(nil)
	defer rootCmd.SetErr(nil)

	resetFlags(t, generateCmd)

	rootCmd.SetArgs([]string{"generate", "--workers", "2", "--output", outputFile})
	require.NoError(t, rootCmd.Execute())

	assert.Empty(t, out.String())
	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<link client_id="rclan">`)
	assert.Contains(t, string(data), `<emulab:blockstore name="rc02backup_bs" mountpoint="/local/rcbackup"`)
}

func TestRootCmd_GenerateRejectsUnknownHardware(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	defer rootCmd.SetOut(nil)
	defer rootCmd.SetErr(nil)

	resetFlags(t, generateCmd)

	rootCmd.SetArgs([]string{"generate", "--hardware-type", "d430"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hardware type 'd430' is not supported")
}

type failingEmitter struct{}

func (failingEmitter) Emit(topology.ClusterManifest) ([]byte, error) {
	return nil, errors.New("unable to render rspec")
}

func TestWriteOutput_KeepsFileOnFailure(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "request.xml")
	require.NoError(t, os.WriteFile(outputFile, []byte("previous request\n"), 0644))

	spec := topology.ClusterSpec{WorkerCount: 1, HardwareType: "m510", DiskImage: "UBUNTU16-64-STD"}
	err := writeOutput(outputFile, func(out io.Writer) error {
		return generate(spec, failingEmitter{}, out, io.Discard, false)
	})
	require.Error(t, err)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Equal(t, "previous request\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(outputFile))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteOutput_ReplacesFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "request.json")
	require.NoError(t, os.WriteFile(outputFile, []byte("previous request that is longer than the new one\n"), 0644))

	err := writeOutput(outputFile, func(out io.Writer) error {
		_, err := io.WriteString(out, "{}\n")
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))

	info, err := os.Stat(outputFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}
