package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const printReadsYAML = `name: PrintReads
version: 4.2.0.0
arguments:
  required:
    - name: --input
      testValue: '"sample.bam"'
  optional:
    - name: --intervals
      testValue: "[]"
    - name: --max-reads
      testValue: 5
`

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags() {
	flagVerbose, flagQuiet = false, false
	flagRenderGlob, flagRenderOutput = "", ""
	flagIncludeArgs, flagExcludeArgs = "", ""
	flagRuntime, flagSet = nil, nil
	flagCollapsePositions = false
	flagToolVersion, flagDiscoverOut = "latest", "./fixtures/"
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRender_Stdout(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pr.yaml", printReadsYAML)

	out, err := execute(t, "render", path, "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, `"PrintReads.dockerImage": "broadinstitute/gatk:4.2.0.0",`)
	assert.Contains(t, out, `"PrintReads.input": "sample.bam",`)
	assert.Contains(t, out, `"PrintReads.intervals": null,`)
	assert.Contains(t, out, `"PrintReads.max-reads": 5`+"\n}\n")
}

func TestRender_OverridesAndSelection(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pr.yaml", printReadsYAML)

	out, err := execute(t, "render", path, "--quiet",
		"--runtime", "memory=7G",
		"--set", `--input="NA12878.bam"`,
		"--exclude-args", "--intervals",
	)
	require.NoError(t, err)
	assert.Contains(t, out, `"PrintReads.memoryRequirements": "7G",`)
	assert.Contains(t, out, `"PrintReads.input": "NA12878.bam",`)
	assert.NotContains(t, out, "PrintReads.intervals")
}

func TestRender_UnknownIncludedArgument(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pr.yaml", printReadsYAML)

	_, err := execute(t, "render", path, "--quiet", "--include-args", "--inptu")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--input")
}

func TestRender_GlobToDirectory(t *testing.T) {
	src := t.TempDir()
	writeFile(t, src, "pr.yaml", printReadsYAML)
	writeFile(t, src, "cr.json", `{"name":"CountReads","version":"4.2.0.0","arguments":{"positional":[{"name":"--reads","testValue":"\"\""}]}}`)
	outDir := t.TempDir()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(src))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err = execute(t, "render", "--quiet", "--glob", "*.{yaml,json}", "--output", outDir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "PrintReadsTest.json"))
	assert.FileExists(t, filepath.Join(outDir, "CountReadsTest.json"))

	out, err := execute(t, "check", filepath.Join(outDir, "PrintReadsTest.json"), filepath.Join(outDir, "CountReadsTest.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "PrintReadsTest.json (")
}

func TestRender_MultipleRequireOutput(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", printReadsYAML)
	b := writeFile(t, dir, "b.yaml", printReadsYAML)

	_, err := execute(t, "render", a, b, "--quiet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires --output")
}

func TestRender_MalformedDescriptorWritesNothing(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "name: PrintReads\narguments:\n  required:\n    - testValue: '1'\n")

	out, err := execute(t, "render", path, "--quiet")
	require.Error(t, err)
	assert.Empty(t, out)
}

func TestCheck_InvalidFixture(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", "{\n  \"A.x\": 1\n}\n")
	bad := writeFile(t, dir, "bad.json", "{\n  \"A.x\": 1,\n}\n")

	out, err := execute(t, "check", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 fixtures invalid")
	assert.Contains(t, out, "good.json (1 keys, 0 null)")
}

func TestVerboseAndQuietConflict(t *testing.T) {
	_, err := execute(t, "check", "x.json", "--verbose", "--quiet")
	require.Error(t, err)
}

func TestWriteToolFixtures(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)
	flagToolVersion = "4.2.0.0"

	t.Run("one file per tool", func(t *testing.T) {
		flagDiscoverOut = t.TempDir()
		tools := []mcp.Tool{
			mcp.NewTool("count_reads", mcp.WithString("input", mcp.Required())),
			mcp.NewTool("print_reads", mcp.WithString("output")),
		}
		require.NoError(t, writeToolFixtures(tools))
		assert.FileExists(t, filepath.Join(flagDiscoverOut, "CountReadsTest.json"))
		assert.FileExists(t, filepath.Join(flagDiscoverOut, "PrintReadsTest.json"))
	})

	t.Run("shared task name", func(t *testing.T) {
		flagDiscoverOut = t.TempDir()
		tools := []mcp.Tool{
			mcp.NewTool("print-reads"),
			mcp.NewTool("print_reads"),
		}
		err := writeToolFixtures(tools)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "print-reads and print_reads both render task PrintReads")

		entries, err := os.ReadDir(flagDiscoverOut)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
