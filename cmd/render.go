package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/thellimist/fixturegen/internal/descriptor"
	"github.com/thellimist/fixturegen/internal/fixture"
	"github.com/thellimist/fixturegen/internal/nameutil"
	"github.com/thellimist/fixturegen/internal/selector"
)

var (
	flagRenderGlob        string
	flagRenderOutput      string
	flagIncludeArgs       string
	flagExcludeArgs       string
	flagRuntime           []string
	flagSet               []string
	flagCollapsePositions bool
)

var renderCmd = &cobra.Command{
	Use:   "render [DESCRIPTOR...]",
	Short: "Render fixtures from descriptor files",
	Long: `Render JSON test-input fixtures from tool descriptor files (JSON or YAML).

With a single descriptor and no --output the fixture is written to stdout.
Otherwise each fixture is written to <output>/<Task>Test.json.

Examples:
  # One descriptor to stdout
  fixturegen render tools/HaplotypeCaller.yaml

  # Every descriptor under tools/ into fixtures/
  fixturegen render --glob 'tools/**/*.yaml' --output fixtures/

  # Override runtime properties and a test value
  fixturegen render hc.yaml --runtime memory=7G --runtime cpu=2 --set '--input="NA12878.bam"'

  # Only render some arguments
  fixturegen render hc.yaml --include-args --input,--output`,
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVar(&flagRenderGlob, "glob", "", "doublestar pattern selecting descriptor files, relative to the working directory")
	f.StringVar(&flagRenderOutput, "output", "", "directory where fixtures are written (default stdout for a single descriptor)")
	f.StringVar(&flagIncludeArgs, "include-args", "", "only render these arguments (comma-separated)")
	f.StringVar(&flagExcludeArgs, "exclude-args", "", "do not render these arguments (comma-separated)")
	f.StringArrayVar(&flagRuntime, "runtime", nil, "runtime property override FIELD=VALUE (repeatable)")
	f.StringArrayVar(&flagSet, "set", nil, "test value override ARG=JSON (repeatable)")
	f.BoolVar(&flagCollapsePositions, "collapse-positionals", false, "emit positional arguments as one array-valued entry")
}

func runRender(cmd *cobra.Command, args []string) error {
	if flagIncludeArgs != "" && flagExcludeArgs != "" {
		return fmt.Errorf("--include-args and --exclude-args cannot be used together")
	}

	paths := append([]string(nil), args...)
	if flagRenderGlob != "" {
		matches, err := globFiles(".", flagRenderGlob)
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return fmt.Errorf("--glob %q matched no files", flagRenderGlob)
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return fmt.Errorf("provide descriptor files or --glob")
	}
	if len(paths) > 1 && flagRenderOutput == "" {
		return fmt.Errorf("rendering %d descriptors requires --output", len(paths))
	}

	overrides := descriptor.Overrides{Runtime: flagRuntime, Values: flagSet}
	opts := fixture.Options{CollapsePositionals: flagCollapsePositions}
	written := make(map[string]string)

	for _, path := range paths {
		logger.Debug("loading descriptor", "path", path)
		d, err := descriptor.Load(path)
		if err != nil {
			return err
		}

		d, err = selectArguments(d)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if !overrides.Empty() {
			d, err = descriptor.Apply(d, overrides)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}

		doc, err := fixture.Render(d, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if flagRenderOutput == "" {
			_, err := fmt.Fprint(cmd.OutOrStdout(), doc)
			return err
		}

		if prev, dup := written[d.Name]; dup {
			return fmt.Errorf("%s and %s both render task %s", prev, path, d.Name)
		}
		written[d.Name] = path

		target, err := writeFixture(flagRenderOutput, d.Name, doc)
		if err != nil {
			return err
		}
		logger.Info("wrote fixture", "task", d.Name, "path", target)
	}

	return nil
}

// selectArguments applies --include-args / --exclude-args.
func selectArguments(d *descriptor.ToolDescriptor) (*descriptor.ToolDescriptor, error) {
	include := selector.ParseList(flagIncludeArgs)
	exclude := selector.ParseList(flagExcludeArgs)
	if len(include) == 0 && len(exclude) == 0 {
		return d, nil
	}

	names, err := selector.Selector{Kind: "argument", AllowEmpty: true}.Select(d.ArgumentNames(), include, exclude)
	if err != nil {
		return nil, err
	}
	logger.Debug("selected arguments", "task", d.Name, "count", len(names))
	return d.Retain(names), nil
}

// writeFixture writes doc to dir/<task>Test.json and returns the path.
func writeFixture(dir, task, doc string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	target := filepath.Join(dir, nameutil.FixtureFileName(task))
	if err := os.WriteFile(target, []byte(doc), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	return target, nil
}

func globFiles(basePath, pattern string) ([]string, error) {
	var matches []string

	fsys := os.DirFS(basePath)
	err := doublestar.GlobWalk(fsys, pattern, func(path string, d fs.DirEntry) error {
		if !d.IsDir() {
			matches = append(matches, filepath.Join(basePath, path))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("glob: %w", err)
	}

	sort.Strings(matches)
	return matches, nil
}
