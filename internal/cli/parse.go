package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/headertool/internal/configloader"
	"github.com/yaklabco/headertool/internal/logging"
	"github.com/yaklabco/headertool/pkg/config"
	"github.com/yaklabco/headertool/pkg/fsutil"
	"github.com/yaklabco/headertool/pkg/parser"
	"github.com/yaklabco/headertool/pkg/reporter"
	"github.com/yaklabco/headertool/pkg/runner"
)

type parseFlags struct {
	format           string
	output           string
	jobs             int
	ignore           []string
	include          []string
	extensions       []string
	apiMacroPattern  string
	maxFileSize      int64
	noContext        bool
	noSummary        bool
	noDeclarations   bool
	compact          bool
	includeGenerated bool
	includeVendor    bool
	followSymlinks   bool
	cFamilyOnly      bool
}

func newParseCommand(info BuildInfo) *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [paths...]",
		Short: "Parse headers and report reflected declarations",
		Long:  parseLongDescription + envHelp(),
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags, info)
		},
	}

	addParseFlags(cmd, flags)

	return cmd
}

const parseLongDescription = `Parse C++ headers and report their reflected declarations.

By default, parses every .h, .hh, .hpp, .hxx and .inl file under the current
directory. Hidden directories, vendored third-party directories and generated
headers (*.generated.h) are skipped. Specify paths to parse specific files or
directories.

The exit code is 1 if any file failed to parse. Every file is still reported.

Examples:
  headertool parse                         # Parse the current directory
  headertool parse Source/                 # Parse one directory
  headertool parse Actor.h                 # Parse a single file
  headertool parse --format json -o out.json
  headertool parse --format tree Actor.h   # Dump the syntax tree
`

// envHelp lists the environment variables that override config files.
func envHelp() string {
	var sb strings.Builder
	sb.WriteString("\nEnvironment:\n")
	for _, v := range configloader.ListEnvVars() {
		fmt.Fprintf(&sb, "  %-30s %s\n", v.Name, v.Description)
	}
	return sb.String()
}

func addParseFlags(cmd *cobra.Command, flags *parseFlags) {
	names := make([]string, 0, len(config.Formats()))
	for _, f := range config.Formats() {
		names = append(names, string(f))
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "output format: "+strings.Join(names, ", "))
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only parse files matching these glob patterns")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "header extensions to scan (e.g. .h,.hpp)")
	cmd.Flags().StringVar(&flags.apiMacroPattern, "api-macro-pattern", "",
		"regular expression matching export macros in class heads")
	cmd.Flags().Int64Var(&flags.maxFileSize, "max-file-size", 0, "fail files larger than this many bytes (0 = unlimited)")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the summary line")
	cmd.Flags().BoolVar(&flags.noDeclarations, "no-declarations", false, "list errors only in text output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use minified JSON and SARIF")
	cmd.Flags().BoolVar(&flags.includeGenerated, "include-generated", false, "parse generated headers too")
	cmd.Flags().BoolVar(&flags.includeVendor, "include-vendor", false, "descend into vendored directories")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")
	cmd.Flags().BoolVar(&flags.cFamilyOnly, "c-family-only", false, "skip files not detected as C, C++ or Objective-C")
}

// cliConfig holds only the values set on the command line, so that unset
// flags leave lower configuration layers alone.
func cliConfig(cmd *cobra.Command, flags *parseFlags) *config.Config {
	cfg := &config.Config{
		Format:          config.OutputFormat(strings.ToLower(flags.format)),
		Output:          flags.output,
		Jobs:            flags.jobs,
		APIMacroPattern: flags.apiMacroPattern,
		MaxFileSize:     flags.maxFileSize,
		NoContext:       flags.noContext,
	}

	changed := cmd.Flags().Changed
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("ext") {
		cfg.Extensions = normalizeExtensions(flags.extensions)
	}
	if changed("include-generated") {
		cfg.SkipGenerated = config.Bool(!flags.includeGenerated)
	}
	if changed("include-vendor") {
		cfg.SkipVendor = config.Bool(!flags.includeVendor)
	}
	if changed("follow-symlinks") {
		cfg.FollowSymlinks = config.Bool(flags.followSymlinks)
	}
	if changed("c-family-only") {
		cfg.CFamilyOnly = config.Bool(flags.cFamilyOnly)
	}

	return cfg
}

// normalizeExtensions accepts "h" as well as ".h".
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

func runParse(cmd *cobra.Command, args []string, flags *parseFlags, info BuildInfo) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliConfig(cmd, flags),
	})
	if err != nil {
		return errors.Join(ErrConfig, err)
	}
	cfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	apiMacro, err := regexp.Compile(cfg.EffectiveAPIMacroPattern())
	if err != nil {
		return errors.Join(ErrConfig, fmt.Errorf("api macro pattern: %w", err))
	}

	runOpts := runner.OptionsFromConfig(cfg, workDir, args)
	runOpts.IncludeGlobs = flags.include

	logger.Debug("starting parse run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
		logging.FieldFormat, cfg.Format,
	)

	result, err := runner.New(parser.New(parser.WithAPIMacroPattern(apiMacro))).Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("parse run failed: %w", err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	var out io.Writer = cmd.OutOrStdout()
	var buf bytes.Buffer
	if cfg.Output != "" {
		out = &buf
	}

	rep, err := reporter.New(reporter.Options{
		Writer:           out,
		Format:           format,
		Color:            colorMode,
		ShowContext:      !cfg.NoContext,
		ShowSummary:      !flags.noSummary,
		ShowDeclarations: !flags.noDeclarations,
		Compact:          flags.compact,
		ToolVersion:      info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return errors.Join(ErrOutput, err)
	}

	if cfg.Output != "" {
		written, err := fsutil.WriteAtomicIfChanged(ctx, cfg.Output, buf.Bytes(), 0)
		if err != nil {
			return errors.Join(ErrOutput, err)
		}
		logger.Debug("report written", logging.FieldOutput, cfg.Output, "changed", written)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrParseFailed
	}
	return nil
}
