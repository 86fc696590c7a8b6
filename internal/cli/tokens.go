package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/headertool/internal/ui/pretty"
	"github.com/yaklabco/headertool/pkg/cppast"
	"github.com/yaklabco/headertool/pkg/fsutil"
	"github.com/yaklabco/headertool/pkg/parser"
	"github.com/yaklabco/headertool/pkg/token"
)

func newTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the token stream of a header",
		Long: `Preprocess and tokenize one header and print every token with its kind,
raw line:column and text. Comments and line splices are already removed.

Example:
  headertool tokens Source/Actor.h`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args[0])
		},
	}
}

func runTokens(cmd *cobra.Command, path string) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	content, _, err := fsutil.ReadFile(ctx, path, 0)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	file, err := parser.New().Tokenize(ctx, path, content)
	if err != nil {
		return err
	}

	colorMode, flagErr := cmd.Flags().GetString("color")
	if flagErr != nil {
		colorMode = "auto"
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))

	bw := bufio.NewWriter(cmd.OutOrStdout())
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	writeTokens(bw, styles, file)
	return nil
}

// writeTokens prints one token per line: position, kind, text.
func writeTokens(bw *bufio.Writer, styles *pretty.Styles, file *cppast.File) {
	for i, tok := range file.Tokens {
		lc := file.TokenPosition(i)
		pos := fmt.Sprintf("%d:%d", lc.Line, lc.Column)
		kind := fmt.Sprintf("%-16s", tok.Kind)

		line := styles.Location.Render(fmt.Sprintf("%8s", pos)) + "  " + styles.Kind.Render(kind)
		if tok.Kind != token.EndOfFile {
			line += " " + displayText(file.TokenText(i))
		}
		fmt.Fprintln(bw, strings.TrimRight(line, " "))
	}
}

// displayText quotes token text that would break the one-line layout.
func displayText(text string) string {
	if strings.ContainsAny(text, "\n\r\t") {
		return strconv.Quote(text)
	}
	return text
}
