package cli

import (
	"fmt"
	"io"
	"os"

	"crosslocale/internal/gettextpo"

	"github.com/spf13/cobra"
)

type messageWriter interface {
	Write(msg *gettextpo.Message) error
}

func parsePoCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse-po [file]",
		Short: "Parse a catalog and print its messages",
		Long: `Parses a single PO catalog (standard input when no file is given) and
prints the messages back either as normalized PO or as JSON objects.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "<stdin>"
			var data []byte
			var err error
			if len(args) == 1 {
				filename = args[0]
				data, err = os.ReadFile(filename)
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("read catalog: %w", err)
			}
			return runParsePo(cmd.OutOrStdout(), filename, string(data), asJSON)
		},
	}

	cmd.Flags().BoolVarP(&asJSON, "json", "J", false, "Print one JSON object per message")
	return cmd
}

// runParsePo prints every message parsed before the first error, then
// reports that error.
func runParsePo(out io.Writer, filename, src string, asJSON bool) error {
	var w messageWriter = gettextpo.NewPOWriter(out)
	if asJSON {
		w = gettextpo.NewJSONWriter(out)
	}

	messages, parseErr := parseCatalog(filename, src)
	for _, msg := range messages {
		if err := w.Write(msg); err != nil {
			return err
		}
	}
	if parseErr != nil {
		logCatalogError(parseErr)
		return parseErr
	}
	return nil
}
