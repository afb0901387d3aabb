package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/eventlayout/pkg/errors"
	"github.com/matzehuels/eventlayout/pkg/field"
	"github.com/matzehuels/eventlayout/pkg/fixedwidth"
)

// encodeCommand creates the encode command.
func (c *CLI) encodeCommand() *cobra.Command {
	var (
		width     int
		alignment string
		typeHint  string
		quoted    bool
	)

	cmd := &cobra.Command{
		Use:   "encode <value>",
		Short: "Encode a single value into a fixed-width field",
		Long: `Encode pads or truncates value to exactly --width characters.

Alignments: BRANCO_ESQUERDA (value left, spaces right), BRANCO_DIREITA,
ZERO_ESQUERDA (zeros left), ZERO_DIREITA; English names are accepted too.
Without --align numeric types are zero-filled on the left and everything
else is space-filled on the right.`,
		Example: `  eventlayout encode 7 --width 4 --type INTEIRO
  eventlayout encode ABC --width 6 --align BRANCO_DIREITA --quote`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if width < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "width must not be negative (got %d)", width)
			}
			if strings.TrimSpace(alignment) != "" {
				if _, ok := field.ParseAlignment(alignment); !ok {
					return errors.New(errors.ErrCodeInvalidInput, "unknown alignment %q", alignment)
				}
			}

			encoded := fixedwidth.Encode(args[0], width, alignment, typeHint)
			if quoted {
				fmt.Fprintf(out, "%q\n", encoded)
			} else {
				fmt.Fprintln(out, encoded)
			}
			c.Logger.Debug("encoded value", "width", width,
				"alignment", fixedwidth.ResolveAlignment(alignment, typeHint))
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 0, "field width in characters")
	cmd.Flags().StringVarP(&alignment, "align", "a", "", "alignment token")
	cmd.Flags().StringVarP(&typeHint, "type", "t", "", "field type (numeric types default to zero fill)")
	cmd.Flags().BoolVarP(&quoted, "quote", "q", false, "print the result quoted to show padding")
	_ = cmd.MarkFlagRequired("width")

	return cmd
}
