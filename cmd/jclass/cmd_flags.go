package main

import (
	"fmt"
	"strconv"

	"github.com/dhamidi/jclass/classfile"
	"github.com/spf13/cobra"
)

func newFlagsCmd(a *app) *cobra.Command {
	var context string

	cmd := &cobra.Command{
		Use:   "flags <value | keyword...>",
		Short: "Render an access_flags value, or compute one from modifier keywords",
		Example: `  jclass flags 0x0019
  jclass flags public static final
  jclass flags --as class 0x0021`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				if v, err := strconv.ParseUint(args[0], 0, 16); err == nil {
					flags := classfile.AccessFlags(v)
					var text string
					switch context {
					case "member", "field":
						text = flags.String()
					case "class":
						text = flags.ClassString()
					case "method":
						text = flags.MethodString()
					default:
						return fmt.Errorf("invalid flag context %q (want member, field, class or method)", context)
					}
					fmt.Fprintf(out, "0x%04X %s\n", uint16(flags), text)
					return nil
				}
			}

			flags, err := classfile.ParseAccessFlags(args...)
			if err != nil {
				return fmt.Errorf("parse access flags: %w", err)
			}
			a.log.Debugf("parsed %v as %#04x", args, uint16(flags))
			fmt.Fprintf(out, "0x%04X %s\n", uint16(flags), flags)
			return nil
		},
	}

	cmd.Flags().StringVar(&context, "as", "member", "render a numeric value as member, field, class or method flags")
	return cmd
}
