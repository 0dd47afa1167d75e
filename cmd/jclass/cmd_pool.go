package main

import (
	"fmt"

	"github.com/dhamidi/jclass/classfile"
	"github.com/spf13/cobra"
)

func newPoolCmd(a *app) *cobra.Command {
	var showWords bool

	cmd := &cobra.Command{
		Use:   "pool <file.class>",
		Short: "Print the resolved constant pool of a class file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := classfile.DecodeFile(args[0])
			if err != nil {
				return fmt.Errorf("decode class file: %w", err)
			}
			a.log.Infof("%s: %d constant pool slots", args[0], c.Pool.Len())

			out := cmd.OutOrStdout()
			for i, entry := range c.Pool.Entries() {
				idx := a.index(fmt.Sprintf("#%d", i+1))
				if showWords && entry.Tag() != classfile.ConstantPlaceholder {
					fmt.Fprintf(out, "%s = %v %08x\n", idx, entry, entry.Words())
					continue
				}
				fmt.Fprintf(out, "%s = %v\n", idx, entry)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showWords, "words", "w", false, "also print the 32-bit words of each entry")

	return cmd
}
