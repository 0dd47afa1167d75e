package main

import (
	"fmt"
	"strings"

	"github.com/dhamidi/jclass/classfile"
	"github.com/spf13/cobra"
)

func newTypeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "type <descriptor>",
		Short: "Explain a field or method descriptor",
		Example: `  jclass type '[Ljava/lang/String;'
  jclass type '(JI)Ljava/lang/Object;'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			desc := args[0]

			if strings.HasPrefix(desc, "(") {
				md, err := classfile.ParseMethodDescriptor(desc)
				if err != nil {
					return fmt.Errorf("parse method descriptor: %w", err)
				}
				fmt.Fprintf(out, "%s\n", md)
				fmt.Fprintf(out, "parameter slots: %d\n", md.ParameterSize())
				fmt.Fprintf(out, "return slots: %d\n", md.ReturnSize())
				return nil
			}

			ft, err := classfile.ParseFieldDescriptor(desc)
			if err != nil {
				return fmt.Errorf("parse field descriptor: %w", err)
			}
			a.log.Debugf("%s has index %d", ft, ft.Index())
			fmt.Fprintf(out, "%s\n", ft)
			fmt.Fprintf(out, "slots: %d\n", ft.Size())
			fmt.Fprintf(out, "reference: %t\n", ft.IsReference())
			return nil
		},
	}
}
