package main

import (
	"fmt"
	"strings"

	"github.com/dhamidi/jclass/classfile"
	"github.com/spf13/cobra"
)

func newClassCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "class <file.class>",
		Short: "Print the declarations of a class file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := classfile.DecodeFile(args[0])
			if err != nil {
				return fmt.Errorf("decode class file: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version %s", c.Version)
			if release := c.Version.JavaRelease(); release != "" {
				fmt.Fprintf(out, " (Java %s)", release)
			}
			fmt.Fprintln(out)

			fmt.Fprintf(out, "%s%s", a.keyword(c.Access.ClassString()), c.Name)
			if c.SuperClass != "" {
				fmt.Fprintf(out, " extends %s", c.SuperClass)
			}
			if len(c.Interfaces) > 0 {
				fmt.Fprintf(out, " implements %s", strings.Join(c.Interfaces, ", "))
			}
			fmt.Fprintln(out)

			for _, f := range c.Fields {
				fmt.Fprintf(out, "  %s%s %s\n", a.keyword(f.Access.String()), f.Type, f.Name)
			}
			for _, m := range c.Methods {
				fmt.Fprintf(out, "  %s%s %s  // locals %d\n", a.keyword(m.Access.MethodString()), m.Type, m.Name, m.LocalsSize())
			}
			return nil
		},
	}
}
