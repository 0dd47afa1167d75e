package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "jclass",
		Short:        "Inspect the constant pool and declarations of JVM class files",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./jclass.yaml)")
	rootCmd.PersistentFlags().CountP("verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto, always, never)")

	rootCmd.AddCommand(newPoolCmd(a))
	rootCmd.AddCommand(newClassCmd(a))
	rootCmd.AddCommand(newFlagsCmd(a))
	rootCmd.AddCommand(newTypeCmd(a))

	return rootCmd
}
