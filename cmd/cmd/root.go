package cmd

import (
	"fmt"

	"github.com/ostafen/pngdec/internal/env"
	"github.com/spf13/cobra"
)

func Execute() error {
	rootCmd := &cobra.Command{
		Use:     env.AppName,
		Short:   env.AppName + " - PNG decoder and inspector",
		Version: fmt.Sprintf("%s (commit %s, built %s)", env.Version, env.CommitHash, env.BuildTime),
	}

	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "", "minimum log level (DEBUG, INFO, WARN, ERROR)")
	flags.String("log-file", "", "append logs to this file instead of stderr")
	flags.Bool("no-crc", false, "skip chunk checksum verification")
	flags.String("max-size", "", "maximum input file size, e.g. 64MB")
	flags.Uint64("max-pixels", 0, "maximum image width times height, 0 disables the check")
	flags.String("env-file", "", "load configuration variables from this file (default .env)")

	rootCmd.AddCommand(
		DefineInfoCommand(),
		DefineChunksCommand(),
		DefineConvertCommand(),
	)
	return rootCmd.Execute()
}
