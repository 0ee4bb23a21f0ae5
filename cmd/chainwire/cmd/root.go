package cmd

import (
	"encoding/binary"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/skjold/chainwire/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chainwire",
	Short: "chainwire - binary transaction codec toolkit",
	Long: `chainwire encodes and decodes blockchain transactions and blocks
into checksummed binary frames, and runs the codec as an HTTP service.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("byte-order", "little", "Wire byte order (little or big)")
}

// wireOrder resolves the --byte-order flag into a binary.ByteOrder.
func wireOrder(cmd *cobra.Command) (binary.ByteOrder, error) {
	name, _ := cmd.Flags().GetString("byte-order")
	return config.Wire{ByteOrder: name}.Order()
}

// newLogger builds a console logger at the given level, defaulting to info.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}
