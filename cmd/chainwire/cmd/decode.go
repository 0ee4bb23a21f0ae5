package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skjold/chainwire/pkg/wire"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <frame.bin>",
	Short: "Decode a binary frame back into JSON",
	Long: `Decode a binary frame into a JSON transaction (or block, with
--block). The frame checksum is verified before any field is trusted.
With --ultra the input is read as the fixed 121-byte layout.

Examples:
  chainwire decode tx.bin
  chainwire decode block.bin --block
  chainwire decode tx.ultra --ultra --byte-order=big`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := wireOrder(cmd)
		if err != nil {
			return err
		}
		asBlock, _ := cmd.Flags().GetBool("block")
		asUltra, _ := cmd.Flags().GetBool("ultra")
		if asBlock && asUltra {
			return fmt.Errorf("--block and --ultra are mutually exclusive")
		}

		frame, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read frame: %w", err)
		}

		var decoded interface{}
		switch {
		case asBlock:
			var block wire.Block
			if err := wire.Deserialize(frame, order, &block); err != nil {
				return fmt.Errorf("decode: %w", err)
			}
			decoded = block
		case asUltra:
			tx, err := wire.DeserializeUltra(frame, order)
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}
			decoded = tx
		default:
			var tx wire.Transaction
			if err := wire.Deserialize(frame, order, &tx); err != nil {
				return fmt.Errorf("decode: %w", err)
			}
			decoded = tx
		}

		out, err := json.MarshalIndent(decoded, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().Bool("block", false, "Treat the frame as a block")
	decodeCmd.Flags().Bool("ultra", false, "Read the fixed 121-byte transaction layout")
}
