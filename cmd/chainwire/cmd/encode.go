package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skjold/chainwire/pkg/wire"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode <input.json>",
	Short: "Encode a JSON transaction or block into a binary frame",
	Long: `Encode a JSON transaction (or block, with --block) into a
checksummed binary frame. With --ultra the transaction is packed into the
fixed 121-byte low-latency layout instead, which carries no checksum.

Examples:
  chainwire encode tx.json -o tx.bin
  chainwire encode block.json --block -o block.bin
  chainwire encode tx.json --ultra --byte-order=big -o tx.ultra`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := wireOrder(cmd)
		if err != nil {
			return err
		}
		asBlock, _ := cmd.Flags().GetBool("block")
		asUltra, _ := cmd.Flags().GetBool("ultra")
		output, _ := cmd.Flags().GetString("output")
		if asBlock && asUltra {
			return fmt.Errorf("--block and --ultra are mutually exclusive")
		}

		input, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		var frame []byte
		switch {
		case asBlock:
			var block wire.Block
			if err := json.Unmarshal(input, &block); err != nil {
				return fmt.Errorf("parse block: %w", err)
			}
			frame, err = wire.Serialize(&block, order)
		case asUltra:
			var tx wire.Transaction
			if err := json.Unmarshal(input, &tx); err != nil {
				return fmt.Errorf("parse transaction: %w", err)
			}
			var fixed [wire.UltraSize]byte
			fixed, err = wire.SerializeUltra(&tx, order)
			frame = fixed[:]
		default:
			var tx wire.Transaction
			if err := json.Unmarshal(input, &tx); err != nil {
				return fmt.Errorf("parse transaction: %w", err)
			}
			frame, err = wire.Serialize(&tx, order)
		}
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}

		if output == "" || output == "-" {
			_, err = os.Stdout.Write(frame)
			return err
		}
		if err := os.WriteFile(output, frame, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		cmd.Printf("Wrote %d bytes to %s\n", len(frame), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	encodeCmd.Flags().Bool("block", false, "Treat the input as a block")
	encodeCmd.Flags().Bool("ultra", false, "Use the fixed 121-byte transaction layout")
}
