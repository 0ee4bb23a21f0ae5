package cmd

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skjold/chainwire/pkg/wire"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <frame.bin>",
	Short: "Report a frame's header and digest without decoding it",
	Long: `Inspect a binary frame: print its declared length, payload size
and BLAKE3 digest, and whether the stored digest matches the payload.
Nothing is decoded, so inspect works on frames of any entity type.

Example:
  chainwire inspect tx.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := wireOrder(cmd)
		if err != nil {
			return err
		}

		frame, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read frame: %w", err)
		}

		cmd.Printf("file:           %s\n", args[0])
		cmd.Printf("frame size:     %d bytes\n", len(frame))
		if len(frame) == wire.UltraSize {
			cmd.Println("note:           size matches the fixed 121-byte layout (no checksum)")
		}
		if len(frame) < wire.PrefixSize {
			return fmt.Errorf("frame too short for a length prefix")
		}
		declared := order.Uint32(frame[:wire.PrefixSize])
		cmd.Printf("declared length: %d bytes\n", declared)
		cmd.Printf("payload size:   %d bytes\n", int(declared)-wire.ChecksumSize)

		payload, err := wire.VerifyBatch(frame, order)
		if err != nil {
			var checksumErr *wire.ChecksumError
			if errors.As(err, &checksumErr) {
				cmd.Printf("checksum:       MISMATCH\n")
				cmd.Printf("  stored:       %s\n", hex.EncodeToString(checksumErr.Stored))
				cmd.Printf("  computed:     %s\n", hex.EncodeToString(checksumErr.Computed))
				return fmt.Errorf("frame is corrupted")
			}
			return fmt.Errorf("inspect: %w", err)
		}

		sum := wire.Checksum(payload)
		cmd.Printf("checksum:       OK\n")
		cmd.Printf("  digest:       %s\n", hex.EncodeToString(sum[:]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
