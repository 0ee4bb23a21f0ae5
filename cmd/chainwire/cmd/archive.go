package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/skjold/chainwire/pkg/archive"
)

// archiveCmd groups the archive subcommands
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Work with the on-disk transaction archive",
}

var archiveImportCmd = &cobra.Command{
	Use:   "import <batch.bin>",
	Short: "Import a batch frame into the archive",
	Long: `Verify a batch frame and store every transaction in it in the
archive, atomically. A corrupt batch stores nothing.

Example:
  chainwire archive import batch.bin --data-dir=./data`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		buf, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read batch: %w", err)
		}

		batchID, count, err := store.ImportBatch(buf)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		cmd.Printf("Imported %d transactions as batch %s\n", count, batchID)
		return nil
	},
}

var archiveGetCmd = &cobra.Command{
	Use:   "get <transaction-id>",
	Short: "Fetch a transaction from the archive by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid transaction id %q", args[0])
		}

		store, err := openArchive(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		tx, err := store.Get(id)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(tx, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	},
}

func openArchive(cmd *cobra.Command) (*archive.Store, error) {
	order, err := wireOrder(cmd)
	if err != nil {
		return nil, err
	}
	dataDir, _ := cmd.Flags().GetString("data-dir")
	store, err := archive.Open(dataDir, order, newLogger("warn"))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return store, nil
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveImportCmd)
	archiveCmd.AddCommand(archiveGetCmd)
	archiveCmd.PersistentFlags().String("data-dir", "./data", "Archive data directory")
}
