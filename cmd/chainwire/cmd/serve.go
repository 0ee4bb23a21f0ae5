package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skjold/chainwire/pkg/api"
	"github.com/skjold/chainwire/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the codec HTTP API server",
	Long: `Start the chainwire HTTP API server. Settings come from the
config file when one exists, overridden by flags.

Examples:
  chainwire serve
  chainwire serve --port=9090 --config=./chainwire.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		cfg := config.DefaultConfig()
		if config.ConfigExists(configPath) {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg = loaded
		}

		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			cfg.Bind, _ = cmd.Flags().GetString("bind")
		}
		if cmd.Flags().Changed("byte-order") {
			cfg.Wire.ByteOrder, _ = cmd.Flags().GetString("byte-order")
		}

		order, err := cfg.Wire.Order()
		if err != nil {
			return err
		}

		log := newLogger(cfg.Logging.Level)
		return api.StartServer(api.ServerConfig{
			Port:      cfg.Port,
			Bind:      cfg.Bind,
			ByteOrder: cfg.Wire.ByteOrder,
		}, order, log)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("config", "c", "", "Config file path")
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind")
}
