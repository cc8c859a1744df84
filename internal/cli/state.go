package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// stateCmd opens the state store directly and must not run next to a
// server using the same path.
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the protocol config, accounts and auctions as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		n, err := openNode(cmd.Context(), cfg, newLogger(cfg), false)
		if err != nil {
			return err
		}
		defer n.Close()

		protocol, err := n.ledger.Config(cfg.Protocol.Seed)
		if err != nil {
			return fmt.Errorf("protocol config: %w", err)
		}
		accounts, err := n.ledger.Accounts()
		if err != nil {
			return fmt.Errorf("accounts: %w", err)
		}
		auctions, err := n.ledger.Auctions()
		if err != nil {
			return fmt.Errorf("auctions: %w", err)
		}
		supply, err := n.ledger.Supply()
		if err != nil {
			return fmt.Errorf("supply: %w", err)
		}

		out, err := json.MarshalIndent(map[string]interface{}{
			"protocol": protocol,
			"accounts": accounts,
			"auctions": auctions,
			"supply":   supply,
			"applied":  n.ledger.Applied(),
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
}
