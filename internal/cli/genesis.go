package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LeJamon/goAuctiond/internal/core/ledger/genesis"
	"github.com/LeJamon/goAuctiond/internal/core/ledger/keylet"
)

var genesisCmd = &cobra.Command{
	Use:   "genesis",
	Short: "Initialize the state store and print the genesis description",
	Long: `Write the genesis state when the configured store is empty, then print the
protocol parameters, the derived vault and treasury accounts and the funded
accounts. The genesis account is derived from the passphrase "` + genesis.MasterPassphrase + `".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		g, err := cfg.GenesisConfig()
		if err != nil {
			return err
		}
		_, master, err := genesis.GenesisAccountID()
		if err != nil {
			return err
		}

		n, err := openNode(cmd.Context(), cfg, newLogger(cfg), false)
		if err != nil {
			return err
		}
		if err := n.Close(); err != nil {
			return err
		}

		cfgKey := keylet.ProtocolConfig(g.Protocol.Seed)
		accounts := make([]map[string]interface{}, 0, len(g.Accounts))
		for _, a := range g.Accounts {
			accounts = append(accounts, map[string]interface{}{
				"account": a.ID.String(),
				"balance": a.Balance,
			})
		}
		out, err := json.MarshalIndent(map[string]interface{}{
			"genesis_account": master,
			"config_index":    fmt.Sprintf("%X", cfgKey.Key),
			"protocol": map[string]interface{}{
				"seed":         g.Protocol.Seed,
				"admin":        g.Protocol.Admin.String(),
				"fee_bps":      g.Protocol.FeeBps,
				"min_duration": g.Protocol.MinDuration,
				"max_duration": g.Protocol.MaxDuration,
				"record_rent":  g.Protocol.RecordRent,
				"vault":        keylet.VaultAccount(cfgKey).String(),
				"treasury":     keylet.TreasuryAccount(cfgKey).String(),
			},
			"accounts": accounts,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(genesisCmd)
}
