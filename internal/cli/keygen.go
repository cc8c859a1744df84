package cli

import (
	"crypto/rand"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LeJamon/goAuctiond/internal/crypto/secp256k1"
	"github.com/LeJamon/goAuctiond/internal/types"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen [passphrase]",
	Short: "Derive a key pair and its account address",
	Long: `Derive a secp256k1 key pair from a passphrase, or from random bytes when
no passphrase is given, and print the account address. The passphrase or the
private key hex can be used as the secret of sign and submit requests.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			kp  *secp256k1.KeyPair
			err error
		)
		if len(args) == 1 {
			kp, err = secp256k1.KeyPairFromPassphrase(args[0])
		} else {
			secret := make([]byte, 32)
			if _, err := rand.Read(secret); err != nil {
				return err
			}
			kp, err = secp256k1.DeriveKeyPair(secret)
		}
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(map[string]string{
			"account":     types.AccountID(kp.AccountID()).String(),
			"public_key":  kp.PublicKeyHex(),
			"private_key": kp.PrivateKeyHex(),
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
}
