package cmd

import (
	"crypto/ed25519"
	"encoding/base64"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/pandodao/blst"
	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "generate a key pair, blst for oracle signers or ed25519",
	Run: func(cmd *cobra.Command, args []string) {
		cipher, _ := cmd.Flags().GetString("cipher")

		switch cipher {
		case "blst":
			private := blst.GenerateKey()
			cmd.Println("private key:", private.String())
			cmd.Println("public key:", base64.StdEncoding.EncodeToString(private.PublicKey().Bytes()))
		case "ed25519":
			private := mixin.GenerateEd25519Key()
			public := private.Public().(ed25519.PublicKey)
			cmd.Println("private key:", base64.StdEncoding.EncodeToString(private))
			cmd.Println("public key:", base64.StdEncoding.EncodeToString(public))
		default:
			cmd.PrintErrln("unknown cipher", cipher)
		}
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
	keysCmd.Flags().String("cipher", "blst", "blst or ed25519")
}
