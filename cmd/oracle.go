package cmd

import (
	"encoding/base64"
	"strings"

	"github.com/pandodao/blst"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "read or set reserve prices",
}

var priceListCmd = &cobra.Command{
	Use:   "list",
	Short: "print committed prices",
	Run: func(cmd *cobra.Command, args []string) {
		database := provideDatabase()
		defer database.Close()

		prices, err := providePriceReader(database).ListPrices(cmd.Context())
		if err != nil {
			cmd.PrintErrln("list prices failed:", err)
			return
		}

		printJSON(cmd, prices)
	},
}

var priceSetCmd = &cobra.Command{
	Use:   "set [symbol] [price]",
	Short: "set a price as the configured admin, who must be an updater",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		marketz, closeFn := provideMarket()
		defer closeFn()

		price, err := decimal.NewFromString(args[1])
		if err != nil {
			cmd.PrintErrln("invalid price:", err)
			return
		}

		symbol := strings.ToUpper(args[0])
		if err := marketz.SetPrice(cmd.Context(), cfg.Market.Admin, symbol, price, nil); err != nil {
			cmd.PrintErrln("set price failed:", err)
			return
		}

		cmd.Println(symbol, "price set to", price)
	},
}

var signerCmd = &cobra.Command{
	Use:   "signer",
	Short: "manage oracle signers",
}

var signerListCmd = &cobra.Command{
	Use:   "list",
	Short: "print oracle signers",
	Run: func(cmd *cobra.Command, args []string) {
		database := provideDatabase()
		defer database.Close()

		signers, err := provideOracleSignerStore(database).FindAll(cmd.Context())
		if err != nil {
			cmd.PrintErrln("list signers failed:", err)
			return
		}

		printJSON(cmd, signers)
	},
}

var signerAddCmd = &cobra.Command{
	Use:   "add [user id] [base64 public key]",
	Short: "add or replace an oracle signer",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		bts, err := base64.StdEncoding.DecodeString(args[1])
		if err == nil {
			var pub blst.PublicKey
			err = pub.FromBytes(bts)
		}

		if err != nil {
			cmd.PrintErrln("invalid public key:", err)
			return
		}

		database := provideDatabase()
		defer database.Close()

		if err := provideOracleSignerStore(database).Save(cmd.Context(), args[0], args[1]); err != nil {
			cmd.PrintErrln("save signer failed:", err)
			return
		}

		cmd.Println("signer", args[0], "saved")
	},
}

var signerRemoveCmd = &cobra.Command{
	Use:     "rm [user id]",
	Aliases: []string{"remove"},
	Short:   "remove an oracle signer",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		database := provideDatabase()
		defer database.Close()

		if err := provideOracleSignerStore(database).Delete(cmd.Context(), args[0]); err != nil {
			cmd.PrintErrln("remove signer failed:", err)
			return
		}

		cmd.Println("signer", args[0], "removed")
	},
}

func init() {
	rootCmd.AddCommand(priceCmd)
	priceCmd.AddCommand(priceListCmd, priceSetCmd)

	rootCmd.AddCommand(signerCmd)
	signerCmd.AddCommand(signerListCmd, signerAddCmd, signerRemoveCmd)
}
