package cmd

import (
	"strings"

	"moneymarket/handler/rest"

	"github.com/fox-one/pkg/qrcode"
	"github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var payCmd = &cobra.Command{
	Use:   "pay [supply|repay|liquidate] [symbol] [amount]",
	Short: "print a pay url that routes a transfer to the market",
	Long: `flags->
	borrower: debtor of repay and liquidate
	collateral: symbol to seize when liquidating`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		borrower, _ := cmd.Flags().GetString("borrower")
		collateral, _ := cmd.Flags().GetString("collateral")

		memo, err := rest.PayMemo(args[0], borrower, collateral)
		if err != nil {
			cmd.PrintErrln(err)
			return
		}

		amount, err := decimal.NewFromString(args[2])
		if err != nil || !amount.IsPositive() {
			cmd.PrintErrln("invalid amount", args[2])
			return
		}

		marketz, closeFn := provideMarket()
		defer closeFn()

		reserves, err := marketz.Reserves(cmd.Context())
		if err != nil {
			cmd.PrintErrln("list reserves failed:", err)
			return
		}

		symbol := strings.ToUpper(args[1])
		for _, r := range reserves {
			if r.Symbol != symbol {
				continue
			}

			url, err := provideWalletService(provideDapp()).PaySchemaURL(amount, r.AssetID, uuid.New(), memo)
			if err != nil {
				cmd.PrintErrln(err)
				return
			}

			cmd.Println(url)
			qrcode.Fprint(cmd.OutOrStdout(), url)
			return
		}

		cmd.PrintErrln("reserve", symbol, "not found")
	},
}

func init() {
	rootCmd.AddCommand(payCmd)
	payCmd.Flags().String("borrower", "", "borrower mixin id")
	payCmd.Flags().String("collateral", "", "collateral symbol")
}
