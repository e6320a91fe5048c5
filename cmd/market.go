package cmd

import (
	"context"
	"encoding/json"

	"moneymarket/core"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

func provideMarket() (core.IMarketService, func()) {
	database := provideDatabase()
	marketz := provideMarketService(provideLedgerStore(database), provideBlockService())
	return marketz, func() { _ = database.Close() }
}

func printJSON(cmd *cobra.Command, v interface{}) {
	data, _ := json.MarshalIndent(v, "", "  ")
	cmd.Println(string(data))
}

// adminCommand run fn as the configured admin
func adminCommand(use, short string, args int, fn func(ctx context.Context, marketz core.IMarketService, admin string, args []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(args),
		Run: func(cmd *cobra.Command, args []string) {
			marketz, closeFn := provideMarket()
			defer closeFn()

			if err := fn(cmd.Context(), marketz, cfg.Market.Admin, args); err != nil {
				cmd.PrintErrln(cmd.Name(), "failed:", err)
				return
			}

			cmd.Println(cmd.Name(), "done")
		},
	}
}

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "global market settings",
}

var marketShowCmd = &cobra.Command{
	Use:   "show",
	Short: "print global settings",
	Run: func(cmd *cobra.Command, args []string) {
		marketz, closeFn := provideMarket()
		defer closeFn()

		global, err := marketz.Global(cmd.Context())
		if err != nil {
			cmd.PrintErrln("read global failed:", err)
			return
		}

		printJSON(cmd, global)
	},
}

func init() {
	rootCmd.AddCommand(marketCmd)

	marketCmd.AddCommand(
		marketShowCmd,
		adminCommand("init", "create the global settings with the configured admin", 0, func(ctx context.Context, m core.IMarketService, admin string, args []string) error {
			return m.Init(ctx, admin)
		}),
		adminCommand("pause [true|false]", "pause or resume the market", 1, func(ctx context.Context, m core.IMarketService, admin string, args []string) error {
			return m.SetPaused(ctx, admin, cast.ToBool(args[0]))
		}),
		adminCommand("ttl [seconds]", "set the price ttl", 1, func(ctx context.Context, m core.IMarketService, admin string, args []string) error {
			return m.SetPriceTTL(ctx, admin, cast.ToInt64(args[0]))
		}),
		adminCommand("close-factor [bps]", "set the liquidation close factor", 1, func(ctx context.Context, m core.IMarketService, admin string, args []string) error {
			return m.SetCloseFactor(ctx, admin, cast.ToInt64(args[0]))
		}),
		adminCommand("price-delta [bps]", "set the max price change per update", 1, func(ctx context.Context, m core.IMarketService, admin string, args []string) error {
			return m.SetMaxPriceDelta(ctx, admin, cast.ToInt64(args[0]))
		}),
		adminCommand("emergency [true|false] [bonus bps]", "toggle emergency liquidation bonus", 2, func(ctx context.Context, m core.IMarketService, admin string, args []string) error {
			return m.SetEmergency(ctx, admin, cast.ToBool(args[0]), cast.ToInt64(args[1]))
		}),
		adminCommand("max-emergency [bps]", "cap the emergency liquidation bonus", 1, func(ctx context.Context, m core.IMarketService, admin string, args []string) error {
			return m.SetMaxEmergencyBonus(ctx, admin, cast.ToInt64(args[0]))
		}),
		&cobra.Command{
			Use:   "updaters [mixin id...]",
			Short: "replace the authorised price updaters",
			Run: func(cmd *cobra.Command, args []string) {
				marketz, closeFn := provideMarket()
				defer closeFn()

				if err := marketz.SetUpdaters(cmd.Context(), cfg.Market.Admin, args); err != nil {
					cmd.PrintErrln("set updaters failed:", err)
					return
				}

				cmd.Println("updaters:", args)
			},
		},
	)
}
