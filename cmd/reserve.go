package cmd

import (
	"context"
	"strings"

	"moneymarket/core"

	"github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var reserveCmd = &cobra.Command{
	Use:   "reserve",
	Short: "manage listed reserves",
}

var defaultParams = core.ReserveParams{
	LiquidationBonus:   10500,
	ReserveFactor:      1000,
	OptimalUtilization: 8000,
}

func addParamsFlags(flags *pflag.FlagSet) {
	flags.Int64("max-ltv", 0, "max loan to value, bps")
	flags.Int64("threshold", 0, "liquidation threshold, bps")
	flags.Int64("bonus", 0, "liquidation bonus, bps (add: 10500)")
	flags.Int64("reserve-factor", 0, "share of interest kept by the protocol, bps (add: 1000)")
	flags.Int64("u-opt", 0, "optimal utilization, bps (add: 8000)")
	flags.Int64("r0", 0, "borrow rate at zero utilization, bps")
	flags.Int64("r-opt", 0, "borrow rate at optimal utilization, bps")
	flags.Int64("r-max", 0, "borrow rate at full utilization, bps")
}

// paramsFromFlags base with every flag set on the command line applied
func paramsFromFlags(flags *pflag.FlagSet, base core.ReserveParams) core.ReserveParams {
	set := func(name string, v *int64) {
		if flags.Changed(name) {
			*v, _ = flags.GetInt64(name)
		}
	}

	p := base
	set("max-ltv", &p.MaxLTV)
	set("threshold", &p.LiquidationThreshold)
	set("bonus", &p.LiquidationBonus)
	set("reserve-factor", &p.ReserveFactor)
	set("u-opt", &p.OptimalUtilization)
	set("r0", &p.BaseRate)
	set("r-opt", &p.OptimalRate)
	set("r-max", &p.MaxRate)
	return p
}

var reserveListCmd = &cobra.Command{
	Use:   "list",
	Short: "print reserves with their current rates",
	Run: func(cmd *cobra.Command, args []string) {
		marketz, closeFn := provideMarket()
		defer closeFn()

		reserves, err := marketz.Reserves(cmd.Context())
		if err != nil {
			cmd.PrintErrln("list reserves failed:", err)
			return
		}

		printJSON(cmd, reserves)
	},
}

var reserveAddCmd = &cobra.Command{
	Use:   "add [symbol] [asset id] [precision]",
	Short: "list a new reserve",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		marketz, closeFn := provideMarket()
		defer closeFn()

		precision, err := cast.ToInt32E(args[2])
		if err != nil {
			cmd.PrintErrln("invalid precision:", err)
			return
		}

		reserve := &core.Reserve{
			Symbol:        strings.ToUpper(args[0]),
			AssetID:       args[1],
			Precision:     precision,
			ReserveParams: paramsFromFlags(cmd.Flags(), defaultParams),
		}

		if err := marketz.AddReserve(cmd.Context(), cfg.Market.Admin, reserve); err != nil {
			cmd.PrintErrln("add reserve failed:", err)
			return
		}

		printJSON(cmd, reserve)
	},
}

var reserveUpdateCmd = &cobra.Command{
	Use:   "update [symbol]",
	Short: "change the risk and curve parameters given by flags",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		marketz, closeFn := provideMarket()
		defer closeFn()

		symbol := strings.ToUpper(args[0])
		reserves, err := marketz.Reserves(cmd.Context())
		if err != nil {
			cmd.PrintErrln("list reserves failed:", err)
			return
		}

		var current *core.Reserve
		for _, r := range reserves {
			if r.Symbol == symbol {
				current = r.Reserve
			}
		}

		if current == nil {
			cmd.PrintErrln("reserve", symbol, "not found")
			return
		}

		params := paramsFromFlags(cmd.Flags(), current.ReserveParams)
		if err := marketz.UpdateReserve(cmd.Context(), cfg.Market.Admin, symbol, params); err != nil {
			cmd.PrintErrln("update reserve failed:", err)
			return
		}

		cmd.Println("reserve", symbol, "updated")
	},
}

var reserveCollectCmd = &cobra.Command{
	Use:   "collect [symbol] [amount] [receiver]",
	Short: "send protocol reserve to the receiver",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		marketz, closeFn := provideMarket()
		defer closeFn()

		amount, err := decimal.NewFromString(args[1])
		if err != nil {
			cmd.PrintErrln("invalid amount:", err)
			return
		}

		trace, _ := cmd.Flags().GetString("trace")
		if trace == "" {
			trace = uuid.New()
		}

		if err := marketz.CollectReserve(cmd.Context(), cfg.Market.Admin, strings.ToUpper(args[0]), amount, args[2], trace); err != nil {
			cmd.PrintErrln("collect reserve failed:", err)
			return
		}

		cmd.Println("collected, trace", trace)
	},
}

func init() {
	rootCmd.AddCommand(reserveCmd)

	addParamsFlags(reserveAddCmd.Flags())
	addParamsFlags(reserveUpdateCmd.Flags())
	reserveCollectCmd.Flags().String("trace", "", "trace id, random if empty")

	reserveCmd.AddCommand(
		reserveListCmd,
		reserveAddCmd,
		reserveUpdateCmd,
		reserveCollectCmd,
		adminCommand("pause [symbol] [true|false]", "pause or resume a reserve", 2, func(ctx context.Context, m core.IMarketService, admin string, args []string) error {
			return m.SetReservePaused(ctx, admin, strings.ToUpper(args[0]), cast.ToBool(args[1]))
		}),
	)
}
