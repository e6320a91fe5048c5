package cmd

import (
	"moneymarket/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:     "migrate",
	Aliases: []string{"setdb"},
	Short:   "create or update the ledger tables",
	Run: func(cmd *cobra.Command, args []string) {
		database := provideDatabase()
		defer database.Close()

		if err := db.Migrate(database); err != nil {
			cmd.PrintErrln("migrate database error:", err)
			return
		}

		if initMarket, _ := cmd.Flags().GetBool("init"); !initMarket {
			return
		}

		marketz := provideMarketService(provideLedgerStore(database), provideBlockService())
		if err := marketz.Init(cmd.Context(), cfg.Market.Admin); err != nil && core.CodeOf(err) != core.ErrAlreadyInitialized {
			cmd.PrintErrln("init market error:", err)
			return
		}

		cmd.Println("market initialized, admin", cfg.Market.Admin)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().Bool("init", false, "also create the global settings with the configured admin")
}
