package cmd

import (
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "users that logged into the api",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "list users by id",
	Run: func(cmd *cobra.Command, args []string) {
		database := provideDatabase()
		defer database.Close()

		from, _ := cmd.Flags().GetInt64("from")
		limit, _ := cmd.Flags().GetInt("limit")

		users, err := provideUserStore(database).List(cmd.Context(), from, limit)
		if err != nil {
			cmd.PrintErrln("list users failed:", err)
			return
		}

		for _, u := range users {
			cmd.Println(u.ID, u.MixinID, u.Name, u.CreatedAt.Format("2006-01-02 15:04:05"))
		}
	},
}

var usersShowCmd = &cobra.Command{
	Use:   "show [mixin id]",
	Short: "print a user with its account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		database := provideDatabase()
		defer database.Close()

		user, err := provideUserStore(database).Find(cmd.Context(), args[0])
		if err != nil {
			cmd.PrintErrln("find user failed:", err)
			return
		}

		marketz := provideMarketService(provideLedgerStore(database), provideBlockService())
		account, err := marketz.Account(cmd.Context(), user.MixinID)
		if err != nil {
			cmd.PrintErrln("read account failed:", err)
			return
		}

		printJSON(cmd, map[string]interface{}{
			"user":    user,
			"account": account,
		})
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd, usersShowCmd)

	usersListCmd.Flags().Int64("from", 0, "list users with id above")
	usersListCmd.Flags().Int("limit", 100, "max users listed")
}
