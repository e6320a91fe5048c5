package cmd

import (
	"sync"
	"time"

	"moneymarket/worker"
	"moneymarket/worker/cashier"
	"moneymarket/worker/interest"
	"moneymarket/worker/payee"
	"moneymarket/worker/priceoracle"
	"moneymarket/worker/pruner"
	"moneymarket/worker/syncer"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "run the market workers",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := signal.WithContext(cmd.Context())
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		dapp := provideDapp()
		ledgers := provideLedgerStore(database)
		transfers := provideTransferStore(database)
		notifications := provideNotificationStore(database)
		properties := providePropertyStore(database)

		walletz := provideWalletService(dapp)
		marketz := provideMarketService(ledgers, provideBlockService())
		oraclez := provideOracleService(provideOracleSignerStore(database), marketz)

		batch, _ := cmd.Flags().GetInt("cashier.batch")
		capacity, _ := cmd.Flags().GetInt64("cashier.capacity")
		priceInterval, _ := cmd.Flags().GetDuration("price.interval")
		accrueSpec, _ := cmd.Flags().GetString("interest.spec")
		retention, _ := cmd.Flags().GetDuration("prune.retention")

		workers := []worker.Worker{
			syncer.New(walletz, notifications, properties),
			payee.New(notifications, ledgers, marketz, properties),
			cashier.New(transfers, walletz, cashier.Config{Batch: batch, Capacity: capacity}),
		}

		if cfg.Oracle.EndPoint != "" {
			workers = append(workers, priceoracle.New(cfg.Oracle.Updater, priceInterval, oraclez, marketz))
		}

		interestJob, err := interest.New(accrueSpec, marketz)
		if err != nil {
			log.WithError(err).Fatalln("invalid interest spec")
		}

		pruneJob, err := pruner.New("@every 10m", retention, notifications, properties)
		if err != nil {
			log.WithError(err).Fatalln("new pruner")
		}

		wg := sync.WaitGroup{}
		for _, w := range workers {
			wg.Add(1)

			go func(w worker.Worker) {
				defer wg.Done()
				_ = w.Run(ctx)
			}(w)
		}

		for _, job := range []worker.IJob{interestJob, pruneJob} {
			wg.Add(1)

			go func(job worker.IJob) {
				defer wg.Done()
				_ = worker.RunJob(ctx, job)
			}(job)
		}

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)

	workerCmd.Flags().Int("cashier.batch", 100, "transfers sent per round")
	workerCmd.Flags().Int64("cashier.capacity", 1, "transfers sent in parallel")
	workerCmd.Flags().Duration("price.interval", time.Minute, "ticker pull interval")
	workerCmd.Flags().String("interest.spec", "@every 1m", "reserve accrual schedule")
	workerCmd.Flags().Duration("prune.retention", 48*time.Hour, "keep handled notifications this long")
}

