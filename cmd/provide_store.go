package cmd

import (
	"time"

	"moneymarket/core"
	"moneymarket/store/action"
	"moneymarket/store/global"
	"moneymarket/store/ledger"
	"moneymarket/store/notification"
	"moneymarket/store/oracle"
	"moneymarket/store/position"
	"moneymarket/store/price"
	"moneymarket/store/reserve"
	"moneymarket/store/transfer"
	"moneymarket/store/user"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	_ "github.com/lib/pq"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideLedgerStore(db *db.DB) core.ILedgerStore {
	return ledger.New(
		db,
		global.New(db),
		reserve.New(db),
		position.New(db),
		price.New(db),
		transfer.New(db),
		action.New(db),
	)
}

func provideTransferStore(db *db.DB) core.ITransferStore {
	return transfer.New(db)
}

func provideNotificationStore(db *db.DB) core.INotificationStore {
	return notification.New(db)
}

func providePriceReader(db *db.DB) core.IPriceReader {
	return price.Cache(db, price.New(db), cfg.Cache.Size, time.Duration(cfg.Cache.TTL)*time.Second)
}

func provideOracleSignerStore(db *db.DB) core.OracleSignerStore {
	return oracle.NewSignerStore(db)
}

func provideUserStore(db *db.DB) core.IUserStore {
	return user.Cache(user.New(db), cfg.Cache.Size, time.Duration(cfg.Cache.TTL)*time.Second)
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}
