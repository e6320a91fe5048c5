package cmd

import (
	"moneymarket/core"
	"moneymarket/service/block"
	"moneymarket/service/market"
	"moneymarket/service/oracle"
	"moneymarket/service/session"
	"moneymarket/service/user"
	"moneymarket/service/wallet"

	"github.com/fox-one/mixin-sdk-go"
)

func provideMixinClient() *mixin.Client {
	c, err := mixin.NewFromKeystore(&cfg.Dapp.Keystore)
	if err != nil {
		panic(err)
	}

	return c
}

func provideDapp() *core.Wallet {
	return &core.Wallet{
		Client: provideMixinClient(),
		Pin:    cfg.Dapp.Pin,
	}
}

func provideBlockService() core.IBlockService {
	return block.New(block.Config{
		Genesis:         cfg.Block.Genesis,
		SecondsPerBlock: cfg.Block.SecondsPerBlock,
	})
}

func provideMarketService(ledgers core.ILedgerStore, blocks core.IBlockService) core.IMarketService {
	return market.New(ledgers, blocks)
}

func provideOracleService(signers core.OracleSignerStore, marketz core.IMarketService) core.IOracleService {
	return oracle.New(oracle.Config{
		EndPoint:  cfg.Oracle.EndPoint,
		Updater:   cfg.Oracle.Updater,
		Threshold: cfg.Oracle.Threshold,
	}, signers, marketz)
}

func provideWalletService(dapp *core.Wallet) core.IWalletService {
	return wallet.New(dapp)
}

func provideSession(users core.IUserStore, client *mixin.Client) core.Session {
	return session.New(users, user.New(), cfg.Cache.Size, []string{client.ClientID})
}
