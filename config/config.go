package config

import (
	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/store/db"
)

// Config moneymarket config
type Config struct {
	DB     db.Config `json:"db"`
	Dapp   Dapp      `json:"dapp"`
	Block  Block     `json:"block"`
	Market Market    `json:"market"`
	Oracle Oracle    `json:"oracle"`
	Cache  Cache     `json:"cache"`
}

// Dapp mixin dapp holding the pool funds
type Dapp struct {
	mixin.Keystore
	Pin string `json:"pin"`
}

// Block block clock config
type Block struct {
	Genesis         int64 `json:"genesis"`
	SecondsPerBlock int64 `json:"seconds_per_block"`
}

// Market market bootstrap config
type Market struct {
	Admin string `json:"admin" valid:"uuid"`
}

// Oracle price oracle config
type Oracle struct {
	EndPoint string `json:"end_point" valid:"url"`
	// mixin id the oracle submits prices as, must be an authorised updater
	Updater   string `json:"updater" valid:"uuid"`
	Threshold int    `json:"threshold"`
}

// Cache read cache config
type Cache struct {
	Size int `json:"size"`
	// seconds
	TTL int64 `json:"ttl"`
}
