package oracle

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"moneymarket/core"
	"moneymarket/pkg/compound"
	"moneymarket/pkg/resthttp"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/logger"
	"github.com/pandodao/blst"
	"github.com/sirupsen/logrus"
)

// Config oracle config
type Config struct {
	EndPoint string
	// mixin id used as the price updater
	Updater   string
	Threshold int
}

type service struct {
	cfg     Config
	signers core.OracleSignerStore
	market  core.IMarketService
	keys    gcache.Cache
}

// New new oracle service
func New(cfg Config, signers core.OracleSignerStore, market core.IMarketService) core.IOracleService {
	return &service{
		cfg:     cfg,
		signers: signers,
		market:  market,
		keys:    gcache.New(64).LRU().Build(),
	}
}

func (s *service) Submit(ctx context.Context, data *core.PriceData) error {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"symbol":    data.Symbol,
		"price":     data.Price,
		"timestamp": data.Timestamp,
	})
	ctx = logger.WithContext(ctx, log)

	signers, err := s.loadSigners(ctx)
	if err != nil {
		return err
	}

	if err := verifyPriceData(data, signers, s.cfg.Threshold); err != nil {
		log.WithError(err).Errorln("price data verify failed")
		return err
	}

	source, _ := json.Marshal(data)
	if err := s.market.SetPrice(ctx, s.cfg.Updater, data.Symbol, data.Price, source); err != nil {
		log.WithError(err).Errorln("market.SetPrice")
		return err
	}

	log.Infoln("price submitted")
	return nil
}

func (s *service) PullPriceTicker(ctx context.Context, symbol string) (*core.PriceTicker, error) {
	url := fmt.Sprintf("%s/api/v2/tickers/%s", strings.TrimSuffix(s.cfg.EndPoint, "/"), symbol)
	logger.FromContext(ctx).Debugln("pull price:", url)

	var ticker core.PriceTicker
	if err := resthttp.Execute(resthttp.Request(ctx), "GET", url, nil, &ticker); err != nil {
		return nil, err
	}

	if ticker.Symbol == "" {
		ticker.Symbol = symbol
	}

	return &ticker, nil
}

func (s *service) loadSigners(ctx context.Context) ([]*core.Signer, error) {
	log := logger.FromContext(ctx)

	ss, err := s.signers.FindAll(ctx)
	if err != nil {
		log.WithError(err).Errorln("signers.FindAll")
		return nil, err
	}

	signers := make([]*core.Signer, len(ss))
	for idx, signer := range ss {
		pub, err := s.parseKey(signer.PublicKey)
		if err != nil {
			return nil, core.Errorf(core.ErrInvalidSigner, "signer %s: %v", signer.UserID, err)
		}

		signers[idx] = &core.Signer{
			Index:     uint64(idx) + 1,
			VerifyKey: pub,
		}
	}

	return signers, nil
}

func (s *service) parseKey(key string) (*blst.PublicKey, error) {
	v, err := s.keys.Get(key)
	if err == nil {
		return v.(*blst.PublicKey), nil
	}

	bts, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return nil, err
	}

	pub := blst.PublicKey{}
	if err := pub.FromBytes(bts); err != nil {
		return nil, err
	}

	_ = s.keys.Set(key, &pub)
	return &pub, nil
}

func verifyPriceData(p *core.PriceData, signers []*core.Signer, threshold int) error {
	var pubs []*blst.PublicKey
	for _, signer := range signers {
		if p.Mask&(0x1<<signer.Index) != 0 {
			pubs = append(pubs, signer.VerifyKey)
		}
	}

	if err := compound.Require(
		len(pubs) > 0 && len(pubs) >= threshold,
		core.ErrInvalidSignature,
		"%d signers, %d required", len(pubs), threshold,
	); err != nil {
		return err
	}

	bts, err := base64.StdEncoding.DecodeString(p.Signature)
	if err != nil {
		return core.Errorf(core.ErrInvalidSignature, "decode signature: %v", err)
	}

	sig := blst.Signature{}
	if err := sig.FromBytes(bts); err != nil {
		return core.Errorf(core.ErrInvalidSignature, "parse signature: %v", err)
	}

	return compound.Require(
		blst.AggregatePublicKeys(pubs).Verify(p.Payload(), &sig),
		core.ErrInvalidSignature,
		"aggregated signature mismatch",
	)
}
