package wallet

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"moneymarket/core"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// New new wallet service
func New(wallet *core.Wallet) core.IWalletService {
	return &walletService{wallet: wallet}
}

type walletService struct {
	wallet *core.Wallet
}

func (s *walletService) HandleTransfer(ctx context.Context, transfer *core.Transfer) error {
	if transfer.Direction != core.TransferDirectionOut {
		return core.Errorf(core.ErrPullNotSupported, "transfer %s is not outbound", transfer.TraceID)
	}

	input := &mixin.TransferInput{
		AssetID:    transfer.AssetID,
		OpponentID: transfer.Opponent,
		Amount:     transfer.Amount,
		TraceID:    transfer.TraceID,
		Memo:       transfer.Memo,
	}

	// the trace id makes a resend of a sent transfer a no-op
	if _, err := s.wallet.Client.Transfer(ctx, input, s.wallet.Pin); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("client.Transfer", transfer.TraceID)
		return err
	}

	return nil
}

func (s *walletService) PullSnapshots(ctx context.Context, cursor string, limit int) ([]*core.Snapshot, string, error) {
	offset, err := time.Parse(time.RFC3339Nano, cursor)
	if err != nil {
		offset = time.Now().UTC()
	}

	snapshots, err := s.wallet.Client.ReadNetworkSnapshots(ctx, "", offset, "ASC", limit)
	if err != nil {
		return nil, "", err
	}

	out := make([]*core.Snapshot, 0, len(snapshots))
	for _, snapshot := range snapshots {
		out = append(out, convertSnapshot(snapshot))
		offset = snapshot.CreatedAt
	}

	return out, offset.Format(time.RFC3339Nano), nil
}

func convertSnapshot(snapshot *mixin.Snapshot) *core.Snapshot {
	return &core.Snapshot{
		SnapshotID: snapshot.SnapshotID,
		TraceID:    snapshot.TraceID,
		UserID:     snapshot.UserID,
		OpponentID: snapshot.OpponentID,
		AssetID:    snapshot.AssetID,
		Amount:     snapshot.Amount,
		Memo:       snapshot.Memo,
		CreatedAt:  snapshot.CreatedAt,
	}
}

// PaySchemaURL mixin pay url paying the dapp
func (s *walletService) PaySchemaURL(amount decimal.Decimal, asset, trace, memo string) (string, error) {
	if !amount.IsPositive() || asset == "" || trace == "" {
		return "", core.Errorf(core.ErrInvalidAmount, "invalid pay parameters")
	}

	return payURL(s.wallet.Client.ClientID, amount, asset, trace, memo), nil
}

func payURL(recipient string, amount decimal.Decimal, asset, trace, memo string) string {
	q := url.Values{}
	q.Set("recipient", recipient)
	q.Set("asset", asset)
	q.Set("amount", amount.String())
	q.Set("trace", trace)
	q.Set("memo", memo)

	return fmt.Sprintf("mixin://pay?%s", q.Encode())
}
