package market

import (
	"context"

	"moneymarket/core"
	"moneymarket/pkg/compound"

	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
)

// escrow pays TransferIn from an inbound transfer the market already holds,
// recording the spent part as received from the sender
type escrow struct {
	core.Ledger
	funds     *core.Notification
	remaining decimal.Decimal
}

func newEscrow(ledger core.Ledger, funds *core.Notification) *escrow {
	return &escrow{
		Ledger:    ledger,
		funds:     funds,
		remaining: funds.Amount,
	}
}

func (e *escrow) TransferIn(ctx context.Context, transfer *core.Transfer) error {
	if err := compound.Require(
		transfer.AssetID == e.funds.AssetID,
		core.ErrSymbolMismatch,
		"paid asset %s, %s required", e.funds.AssetID, transfer.Symbol,
	); err != nil {
		return err
	}

	if err := compound.Require(
		transfer.Amount.LessThanOrEqual(e.remaining),
		core.ErrInsufficientFunds,
		"paid %s, %s %s required", e.remaining, transfer.Amount, transfer.Symbol,
	); err != nil {
		return err
	}

	received := *transfer
	received.Opponent = e.funds.Sender
	if err := e.Ledger.Receive(ctx, &received); err != nil {
		return err
	}

	e.remaining = e.remaining.Sub(transfer.Amount)
	return nil
}

// refund send the unspent funds back to the sender
func (e *escrow) refund(ctx context.Context) (decimal.Decimal, error) {
	if !e.remaining.IsPositive() {
		return decimal.Zero, nil
	}

	reserve, err := e.FindReserveByAsset(ctx, e.funds.AssetID)
	if err != nil {
		return decimal.Zero, err
	}

	refund := &core.Transfer{
		TraceID:  foxuuid.Modify(e.funds.TraceID, "refund"),
		Opponent: e.funds.Sender,
		Symbol:   reserve.Symbol,
		AssetID:  e.funds.AssetID,
		Amount:   e.remaining,
		Memo:     "refund",
	}

	if err := e.Ledger.TransferOut(ctx, refund); err != nil {
		return decimal.Zero, err
	}

	amount := e.remaining
	e.remaining = decimal.Zero
	return amount, nil
}
