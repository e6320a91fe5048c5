package core

import (
	"context"
	"fmt"
	"time"

	"github.com/pandodao/blst"
	"github.com/shopspring/decimal"
)

// OracleSigner price data signer
type OracleSigner struct {
	ID        int64     `sql:"PRIMARY_KEY" json:"id,omitempty"`
	UserID    string    `sql:"size:36;unique_index:idx_oracle_signers_user_id" json:"user_id,omitempty"`
	PublicKey string    `sql:"size:256" json:"public_key,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// OracleSignerStore oracle signer store
type OracleSignerStore interface {
	Save(ctx context.Context, userID, publicKey string) error
	Delete(ctx context.Context, userID string) error
	FindAll(ctx context.Context) ([]*OracleSigner, error)
}

// Signer indexed verify key
type Signer struct {
	Index     uint64          `json:"index,omitempty"`
	VerifyKey *blst.PublicKey `json:"verify_key,omitempty"`
}

// PriceData price signed by a set of oracle signers
type PriceData struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Timestamp int64           `json:"timestamp"`
	// bit i set when signer i signed
	Mask uint64 `json:"mask"`
	// base64 aggregated bls signature
	Signature string `json:"signature"`
}

// Payload the signed message
func (p *PriceData) Payload() []byte {
	return []byte(fmt.Sprintf("%s:%s:%d", p.Symbol, p.Price.String(), p.Timestamp))
}

// IOracleService price oracle service interface
type IOracleService interface {
	// Submit verify signed data and set it as the symbol's price
	Submit(ctx context.Context, data *PriceData) error
	// PullPriceTicker fetch a ticker from the configured price endpoint
	PullPriceTicker(ctx context.Context, symbol string) (*PriceTicker, error)
}
