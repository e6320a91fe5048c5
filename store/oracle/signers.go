package oracle

import (
	"context"

	"moneymarket/core"

	"github.com/fox-one/pkg/store/db"
)

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		return db.Update().AutoMigrate(core.OracleSigner{}).Error
	})
}

type signers struct {
	db *db.DB
}

// NewSignerStore oracle signers, a signer's position in FindAll is its bit in
// the price data mask
func NewSignerStore(db *db.DB) core.OracleSignerStore {
	return &signers{db: db}
}

func (s *signers) Save(ctx context.Context, userID, publicKey string) error {
	var signer core.OracleSigner
	return s.db.Update().
		Where("user_id = ?", userID).
		Assign(core.OracleSigner{UserID: userID, PublicKey: publicKey}).
		FirstOrCreate(&signer).Error
}

func (s *signers) Delete(ctx context.Context, userID string) error {
	tx := s.db.Update().Where("user_id = ?", userID).Delete(core.OracleSigner{})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return core.Errorf(core.ErrInvalidSigner, "signer %s not found", userID)
	}

	return nil
}

func (s *signers) FindAll(ctx context.Context) ([]*core.OracleSigner, error) {
	var list []*core.OracleSigner
	err := s.db.View().Order("id").Find(&list).Error
	return list, err
}
