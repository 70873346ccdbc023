package mappers

import (
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres/models"
)

func ToDomainTransaction(model *models.TransactionModel) *domain.Transaction {
	return &domain.Transaction{
		ID:           model.ID,
		ItemID:       model.ItemID,
		BuyerID:      model.BuyerID,
		SellerID:     model.SellerID,
		Amount:       model.Amount,
		Status:       domain.TransactionStatus(model.Status),
		EscrowStatus: domain.EscrowStatus(model.EscrowStatus),
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func ToGORMTransaction(txn *domain.Transaction) *models.TransactionModel {
	return &models.TransactionModel{
		ID:           txn.ID,
		ItemID:       txn.ItemID,
		BuyerID:      txn.BuyerID,
		SellerID:     txn.SellerID,
		Amount:       txn.Amount,
		Status:       string(txn.Status),
		EscrowStatus: string(txn.EscrowStatus),
		CreatedAt:    txn.CreatedAt,
		UpdatedAt:    txn.UpdatedAt,
	}
}

func ToDomainEscrow(model *models.EscrowRecordModel) *domain.EscrowRecord {
	return &domain.EscrowRecord{
		ID:            model.ID,
		TransactionID: model.TransactionID,
		Amount:        model.Amount,
		Status:        domain.EscrowStatus(model.Status),
		FundedAt:      model.FundedAt,
		ReleasedAt:    model.ReleasedAt,
		RefundedAt:    model.RefundedAt,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func ToGORMEscrow(escrow *domain.EscrowRecord) *models.EscrowRecordModel {
	return &models.EscrowRecordModel{
		ID:            escrow.ID,
		TransactionID: escrow.TransactionID,
		Amount:        escrow.Amount,
		Status:        string(escrow.Status),
		FundedAt:      escrow.FundedAt,
		ReleasedAt:    escrow.ReleasedAt,
		RefundedAt:    escrow.RefundedAt,
		CreatedAt:     escrow.CreatedAt,
		UpdatedAt:     escrow.UpdatedAt,
	}
}
