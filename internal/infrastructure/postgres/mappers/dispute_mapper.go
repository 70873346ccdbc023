package mappers

import (
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
	"github.com/tradeyard/tradeyard-auction-service/internal/infrastructure/postgres/models"
)

func ToDomainDispute(model *models.DisputeModel) *domain.Dispute {
	return &domain.Dispute{
		ID:            model.ID,
		TransactionID: model.TransactionID,
		CreatorID:     model.CreatorID,
		Reason:        domain.DisputeReason(model.Reason),
		Description:   model.Description,
		Status:        domain.DisputeStatus(model.Status),
		Resolution:    model.Resolution,
		ResolvedBy:    model.ResolvedBy,
		ResolvedAt:    model.ResolvedAt,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func ToGORMDispute(dispute *domain.Dispute) *models.DisputeModel {
	return &models.DisputeModel{
		ID:            dispute.ID,
		TransactionID: dispute.TransactionID,
		CreatorID:     dispute.CreatorID,
		Reason:        string(dispute.Reason),
		Description:   dispute.Description,
		Status:        string(dispute.Status),
		Resolution:    dispute.Resolution,
		ResolvedBy:    dispute.ResolvedBy,
		ResolvedAt:    dispute.ResolvedAt,
		CreatedAt:     dispute.CreatedAt,
		UpdatedAt:     dispute.UpdatedAt,
	}
}

func ToDomainDisputeMessage(model *models.DisputeMessageModel) *domain.DisputeMessage {
	return &domain.DisputeMessage{
		ID:            model.ID,
		DisputeID:     model.DisputeID,
		AuthorID:      model.AuthorID,
		Text:          model.Text,
		AttachmentURL: model.AttachmentURL,
		CreatedAt:     model.CreatedAt,
	}
}

func ToGORMDisputeMessage(msg *domain.DisputeMessage) *models.DisputeMessageModel {
	return &models.DisputeMessageModel{
		ID:            msg.ID,
		DisputeID:     msg.DisputeID,
		AuthorID:      msg.AuthorID,
		Text:          msg.Text,
		AttachmentURL: msg.AttachmentURL,
		CreatedAt:     msg.CreatedAt,
	}
}
