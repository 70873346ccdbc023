package biddto

import (
	"github.com/shopspring/decimal"
	"github.com/tradeyard/tradeyard-auction-service/internal/domain"
)

type PlaceBidInput struct {
	ItemID string
	Actor  domain.Actor
	Amount decimal.Decimal
}

type GetItemBidsInput struct {
	ItemID string
	Page   int64
	Limit  int64
}
