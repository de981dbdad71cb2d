package mappers

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hazbase/kit/internal/domain"
	"github.com/hazbase/kit/internal/infrastructure/postgres/models"
)

func ToOfferModel(offer *domain.Offer) *models.OfferModel {
	return &models.OfferModel{
		ID:           offer.ID.Hex(),
		Issuer:       offer.Issuer.Hex(),
		Investor:     offer.Investor.Hex(),
		AssetKind:    string(offer.Asset.Kind),
		Token:        offer.Asset.Token.Hex(),
		Partition:    offer.Asset.Partition.Hex(),
		TokenID:      bigString(offer.Asset.TokenID),
		Amount:       bigString(offer.Asset.Amount),
		ClassID:      bigString(offer.Asset.ClassID),
		NonceID:      bigString(offer.Asset.NonceID),
		DocumentHash: offer.DocumentHash.Hex(),
		DocumentURI:  offer.DocumentURI,
		Expiry:       offer.Expiry,
		Nonce:        offer.Nonce,
		DelegatedTo:  offer.DelegatedTo.Hex(),
		IssuerSig:    offer.IssuerSig,
		Status:       string(offer.Status),
		Settled:      offer.Settled,
		CustodyToken: offer.CustodyToken,
		CreatedAt:    offer.CreatedAt,
		UpdatedAt:    offer.UpdatedAt,
	}
}

func ToDomainOffer(model *models.OfferModel) *domain.Offer {
	return &domain.Offer{
		ID:       common.HexToHash(model.ID),
		Issuer:   common.HexToAddress(model.Issuer),
		Investor: common.HexToAddress(model.Investor),
		Asset: domain.AssetRef{
			Kind:      domain.AssetKind(model.AssetKind),
			Token:     common.HexToAddress(model.Token),
			Partition: common.HexToHash(model.Partition),
			TokenID:   parseBig(model.TokenID),
			Amount:    parseBig(model.Amount),
			ClassID:   parseBig(model.ClassID),
			NonceID:   parseBig(model.NonceID),
		},
		DocumentHash: common.HexToHash(model.DocumentHash),
		DocumentURI:  model.DocumentURI,
		Expiry:       model.Expiry,
		Nonce:        model.Nonce,
		DelegatedTo:  common.HexToAddress(model.DelegatedTo),
		IssuerSig:    model.IssuerSig,
		Status:       domain.OfferStatus(model.Status),
		Settled:      model.Settled,
		CustodyToken: model.CustodyToken,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func bigString(v *big.Int) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func parseBig(s string) *big.Int {
	if s == "" {
		return nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil
	}
	return v
}
