package setup

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/hazbase/kit/internal/client"
	"github.com/hazbase/kit/internal/digest"
	"github.com/hazbase/kit/internal/domain"
	"github.com/hazbase/kit/internal/infrastructure/metrics"
	"github.com/hazbase/kit/internal/signature"
	"github.com/hazbase/kit/internal/usecase"
)

type UseCases struct {
	OfferUsecase   usecase.OfferUsecase
	DisputeUsecase usecase.DisputeUsecase
	Metrics        *metrics.EngineMetrics
}

func InitializeUseCases(deps *Dependencies) (*UseCases, error) {
	custodians, err := initCustodians(deps)
	if err != nil {
		return nil, fmt.Errorf("custodian registry: %w", err)
	}

	signingDomain := digest.SigningDomain{
		Name:              deps.Config.SigningDomain.Name,
		Version:           deps.Config.SigningDomain.Version,
		ChainID:           deps.Config.SigningDomain.ChainID,
		VerifyingContract: common.HexToAddress(deps.Config.SigningDomain.VerifyingContract),
	}

	engineMetrics := metrics.NewEngineMetrics()

	offerUsecase := usecase.NewDefaultOfferUsecase(
		deps.Repositories.OfferRepo,
		deps.Repositories.NonceRepo,
		custodians,
		signature.NewECDSAAuthority(),
		signingDomain,
		deps.Publisher,
		engineMetrics,
	)

	disputeUsecase := usecase.NewDefaultDisputeUsecase(
		deps.Repositories.DisputeRepo,
		common.HexToAddress(deps.Config.Moderation.Moderator),
		deps.Publisher,
		engineMetrics,
	)

	return &UseCases{
		OfferUsecase:   offerUsecase,
		DisputeUsecase: disputeUsecase,
		Metrics:        engineMetrics,
	}, nil
}

// initCustodians points every asset kind at the external custody service.
// Embedders with asset-specific custody can register their own per kind.
func initCustodians(deps *Dependencies) (*domain.CustodianRegistry, error) {
	address := fmt.Sprintf("http://%s:%s", deps.Config.CustodyService.Host, deps.Config.CustodyService.Port)
	escrowClient, err := client.NewHTTPEscrowClient(address)
	if err != nil {
		return nil, err
	}

	registry := domain.NewCustodianRegistry()
	for _, kind := range []domain.AssetKind{
		domain.KindFungible,
		domain.KindNFT,
		domain.KindMultiUnit,
		domain.KindBondUnit,
	} {
		registry.Register(kind, escrowClient)
	}
	return registry, nil
}
