package setup

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/hazbase/kit/internal/config"
	"github.com/hazbase/kit/internal/domain"
	publisher "github.com/hazbase/kit/internal/infrastructure/kafka"
	"github.com/hazbase/kit/internal/infrastructure/postgres"
	"github.com/hazbase/kit/internal/infrastructure/postgres/repository"
)

type Dependencies struct {
	Config       *config.EngineConfig
	DB           *gorm.DB
	Publisher    *publisher.DefaultKafkaPublisher
	Subscriber   *publisher.DefaultKafkaSubscriber
	Repositories *Repositories
}

type Repositories struct {
	OfferRepo   domain.OfferRepository
	NonceRepo   domain.NonceRepository
	DisputeRepo domain.DisputeRepository
}

func InitializeDependencies() (*Dependencies, error) {
	cfg := config.MustLoad()

	db := postgres.MustInitDB(cfg)

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	pub := publisher.NewDefaultKafkaPublisher(brokers)
	sub := publisher.NewDefaultKafkaSubscriber(brokers)

	repos := &Repositories{
		OfferRepo:   repository.NewDefaultOfferRepository(db),
		NonceRepo:   repository.NewDefaultNonceRepository(db),
		DisputeRepo: repository.NewDefaultDisputeRepository(db),
	}

	return &Dependencies{
		Config:       cfg,
		DB:           db,
		Publisher:    pub,
		Subscriber:   sub,
		Repositories: repos,
	}, nil
}
