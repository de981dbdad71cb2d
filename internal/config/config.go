package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type EngineConfig struct {
	Env            string `yaml:"env"`
	MetricsServer  `yaml:"metrics_server"`
	EngineDB       `yaml:"engine_db"`
	KafkaService   `yaml:"kafka-service"`
	CustodyService `yaml:"custody-service"`
	SigningDomain  `yaml:"signing_domain"`
	Moderation     `yaml:"moderation"`
	Retention      `yaml:"retention"`
}

type MetricsServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type EngineDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type KafkaService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type CustodyService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

// SigningDomain parameterizes the typed-data digest. Rotating any value
// invalidates every outstanding signature.
type SigningDomain struct {
	Name              string `yaml:"name" env-default:"hazbase-agreements"`
	Version           string `yaml:"version" env-default:"1"`
	ChainID           int64  `yaml:"chain_id"`
	VerifyingContract string `yaml:"verifying_contract"`
}

type Moderation struct {
	// Moderator is the hex address allowed to finalize disputes.
	Moderator    string `yaml:"moderator"`
	CommandTopic string `yaml:"command_topic" env-default:"dispute-moderation-commands"`
	CommandGroup string `yaml:"command_group" env-default:"agreement-engine"`
}

type Retention struct {
	// FinalizedOfferHours is how long terminal offers keep their payload
	// before being compacted to tombstones.
	FinalizedOfferHours int `yaml:"finalized_offer_hours" env-default:"720"`
}

func MustLoad() *EngineConfig {

	// Processing env config variable and file
	configPath := os.Getenv("AGREEMENT_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("AGREEMENT_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg EngineConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
