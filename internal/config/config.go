package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server    ServerConfig    `envPrefix:"SERVER_"`
	Database  DatabaseConfig  `envPrefix:"DATABASE_"`
	Session   SessionConfig   `envPrefix:"SESSION_"`
	Collab    CollabConfig    `envPrefix:"COLLAB_"`
	Complaint ComplaintConfig `envPrefix:"COMPLAINT_"`
	Kafka     KafkaConfig     `envPrefix:"KAFKA_"`
}

type ServerConfig struct {
	Addr string `env:"ADDR" envDefault:":8080"`
}

type DatabaseConfig struct {
	URI string `env:"URI" envDefault:"mongodb://localhost:27017"`
}

type SessionConfig struct {
	TTL time.Duration `env:"TTL" envDefault:"12h"`
}

type CollabConfig struct {
	// Collection is where each tenant keeps its collaboration records.
	Collection string `env:"COLLECTION" envDefault:"collaborations"`
}

type ComplaintConfig struct {
	// RequireEmployeeID switches on the variant where emp_id is part of
	// the required-field set.
	RequireEmployeeID bool `env:"REQUIRE_EMPLOYEE_ID" envDefault:"false"`
}

type KafkaConfig struct {
	Enabled bool     `env:"ENABLED" envDefault:"false"`
	Brokers []string `env:"BROKERS" envDefault:"localhost:9092"`
	Topic   string   `env:"TOPIC" envDefault:"collab-view.audit"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
