package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type AuctionConfig struct {
	Env            string `yaml:"env"`
	HTTPServer     `yaml:"http_server"`
	AuctionDB      `yaml:"auction_db"`
	LogConfig      `yaml:"log_config"`
	KafkaService   `yaml:"kafka-service"`
	ProfileService `yaml:"profile-service"`
	AuthConfig     `yaml:"auth"`
	AuctionRules   `yaml:"auction"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type AuctionDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"text"`
	LogOutput string `yaml:"log_output" env-default:"stdout"`
}

type KafkaService struct {
	Host         string `yaml:"host"`
	Port         string `yaml:"port"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	Mechanism    string `yaml:"mechanism"`
	TLSEnabled   bool   `yaml:"tls_enabled"`
	AuctionTopic string `yaml:"auction_topic" env-default:"auction-events"`
	DisputeTopic string `yaml:"dispute_topic" env-default:"dispute-events"`
}

type ProfileService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUCTION_JWT_SECRET"`
}

type AuctionRules struct {
	MinBidIncrement        string        `yaml:"min_bid_increment" env-default:"0.01"`
	SweepInterval          time.Duration `yaml:"sweep_interval" env-default:"5s"`
	SweepBatchSize         int           `yaml:"sweep_batch_size" env-default:"100"`
	DisputeResponseTimeout time.Duration `yaml:"dispute_response_timeout" env-default:"72h"`
	EscalationInterval     time.Duration `yaml:"escalation_interval" env-default:"30s"`
}

func MustLoad() *AuctionConfig {
	configPath := os.Getenv("AUCTION_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("AUCTION_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	var cfg AuctionConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
