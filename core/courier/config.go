package courier

import "github.com/kelseyhightower/envconfig"

type Config struct {
	Chunks struct {
		SizeBytes int `envconfig:"CHUNK_SIZE_BYTES" default:"20000000"`
	}
	Store struct {
		Path string `envconfig:"STORE_PATH" default:".binpart"`
	}
}

func GetConfig() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
