package config

import (
	"net"

	"github.com/kelseyhightower/envconfig"
)

type Configuration struct {
	Server struct {
		Host    string `envconfig:"SERVER_HOST"`
		Port    string `envconfig:"SERVER_PORT" default:"3000"`
		Origins string `envconfig:"SERVER_ORIGINS" default:"http://localhost:5173"`
	}
	Database struct {
		// empty keeps the archive in memory
		Address      string `envconfig:"MONGO_ADDRESS"`
		DatabaseName string `envconfig:"MONGO_DATABASE" default:"chess3d"`
		Collection   string `envconfig:"MONGO_COLLECTION" default:"games"`
	}
	Log struct {
		Level string `envconfig:"LOG_LEVEL" default:"info"`
	}
}

func InitConfig() (*Configuration, error) {
	var config Configuration
	if err := envconfig.Process("", &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Configuration) ListenAddress() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}
