package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

type Config struct{}

// New reads config.yaml from the working directory. every key can be overridden by an
// environment variable of the same name.
func New() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var typeErr viper.ConfigFileNotFoundError
		if errors.As(err, &typeErr) {
			return nil, errors.New("the config.yaml file has not been found in the current directory")
		}

		return nil, err
	}

	config := &Config{}
	return config, nil
}
