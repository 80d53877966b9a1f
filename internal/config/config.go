package config

import "github.com/spf13/viper"

// Config holds the values the binaries read at startup. Values come from
// configs/app.env, overridden by environment variables of the same name.
type Config struct {
	DBSource      string `mapstructure:"DB_SOURCE"`
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	ScrapeURL     string `mapstructure:"SCRAPE_URL"`
}

// LoadConfig reads configuration from the app.env file at path and from the
// environment.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_ADDRESS", ":8080")
	viper.SetDefault("SCRAPE_URL", "https://www.itakon.com/news/events")

	viper.AutomaticEnv()
	_ = viper.BindEnv("DB_SOURCE")
	_ = viper.BindEnv("SERVER_ADDRESS")
	_ = viper.BindEnv("SCRAPE_URL")

	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
