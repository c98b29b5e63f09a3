package store

import (
	"log"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config resolves where history lives on disk and who the acting user is.
type Config interface {
	BasePath() string
	RemotePath() string
	UserID() string
}

// LoadConfig reads the .fomo config file (current directory or
// FOMO_CONFIG_PATH) with FOMO_* environment overrides.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.fomo.db")
	viper.SetDefault("remote", "~/.fomo.remote.db")
	viper.SetDefault("user", "")
	viper.SetConfigName(".fomo") // .yaml is implicit
	viper.SetEnvPrefix("FOMO")
	viper.AutomaticEnv()

	if override := os.Getenv("FOMO_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("error reading config file: %v", err)
			return nil, err
		}
	}

	return &fileConfig{
		Path:   expand(viper.GetString("path")),
		Remote: expand(viper.GetString("remote")),
		User:   viper.GetString("user"),
	}, nil
}

func expand(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

type fileConfig struct {
	Path   string `json:"path"`
	Remote string `json:"remote"`
	User   string `json:"user"`
}

func (f *fileConfig) BasePath() string   { return f.Path }
func (f *fileConfig) RemotePath() string { return f.Remote }
func (f *fileConfig) UserID() string     { return f.User }
