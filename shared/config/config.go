package config

import (
	"os"
	"path"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	ListenAddr      string   `yaml:"listen_addr"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
	Storage         string   `yaml:"storage"`    // "memory" or "postgres"
	IndexPath       string   `yaml:"index_path"` // empty = in-memory index
	PerPage         int      `yaml:"per_page"`
	MaxSearchWindow int      `yaml:"max_search_window"` // upper bound on raw hits fetched per query
	LogLevel        string   `yaml:"log_level"`
	LogJSON         bool     `yaml:"log_json"`
	Pg              Pg       `yaml:"pg"`
}

type Pg struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	User   string `yaml:"user"`
	Dbname string `yaml:"dbname"`
}

type Private struct {
	PgPassword string `yaml:"pg_password"`
}

func (c *Config) PerPage() int {
	if c.Public.PerPage <= 0 {
		return 20
	}
	return c.Public.PerPage
}

func (c *Config) MaxSearchWindow() int {
	if c.Public.MaxSearchWindow <= 0 {
		return 10000
	}
	return c.Public.MaxSearchWindow
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}
	if err = yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	// private.yaml is optional: the memory backend needs no credentials
	var private Private
	privatePath := path.Join(configFolder, "private.yaml")
	if _, err := os.Stat(privatePath); err == nil {
		mustLoadPath(privatePath, &private)
	}

	return &Config{public, private}
}
