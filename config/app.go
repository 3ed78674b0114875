package config

type App struct {
	Port        string `yaml:"port"`
	DatabaseURL string `yaml:"database_url"`
	Env         string `yaml:"env"`
}
