package config

import "os"

type Config struct {
	ServiceName string
	Env         string
	MetricsAddr string
}

func Load() Config {
	return Config{
		ServiceName: getenv("SERVICE_NAME", "cornerstore"),
		Env:         getenv("ENV", "dev"),
		MetricsAddr: getenv("METRICS_ADDR", ":8080"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
