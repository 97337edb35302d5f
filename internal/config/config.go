package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	ComponentsDir   string
	PacksDir        string
	MappingFile     string
	WorkerCount     int
	SkipBadCatalogs bool
	DatabaseURL     string
	PackIndent      string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		ComponentsDir:   getEnv("CROSSLOCALE_COMPONENTS_DIR", "./components"),
		PacksDir:        getEnv("CROSSLOCALE_PACKS_DIR", "./packs"),
		MappingFile:     getEnv("CROSSLOCALE_MAPPING_FILE", "./packs-mapping.json"),
		WorkerCount:     getEnvInt("CROSSLOCALE_WORKER_COUNT", 8),
		SkipBadCatalogs: getEnvBool("CROSSLOCALE_SKIP_BAD_CATALOGS", false),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		PackIndent:      getEnv("CROSSLOCALE_PACK_INDENT", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
