package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr  string
	PublicURL string

	DBDriver string
	DBDSN    string

	// Question bank JSON, loaded once at startup.
	BankPath string

	// Directory the results endpoint writes CSV/JSON files into.
	ResultsDir string

	// Base URL the export adapter posts result batches to. Defaults to this
	// process's own /api/save-results.
	ExportURL string

	CORSOrigins []string
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	pub := strings.TrimSuffix(os.Getenv("PUBLIC_URL"), "/")
	defExport := "http://localhost:8080/api/save-results"
	if pub != "" {
		defExport = pub + "/api/save-results"
	}
	return Config{
		HTTPAddr:    addr,
		PublicURL:   pub,
		DBDriver:    envOr("DB_DRIVER", "sqlite"),
		DBDSN:       envOr("DB_DSN", ""),
		BankPath:    envOr("BANK_PATH", "./questions.json"),
		ResultsDir:  envOr("RESULTS_DIR", "./test-results"),
		ExportURL:   envOr("EXPORT_URL", defExport),
		CORSOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
