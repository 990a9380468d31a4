package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	AppName    = "FinEdu"
	AppVersion = "1.0.0"
)

// AppUserAgent identifies outgoing HTTP requests from the platform.
var AppUserAgent = AppName + "/" + AppVersion

// DefaultMCPBaseURL is the upstream fund data API used when MCP_BASE_URL is unset.
const DefaultMCPBaseURL = "https://stargate.yingmi.com/mcp"

type Config struct {
	Addr         string
	DBPath       string
	DataDir      string
	DatabaseType string
	JWTSecret    string
	MCPAPIKey    string
	MCPBaseURL   string
	LogLevel     string
	Debug        bool
	CORSEnabled  bool
	StaticDir    string
	NewsFeeds    []string
}

func Load() Config {
	addr := os.Getenv("FINEDU_ADDR")
	if addr == "" {
		if port := os.Getenv("PORT"); port != "" {
			addr = ":" + port
		} else {
			addr = ":8080"
		}
	}
	dataDir := os.Getenv("FINEDU_DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	path := os.Getenv("FINEDU_DB_PATH")
	if path == "" {
		path = filepath.Join(dataDir, "education.db")
	}
	dbType := os.Getenv("DATABASE_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}
	baseURL := os.Getenv("MCP_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultMCPBaseURL
	}
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return Config{
		Addr:         addr,
		DBPath:       filepath.Clean(path),
		DataDir:      filepath.Clean(dataDir),
		DatabaseType: dbType,
		JWTSecret:    os.Getenv("JWT_SECRET"),
		MCPAPIKey:    os.Getenv("MCP_API_KEY"),
		MCPBaseURL:   strings.TrimRight(baseURL, "/"),
		LogLevel:     logLevel,
		Debug:        parseBool(os.Getenv("DEBUG")),
		CORSEnabled:  parseBool(os.Getenv("FINEDU_CORS")),
		StaticDir:    os.Getenv("FINEDU_STATIC_DIR"),
		NewsFeeds:    parseList(os.Getenv("FINEDU_NEWS_FEEDS")),
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
