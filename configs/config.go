package config

import "os"

type R2 struct {
	AccountID     string
	AccessKey     string
	SecretKey     string
	BucketName    string
	PublicBaseURL string
}

type Config struct {
	PageID             string
	PageToken          string
	SystemToken        string
	InstagramAccountID string
	GraphBaseURL       string
	CrossPostEnabled   bool
	PostgresURI        string
	RedisURI           string
	FrontendURL        string
	R2                 R2
	SecretKey          string
	CookieName         string
	AdminPassword      string
	AdminAPIKey        string
}

func LoadConfig() *Config {
	// PAGE_TOKEN is the current credential name; FB_PAGE_TOKEN is the legacy
	// one. Precedence is resolved once here so call sites see a single value.
	pageToken := getEnv("PAGE_TOKEN", "")
	if pageToken == "" {
		pageToken = getEnv("FB_PAGE_TOKEN", "")
	}

	return &Config{
		PageID:             getEnv("PAGE_ID", ""),
		PageToken:          pageToken,
		SystemToken:        getEnv("SYSTEM_TOKEN", ""),
		InstagramAccountID: getEnv("INSTAGRAM_ACCOUNT_ID", ""),
		GraphBaseURL:       getEnv("GRAPH_BASE_URL", "https://graph.facebook.com/v17.0"),
		CrossPostEnabled:   getEnv("CROSS_POST_ENABLED", "false") == "true",
		PostgresURI:        getEnv("POSTGRES_URI", ""),
		RedisURI:           getEnv("REDIS_URI", ""),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
		R2: R2{
			AccountID:     getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:     getEnv("R2_ACCESS_KEY", ""),
			SecretKey:     getEnv("R2_SECRET_KEY", ""),
			BucketName:    getEnv("R2_BUCKET_NAME", ""),
			PublicBaseURL: getEnv("R2_PUBLIC_BASE_URL", ""),
		},
		SecretKey:     getEnv("SECRET_KEY", ""),
		CookieName:    getEnv("COOKIE_NAME", "mediadesk_session"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AdminAPIKey:   getEnv("ADMIN_API_KEY", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
