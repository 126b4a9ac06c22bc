package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Cognito Auth
	CognitoUserPoolID string `envconfig:"COGNITO_USER_POOL_ID"`
	CognitoClientID   string `envconfig:"COGNITO_CLIENT_ID"`
	CognitoIssuerURL  string `envconfig:"COGNITO_ISSUER_URL"`

	// Hosted text-generation service (matching + support chat)
	GenAIBaseURL    string `envconfig:"GENAI_BASE_URL"`
	GenAIAPIKey     string `envconfig:"GENAI_API_KEY"`
	GenAITimeoutSec uint   `envconfig:"GENAI_TIMEOUT_SEC" default:"45"`

	// Push notifications
	NotifyTopicARN string `envconfig:"NOTIFY_TOPIC_ARN"`

	// How often the live donor/request feeds re-query the store
	FeedPollIntervalSec uint `envconfig:"FEED_POLL_INTERVAL_SEC" default:"5"`

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes
}
