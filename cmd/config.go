package cmd

type Config struct {
	HTTPPort       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSslMode      string
	RedisAddr      string
	SMSProviderURL string
	SMSAPIKey      string
	SMTPHost       string
	SMTPPort       string
	SMTPFrom       string
	SMTPUser       string
	SMTPPassword   string

	// NotifyChannelTimeout bounds each notification channel attempt,
	// e.g. "5s". Empty keeps the dispatcher default.
	NotifyChannelTimeout string
}
