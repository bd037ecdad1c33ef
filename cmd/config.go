package cmd

type Config struct {
	HTTPPort                      string
	DBHost                        string
	DBPort                        string
	DBUser                        string
	DBPassword                    string
	DBName                        string
	DBSslMode                     string
	LedgerBaseURL                 string
	WebhookURL                    string
	OrderSweepIntervalSeconds     string
	OrderPurgeIntervalSeconds     string
	OrderRetentionDays            string
	MaxActiveOrdersPerParticipant string
	DefaultOrderTTLMinutes        string
}
