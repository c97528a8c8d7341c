package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	TaxRatePercent float64

	PaymentBaseURL       string
	PaymentSecretKey     string
	PaymentWebhookSecret string
	PaymentSuccessURL    string
	PaymentCancelURL     string

	JWTSigningKey string
}
