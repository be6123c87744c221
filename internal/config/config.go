package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI       string
	DBName         string
	JWTSecret      string
	AccessTokenTTL time.Duration
	Port           string
	CORSOrigins    []string

	// Payment gateway
	RazorpayKeyID     string
	RazorpayKeySecret string
	GatewayFeePercent float64
	GatewayTaxPercent float64
	CODHandlingFee    float64
	OnlineTaxRate     float64

	// Image storage
	S3Bucket      string
	S3Region      string
	S3Key         string
	S3Secret      string
	S3Endpoint    string
	S3BaseURL     string
	UploadDir     string
	UploadBaseURL string

	// Read cache
	RedisAddr string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:       getEnvOrDefault("MONGO_URI", ""),
		DBName:         getEnvOrDefault("DB_NAME", "storefront"),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL: getDurationEnv("ACCESS_TOKEN_TTL", 30, 24*time.Hour),
		Port:           getEnvOrDefault("PORT", "8080"),
		CORSOrigins:    getListEnv("CORS_ORIGINS", "http://localhost:3000"),

		RazorpayKeyID:     getEnvOrDefault("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getEnvOrDefault("RAZORPAY_KEY_SECRET", ""),
		GatewayFeePercent: getFloatEnv("GATEWAY_FEE_PERCENT", 2.11),
		GatewayTaxPercent: getFloatEnv("GATEWAY_TAX_PERCENT", 18),
		CODHandlingFee:    getFloatEnv("COD_HANDLING_FEE", 20),
		OnlineTaxRate:     getFloatEnv("ONLINE_TAX_RATE", 2.11),

		S3Bucket:      getEnvOrDefault("S3_BUCKET", ""),
		S3Region:      getEnvOrDefault("S3_REGION", "us-east-1"),
		S3Key:         getEnvOrDefault("S3_KEY", ""),
		S3Secret:      getEnvOrDefault("S3_SECRET", ""),
		S3Endpoint:    getEnvOrDefault("S3_ENDPOINT", ""),
		S3BaseURL:     getEnvOrDefault("S3_URL", ""),
		UploadDir:     getEnvOrDefault("UPLOAD_DIR", "./public/uploads"),
		UploadBaseURL: getEnvOrDefault("UPLOAD_BASE_URL", "/public/uploads"),

		RedisAddr: getEnvOrDefault("REDIS_ADDR", ""),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return defaultValue
}

func getListEnv(key, defaultValue string) []string {
	raw := getEnvOrDefault(key, defaultValue)
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
