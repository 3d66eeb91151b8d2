package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort        string
	MongoURI          string
	MongoDBName       string
	CassDB            string
	JWTSecret         string
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioWhatsAppNum string
	PhoneCountryCode  string
	SweepSchedule     string
	PortalURL         string
}

func LoadConfig() Config {
	// Load .env if present (silently continue on error)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found, using environment variables")
	}

	cfg := Config{
		ServerPort:        os.Getenv("SERVER_PORT"),
		MongoURI:          os.Getenv("MONGO_URI"),
		MongoDBName:       os.Getenv("MONGO_DB_NAME"),
		CassDB:            os.Getenv("CASS_DB"),
		JWTSecret:         os.Getenv("TOKEN_SECRET_KEY"),
		TwilioAccountSID:  os.Getenv("ACCOUNT_SID"),
		TwilioAuthToken:   os.Getenv("AUTH_TOKEN"),
		TwilioWhatsAppNum: os.Getenv("TWILIO_WHATSAPP"),
		PhoneCountryCode:  getEnv("PHONE_COUNTRY_CODE", "+92"),
		SweepSchedule:     getEnv("SWEEP_SCHEDULE", "*/5 * * * *"),
		PortalURL:         getEnv("PORTAL_URL", "https://zamtas-ems.vercel.app"),
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
