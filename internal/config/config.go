package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

var (
	LogLevel         string
	ServerRunAddress string
	DatabaseURI      string
	DataDir          string
	PublicDataDir    string
	JWTSecret        string
	TrainerCmd       string
	TrainerDir       string
	TrainerTimeout   time.Duration
	ChatAPIKey       string
	ChatAPIURL       string
	ChatModel        string
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values")
	}

	LogLevel = os.Getenv("LOG_LEVEL")
	if LogLevel == "" {
		LogLevel = "info"
	}

	ServerRunAddress = os.Getenv("SERVER_RUN_ADDRESS")
	if ServerRunAddress == "" {
		ServerRunAddress = "0.0.0.0:4000"
	}

	DatabaseURI = os.Getenv("DATABASE_URI")
	if DatabaseURI == "" {
		DatabaseURI = "host=db user=postgres password=password dbname=platepilot sslmode=disable"
	}

	DataDir = os.Getenv("DATA_DIR")
	if DataDir == "" {
		DataDir = "data"
	}

	PublicDataDir = os.Getenv("PUBLIC_DATA_DIR")
	if PublicDataDir == "" {
		PublicDataDir = "../frontend/public/data"
	}

	JWTSecret = os.Getenv("JWT_SECRET")
	if JWTSecret == "" {
		JWTSecret = "changeme"
	}

	TrainerCmd = os.Getenv("TRAINER_CMD")
	if TrainerCmd == "" {
		TrainerCmd = "python train_model.py --episodes=200"
	}

	TrainerDir = os.Getenv("TRAINER_DIR")
	if TrainerDir == "" {
		TrainerDir = "."
	}

	TrainerTimeout = 2 * time.Minute
	if raw := os.Getenv("TRAINER_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			TrainerTimeout = d
		} else {
			log.Printf("Invalid TRAINER_TIMEOUT %q, using default", raw)
		}
	}

	ChatAPIKey = os.Getenv("CHAT_API_KEY")

	ChatAPIURL = os.Getenv("CHAT_API_URL")
	if ChatAPIURL == "" {
		ChatAPIURL = "https://api.groq.com/openai/v1/chat/completions"
	}

	ChatModel = os.Getenv("CHAT_MODEL")
	if ChatModel == "" {
		ChatModel = "llama3-8b-8192"
	}
}
