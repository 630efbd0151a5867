package main

import (
	"log"
	"net/http"
	"os"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/auth"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/db"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/feed"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/handlers"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/middleware"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/notify"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/realtime"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/signature"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/workflow"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	db.InitDB()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	roster, err := auth.NewRoster(os.Getenv("MAN_IDS"), os.Getenv("MAN_NAMES"))
	if err != nil {
		log.Fatalf("could not load manager roster: %v", err)
	}

	authService := auth.NewService(
		os.Getenv("JWT_SECRET_KEY"),
		roster,
		os.Getenv("AUTH_USER"),
		os.Getenv("AUTH_PASSWORD"),
	)

	signer, err := signature.NewRSASigner(os.Getenv("SIG_PRIVATE_KEY"))
	if err != nil {
		log.Fatalf("could not load signature key: %v", err)
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer client.Close()

	workflowService := workflow.New(notify.NewAsynqNotifier(client), signer, roster)

	hub := realtime.NewHub()
	go hub.Run()

	siteURL := os.Getenv("SITE_URL")
	apiURL := os.Getenv("API_URL")
	h := handlers.New(authService, workflowService, hub, feed.Config{
		Title:       "Le JDL - Webradio",
		Description: "Les émissions de la webradio du JDL",
		SiteURL:     siteURL,
		APIURL:      apiURL,
	})

	authMW := middleware.NewAuth(authService, handlers.RespondError)
	// One question per listener every 10 seconds, small burst.
	questionLimiter := middleware.NewRateLimiterMiddleware(rate.Limit(0.1), 3)

	router := h.Router(authMW, questionLimiter)

	log.Printf("Starting server on :%s (commit: %s)", port, CommitSHA)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal(err)
	}
}
