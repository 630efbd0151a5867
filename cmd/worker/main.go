package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/db"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/worker"
	"github.com/Le-JDL-La-Roche/Le-JDL-API/pkg/tasks"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	db.InitDB()

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 10,
			},
		},
	)

	instagram := worker.NewInstagramClient(os.Getenv("IG_BASE_URL"), os.Getenv("IG_TOKEN"))

	handler := worker.NewTaskHandler(
		instagram,
		os.Getenv("SITE_URL"),
		os.Getenv("API_URL"),
		igsids(os.Getenv("MAN_IGSIDS")),
		igsids(os.Getenv("JDL_IGSIDS")),
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeNotifyManagers, handler.HandleNotifyManagersTask)
	mux.HandleFunc(tasks.TypeNotifyEditors, handler.HandleNotifyEditorsTask)
	mux.HandleFunc(tasks.TypePurgeTokens, handler.HandlePurgeTokensTask)

	log.Println("Worker starting...")
	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run worker server: %v", err)
	}
}

func igsids(raw string) []string {
	if raw == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		log.Fatalf("could not parse Instagram recipient list: %v", err)
	}
	return ids
}
