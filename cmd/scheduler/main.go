package main

import (
	"log"
	"os"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/pkg/tasks"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}

	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddr},
		&asynq.SchedulerOpts{},
	)

	purgeTask, err := tasks.NewPurgeTokensTask()
	if err != nil {
		log.Fatalf("could not create token purge task: %v", err)
	}

	entryID, err := scheduler.Register("@every 1h", purgeTask)
	if err != nil {
		log.Fatalf("could not register token purge task: %v", err)
	}
	log.Printf("Registered token purge task with entry ID: %s", entryID)

	if err := scheduler.Run(); err != nil {
		log.Fatalf("could not run scheduler: %v", err)
	}
}
