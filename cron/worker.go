package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"farehub/config"
	ridesRepo "farehub/database/repository/rides"
	"farehub/services/booking"

	"github.com/hibiken/asynq"
)

const TypeOrchestrationRun = "orchestration:run"

// OrchestrationPayload identifies the request one task should decide.
type OrchestrationPayload struct {
	RequestID string `json:"request_id"`
}

// NewOrchestrationTask builds the task the intake handler enqueues after
// persisting a request. Booking races are not idempotent, so the task is
// never retried.
func NewOrchestrationTask(requestID string) (*asynq.Task, error) {
	payload, err := json.Marshal(OrchestrationPayload{RequestID: requestID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeOrchestrationRun, payload, asynq.MaxRetry(0)), nil
}

// NewQueueClient returns the asynq client used to enqueue orchestrations.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
}

// InitOrchestrationWorker runs the async worker in background.
func InitOrchestrationWorker(svc booking.DecisionService, repo ridesRepo.RideRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeOrchestrationRun, handleOrchestrationTask(svc, repo))

	// Start async worker with retry logic
	go func() {
		log.Println("[OrchestrationWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[OrchestrationWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[OrchestrationWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleOrchestrationTask(svc booking.DecisionService, repo ridesRepo.RideRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p OrchestrationPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[OrchestrationWorker] invalid payload: %v", err)
			return err
		}

		req, err := repo.GetRequestByID(ctx, p.RequestID)
		if err != nil {
			log.Printf("[OrchestrationWorker] failed to load request %s: %v", p.RequestID, err)
			return err
		}

		svc.Orchestrate(ctx, *req)
		return nil
	}
}
