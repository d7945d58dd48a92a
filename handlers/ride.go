package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"farehub/cron"
	ridesRepo "farehub/database/repository/rides"
	"farehub/models"
	"farehub/services/booking"
	ai "farehub/services/intelligence"
	"farehub/utils"
)

// RideHandler serves the request-intake surface: submitting ride requests
// and polling their decision state.
type RideHandler struct {
	Svc    booking.DecisionService
	Repo   ridesRepo.RideRepository
	Parser ai.RideParser
	Queue  *asynq.Client
	Cache  *redis.Client
	Logger *zap.Logger
}

func NewRideHandler(svc booking.DecisionService, repo ridesRepo.RideRepository, parser ai.RideParser, queue *asynq.Client, cache *redis.Client, logger *zap.Logger) *RideHandler {
	return &RideHandler{
		Svc:    svc,
		Repo:   repo,
		Parser: parser,
		Queue:  queue,
		Cache:  cache,
		Logger: logger,
	}
}

// rideRequestInput accepts both intake modes: a free-text message, or the
// structured pickup/drop/priority form.
type rideRequestInput struct {
	Text     string   `json:"text"`
	Pickup   string   `json:"pickup"`
	Drop     string   `json:"drop"`
	Priority []string `json:"priority"`
}

// RequestRideHandler persists a new request and hands it to the background
// orchestration worker. The caller polls GET /booking/:id for the outcome.
func (h *RideHandler) RequestRideHandler(c *gin.Context) {
	var input rideRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	pickup, drop, priority := input.Pickup, input.Drop, input.Priority
	if input.Text != "" {
		parsed, err := h.Parser.ParseRideRequest(c.Request.Context(), input.Text)
		if err != nil {
			utils.JSONError(c, http.StatusUnprocessableEntity, "could not parse ride request", err.Error())
			return
		}
		pickup, drop, priority = parsed.Pickup, parsed.Drop, parsed.Priority
	}
	if pickup == "" || drop == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "pickup and drop are required")
		return
	}

	req := models.RideRequest{
		ID:        uuid.New().String(),
		Pickup:    pickup,
		Drop:      drop,
		Priority:  priority,
		RawText:   input.Text,
		Status:    models.RequestProcessing,
		CreatedAt: time.Now(),
	}
	if err := h.Repo.CreateRequest(c.Request.Context(), req); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create request", err.Error())
		return
	}

	task, err := cron.NewOrchestrationTask(req.ID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to build orchestration task", err.Error())
		return
	}
	if _, err := h.Queue.Enqueue(task); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to enqueue orchestration", err.Error())
		return
	}

	h.Logger.Info("ride request accepted",
		zap.String("requestID", req.ID), zap.Strings("priority", priority))
	c.JSON(http.StatusAccepted, gin.H{
		"request_id": req.ID,
		"status":     string(models.RequestProcessing),
	})
}

// GetBookingHandler returns the decision state of one request. Terminal
// responses are cached in Redis so polling does not re-read Mongo.
func (h *RideHandler) GetBookingHandler(c *gin.Context) {
	requestID := c.Param("id")
	ctx := c.Request.Context()

	cacheKey := utils.BookingCachePrefix + requestID
	if cached, err := h.Cache.Get(ctx, cacheKey).Result(); err == nil {
		c.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}

	view, err := h.Svc.BookingView(ctx, requestID)
	if err != nil {
		var notFound *booking.NotFoundError
		if errors.As(err, &notFound) {
			utils.JSONError(c, http.StatusNotFound, "request not found", requestID)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking", err.Error())
		return
	}

	if view.Status != models.RequestProcessing {
		if data, err := json.Marshal(view); err == nil {
			if err := h.Cache.Set(ctx, cacheKey, data, utils.BookingCacheTTL).Err(); err != nil {
				h.Logger.Warn("failed to cache booking response",
					zap.String("requestID", requestID), zap.Error(err))
			}
		}
	}
	c.JSON(http.StatusOK, view)
}

// ProviderWebhookHandler acknowledges provider callbacks. Real providers
// are not wired yet; the endpoint exists so their webhooks have somewhere
// to land.
func (h *RideHandler) ProviderWebhookHandler(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}
	h.Logger.Info("provider webhook received", zap.Any("payload", payload))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
