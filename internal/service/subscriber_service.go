package service

import (
	"context"
	"crypto/rand"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/blog-platform-api/internal/config"
	"github.com/blog-platform-api/internal/models"
	"github.com/blog-platform-api/internal/repository"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// subscriberService is the concrete implementation of SubscriberService.
// It also owns the scheduled pruning of stale unconfirmed subscribers.
type subscriberService struct {
	subscriberRepo repository.SubscriberRepository
	cfg            *config.CleanupConfig
	cron           *cron.Cron
	log            zerolog.Logger
}

// newSubscriberService creates a new SubscriberService
func newSubscriberService(subscriberRepo repository.SubscriberRepository, cfg *config.CleanupConfig, log zerolog.Logger) *subscriberService {
	return &subscriberService{
		subscriberRepo: subscriberRepo,
		cfg:            cfg,
		cron:           cron.New(),
		log:            log.With().Str("service", "subscriber").Logger(),
	}
}

// Subscribe registers a new unconfirmed subscriber with a fresh confirmation
// token. The second return value reports whether a new subscription was
// created; a duplicate email is not an error.
func (s *subscriberService) Subscribe(ctx context.Context, req *models.SubscribeRequest) (*models.Subscriber, bool, error) {
	token, err := newConfirmToken()
	if err != nil {
		return nil, false, fmt.Errorf("failed to generate confirmation token: %w", err)
	}

	subscriber := &models.Subscriber{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Confirmed:    false,
		ConfirmToken: token,
		CreatedAt:    time.Now(),
	}

	created, err := s.subscriberRepo.Create(ctx, subscriber)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create subscriber: %w", err)
	}
	if !created {
		s.log.Debug().Str("email", req.Email).Msg("Subscription already exists")
		return nil, false, nil
	}

	s.log.Info().Str("id", subscriber.ID).Msg("Subscriber created, awaiting confirmation")
	return subscriber, true, nil
}

// Confirm completes the double opt-in for the subscriber holding token
func (s *subscriberService) Confirm(ctx context.Context, token string) (bool, error) {
	confirmed, err := s.subscriberRepo.ConfirmByToken(ctx, token)
	if err != nil {
		return false, fmt.Errorf("failed to confirm subscriber: %w", err)
	}
	if confirmed {
		s.log.Info().Msg("Subscriber confirmed")
	}
	return confirmed, nil
}

// Delete removes a subscriber
func (s *subscriberService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.subscriberRepo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete subscriber: %w", err)
	}
	if deleted {
		s.log.Info().Str("id", id).Msg("Subscriber deleted")
	}
	return deleted, nil
}

// StreamAll streams all subscribers to the response in the given format
func (s *subscriberService) StreamAll(ctx context.Context, w http.ResponseWriter, format string) error {
	s.log.Info().Str("format", format).Msg("Starting subscribers export")

	switch format {
	case "ndjson":
		return s.streamNDJSON(ctx, w)
	case "csv":
		return s.streamCSV(ctx, w)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func (s *subscriberService) streamNDJSON(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Content-Disposition", "attachment; filename=subscribers.ndjson")

	flusher, _ := w.(http.Flusher)
	count := 0

	err := s.subscriberRepo.StreamAll(ctx, func(subscriber *models.Subscriber) error {
		data, err := json.Marshal(subscriber)
		if err != nil {
			return err
		}
		w.Write(data)
		w.Write([]byte("\n"))
		count++

		// Flush every 100 records for streaming
		if count%100 == 0 && flusher != nil {
			flusher.Flush()
		}
		return nil
	})

	s.log.Info().Int("count", count).Msg("Subscribers export completed")
	return err
}

func (s *subscriberService) streamCSV(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=subscribers.csv")

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "email", "confirmed", "created_at", "confirmed_at"}); err != nil {
		return err
	}

	count := 0
	err := s.subscriberRepo.StreamAll(ctx, func(subscriber *models.Subscriber) error {
		confirmedAt := ""
		if subscriber.ConfirmedAt != nil {
			confirmedAt = subscriber.ConfirmedAt.Format(time.RFC3339)
		}
		count++
		return writer.Write([]string{
			subscriber.ID,
			subscriber.Email,
			strconv.FormatBool(subscriber.Confirmed),
			subscriber.CreatedAt.Format(time.RFC3339),
			confirmedAt,
		})
	})
	if err != nil {
		return err
	}

	writer.Flush()
	s.log.Info().Int("count", count).Msg("Subscribers export completed")
	return writer.Error()
}

// StartCleanup schedules the periodic pruning of unconfirmed subscribers
// older than the configured TTL
func (s *subscriberService) StartCleanup() error {
	_, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cutoff := time.Now().Add(-s.cfg.SubscriberTTL)
		pruned, err := s.subscriberRepo.DeleteUnconfirmedBefore(ctx, cutoff)
		if err != nil {
			s.log.Error().Err(err).Msg("Subscriber cleanup failed")
			return
		}
		if pruned > 0 {
			s.log.Info().Int64("pruned", pruned).Msg("Stale unconfirmed subscribers removed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule subscriber cleanup: %w", err)
	}

	s.cron.Start()
	s.log.Info().Str("schedule", s.cfg.Schedule).Msg("Subscriber cleanup scheduled")
	return nil
}

// StopCleanup stops the cleanup scheduler, waiting for a running job
func (s *subscriberService) StopCleanup() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("Subscriber cleanup stopped")
}

func newConfirmToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
