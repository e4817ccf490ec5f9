package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bestiary-backend/internal/domains/favourite/repository"
	"bestiary-backend/pkg/logger"
)

// TypeSweepDanglingFavourites is the asynq task type for the nightly prune
// of favourites whose creature has been deleted.
const TypeSweepDanglingFavourites = "favourite:sweep_dangling"

type SweepDanglingPayload struct {
	Date time.Time `json:"date,omitempty"`
}

type SweepDanglingHandler struct {
	favouriteRepo repository.Repository
}

func NewSweepDanglingHandler(favouriteRepo repository.Repository) *SweepDanglingHandler {
	return &SweepDanglingHandler{favouriteRepo: favouriteRepo}
}

func (h *SweepDanglingHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload SweepDanglingPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("failed to unmarshal sweep payload", err)
		return err
	}

	log.Info().Msg("Starting dangling favourite sweep")

	removed, err := h.favouriteRepo.DeleteDangling(ctx)
	if err != nil {
		logger.Error("dangling favourite sweep failed", err)
		return err
	}

	log.Info().
		Int64("favourites_removed", removed).
		Msg("Dangling favourite sweep completed")

	return nil
}
