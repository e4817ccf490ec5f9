package main

import (
	"github.com/hibiken/asynq"

	favouriteJob "bestiary-backend/internal/domains/favourite/job"
	"bestiary-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	sweepDanglingFavourites *favouriteJob.SweepDanglingHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		sweepDanglingFavourites: favouriteJob.NewSweepDanglingHandler(c.FavouriteRepo),
	}
}

// RegisterHandlers registers all handlers with the mux.
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(favouriteJob.TypeSweepDanglingFavourites, h.sweepDanglingFavourites.ProcessTask)
}
