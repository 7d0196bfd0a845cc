package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/AdelereKehinde/Estate-management/internal/app"
	"github.com/AdelereKehinde/Estate-management/internal/constants"
	"github.com/AdelereKehinde/Estate-management/internal/dtos"
	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

type HealthController struct {
	app *app.App
}

func NewHealthController(app *app.App) *HealthController {
	return &HealthController{app}
}

// GET /
func (c *HealthController) RootHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, dtos.RootResponse{Name: constants.ServiceDisplayName, Status: "ok"})
}

// GET /health
func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := c.app.Store.Ping(ctx); err != nil {
		utils.Logger.WithError(err).Error("estate-service store unreachable")
		utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeInternal, "Database unreachable", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthResponse{Status: "ok", Store: c.app.Config.StoreDriver})
}
