package controllers

import (
	"crypto/subtle"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"commontable-alerts/services"
	"commontable-alerts/utils"
)

// dispatchRunner is the slice of DispatchService this controller needs.
type dispatchRunner interface {
	Run(day int) (subscribers, sent int, err error)
}

// DispatchController exposes the manual dispatch trigger and the health check.
type DispatchController struct {
	dispatch   dispatchRunner
	registry   services.SubscriberRegistry
	cronSecret string
	log        *zap.Logger
}

func NewDispatchController(
	dispatch dispatchRunner,
	registry services.SubscriberRegistry,
	cronSecret string,
	log *zap.Logger,
) *DispatchController {
	return &DispatchController{
		dispatch:   dispatch,
		registry:   registry,
		cronSecret: cronSecret,
		log:        log,
	}
}

// SendDaily triggers one dispatch run synchronously. When a cron secret is
// configured, the key query parameter must match it. The optional day
// parameter (0=Sun..6=Sat) overrides "today".
func (ctl *DispatchController) SendDaily(c *gin.Context) {
	if ctl.cronSecret != "" {
		key := c.Query("key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(ctl.cronSecret)) != 1 {
			utils.RespondWithError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
	}

	day := -1
	if raw := c.Query("day"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d < 0 || d > 6 {
			utils.RespondWithError(c, http.StatusBadRequest, "day must be 0-6")
			return
		}
		day = d
	}

	subscribers, sent, err := ctl.dispatch.Run(day)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Dispatch failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "subscribers": subscribers, "sent": sent})
}

// Health reports liveness plus the current subscriber count.
func (ctl *DispatchController) Health(c *gin.Context) {
	count, err := ctl.registry.Count()
	if err != nil {
		ctl.log.Error("failed to count subscribers", zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "subscribers": count})
}
