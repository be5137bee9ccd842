package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"commontable-alerts/metrics"
	"commontable-alerts/models"
	"commontable-alerts/services"
	"commontable-alerts/utils"
)

const welcomeMessage = "You're signed up for Common Table alerts. We'll text you which locations are open and closest to campus. Reply STOP to unsubscribe."

// SubscribeInput defines the expected JSON structure for a subscribe call.
// Preference fields are pointers so an absent field is distinguishable from
// an explicit false.
type SubscribeInput struct {
	Phone        string `json:"phone" binding:"required"`
	DailyDigest  *bool  `json:"daily_digest"`
	SurplusDrops *bool  `json:"surplus_drops"`
	SurplusPosts *bool  `json:"surplus_posts"`
}

// UnsubscribeInput defines the expected JSON structure for an unsubscribe call.
type UnsubscribeInput struct {
	Phone string `json:"phone" binding:"required"`
}

// SubscriptionController handles signup and removal.
type SubscriptionController struct {
	registry services.SubscriberRegistry
	sender   services.SMSSender
	m        *metrics.Metrics
	log      *zap.Logger
}

func NewSubscriptionController(
	registry services.SubscriberRegistry,
	sender services.SMSSender,
	m *metrics.Metrics,
	log *zap.Logger,
) *SubscriptionController {
	return &SubscriptionController{registry: registry, sender: sender, m: m, log: log}
}

// Subscribe upserts a subscriber and attempts a best-effort welcome SMS.
// The welcome outcome only changes the status message, never the HTTP code.
func (ctl *SubscriptionController) Subscribe(c *gin.Context) {
	var input SubscribeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	phone, ok := utils.NormalizePhone(input.Phone)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}

	prefs := models.SubscriberPrefs{
		DailyDigest:  input.DailyDigest,
		SurplusDrops: input.SurplusDrops,
		SurplusPosts: input.SurplusPosts,
	}
	if err := ctl.registry.Upsert(phone, prefs); err != nil {
		ctl.log.Error("failed to upsert subscriber", zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save subscription")
		return
	}
	ctl.m.Subscribes.Inc()

	if ctl.sender.Send(phone, welcomeMessage) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Subscribed. Check your phone for confirmation."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Subscribed. (SMS not sent—check server Twilio config.)"})
}

// Unsubscribe deletes the subscriber row. Unknown phones succeed too.
func (ctl *SubscriptionController) Unsubscribe(c *gin.Context) {
	var input UnsubscribeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	phone, ok := utils.NormalizePhone(input.Phone)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}

	if err := ctl.registry.Remove(phone); err != nil {
		ctl.log.Error("failed to remove subscriber", zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to unsubscribe")
		return
	}
	ctl.m.Unsubscribes.Inc()

	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Unsubscribed."})
}
