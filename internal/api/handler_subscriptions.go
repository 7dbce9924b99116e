package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"geofence-alert-backend/internal/model"
)

type putSubscriptionRequest struct {
	Endpoint           string   `json:"endpoint" binding:"required"`
	P256DH             string   `json:"p256dh" binding:"required"`
	Auth               string   `json:"auth" binding:"required"`
	AllVehicles        bool     `json:"all_vehicles"`
	SubscribedVehicles []string `json:"subscribed_vehicles"`
}

// PutSubscription handles the creation or replacement of a subscription.
func (h *Handler) PutSubscription(c *gin.Context) {
	var req putSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	subscription := model.PushSubscription{
		Endpoint:    req.Endpoint,
		P256DH:      req.P256DH,
		Auth:        req.Auth,
		AllVehicles: req.AllVehicles,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth", "all_vehicles"}),
		}).Create(&subscription).Error; err != nil {
			return err
		}

		// Replace the vehicle mapping wholesale.
		if err := tx.Where("push_subscription_endpoint = ?", req.Endpoint).
			Delete(&model.SubscriptionVehicle{}).Error; err != nil {
			return err
		}
		if len(req.SubscribedVehicles) == 0 {
			return nil
		}

		mappings := make([]model.SubscriptionVehicle, 0, len(req.SubscribedVehicles))
		for _, vid := range req.SubscribedVehicles {
			mappings = append(mappings, model.SubscriptionVehicle{
				PushSubscriptionEndpoint: req.Endpoint,
				VehicleID:                vid,
			})
		}
		return tx.Create(&mappings).Error
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusCreated)
}

type deleteSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

// DeleteSubscription handles the deletion of a subscription.
func (h *Handler) DeleteSubscription(c *gin.Context) {
	var req deleteSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("push_subscription_endpoint = ?", req.Endpoint).
			Delete(&model.SubscriptionVehicle{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.PushSubscription{Endpoint: req.Endpoint}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSubscription handles the retrieval of a subscription.
func (h *Handler) GetSubscription(c *gin.Context) {
	endpoint := c.Query("endpoint")
	if endpoint == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endpoint is required"})
		return
	}

	var subscription model.PushSubscription
	if err := h.db.Preload("Vehicles").First(&subscription, "endpoint = ?", endpoint).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "subscription not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	vehicleIDs := make([]string, len(subscription.Vehicles))
	for i, v := range subscription.Vehicles {
		vehicleIDs[i] = v.VehicleID
	}

	c.JSON(http.StatusOK, gin.H{
		"all_vehicles":        subscription.AllVehicles,
		"subscribed_vehicles": vehicleIDs,
	})
}
