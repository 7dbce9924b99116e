package notification

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"geofence-alert-backend/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// pushPayload is the JSON body delivered to push clients.
type pushPayload struct {
	Title     string `json:"title"`
	Message   string `json:"message"`
	VehicleID string `json:"vehicleId"`
	AlertType string `json:"alertType"`
	Location  string `json:"location"`
	Timestamp string `json:"timestamp"`
}

// WorkerPool manages a pool of workers delivering alert notifications.
type WorkerPool struct {
	size    int
	jobs    chan model.Alert
	db      *gorm.DB
	webpush *webpush.Options
	sender  NotificationSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan model.Alert, size*4),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Notification worker %d started", id)
	for {
		select {
		case a := <-wp.jobs:
			wp.sendAlertNotifications(ctx, a)
		case <-ctx.Done():
			log.Printf("Notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues an alert for delivery. The evaluation loop must never
// block on a slow push endpoint, so a full queue drops the job.
func (wp *WorkerPool) Dispatch(a model.Alert) {
	select {
	case wp.jobs <- a:
	default:
		log.Printf("Notification queue full, dropping push for vehicle %s", a.VehicleID)
	}
}

// sendAlertNotifications fans one alert out to every matching subscription.
func (wp *WorkerPool) sendAlertNotifications(ctx context.Context, a model.Alert) {
	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("LEFT JOIN subscription_vehicles sv ON sv.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("push_subscriptions.all_vehicles = ? OR sv.vehicle_id = ?", true, a.VehicleID).
		Distinct().
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for vehicle %s: %v", a.VehicleID, err)
		return
	}

	if len(subscriptions) == 0 {
		return
	}

	payload, err := json.Marshal(pushPayload{
		Title:     "Geofence alert",
		Message:   a.Message,
		VehicleID: a.VehicleID,
		AlertType: a.AlertType,
		Location:  a.Location,
		Timestamp: a.TriggeredAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.Printf("Error marshaling push payload for vehicle %s: %v", a.VehicleID, err)
		return
	}

	log.Printf("Sending %d notifications for vehicle %s", len(subscriptions), a.VehicleID)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, payload)
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Where("push_subscription_endpoint = ?", sub.Endpoint).
			Delete(&model.SubscriptionVehicle{}).Error; err != nil {
			log.Printf("Failed to delete vehicle mappings for %s: %v", sub.Endpoint, err)
		}
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
