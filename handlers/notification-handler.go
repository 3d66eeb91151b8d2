package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Zamtas/Zamtas-EMS/logging"
	"github.com/Zamtas/Zamtas-EMS/models"
	"github.com/Zamtas/Zamtas-EMS/services"
)

type NotificationHandler struct {
	service *services.NotificationService
}

func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (nh *NotificationHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "Missing userId parameter")
		return
	}

	notifications, err := nh.service.GetNotificationsByUser(userID)
	if err != nil {
		logging.Logger.Errorf("Event ID: NOTIFICATIONS_FETCH_FAILED, Description: Failed to fetch notifications for user %s: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}

	// Always return an array, even when empty.
	if notifications == nil {
		notifications = []models.Notification{}
	}
	respondJSON(w, http.StatusOK, "Notifications fetched successfully", notifications)
}

func (nh *NotificationHandler) MarkNotificationAsRead(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NotificationID string    `json:"notificationId"`
		UserID         string    `json:"userId"`
		CreatedAt      time.Time `json:"createdAt,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.NotificationID == "" {
		respondError(w, http.StatusBadRequest, "Notification ID is required")
		return
	}

	if err := nh.service.MarkNotificationAsRead(req.UserID, req.NotificationID, req.CreatedAt); err != nil {
		logging.Logger.Errorf("Event ID: NOTIFICATION_READ_FAILED, Description: Failed to mark notification %s as read for user %s: %v", req.NotificationID, req.UserID, err)
		respondError(w, http.StatusInternalServerError, "Failed to mark notification as read")
		return
	}

	if req.NotificationID == "all" {
		respondJSON(w, http.StatusOK, "All notifications marked as read", nil)
		return
	}
	respondJSON(w, http.StatusOK, "Notification marked as read", nil)
}
