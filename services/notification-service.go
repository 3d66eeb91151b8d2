package services

import (
	"fmt"
	"time"

	"github.com/Zamtas/Zamtas-EMS/models"
)

type notificationRepo interface {
	CreateNotification(notification *models.Notification) error
	GetNotificationsByUser(userID string) ([]models.Notification, error)
	MarkNotificationAsRead(userID, notificationID string, createdAt time.Time) error
	MarkAllAsRead(userID string) error
}

type NotificationService struct {
	repo notificationRepo
}

func NewNotificationService(repo notificationRepo) *NotificationService {
	return &NotificationService{
		repo: repo,
	}
}

func (ns *NotificationService) CreateNotification(userID, message string) error {
	if userID == "" || message == "" {
		return fmt.Errorf("userID and message are required")
	}
	notification := models.Notification{
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now(),
		IsRead:    false,
	}
	return ns.repo.CreateNotification(&notification)
}

func (ns *NotificationService) GetNotificationsByUser(userID string) ([]models.Notification, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID is required")
	}
	return ns.repo.GetNotificationsByUser(userID)
}

// MarkNotificationAsRead flags one notification, or every unread one when
// notificationID is "all".
func (ns *NotificationService) MarkNotificationAsRead(userID, notificationID string, createdAt time.Time) error {
	if userID == "" || notificationID == "" {
		return fmt.Errorf("userID and notificationID are required")
	}
	if notificationID == "all" {
		return ns.repo.MarkAllAsRead(userID)
	}
	if createdAt.IsZero() {
		return fmt.Errorf("createdAt is required")
	}
	return ns.repo.MarkNotificationAsRead(userID, notificationID, createdAt)
}
