package services

import (
	"errors"
	"testing"
	"time"

	"github.com/Zamtas/Zamtas-EMS/models"
)

type fakeNotificationRepo struct {
	created       []models.Notification
	markedOne     []string
	markedAllFor  []string
	notifications []models.Notification
}

func (f *fakeNotificationRepo) CreateNotification(notification *models.Notification) error {
	f.created = append(f.created, *notification)
	return nil
}

func (f *fakeNotificationRepo) GetNotificationsByUser(userID string) ([]models.Notification, error) {
	return f.notifications, nil
}

func (f *fakeNotificationRepo) MarkNotificationAsRead(userID, notificationID string, createdAt time.Time) error {
	f.markedOne = append(f.markedOne, notificationID)
	return nil
}

func (f *fakeNotificationRepo) MarkAllAsRead(userID string) error {
	f.markedAllFor = append(f.markedAllFor, userID)
	return nil
}

func TestCreateNotificationRequiresFields(t *testing.T) {
	service := NewNotificationService(&fakeNotificationRepo{})

	if err := service.CreateNotification("", "message"); err == nil {
		t.Error("expected error for missing userID")
	}
	if err := service.CreateNotification("user-1", ""); err == nil {
		t.Error("expected error for missing message")
	}
}

func TestCreateNotificationDefaultsToUnread(t *testing.T) {
	repo := &fakeNotificationRepo{}
	service := NewNotificationService(repo)

	if err := service.CreateNotification("user-1", "Task delayed"); err != nil {
		t.Fatalf("CreateNotification returned error: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 record, got %d", len(repo.created))
	}
	if repo.created[0].IsRead {
		t.Error("expected notification to start unread")
	}
	if repo.created[0].CreatedAt.IsZero() {
		t.Error("expected creation timestamp to be set")
	}
}

func TestMarkNotificationAsReadAllVariant(t *testing.T) {
	repo := &fakeNotificationRepo{}
	service := NewNotificationService(repo)

	if err := service.MarkNotificationAsRead("user-1", "all", time.Time{}); err != nil {
		t.Fatalf("MarkNotificationAsRead returned error: %v", err)
	}
	if len(repo.markedAllFor) != 1 || repo.markedAllFor[0] != "user-1" {
		t.Errorf("expected mark-all for user-1, got %+v", repo.markedAllFor)
	}
}

func TestMarkNotificationAsReadRequiresCreatedAt(t *testing.T) {
	service := NewNotificationService(&fakeNotificationRepo{})

	err := service.MarkNotificationAsRead("user-1", "6f1b0a4e", time.Time{})
	if err == nil {
		t.Error("expected error for missing createdAt on single mark")
	}
	if errors.Is(err, ErrTaskNotFound) {
		t.Error("unexpected task error from notification service")
	}
}
