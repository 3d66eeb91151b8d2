package repositories

import (
	"fmt"
	"time"

	"github.com/Zamtas/Zamtas-EMS/logging"
	"github.com/Zamtas/Zamtas-EMS/models"

	"github.com/gocql/gocql"
)

// NotificationRepository persists in-app notifications in Cassandra,
// independently of the Mongo task store.
type NotificationRepository struct {
	session *gocql.Session
}

func NewNotificationRepository(host string) (*NotificationRepository, error) {
	if host == "" {
		host = "127.0.0.1"
	}

	cluster := gocql.NewCluster(host)
	cluster.Keyspace = "system"
	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to cassandra: %v", err)
	}

	err = session.Query(
		`CREATE KEYSPACE IF NOT EXISTS notifications
         WITH replication = {
             'class': 'SimpleStrategy',
             'replication_factor': 1
         }`).Exec()
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to create keyspace: %v", err)
	}
	session.Close()

	cluster.Keyspace = "notifications"
	cluster.Consistency = gocql.One
	session, err = cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to notifications keyspace: %v", err)
	}

	logging.Logger.Info("Event ID: CASS_CONNECTED, Description: Connected to Cassandra notifications keyspace.")
	return &NotificationRepository{session: session}, nil
}

func (r *NotificationRepository) CloseSession() {
	r.session.Close()
	logging.Logger.Info("Event ID: CASS_SESSION_CLOSED, Description: Cassandra session closed.")
}

func (r *NotificationRepository) CreateTable() {
	err := r.session.Query(
		`CREATE TABLE IF NOT EXISTS notifications (
			id UUID,
			user_id TEXT,
			message TEXT,
			created_at TIMESTAMP,
			is_read BOOLEAN,
			PRIMARY KEY ((user_id), created_at, id)
		) WITH CLUSTERING ORDER BY (created_at DESC, id ASC)`).Exec()
	if err != nil {
		logging.Logger.Errorf("Event ID: CASS_TABLE_CREATE_FAILED, Description: Failed to create notifications table: %v", err)
	} else {
		logging.Logger.Info("Event ID: CASS_TABLE_READY, Description: Notifications table created successfully.")
	}
}

func (r *NotificationRepository) CreateNotification(notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = gocql.TimeUUID().String()
	}

	err := r.session.Query(
		`INSERT INTO notifications (id, user_id, message, created_at, is_read)
		 VALUES (?, ?, ?, ?, ?)`,
		notification.ID, notification.UserID, notification.Message, notification.CreatedAt, notification.IsRead,
	).Exec()
	if err != nil {
		return fmt.Errorf("failed to create notification: %v", err)
	}
	return nil
}

// GetNotificationsByUser returns the user's notifications newest first
// (clustering order on created_at).
func (r *NotificationRepository) GetNotificationsByUser(userID string) ([]models.Notification, error) {
	query := `SELECT id, user_id, message, created_at, is_read
			  FROM notifications WHERE user_id = ?`

	iter := r.session.Query(query, userID).Iter()
	var notifications []models.Notification
	var notification models.Notification

	for iter.Scan(&notification.ID, &notification.UserID,
		&notification.Message, &notification.CreatedAt, &notification.IsRead) {
		notifications = append(notifications, notification)
	}

	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %v", err)
	}

	return notifications, nil
}

func (r *NotificationRepository) MarkNotificationAsRead(userID, notificationID string, createdAt time.Time) error {
	uuid, err := gocql.ParseUUID(notificationID)
	if err != nil {
		return fmt.Errorf("invalid notification ID format: %v", err)
	}

	query := `UPDATE notifications SET is_read = true WHERE user_id = ? AND created_at = ? AND id = ?`
	if err := r.session.Query(query, userID, createdAt, uuid).Exec(); err != nil {
		return fmt.Errorf("failed to mark notification as read: %v", err)
	}
	return nil
}

// MarkAllAsRead flags every unread notification of the user. Cassandra
// updates need the full primary key, so unread rows are fetched first.
func (r *NotificationRepository) MarkAllAsRead(userID string) error {
	notifications, err := r.GetNotificationsByUser(userID)
	if err != nil {
		return err
	}

	for _, n := range notifications {
		if n.IsRead {
			continue
		}
		if err := r.MarkNotificationAsRead(userID, n.ID, n.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}
