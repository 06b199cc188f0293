package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"livemart/internal/models"

	"github.com/google/uuid"
)

// MockNotificationRepository is an in-memory implementation of NotificationRepository.
type MockNotificationRepository struct {
	notifications map[string]models.Notification
	mu            sync.RWMutex
}

// NewMockNotificationRepository creates a new instance of MockNotificationRepository.
func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{
		notifications: make(map[string]models.Notification),
	}
}

// Create appends a notification.
func (r *MockNotificationRepository) Create(notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	notification.CreatedAt = time.Now()
	r.notifications[notification.ID] = *notification
	return nil
}

// GetByUser returns all of a user's notifications, newest first.
func (r *MockNotificationRepository) GetByUser(userID string) ([]models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			list = append(list, n)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// GetUnreadByUser returns a user's unread notifications, newest first.
func (r *MockNotificationRepository) GetUnreadByUser(userID string) ([]models.Notification, error) {
	all, err := r.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	var unread []models.Notification
	for _, n := range all {
		if !n.Read {
			unread = append(unread, n)
		}
	}
	return unread, nil
}

// CountUnread counts a user's unread notifications.
func (r *MockNotificationRepository) CountUnread(userID string) (int64, error) {
	unread, err := r.GetUnreadByUser(userID)
	if err != nil {
		return 0, err
	}
	return int64(len(unread)), nil
}

// MarkRead flips a single notification's read flag.
func (r *MockNotificationRepository) MarkRead(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notifications[id]
	if !ok {
		return fmt.Errorf("notification %s: %w", id, models.ErrNotFound)
	}
	n.Read = true
	r.notifications[id] = n
	return nil
}

// MarkAllRead flips the read flag on everything in a user's inbox.
func (r *MockNotificationRepository) MarkAllRead(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			r.notifications[id] = n
		}
	}
	return nil
}

// snapshot copies the current state for transactional rollback in tests.
func (r *MockNotificationRepository) snapshot() map[string]models.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()

	copied := make(map[string]models.Notification, len(r.notifications))
	for k, v := range r.notifications {
		copied[k] = v
	}
	return copied
}

// restore replaces the current state with a previously taken snapshot.
func (r *MockNotificationRepository) restore(state map[string]models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = state
}
