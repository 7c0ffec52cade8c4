package services

import "context"

// NotificationSink delivers verification and password reset links out of band.
// Delivery failures must match apperrors.ErrNotificationDeliveryFailed.
type NotificationSink interface {
	Send(ctx context.Context, toEmail, token string, isPasswordReset bool) error
}

// EventTracker records auth events for metrics and product analytics.
type EventTracker interface {
	Track(ctx context.Context, userID, event string, properties map[string]any)
}
