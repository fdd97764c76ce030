package services

import (
	"context"
	"log"

	"firebase.google.com/go/messaging"

	"arendaBack/internal/repositories"
)

// PushService delivers FCM notifications for chat and booking events.
// Delivery is best-effort: failures are logged, never surfaced to callers.
type PushService struct {
	Client   *messaging.Client
	UserRepo *repositories.UserRepository
	ErrorLog *log.Logger
}

func (s *PushService) Notify(ctx context.Context, userID int, title, body string, data map[string]string) {
	if s == nil || s.Client == nil {
		return
	}

	token, err := s.UserRepo.GetDeviceToken(ctx, userID)
	if err != nil {
		s.logf("fetch device token for user %d: %v", userID, err)
		return
	}
	if token == "" {
		return
	}

	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority_channel",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: title,
						Body:  body,
					},
					Sound: "default",
				},
			},
		},
	}

	if _, err := s.Client.Send(ctx, message); err != nil {
		s.logf("send push to user %d: %v", userID, err)
	}
}

func (s *PushService) logf(format string, args ...interface{}) {
	if s.ErrorLog != nil {
		s.ErrorLog.Printf(format, args...)
	}
}
