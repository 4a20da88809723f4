package Notifications

import (
	"context"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
	"gorm.io/gorm"

	"KidGrow/Models"
)

// Global Firebase client
var firebaseClient *messaging.Client
var ctx = context.Background()

// InitFirebase sets up the FCM client from the service account file named by
// FIREBASE_CREDENTIALS. Push notifications are optional: when the variable is
// unset the server runs without them.
func InitFirebase() error {
	credentials := os.Getenv("FIREBASE_CREDENTIALS")
	if credentials == "" {
		log.Println("FIREBASE_CREDENTIALS not set, push notifications disabled")
		return nil
	}
	opt := option.WithCredentialsFile(credentials)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return fmt.Errorf("error initializing Firebase app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("error getting Messaging client: %v", err)
	}

	firebaseClient = client
	log.Println("Firebase initialized successfully")
	return nil
}

// Enabled reports whether the FCM client is ready.
func Enabled() bool {
	return firebaseClient != nil
}

// NotifyDailyTasksReady tells every registered device that today's tasks have
// been materialized. Send failures are logged per token and stale tokens are
// dropped; the sweep itself never depends on this succeeding.
func NotifyDailyTasksReady(db *gorm.DB, date Models.DateOnly) {
	if firebaseClient == nil {
		return
	}

	var tokens []Models.FCMToken
	if err := db.Find(&tokens).Error; err != nil {
		log.Printf("Failed to load FCM tokens: %v", err)
		return
	}

	sent := 0
	for _, token := range tokens {
		if err := sendDailyTasksPush(token.Value, date); err != nil {
			log.Printf("Error sending notification to token %d: %v", token.ID, err)
			if messaging.IsUnregistered(err) {
				db.Delete(&token)
			}
			continue
		}
		sent++
	}
	log.Printf("Daily-tasks notification sent to %d/%d devices", sent, len(tokens))
}

func sendDailyTasksPush(token string, date Models.DateOnly) error {
	message := &messaging.Message{
		Token: token,
		Data: map[string]string{
			"kind": "daily_tasks",
			"date": date.String(),
		},
		Notification: &messaging.Notification{
			Title: "🌞 Today's tasks are ready",
			Body:  "Two new activities are waiting for your child",
		},
		Android: &messaging.AndroidConfig{
			Notification: &messaging.AndroidNotification{
				Icon:  "daily_tasks_icon",
				Color: "#FFB347",
				Sound: "default",
			},
			Priority: "high",
		},
	}

	response, err := firebaseClient.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending Firebase message: %v", err)
	}
	log.Printf("Successfully sent Firebase notification: %s", response)
	return nil
}
