package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Event types for activity tracking.
const (
	EventLogin       = "login"        // User signed in
	EventLogout      = "logout"       // User signed out
	EventAPICall     = "api_call"     // User called an API endpoint
	EventAdminAction = "admin_action" // User performed an administrative action
)

// Event represents a user activity event. SessionID is a random UUID
// minted at sign-in so events from one browser session group together.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	SessionID string             `bson:"session_id,omitempty"`
	Timestamp time.Time          `bson:"timestamp"`

	// What happened
	EventType string `bson:"event_type"`

	// Context (varies by event type)
	Path    string         `bson:"path,omitempty"`
	Method  string         `bson:"method,omitempty"`
	Details map[string]any `bson:"details,omitempty"`
}

// NewSessionID mints the session identifier recorded on events for one
// signed-in browser session.
func NewSessionID() string {
	return uuid.NewString()
}

// Store manages activity events.
type Store struct {
	c *mongo.Collection
}

// New creates a new activity Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("activity_events")}
}

// EnsureIndexes creates necessary indexes for efficient querying.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_activity_user"),
		},
		{
			Keys:    bson.D{{Key: "session_id", Value: 1}, {Key: "timestamp", Value: 1}},
			Options: options.Index().SetName("idx_activity_session"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create records a new activity event.
func (s *Store) Create(ctx context.Context, event Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, event)
	return err
}

// RecordLogin records a successful sign-in.
func (s *Store) RecordLogin(ctx context.Context, userID primitive.ObjectID, sessionID string) error {
	return s.Create(ctx, Event{
		UserID:    userID,
		SessionID: sessionID,
		EventType: EventLogin,
	})
}

// RecordLogout records a sign-out.
func (s *Store) RecordLogout(ctx context.Context, userID primitive.ObjectID, sessionID string) error {
	return s.Create(ctx, Event{
		UserID:    userID,
		SessionID: sessionID,
		EventType: EventLogout,
	})
}

// RecordAPICall records an authenticated API request.
func (s *Store) RecordAPICall(ctx context.Context, userID primitive.ObjectID, sessionID, method, path string) error {
	return s.Create(ctx, Event{
		UserID:    userID,
		SessionID: sessionID,
		EventType: EventAPICall,
		Method:    method,
		Path:      path,
	})
}

// RecordAdminAction records an administrative action, with details
// describing the action and its target.
func (s *Store) RecordAdminAction(ctx context.Context, userID primitive.ObjectID, sessionID string, details map[string]any) error {
	return s.Create(ctx, Event{
		UserID:    userID,
		SessionID: sessionID,
		EventType: EventAdminAction,
		Details:   details,
	})
}

// GetByUser retrieves recent events for a user, newest first.
func (s *Store) GetByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]Event, error) {
	// _id breaks timestamp ties: BSON datetimes carry millisecond
	// precision and back-to-back events can share one.
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetBySession retrieves all events for a session in time order.
func (s *Store) GetBySession(ctx context.Context, sessionID string) ([]Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// DeleteByUser removes all events for a user. Called when the user
// record itself is deleted.
func (s *Store) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
