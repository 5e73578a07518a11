package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrymomot/engagement/core/tracker"
)

const sessionsCollection = "sessions"

// sessionDoc is the stored shape. IDs are persisted as canonical UUID
// strings; absent session_end marks an open session.
type sessionDoc struct {
	ID              string     `bson:"_id"`
	UserID          string     `bson:"user_id"`
	SessionStart    time.Time  `bson:"session_start"`
	SessionEnd      *time.Time `bson:"session_end,omitempty"`
	DurationMinutes *int       `bson:"duration_minutes,omitempty"`
	PagePath        string     `bson:"page_path"`
}

// Store implements tracker.Store on a MongoDB sessions collection.
type Store struct {
	coll *mongo.Collection
}

// NewStore creates a session store over the named database of the client.
func NewStore(client *mongo.Client, database string) *Store {
	return &Store{coll: client.Database(database).Collection(sessionsCollection)}
}

// Create inserts a new open session document and assigns its ID.
func (s *Store) Create(ctx context.Context, sess *tracker.Session) error {
	id := uuid.New()
	doc := sessionDoc{
		ID:           id.String(),
		UserID:       sess.UserID.String(),
		SessionStart: sess.StartedAt,
		PagePath:     sess.PagePath,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	sess.ID = id
	return nil
}

// UpdatePage patches the page path of an open session.
func (s *Store) UpdatePage(ctx context.Context, id uuid.UUID, pagePath string) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id.String(), "session_end": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"page_path": pagePath}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.missReason(ctx, id)
	}
	return nil
}

// Close records the end of a session. Documents close at most once.
func (s *Store) Close(ctx context.Context, id uuid.UUID, endedAt time.Time, durationMinutes int) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id.String(), "session_end": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"session_end": endedAt, "duration_minutes": durationMinutes}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.missReason(ctx, id)
	}
	return nil
}

// ListByUser returns all session documents for the user, unordered.
func (s *Store) ListByUser(ctx context.Context, userID uuid.UUID) ([]tracker.Session, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"user_id": userID.String()})
	if err != nil {
		return nil, err
	}

	var docs []sessionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]tracker.Session, 0, len(docs))
	for _, doc := range docs {
		sess, err := doc.toSession()
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, nil
}

func (s *Store) missReason(ctx context.Context, id uuid.UUID) error {
	count, err := s.coll.CountDocuments(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if count > 0 {
		return tracker.ErrSessionClosed
	}
	return tracker.ErrSessionNotFound
}

func (d sessionDoc) toSession() (tracker.Session, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return tracker.Session{}, err
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return tracker.Session{}, err
	}

	sess := tracker.Session{
		ID:        id,
		UserID:    userID,
		StartedAt: d.SessionStart,
		PagePath:  d.PagePath,
	}
	if d.SessionEnd != nil {
		sess.EndedAt = *d.SessionEnd
	}
	if d.DurationMinutes != nil {
		sess.DurationMinutes = *d.DurationMinutes
	}
	return sess, nil
}
