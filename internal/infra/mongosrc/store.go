// Package mongosrc reads the source document store. Each entity kind lives in
// its own collection and is read in full, in natural order; the migration does
// all filtering itself.
package mongosrc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cityvizor/pg-migrate/internal/domain"
)

// Store holds a shared client to the source document store.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a connection to the source store and verifies it with a ping.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongosrc: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongosrc: ping: %w", err)
	}
	return &Store{client: client, db: client.Database(database)}, nil
}

// Close disconnects from the source store. Call when the migration finishes,
// success or failure.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// ListProfiles returns all profiles. The avatar binary is projected out;
// ProfileAvatar fetches it separately for profiles that have one.
func (s *Store) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	opts := options.Find().SetProjection(bson.D{{Key: "avatar.data", Value: 0}})
	cur, err := s.db.Collection("profiles").Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("ListProfiles: find: %w", err)
	}
	var profiles []domain.Profile
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("ListProfiles: decode: %w", err)
	}
	return profiles, nil
}

// ProfileAvatar fetches the avatar subdocument (including its binary payload)
// for a single profile. Returns nil when the profile has no avatar.
func (s *Store) ProfileAvatar(ctx context.Context, id primitive.ObjectID) (*domain.Avatar, error) {
	var doc struct {
		Avatar *domain.Avatar `bson:"avatar"`
	}
	opts := options.FindOne().SetProjection(bson.D{{Key: "avatar", Value: 1}})
	err := s.db.Collection("profiles").FindOne(ctx, bson.D{{Key: "_id", Value: id}}, opts).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("ProfileAvatar %s: %w", id.Hex(), err)
	}
	return doc.Avatar, nil
}

// ListEtls returns all fiscal-year import records.
func (s *Store) ListEtls(ctx context.Context) ([]domain.Etl, error) {
	cur, err := s.db.Collection("etls").Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("ListEtls: find: %w", err)
	}
	var etls []domain.Etl
	if err := cur.All(ctx, &etls); err != nil {
		return nil, fmt.Errorf("ListEtls: decode: %w", err)
	}
	return etls, nil
}

// ListEvents returns all events.
func (s *Store) ListEvents(ctx context.Context) ([]domain.Event, error) {
	cur, err := s.db.Collection("events").Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("ListEvents: find: %w", err)
	}
	var events []domain.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("ListEvents: decode: %w", err)
	}
	return events, nil
}

// ListPayments returns all payments.
func (s *Store) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	cur, err := s.db.Collection("payments").Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("ListPayments: find: %w", err)
	}
	var payments []domain.Payment
	if err := cur.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("ListPayments: decode: %w", err)
	}
	return payments, nil
}

// ListBudgets returns all budget documents.
func (s *Store) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	cur, err := s.db.Collection("budgets").Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("ListBudgets: find: %w", err)
	}
	var budgets []domain.Budget
	if err := cur.All(ctx, &budgets); err != nil {
		return nil, fmt.Errorf("ListBudgets: decode: %w", err)
	}
	return budgets, nil
}
