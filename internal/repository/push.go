package repository

import (
	"context"
	"time"

	"github.com/hirewire/hirewire-backend/hirewire-session/internal/domain"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PushSubscriptionRepo struct {
	Db         *mongo.Database
	Collection *mongo.Collection
}

func NewPushSubscriptionRepo(db *mongo.Database, collectionName string) domain.PushSubscriptionRepository {
	collection := db.Collection(collectionName)
	repo := &PushSubscriptionRepo{
		Db:         db,
		Collection: collection,
	}
	err := repo.RegisterPushIndexes(context.TODO())
	if err != nil {
		logrus.Error("Unable to register indexes")
		logrus.Error(err)
	}
	return repo
}

// RegisterPushIndexes creates a unique index per (profile, endpoint) so a
// device re-subscribing never duplicates.
func (pr *PushSubscriptionRepo) RegisterPushIndexes(ctx context.Context) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "profileId", Value: 1}, {Key: "endpoint", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("profile_endpoint_index"),
	}

	_, err := pr.Collection.Indexes().CreateOne(ctx, indexModel)
	return err
}

func (pr PushSubscriptionRepo) Save(ctx context.Context, sub domain.PushSubscription) (domain.PushSubscription, error) {
	filter := bson.M{"profileId": sub.ProfileID, "endpoint": sub.Endpoint}
	update := bson.M{
		"$set": bson.M{
			"auth":   sub.Auth,
			"p256dh": sub.P256dh,
		},
		"$setOnInsert": bson.M{
			"profileId": sub.ProfileID,
			"endpoint":  sub.Endpoint,
			"createdAt": time.Now(),
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var saved domain.PushSubscription
	err := pr.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved)
	if err != nil {
		return domain.PushSubscription{}, err
	}

	return saved, nil
}

func (pr PushSubscriptionRepo) Remove(ctx context.Context, profileID, endpoint string) error {
	_, err := pr.Collection.DeleteOne(ctx, bson.M{"profileId": profileID, "endpoint": endpoint})
	return err
}

func (pr PushSubscriptionRepo) ListByProfile(ctx context.Context, profileID string) ([]domain.PushSubscription, error) {
	cursor, err := pr.Collection.Find(ctx, bson.M{"profileId": profileID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	subs := []domain.PushSubscription{}
	err = cursor.All(ctx, &subs)
	if err != nil {
		return nil, err
	}

	return subs, nil
}
