package repository

import (
	"context"
	"errors"

	"github.com/hirewire/hirewire-backend/hirewire-session/internal/domain"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrInvalidInsertedIDType = errors.New("invalid InsertedID type")

type NotificationRepo struct {
	Db         *mongo.Database
	Collection *mongo.Collection
}

func NewNotificationRepo(db *mongo.Database, collectionName string) domain.NotificationRepository {
	collection := db.Collection(collectionName)
	repo := &NotificationRepo{
		Db:         db,
		Collection: collection,
	}
	err := repo.RegisterNotificationIndexes(context.TODO())
	if err != nil {
		logrus.Error("Unable to register indexes")
		logrus.Error(err)
	}
	return repo
}

// RegisterNotificationIndexes creates the recipient and timestamp indexes
func (nr *NotificationRepo) RegisterNotificationIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "recipientProfileId", Value: 1}},
			Options: options.Index().SetName("recipient_index"),
		},
		{
			Keys:    bson.D{{Key: "createdDate", Value: -1}},
			Options: options.Index().SetName("created_date_index"),
		},
	}

	_, err := nr.Collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func (nr NotificationRepo) Create(ctx context.Context, notification domain.Notification) (domain.Notification, error) {
	doc, err := nr.Collection.InsertOne(ctx, notification)
	if err != nil {
		logrus.Debug("Error while inserting notification,Reason:", err)
		return domain.Notification{}, err
	}

	insertedID, ok := doc.InsertedID.(primitive.ObjectID)
	if !ok {
		return domain.Notification{}, ErrInvalidInsertedIDType
	}

	var inserted domain.Notification
	err = nr.Collection.FindOne(ctx, bson.M{"_id": insertedID}).Decode(&inserted)
	if err != nil {
		return domain.Notification{}, err
	}

	return inserted, nil
}

func (nr NotificationRepo) GetByID(ctx context.Context, id primitive.ObjectID, profileID string) (domain.Notification, error) {
	filter := bson.M{"_id": id, "recipientProfileId": profileID}

	var notification domain.Notification
	err := nr.Collection.FindOne(ctx, filter).Decode(&notification)
	if err != nil {
		return notification, err
	}
	return notification, nil
}

// List returns the recipient's notifications newest first. Ties on
// createdDate fall back to _id, which preserves insertion order.
func (nr NotificationRepo) List(ctx context.Context, profileID string) ([]domain.Notification, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdDate", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := nr.Collection.Find(ctx, bson.M{"recipientProfileId": profileID}, findOptions)
	if err != nil {
		return []domain.Notification{}, err
	}
	defer cursor.Close(ctx)

	notifications := []domain.Notification{}
	err = cursor.All(ctx, &notifications)
	if err != nil {
		return []domain.Notification{}, err
	}

	return notifications, nil
}

// SetRead flips isRead on a single record. Returns whether a document was
// actually modified, so callers can keep the unread counter honest on
// repeated calls.
func (nr NotificationRepo) SetRead(ctx context.Context, id primitive.ObjectID, profileID string, isRead bool) (bool, error) {
	filter := bson.M{"_id": id, "recipientProfileId": profileID}
	update := bson.M{"$set": bson.M{"isRead": isRead}}

	res, err := nr.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}

	return res.ModifiedCount > 0, nil
}

func (nr NotificationRepo) SetAllRead(ctx context.Context, profileID string) (int64, error) {
	filter := bson.M{"recipientProfileId": profileID}
	update := bson.M{"$set": bson.M{"isRead": true}}

	res, err := nr.Collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}

	return res.ModifiedCount, nil
}

func (nr NotificationRepo) Delete(ctx context.Context, id primitive.ObjectID, profileID string) (bool, error) {
	filter := bson.M{"_id": id, "recipientProfileId": profileID}

	res, err := nr.Collection.DeleteOne(ctx, filter)
	if err != nil {
		return false, err
	}

	return res.DeletedCount > 0, nil
}

func (nr NotificationRepo) DeleteAll(ctx context.Context, profileID string) (int64, error) {
	res, err := nr.Collection.DeleteMany(ctx, bson.M{"recipientProfileId": profileID})
	if err != nil {
		return 0, err
	}

	return res.DeletedCount, nil
}

func (nr NotificationRepo) CountUnread(ctx context.Context, profileID string) (int64, error) {
	filter := bson.M{"recipientProfileId": profileID, "isRead": false}
	return nr.Collection.CountDocuments(ctx, filter)
}
