package repository

import (
	"context"
	"time"

	"github.com/hirewire/hirewire-backend/hirewire-session/internal/domain"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ChatRoomRepo struct {
	Db         *mongo.Database
	Collection *mongo.Collection
}

func NewChatRoomRepo(db *mongo.Database, collectionName string) domain.ChatRoomRepository {
	collection := db.Collection(collectionName)
	repo := &ChatRoomRepo{
		Db:         db,
		Collection: collection,
	}
	err := repo.RegisterChatRoomIndexes(context.TODO())
	if err != nil {
		logrus.Error("Unable to register indexes")
		logrus.Error(err)
	}
	return repo
}

// RegisterChatRoomIndexes creates a unique index on pairKey. The unique index
// is what enforces one room per unordered participant pair.
func (cr *ChatRoomRepo) RegisterChatRoomIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "pairKey", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("pair_key_index"),
		},
		{
			Keys:    bson.D{{Key: "participant1Id", Value: 1}},
			Options: options.Index().SetName("participant1_index"),
		},
		{
			Keys:    bson.D{{Key: "participant2Id", Value: 1}},
			Options: options.Index().SetName("participant2_index"),
		},
	}

	_, err := cr.Collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// Upsert finds or creates the room for the sender/recipient pair. Participant
// slots are fixed by the canonical pair order so a room never flips sides.
func (cr ChatRoomRepo) Upsert(ctx context.Context, senderID, senderName, recipientID, recipientName string) (domain.ChatRoom, error) {
	pairKey := domain.PairKey(senderID, recipientID)

	p1ID, p1Name := senderID, senderName
	p2ID, p2Name := recipientID, recipientName
	if p1ID > p2ID {
		p1ID, p2ID = p2ID, p1ID
		p1Name, p2Name = p2Name, p1Name
	}

	now := time.Now()
	filter := bson.M{"pairKey": pairKey}
	update := bson.M{
		"$setOnInsert": bson.M{
			"pairKey":          pairKey,
			"participant1Id":   p1ID,
			"participant1Name": p1Name,
			"participant2Id":   p2ID,
			"participant2Name": p2Name,
			"unreadCount1":     int64(0),
			"unreadCount2":     int64(0),
			"createdAt":        now,
			"updatedAt":        now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var room domain.ChatRoom
	err := cr.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&room)
	if err != nil {
		return domain.ChatRoom{}, err
	}

	return room, nil
}

func (cr ChatRoomRepo) GetByID(ctx context.Context, roomID primitive.ObjectID) (domain.ChatRoom, error) {
	var room domain.ChatRoom
	err := cr.Collection.FindOne(ctx, bson.M{"_id": roomID}).Decode(&room)
	if err != nil {
		return room, err
	}
	return room, nil
}

// RecordMessage updates the denormalized last-message fields and bumps the
// recipient's unread counter.
func (cr ChatRoomRepo) RecordMessage(ctx context.Context, roomID primitive.ObjectID, recipientID, body string, at time.Time) (domain.ChatRoom, error) {
	room, err := cr.GetByID(ctx, roomID)
	if err != nil {
		return domain.ChatRoom{}, err
	}

	unreadField := "unreadCount2"
	if recipientID == room.Participant1ID {
		unreadField = "unreadCount1"
	}

	update := bson.M{
		"$set": bson.M{
			"lastMessage":     body,
			"lastMessageTime": at,
			"updatedAt":       time.Now(),
		},
		"$inc": bson.M{unreadField: 1},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated domain.ChatRoom
	err = cr.Collection.FindOneAndUpdate(ctx, bson.M{"_id": roomID}, update, opts).Decode(&updated)
	if err != nil {
		return domain.ChatRoom{}, err
	}

	return updated, nil
}

func (cr ChatRoomRepo) ResetUnread(ctx context.Context, roomID primitive.ObjectID, profileID string) error {
	room, err := cr.GetByID(ctx, roomID)
	if err != nil {
		return err
	}

	unreadField := "unreadCount2"
	if profileID == room.Participant1ID {
		unreadField = "unreadCount1"
	}

	update := bson.M{
		"$set": bson.M{
			unreadField: int64(0),
			"updatedAt": time.Now(),
		},
	}

	_, err = cr.Collection.UpdateOne(ctx, bson.M{"_id": roomID}, update)
	return err
}

func (cr ChatRoomRepo) ListByParticipant(ctx context.Context, profileID string) ([]domain.ChatRoom, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"participant1Id": profileID},
			{"participant2Id": profileID},
		},
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "lastMessageTime", Value: -1}})

	cursor, err := cr.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rooms := []domain.ChatRoom{}
	err = cursor.All(ctx, &rooms)
	if err != nil {
		return nil, err
	}

	return rooms, nil
}
