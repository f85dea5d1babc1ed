// store/asset_store.go
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"mangemate/models"
)

type MongoAssetStore struct {
	coll *mongo.Collection
}

func NewMongoAssetStore(db *mongo.Database) *MongoAssetStore {
	return &MongoAssetStore{coll: db.Collection("assets")}
}

func (s *MongoAssetStore) FindAll(ctx context.Context) ([]models.Asset, error) {
	return s.findMany(ctx, bson.M{})
}

func (s *MongoAssetStore) FindByHREmail(ctx context.Context, email string) ([]models.Asset, error) {
	return s.findMany(ctx, bson.M{"hr.email": email})
}

func (s *MongoAssetStore) findMany(ctx context.Context, filter bson.M) ([]models.Asset, error) {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assets []models.Asset
	if err = cursor.All(ctx, &assets); err != nil {
		return nil, err
	}
	if assets == nil {
		assets = []models.Asset{}
	}
	return assets, nil
}

func (s *MongoAssetStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Asset, error) {
	var asset models.Asset
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&asset)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &asset, nil
}

func (s *MongoAssetStore) Insert(ctx context.Context, asset *models.Asset) (primitive.ObjectID, error) {
	res, err := s.coll.InsertOne(ctx, asset)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (s *MongoAssetStore) UpdateDetails(ctx context.Context, id primitive.ObjectID, name, assetsType string, quantity int) (bool, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"assetsName": name,
			"assetsType": assetsType,
			"quantity":   quantity,
		}},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, ErrNotFound
	}
	return res.ModifiedCount > 0, nil
}

// Delete matches on the owning HR's email as well as the id, so a valid
// credential alone is not enough to remove another HR's asset.
func (s *MongoAssetStore) Delete(ctx context.Context, id primitive.ObjectID, ownerEmail string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "hr.email": ownerEmail})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		count, err := s.coll.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrNotOwner
	}
	return nil
}

// SetQuantity is predicated on the previously read quantity, turning the
// read-then-write race into a detectable failed update.
func (s *MongoAssetStore) SetQuantity(ctx context.Context, id primitive.ObjectID, from, to int) (bool, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "quantity": from},
		bson.M{"$set": bson.M{"quantity": to}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}
