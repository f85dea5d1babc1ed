// store/request_store.go
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"mangemate/models"
)

type MongoRequestStore struct {
	coll *mongo.Collection
}

func NewMongoRequestStore(db *mongo.Database) *MongoRequestStore {
	return &MongoRequestStore{coll: db.Collection("requests")}
}

func (s *MongoRequestStore) Insert(ctx context.Context, req *models.Request) (primitive.ObjectID, error) {
	res, err := s.coll.InsertOne(ctx, req)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (s *MongoRequestStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Request, error) {
	var req models.Request
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (s *MongoRequestStore) ListForEmploy(ctx context.Context, email string) ([]models.RequestWithAsset, error) {
	return s.aggregateJoined(ctx, assetJoinPipeline("employ.email", email))
}

func (s *MongoRequestStore) ListForHR(ctx context.Context, email string) ([]models.RequestWithAsset, error) {
	return s.aggregateJoined(ctx, assetJoinPipeline("assetsOwner", email))
}

// assetJoinPipeline matches requests on matchField, coerces the stored
// requestId string to an ObjectID and inner-joins the assets collection,
// flattening the one-to-one result and lifting the asset's name and
// companyName onto the request. $unwind drops requests whose requestId
// resolves to no asset.
func assetJoinPipeline(matchField, email string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: matchField, Value: email},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "assetId", Value: bson.D{{Key: "$toObjectId", Value: "$requestId"}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "assets"},
			{Key: "localField", Value: "assetId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "assets"},
		}}},
		{{Key: "$unwind", Value: "$assets"}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "name", Value: "$assets.assetsName"},
			{Key: "companyName", Value: "$assets.companyName"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "assets", Value: 0},
		}}},
	}
}

func (s *MongoRequestStore) aggregateJoined(ctx context.Context, pipeline mongo.Pipeline) ([]models.RequestWithAsset, error) {
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.RequestWithAsset
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if results == nil {
		results = []models.RequestWithAsset{}
	}
	return results, nil
}

// Approve does not require a prior "requested" status; re-approval is a
// permitted no-op-equivalent write.
func (s *MongoRequestStore) Approve(ctx context.Context, id primitive.ObjectID, approvalDate string) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":       models.RequestStatusApproved,
			"approvalDate": approvalDate,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoRequestStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
