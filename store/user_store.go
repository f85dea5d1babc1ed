// store/user_store.go
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"mangemate/models"
)

type MongoUserStore struct {
	coll *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{coll: db.Collection("users")}
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserStore) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	res, err := s.coll.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (s *MongoUserStore) FindAll(ctx context.Context) ([]models.User, error) {
	return s.findMany(ctx, bson.M{})
}

func (s *MongoUserStore) FindByHREmail(ctx context.Context, hrEmail string) ([]models.User, error) {
	return s.findMany(ctx, bson.M{"hrEmail": hrEmail})
}

func (s *MongoUserStore) FindByStatus(ctx context.Context, status string) ([]models.User, error) {
	return s.findMany(ctx, bson.M{"status": status})
}

func (s *MongoUserStore) findMany(ctx context.Context, filter bson.M) ([]models.User, error) {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (s *MongoUserStore) CountEmployees(ctx context.Context, hrEmail string) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{
		"hrEmail": hrEmail,
		"role":    models.RoleEmployee,
	})
}

// Approve folds the check-then-set into a single conditional update so
// two HRs cannot both claim the same user.
func (s *MongoUserStore) Approve(ctx context.Context, id primitive.ObjectID, hrEmail string) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "role": bson.M{"$ne": models.RoleEmployee}},
		bson.M{"$set": bson.M{
			"role":    models.RoleEmployee,
			"hrEmail": hrEmail,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Either absent or already an employee; look to tell them apart.
		count, err := s.coll.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrConflict
	}
	return nil
}

func (s *MongoUserStore) ClearEmployment(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"role": "", "hrEmail": ""}},
	)
	return err
}
