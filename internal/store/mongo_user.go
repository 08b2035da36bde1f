package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"user-crud/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UsersCollection 是 MongoDB 中存放使用者的 collection 名稱
const UsersCollection = "users"

// Collection 是 *mongo.Collection 中本服務用到的方法
type Collection interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) *mongo.SingleResult
	FindOneAndDelete(ctx context.Context, filter interface{}, opts ...*options.FindOneAndDeleteOptions) *mongo.SingleResult
}

// IndexCreator is satisfied by mongo.IndexView.
type IndexCreator interface {
	CreateOne(ctx context.Context, model mongo.IndexModel, opts ...*options.CreateIndexesOptions) (string, error)
}

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Age       *int               `bson:"age,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d userDocument) toModel() model.User {
	return model.User{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Age:       d.Age,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type MongoUserStore struct {
	coll Collection
}

func NewMongoUserStore(coll Collection) *MongoUserStore {
	return &MongoUserStore{coll: coll}
}

var _ UserStore = (*MongoUserStore)(nil)

// EnsureUserIndexes 建立 email 的唯一索引，由資料庫保證 email 不重複
func EnsureUserIndexes(ctx context.Context, indexes IndexCreator) error {
	_, err := indexes.CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_1"),
	})
	if err != nil {
		return fmt.Errorf("EnsureUserIndexes: %w", err)
	}
	return nil
}

func (s *MongoUserStore) ListUsers(ctx context.Context) ([]model.User, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	users := make([]model.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toModel())
	}
	return users, nil
}

func (s *MongoUserStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("GetUser: %w", ErrNotFound)
	}
	return decodeUser("GetUser", s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}))
}

func (s *MongoUserStore) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	t := now()
	doc := userDocument{
		ID:        primitive.NewObjectID(),
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		CreatedAt: t,
		UpdatedAt: t,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("CreateUser: %w", ErrDuplicateEmail)
		}
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	created := doc.toModel()
	return &created, nil
}

// UpdateUser 只更新有提供的欄位。updatedAt 取 max(now, 舊值+1ms)，
// 以 pipeline 在伺服器端計算，確保嚴格遞增。
func (s *MongoUserStore) UpdateUser(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("UpdateUser: %w", ErrNotFound)
	}
	res := s.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		updatePipeline(patch, now()),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	return decodeUser("UpdateUser", res)
}

func updatePipeline(patch model.UserPatch, t time.Time) mongo.Pipeline {
	set := bson.D{}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: literal(*patch.Name)})
	}
	if patch.Email != nil {
		set = append(set, bson.E{Key: "email", Value: literal(*patch.Email)})
	}
	if patch.Age != nil {
		set = append(set, bson.E{Key: "age", Value: literal(*patch.Age)})
	}
	set = append(set, bson.E{Key: "updatedAt", Value: bson.D{{Key: "$max", Value: bson.A{
		t,
		bson.D{{Key: "$add", Value: bson.A{"$updatedAt", 1}}},
	}}}})
	return mongo.Pipeline{{{Key: "$set", Value: set}}}
}

// literal keeps user input such as "$name" from being read as a field path.
func literal(v interface{}) bson.D {
	return bson.D{{Key: "$literal", Value: v}}
}

func (s *MongoUserStore) DeleteUser(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("DeleteUser: %w", ErrNotFound)
	}
	return decodeUser("DeleteUser", s.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}))
}

func decodeUser(op string, res *mongo.SingleResult) (*model.User, error) {
	var doc userDocument
	if err := res.Decode(&doc); err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		case mongo.IsDuplicateKeyError(err):
			return nil, fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u := doc.toModel()
	return &u, nil
}
