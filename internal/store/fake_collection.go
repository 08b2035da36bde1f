package store

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FakeCollection struct {
	InsertOneFn        func(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	FindFn             func(ctx context.Context, filter interface{}) (*mongo.Cursor, error)
	FindOneFn          func(ctx context.Context, filter interface{}) *mongo.SingleResult
	FindOneAndUpdateFn func(ctx context.Context, filter, update interface{}, opts ...*options.FindOneAndUpdateOptions) *mongo.SingleResult
	FindOneAndDeleteFn func(ctx context.Context, filter interface{}) *mongo.SingleResult
	CreateOneFn        func(ctx context.Context, model mongo.IndexModel) (string, error)
}

func (f *FakeCollection) InsertOne(ctx context.Context, document interface{}, _ ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	if f.InsertOneFn != nil {
		return f.InsertOneFn(ctx, document)
	}
	panic("unexpected InsertOne")
}

func (f *FakeCollection) Find(ctx context.Context, filter interface{}, _ ...*options.FindOptions) (*mongo.Cursor, error) {
	if f.FindFn != nil {
		return f.FindFn(ctx, filter)
	}
	panic("unexpected Find")
}

func (f *FakeCollection) FindOne(ctx context.Context, filter interface{}, _ ...*options.FindOneOptions) *mongo.SingleResult {
	if f.FindOneFn != nil {
		return f.FindOneFn(ctx, filter)
	}
	panic("unexpected FindOne")
}

func (f *FakeCollection) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) *mongo.SingleResult {
	if f.FindOneAndUpdateFn != nil {
		return f.FindOneAndUpdateFn(ctx, filter, update, opts...)
	}
	panic("unexpected FindOneAndUpdate")
}

func (f *FakeCollection) FindOneAndDelete(ctx context.Context, filter interface{}, _ ...*options.FindOneAndDeleteOptions) *mongo.SingleResult {
	if f.FindOneAndDeleteFn != nil {
		return f.FindOneAndDeleteFn(ctx, filter)
	}
	panic("unexpected FindOneAndDelete")
}

// CreateOne lets FakeCollection stand in for an index view.
func (f *FakeCollection) CreateOne(ctx context.Context, model mongo.IndexModel, _ ...*options.CreateIndexesOptions) (string, error) {
	if f.CreateOneFn != nil {
		return f.CreateOneFn(ctx, model)
	}
	panic("unexpected CreateOne")
}
