package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"propertyhub-api/internal/model"
	"propertyhub-api/prometheus"
)

// MongoPropertyRepository implements PropertyRepository on the property
// collection. Filters are expressed as store-side queries so they can be
// served by secondary indexes.
type MongoPropertyRepository struct {
	coll *mongo.Collection
}

func NewMongoPropertyRepository(coll *mongo.Collection) *MongoPropertyRepository {
	return &MongoPropertyRepository{coll: coll}
}

func (r *MongoPropertyRepository) find(ctx context.Context, filter bson.M) ([]model.Property, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var properties []model.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *MongoPropertyRepository) GetAll(ctx context.Context) ([]model.Property, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoPropertyRepository) GetByMLS(ctx context.Context, mls string) (*model.Property, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var property model.Property
	err := r.coll.FindOne(ctx, bson.M{"_id": mls}).Decode(&property)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &property, nil
}

func (r *MongoPropertyRepository) GetByType(ctx context.Context, propertyType string) ([]model.Property, error) {
	return r.find(ctx, bson.M{"type": propertyType})
}

func (r *MongoPropertyRepository) GetByMaxPrice(ctx context.Context, price float64) ([]model.Property, error) {
	return r.find(ctx, bson.M{"price": bson.M{"$lte": price}})
}

func (r *MongoPropertyRepository) GetByMinBedrooms(ctx context.Context, bedrooms int) ([]model.Property, error) {
	return r.find(ctx, bson.M{"bedrooms": bson.M{"$gte": bedrooms}})
}

func (r *MongoPropertyRepository) GetByMinBathrooms(ctx context.Context, bathrooms int) ([]model.Property, error) {
	return r.find(ctx, bson.M{"bathrooms": bson.M{"$gte": bathrooms}})
}

func (r *MongoPropertyRepository) GetByMinParkings(ctx context.Context, parkings int) ([]model.Property, error) {
	return r.find(ctx, bson.M{"parkings": bson.M{"$gte": parkings}})
}

func (r *MongoPropertyRepository) GetByMinSize(ctx context.Context, size int) ([]model.Property, error) {
	return r.find(ctx, bson.M{"size": bson.M{"$gte": size}})
}

func (r *MongoPropertyRepository) GetByMaxYearBuilt(ctx context.Context, yearBuilt int) ([]model.Property, error) {
	return r.find(ctx, bson.M{"yearBuilt": bson.M{"$lte": yearBuilt}})
}

func (r *MongoPropertyRepository) GetByMaxTax(ctx context.Context, tax float64) ([]model.Property, error) {
	return r.find(ctx, bson.M{"tax": bson.M{"$lte": tax}})
}

func (r *MongoPropertyRepository) GetByStatus(ctx context.Context, status string) ([]model.Property, error) {
	return r.find(ctx, bson.M{"status": status})
}

func (r *MongoPropertyRepository) GetByAgent(ctx context.Context, registrationNumber string) ([]model.Property, error) {
	return r.find(ctx, bson.M{"agentRegistrationNumber": registrationNumber})
}

func (r *MongoPropertyRepository) Create(ctx context.Context, property *model.Property) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	_, err := r.coll.InsertOne(ctx, property)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *MongoPropertyRepository) Update(ctx context.Context, property *model.Property) error {
	defer prometheus.TrackDBOperation("replace")(time.Now())

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": property.MLS}, property)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPropertyRepository) Delete(ctx context.Context, mls string) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": mls})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
