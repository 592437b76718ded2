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

// MongoFeatureRepository implements FeatureRepository over the property
// collection, mirroring the address repository's embedded-singleton handling.
type MongoFeatureRepository struct {
	coll *mongo.Collection
}

func NewMongoFeatureRepository(propertyColl *mongo.Collection) *MongoFeatureRepository {
	return &MongoFeatureRepository{coll: propertyColl}
}

func (r *MongoFeatureRepository) findProperties(ctx context.Context, filter bson.M) ([]model.Property, error) {
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

func (r *MongoFeatureRepository) GetAll(ctx context.Context) ([]model.Feature, error) {
	properties, err := r.findProperties(ctx, bson.M{"feature": bson.M{"$ne": nil}})
	if err != nil {
		return nil, err
	}
	features := make([]model.Feature, 0, len(properties))
	for _, p := range properties {
		if p.Feature != nil {
			features = append(features, *p.Feature)
		}
	}
	return features, nil
}

func (r *MongoFeatureRepository) GetPropertiesByMinWalkScore(ctx context.Context, score int) ([]model.Property, error) {
	return r.findProperties(ctx, bson.M{"feature.walkScore": bson.M{"$gte": score}})
}

func (r *MongoFeatureRepository) GetPropertiesByMinTransitScore(ctx context.Context, score int) ([]model.Property, error) {
	return r.findProperties(ctx, bson.M{"feature.transitScore": bson.M{"$gte": score}})
}

func (r *MongoFeatureRepository) GetPropertiesByMinBikeScore(ctx context.Context, score int) ([]model.Property, error) {
	return r.findProperties(ctx, bson.M{"feature.bikeScore": bson.M{"$gte": score}})
}

func (r *MongoFeatureRepository) GetPropertiesByMinEducationScore(ctx context.Context, score int) ([]model.Property, error) {
	return r.findProperties(ctx, bson.M{"feature.educationScore": bson.M{"$gte": score}})
}

func (r *MongoFeatureRepository) loadProperty(ctx context.Context, mls string) (*model.Property, error) {
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

func (r *MongoFeatureRepository) setFeature(ctx context.Context, mls string, feature *model.Feature) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": mls}, bson.M{"$set": bson.M{
		"feature":    feature,
		"lastUpdate": time.Now().UTC(),
	}})
	return err
}

func (r *MongoFeatureRepository) Add(ctx context.Context, mls string, feature model.Feature) error {
	property, err := r.loadProperty(ctx, mls)
	if err != nil {
		return err
	}
	if property.Feature != nil {
		return ErrAlreadyExists
	}
	return r.setFeature(ctx, mls, &feature)
}

func (r *MongoFeatureRepository) Update(ctx context.Context, mls string, feature model.Feature) error {
	property, err := r.loadProperty(ctx, mls)
	if err != nil {
		return err
	}
	if property.Feature == nil {
		return ErrNotFound
	}
	return r.setFeature(ctx, mls, &feature)
}

func (r *MongoFeatureRepository) Delete(ctx context.Context, mls string) error {
	// Idempotent: nulling an already-null feature still succeeds.
	if _, err := r.loadProperty(ctx, mls); err != nil {
		return err
	}
	return r.setFeature(ctx, mls, nil)
}
