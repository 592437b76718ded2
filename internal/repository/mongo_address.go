package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"propertyhub-api/internal/model"
	"propertyhub-api/prometheus"
)

// MongoAddressRepository implements AddressRepository over the property
// collection; addresses only exist embedded in property records.
type MongoAddressRepository struct {
	coll *mongo.Collection
}

func NewMongoAddressRepository(propertyColl *mongo.Collection) *MongoAddressRepository {
	return &MongoAddressRepository{coll: propertyColl}
}

// exactFold builds a case-insensitive exact-match predicate.
func exactFold(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}

func (r *MongoAddressRepository) findProperties(ctx context.Context, filter bson.M) ([]model.Property, error) {
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

func (r *MongoAddressRepository) GetAll(ctx context.Context) ([]model.Address, error) {
	properties, err := r.findProperties(ctx, bson.M{"address": bson.M{"$ne": nil}})
	if err != nil {
		return nil, err
	}
	addresses := make([]model.Address, 0, len(properties))
	for _, p := range properties {
		if p.Address != nil {
			addresses = append(addresses, *p.Address)
		}
	}
	return addresses, nil
}

func (r *MongoAddressRepository) GetAddressesByCity(ctx context.Context, city string) ([]model.Address, error) {
	properties, err := r.GetPropertiesByCity(ctx, city)
	if err != nil {
		return nil, err
	}
	addresses := make([]model.Address, 0, len(properties))
	for _, p := range properties {
		if p.Address != nil {
			addresses = append(addresses, *p.Address)
		}
	}
	return addresses, nil
}

func (r *MongoAddressRepository) GetPropertiesByCity(ctx context.Context, city string) ([]model.Property, error) {
	return r.findProperties(ctx, bson.M{"address.city": exactFold(city)})
}

func (r *MongoAddressRepository) GetPropertiesByStreet(ctx context.Context, streetNumber, streetName string) ([]model.Property, error) {
	return r.findProperties(ctx, bson.M{
		"address.streetNumber": exactFold(streetNumber),
		"address.streetName":   exactFold(streetName),
	})
}

func (r *MongoAddressRepository) GetPropertiesByPostalCode(ctx context.Context, postalCode string) ([]model.Property, error) {
	return r.findProperties(ctx, bson.M{"address.postalCode": exactFold(postalCode)})
}

func (r *MongoAddressRepository) loadProperty(ctx context.Context, mls string) (*model.Property, error) {
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

func (r *MongoAddressRepository) setAddress(ctx context.Context, mls string, address *model.Address) error {
	defer prometheus.TrackDBOperation("update")(time.Now())

	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": mls}, bson.M{"$set": bson.M{
		"address":    address,
		"lastUpdate": time.Now().UTC(),
	}})
	return err
}

func (r *MongoAddressRepository) Add(ctx context.Context, mls string, address model.Address) error {
	property, err := r.loadProperty(ctx, mls)
	if err != nil {
		return err
	}
	if property.Address != nil {
		return ErrAlreadyExists
	}
	return r.setAddress(ctx, mls, &address)
}

func (r *MongoAddressRepository) Update(ctx context.Context, mls string, address model.Address) error {
	property, err := r.loadProperty(ctx, mls)
	if err != nil {
		return err
	}
	if property.Address == nil {
		return ErrNotFound
	}
	return r.setAddress(ctx, mls, &address)
}

func (r *MongoAddressRepository) Delete(ctx context.Context, mls string) error {
	// Idempotent: nulling an already-null address still succeeds.
	if _, err := r.loadProperty(ctx, mls); err != nil {
		return err
	}
	return r.setAddress(ctx, mls, nil)
}
