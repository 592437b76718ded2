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

// MongoAgentRepository implements AgentRepository on the agent collection.
// Deleting an agent never touches properties referencing it.
type MongoAgentRepository struct {
	coll *mongo.Collection
}

func NewMongoAgentRepository(coll *mongo.Collection) *MongoAgentRepository {
	return &MongoAgentRepository{coll: coll}
}

func (r *MongoAgentRepository) GetAll(ctx context.Context) ([]model.Agent, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var agents []model.Agent
	if err := cursor.All(ctx, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

func (r *MongoAgentRepository) GetByRegistrationNumber(ctx context.Context, registrationNumber string) (*model.Agent, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var agent model.Agent
	err := r.coll.FindOne(ctx, bson.M{"_id": registrationNumber}).Decode(&agent)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &agent, nil
}

func (r *MongoAgentRepository) Create(ctx context.Context, agent *model.Agent) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())

	_, err := r.coll.InsertOne(ctx, agent)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *MongoAgentRepository) Update(ctx context.Context, agent *model.Agent) error {
	defer prometheus.TrackDBOperation("replace")(time.Now())

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": agent.RegistrationNumber}, agent)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoAgentRepository) Delete(ctx context.Context, registrationNumber string) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": registrationNumber})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
