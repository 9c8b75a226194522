package repository

import (
	"context"
	"fmt"

	"medeval/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SubmissionRepo handles MongoDB operations for rating submissions
type SubmissionRepo interface {
	Create(ctx context.Context, submission *model.Submission) (string, error)
	ListNewestFirst(ctx context.Context) ([]*model.Submission, error)
}

type submissionRepo struct {
	collection *mongo.Collection
}

// NewSubmissionRepo creates a new submission repository
func NewSubmissionRepo(db *mongo.Database) SubmissionRepo {
	return &submissionRepo{
		collection: db.Collection(submissionsCollection),
	}
}

func (r *submissionRepo) Create(ctx context.Context, submission *model.Submission) (string, error) {
	// The store assigns the id
	submission.ID = ""

	result, err := r.collection.InsertOne(ctx, submission)
	if err != nil {
		return "", fmt.Errorf("insert submission: %w", err)
	}

	id := stringID(result.InsertedID)
	submission.ID = id
	return id, nil
}

func (r *submissionRepo) ListNewestFirst(ctx context.Context) ([]*model.Submission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer cursor.Close(ctx)

	submissions := []*model.Submission{}
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, fmt.Errorf("decode submissions: %w", err)
	}
	return submissions, nil
}
