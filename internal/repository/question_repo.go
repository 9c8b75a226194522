package repository

import (
	"context"
	"fmt"
	"strconv"

	"medeval/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QuestionRepo handles MongoDB operations for question items
type QuestionRepo interface {
	// Selection
	CountEligible(ctx context.Context) (int64, error)
	SampleEligible(ctx context.Context, size int) ([]*model.Question, error)

	// Lookup
	GetByID(ctx context.Context, id string) (*model.Question, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.Question, error)

	// Attempt counter writes. Both report whether a document matched.
	IncrementAttempts(ctx context.Context, id string) (bool, error)
	ReplaceAttempts(ctx context.Context, id string, prev model.AttemptCount, next int) (bool, error)

	// Management
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, skip, limit int64) ([]*model.Question, error)
	InsertMany(ctx context.Context, questions []*model.Question) ([]string, error)
}

type questionRepo struct {
	collection *mongo.Collection
}

// NewQuestionRepo creates a new question repository
func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{
		collection: db.Collection(questionsCollection),
	}
}

func (r *questionRepo) CountEligible(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, eligibleFilter())
	if err != nil {
		return 0, fmt.Errorf("count eligible questions: %w", err)
	}
	return n, nil
}

func (r *questionRepo) SampleEligible(ctx context.Context, size int) ([]*model.Question, error) {
	if size <= 0 {
		return []*model.Question{}, nil
	}

	cursor, err := r.collection.Aggregate(ctx, samplePipeline(size))
	if err != nil {
		return nil, fmt.Errorf("sample questions: %w", err)
	}
	defer cursor.Close(ctx)

	questions := []*model.Question{}
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, fmt.Errorf("decode sampled questions: %w", err)
	}
	return questions, nil
}

func (r *questionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	var question model.Question
	err := r.collection.FindOne(ctx, idFilter(id)).Decode(&question)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find question %s: %w", id, err)
	}
	return &question, nil
}

func (r *questionRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.Question, error) {
	if len(ids) == 0 {
		return []*model.Question{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": idValues(ids)}})
	if err != nil {
		return nil, fmt.Errorf("find questions: %w", err)
	}
	defer cursor.Close(ctx)

	var found []*model.Question
	if err := cursor.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	// Keep the caller's order
	byID := make(map[string]*model.Question, len(found))
	for _, q := range found {
		byID[q.ID] = q
	}
	questions := make([]*model.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			questions = append(questions, q)
		}
	}
	return questions, nil
}

func (r *questionRepo) IncrementAttempts(ctx context.Context, id string) (bool, error) {
	filter := bson.M{
		"$and": bson.A{
			idFilter(id),
			bson.M{"answeredTimes": bson.M{"$type": "number"}},
		},
	}
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"answeredTimes": 1}})
	if err != nil {
		return false, fmt.Errorf("increment attempts for %s: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}

func (r *questionRepo) ReplaceAttempts(ctx context.Context, id string, prev model.AttemptCount, next int) (bool, error) {
	filter := bson.M{
		"$and": bson.A{
			idFilter(id),
			countFilter(prev),
		},
	}
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"answeredTimes": model.NumericCount(next)}})
	if err != nil {
		return false, fmt.Errorf("replace attempts for %s: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}

func (r *questionRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

func (r *questionRepo) List(ctx context.Context, skip, limit int64) ([]*model.Question, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer cursor.Close(ctx)

	questions := []*model.Question{}
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return questions, nil
}

func (r *questionRepo) InsertMany(ctx context.Context, questions []*model.Question) ([]string, error) {
	if len(questions) == 0 {
		return nil, nil
	}

	docs := make([]interface{}, len(questions))
	for i, q := range questions {
		docs[i] = q
	}

	result, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("insert questions: %w", err)
	}

	ids := make([]string, 0, len(result.InsertedIDs))
	for i, raw := range result.InsertedIDs {
		id := stringID(raw)
		questions[i].ID = id
		ids = append(ids, id)
	}
	return ids, nil
}

// eligibleFilter matches questions served fewer than MaxAttempts times,
// whether the counter is numeric, legacy text, or not set yet.
func eligibleFilter() bson.M {
	return bson.M{
		"$or": bson.A{
			bson.M{"answeredTimes": bson.M{"$lt": model.MaxAttempts}},
			bson.M{"answeredTimes": bson.M{"$in": textCounts(model.MaxAttempts)}},
			bson.M{"answeredTimes": nil},
		},
	}
}

func samplePipeline(size int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: eligibleFilter()}},
		{{Key: "$sample", Value: bson.D{{Key: "size", Value: size}}}},
	}
}

// countFilter matches a counter that still holds prev, so a legacy
// value is only rewritten if nobody migrated it in between.
func countFilter(prev model.AttemptCount) bson.M {
	switch prev.Kind() {
	case model.CountText:
		return bson.M{"answeredTimes": prev.Text()}
	case model.CountMissing:
		return bson.M{"answeredTimes": nil}
	case model.CountNumeric:
		return bson.M{"answeredTimes": prev.Value()}
	default:
		return bson.M{"answeredTimes": bson.M{
			"$exists": true,
			"$not":    bson.M{"$type": bson.A{"number", "string", "null"}},
		}}
	}
}

func textCounts(below int) bson.A {
	values := make(bson.A, 0, below)
	for i := 0; i < below; i++ {
		values = append(values, strconv.Itoa(i))
	}
	return values
}

// idFilter matches an ObjectID or, for imported data, a plain string id
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{oid, id}}}
	}
	return bson.M{"_id": id}
}

func idValues(ids []string) bson.A {
	values := make(bson.A, 0, len(ids)*2)
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			values = append(values, oid)
		}
		values = append(values, id)
	}
	return values
}

func stringID(raw interface{}) string {
	switch v := raw.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
