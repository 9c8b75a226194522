package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"medeval/internal/config"
	"medeval/internal/logging"
	"medeval/internal/model"
	"medeval/internal/repository"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to an optional YAML config file")
	file := flag.String("file", "questions.json", "JSON array of questions to import")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	f, err := os.Open(*file)
	if err != nil {
		logger.Fatal("open question file", zap.Error(err))
	}
	defer f.Close()

	questions, err := loadQuestions(f)
	if err != nil {
		logger.Fatal("read question file", zap.String("file", *file), zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := repository.Open(ctx, cfg.Mongo.URI, cfg.Mongo.Database, logger)
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}
	defer store.Close(context.Background())

	ids, err := repository.NewQuestionRepo(store.Database()).InsertMany(ctx, questions)
	if err != nil {
		logger.Fatal("insert questions", zap.Error(err))
	}
	logger.Info("Questions imported", zap.Int("count", len(ids)), zap.String("file", *file))
}

// loadQuestions decodes a JSON array of questions. Counters stored as
// text are accepted and written back as numbers; ids are left to the store.
func loadQuestions(r io.Reader) ([]*model.Question, error) {
	var questions []*model.Question
	if err := json.NewDecoder(r).Decode(&questions); err != nil {
		return nil, err
	}

	for i, q := range questions {
		if q == nil {
			return nil, fmt.Errorf("question %d is null", i)
		}
		if q.DoctorResponse1 == "" || q.DoctorResponse2 == "" {
			return nil, fmt.Errorf("question %d: both doctor responses are required", i)
		}
		q.ID = ""
		q.AnsweredTimes = model.NumericCount(q.AnsweredTimes.Value())
	}
	return questions, nil
}
