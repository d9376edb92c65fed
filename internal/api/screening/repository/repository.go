package screeningRepository

import (
	"DermAssist/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var db sqlx.ExtContext
	var commitFunc, rollbackFunc func() error

	db = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		db = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Images:      &imageRepository{q: db, log: r.log},
		Predictions: &predictionRepository{q: db, log: r.log},
		Commit:      commitFunc,
		Rollback:    rollbackFunc,
	}, nil
}

type Client struct {
	Images interface {
		CreateImage(ctx context.Context, image entity.Image) error
	}

	Predictions interface {
		CreatePrediction(ctx context.Context, prediction entity.Prediction) error
		GetByUserID(ctx context.Context, userID string) ([]entity.Prediction, error)
		CountByUserID(ctx context.Context, userID string) (int, error)
	}

	Commit   func() error
	Rollback func() error
}

type imageRepository struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}

type predictionRepository struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}
