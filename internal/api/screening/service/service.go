package screeningService

import (
	"DermAssist/internal/api/screening"
	screeningRepository "DermAssist/internal/api/screening/repository"
	"DermAssist/internal/entity"
	"DermAssist/pkg/classifier"
	"DermAssist/pkg/storage"
	"DermAssist/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IScreeningService interface {
	Predict(ctx context.Context, upload screening.ScanUpload, user *entity.UserLoginData) (screening.PredictResponse, error)
	GetUserScans(ctx context.Context, userID string) ([]screening.ScanHistoryItem, error)
}

type screeningService struct {
	log         *logrus.Logger
	repo        screeningRepository.Repository
	model       classifier.IClassifier
	uploadStore storage.ItfStorage
	utils       utils.IUtils
}

func New(
	log *logrus.Logger,
	repo screeningRepository.Repository,
	model classifier.IClassifier,
	uploadStore storage.ItfStorage,
	utils utils.IUtils,
) IScreeningService {
	return &screeningService{
		log:         log,
		repo:        repo,
		model:       model,
		uploadStore: uploadStore,
		utils:       utils,
	}
}
