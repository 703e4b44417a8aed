package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"depression-api/internal/artifact"
	"depression-api/internal/domain"
	"depression-api/internal/features"
	"depression-api/internal/model"
	"depression-api/internal/repository"
)

var ErrPredictionServiceNotConfigured = errors.New("prediction service not configured")

// ShapeError indica que el vector no tiene el ancho que espera el clasificador.
type ShapeError struct {
	Got  int
	Want int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("feature vector has %d values, classifier expects %d", e.Got, e.Want)
}

// UnknownClassError indica un indice de clase sin etiqueta.
type UnknownClassError struct {
	Class int
}

func (e *UnknownClassError) Error() string {
	return fmt.Sprintf("classifier returned unknown class %d", e.Class)
}

// PredictLabel corre una prediccion de una sola muestra y traduce la clase a Label.
func PredictLabel(vector features.Vector, classifier model.Classifier) (domain.Label, error) {
	_, label, err := predictClass(vector, classifier)
	return label, err
}

func predictClass(vector features.Vector, classifier model.Classifier) (int, domain.Label, error) {
	if classifier == nil {
		return 0, "", ErrPredictionServiceNotConfigured
	}
	if len(vector) != classifier.NumFeatures() {
		return 0, "", &ShapeError{Got: len(vector), Want: classifier.NumFeatures()}
	}
	class, err := classifier.Predict(vector)
	if err != nil {
		return 0, "", fmt.Errorf("predict: %w", err)
	}
	label, ok := domain.LabelForClass(class)
	if !ok {
		return class, "", &UnknownClassError{Class: class}
	}
	return class, label, nil
}

// Prediction es el resultado de PredictionService.Predict.
type Prediction struct {
	ID    string
	Label domain.Label
	Class int
}

// PredictionService orquesta encode -> predict -> auditoria.
type PredictionService struct {
	logger *zap.Logger
	store  *artifact.Store
	audit  repository.PredictionRepository
	now    func() time.Time
}

func NewPredictionService(logger *zap.Logger, store *artifact.Store, audit repository.PredictionRepository) *PredictionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if audit == nil {
		audit = repository.NoopPredictionRepository{}
	}
	return &PredictionService{
		logger: logger,
		store:  store,
		audit:  audit,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Predict codifica y clasifica el registro tal como llega. La escritura de auditoria
// no cambia el resultado: si falla solo se loguea.
func (s *PredictionService) Predict(ctx context.Context, record domain.InputRecord) (Prediction, error) {
	if s == nil || s.store == nil {
		return Prediction{}, ErrPredictionServiceNotConfigured
	}

	vector, err := features.Encode(record, s.store.Encoders())
	if err != nil {
		return Prediction{}, err
	}

	class, label, err := predictClass(vector, s.store.Classifier())
	if err != nil {
		return Prediction{}, err
	}

	pred := Prediction{ID: uuid.NewString(), Label: label, Class: class}
	s.logProbability(pred.ID, vector)
	entry := domain.PredictionRecord{
		ID:        pred.ID,
		Input:     record,
		Class:     class,
		Label:     label,
		CreatedAt: s.now(),
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		s.logger.Warn("prediction audit failed", zap.String("prediction_id", pred.ID), zap.Error(err))
	}
	return pred, nil
}

func (s *PredictionService) logProbability(predictionID string, vector features.Vector) {
	est, ok := s.store.Classifier().(model.ProbabilityEstimator)
	if !ok || !s.logger.Core().Enabled(zap.DebugLevel) {
		return
	}
	p, err := est.Probability(vector)
	if err != nil {
		return
	}
	s.logger.Debug("positive class probability",
		zap.String("prediction_id", predictionID),
		zap.Float64("probability", p),
	)
}

// Model describe los artefactos cargados.
func (s *PredictionService) Model() artifact.Info {
	if s == nil || s.store == nil {
		return artifact.Info{}
	}
	return s.store.Describe()
}
