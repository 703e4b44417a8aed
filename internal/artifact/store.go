package artifact

import (
	"errors"
	"fmt"
	"strings"

	"depression-api/internal/domain"
	"depression-api/internal/features"
	"depression-api/internal/model"
)

// ErrConfiguration marca fallas de arranque: el proceso no debe servir trafico.
var ErrConfiguration = errors.New("configuration fault")

// Store agrupa el clasificador y los encoders cargados al inicio. Es inmutable.
type Store struct {
	classifier     model.Classifier
	encoders       *features.EncoderTable
	ignoredColumns []string
}

// Info resume los artefactos para /healthz.
type Info struct {
	Kind            string   `json:"kind"`
	NumFeatures     int      `json:"n_features"`
	EncodedColumns  []string       `json:"encoded_columns"`
	CategoryCounts  map[string]int `json:"category_counts"`
	IgnoredEncoders []string       `json:"ignored_encoders,omitempty"`
}

// Load lee ambos artefactos desde disco y valida que sean compatibles con FeatureOrder.
func Load(modelPath, encodersPath string) (*Store, error) {
	classifier, err := model.LoadClassifier(modelPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	encoders, ignored, err := features.LoadEncoderTable(encodersPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	store, err := New(classifier, encoders)
	if err != nil {
		return nil, err
	}
	store.ignoredColumns = ignored
	return store, nil
}

// New construye un Store a partir de artefactos ya cargados.
func New(classifier model.Classifier, encoders *features.EncoderTable) (*Store, error) {
	if classifier == nil {
		return nil, fmt.Errorf("%w: classifier is nil", ErrConfiguration)
	}
	if encoders == nil {
		return nil, fmt.Errorf("%w: encoder table is nil", ErrConfiguration)
	}
	if classifier.NumFeatures() != domain.NumFeatures {
		return nil, fmt.Errorf("%w: model expects %d features, record has %d",
			ErrConfiguration, classifier.NumFeatures(), domain.NumFeatures)
	}
	if missing := encoders.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, c := range missing {
			names[i] = c.Header()
		}
		return nil, fmt.Errorf("%w: no encoder for %s", ErrConfiguration, strings.Join(names, ", "))
	}
	return &Store{classifier: classifier, encoders: encoders}, nil
}

func (s *Store) Classifier() model.Classifier {
	return s.classifier
}

func (s *Store) Encoders() *features.EncoderTable {
	return s.encoders
}

// IgnoredEncoders lista claves del artefacto que no son columnas del modelo.
func (s *Store) IgnoredEncoders() []string {
	return append([]string(nil), s.ignoredColumns...)
}

func (s *Store) Describe() Info {
	cols := s.encoders.Columns()
	names := make([]string, len(cols))
	counts := make(map[string]int, len(cols))
	for i, c := range cols {
		names[i] = c.Header()
		if enc, ok := s.encoders.Lookup(c); ok {
			counts[c.Header()] = len(enc.Classes())
		}
	}
	return Info{
		Kind:            s.classifier.Kind(),
		NumFeatures:     s.classifier.NumFeatures(),
		EncodedColumns:  names,
		CategoryCounts:  counts,
		IgnoredEncoders: s.IgnoredEncoders(),
	}
}
