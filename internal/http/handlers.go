package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"depression-api/internal/domain"
	"depression-api/internal/features"
	"depression-api/internal/service"
)

// Handlers mantiene dependencias para los endpoints HTTP.
type Handlers struct {
	logger      *zap.Logger
	predictions *service.PredictionService
	options     *service.OptionsService
}

// NewHandlers crea una instancia de Handlers con las dependencias necesarias.
func NewHandlers(logger *zap.Logger, predictions *service.PredictionService, options *service.OptionsService) *Handlers {
	return &Handlers{
		logger:      logger,
		predictions: predictions,
		options:     options,
	}
}

// predictRequest es el body de POST /predict. Los enteros son punteros para que
// binding:"required" acepte 0 y rechace solo el campo ausente o null.
type predictRequest struct {
	Gender                       *string `json:"Gender"`
	Age                          *int    `json:"Age" binding:"required"`
	City                         *string `json:"City"`
	WorkingProfessionalOrStudent *string `json:"Working_Professional_or_Student"`
	Profession                   *string `json:"Profession"`
	WorkPressure                 *int    `json:"Work_Pressure" binding:"required"`
	JobSatisfaction              *int    `json:"Job_Satisfaction" binding:"required"`
	SleepDuration                *string `json:"Sleep_Duration"`
	DietaryHabits                *string `json:"Dietary_Habits"`
	Degree                       *string `json:"Degree"`
	HaveSuicidalThoughts         *string `json:"Have_Suicidal_Thoughts"`
	WorkHours                    *int    `json:"Work_Hours" binding:"required"`
	FinancialStress              *int    `json:"Financial_Stress" binding:"required"`
	FamilyHistory                *string `json:"Family_History"`
}

// toRecord solo reemplaza los punteros nil: un string vacio llega al encoder y falla
// como cualquier otra categoria desconocida.
func (r predictRequest) toRecord() domain.InputRecord {
	rec := domain.NewInputRecord()
	str := func(dst *string, s *string) {
		if s != nil {
			*dst = *s
		}
	}
	num := func(dst *int, n *int) {
		if n != nil {
			*dst = *n
		}
	}
	str(&rec.Gender, r.Gender)
	num(&rec.Age, r.Age)
	str(&rec.City, r.City)
	str(&rec.WorkingProfessionalOrStudent, r.WorkingProfessionalOrStudent)
	str(&rec.Profession, r.Profession)
	num(&rec.WorkPressure, r.WorkPressure)
	num(&rec.JobSatisfaction, r.JobSatisfaction)
	str(&rec.SleepDuration, r.SleepDuration)
	str(&rec.DietaryHabits, r.DietaryHabits)
	str(&rec.Degree, r.Degree)
	str(&rec.HaveSuicidalThoughts, r.HaveSuicidalThoughts)
	num(&rec.WorkHours, r.WorkHours)
	num(&rec.FinancialStress, r.FinancialStress)
	str(&rec.FamilyHistory, r.FamilyHistory)
	return rec
}

// Root maneja GET /. El mensaje se mantiene por compatibilidad con clientes existentes.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello, FastAPI!"})
}

// Health maneja GET /healthz.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "model": h.predictions.Model()})
}

// Options maneja GET /options.
func (h *Handlers) Options(c *gin.Context) {
	c.JSON(http.StatusOK, h.options.Options())
}

// Predict maneja POST /predict.
func (h *Handlers) Predict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid predict request", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": validationDetail(err)})
		return
	}

	pred, err := h.predictions.Predict(c.Request.Context(), req.toRecord())
	if err != nil {
		var encErr *features.EncodingError
		if errors.As(err, &encErr) {
			h.logger.Warn("encoding failed",
				zap.String("column", encErr.Column.Header()),
				zap.String("value", encErr.Value),
			)
			c.JSON(http.StatusBadRequest, gin.H{"detail": encErr.Error()})
			return
		}
		h.logger.Error("predict failed", zap.Error(err), zap.String("request_id", c.GetString("request_id")))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
		return
	}

	h.logger.Debug("prediction served",
		zap.String("prediction_id", pred.ID),
		zap.String("label", string(pred.Label)),
	)
	c.JSON(http.StatusOK, gin.H{"result": pred.Label})
}

// validationDetail arma un mensaje legible con los nombres JSON de los campos.
func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, jsonFieldName(fe.StructField()))
		}
		return "field required: " + strings.Join(fields, ", ")
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("invalid type for field %s: expected %s", typeErr.Field, typeErr.Type)
	}
	return "invalid request body: " + err.Error()
}

func jsonFieldName(structField string) string {
	f, ok := reflect.TypeOf(predictRequest{}).FieldByName(structField)
	if !ok {
		return structField
	}
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" {
		return structField
	}
	return name
}
