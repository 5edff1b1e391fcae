package transformerror

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/Jagbo/zenrent-sub000/internal/logging"
	"github.com/Jagbo/zenrent-sub000/internal/models"
)

// ErrorStore persists transformation errors for audit and duplicate
// detection across restarts. Implementations must be safe for concurrent use.
type ErrorStore interface {
	Save(record *TransformationError) error
}

// DefaultDuplicateWindow is how long an identical error from the same user
// is considered a repeat rather than a new incident.
const DefaultDuplicateWindow = 30 * time.Minute

// Handler creates, classifies and records transformation errors. The
// duplicate window is tracked in memory with an expiring cache, so repeats
// within the window are flagged without a store round-trip.
type Handler struct {
	store  ErrorStore
	logger logging.Logger
	recent *gocache.Cache
	window time.Duration
}

// NewHandler builds a Handler. store may be nil when persistence is not
// configured; dedupe still works in memory. A non-positive window falls back
// to DefaultDuplicateWindow.
func NewHandler(store ErrorStore, logger logging.Logger, window time.Duration) *Handler {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	if window <= 0 {
		window = DefaultDuplicateWindow
	}
	return &Handler{
		store:  store,
		logger: logger,
		recent: gocache.New(window, window),
		window: window,
	}
}

// generateRequestID returns a unique tracking ID for an error.
func generateRequestID() string {
	return "transform-" + uuid.NewString()
}

// CreateTransformationError classifies an arbitrary error and wraps it with
// user messaging, category, recovery actions and a tracking ID.
func (h *Handler) CreateTransformationError(
	err error,
	payloadType models.PayloadType,
	userID string,
	details map[string]interface{},
) *TransformationError {
	errType := Classify(err)

	message := ""
	if err != nil {
		message = err.Error()
	}

	allDetails := map[string]interface{}{
		"transformationType": string(payloadType),
	}
	for k, v := range details {
		allDetails[k] = v
	}

	return &TransformationError{
		Type:            errType,
		Message:         message,
		UserMessage:     UserMessage(errType),
		Category:        CategoryOf(errType),
		RecoveryActions: RecoveryActionsFor(errType),
		Timestamp:       time.Now().UTC(),
		Details:         allDetails,
		UserID:          userID,
		RequestID:       generateRequestID(),
	}
}

// CreateErrorFromValidationResult wraps a failed validation as a
// transformation error. The result's issues are carried in the details.
func (h *Handler) CreateErrorFromValidationResult(
	result models.ValidationResult,
	payloadType models.PayloadType,
	userID string,
) *TransformationError {
	return &TransformationError{
		Type:            ValidationError,
		Message:         fmt.Sprintf("Validation failed with %d errors", len(result.Errors)),
		UserMessage:     UserMessage(ValidationError),
		Category:        CategoryValidation,
		RecoveryActions: RecoveryActionsFor(ValidationError),
		Timestamp:       time.Now().UTC(),
		Details:         validationDetails(result, payloadType),
		UserID:          userID,
		RequestID:       generateRequestID(),
	}
}

// LogError records an error to the log and, when a store is configured, to
// the audit store. Store failures are logged but never propagated; the
// tracking ID is always returned so callers can reference the incident.
func (h *Handler) LogError(err *TransformationError) string {
	h.logger.Error("transformation error",
		logging.Field{Key: logging.FieldErrorType, Value: string(err.Type)},
		logging.Field{Key: "category", Value: string(err.Category)},
		logging.Field{Key: logging.FieldRequestID, Value: err.RequestID},
		logging.Field{Key: logging.FieldUserID, Value: err.UserID},
		logging.Field{Key: logging.FieldError, Value: err.Message})

	h.recent.SetDefault(dedupeKey(err.UserID, err.Type), err.RequestID)

	if h.store != nil {
		if saveErr := h.store.Save(err); saveErr != nil {
			h.logger.WithError(saveErr).Warn("failed to persist transformation error",
				logging.Field{Key: logging.FieldRequestID, Value: err.RequestID})
		}
	}

	return err.RequestID
}

// IsDuplicateError reports whether the same user hit the same error type
// within the duplicate window.
func (h *Handler) IsDuplicateError(err *TransformationError, userID string) bool {
	_, found := h.recent.Get(dedupeKey(userID, err.Type))
	return found
}

func dedupeKey(userID string, t ErrorType) string {
	return userID + "|" + string(t)
}
