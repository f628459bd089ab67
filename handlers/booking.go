package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recoveryoffice/models"
	"recoveryoffice/services/booking"
	"recoveryoffice/services/catalog"
	"recoveryoffice/services/draft"
	"recoveryoffice/services/validation"
	"recoveryoffice/utils"
)

// BookingHandler exposes the wizard over HTTP. Each endpoint maps to one
// named mutator on the draft store, so every consumer observes the same
// aggregate whatever surface it attached from.
type BookingHandler struct {
	Drafts     draft.Store
	Catalog    *catalog.Cache
	Submission booking.SubmissionService
	Logger     *zap.Logger
}

// NewBookingHandler assembles the wizard handler.
func NewBookingHandler(drafts draft.Store, cat *catalog.Cache, submission booking.SubmissionService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{
		Drafts:     drafts,
		Catalog:    cat,
		Submission: submission,
		Logger:     logger,
	}
}

// CreateSession starts a new draft and primes it with the current catalog.
func (h *BookingHandler) CreateSession(c *gin.Context) {
	d, err := h.Drafts.Create(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create booking session", err.Error())
		return
	}

	entries, mode := h.Catalog.Load(c.Request.Context())
	if d, err = h.Drafts.SetAvailableServices(c.Request.Context(), d.SessionID, entries); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to store service catalog", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"draft":       d,
		"catalogMode": mode,
	})
}

// GetSession returns the current draft.
func (h *BookingHandler) GetSession(c *gin.Context) {
	d, err := h.Drafts.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.draftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d})
}

// SelectService records the step-1 choice. The service must come from the
// current catalog; unknown identifiers are rejected here rather than
// discovered at submit time.
func (h *BookingHandler) SelectService(c *gin.Context) {
	var input struct {
		ServiceID string `json:"serviceId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	entry, ok := h.Catalog.FindByID(input.ServiceID)
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "unknown service", input.ServiceID)
		return
	}

	d, err := h.Drafts.SetSelectedService(c.Request.Context(), c.Param("sessionID"), entry)
	if err != nil {
		h.draftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d, "catalogMode": h.Catalog.Mode()})
}

// SelectSchedule records the step-2 date and time slot.
func (h *BookingHandler) SelectSchedule(c *gin.Context) {
	var input struct {
		Date     string          `json:"date" binding:"required"`
		TimeSlot models.TimeSlot `json:"timeSlot" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if ferr := validation.ValidateField("date", input.Date, []validation.Rule{
		validation.DateParseable("Please choose a valid date"),
		validation.FutureDate("The chosen date has already passed"),
	}, nil); ferr != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": gin.H{ferr.Field: ferr}})
		return
	}

	sessionID := c.Param("sessionID")
	if _, err := h.Drafts.SetSelectedDate(c.Request.Context(), sessionID, input.Date); err != nil {
		h.draftError(c, err)
		return
	}
	d, err := h.Drafts.SetSelectedTimeSlot(c.Request.Context(), sessionID, input.TimeSlot)
	if err != nil {
		h.draftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d})
}

// SetClientInfo validates and records the step-3 details. Field errors come
// back as a map keyed by field, warnings included but non-blocking.
func (h *BookingHandler) SetClientInfo(c *gin.Context) {
	var info models.ClientInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	errs := validation.ValidateForm(validation.ClientInfoValues(info), validation.ClientInfoSchema(), nil)
	if validation.HasErrors(errs) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": nonNil(errs)})
		return
	}

	d, err := h.Drafts.SetClientInfo(c.Request.Context(), c.Param("sessionID"), info)
	if err != nil {
		h.draftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d, "warnings": nonNil(errs)})
}

// SetStep moves the wizard backward or forward explicitly.
func (h *BookingHandler) SetStep(c *gin.Context) {
	var input struct {
		Step int `json:"step" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	d, err := h.Drafts.SetCurrentStep(c.Request.Context(), c.Param("sessionID"), input.Step)
	if err != nil {
		var stepErr *draft.StepError
		if errors.As(err, &stepErr) {
			utils.JSONError(c, http.StatusConflict, "step not reachable", stepErr.Error())
			return
		}
		h.draftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d})
}

// Submit runs the two-phase submission for the accumulated draft.
func (h *BookingHandler) Submit(c *gin.Context) {
	result, err := h.Submission.Submit(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		var subErr *booking.SubmissionError
		if errors.As(err, &subErr) {
			c.JSON(submissionStatus(subErr.Kind), gin.H{"result": models.SubmissionResult{
				Success:      false,
				ClientID:     subErr.ClientID,
				ErrorKind:    string(subErr.Kind),
				ErrorMessage: subErr.Message,
			}})
			return
		}
		h.draftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// CancelSession resets the draft; any in-flight responses for the old
// generation are discarded by the store.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	d, err := h.Drafts.Reset(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.draftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d})
}

func (h *BookingHandler) draftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, draft.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "booking session not found or expired", "")
	case errors.Is(err, draft.ErrDraftLocked):
		utils.JSONError(c, http.StatusConflict, "a submission is in progress for this session", "")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "booking session error", err.Error())
	}
}

func submissionStatus(kind booking.FailureKind) int {
	switch kind {
	case booking.FailureValidation, booking.FailureInvalidIdentifier:
		return http.StatusUnprocessableEntity
	case booking.FailureNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

func nonNil(errs map[string]*validation.FieldError) map[string]*validation.FieldError {
	out := make(map[string]*validation.FieldError)
	for field, ferr := range errs {
		if ferr != nil {
			out[field] = ferr
		}
	}
	return out
}
