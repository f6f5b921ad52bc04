package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	bookingQueries "github.com/felixgeelhaar/recruita/internal/booking/application/queries"
	"github.com/felixgeelhaar/recruita/internal/interviews/application/commands"
	"github.com/felixgeelhaar/recruita/internal/interviews/application/queries"
	"github.com/felixgeelhaar/recruita/internal/interviews/domain"
	sharedDomain "github.com/felixgeelhaar/recruita/internal/shared/domain"
)

// InterviewHandler handles interview API requests.
type InterviewHandler struct {
	schedule   *commands.ScheduleInterviewHandler
	reschedule *commands.RescheduleInterviewHandler
	cancel     *commands.CancelInterviewHandler
	complete   *commands.CompleteInterviewHandler
	noShow     *commands.RecordNoShowHandler
	feedback   *commands.AddFeedbackHandler
	get        *queries.GetInterviewHandler
	bookings   *bookingQueries.ListBookingsForInterviewHandler
	defaults   Identity
	logger     *slog.Logger
}

// Identity is used when a request names no organization or actor.
type Identity struct {
	OrganizationID uuid.UUID
	ActorID        uuid.UUID
}

// InterviewHandlerConfig holds dependencies for the interview handler.
type InterviewHandlerConfig struct {
	Schedule   *commands.ScheduleInterviewHandler
	Reschedule *commands.RescheduleInterviewHandler
	Cancel     *commands.CancelInterviewHandler
	Complete   *commands.CompleteInterviewHandler
	NoShow     *commands.RecordNoShowHandler
	Feedback   *commands.AddFeedbackHandler
	Get        *queries.GetInterviewHandler
	Bookings   *bookingQueries.ListBookingsForInterviewHandler
	Defaults   Identity
	Logger     *slog.Logger
}

// NewInterviewHandler creates a new interview handler.
func NewInterviewHandler(cfg InterviewHandlerConfig) *InterviewHandler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &InterviewHandler{
		schedule:   cfg.Schedule,
		reschedule: cfg.Reschedule,
		cancel:     cfg.Cancel,
		complete:   cfg.Complete,
		noShow:     cfg.NoShow,
		feedback:   cfg.Feedback,
		get:        cfg.Get,
		bookings:   cfg.Bookings,
		defaults:   cfg.Defaults,
		logger:     cfg.Logger,
	}
}

// bookingFailureResponse describes one resource that could not be booked.
type bookingFailureResponse struct {
	ResourceKind string    `json:"resource_kind"`
	ResourceID   uuid.UUID `json:"resource_id"`
	Code         string    `json:"code"`
	Message      string    `json:"message"`
}

// bookingResponse is the body of schedule and reschedule responses.
type bookingResponse struct {
	Interview      queries.InterviewDTO     `json:"interview"`
	BookingOutcome string                   `json:"booking_outcome"`
	Failures       []bookingFailureResponse `json:"failures"`
}

func newBookingResponse(interview *domain.Interview, outcome commands.BookingOutcome, failures []commands.BookingFailure) (int, bookingResponse) {
	resp := bookingResponse{
		Interview:      queries.ToInterviewDTO(interview),
		BookingOutcome: string(outcome),
		Failures:       make([]bookingFailureResponse, 0, len(failures)),
	}
	for _, f := range failures {
		code := "internal_error"
		if kind, ok := sharedDomain.KindOf(f.Err); ok {
			code = string(kind)
		}
		resp.Failures = append(resp.Failures, bookingFailureResponse{
			ResourceKind: string(f.Kind),
			ResourceID:   f.ResourceID,
			Code:         code,
			Message:      f.Err.Error(),
		})
	}
	if len(failures) > 0 {
		return http.StatusMultiStatus, resp
	}
	return http.StatusOK, resp
}

// Schedule handles POST /api/v1/interviews
func (h *InterviewHandler) Schedule(c *gin.Context) {
	var cmd commands.ScheduleInterviewCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if cmd.OrganizationID == uuid.Nil {
		cmd.OrganizationID = h.organization(c)
	}
	if cmd.ActorID == uuid.Nil {
		cmd.ActorID = h.actor(c)
	}

	result, err := h.schedule.Handle(c.Request.Context(), cmd)
	if err != nil {
		writeError(c, err)
		return
	}

	status, resp := newBookingResponse(result.Interview, result.Outcome, result.Failures)
	if status == http.StatusOK {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

// Reschedule handles POST /api/v1/interviews/:id/reschedule
func (h *InterviewHandler) Reschedule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var cmd commands.RescheduleInterviewCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	cmd.InterviewID = id
	if cmd.ActorID == uuid.Nil {
		cmd.ActorID = h.actor(c)
	}

	result, err := h.reschedule.Handle(c.Request.Context(), cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(newBookingResponse(result.Interview, result.Outcome, result.Failures))
}

// Cancel handles POST /api/v1/interviews/:id/cancel
func (h *InterviewHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var cmd commands.CancelInterviewCommand
	if !bindOptional(c, &cmd) {
		return
	}
	cmd.InterviewID = id
	if cmd.ActorID == uuid.Nil {
		cmd.ActorID = h.actor(c)
	}

	interview, err := h.cancel.Handle(c.Request.Context(), cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, queries.ToInterviewDTO(interview))
}

// Complete handles POST /api/v1/interviews/:id/complete
func (h *InterviewHandler) Complete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var cmd commands.CompleteInterviewCommand
	if !bindOptional(c, &cmd) {
		return
	}
	cmd.InterviewID = id
	if cmd.ActorID == uuid.Nil {
		cmd.ActorID = h.actor(c)
	}

	interview, err := h.complete.Handle(c.Request.Context(), cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, queries.ToInterviewDTO(interview))
}

// NoShow handles POST /api/v1/interviews/:id/no-show
func (h *InterviewHandler) NoShow(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	interview, err := h.noShow.Handle(c.Request.Context(), commands.RecordNoShowCommand{
		InterviewID: id,
		ActorID:     h.actor(c),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, queries.ToInterviewDTO(interview))
}

// Feedback handles POST /api/v1/interviews/:id/feedback
func (h *InterviewHandler) Feedback(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var cmd commands.AddFeedbackCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	cmd.InterviewID = id

	result, err := h.feedback.Handle(c.Request.Context(), cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"interview": queries.ToInterviewDTO(result.Interview),
		"completed": result.Completed,
	})
}

// Get handles GET /api/v1/interviews/:id
func (h *InterviewHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	dto, err := h.get.Handle(c.Request.Context(), queries.GetInterviewQuery{InterviewID: id})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// Bookings handles GET /api/v1/interviews/:id/bookings
func (h *InterviewHandler) Bookings(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	bookings, err := h.bookings.Handle(c.Request.Context(), bookingQueries.ListBookingsForInterviewQuery{InterviewID: id})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *InterviewHandler) actor(c *gin.Context) uuid.UUID {
	return headerID(c, headerActorID, h.defaults.ActorID)
}

func (h *InterviewHandler) organization(c *gin.Context) uuid.UUID {
	return headerID(c, headerOrganizationID, h.defaults.OrganizationID)
}

func headerID(c *gin.Context, header string, fallback uuid.UUID) uuid.UUID {
	if id, err := uuid.Parse(c.GetHeader(header)); err == nil {
		return id
	}
	return fallback
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid interview id")
		return uuid.Nil, false
	}
	return id, true
}

// bindOptional binds a JSON body when one was sent.
func bindOptional(c *gin.Context, v any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(v); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}
