package handlers

import (
	"net/http"
	"time"

	"dreamhi/models"
	"dreamhi/services/audition"
	"dreamhi/services/authz"
	"dreamhi/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuditionHandler exposes the audition booking endpoints of an announcement.
type AuditionHandler struct {
	Service  audition.AuditionService
	Location *time.Location
}

func NewAuditionHandler(svc audition.AuditionService, loc *time.Location) *AuditionHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AuditionHandler{Service: svc, Location: loc}
}

// producerParam reads the producer id query parameter. pid is the historical
// name; producerId matches the JSON bodies.
func producerParam(c *gin.Context) string {
	if pid := c.Query("pid"); pid != "" {
		return pid
	}
	return c.Query("producerId")
}

// accessRequest builds the authorization context of the call. The producer id
// is only honored where the route allows a producer caller.
func accessRequest(c *gin.Context, withProducer bool) authz.AccessRequest {
	req := authz.AccessRequest{
		User:           authz.Principal{UserID: currentUserID(c)},
		AnnouncementID: c.Param("announcementId"),
		ProcessID:      c.Param("processId"),
	}
	if withProducer {
		req.ProducerID = producerParam(c)
	}
	return req
}

// FindBookPeriod handles GET /on/:processId/period
func (h *AuditionHandler) FindBookPeriod(c *gin.Context) {
	period, err := h.Service.FindBookPeriod(c.Request.Context(), accessRequest(c, true))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "book period", period)
}

// CorrectBookPeriod handles PATCH /on/:processId/period
func (h *AuditionHandler) CorrectBookPeriod(c *gin.Context) {
	var body models.CorrectPeriodRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		getLogger(c).Debug("Invalid period correction request", zap.Error(err))
		badRequest(c, "startDate, endDate (YYYY-MM-DD) and producerId are required")
		return
	}
	req := accessRequest(c, false)
	req.ProducerID = body.ProducerID

	period := models.BookPeriod{StartDate: body.StartDate, EndDate: body.EndDate}
	if err := h.Service.CorrectBookPeriod(c.Request.Context(), req, period); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "book period corrected", period)
}

// FindAllBook handles GET /on/:processId/schedules?date=
func (h *AuditionHandler) FindAllBook(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		badRequest(c, "date is required")
		return
	}
	req := accessRequest(c, true)
	view := models.ResolveView(req.User.UserID, req.ProducerID)

	slots, err := h.Service.FindAllBook(c.Request.Context(), req, date, view)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "schedules", slots)
}

// ReserveSlot handles POST /on/:processId/schedules
func (h *AuditionHandler) ReserveSlot(c *gin.Context) {
	var body models.ReserveSlotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		getLogger(c).Debug("Invalid reservation request", zap.Error(err))
		badRequest(c, "date (YYYY-MM-DD) and slotId are required")
		return
	}

	booking, err := h.Service.ReserveSlot(c.Request.Context(), accessRequest(c, false), body.Date, body.SlotID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "slot reserved", booking)
}

// FindMyBook handles GET /on/:processId/schedules/mine
func (h *AuditionHandler) FindMyBook(c *gin.Context) {
	booking, err := h.Service.FindMyBook(c.Request.Context(), accessRequest(c, false))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "my booking", booking)
}

// CancelBook handles DELETE /on/:processId/schedules/:bookingId
func (h *AuditionHandler) CancelBook(c *gin.Context) {
	bookingID := c.Param("bookingId")
	if err := h.Service.CancelBook(c.Request.Context(), accessRequest(c, false), bookingID); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusAccepted, "booking cancelled", gin.H{"bookingId": bookingID})
}

// FindFileURL handles GET /on/:processId/file
func (h *AuditionHandler) FindFileURL(c *gin.Context) {
	fileURL, err := h.Service.FindFileURL(c.Request.Context(), accessRequest(c, true))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "file url", gin.H{"fileUrl": fileURL})
}

// FindSessionID handles GET /on/:processId/session?now=YYYY-MM-DD HH:mm:ss
func (h *AuditionHandler) FindSessionID(c *gin.Context) {
	now, err := time.ParseInLocation(utils.SessionTimeLayout, c.Query("now"), h.Location)
	if err != nil {
		badRequest(c, "now must be formatted as YYYY-MM-DD HH:mm:ss")
		return
	}
	req := accessRequest(c, true)
	req.Now = now

	sessionID, err := h.Service.FindSessionID(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "session id", gin.H{"sessionId": sessionID})
}

// SaveSession handles POST /on/:processId
func (h *AuditionHandler) SaveSession(c *gin.Context) {
	var body models.SaveSessionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		getLogger(c).Debug("Invalid save session request", zap.Error(err))
		badRequest(c, "fileUrl (absolute url) and producerId are required")
		return
	}
	req := accessRequest(c, false)
	req.ProducerID = body.ProducerID

	session, err := h.Service.SaveSession(c.Request.Context(), req, body.FileURL)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusAccepted, "session saved", session)
}
