package handlers

import (
	"net/http"

	"dreamhi/services/audition"
	"dreamhi/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the envelope of every successful request.
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Status: status, Message: message, Data: data})
}

var statusByKind = map[audition.Kind]int{
	audition.KindNotFound:        http.StatusNotFound,
	audition.KindConflict:        http.StatusConflict,
	audition.KindInvalidArgument: http.StatusBadRequest,
	audition.KindUnauthorized:    http.StatusUnauthorized,
	audition.KindForbidden:       http.StatusForbidden,
	audition.KindInternal:        http.StatusInternalServerError,
}

// respondError writes the error envelope for a service error. Internal causes
// are logged and never sent to the client.
func respondError(c *gin.Context, err error) {
	kind := audition.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	message := audition.MessageOf(err)
	if kind == audition.KindInternal {
		getLogger(c).Error("Request failed", zap.Error(err))
		message = "internal server error"
	}
	utils.JSONError(c, status, string(kind), message)
}

func badRequest(c *gin.Context, message string) {
	utils.JSONError(c, http.StatusBadRequest, string(audition.KindInvalidArgument), message)
}

// currentUserID returns the id set by the auth middleware, empty when
// anonymous.
func currentUserID(c *gin.Context) string {
	return c.GetString(utils.ContextUserID)
}
