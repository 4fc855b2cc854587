package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/otpware/dispatch/internal/domain/contact"
	"github.com/otpware/dispatch/internal/domain/dispatch"
	"github.com/otpware/dispatch/internal/otp"
	"github.com/otpware/dispatch/internal/poller"
	"github.com/otpware/dispatch/internal/request"
	"github.com/otpware/dispatch/internal/response"
	"github.com/otpware/dispatch/internal/service"
)

// MessageHandler wires HTTP endpoints to the dispatcher
// and the background verification poller.
type MessageHandler struct {
	dispatchSvc service.DispatchService
	contactSvc  service.ContactService
	pollerSvc   poller.PollerService
}

// NewMessageHandler constructs a new MessageHandler with its dependencies.
func NewMessageHandler(
	dispatchSvc service.DispatchService,
	contactSvc service.ContactService,
	pollerSvc poller.PollerService,
) *MessageHandler {
	return &MessageHandler{
		dispatchSvc: dispatchSvc,
		contactSvc:  contactSvc,
		pollerSvc:   pollerSvc,
	}
}

// SendMessage godoc
// @Summary     Dispatch an SMS
// @Description Sends an SMS to the given contact. When the body is omitted a one-time passcode message is generated.
// @Tags        messages
// @Accept      json
// @Produce     json
// @Param       request body request.SendMessageRequest true "Contact id and optional message body"
// @Success     201 {object} response.DispatchRecordResponse
// @Failure     400 {object} map[string]string
// @Failure     404 {object} map[string]string
// @Failure     500 {object} map[string]string
// @Router      /messages [post]
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req request.SendMessageRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	contactID, err := uuid.Parse(req.ContactID)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	c, err := h.contactSvc.GetByID(r.Context(), contactID)
	if err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			response.RespondError(w, http.StatusNotFound, "contact not found")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	body := req.Body
	if strings.TrimSpace(body) == "" {
		body = otp.NewMessage()
	}

	rec, err := h.dispatchSvc.Send(r.Context(), c, body)
	if err != nil {
		if errors.Is(err, dispatch.ErrEmptyBody) {
			response.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		// The attempt was classified but could not be persisted.
		response.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, response.FromDomainRecord(rec))
}

// GetMessages godoc
// @Summary     List dispatch history
// @Description Returns every recorded send attempt, newest first.
// @Tags        messages
// @Produce     json
// @Success     200 {object} response.MessagesResponse
// @Failure     500 {object} map[string]string
// @Router      /messages [get]
func (h *MessageHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	records, err := h.dispatchSvc.History(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	payload := response.MessagesPayload{
		Items: response.FromDomainRecords(records),
		Total: len(records),
	}

	response.RespondJSON(w, http.StatusOK, payload)
}

// DeleteMessages godoc
// @Summary     Delete dispatch records
// @Description Removes the records with the given ids and returns the remaining history.
// @Tags        messages
// @Accept      json
// @Produce     json
// @Param       request body request.DeleteMessagesRequest true "Record ids to delete"
// @Success     200 {object} response.MessagesResponse
// @Failure     400 {object} map[string]string
// @Failure     500 {object} map[string]string
// @Router      /messages [delete]
func (h *MessageHandler) DeleteMessages(w http.ResponseWriter, r *http.Request) {
	var req request.DeleteMessagesRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid record id: "+raw)
			return
		}
		ids = append(ids, id)
	}

	remaining, err := h.dispatchSvc.Delete(r.Context(), ids)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	payload := response.MessagesPayload{
		Items: response.FromDomainRecords(remaining),
		Total: len(remaining),
	}

	response.RespondJSON(w, http.StatusOK, payload)
}

// ClearMessages godoc
// @Summary     Clear dispatch history
// @Description Removes every recorded send attempt.
// @Tags        messages
// @Produce     json
// @Success     200 {object} response.MessagesResponse
// @Failure     500 {object} map[string]string
// @Router      /messages/all [delete]
func (h *MessageHandler) ClearMessages(w http.ResponseWriter, r *http.Request) {
	if err := h.dispatchSvc.Clear(r.Context()); err != nil {
		response.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	payload := response.MessagesPayload{
		Items: []response.DispatchRecordDTO{},
		Total: 0,
	}

	response.RespondJSON(w, http.StatusOK, payload)
}

// StartStopPoller godoc
// @Summary     Control the verification poller
// @Description Starts or stops the background verified-number refresh based on the given action.
// @Tags        poller
// @Accept      json
// @Produce     json
// @Param       request body request.PollerRequest true "Poller action (start|stop)"
// @Success     200 {object} response.PollerControlResponse
// @Failure     400 {object} map[string]string
// @Router      /poller [post]
func (h *MessageHandler) StartStopPoller(w http.ResponseWriter, r *http.Request) {
	var req request.PollerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	switch req.Action {
	case "start":
		if err := h.pollerSvc.Start(); err != nil {
			response.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		payload := response.PollerControlPayload{
			Message: "poller started",
		}
		response.RespondJSON(w, http.StatusOK, payload)
		return

	case "stop":
		if err := h.pollerSvc.Stop(); err != nil {
			response.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}

		payload := response.PollerControlPayload{
			Message: "poller stopped",
		}
		response.RespondJSON(w, http.StatusOK, payload)
		return

	default:
		response.RespondError(w, http.StatusBadRequest, "action must be 'start' or 'stop'")
		return
	}
}
