package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/otpware/dispatch/internal/domain/contact"
	"github.com/otpware/dispatch/internal/response"
	"github.com/otpware/dispatch/internal/service"
)

// ContactHandler serves the read-only contact browsing endpoints.
type ContactHandler struct {
	contactSvc service.ContactService
}

// NewContactHandler constructs a new ContactHandler.
func NewContactHandler(contactSvc service.ContactService) *ContactHandler {
	return &ContactHandler{contactSvc: contactSvc}
}

// GetContacts godoc
// @Summary     List contacts
// @Description Returns the full contact list for browsing.
// @Tags        contacts
// @Produce     json
// @Success     200 {object} response.ContactsResponse
// @Failure     500 {object} map[string]string
// @Router      /contacts [get]
func (h *ContactHandler) GetContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contactSvc.GetAll(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	payload := response.ContactsPayload{
		Items: response.FromDomainContacts(contacts),
		Total: len(contacts),
	}

	response.RespondJSON(w, http.StatusOK, payload)
}

// GetContact godoc
// @Summary     Get one contact
// @Description Returns the contact with the given id.
// @Tags        contacts
// @Produce     json
// @Param       id path string true "Contact id"
// @Success     200 {object} response.ContactResponse
// @Failure     400 {object} map[string]string
// @Failure     404 {object} map[string]string
// @Router      /contacts/{id} [get]
func (h *ContactHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	c, err := h.contactSvc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, contact.ErrNotFound) {
			response.RespondError(w, http.StatusNotFound, "contact not found")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	dto := response.FromDomainContacts([]*contact.Contact{c})[0]
	response.RespondJSON(w, http.StatusOK, dto)
}
