package routes

import (
	"net/http"

	_ "github.com/otpware/dispatch/internal/docs" // swagger docs
	"github.com/otpware/dispatch/internal/response"
	swaggerHandler "github.com/swaggo/http-swagger"
)

type AppDeps struct {
	Home    HomeHandler
	Message MessageHandler
	Contact ContactHandler
}

type HomeHandler interface {
	Index(w http.ResponseWriter, r *http.Request)
	Health(w http.ResponseWriter, r *http.Request)
}

type MessageHandler interface {
	SendMessage(w http.ResponseWriter, r *http.Request)
	GetMessages(w http.ResponseWriter, r *http.Request)
	DeleteMessages(w http.ResponseWriter, r *http.Request)
	ClearMessages(w http.ResponseWriter, r *http.Request)
	StartStopPoller(w http.ResponseWriter, r *http.Request)
}

type ContactHandler interface {
	GetContacts(w http.ResponseWriter, r *http.Request)
	GetContact(w http.ResponseWriter, r *http.Request)
}

func Register(mux *http.ServeMux, d AppDeps) {
	mux.HandleFunc("GET /{$}", d.Home.Index)
	mux.HandleFunc("GET /health", d.Home.Health)

	mux.HandleFunc("GET /contacts", d.Contact.GetContacts)
	mux.HandleFunc("GET /contacts/{id}", d.Contact.GetContact)

	mux.HandleFunc("POST /messages", d.Message.SendMessage)
	mux.HandleFunc("GET /messages", d.Message.GetMessages)
	mux.HandleFunc("DELETE /messages", d.Message.DeleteMessages)
	mux.HandleFunc("DELETE /messages/all", d.Message.ClearMessages)

	mux.HandleFunc("POST /poller", d.Message.StartStopPoller)

	//Swagger
	mux.HandleFunc("GET /swagger/", swaggerHandler.WrapHandler)

	// Fallback handler for undefined routes (404)
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.RespondError(w, http.StatusNotFound, "route not found")
	}))
}
