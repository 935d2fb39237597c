package handlers

import (
	"net/http"

	"ginsengcms/internal/domain/contact"
	"ginsengcms/internal/services/inbox"
	"ginsengcms/internal/store/repositories"
)

// SubmitContact is the public contact-form endpoint.
func SubmitContact(svc *inbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in inbox.SubmitInput
		if err := decode(r, &in); err != nil {
			respondError(w, err)
			return
		}
		m, err := svc.Submit(r.Context(), in)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusCreated, m)
	}
}

func GetContact(svc *inbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		m, err := svc.GetByID(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, m)
	}
}

func ListContacts(svc *inbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := repositories.ContactFilter{
			Status: contact.Status(queryStr(r, "status", "contacts")),
			Search: queryStr(r, "search"),
		}
		items, p, err := svc.List(r.Context(), f, pageFrom(r))
		if err != nil {
			respondError(w, err)
			return
		}
		respondList(w, items, p)
	}
}

// UpdateContactStatus moves a message through triage; the transition
// table rejects illegal moves with a 409.
func UpdateContactStatus(svc *inbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		var req statusRequest
		if err := decode(r, &req); err != nil {
			respondError(w, err)
			return
		}
		m, err := svc.UpdateStatus(r.Context(), id, contact.Status(req.Status))
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, m)
	}
}

func DeleteContact(svc *inbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			respondError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "message deleted")
	}
}
