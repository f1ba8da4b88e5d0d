package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hackgods/healthcare-plus/internal/clinic"
	"github.com/hackgods/healthcare-plus/internal/session"
)

// sessionID is only called behind SessionMiddleware.
func sessionID(r *http.Request) uuid.UUID {
	id, _ := GetSessionID(r.Context())
	return id
}

func startSessionHandler(sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessions.Create(r.Context())
		setSession(w, s.ID)
		writeJSON(w, http.StatusCreated, SessionResponse{
			ID:        s.ID,
			CreatedAt: s.CreatedAt,
			LastSeen:  s.CreatedAt,
		})
	}
}

func describeSessionHandler(sessions *session.Manager, svc *clinic.Service, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := sessionID(r)

		appts, recs, err := svc.Summary(r.Context(), id)
		if err != nil {
			handleError(w, logger, err)
			return
		}

		s, err := sessions.Get(id)
		if err != nil {
			handleError(w, logger, err)
			return
		}
		lastSeen, err := sessions.LastSeen(id)
		if err != nil {
			handleError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, SessionResponse{
			ID:           s.ID,
			CreatedAt:    s.CreatedAt,
			LastSeen:     lastSeen,
			Appointments: appts,
			Records:      recs,
		})
	}
}

// endSessionHandler does not go through SessionMiddleware: ending an unknown
// session is a 404 rather than the start of a new one.
func endSessionHandler(sessions *session.Manager, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := sessionFromRequest(r)
		if !ok {
			writeError(w, http.StatusNotFound, "session_not_found", "no session id supplied")
			return
		}

		if err := sessions.End(r.Context(), id); err != nil {
			if errors.Is(err, session.ErrSessionNotFound) {
				clearSession(w)
			}
			handleError(w, logger, err)
			return
		}

		clearSession(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

func bookAppointmentHandler(svc *clinic.Service, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AppointmentRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		in, err := req.toInput()
		if err != nil {
			handleError(w, logger, err)
			return
		}

		appt, err := svc.BookAppointment(r.Context(), sessionID(r), in)
		if err != nil {
			handleError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusCreated, newAppointmentResponse(appt))
	}
}

func listAppointmentsHandler(svc *clinic.Service, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appts, err := svc.ListAppointments(r.Context(), sessionID(r))
		if err != nil {
			handleError(w, logger, err)
			return
		}

		out := make([]AppointmentResponse, 0, len(appts))
		for _, a := range appts {
			out = append(out, newAppointmentResponse(a))
		}
		writeJSON(w, http.StatusOK, ListResponse[AppointmentResponse]{Count: len(out), Items: out})
	}
}

func addPatientRecordHandler(svc *clinic.Service, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PatientRecordRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		in, err := req.toInput()
		if err != nil {
			handleError(w, logger, err)
			return
		}

		rec, err := svc.AddPatientRecord(r.Context(), sessionID(r), in)
		if err != nil {
			handleError(w, logger, err)
			return
		}

		writeJSON(w, http.StatusCreated, newPatientRecordResponse(rec))
	}
}

func searchPatientRecordsHandler(svc *clinic.Service, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := svc.SearchPatientRecords(r.Context(), sessionID(r), r.URL.Query().Get("q"))
		if err != nil {
			handleError(w, logger, err)
			return
		}

		out := make([]PatientRecordResponse, 0, len(recs))
		for _, rec := range recs {
			out = append(out, newPatientRecordResponse(rec))
		}
		writeJSON(w, http.StatusOK, ListResponse[PatientRecordResponse]{Count: len(out), Items: out})
	}
}
