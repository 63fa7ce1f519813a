package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/serenity-wellness/booking-service/internal/service"
	"github.com/serenity-wellness/booking-service/internal/session"
)

// Renderer produces a page body from a template name and named values
type Renderer interface {
	Render(w io.Writer, name string, data map[string]any) error
}

// Handler maps form submissions onto the service layer
type Handler struct {
	svc      *service.Service
	sessions *session.Manager
	renderer Renderer
	log      *logrus.Logger
	baseURL  string
}

// NewHandler initializes a new handler
func NewHandler(svc *service.Service, sessions *session.Manager, renderer Renderer, log *logrus.Logger, baseURL string) *Handler {
	return &Handler{svc: svc, sessions: sessions, renderer: renderer, log: log, baseURL: baseURL}
}

// RegisterRoutes attaches every route to the router
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.Index).Methods("GET")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/signup", h.Signup).Methods("POST")
	r.HandleFunc("/profile", h.Profile).Methods("GET")
	r.HandleFunc("/logout", h.Logout).Methods("GET")
	r.HandleFunc("/testimonials", h.Testimonials).Methods("GET")
	r.HandleFunc("/submit_testimonial", h.SubmitTestimonial).Methods("POST")
	r.HandleFunc("/schedule_appointment", h.ScheduleAppointment).Methods("POST")
	r.HandleFunc("/about", h.staticPage("about.html")).Methods("GET")
	r.HandleFunc("/contact", h.staticPage("contact.html")).Methods("GET")
	r.HandleFunc("/faq", h.staticPage("faq.html")).Methods("GET")
	r.HandleFunc("/sitemap.xml", h.Sitemap).Methods("GET")
}

// Index shows the landing page, or the profile for an authenticated session
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if sess, ok := h.sessions.Current(r); ok && sess.Authenticated {
		http.Redirect(w, r, "/profile", http.StatusFound)
		return
	}
	h.render(w, "index.html", map[string]any{"message": ""})
}

// Login handles the login form
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	_, err := h.svc.Login(r.Context(), username, password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			h.log.Errorf("Login failed for %s: %v", username, err)
		}
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if err := h.sessions.Issue(w, username); err != nil {
		h.log.Errorf("Failed to issue session for %s: %v", username, err)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/profile", http.StatusFound)
}

// Signup handles the signup form
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")
	emailAddr := r.FormValue("email")

	_, err := h.svc.Signup(r.Context(), username, password, emailAddr)
	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		h.render(w, "index.html", map[string]any{"message": "Username is taken"})
		return
	case err != nil:
		h.log.Errorf("Signup failed for %s: %v", username, err)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if err := h.sessions.Issue(w, username); err != nil {
		h.log.Errorf("Failed to issue session for %s: %v", username, err)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/profile", http.StatusFound)
}

// Profile shows the user's visit history and appointments
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.Current(r)
	if !ok || !sess.Authenticated {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	recentVisits, err := h.svc.RecentVisits(r.Context(), sess.Username)
	if err != nil {
		h.log.Errorf("Failed to load visits for %s: %v", sess.Username, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	appointments, err := h.svc.Appointments(r.Context(), sess.Username)
	if err != nil {
		h.log.Errorf("Failed to load appointments for %s: %v", sess.Username, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, "profile.html", map[string]any{
		"username":      sess.Username,
		"recent_visits": recentVisits,
		"appointments":  appointments,
		"error":         r.URL.Query().Get("error"),
	})
}

// Logout clears the session
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// Testimonials lists all testimonials
func (h *Handler) Testimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.svc.Testimonials(r.Context())
	if err != nil {
		h.log.Errorf("Failed to list testimonials: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.render(w, "testimonials.html", map[string]any{
		"testimonials": testimonials,
		"success":      false,
	})
}

// SubmitTestimonial stores a testimonial and re-renders the list
func (h *Handler) SubmitTestimonial(w http.ResponseWriter, r *http.Request) {
	author := r.FormValue("author")
	message := r.FormValue("message")

	success := true
	if _, err := h.svc.SubmitTestimonial(r.Context(), author, message); err != nil {
		if !errors.Is(err, service.ErrEmptyField) {
			h.log.Errorf("Failed to submit testimonial: %v", err)
		}
		success = false
	}

	testimonials, err := h.svc.Testimonials(r.Context())
	if err != nil {
		h.log.Errorf("Failed to list testimonials: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.render(w, "testimonials.html", map[string]any{
		"testimonials": testimonials,
		"success":      success,
	})
}

// ScheduleAppointment books an appointment for the logged-in user
func (h *Handler) ScheduleAppointment(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.Current(r)
	if !ok || !sess.Authenticated {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	appointmentType := r.FormValue("type")
	date := r.FormValue("date")

	_, err := h.svc.Schedule(r.Context(), appointmentType, date, sess.Username)
	switch {
	case errors.Is(err, service.ErrSlotTaken):
		http.Redirect(w, r, "/profile?error=time", http.StatusFound)
	case errors.Is(err, service.ErrInvalidDate):
		http.Redirect(w, r, "/profile?error=date", http.StatusFound)
	case err != nil:
		h.log.Errorf("Failed to schedule appointment for %s: %v", sess.Username, err)
		http.Redirect(w, r, "/profile", http.StatusFound)
	default:
		http.Redirect(w, r, "/profile", http.StatusFound)
	}
}

func (h *Handler) staticPage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, name, map[string]any{})
	}
}

func (h *Handler) render(w http.ResponseWriter, name string, data map[string]any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, name, data); err != nil {
		h.log.Errorf("Render failed: %v", err)
	}
}
