package http

import (
	"net/http"

	"github.com/VictorAraujo38/akkadian-test/internal/delivery/http/handler"
	"github.com/VictorAraujo38/akkadian-test/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

// uuidPattern keeps literal paths such as /appointments/mine from matching {id}.
const uuidPattern = "[0-9a-fA-F-]{36}"

type Router struct {
	router             *mux.Router
	appointmentHandler *handler.AppointmentHandler
	schedulingHandler  *handler.SchedulingHandler
	specialtyHandler   *handler.SpecialtyHandler
	auditLogHandler    *handler.AuditLogHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
	metricsHandler     http.Handler
}

func NewRouter(
	appointmentHandler *handler.AppointmentHandler,
	schedulingHandler *handler.SchedulingHandler,
	specialtyHandler *handler.SpecialtyHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		appointmentHandler: appointmentHandler,
		schedulingHandler:  schedulingHandler,
		specialtyHandler:   specialtyHandler,
		auditLogHandler:    auditLogHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
		metricsHandler:     metricsHandler,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Public
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	if r.metricsHandler != nil {
		api.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)
	}

	// Everything else needs a bearer token
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	// Triage and specialties
	protected.HandleFunc("/triage", r.schedulingHandler.Triage).Methods(http.MethodPost)
	protected.HandleFunc("/specialties", r.specialtyHandler.GetSpecialties).Methods(http.MethodGet)
	protected.HandleFunc("/specialties/with-doctors", r.specialtyHandler.GetSpecialtiesWithDoctors).Methods(http.MethodGet)
	protected.HandleFunc("/specialties/{id:[0-9]+}/doctors", r.schedulingHandler.GetDoctorsBySpecialty).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{doctorId:"+uuidPattern+"}/credentials", r.specialtyHandler.GetDoctorCredentials).Methods(http.MethodGet)

	// Scheduling queries
	protected.HandleFunc("/appointments/available-slots", r.schedulingHandler.GetAvailableSlots).Methods(http.MethodGet)
	protected.Handle("/appointments/validate", middleware.RequirePatient(http.HandlerFunc(r.schedulingHandler.ValidateAppointment))).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/assign-doctor", r.schedulingHandler.AssignDoctor).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/check-availability", r.schedulingHandler.CheckAvailability).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id:"+uuidPattern+"}/validate-update", r.schedulingHandler.ValidateUpdate).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id:"+uuidPattern+"}/validate-cancel", r.schedulingHandler.ValidateCancel).Methods(http.MethodGet)

	// Appointment lifecycle
	protected.Handle("/appointments", middleware.RequirePatient(http.HandlerFunc(r.appointmentHandler.CreateAppointment))).Methods(http.MethodPost)
	protected.Handle("/appointments/mine", middleware.RequirePatient(http.HandlerFunc(r.appointmentHandler.GetMyAppointments))).Methods(http.MethodGet)
	protected.Handle("/appointments/agenda", middleware.RequireDoctor(http.HandlerFunc(r.appointmentHandler.GetAgenda))).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id:"+uuidPattern+"}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id:"+uuidPattern+"}/history", r.appointmentHandler.GetHistory).Methods(http.MethodGet)
	protected.Handle("/appointments/{id:"+uuidPattern+"}/status", middleware.RequireAdminOrDoctor(http.HandlerFunc(r.appointmentHandler.UpdateStatus))).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{id:"+uuidPattern+"}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id:"+uuidPattern+"}/reschedule", r.appointmentHandler.RescheduleAppointment).Methods(http.MethodPut)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/doctors/{doctorId:"+uuidPattern+"}/credentials", r.specialtyHandler.AddCredential).Methods(http.MethodPost)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id:[0-9]+}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
