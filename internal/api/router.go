package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/model"
	"github.com/mahfuzHasan2003/Study-Sphere-backend/internal/service"
)

// Handlers bundles everything RegisterRoutes mounts.
type Handlers struct {
	User     *UserHandler
	Session  *SessionHandler
	Material *MaterialHandler
	Booking  *BookingHandler
	Review   *ReviewHandler
	Note     *NoteHandler
	Payment  *PaymentHandler
}

// RegisterRoutes mounts the full route table. Role gates are attached
// per route: fiber treats a group with an empty prefix as an app-wide
// Use, so a gate registered that way would also run for every route
// added after it.
func RegisterRoutes(app *fiber.App, userService service.UserService, h Handlers) {
	auth := AuthMiddleware()
	tutorOnly := RequireRole(userService, model.RoleTutor)
	adminOnly := RequireRole(userService, model.RoleAdmin)
	studentOnly := RequireRole(userService, model.RoleStudent)

	// public
	app.Post("/jwt", h.User.IssueToken)
	app.Post("/post-user", h.User.RegisterUser)
	app.Get("/get-all-sessions", h.Session.BrowseSessions)
	app.Get("/session/:id", h.Session.GetSession)
	app.Get("/get-reviews/:id", h.Review.ListSessionReviews)
	app.Get("/get-average-rating/:id", h.Review.GetAverageRating)

	app.Get("/get-user-role", auth, h.User.GetUserRole)

	// tutor
	app.Get("/tutor-study-sessions", auth, tutorOnly, h.Session.ListTutorSessions)
	app.Post("/add-study-session", auth, tutorOnly, h.Session.CreateSession)
	app.Patch("/review-rejected-session/:id", auth, tutorOnly, h.Session.ResubmitSession)
	app.Patch("/update-session-info/:id", auth, tutorOnly, h.Session.UpdateSessionInfo)
	app.Post("/add-material", auth, tutorOnly, h.Material.AddMaterial)
	app.Get("/material-upload-url", auth, tutorOnly, h.Material.GetMaterialUploadURL)
	app.Get("/tutor-materials", auth, tutorOnly, h.Material.ListTutorMaterials)
	app.Patch("/update-material/:id", auth, tutorOnly, h.Material.UpdateMaterial)
	app.Post("/create-stripe-account-link", auth, tutorOnly, h.Payment.CreateAccountLink)
	app.Get("/stripe-balance", auth, tutorOnly, h.Payment.GetBalance)

	// admin
	app.Get("/all-users", auth, adminOnly, h.User.ListUsers)
	app.Patch("/update-user-role/:email", auth, adminOnly, h.User.UpdateUserRole)
	app.Get("/all-study-sessions", auth, adminOnly, h.Session.ListAllSessions)
	app.Put("/update-session/:id", auth, adminOnly, h.Session.UpdateSession)
	app.Delete("/delete-session/:id", auth, adminOnly, h.Session.DeleteSession)
	app.Get("/all-materials", auth, adminOnly, h.Material.ListAllMaterials)

	// tutors own their materials, admins moderate everything
	app.Delete("/delete-material/:id", auth, RequireAnyRole(userService, model.RoleTutor, model.RoleAdmin), h.Material.DeleteMaterial)

	// student
	app.Post("/book-session", auth, studentOnly, h.Booking.BookSession)
	app.Get("/booked-sessions", auth, studentOnly, h.Booking.ListBookedSessions)
	app.Patch("/mark-booking-paid/:id", auth, studentOnly, h.Booking.MarkBookingPaid)
	app.Get("/student-materials", auth, studentOnly, h.Material.ListStudentMaterials)
	app.Post("/add-review", auth, studentOnly, h.Review.AddReview)
	app.Post("/student-notes", auth, studentOnly, h.Note.CreateNote)
	app.Get("/student-notes", auth, studentOnly, h.Note.ListNotes)
	app.Patch("/update-note/:id", auth, studentOnly, h.Note.UpdateNote)
	app.Delete("/delete-note/:id", auth, studentOnly, h.Note.DeleteNote)
	app.Post("/create-payment-intent", auth, studentOnly, h.Payment.CreatePaymentIntent)
}
