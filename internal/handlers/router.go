package handlers

import "net/http"

// NewRouter builds the full route table. Kept separate from main so tests
// exercise the same mux the server runs.
func NewRouter(
	mw *Middleware,
	auth *AuthHandler,
	profile *ProfileHandler,
	attendance *AttendanceHandler,
	users *UserHandler,
	staticPath, uploadDir string,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Static frontend and uploaded avatars
	mux.Handle("GET /", http.FileServer(http.Dir(staticPath)))
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	// Public routes (rate limited: they accept or mint credentials)
	mux.HandleFunc("POST /api/signup", mw.RateLimit(auth.Signup))
	mux.HandleFunc("POST /api/login", mw.RateLimit(auth.Login))
	mux.HandleFunc("POST /api/forgot-password", mw.RateLimit(auth.ForgotPassword))
	mux.HandleFunc("POST /api/reset-password", mw.RateLimit(auth.ResetPassword))

	// Authenticated routes
	mux.HandleFunc("GET /api/profile", mw.RequireAuth(profile.GetProfile))
	mux.HandleFunc("PUT /api/profile", mw.RequireAuth(profile.UpdateProfile))
	mux.HandleFunc("POST /api/upload-avatar", mw.RequireAuth(profile.UploadAvatar))
	mux.HandleFunc("POST /api/attendance", mw.RequireAuth(attendance.Create))
	mux.HandleFunc("GET /api/attendance/{userId}", mw.RequireAuth(attendance.ListByUser))
	mux.HandleFunc("GET /api/users", mw.RequireAuth(users.List))

	// Manager routes
	mux.HandleFunc("GET /api/all-attendance", mw.RequireAuth(mw.RequireManager(attendance.ListAll)))
	mux.HandleFunc("DELETE /api/attendance/{id}", mw.RequireAuth(mw.RequireManager(attendance.Delete)))
	mux.HandleFunc("POST /api/users", mw.RequireAuth(mw.RequireManager(users.Create)))
	mux.HandleFunc("DELETE /api/users/{id}", mw.RequireAuth(mw.RequireManager(users.Delete)))

	return mux
}
