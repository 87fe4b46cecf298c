// Package auth provides password authentication and session handling.
//
// Passwords are stored as bcrypt hashes. Sessions are server-side,
// persisted in the application's SQLite database through alexedwards/scs,
// and bound to the browser with an HttpOnly cookie.
//
// # Configuration
//
//	AUTH_SESSION_SECRET=<hex-32-bytes>  # CSRF secret, auto-generated if empty
//	AUTH_SESSION_LIFETIME=24h           # Session duration
//	AUTH_BCRYPT_COST=12                 # bcrypt cost factor
//	AUTH_SECURE_COOKIES=true            # HTTPS-only cookies
//
// # Usage
//
// Initialize authentication in the entrypoint:
//
//	authService := auth.NewService(users.NewRepository(db.DB), cfg.Auth)
//	sessionManager, _ := auth.NewSessionManager(sqlDB, cfg.Auth)
//	authMiddleware := auth.NewMiddleware(sessionManager)
//	router.Use(sessionManager.SessionLoadSave())
//	router.Use(authMiddleware.Handler())
//
// Extract the user in handlers:
//
//	userID := auth.GetUserID(c) // 0 when anonymous
package auth
