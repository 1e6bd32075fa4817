// admin.go - privacy-conscious visitor tracking and the admin pages
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/logging"
)

const (
	adminCookie       = "admin_token"
	adminCookieMaxAge = 3600 * 24
)

// adminAuth holds the per-process session token and the salt used to hash
// visitor IPs. Both are regenerated on every start.
type adminAuth struct {
	creds config.AdminConfig
	token string
	salt  string
	log   *logging.Logger
}

func newAdminAuth(creds config.AdminConfig, log *logging.Logger) *adminAuth {
	a := &adminAuth{
		creds: creds,
		token: generateAdminToken(),
		salt:  generateAdminToken(),
		log:   log,
	}

	log.Info("admin access available", "path", "/admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Debug("admin token (dev only)", "token", a.token)
	}
	if creds.Defaulted {
		log.Warn("using default admin credentials, set ADMIN_USERNAME and ADMIN_PASSWORD")
	}
	return a
}

func generateAdminToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		panic("failed to generate admin token: " + err.Error())
	}
	return hex.EncodeToString(bytes)
}

// hashIP returns a salted, truncated hash so raw addresses are never stored.
func (a *adminAuth) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + a.salt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

func (a *adminAuth) validCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.creds.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.creds.Password)) == 1
	return userOK && passOK
}

func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// untrackedPrefixes are never recorded as page views.
var untrackedPrefixes = []string{"/static/", "/images/", "/admin", "/favicon", "/privacy", "/healthz"}

// visitorTrackingMiddleware records full page views. HTMX fragment requests
// and requests carrying Do Not Track are skipped.
func (s *server) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, p := range untrackedPrefixes {
			if strings.HasPrefix(path, p) {
				c.Next()
				return
			}
		}
		if c.Request.Method != http.MethodGet || c.GetHeader("HX-Request") == "true" || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		hashed := s.admin.hashIP(c.ClientIP())
		ua := c.GetHeader("User-Agent")
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.db.RecordVisit(ctx, hashed, ua, path); err != nil {
				s.log.Error(err, "failed to record visitor")
			}
		}()
		c.Next()
	}
}

// cleanupOldVisitorData deletes visitor records past the retention window,
// once at start and then daily until ctx is done.
func (s *server) cleanupOldVisitorData(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		s.pruneVisitors(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *server) pruneVisitors(ctx context.Context) int64 {
	n, err := s.db.CleanupVisitors(ctx, visitorRetention)
	if err != nil {
		s.log.Error(err, "failed to clean up old visitor data")
		return 0
	}
	if n > 0 {
		s.log.Info("privacy cleanup removed old visitor records", "rows", n)
	}
	return n
}

func (s *server) setupAdminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy", nil)
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login", gin.H{})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		visitor := s.admin.hashIP(c.ClientIP())
		if !s.admin.validCredentials(c.PostForm("username"), c.PostForm("password")) {
			s.admin.log.Warn("failed admin login attempt", "visitor", visitor)
			c.HTML(http.StatusUnauthorized, "admin-login", gin.H{"error": "Invalid credentials"})
			return
		}

		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(adminCookie, s.admin.token, adminCookieMaxAge, "/admin", "", false, true)
		s.admin.log.Info("admin login successful", "visitor", visitor)
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		s.admin.log.Info("admin logout", "visitor", s.admin.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	adminGroup := r.Group("/admin")
	adminGroup.Use(s.admin.middleware())

	adminGroup.GET("/dashboard", s.handleDashboard)

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.db.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.db.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			s.admin.log.Error(err, "failed to load visitors")
			c.HTML(http.StatusInternalServerError, "admin-error", gin.H{"error": "Failed to load visitors"})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors", gin.H{"visitors": visitors})
	})

	adminGroup.GET("/messages", func(c *gin.Context) {
		messages, err := s.db.RecentMessages(c.Request.Context(), 200)
		if err != nil {
			s.admin.log.Error(err, "failed to load messages")
			c.HTML(http.StatusInternalServerError, "admin-error", gin.H{"error": "Failed to load messages"})
			return
		}
		c.HTML(http.StatusOK, "admin-messages", gin.H{"messages": messages})
	})

	adminGroup.DELETE("/messages/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message id"})
			return
		}

		deleted, err := s.db.DeleteMessage(c.Request.Context(), id)
		if err != nil {
			s.admin.log.Error(err, "failed to delete message", "message_id", id)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}

		s.admin.log.Info("message deleted by admin", "message_id", id, "visitor", s.admin.hashIP(c.ClientIP()))
		// HTMX removes the row on any 2xx; an empty body keeps hx-swap="delete" simple.
		c.Status(http.StatusOK)
	})

	// Re-fetch the portfolio document without restarting.
	adminGroup.POST("/reload", func(c *gin.Context) {
		if err := s.loadPortfolio(c.Request.Context()); err != nil {
			c.HTML(http.StatusBadGateway, "admin-error", gin.H{"error": "Failed to reload portfolio data: " + err.Error()})
			return
		}
		c.Redirect(http.StatusSeeOther, "/admin/dashboard?reloaded=1")
	})

	adminGroup.POST("/privacy/delete-visitor-data", func(c *gin.Context) {
		n := s.pruneVisitors(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "deleted": n})
	})

	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.db.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		s.admin.log.Info("admin stats exported", "visitor", s.admin.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}

func (s *server) handleDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	stats, err := s.db.Stats(ctx)
	if err != nil {
		s.admin.log.Error(err, "failed to load admin stats")
		c.HTML(http.StatusInternalServerError, "admin-error", gin.H{"error": "Failed to load statistics"})
		return
	}
	messages, err := s.db.RecentMessages(ctx, 20)
	if err != nil {
		s.admin.log.Error(err, "failed to load messages")
		c.HTML(http.StatusInternalServerError, "admin-error", gin.H{"error": "Failed to load messages"})
		return
	}

	data := gin.H{"stats": stats, "messages": messages}
	if snap, ok := s.holder.Snapshot(); ok {
		data["snapshot"] = snap
	}
	if c.Query("reloaded") == "1" {
		data["notice"] = "Portfolio data reloaded."
	}
	c.HTML(http.StatusOK, "admin-dashboard", data)
}
