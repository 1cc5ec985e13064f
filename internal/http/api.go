package http

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"moodtrack/internal/domain"
	"moodtrack/internal/service"
)

const (
	sessionCookieName = "mood_session"
	flashCookieName   = "mood_flash"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth       service.AuthService
	sessions   service.SessionManager
	moods      service.MoodService
	sessionTTL time.Duration
	logger     *logrus.Logger
}

func NewHandler(auth service.AuthService, sessions service.SessionManager, moods service.MoodService, sessionTTL time.Duration, logger *logrus.Logger) *Handler {
	return &Handler{
		auth:       auth,
		sessions:   sessions,
		moods:      moods,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.SetHTMLTemplate(mustTemplates())

	router.GET("/register", h.registerForm)
	router.POST("/register", h.register)
	router.GET("/login", h.loginForm)
	router.POST("/login", h.login)

	authed := router.Group("/", h.requirePage)
	{
		authed.GET("/", h.home)
		authed.GET("/logout", h.logout)
		authed.GET("/track_mood", h.trackMoodForm)
		authed.POST("/track_mood", h.trackMood)
		authed.GET("/my_moods", h.myMoods)
	}

	api := router.Group("/")
	{
		api.GET("/get_moods", h.requireJSON, h.getMoods)
		api.GET("/api/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

const userKey = "currentUser"

// requirePage resolves the session principal for browser routes; anonymous
// requests are sent to the login form.
func (h *Handler) requirePage(c *gin.Context) {
	user, err := h.loadSessionUser(c)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/login")
		c.Abort()
		return
	}
	c.Set(userKey, user)
	c.Next()
}

// requireJSON is the same check for machine clients, answering 401 instead
// of redirecting.
func (h *Handler) requireJSON(c *gin.Context) {
	user, err := h.loadSessionUser(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	c.Set(userKey, user)
	c.Next()
}

func (h *Handler) loadSessionUser(c *gin.Context) (*domain.User, error) {
	token := sessionToken(c)
	if token == "" {
		return nil, service.ErrUnauthenticated
	}
	user, err := h.sessions.Load(c.Request.Context(), token)
	if err != nil {
		if !errors.Is(err, service.ErrUnauthenticated) {
			h.logger.Warnf("load session: %v", err)
		}
		return nil, service.ErrUnauthenticated
	}
	return user, nil
}

// sessionToken reads the session cookie, falling back to a bearer header for
// machine clients.
func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(sessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

func currentUser(c *gin.Context) *domain.User {
	return c.MustGet(userKey).(*domain.User)
}

func (h *Handler) home(c *gin.Context) {
	h.renderPage(c, "index.html", gin.H{"Username": currentUser(c).Username})
}

func (h *Handler) registerForm(c *gin.Context) {
	h.renderPage(c, "register.html", gin.H{})
}

func (h *Handler) register(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	username := c.PostForm("username")

	_, err := h.auth.Register(c.Request.Context(), email, password, username)
	switch {
	case err == nil:
		h.setFlash(c, "success", "User registered successfully!")
		c.Redirect(http.StatusSeeOther, "/login")
	case errors.Is(err, service.ErrUsernameTaken):
		h.setFlash(c, "error", "Username already taken")
		c.Redirect(http.StatusSeeOther, "/register")
	case errors.Is(err, service.ErrEmailTaken):
		h.setFlash(c, "error", "Email already registered")
		c.Redirect(http.StatusSeeOther, "/register")
	case errors.Is(err, service.ErrConflict):
		h.setFlash(c, "error", "Username or email already taken")
		c.Redirect(http.StatusSeeOther, "/register")
	case errors.Is(err, service.ErrValidation):
		h.setFlash(c, "error", "Email, password, and username are required")
		c.Redirect(http.StatusSeeOther, "/register")
	default:
		h.logger.Warnf("register: %v", err)
		h.setFlash(c, "error", "Could not register user")
		c.Redirect(http.StatusSeeOther, "/register")
	}
}

func (h *Handler) loginForm(c *gin.Context) {
	if _, err := h.loadSessionUser(c); err == nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	h.renderPage(c, "login.html", gin.H{})
}

func (h *Handler) login(c *gin.Context) {
	identifier := c.PostForm("email")
	if identifier == "" {
		identifier = c.PostForm("username")
	}
	password := c.PostForm("password")

	if identifier == "" || password == "" {
		h.setFlash(c, "error", "Email/Username and password are required")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	user, err := h.auth.Login(c.Request.Context(), identifier, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.setFlash(c, "error", "Invalid email/username or password")
		} else {
			h.logger.Warnf("login: %v", err)
			h.setFlash(c, "error", "Could not log in")
		}
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	token, err := h.sessions.Start(user)
	if err != nil {
		h.logger.Warnf("start session: %v", err)
		h.setFlash(c, "error", "Could not log in")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, int(h.sessionTTL.Seconds()), "/", "", false, true)
	h.setFlash(c, "success", "Login successful!")
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) logout(c *gin.Context) {
	if token := sessionToken(c); token != "" {
		h.sessions.End(token)
	}
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	h.setFlash(c, "success", "You have been logged out successfully!")
	c.Redirect(http.StatusSeeOther, "/login")
}

// CategoryGroup is a taxonomy category with its fixed vocabulary, for the
// tracking form.
type CategoryGroup struct {
	Category domain.Category
	Words    []string
}

func vocabularyGroups() []CategoryGroup {
	groups := make([]CategoryGroup, len(domain.Categories))
	for i, category := range domain.Categories {
		groups[i] = CategoryGroup{Category: category, Words: domain.Vocabulary(category)}
	}
	return groups
}

func (h *Handler) trackMoodForm(c *gin.Context) {
	h.renderPage(c, "track_mood.html", gin.H{"Groups": vocabularyGroups()})
}

func (h *Handler) trackMood(c *gin.Context) {
	moods := c.PostFormArray("mood")
	note := c.PostForm("note")

	err := h.moods.Submit(c.Request.Context(), currentUser(c).ID, moods, note)
	var partial *service.PartialWriteError
	switch {
	case err == nil:
		h.setFlash(c, "success", "Moods tracked successfully!")
		c.Redirect(http.StatusSeeOther, "/")
	case errors.Is(err, service.ErrValidation):
		h.setFlash(c, "error", "Please select at least one mood")
		c.Redirect(http.StatusSeeOther, "/track_mood")
	case errors.As(err, &partial):
		h.logger.Warnf("track mood: %v", err)
		h.setFlash(c, "error", "Some moods could not be saved; your history may be incomplete")
		c.Redirect(http.StatusSeeOther, "/track_mood")
	default:
		h.logger.Warnf("track mood: %v", err)
		h.setFlash(c, "error", "Error tracking mood")
		c.Redirect(http.StatusSeeOther, "/track_mood")
	}
}

// MoodView is one normalized tag prepared for rendering.
type MoodView struct {
	Tag       string
	Category  domain.Category
	CreatedAt string
}

func (h *Handler) myMoods(c *gin.Context) {
	moods, err := h.moods.ListNormalized(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.logger.Warnf("list moods: %v", err)
		h.setFlash(c, "error", "Could not load mood data.")
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	views := make([]MoodView, len(moods))
	for i, m := range moods {
		views[i] = MoodView{
			Tag:       m.Tag,
			Category:  domain.Categorize(m.Tag),
			CreatedAt: m.CreatedAt.Format("2006-01-02 15:04"),
		}
	}
	h.renderPage(c, "my_moods.html", gin.H{"Moods": views})
}

// MoodResponse is one normalized tag in the JSON listing.
type MoodResponse struct {
	Mood      string          `json:"mood"`
	Category  domain.Category `json:"category"`
	CreatedAt string          `json:"created_at"`
}

func (h *Handler) getMoods(c *gin.Context) {
	moods, err := h.moods.ListNormalized(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.logger.Warnf("list moods: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load mood data"})
		return
	}

	resp := make([]MoodResponse, len(moods))
	for i, m := range moods {
		resp[i] = MoodResponse{
			Mood:      m.Tag,
			Category:  domain.Categorize(m.Tag),
			CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	c.JSON(http.StatusOK, gin.H{"moods": resp})
}

// Flash is a one-shot notice carried across a redirect in a cookie.
type Flash struct {
	Kind    string
	Message string
}

func (h *Handler) setFlash(c *gin.Context, kind, message string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookieName, url.QueryEscape(kind+"|"+message), 60, "/", "", false, true)
}

func (h *Handler) popFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookieName)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookieName, "", -1, "/", "", false, true)

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	kind, message, ok := strings.Cut(decoded, "|")
	if !ok {
		return &Flash{Kind: "info", Message: decoded}
	}
	return &Flash{Kind: kind, Message: message}
}

func (h *Handler) renderPage(c *gin.Context, name string, data gin.H) {
	data["Flash"] = h.popFlash(c)
	c.HTML(http.StatusOK, name, data)
}
