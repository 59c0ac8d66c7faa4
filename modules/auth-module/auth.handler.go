package auth_module

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/inethub/rrtool/database/entities"
)

const SessionCookie = "rr_session"

type Handler struct {
	store      UserStore
	secret     string
	sessionTTL time.Duration
	now        func() time.Time
}

func NewHandler(store UserStore, secret string, sessionTTL time.Duration) *Handler {
	return &Handler{store: store, secret: secret, sessionTTL: sessionTTL, now: time.Now}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/api/auth/login", h.login)
	r.POST("/api/auth/logout", h.logout)
	r.GET("/api/auth/me", h.me)
}

func (h *Handler) RegisterAdminRoutes(r gin.IRoutes) {
	r.POST("/api/auth/register", h.register)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=USER ADMIN"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	user, err := h.store.ByEmail(req.Email)
	if errors.Is(err, ErrUserNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid email or password"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "DB Fetch Failed"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid email or password"})
		return
	}

	expiry := h.now().Add(h.sessionTTL)
	token := SignToken(h.secret, user.ID, expiry)
	c.SetCookie(SessionCookie, token, int(h.sessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": userView(user)})
}

func (h *Handler) logout(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) me(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": userView(user)})
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if _, err := h.store.ByEmail(req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Email already registered"})
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to register user"})
		return
	}
	role := req.Role
	if role == "" {
		role = "USER"
	}
	user := &entities.User{Email: req.Email, Name: req.Name, PasswordHash: string(hash), Role: role}
	if err := h.store.Create(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "DB Save Failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": userView(user)})
}

// RequireAuth rejects requests without a valid session cookie and stores the
// authenticated user's identity on the request context.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := h.sessionUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authenticated"})
			return
		}
		c.Set("uid", user.ID)
		c.Set("userName", user.Name)
		c.Set("role", user.Role)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if role, _ := c.Get("role"); role != "ADMIN" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Admin access required"})
			return
		}
		c.Next()
	}
}

func (h *Handler) sessionUser(c *gin.Context) (*entities.User, bool) {
	token, err := c.Cookie(SessionCookie)
	if err != nil {
		return nil, false
	}
	uid, err := VerifyToken(h.secret, token, h.now())
	if err != nil {
		return nil, false
	}
	user, err := h.store.ByID(uid)
	if err != nil {
		return nil, false
	}
	return user, true
}

func userView(user *entities.User) gin.H {
	return gin.H{"id": user.ID, "email": user.Email, "name": user.Name, "role": user.Role, "createdAt": user.CreatedAt}
}
