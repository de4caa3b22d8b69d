package core

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter constructs the Gin engine with routes wired.
func NewRouter(cfg Config, authService AuthService, users UserRepository, tokens *TokenService, limiter *LoginLimiter, metrics *MetricsService, db DBPinger, redisClient RedisClientRaw) *gin.Engine {
	startedAt := time.Now()
	r := gin.Default()

	r.Use(OriginRefererMiddleware(cfg))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Token issuance. Form-encoded credentials, OAuth2 password-flow shape.
	r.POST("/token", func(c *gin.Context) {
		ctx := c.Request.Context()

		if !limiter.Allow(ctx, c.ClientIP()) {
			metrics.LoginRateLimited(ctx)
			respondError(c, http.StatusTooManyRequests, "RATE_LIMITED", "too many login attempts, try again later")
			return
		}

		email := strings.TrimSpace(c.PostForm("username"))
		password := c.PostForm("password")

		user, err := authService.Authenticate(ctx, email, password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				metrics.LoginFailed(ctx)
				c.Header("WWW-Authenticate", "Bearer")
				respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Incorrect email or password")
				return
			}
			respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "authentication failed")
			return
		}

		accessToken, err := tokens.Issue(user.Email, cfg.AccessTokenTTL())
		if err != nil {
			respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to issue token")
			return
		}

		metrics.LoginSucceeded(ctx)
		metrics.TokenIssued(ctx)
		c.JSON(http.StatusOK, gin.H{"access_token": accessToken, "token_type": "bearer"})
	})

	usersGroup := r.Group("/users")
	{
		usersGroup.POST("", func(c *gin.Context) {
			var req struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
				return
			}
			req.Email = strings.TrimSpace(req.Email)
			if req.Email == "" || req.Password == "" {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "email and password are required")
				return
			}

			hash, err := HashPassword(req.Password)
			if err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to hash password")
				return
			}
			record, err := users.Create(c.Request.Context(), req.Email, hash)
			if err != nil {
				if errors.Is(err, ErrEmailTaken) {
					respondError(c, http.StatusBadRequest, "EMAIL_TAKEN", "Email already registered")
					return
				}
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to create user")
				return
			}
			c.JSON(http.StatusCreated, userJSON(userFromRecord(record)))
		})

		usersGroup.GET("", func(c *gin.Context) {
			skip, limit, err := parseSkipLimit(c.Query("skip"), c.Query("limit"))
			if err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
				return
			}
			records, err := users.List(c.Request.Context(), skip, limit)
			if err != nil {
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to fetch users")
				return
			}
			items := make([]gin.H, 0, len(records))
			for i := range records {
				items = append(items, userJSON(userFromRecord(&records[i])))
			}
			c.JSON(http.StatusOK, items)
		})

		usersGroup.GET("/me", RequireUser(authService), func(c *gin.Context) {
			user, ok := currentUser(c)
			if !ok {
				challengeUnauthorized(c)
				return
			}
			c.JSON(http.StatusOK, userJSON(user))
		})

		usersGroup.PUT("/:id", RequireUser(authService), func(c *gin.Context) {
			user, ok := currentUser(c)
			if !ok {
				challengeUnauthorized(c)
				return
			}
			id, err := strconv.ParseInt(c.Param("id"), 10, 64)
			if err != nil || id <= 0 {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid id")
				return
			}
			if err := Authorize(user, id); err != nil {
				respondError(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to update this user")
				return
			}

			var req struct {
				Email    *string `json:"email"`
				Password *string `json:"password"`
				IsActive *bool   `json:"is_active"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
				return
			}

			in := UserUpdateInput{Email: req.Email, IsActive: req.IsActive}
			if req.Email != nil && strings.TrimSpace(*req.Email) == "" {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "email must not be empty")
				return
			}
			if req.Password != nil {
				if len(*req.Password) < 6 {
					respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "password must be at least 6 characters")
					return
				}
				hash, err := HashPassword(*req.Password)
				if err != nil {
					respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to hash password")
					return
				}
				in.HashedPassword = &hash
			}

			record, err := users.Update(c.Request.Context(), id, in)
			if err != nil {
				switch {
				case errors.Is(err, ErrNotFound):
					respondError(c, http.StatusNotFound, "NOT_FOUND", "User not found")
				case errors.Is(err, ErrEmailTaken):
					respondError(c, http.StatusBadRequest, "EMAIL_TAKEN", "Email already registered")
				default:
					respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to update user")
				}
				return
			}
			c.JSON(http.StatusOK, userJSON(userFromRecord(record)))
		})

		usersGroup.DELETE("/:id", RequireUser(authService), func(c *gin.Context) {
			user, ok := currentUser(c)
			if !ok {
				challengeUnauthorized(c)
				return
			}
			id, err := strconv.ParseInt(c.Param("id"), 10, 64)
			if err != nil || id <= 0 {
				respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid id")
				return
			}
			if err := Authorize(user, id); err != nil {
				respondError(c, http.StatusForbidden, "FORBIDDEN", "You do not have permission to delete this user")
				return
			}

			record, err := users.Delete(c.Request.Context(), id)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					respondError(c, http.StatusNotFound, "NOT_FOUND", "User not found")
					return
				}
				respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to delete user")
				return
			}
			c.JSON(http.StatusOK, userJSON(userFromRecord(record)))
		})
	}

	r.GET("/status", RequireUser(authService), func(c *gin.Context) {
		st := CollectSystemStatus(c.Request.Context(), db, redisClient, startedAt)
		c.JSON(http.StatusOK, st)
	})

	r.GET("/metrics/auth", RequireUser(authService), func(c *gin.Context) {
		snapshot, err := metrics.Snapshot(c.Request.Context())
		if err != nil {
			respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "failed to load metrics")
			return
		}
		c.JSON(http.StatusOK, snapshot)
	})

	return r
}
