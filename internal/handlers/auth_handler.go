package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/glowbook/salon-platform/internal/cache"
	"github.com/glowbook/salon-platform/internal/config"
	domaintenant "github.com/glowbook/salon-platform/internal/domain/tenant"
	"github.com/glowbook/salon-platform/internal/events"
	"github.com/glowbook/salon-platform/internal/middleware"
	"github.com/glowbook/salon-platform/internal/models"
	"github.com/glowbook/salon-platform/internal/validators"
)

type AuthHandler struct {
	db        *gorm.DB
	config    *config.Config
	blacklist *cache.TokenBlacklist
	bus       *events.Bus
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, blacklist *cache.TokenBlacklist, bus *events.Bus) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, blacklist: blacklist, bus: bus}
}

// --------- Requests ---------

type RegisterRequest struct {
	TenantName string `json:"tenant_name" binding:"required"`
	Plan       string `json:"plan"`

	SalonName    string `json:"salon_name" binding:"required"`
	SalonSlug    string `json:"salon_slug" binding:"required"`
	SalonPhone   string `json:"salon_phone"`
	SalonAddress string `json:"salon_address"`
	Timezone     string `json:"timezone"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.SalonSlug))
	if !validators.IsSlugValid(slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_slug"})
		return
	}

	var count int64
	h.db.Model(&models.Salon{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug_already_exists"})
		return
	}

	plan := domaintenant.Plan(req.Plan)
	if req.Plan == "" {
		plan = domaintenant.PlanStarter
	}
	if !domaintenant.IsValidPlan(plan) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_plan"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_email_domain",
			"message": "The email domain does not look valid.",
		})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	var (
		tenant models.Tenant
		salon  models.Salon
		owner  models.Staff
	)

	err = h.db.Transaction(func(tx *gorm.DB) error {
		tenant = models.Tenant{
			Name: req.TenantName,
			Plan: string(plan),
		}
		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}

		salon = models.Salon{
			TenantID: tenant.ID,
			Name:     req.SalonName,
			Slug:     slug,
			Phone:    req.SalonPhone,
			Address:  req.SalonAddress,
		}
		if req.Timezone != "" {
			salon.Timezone = req.Timezone
		}
		if err := tx.Create(&salon).Error; err != nil {
			return err
		}

		owner = models.Staff{
			SalonID:      salon.ID,
			Name:         req.Name,
			Email:        email,
			PasswordHash: string(hashed),
			Phone:        req.Phone,
			Role:         middleware.RoleOwner,
			Active:       true,
		}
		return tx.Create(&owner).Error
	})
	if err != nil {
		// The pre-checks above race with concurrent registrations; the
		// unique indexes are the authority.
		switch {
		case uniqueViolationOn(err, "slug"):
			c.JSON(http.StatusBadRequest, gin.H{"error": "slug_already_exists"})
		case uniqueViolationOn(err, "email"):
			c.JSON(http.StatusBadRequest, gin.H{"error": "email_already_exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_register"})
		}
		return
	}

	h.bus.Publish(c.Request.Context(), domaintenant.NewRegistered(tenant.ID, plan))

	token, err := h.generateToken(&owner, tenant.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"tenant": gin.H{
			"id":   tenant.ID,
			"name": tenant.Name,
			"plan": tenant.Plan,
		},
		"salon": gin.H{
			"id":      salon.ID,
			"name":    salon.Name,
			"slug":    salon.Slug,
			"phone":   salon.Phone,
			"address": salon.Address,
		},
		"user": gin.H{
			"id":       owner.ID,
			"name":     owner.Name,
			"email":    owner.Email,
			"phone":    owner.Phone,
			"role":     owner.Role,
			"salon_id": owner.SalonID,
		},
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var staff models.Staff
	if err := h.db.Preload("Salon").
		Where("email = ?", email).
		First(&staff).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if !staff.Active {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "account_disabled"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.generateToken(&staff, staff.Salon.TenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       staff.ID,
			"name":     staff.Name,
			"email":    staff.Email,
			"phone":    staff.Phone,
			"role":     staff.Role,
			"salon_id": staff.SalonID,
		},
		"salon": gin.H{
			"id":      staff.Salon.ID,
			"name":    staff.Salon.Name,
			"slug":    staff.Salon.Slug,
			"phone":   staff.Salon.Phone,
			"address": staff.Salon.Address,
		},
		"token": token,
	})
}

// Logout blacklists the token's jti for its remaining lifetime.
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_authorization_header"})
		return
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		return []byte(h.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
		return
	}

	claims, _ := token.Claims.(jwt.MapClaims)
	jti, _ := claims["jti"].(string)
	exp, _ := claims["exp"].(float64)

	if jti != "" {
		ttl := time.Until(time.Unix(int64(exp), 0))
		if err := h.blacklist.Add(c.Request.Context(), jti, ttl); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_logout"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// uniqueViolationOn reports whether err is a unique index violation
// involving the named column.
func uniqueViolationOn(err error, column string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, column)
	}

	// SQLite phrasing, seen in tests.
	return strings.Contains(err.Error(), "UNIQUE constraint failed") &&
		strings.Contains(err.Error(), column)
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(staff *models.Staff, tenantID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub":      staff.ID,
		"tenantId": tenantID,
		"salonId":  staff.SalonID,
		"role":     staff.Role,
		"jti":      uuid.NewString(),
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
