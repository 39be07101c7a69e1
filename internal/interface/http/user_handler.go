package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/accountd/accountd/config"
	"github.com/accountd/accountd/internal/application"
	"github.com/accountd/accountd/internal/domain/entity"
	repo "github.com/accountd/accountd/internal/domain/repository"
	"github.com/accountd/accountd/internal/interface/middleware"
	"github.com/accountd/accountd/pkg/helpers"
	"github.com/accountd/accountd/pkg/response"
	"github.com/accountd/accountd/pkg/validation"
)

const userListCacheKey = "users:public:all"

// UserHandler binds a use case to each account route. Use cases are
// constructed per request from the injected collaborators; the handler owns
// nothing but wiring and the error-to-status mapping.
type UserHandler struct {
	Repo   repo.UserRepository
	Hasher application.PasswordHasher
	Signer application.TokenSigner
	Mail   application.EmailSender
	Files  application.FileStore
	RDB    *redis.Client
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewUserHandler(repo repo.UserRepository, hasher application.PasswordHasher, signer application.TokenSigner,
	mail application.EmailSender, files application.FileStore, rdb *redis.Client,
	logger *logrus.Logger, cfg *config.Config) *UserHandler {
	return &UserHandler{Repo: repo, Hasher: hasher, Signer: signer, Mail: mail, Files: files,
		RDB: rdb, Logger: logger, Cfg: cfg}
}

type signUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Password     *string `json:"password"`
	ProfileImage *string `json:"profileImage"`
}

// POST /api/users/signup
func (h *UserHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": validation.ToDetails(err)})
		return
	}

	uc := &application.SignUp{
		Repo:   h.Repo,
		Hasher: h.Hasher,
		Mail:   h.Mail,
		Logger: h.Logger,
		AppURL: h.Cfg.AppURL,
		From:   h.Cfg.EmailFrom,
	}
	user, err := uc.Execute(c.Request.Context(), application.SignUpInput{
		Name: req.Name, Email: req.Email, Password: req.Password,
	})
	if err != nil {
		h.Logger.WithError(err).Error("sign up failed")
		c.JSON(statusFor(err), response.Err(err.Error()))
		return
	}
	h.dropUserListCache(c)
	c.JSON(http.StatusCreated, user)
}

// POST /api/users/signin
func (h *UserHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrMessage("invalid payload"))
		return
	}

	uc := &application.SignIn{Repo: h.Repo, Hasher: h.Hasher, Signer: h.Signer, Logger: h.Logger}
	result, err := uc.Execute(c.Request.Context(), application.SignInInput{
		Email: req.Email, Password: req.Password,
	})
	if err != nil {
		h.Logger.WithError(err).WithField("email", req.Email).Warn("sign in rejected")
		c.JSON(statusFor(err), response.ErrMessage(err.Error()))
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/users/
func (h *UserHandler) FindAll(c *gin.Context) {
	ctx := c.Request.Context()
	if h.RDB != nil {
		var cached []*entity.PublicUser
		if ok, err := helpers.RedisGetJSON(ctx, h.RDB, userListCacheKey, &cached); err == nil && ok {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	uc := &application.FindAllUsers{Repo: h.Repo}
	users, err := uc.Execute(ctx)
	if err != nil {
		h.Logger.WithError(err).Error("find all users failed")
		c.JSON(statusFor(err), response.ErrMessage(err.Error()))
		return
	}

	if h.RDB != nil {
		if err := helpers.RedisSetJSON(ctx, h.RDB, userListCacheKey, users, h.Cfg.UserListTTL); err != nil {
			h.Logger.WithError(err).Warn("user list cache write failed")
		}
	}
	c.JSON(http.StatusOK, users)
}

// GET /api/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	uc := &application.GetUserDetails{Repo: h.Repo}
	user, err := uc.Execute(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		c.JSON(statusFor(err), response.ErrMessage(err.Error()))
		return
	}
	c.JSON(http.StatusOK, user)
}

// PUT /api/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrMessage("invalid payload"))
		return
	}

	uc := &application.UpdateUser{Repo: h.Repo, Hasher: h.Hasher}
	user, err := uc.Execute(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.UpdateUserInput{
		Name: req.Name, Email: req.Email, Password: req.Password, ProfileImage: req.ProfileImage,
	})
	if err != nil {
		h.Logger.WithError(err).Error("update user failed")
		c.JSON(statusFor(err), response.ErrMessage(err.Error()))
		return
	}
	h.dropUserListCache(c)
	c.JSON(http.StatusOK, user)
}

// GET|POST /api/users/validate-email?token=...
func (h *UserHandler) ValidateEmail(c *gin.Context) {
	uc := &application.ValidateEmail{Repo: h.Repo}
	user, err := uc.Execute(c.Request.Context(), c.Query("token"))
	if err != nil {
		c.JSON(statusFor(err), response.ErrMessage(err.Error()))
		return
	}
	h.dropUserListCache(c)
	c.JSON(http.StatusOK, response.MessageBody{Message: "Email validated successfully", User: user})
}

// POST /api/users/disable/:id
func (h *UserHandler) Disable(c *gin.Context) {
	uc := &application.DisableUser{Repo: h.Repo}
	user, err := uc.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", c.Param("id")).Warn("disable user failed")
		c.JSON(statusFor(err), response.ErrMessage(err.Error()))
		return
	}
	h.dropUserListCache(c)
	c.JSON(http.StatusOK, user)
}

// POST /api/users/me/profile-image
func (h *UserHandler) UploadProfileImage(c *gin.Context) {
	file, err := c.FormFile("profileImage")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Err("no file uploaded"))
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Err("no file uploaded"))
		return
	}
	defer func() { _ = src.Close() }()

	path, err := h.Files.Save(c.Request.Context(), file.Filename, file.Header.Get("Content-Type"), src)
	if err != nil {
		h.Logger.WithError(err).Error("profile image store failed")
		c.JSON(http.StatusInternalServerError, response.ErrMessage("failed to store file"))
		return
	}

	uc := &application.UploadProfileImage{Repo: h.Repo}
	user, err := uc.Execute(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), path)
	if err != nil {
		c.JSON(statusFor(err), response.ErrMessage(err.Error()))
		return
	}
	h.dropUserListCache(c)
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) dropUserListCache(c *gin.Context) {
	if h.RDB == nil {
		return
	}
	if err := helpers.RedisDel(c.Request.Context(), h.RDB, userListCacheKey); err != nil {
		h.Logger.WithError(err).Warn("user list cache invalidation failed")
	}
}
