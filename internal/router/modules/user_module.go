package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/accountd/accountd/internal/interface/http"
	"github.com/accountd/accountd/internal/interface/middleware"
)

// UserModule wires the account routes.
//
// Public:    POST /api/users/signup, POST /api/users/signin,
//            GET /api/users/, GET|POST /api/users/validate-email
// Protected: GET|PUT /api/users/me, POST /api/users/disable/:id,
//            POST /api/users/me/profile-image
type UserModule struct {
	Handler  *handlers.UserHandler
	Verifier middleware.TokenVerifier
}

func NewUserModule(h *handlers.UserHandler, verifier middleware.TokenVerifier) *UserModule {
	return &UserModule{Handler: h, Verifier: verifier}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")

	users.POST("/signup", m.Handler.SignUp)
	users.POST("/signin", m.Handler.SignIn)
	users.GET("/", m.Handler.FindAll)
	// GET serves the link embedded in the validation email
	users.GET("/validate-email", m.Handler.ValidateEmail)
	users.POST("/validate-email", m.Handler.ValidateEmail)

	auth := users.Group("/")
	auth.Use(middleware.BearerAuth(m.Verifier))
	{
		auth.GET("/me", m.Handler.GetMe)
		auth.PUT("/me", m.Handler.UpdateMe)
		auth.POST("/disable/:id", m.Handler.Disable)
		auth.POST("/me/profile-image", m.Handler.UploadProfileImage)
	}
}
