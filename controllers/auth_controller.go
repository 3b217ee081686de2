package controllers

import (
	"net/http"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"

	"github.com/Pranesh1009/BNConnect/apperrors"
	"github.com/Pranesh1009/BNConnect/auth"
	"github.com/Pranesh1009/BNConnect/response"
	"github.com/Pranesh1009/BNConnect/services"
)

// AuthController exposes registration, login and logout.
type AuthController struct {
	authService   services.AuthService
	authenticator *auth.Authenticator
}

// NewAuthController creates an AuthController instance.
func NewAuthController(authService services.AuthService, authenticator *auth.Authenticator) *AuthController {
	return &AuthController{authService: authService, authenticator: authenticator}
}

// WebService builds the /api/auth service.
func (ctl *AuthController) WebService() *restful.WebService {
	ws := new(restful.WebService)
	ws.Path("/api/auth").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)

	// Registration is public, but an authenticated caller is recognized so
	// the SUPER_ADMIN grant rule can see who is asking.
	ws.Route(ws.POST("/register").Filter(ctl.authenticator.OptionalFilter()).To(ctl.register).
		Doc("Register a new user").
		Metadata(restfulspec.KeyOpenAPITags, []string{"auth"}).
		Reads(services.RegisterInput{}).
		Returns(http.StatusCreated, "User created successfully", services.UserResponse{}).
		Returns(http.StatusBadRequest, "Invalid request body or email already registered", nil).
		Returns(http.StatusForbidden, "Insufficient privilege for requested roles", nil))

	ws.Route(ws.POST("/login").To(ctl.login).
		Doc("Authenticate and obtain a bearer token").
		Metadata(restfulspec.KeyOpenAPITags, []string{"auth"}).
		Reads(services.LoginInput{}).
		Returns(http.StatusOK, "Logged in", services.LoginResult{}).
		Returns(http.StatusUnauthorized, "Invalid credentials", nil))

	ws.Route(ws.POST("/logout").Filter(ctl.authenticator.Filter()).To(ctl.logout).
		Doc("Revoke the presented bearer token").
		Metadata(restfulspec.KeyOpenAPITags, []string{"auth"}).
		Returns(http.StatusOK, "Logged out", nil).
		Returns(http.StatusUnauthorized, "Unauthorized", nil))

	return ws
}

func (ctl *AuthController) register(req *restful.Request, resp *restful.Response) {
	input := new(services.RegisterInput)
	if err := req.ReadEntity(input); err != nil {
		response.WriteError(resp, apperrors.Invalid("Invalid request body"))
		return
	}

	requester, _ := auth.CurrentUser(req)
	user, err := ctl.authService.Register(input, requester)
	if err != nil {
		response.WriteError(resp, err)
		return
	}

	response.WriteCreated(resp, user, "User registered successfully")
}

func (ctl *AuthController) login(req *restful.Request, resp *restful.Response) {
	input := new(services.LoginInput)
	if err := req.ReadEntity(input); err != nil {
		response.WriteError(resp, apperrors.Invalid("Invalid request body"))
		return
	}

	result, err := ctl.authService.Login(input)
	if err != nil {
		response.WriteError(resp, err)
		return
	}

	response.WriteOK(resp, result, "Logged in successfully")
}

func (ctl *AuthController) logout(req *restful.Request, resp *restful.Response) {
	token, ok := auth.CurrentToken(req)
	if !ok {
		response.WriteError(resp, apperrors.Unauthorized("No token provided"))
		return
	}

	if err := ctl.authService.Logout(token); err != nil {
		response.WriteError(resp, err)
		return
	}

	response.WriteOK(resp, nil, "Logged out successfully")
}
