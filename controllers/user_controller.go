package controllers

import (
	"net/http"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"

	"github.com/Pranesh1009/BNConnect/apperrors"
	"github.com/Pranesh1009/BNConnect/auth"
	"github.com/Pranesh1009/BNConnect/pagination"
	"github.com/Pranesh1009/BNConnect/response"
	"github.com/Pranesh1009/BNConnect/services"
)

// UserController exposes user administration endpoints.
type UserController struct {
	userService   services.UserService
	authenticator *auth.Authenticator
}

// NewUserController creates a UserController instance.
func NewUserController(userService services.UserService, authenticator *auth.Authenticator) *UserController {
	return &UserController{userService: userService, authenticator: authenticator}
}

// WebService builds the /api/users service. Every route is authenticated.
func (ctl *UserController) WebService() *restful.WebService {
	ws := new(restful.WebService)
	ws.Path("/api/users").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)
	ws.Filter(ctl.authenticator.Filter())

	ws.Route(ws.GET("").To(ctl.list).
		Doc("List users with pagination and search").
		Param(ws.QueryParameter("page", "Page number, -1 returns everything").DataType("integer").DefaultValue("1")).
		Param(ws.QueryParameter("limit", "Rows per page").DataType("integer").DefaultValue("10")).
		Param(ws.QueryParameter("search", "Case-insensitive match over name and email").DataType("string")).
		Param(ws.QueryParameter("sortBy", "Sort column").DataType("string")).
		Param(ws.QueryParameter("sortOrder", "asc or desc").DataType("string")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"users"}).
		Returns(http.StatusOK, "Users listed", pagination.Result[*services.UserResponse]{}).
		Returns(http.StatusUnauthorized, "Unauthorized", nil).
		Returns(http.StatusForbidden, "Forbidden", nil))

	ws.Route(ws.GET("/{user-id}").To(ctl.get).
		Doc("Get user by ID").
		Param(ws.PathParameter("user-id", "Identifier of the user").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"users"}).
		Returns(http.StatusOK, "User found", services.UserResponse{}).
		Returns(http.StatusForbidden, "Forbidden", nil).
		Returns(http.StatusNotFound, "User not found", nil))

	ws.Route(ws.PUT("/{user-id}").To(ctl.update).
		Doc("Update user by ID").
		Param(ws.PathParameter("user-id", "Identifier of the user to update").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"users"}).
		Reads(services.UpdateUserInput{}).
		Returns(http.StatusOK, "User updated", services.UserResponse{}).
		Returns(http.StatusBadRequest, "Invalid body or email conflict", nil).
		Returns(http.StatusForbidden, "Forbidden", nil).
		Returns(http.StatusNotFound, "User not found", nil))

	ws.Route(ws.DELETE("/{user-id}").To(ctl.delete).
		Doc("Delete user by ID").
		Param(ws.PathParameter("user-id", "Identifier of the user to delete").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"users"}).
		Returns(http.StatusOK, "User deleted", nil).
		Returns(http.StatusForbidden, "Forbidden", nil).
		Returns(http.StatusNotFound, "User not found", nil))

	ws.Route(ws.POST("/chapter").To(ctl.enroll).
		Doc("Create a user with generated credentials and enroll them in a chapter").
		Metadata(restfulspec.KeyOpenAPITags, []string{"users"}).
		Reads(services.EnrollUserInput{}).
		Returns(http.StatusCreated, "User created and enrolled", services.UserResponse{}).
		Returns(http.StatusBadRequest, "Invalid body or email already registered", nil).
		Returns(http.StatusForbidden, "Forbidden", nil).
		Returns(http.StatusNotFound, "Chapter not found", nil))

	return ws
}

func (ctl *UserController) list(req *restful.Request, resp *restful.Response) {
	requester, err := requestingUser(req)
	if err != nil {
		response.WriteError(resp, err)
		return
	}

	result, err := ctl.userService.List(requester.ID, pagination.FromRequest(req))
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	response.WriteOK(resp, result, "Users retrieved successfully")
}

func (ctl *UserController) get(req *restful.Request, resp *restful.Response) {
	requester, err := requestingUser(req)
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	targetID, err := pathID(req, "user-id")
	if err != nil {
		response.WriteError(resp, err)
		return
	}

	user, err := ctl.userService.Get(targetID, requester.ID)
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	response.WriteOK(resp, user, "User retrieved successfully")
}

func (ctl *UserController) update(req *restful.Request, resp *restful.Response) {
	requester, err := requestingUser(req)
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	targetID, err := pathID(req, "user-id")
	if err != nil {
		response.WriteError(resp, err)
		return
	}

	input := new(services.UpdateUserInput)
	if err := req.ReadEntity(input); err != nil {
		response.WriteError(resp, apperrors.Invalid("Invalid request body"))
		return
	}

	user, err := ctl.userService.Update(targetID, requester.ID, input)
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	response.WriteOK(resp, user, "User updated successfully")
}

func (ctl *UserController) delete(req *restful.Request, resp *restful.Response) {
	requester, err := requestingUser(req)
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	targetID, err := pathID(req, "user-id")
	if err != nil {
		response.WriteError(resp, err)
		return
	}

	if err := ctl.userService.Delete(targetID, requester.ID); err != nil {
		response.WriteError(resp, err)
		return
	}
	response.WriteOK(resp, nil, "User deleted successfully")
}

func (ctl *UserController) enroll(req *restful.Request, resp *restful.Response) {
	requester, err := requestingUser(req)
	if err != nil {
		response.WriteError(resp, err)
		return
	}

	input := new(services.EnrollUserInput)
	if err := req.ReadEntity(input); err != nil {
		response.WriteError(resp, apperrors.Invalid("Invalid request body"))
		return
	}

	user, err := ctl.userService.EnrollInChapter(requester.ID, input)
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	response.WriteCreated(resp, user, "User created and enrolled successfully")
}
