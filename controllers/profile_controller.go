package controllers

import (
	"net/http"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"

	"github.com/Pranesh1009/BNConnect/apperrors"
	"github.com/Pranesh1009/BNConnect/auth"
	"github.com/Pranesh1009/BNConnect/models"
	"github.com/Pranesh1009/BNConnect/response"
	"github.com/Pranesh1009/BNConnect/services"
)

// ProfileController exposes the caller's one-to-one profile.
type ProfileController struct {
	profileService services.ProfileService
	authenticator  *auth.Authenticator
}

// NewProfileController creates a ProfileController instance.
func NewProfileController(profileService services.ProfileService, authenticator *auth.Authenticator) *ProfileController {
	return &ProfileController{profileService: profileService, authenticator: authenticator}
}

// WebService builds the /api/profile service. Every route is authenticated
// and acts on the caller's own profile.
func (ctl *ProfileController) WebService() *restful.WebService {
	ws := new(restful.WebService)
	ws.Path("/api/profile").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)
	ws.Filter(ctl.authenticator.Filter())

	ws.Route(ws.POST("").To(ctl.create).
		Doc("Create the caller's profile").
		Metadata(restfulspec.KeyOpenAPITags, []string{"profile"}).
		Reads(services.ProfileInput{}).
		Returns(http.StatusCreated, "Profile created", models.Profile{}).
		Returns(http.StatusBadRequest, "Profile already exists", nil))

	ws.Route(ws.GET("").To(ctl.get).
		Doc("Get the caller's profile").
		Metadata(restfulspec.KeyOpenAPITags, []string{"profile"}).
		Returns(http.StatusOK, "Profile found", models.Profile{}).
		Returns(http.StatusNotFound, "Profile not found", nil))

	ws.Route(ws.PUT("").To(ctl.update).
		Doc("Update the caller's profile").
		Metadata(restfulspec.KeyOpenAPITags, []string{"profile"}).
		Reads(services.UpdateProfileInput{}).
		Returns(http.StatusOK, "Profile updated", models.Profile{}).
		Returns(http.StatusNotFound, "Profile not found", nil))

	ws.Route(ws.DELETE("").To(ctl.delete).
		Doc("Delete the caller's profile").
		Metadata(restfulspec.KeyOpenAPITags, []string{"profile"}).
		Returns(http.StatusOK, "Profile deleted", nil).
		Returns(http.StatusNotFound, "Profile not found", nil))

	return ws
}

func (ctl *ProfileController) create(req *restful.Request, resp *restful.Response) {
	requester, err := requestingUser(req)
	if err != nil {
		response.WriteError(resp, err)
		return
	}

	input := new(services.ProfileInput)
	if err := req.ReadEntity(input); err != nil {
		response.WriteError(resp, apperrors.Invalid("Invalid request body"))
		return
	}

	profile, err := ctl.profileService.Create(requester.ID, input)
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	response.WriteCreated(resp, profile, "Profile created successfully")
}

func (ctl *ProfileController) get(req *restful.Request, resp *restful.Response) {
	requester, err := requestingUser(req)
	if err != nil {
		response.WriteError(resp, err)
		return
	}

	profile, err := ctl.profileService.Get(requester.ID)
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	response.WriteOK(resp, profile, "Profile retrieved successfully")
}

func (ctl *ProfileController) update(req *restful.Request, resp *restful.Response) {
	requester, err := requestingUser(req)
	if err != nil {
		response.WriteError(resp, err)
		return
	}

	input := new(services.UpdateProfileInput)
	if err := req.ReadEntity(input); err != nil {
		response.WriteError(resp, apperrors.Invalid("Invalid request body"))
		return
	}

	profile, err := ctl.profileService.Update(requester.ID, input)
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	response.WriteOK(resp, profile, "Profile updated successfully")
}

func (ctl *ProfileController) delete(req *restful.Request, resp *restful.Response) {
	requester, err := requestingUser(req)
	if err != nil {
		response.WriteError(resp, err)
		return
	}

	if err := ctl.profileService.Delete(requester.ID); err != nil {
		response.WriteError(resp, err)
		return
	}
	response.WriteOK(resp, nil, "Profile deleted successfully")
}
