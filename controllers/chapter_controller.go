package controllers

import (
	"net/http"
	"strconv"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"

	"github.com/Pranesh1009/BNConnect/apperrors"
	"github.com/Pranesh1009/BNConnect/auth"
	"github.com/Pranesh1009/BNConnect/models"
	"github.com/Pranesh1009/BNConnect/pagination"
	"github.com/Pranesh1009/BNConnect/response"
	"github.com/Pranesh1009/BNConnect/services"
)

// ChapterController exposes chapter CRUD, membership and geographic lookups.
type ChapterController struct {
	chapterService services.ChapterService
	authenticator  *auth.Authenticator
}

// NewChapterController creates a ChapterController instance.
func NewChapterController(chapterService services.ChapterService, authenticator *auth.Authenticator) *ChapterController {
	return &ChapterController{chapterService: chapterService, authenticator: authenticator}
}

// WebService builds the /api/chapters service. Every route is authenticated.
// The static /states and /cities routes are registered before /{chapter-id}
// so they are not swallowed by the path parameter.
func (ctl *ChapterController) WebService() *restful.WebService {
	ws := new(restful.WebService)
	ws.Path("/api/chapters").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)
	ws.Filter(ctl.authenticator.Filter())

	ws.Route(ws.GET("/states").To(ctl.states).
		Doc("List states with optional search").
		Param(ws.QueryParameter("search", "Case-insensitive match over name and code").DataType("string")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"geo"}).
		Returns(http.StatusOK, "States listed", pagination.Result[models.State]{}))

	ws.Route(ws.GET("/cities").To(ctl.cities).
		Doc("List a state's cities with optional search").
		Param(ws.QueryParameter("stateId", "State identifier, required").DataType("integer")).
		Param(ws.QueryParameter("search", "Case-insensitive match over name").DataType("string")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"geo"}).
		Returns(http.StatusOK, "Cities listed", pagination.Result[models.City]{}).
		Returns(http.StatusBadRequest, "State ID is required", nil))

	ws.Route(ws.POST("").To(ctl.create).
		Doc("Create a chapter").
		Metadata(restfulspec.KeyOpenAPITags, []string{"chapters"}).
		Reads(services.ChapterInput{}).
		Returns(http.StatusCreated, "Chapter created", services.ChapterResponse{}).
		Returns(http.StatusForbidden, "Only super admin can create chapters", nil).
		Returns(http.StatusNotFound, "Referenced user not found", nil))

	ws.Route(ws.GET("").To(ctl.list).
		Doc("List chapters with pagination and search").
		Param(ws.QueryParameter("page", "Page number, -1 returns everything").DataType("integer").DefaultValue("1")).
		Param(ws.QueryParameter("limit", "Rows per page").DataType("integer").DefaultValue("10")).
		Param(ws.QueryParameter("search", "Case-insensitive match over title and description").DataType("string")).
		Param(ws.QueryParameter("sortBy", "Sort column").DataType("string")).
		Param(ws.QueryParameter("sortOrder", "asc or desc").DataType("string")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"chapters"}).
		Returns(http.StatusOK, "Chapters listed", pagination.Result[*services.ChapterResponse]{}))

	ws.Route(ws.GET("/{chapter-id}").To(ctl.get).
		Doc("Get chapter by ID").
		Param(ws.PathParameter("chapter-id", "Identifier of the chapter").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"chapters"}).
		Returns(http.StatusOK, "Chapter found", services.ChapterResponse{}).
		Returns(http.StatusNotFound, "Chapter not found", nil))

	ws.Route(ws.PUT("/{chapter-id}").To(ctl.update).
		Doc("Update chapter by ID").
		Param(ws.PathParameter("chapter-id", "Identifier of the chapter to update").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"chapters"}).
		Reads(services.ChapterInput{}).
		Returns(http.StatusOK, "Chapter updated", services.ChapterResponse{}).
		Returns(http.StatusForbidden, "Only the owning user may update", nil).
		Returns(http.StatusNotFound, "Chapter not found", nil))

	ws.Route(ws.DELETE("/{chapter-id}").To(ctl.delete).
		Doc("Delete chapter by ID").
		Param(ws.PathParameter("chapter-id", "Identifier of the chapter to delete").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"chapters"}).
		Returns(http.StatusOK, "Chapter deleted", nil).
		Returns(http.StatusForbidden, "Only the owning user may delete", nil).
		Returns(http.StatusNotFound, "Chapter not found", nil))

	ws.Route(ws.POST("/{chapter-id}/members").To(ctl.addMember).
		Doc("Append a membership record for an existing user").
		Param(ws.PathParameter("chapter-id", "Identifier of the chapter").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"chapters"}).
		Reads(services.AddMemberInput{}).
		Returns(http.StatusCreated, "Member added", models.ChapterMember{}).
		Returns(http.StatusForbidden, "Forbidden", nil).
		Returns(http.StatusNotFound, "Chapter or user not found", nil))

	return ws
}

func (ctl *ChapterController) create(req *restful.Request, resp *restful.Response) {
	requester, err := requestingUser(req)
	if err != nil {
		response.WriteError(resp, err)
		return
	}

	input := new(services.ChapterInput)
	if err := req.ReadEntity(input); err != nil {
		response.WriteError(resp, apperrors.Invalid("Invalid request body"))
		return
	}

	chapter, err := ctl.chapterService.Create(requester.ID, input)
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	response.WriteCreated(resp, chapter, "Chapter created successfully")
}

func (ctl *ChapterController) list(req *restful.Request, resp *restful.Response) {
	result, err := ctl.chapterService.List(pagination.FromRequest(req))
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	response.WriteOK(resp, result, "Chapters retrieved successfully")
}

func (ctl *ChapterController) get(req *restful.Request, resp *restful.Response) {
	id, err := pathID(req, "chapter-id")
	if err != nil {
		response.WriteError(resp, err)
		return
	}

	chapter, err := ctl.chapterService.Get(id)
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	response.WriteOK(resp, chapter, "Chapter retrieved successfully")
}

func (ctl *ChapterController) update(req *restful.Request, resp *restful.Response) {
	requester, err := requestingUser(req)
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	id, err := pathID(req, "chapter-id")
	if err != nil {
		response.WriteError(resp, err)
		return
	}

	input := new(services.ChapterInput)
	if err := req.ReadEntity(input); err != nil {
		response.WriteError(resp, apperrors.Invalid("Invalid request body"))
		return
	}

	chapter, err := ctl.chapterService.Update(id, requester.ID, input)
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	response.WriteOK(resp, chapter, "Chapter updated successfully")
}

func (ctl *ChapterController) delete(req *restful.Request, resp *restful.Response) {
	requester, err := requestingUser(req)
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	id, err := pathID(req, "chapter-id")
	if err != nil {
		response.WriteError(resp, err)
		return
	}

	if err := ctl.chapterService.Delete(id, requester.ID); err != nil {
		response.WriteError(resp, err)
		return
	}
	response.WriteOK(resp, nil, "Chapter deleted successfully")
}

func (ctl *ChapterController) addMember(req *restful.Request, resp *restful.Response) {
	requester, err := requestingUser(req)
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	id, err := pathID(req, "chapter-id")
	if err != nil {
		response.WriteError(resp, err)
		return
	}

	input := new(services.AddMemberInput)
	if err := req.ReadEntity(input); err != nil {
		response.WriteError(resp, apperrors.Invalid("Invalid request body"))
		return
	}

	member, err := ctl.chapterService.AddMember(id, requester.ID, input)
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	response.WriteCreated(resp, member, "Chapter member added successfully")
}

func (ctl *ChapterController) states(req *restful.Request, resp *restful.Response) {
	result, err := ctl.chapterService.States(pagination.FromRequest(req))
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	response.WriteOK(resp, result, "States retrieved successfully")
}

func (ctl *ChapterController) cities(req *restful.Request, resp *restful.Response) {
	stateID, err := strconv.ParseUint(req.QueryParameter("stateId"), 10, 32)
	if err != nil {
		response.WriteError(resp, apperrors.Invalid("State ID is required"))
		return
	}

	result, err := ctl.chapterService.Cities(uint(stateID), pagination.FromRequest(req))
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	response.WriteOK(resp, result, "Cities retrieved successfully")
}
