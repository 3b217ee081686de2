package controllers

import (
	"net/http"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"

	"github.com/Pranesh1009/BNConnect/apperrors"
	"github.com/Pranesh1009/BNConnect/auth"
	"github.com/Pranesh1009/BNConnect/models"
	"github.com/Pranesh1009/BNConnect/pagination"
	"github.com/Pranesh1009/BNConnect/response"
	"github.com/Pranesh1009/BNConnect/services"
)

// ItemController exposes the caller's own items.
type ItemController struct {
	itemService   services.ItemService
	authenticator *auth.Authenticator
}

// NewItemController creates an ItemController instance.
func NewItemController(itemService services.ItemService, authenticator *auth.Authenticator) *ItemController {
	return &ItemController{itemService: itemService, authenticator: authenticator}
}

// WebService builds the /api/items service. Every route is authenticated.
func (ctl *ItemController) WebService() *restful.WebService {
	ws := new(restful.WebService)
	ws.Path("/api/items").Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)
	ws.Filter(ctl.authenticator.Filter())

	ws.Route(ws.POST("").To(ctl.create).
		Doc("Create an item owned by the caller").
		Metadata(restfulspec.KeyOpenAPITags, []string{"items"}).
		Reads(services.ItemInput{}).
		Returns(http.StatusCreated, "Item created", models.Item{}).
		Returns(http.StatusBadRequest, "Invalid request body", nil))

	ws.Route(ws.GET("").To(ctl.list).
		Doc("List the caller's items").
		Param(ws.QueryParameter("page", "Page number, -1 returns everything").DataType("integer").DefaultValue("1")).
		Param(ws.QueryParameter("limit", "Rows per page").DataType("integer").DefaultValue("10")).
		Param(ws.QueryParameter("search", "Case-insensitive match over name and description").DataType("string")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"items"}).
		Returns(http.StatusOK, "Items listed", pagination.Result[models.Item]{}))

	ws.Route(ws.GET("/{item-id}").To(ctl.get).
		Doc("Get one of the caller's items").
		Param(ws.PathParameter("item-id", "Identifier of the item").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"items"}).
		Returns(http.StatusOK, "Item found", models.Item{}).
		Returns(http.StatusNotFound, "Item not found", nil))

	ws.Route(ws.PUT("/{item-id}").To(ctl.update).
		Doc("Update one of the caller's items").
		Param(ws.PathParameter("item-id", "Identifier of the item to update").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"items"}).
		Reads(services.UpdateItemInput{}).
		Returns(http.StatusOK, "Item updated", models.Item{}).
		Returns(http.StatusNotFound, "Item not found", nil))

	ws.Route(ws.DELETE("/{item-id}").To(ctl.delete).
		Doc("Delete one of the caller's items").
		Param(ws.PathParameter("item-id", "Identifier of the item to delete").DataType("integer")).
		Metadata(restfulspec.KeyOpenAPITags, []string{"items"}).
		Returns(http.StatusOK, "Item deleted", nil).
		Returns(http.StatusNotFound, "Item not found", nil))

	return ws
}

func (ctl *ItemController) create(req *restful.Request, resp *restful.Response) {
	requester, err := requestingUser(req)
	if err != nil {
		response.WriteError(resp, err)
		return
	}

	input := new(services.ItemInput)
	if err := req.ReadEntity(input); err != nil {
		response.WriteError(resp, apperrors.Invalid("Invalid request body"))
		return
	}

	item, err := ctl.itemService.Create(requester.ID, input)
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	response.WriteCreated(resp, item, "Item created successfully")
}

func (ctl *ItemController) list(req *restful.Request, resp *restful.Response) {
	requester, err := requestingUser(req)
	if err != nil {
		response.WriteError(resp, err)
		return
	}

	result, err := ctl.itemService.List(requester.ID, pagination.FromRequest(req))
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	response.WriteOK(resp, result, "Items retrieved successfully")
}

func (ctl *ItemController) get(req *restful.Request, resp *restful.Response) {
	requester, err := requestingUser(req)
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	id, err := pathID(req, "item-id")
	if err != nil {
		response.WriteError(resp, err)
		return
	}

	item, err := ctl.itemService.Get(id, requester.ID)
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	response.WriteOK(resp, item, "Item retrieved successfully")
}

func (ctl *ItemController) update(req *restful.Request, resp *restful.Response) {
	requester, err := requestingUser(req)
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	id, err := pathID(req, "item-id")
	if err != nil {
		response.WriteError(resp, err)
		return
	}

	input := new(services.UpdateItemInput)
	if err := req.ReadEntity(input); err != nil {
		response.WriteError(resp, apperrors.Invalid("Invalid request body"))
		return
	}

	item, err := ctl.itemService.Update(id, requester.ID, input)
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	response.WriteOK(resp, item, "Item updated successfully")
}

func (ctl *ItemController) delete(req *restful.Request, resp *restful.Response) {
	requester, err := requestingUser(req)
	if err != nil {
		response.WriteError(resp, err)
		return
	}
	id, err := pathID(req, "item-id")
	if err != nil {
		response.WriteError(resp, err)
		return
	}

	if err := ctl.itemService.Delete(id, requester.ID); err != nil {
		response.WriteError(resp, err)
		return
	}
	response.WriteOK(resp, nil, "Item deleted successfully")
}
