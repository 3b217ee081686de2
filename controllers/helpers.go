package controllers

import (
	"strconv"

	restful "github.com/emicklei/go-restful/v3"

	"github.com/Pranesh1009/BNConnect/apperrors"
	"github.com/Pranesh1009/BNConnect/auth"
	"github.com/Pranesh1009/BNConnect/models"
)

// pathID parses a numeric path parameter.
func pathID(req *restful.Request, name string) (uint, error) {
	raw := req.PathParameter(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperrors.Invalid("Invalid " + name + " format")
	}
	return uint(id), nil
}

// requestingUser returns the user resolved by the auth filter. Routes behind
// the filter always have one; its absence is an authentication failure.
func requestingUser(req *restful.Request) (*models.User, error) {
	user, ok := auth.CurrentUser(req)
	if !ok {
		return nil, apperrors.Unauthorized("Authentication required")
	}
	return user, nil
}
