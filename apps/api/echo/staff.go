package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/enquiry"
	"github.com/darasahq/darasa/core/user"
)

type staffApi struct {
	svc      *enquiry.Service
	validate *validator.Validate
}

func registerStaffAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := staffApi{
		svc:      deps.EnquirySvc,
		validate: deps.Validate,
	}

	eg := g.Group("/enquiries", jwt, roleMiddleware(user.RoleStaff))
	eg.GET("", api.query)
	eg.POST("", api.create)
	eg.PUT("/:id/schedule", api.schedule)

	bg := g.Group("/batches", jwt, roleMiddleware(user.RoleStaff))
	bg.GET("", api.queryBatches)
}

// Handlers

func (api *staffApi) query(ctx echo.Context) error {
	enquiries, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying enquiries")
	}
	if enquiries == nil {
		enquiries = []enquiry.Enquiry{}
	}
	return ctx.JSON(http.StatusOK, enquiries)
}

func (api *staffApi) create(ctx echo.Context) error {
	var data enquiry.NewEnquiry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEnquiry")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	enq, err := api.svc.Create(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "creating enquiry")
	}

	return ctx.JSON(http.StatusCreated, enq)
}

func (api *staffApi) schedule(ctx echo.Context) error {
	var data enquiry.DemoSchedule
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DemoSchedule")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	enq, err := api.svc.Schedule(ctx.Request().Context(), ctx.Param("id"), data.ScheduledDemoAt)
	if err != nil {
		if errors.Cause(err) == enquiry.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "scheduling enquiry")
	}

	return ctx.JSON(http.StatusOK, enq)
}

func (api *staffApi) queryBatches(ctx echo.Context) error {
	batches, err := api.svc.QueryBatches(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying batches")
	}
	if batches == nil {
		batches = []enquiry.Batch{}
	}
	return ctx.JSON(http.StatusOK, batches)
}
