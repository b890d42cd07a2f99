package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/classroom"
	"github.com/darasahq/darasa/core/user"
)

type classroomApi struct {
	svc      *classroom.Service
	validate *validator.Validate
}

func registerClassroomAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := classroomApi{
		svc:      deps.ClassroomSvc,
		validate: deps.Validate,
	}

	// teachers download their session notes, students read them
	cg := g.Group("/classes", jwt, roleMiddleware(user.RoleTeacher, user.RoleStudent))
	cg.GET("/:id/notes", api.sessionNotes)

	ng := g.Group("/content", jwt, roleMiddleware(user.RoleTeacher))
	ng.POST("/notes", api.uploadNote)
}

// Handlers

func (api *classroomApi) sessionNotes(ctx echo.Context) error {
	notes, err := api.svc.Notes(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying session notes")
	}
	if notes == nil {
		notes = []classroom.Note{}
	}
	return ctx.JSON(http.StatusOK, notes)
}

func (api *classroomApi) uploadNote(ctx echo.Context) error {
	var data classroom.NewNote
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNote")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	note, err := api.svc.UploadNote(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		if errors.Cause(err) == classroom.ErrSessionNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "uploading note")
	}

	return ctx.JSON(http.StatusCreated, note)
}
