package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/exam"
	"github.com/darasahq/darasa/core/user"
)

var (
	errMissingStudentID = "the student_id query parameter is required"
	errUnknownStudent   = "no student found with this id"
)

type examApi struct {
	svc      *exam.Service
	usrSvc   *user.Service
	validate *validator.Validate
}

func registerExamAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := examApi{
		svc:      deps.ExamSvc,
		usrSvc:   deps.UserSvc,
		validate: deps.Validate,
	}

	tg := g.Group("/tests", jwt)
	tg.POST("", api.createClassroom, roleMiddleware(user.RoleTeacher))
	tg.GET("/:id/questions", api.questions, roleMiddleware(user.RoleTeacher))
	tg.POST("/:id/grade", api.grade, roleMiddleware(user.RoleTeacher))
	tg.GET("/available", api.queryAvailable, roleMiddleware(user.RoleStudent))
	tg.POST("/:id/attempt", api.attempt, roleMiddleware(user.RoleStudent))

	g.POST("/custom-tests", api.createCustom, jwt, roleMiddleware(user.RoleStudent))

	rg := g.Group("/results", jwt, roleMiddleware(user.RoleStudent))
	rg.GET("", api.results)
	rg.GET("/tests/:id", api.result)
}

// Teacher handlers

func (api *examApi) createClassroom(ctx echo.Context) error {
	var data exam.NewTest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	test, err := api.svc.CreateClassroom(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "creating classroom test")
	}

	return ctx.JSON(http.StatusCreated, test)
}

func (api *examApi) questions(ctx echo.Context) error {
	questions, err := api.svc.Questions(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == exam.ErrTestNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "querying test questions")
	}
	if questions == nil {
		questions = []exam.Question{}
	}
	return ctx.JSON(http.StatusOK, questions)
}

func (api *examApi) grade(ctx echo.Context) error {
	studentID := ctx.QueryParam("student_id")
	if studentID == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "student_id", Error: errMissingStudentID})
	}
	if _, err := api.usrSvc.GetByID(ctx.Request().Context(), studentID); err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return core.NewValidationError(nil, core.FieldError{Field: "student_id", Error: errUnknownStudent})
		}
		return errors.Wrap(err, "finding student")
	}

	var data exam.Grade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Grade")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	att, err := api.svc.Grade(ctx.Request().Context(), ctx.Param("id"), studentID, data)
	if err != nil {
		return errors.Wrap(err, "submitting grading")
	}

	return ctx.JSON(http.StatusOK, att)
}

// Student handlers

func (api *examApi) queryAvailable(ctx echo.Context) error {
	tests, err := api.svc.QueryAvailable(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying available tests")
	}
	if tests == nil {
		tests = []exam.Test{}
	}
	return ctx.JSON(http.StatusOK, tests)
}

func (api *examApi) attempt(ctx echo.Context) error {
	var data exam.AttemptData
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AttemptData")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	att, err := api.svc.Attempt(ctx.Request().Context(), ctx.Param("id"), claims.Subject, data)
	if err != nil {
		if errors.Cause(err) == exam.ErrTestNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "attempting test")
	}

	return ctx.JSON(http.StatusCreated, att)
}

func (api *examApi) createCustom(ctx echo.Context) error {
	var data exam.NewTest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	test, err := api.svc.CreateCustom(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "creating custom test")
	}

	return ctx.JSON(http.StatusCreated, test)
}

func (api *examApi) result(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	att, err := api.svc.LatestResult(ctx.Request().Context(), ctx.Param("id"), claims.Subject)
	if err != nil {
		if errors.Cause(err) == exam.ErrAttemptNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "querying test result")
	}

	return ctx.JSON(http.StatusOK, att)
}

func (api *examApi) results(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	attempts, err := api.svc.Results(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying results")
	}
	if attempts == nil {
		attempts = []exam.TestAttempt{}
	}
	return ctx.JSON(http.StatusOK, attempts)
}
