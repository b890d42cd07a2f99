package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/classroom"
	"github.com/darasahq/darasa/core/exam"
	"github.com/darasahq/darasa/core/user"
)

// analyticsApi exposes raw attendance and result listings for staff;
// no aggregation is computed server-side.
type analyticsApi struct {
	classSvc *classroom.Service
	examSvc  *exam.Service
}

func registerAnalyticsAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := analyticsApi{
		classSvc: deps.ClassroomSvc,
		examSvc:  deps.ExamSvc,
	}

	ag := g.Group("/analytics", jwt, roleMiddleware(user.RoleStaff))
	ag.GET("/sessions/:id/attendance", api.sessionAttendance)
	ag.GET("/tests/:id/results", api.testResults)
}

// Handlers

func (api *analyticsApi) sessionAttendance(ctx echo.Context) error {
	attendance, err := api.classSvc.Attendance(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying session attendance")
	}
	if attendance == nil {
		attendance = []classroom.Attendance{}
	}
	return ctx.JSON(http.StatusOK, attendance)
}

func (api *analyticsApi) testResults(ctx echo.Context) error {
	attempts, err := api.examSvc.TestResults(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying test results")
	}
	if attempts == nil {
		attempts = []exam.TestAttempt{}
	}
	return ctx.JSON(http.StatusOK, attempts)
}
