package echoapi

import (
	"context"
	"net/http"
	"os"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/classroom"
	"github.com/darasahq/darasa/core/enquiry"
	"github.com/darasahq/darasa/core/exam"
	"github.com/darasahq/darasa/core/user"
)

type (
	ServerDeps struct {
		Logger       core.Logger
		Conf         *core.Config
		UserSvc      *user.Service
		EnquirySvc   *enquiry.Service
		ClassroomSvc *classroom.Service
		ExamSvc      *exam.Service
		Validate     *validator.Validate
		Translator   ut.Translator
	}

	Server struct {
		addr     string
		deps     ServerDeps
		app      *echo.Echo
		shutdown chan os.Signal
	}
)

func NewServer(addr string, shutdown chan os.Signal, deps ServerDeps) *Server {
	initAuth(deps.Conf)
	s := &Server{
		addr:     addr,
		deps:     deps,
		app:      echo.New(),
		shutdown: shutdown,
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerAuthAPI(v1, jwt, s.deps)
	registerStaffAPI(v1, jwt, s.deps)
	registerClassroomAPI(v1, jwt, s.deps)
	registerExamAPI(v1, jwt, s.deps)
	registerAnalyticsAPI(v1, jwt, s.deps)
}

func (s *Server) Start() error {
	return s.app.Start(s.addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

// signalShutdown signals the main goroutine to initiate a graceful shutdown.
func (s *Server) signalShutdown() {
	if s.shutdown != nil {
		s.shutdown <- syscall.SIGTERM
	}
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Darasa API!")
}
