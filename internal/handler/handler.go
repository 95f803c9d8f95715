package handler

import (
	"reflect"
	"strings"

	"github.com/gestor-empleados/frontend/internal/config"
	"github.com/gestor-empleados/frontend/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"
)

// Handler 实现客户端所依赖的 REST API，用于本地开发和集成测试
type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	repository repository.Repository
	translator ut.Translator

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo repository.Repository) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	es := es.New()
	uni := ut.New(es, es)
	trans, _ := uni.GetTranslator("es")
	if err := es_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	// 错误详情以请求体中的字段名为键
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &Handler{
		validate:   validate,
		config:     cfg,
		repository: repo,
		translator: trans,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.requestID)
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/api", func(r chi.Router) {
		// 认证相关
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Login)
			r.Post("/register", h.Register)
			r.Post("/logout", h.Logout)
			r.With(h.auth).Get("/me", h.GetMe)
		})

		// 以下 API 必须要在登录后才允许调用
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.GetAllEmployees)
				r.Post("/", h.CreateEmployee)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.GetEmployee)
					r.Put("/", h.UpdateEmployee)
					r.Delete("/", h.DeleteEmployee)
				})
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", h.GetAllDepartments)
				r.Post("/", h.CreateDepartment)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.GetDepartment)
					r.Put("/", h.UpdateDepartment)
					r.Delete("/", h.DeleteDepartment)
				})
			})

			r.Route("/positions", func(r chi.Router) {
				r.Get("/", h.GetAllPositions)
				r.Post("/", h.CreatePosition)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.GetPosition)
					r.Put("/", h.UpdatePosition)
					r.Delete("/", h.DeletePosition)
				})
			})
		})
	})
}
