package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/apper-canvas/taskflow/internal/logger"
	"github.com/apper-canvas/taskflow/internal/model"
	"github.com/apper-canvas/taskflow/internal/recordapi"
	"github.com/apper-canvas/taskflow/internal/store"
	"github.com/labstack/echo/v4"
)

// respond writes v inside a successful envelope
func respond(c echo.Context, status int, v any) error {
	env, err := recordapi.OK(v)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(status, env)
}

// fail maps a store or validation error onto a status and envelope
func fail(c echo.Context, err error) error {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, recordapi.Fail(verr.Error(), fieldError(verr)))
	case store.IsNotFound(err):
		return c.JSON(http.StatusNotFound, recordapi.Fail(err.Error()))
	default:
		logger.Error("Store request failed",
			logger.F("method", c.Request().Method),
			logger.F("path", c.Path()),
			logger.Err(err))
		return c.JSON(http.StatusInternalServerError, recordapi.Fail(err.Error()))
	}
}

func fieldError(verr *model.ValidationError) recordapi.FieldError {
	return recordapi.FieldError{FieldLabel: verr.Field, Message: verr.Message}
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, recordapi.Fail(msg))
}

// createEach decodes each record of a create request and reports a result
// per record. The envelope is successful when every record was created.
func createEach[D any, R any](c echo.Context, create func(D) (R, error)) error {
	var req recordapi.CreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if len(req.Records) == 0 {
		return badRequest(c, "no records")
	}

	env := recordapi.Envelope{Success: true, Results: make([]recordapi.Result, 0, len(req.Records))}
	for _, raw := range req.Records {
		var draft D
		if err := json.Unmarshal(raw, &draft); err != nil {
			env.Success = false
			env.Results = append(env.Results, recordapi.Result{Message: "invalid record"})
			continue
		}

		created, err := create(draft)
		if err != nil {
			env.Success = false
			res := recordapi.Result{Message: err.Error()}
			var verr *model.ValidationError
			if errors.As(err, &verr) {
				res.Errors = []recordapi.FieldError{fieldError(verr)}
			} else {
				logger.Error("Create record failed", logger.F("path", c.Path()), logger.Err(err))
			}
			env.Results = append(env.Results, res)
			continue
		}

		data, err := json.Marshal(created)
		if err != nil {
			return fail(c, err)
		}
		env.Results = append(env.Results, recordapi.Result{Success: true, Data: data})
	}

	if !env.Success {
		env.Message = "some records were not created"
	}
	return c.JSON(http.StatusOK, env)
}

func (s *Server) handleListTasks(c echo.Context) error {
	tasks, err := s.store.ListTasks(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, tasks)
}

func (s *Server) handleGetTask(c echo.Context) error {
	task, err := s.store.GetTask(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, task)
}

func (s *Server) handleCreateTasks(c echo.Context) error {
	ctx := c.Request().Context()
	return createEach(c, func(d model.TaskDraft) (model.Task, error) {
		return s.store.CreateTask(ctx, d)
	})
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	var patch model.TaskPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "invalid request body")
	}
	task, err := s.store.UpdateTask(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	if _, err := s.store.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, recordapi.Envelope{Success: true})
}

func (s *Server) handleListCategories(c echo.Context) error {
	categories, err := s.store.ListCategories(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, categories)
}

func (s *Server) handleGetCategory(c echo.Context) error {
	category, err := s.store.GetCategory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, category)
}

func (s *Server) handleCreateCategories(c echo.Context) error {
	ctx := c.Request().Context()
	return createEach(c, func(d model.CategoryDraft) (model.Category, error) {
		return s.store.CreateCategory(ctx, d)
	})
}

func (s *Server) handleUpdateCategory(c echo.Context) error {
	var patch model.CategoryPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(c, "invalid request body")
	}
	category, err := s.store.UpdateCategory(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, category)
}

func (s *Server) handleDeleteCategory(c echo.Context) error {
	if _, err := s.store.DeleteCategory(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, recordapi.Envelope{Success: true})
}
