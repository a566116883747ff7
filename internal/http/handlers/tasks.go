package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/geocoder89/staffhub/internal/domain/task"
	"github.com/geocoder89/staffhub/internal/repo"
	"github.com/gin-gonic/gin"
)

type TasksHandler struct {
	tasks   repo.TaskRepo
	timeout time.Duration
}

func NewTasksHandler(tasks repo.TaskRepo, timeout time.Duration) *TasksHandler {
	return &TasksHandler{tasks: tasks, timeout: timeout}
}

// GET /tasks
func (h *TasksHandler) List(ctx *gin.Context) {
	tasks, ok := run(ctx, h.timeout, "fetching tasks", h.tasks.List)
	if !ok {
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, tasks)
}

// GET /user-tasks?email=
func (h *TasksHandler) ListByEmail(ctx *gin.Context) {
	email := ctx.Query("email")
	if email == "" {
		ctx.JSON(http.StatusOK, []task.Task{})
		return
	}

	tasks, ok := run(ctx, h.timeout, "fetching tasks", func(c context.Context) ([]task.Task, error) {
		return h.tasks.ListByEmail(c, email)
	})
	if !ok {
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, tasks)
}

// POST /tasks derives the month from the date before storing.
func (h *TasksHandler) Create(ctx *gin.Context) {
	var req task.CreateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	t, err := task.NewFromCreateRequest(req)
	if err != nil {
		respondStoreError(ctx, "adding task", err)
		return
	}

	created, ok := run(ctx, h.timeout, "adding task", func(c context.Context) (task.Task, error) {
		return h.tasks.Create(c, t)
	})
	if !ok {
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// PUT /tasks/:id
func (h *TasksHandler) Update(ctx *gin.Context) {
	var req task.UpdateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if err := task.ValidateUpdate(req); err != nil {
		respondStoreError(ctx, "updating task", err)
		return
	}

	id := ctx.Param("id")

	updated, ok := run(ctx, h.timeout, "updating task", func(c context.Context) (task.Task, error) {
		return h.tasks.Update(c, id, req)
	})
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// DELETE /tasks/:id
func (h *TasksHandler) Delete(ctx *gin.Context) {
	id := ctx.Param("id")

	_, ok := run(ctx, h.timeout, "deleting task", func(c context.Context) (struct{}, error) {
		return struct{}{}, h.tasks.Delete(c, id)
	})
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// GET /progress?name=&month=
func (h *TasksHandler) Progress(ctx *gin.Context) {
	filter := task.ProgressFilter{
		Name:  ctx.Query("name"),
		Month: ctx.Query("month"),
	}

	tasks, ok := run(ctx, h.timeout, "fetching progress", func(c context.Context) ([]task.Task, error) {
		return h.tasks.Progress(c, filter)
	})
	if !ok {
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, tasks)
}
