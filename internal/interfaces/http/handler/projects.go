package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	appcontent "github.com/portfolio/backend/internal/application/content"
	"github.com/portfolio/backend/internal/domain/content"
)

// ProjectsHandler serves the project collection: the raw list for the admin
// view and a single action-dispatch mutation endpoint.
type ProjectsHandler struct {
	BaseHandler
	projects *appcontent.ProjectService
}

// NewProjectsHandler creates a new ProjectsHandler
func NewProjectsHandler(projects *appcontent.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{projects: projects}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *ProjectsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/projects", h.List)
	rg.POST("/projects", h.Mutate)
}

// mutateRequest carries one collection mutation. The project payload is kept
// raw because each action reads it differently: create wants the whole
// record, update wants a partial draft, delete wants only the id.
type mutateRequest struct {
	Action  string          `json:"action"`
	Project json.RawMessage `json:"project"`
}

type projectIDRef struct {
	ID string `json:"id"`
}

// List returns the collection in storage order.
func (h *ProjectsHandler) List(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// Mutate dispatches create, update and delete on the collection. Every
// successful mutation returns the refreshed collection so the admin view
// never re-fetches.
func (h *ProjectsHandler) Mutate(c *gin.Context) {
	var req mutateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Request body must be JSON with 'action' and 'project' fields")
		return
	}
	if len(req.Project) == 0 || string(req.Project) == "null" {
		h.BadRequest(c, "Field 'project' is required")
		return
	}

	var (
		projects []content.Project
		message  string
		err      error
	)
	switch req.Action {
	case "create":
		var project content.Project
		if jsonErr := json.Unmarshal(req.Project, &project); jsonErr != nil {
			h.BadRequest(c, "Field 'project' is not a valid project record")
			return
		}
		projects, err = h.projects.Create(c.Request.Context(), project)
		message = "Project created successfully"

	case "update":
		var ref projectIDRef
		if jsonErr := json.Unmarshal(req.Project, &ref); jsonErr != nil || ref.ID == "" {
			h.BadRequest(c, "Field 'project.id' is required for update")
			return
		}
		var draft content.Draft
		if jsonErr := json.Unmarshal(req.Project, &draft); jsonErr != nil {
			h.BadRequest(c, "Field 'project' is not a valid project record")
			return
		}
		projects, err = h.projects.Update(c.Request.Context(), ref.ID, draft)
		message = "Project updated successfully"

	case "delete":
		var ref projectIDRef
		if jsonErr := json.Unmarshal(req.Project, &ref); jsonErr != nil || ref.ID == "" {
			h.BadRequest(c, "Field 'project.id' is required for delete")
			return
		}
		projects, err = h.projects.Delete(c.Request.Context(), ref.ID)
		message = "Project deleted successfully"

	default:
		h.BadRequest(c, "Field 'action' must be one of create, update, delete")
		return
	}

	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "projects": projects})
}
