package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProjectBody(title string) map[string]any {
	return map[string]any{
		"title":        title,
		"description":  "desc",
		"technologies": []string{"Go"},
		"date":         "August 2023",
	}
}

func createProject(t *testing.T, engine *gin.Engine, title string) string {
	t.Helper()
	w := doJSON(t, engine, http.MethodPost, "/projects", map[string]any{
		"action":  "create",
		"project": validProjectBody(title),
	})
	require.Equal(t, http.StatusOK, w.Code)
	projects := decodeBody(t, w)["projects"].([]any)
	last := projects[len(projects)-1].(map[string]any)
	return last["id"].(string)
}

func TestProjectsEndpoints(t *testing.T) {
	t.Run("GET lists the collection in storage order", func(t *testing.T) {
		engine := setupRouter(t)
		createProject(t, engine, "First")
		createProject(t, engine, "Second")

		w := doJSON(t, engine, http.MethodGet, "/projects", nil)
		require.Equal(t, http.StatusOK, w.Code)
		projects := decodeBody(t, w)["projects"].([]any)
		require.Len(t, projects, 2)
		assert.Equal(t, "First", projects[0].(map[string]any)["title"])
		assert.Equal(t, "Second", projects[1].(map[string]any)["title"])
	})

	t.Run("create returns a message and the refreshed collection", func(t *testing.T) {
		engine := setupRouter(t)

		w := doJSON(t, engine, http.MethodPost, "/projects", map[string]any{
			"action":  "create",
			"project": validProjectBody("New"),
		})
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.NotEmpty(t, body["message"])
		assert.Len(t, body["projects"], 1)
	})

	t.Run("create validates the record", func(t *testing.T) {
		engine := setupRouter(t)

		project := validProjectBody("")
		w := doJSON(t, engine, http.MethodPost, "/projects", map[string]any{
			"action":  "create",
			"project": project,
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("update merges partial fields", func(t *testing.T) {
		engine := setupRouter(t)
		id := createProject(t, engine, "Before")

		w := doJSON(t, engine, http.MethodPost, "/projects", map[string]any{
			"action":  "update",
			"project": map[string]any{"id": id, "title": "After"},
		})
		require.Equal(t, http.StatusOK, w.Code)
		projects := decodeBody(t, w)["projects"].([]any)
		got := projects[0].(map[string]any)
		assert.Equal(t, "After", got["title"])
		assert.Equal(t, "desc", got["description"])
	})

	t.Run("update of unknown id is 404", func(t *testing.T) {
		engine := setupRouter(t)

		w := doJSON(t, engine, http.MethodPost, "/projects", map[string]any{
			"action":  "update",
			"project": map[string]any{"id": "missing", "title": "x"},
		})
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete needs only the id", func(t *testing.T) {
		engine := setupRouter(t)
		id := createProject(t, engine, "Doomed")

		w := doJSON(t, engine, http.MethodPost, "/projects", map[string]any{
			"action":  "delete",
			"project": map[string]any{"id": id},
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeBody(t, w)["projects"], 0)
	})

	t.Run("delete of unknown id is 404", func(t *testing.T) {
		engine := setupRouter(t)

		w := doJSON(t, engine, http.MethodPost, "/projects", map[string]any{
			"action":  "delete",
			"project": map[string]any{"id": "missing"},
		})
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown action is 400", func(t *testing.T) {
		engine := setupRouter(t)

		w := doJSON(t, engine, http.MethodPost, "/projects", map[string]any{
			"action":  "upsert",
			"project": validProjectBody("x"),
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing project payload is 400", func(t *testing.T) {
		engine := setupRouter(t)

		w := doJSON(t, engine, http.MethodPost, "/projects", map[string]any{"action": "create"})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDisplayEndpoint(t *testing.T) {
	t.Run("returns projects newest first with linkified descriptions", func(t *testing.T) {
		engine := setupRouter(t)

		older := validProjectBody("Older")
		older["date"] = "January 2023"
		older["description"] = "see https://example.com for details"
		w := doJSON(t, engine, http.MethodPost, "/projects", map[string]any{"action": "create", "project": older})
		require.Equal(t, http.StatusOK, w.Code)

		newer := validProjectBody("Newer")
		newer["date"] = "March 2024"
		w = doJSON(t, engine, http.MethodPost, "/projects", map[string]any{"action": "create", "project": newer})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, engine, http.MethodGet, "/projects/display", nil)
		require.Equal(t, http.StatusOK, w.Code)
		projects := decodeBody(t, w)["projects"].([]any)
		require.Len(t, projects, 2)

		first := projects[0].(map[string]any)
		second := projects[1].(map[string]any)
		assert.Equal(t, "Newer", first["title"])
		assert.Equal(t, "Older", second["title"])
		assert.Contains(t, second["descriptionHtml"], `<a href="https://example.com"`)
	})
}

func TestHealthzEndpoint(t *testing.T) {
	engine := setupRouter(t)

	w := doJSON(t, engine, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}
