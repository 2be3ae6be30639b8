package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	appcontent "github.com/portfolio/backend/internal/application/content"
	mediaapp "github.com/portfolio/backend/internal/application/media"
	"github.com/portfolio/backend/internal/infrastructure/persistence"
	"github.com/portfolio/backend/internal/infrastructure/storage"
	"github.com/portfolio/backend/internal/interfaces/http/router"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupRouter wires the full handler stack over temp-dir stores.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	dataDir := t.TempDir()
	projectRepo := persistence.NewJSONProjectStore(dataDir, zap.NewNop())
	aboutRepo := persistence.NewJSONAboutStore(dataDir, zap.NewNop())

	blobs, err := storage.NewLocalBlobStorage(t.TempDir(), "/uploads", zap.NewNop())
	require.NoError(t, err)

	projectService := appcontent.NewProjectService(projectRepo)
	aboutService := appcontent.NewAboutService(aboutRepo)
	uploadService := mediaapp.NewUploadService(blobs)

	engine := gin.New()
	router.NewRouter(engine).
		Register(NewSystemHandler()).
		Register(NewAboutHandler(aboutService)).
		Register(NewProjectsHandler(projectService)).
		Register(NewDisplayHandler(projectService, appcontent.NewProjectionService())).
		Register(NewUploadHandler(uploadService)).
		Setup()
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func doMultipartUpload(t *testing.T, engine *gin.Engine, field, filename, contentType string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}
