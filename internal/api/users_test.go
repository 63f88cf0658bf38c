package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"nusaquest/internal/model"
	"nusaquest/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubUserService struct {
	profileUser *model.User
	updateErr   error
}

func (s *stubUserService) Register(ctx context.Context, fullName, email, password string) (*model.User, error) {
	return nil, nil
}

func (s *stubUserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	return nil, nil
}

func (s *stubUserService) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return s.profileUser, nil
}

func (s *stubUserService) UpdateProfile(ctx context.Context, userID int64, fullName string, profileImage *string) (*model.User, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.profileUser, nil
}

func profileUpdateForm(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	assert.NoError(t, writer.WriteField("full_name", "Dewi Lestari"))

	part, err := writer.CreateFormFile("profile_image", "avatar.png")
	assert.NoError(t, err)
	_, err = part.Write([]byte("not a real png"))
	assert.NoError(t, err)

	assert.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUserRoutes_UpdateProfile_FailureRemovesSavedUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	uploadsDir := t.TempDir()

	us := &stubUserService{
		profileUser: &model.User{ID: 1, FullName: "Dewi Lestari", Role: model.RoleUser},
		updateErr:   assert.AnError,
	}

	a := auth.NewJWTAuth("test-secret", time.Hour)
	router := gin.New()
	NewUserRoutes(router.Group("/api/v1"), us, a, uploadsDir)

	token, err := a.IssueToken(1, string(model.RoleUser))
	assert.NoError(t, err)

	body, contentType := profileUpdateForm(t)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/profile", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	entries, err := os.ReadDir(uploadsDir)
	assert.NoError(t, err)
	assert.Empty(t, entries, "upload must not be left behind when the update fails")
}

func TestUserRoutes_UpdateProfile_SuccessKeepsUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	uploadsDir := t.TempDir()

	us := &stubUserService{
		profileUser: &model.User{ID: 1, FullName: "Dewi Lestari", Role: model.RoleUser},
	}

	a := auth.NewJWTAuth("test-secret", time.Hour)
	router := gin.New()
	NewUserRoutes(router.Group("/api/v1"), us, a, uploadsDir)

	token, err := a.IssueToken(1, string(model.RoleUser))
	assert.NoError(t, err)

	body, contentType := profileUpdateForm(t)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/profile", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	entries, err := os.ReadDir(uploadsDir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}
