package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gopherblog/internal/app"
	"gopherblog/internal/model"
	"gopherblog/internal/platform/sqlite"
	"gopherblog/internal/repository"
	"gopherblog/internal/transport/http/middleware"
)

func newPostHandler(t *testing.T) *PostHandler {
	t.Helper()
	db, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "handler.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewPostHandler(app.NewPostService(repository.NewPostRepository(db)), zap.NewNop())
}

// The owner middleware has already loaded the post, but it is gone by the
// time the update runs.
func TestUpdateVanishedPostRedirectsHome(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newPostHandler(t)

	form := url.Values{"title": {"Hello"}, "body": {"world"}}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/edit-post/7", strings.NewReader(form.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Set(middleware.ContextIdentityKey, &app.Identity{UserID: 1, Username: "alice123"})
	c.Set(middleware.ContextPostKey, &model.Post{ID: 7, AuthorID: 1, Title: "Hello", Body: "old"})

	h.Update(c)
	c.Writer.WriteHeaderNow()

	if w.Code != http.StatusFound {
		t.Fatalf("code %d, want 302; body %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != "/" {
		t.Fatalf("Location = %q, want /", got)
	}
}
