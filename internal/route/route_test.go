package route_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"terminal-terrace/blog/config"
	"terminal-terrace/blog/internal/dto"
	"terminal-terrace/blog/internal/route"
	"terminal-terrace/blog/internal/testutils"
	"terminal-terrace/blog/pkg/response"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	db := testutils.SetupTestDB(t)
	r := route.SetupRouter(db, &config.AppConfig{
		Server: config.ServerConfig{Mode: gin.TestMode},
	})
	return r, db
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func tagNames(p dto.PostResponse) []string {
	names := make([]string, 0, len(p.Tags))
	for _, tg := range p.Tags {
		names = append(names, tg.Name)
	}
	return names
}

func TestHealth(t *testing.T) {
	r, _ := setupRouter(t)

	for _, path := range []string{"/health", "/health_check"} {
		w := doRequest(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `"success"`, w.Body.String())
	}
}

func TestPostLifecycle(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(r, http.MethodPost, "/posts/create", `{"title":"Hello","content":"First post","tags":[{"name":"go"},{"name":"web"}]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.PostResponse](t, w)
	assert.Equal(t, "Hello", created.Title)
	assert.ElementsMatch(t, []string{"go", "web"}, tagNames(created))

	w = doRequest(r, http.MethodGet, "/posts/"+itoa(created.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[dto.PostResponse](t, w)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "First post", got.Content)

	w = doRequest(r, http.MethodPut, "/posts/update?id="+itoa(created.ID), `{"content":"Edited","tags":[]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[dto.PostResponse](t, w)
	assert.Equal(t, "Hello", updated.Title)
	assert.Equal(t, "Edited", updated.Content)
	assert.NotNil(t, updated.Tags)
	assert.Empty(t, updated.Tags)
	assert.Contains(t, w.Body.String(), `"tags":[]`)

	w = doRequest(r, http.MethodDelete, "/posts/delete/"+itoa(created.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	env := decode[response.Response](t, w)
	assert.Equal(t, response.Success, env.Code)

	w = doRequest(r, http.MethodGet, "/posts/"+itoa(created.ID), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostErrors(t *testing.T) {
	r, db := setupRouter(t)
	existing := testutils.CreateTestPost(db, testutils.WithTitle("Taken"))

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   response.ResponseCode
		wantMsg    string
	}{
		{"unknown post", http.MethodGet, "/posts/7", "", http.StatusNotFound, response.NotFound, "Post with id = 7 not found"},
		{"non-numeric id", http.MethodGet, "/posts/abc", "", http.StatusUnprocessableEntity, response.ParseError, "invalid post id"},
		{"missing title", http.MethodPost, "/posts/create", `{"content":"c","tags":[]}`, http.StatusUnprocessableEntity, response.ParseError, "field 'title' is required"},
		{"missing tags", http.MethodPost, "/posts/create", `{"title":"t","content":"c"}`, http.StatusUnprocessableEntity, response.ParseError, "field 'tags' is required"},
		{"tag without name", http.MethodPost, "/posts/create", `{"title":"t","content":"c","tags":[{}]}`, http.StatusUnprocessableEntity, response.ParseError, "field 'tags[0].name' is required"},
		{"malformed json", http.MethodPost, "/posts/create", `{"title":`, http.StatusUnprocessableEntity, response.ParseError, ""},
		{"duplicate title", http.MethodPost, "/posts/create", `{"title":"Taken","content":"c","tags":[]}`, http.StatusConflict, response.Conflict, "Post with title = Taken already exists"},
		{"update without id", http.MethodPut, "/posts/update", `{"content":"x"}`, http.StatusUnprocessableEntity, response.ParseError, "invalid post id"},
		{"update empty title", http.MethodPut, "/posts/update?id=" + itoa(existing.ID), `{"title":""}`, http.StatusUnprocessableEntity, response.InvalidParameter, "title must not be empty"},
		{"update unknown", http.MethodPut, "/posts/update?id=999", `{"content":"x"}`, http.StatusNotFound, response.NotFound, "Post with id = 999 not found"},
		{"delete unknown", http.MethodDelete, "/posts/delete/999", "", http.StatusNotFound, response.NotFound, "Post with id = 999 not found"},
		{"bad date", http.MethodPost, "/posts/", `{"date_from":"yesterday"}`, http.StatusUnprocessableEntity, response.ParseError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, tt.method, tt.path, tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			env := decode[response.Response](t, w)
			assert.Equal(t, tt.wantCode, env.Code)
			assert.Nil(t, env.Data)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, env.Message)
			}
		})
	}
}

func TestQueryPosts(t *testing.T) {
	r, db := setupRouter(t)

	x := testutils.CreateTestTag(db, testutils.WithTagName("x"))
	early := testutils.CreateTestPost(db, testutils.WithTags(x))
	late := testutils.CreateTestPost(db)
	testutils.SetCreatedAt(db, early.ID, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))
	testutils.SetCreatedAt(db, late.ID, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))

	tests := []struct {
		name string
		body string
		want []uint
	}{
		{"empty body returns all", "", []uint{early.ID, late.ID}},
		{"empty object returns all", `{}`, []uint{early.ID, late.ID}},
		{"tag filter", `{"tags":[{"name":"x"}]}`, []uint{early.ID}},
		{"naive timestamp is UTC", `{"date_from":"2024-01-01T10:00:00"}`, []uint{late.ID}},
		{"date only", `{"date_to":"2024-03-01"}`, []uint{early.ID}},
		{"null filters", `{"date_from":null,"date_to":null,"tags":null}`, []uint{early.ID, late.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/posts/", tt.body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			posts := decode[[]dto.PostResponse](t, w)
			ids := make([]uint, 0, len(posts))
			for _, p := range posts {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestTagEndpoints(t *testing.T) {
	r, db := setupRouter(t)

	w := doRequest(r, http.MethodPost, "/tags/create", `{"name":"go"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.TagResponse](t, w)
	assert.Equal(t, "go", created.Name)

	w = doRequest(r, http.MethodPost, "/tags/create", `{"name":"go"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(r, http.MethodPost, "/tags/create", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doRequest(r, http.MethodGet, "/tags/"+itoa(created.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decode[dto.TagResponse](t, w))

	w = doRequest(r, http.MethodPut, "/tags/update?id="+itoa(created.ID), `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "go", decode[dto.TagResponse](t, w).Name)

	w = doRequest(r, http.MethodPut, "/tags/update?id="+itoa(created.ID), `{"name":"golang"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "golang", decode[dto.TagResponse](t, w).Name)

	p := testutils.CreateTestPost(db, testutils.WithTags(testutils.CreateTestTag(db, testutils.WithTagName("other"))))
	w = doRequest(r, http.MethodGet, "/tags/", "")
	require.Equal(t, http.StatusOK, w.Code)
	tags := decode[[]dto.TagResponse](t, w)
	require.Len(t, tags, 2)
	assert.Equal(t, "golang", tags[0].Name)
	assert.Equal(t, "other", tags[1].Name)

	w = doRequest(r, http.MethodGet, "/tags/"+itoa(tags[1].ID)+"/posts", "")
	require.Equal(t, http.StatusOK, w.Code)
	posts := decode[[]dto.PostResponse](t, w)
	require.Len(t, posts, 1)
	assert.Equal(t, p.ID, posts[0].ID)

	w = doRequest(r, http.MethodDelete, "/tags/delete/"+itoa(tags[1].ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/posts/"+itoa(p.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[dto.PostResponse](t, w).Tags)

	w = doRequest(r, http.MethodGet, "/tags/404", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Tag with id = 404 not found", decode[response.Response](t, w).Message)
}

func TestUpdateLengthLimits(t *testing.T) {
	r, db := setupRouter(t)
	goTag := testutils.CreateTestTag(db, testutils.WithTagName("go"))
	p := testutils.CreateTestPost(db, testutils.WithTitle("Short"), testutils.WithTags(goTag))
	long := strings.Repeat("a", 300)

	tests := []struct {
		name    string
		path    string
		body    string
		wantMsg string
	}{
		{"post title", "/posts/update?id=" + itoa(p.ID), `{"title":"` + long + `"}`, "field 'title' must be at most 256 characters"},
		{"post tag name", "/posts/update?id=" + itoa(p.ID), `{"tags":[{"name":"` + long + `"}]}`, "must be at most 128 characters"},
		{"tag name", "/tags/update?id=" + itoa(goTag.ID), `{"name":"` + long + `"}`, "field 'name' must be at most 128 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPut, tt.path, tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

			env := decode[response.Response](t, w)
			assert.Equal(t, response.ParseError, env.Code)
			assert.Contains(t, env.Message, tt.wantMsg)
		})
	}

	w := doRequest(r, http.MethodGet, "/posts/"+itoa(p.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[dto.PostResponse](t, w)
	assert.Equal(t, "Short", got.Title)
	assert.Equal(t, []string{"go"}, tagNames(got))

	w = doRequest(r, http.MethodGet, "/tags/"+itoa(goTag.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "go", decode[dto.TagResponse](t, w).Name)
}

func TestMetricsExposed(t *testing.T) {
	r, _ := setupRouter(t)
	doRequest(r, http.MethodGet, "/health", "")

	w := doRequest(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.Contains(w.Body.Bytes(), []byte("http_requests_total")))
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
