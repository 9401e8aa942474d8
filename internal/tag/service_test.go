package tag_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"terminal-terrace/blog/internal/dto"
	"terminal-terrace/blog/internal/model/post"
	"terminal-terrace/blog/internal/model/tag"
	tagPkg "terminal-terrace/blog/internal/tag"
	"terminal-terrace/blog/internal/testutils"
	"terminal-terrace/blog/pkg/response"
)

func setupTagService(t *testing.T) (*tagPkg.TagService, *gorm.DB) {
	db := testutils.SetupTestDB(t)
	return tagPkg.NewTagService(db), db
}

func strPtr(s string) *string {
	return &s
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestCreateTag(t *testing.T) {
	service, db := setupTagService(t)
	ctx := context.Background()

	created, err := service.CreateTag(ctx, dto.CreateTagRequest{Name: "go"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "go", created.Name)

	t.Run("duplicate name conflicts", func(t *testing.T) {
		_, err := service.CreateTag(ctx, dto.CreateTagRequest{Name: "go"})
		require.Error(t, err)
		assert.True(t, response.IsCode(err, response.Conflict))
		assert.Equal(t, int64(1), countRows(t, db, &tag.Tag{}))
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		_, err := service.CreateTag(ctx, dto.CreateTagRequest{Name: "   "})
		require.Error(t, err)
		assert.True(t, response.IsCode(err, response.InvalidParameter))
	})
}

func TestGetTag(t *testing.T) {
	service, db := setupTagService(t)
	ctx := context.Background()
	existing := testutils.CreateTestTag(db, testutils.WithTagName("rust"))

	got, err := service.GetTag(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "rust", got.Name)

	_, err = service.GetTag(ctx, 999)
	require.Error(t, err)
	assert.True(t, response.IsCode(err, response.NotFound))
	assert.Equal(t, "Tag with id = 999 not found", err.Error())
}

func TestUpdateTag(t *testing.T) {
	tests := []struct {
		name     string
		id       func(target, other *tag.Tag) uint
		req      dto.UpdateTagRequest
		wantCode *response.ResponseCode
		wantName string
	}{
		{
			name:     "rename",
			id:       func(target, _ *tag.Tag) uint { return target.ID },
			req:      dto.UpdateTagRequest{Name: strPtr("golang")},
			wantName: "golang",
		},
		{
			name:     "absent name keeps tag unchanged",
			id:       func(target, _ *tag.Tag) uint { return target.ID },
			req:      dto.UpdateTagRequest{},
			wantName: "go",
		},
		{
			name:     "renaming to own name is a no-op",
			id:       func(target, _ *tag.Tag) uint { return target.ID },
			req:      dto.UpdateTagRequest{Name: strPtr("go")},
			wantName: "go",
		},
		{
			name:     "name held by another tag conflicts",
			id:       func(target, _ *tag.Tag) uint { return target.ID },
			req:      dto.UpdateTagRequest{Name: strPtr("rust")},
			wantCode: codePtr(response.Conflict),
			wantName: "go",
		},
		{
			name:     "empty name is rejected",
			id:       func(target, _ *tag.Tag) uint { return target.ID },
			req:      dto.UpdateTagRequest{Name: strPtr("")},
			wantCode: codePtr(response.InvalidParameter),
			wantName: "go",
		},
		{
			name:     "unknown id",
			id:       func(_, _ *tag.Tag) uint { return 999 },
			req:      dto.UpdateTagRequest{Name: strPtr("zig")},
			wantCode: codePtr(response.NotFound),
			wantName: "go",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, db := setupTagService(t)
			target := testutils.CreateTestTag(db, testutils.WithTagName("go"))
			other := testutils.CreateTestTag(db, testutils.WithTagName("rust"))

			updated, err := service.UpdateTag(context.Background(), tt.id(target, other), tt.req)
			if tt.wantCode != nil {
				require.Error(t, err)
				assert.True(t, response.IsCode(err, *tt.wantCode), "got %v", err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantName, updated.Name)
			}

			var stored tag.Tag
			require.NoError(t, db.First(&stored, target.ID).Error)
			assert.Equal(t, tt.wantName, stored.Name)
		})
	}
}

func codePtr(c response.ResponseCode) *response.ResponseCode {
	return &c
}

func TestDeleteTag_KeepsPosts(t *testing.T) {
	service, db := setupTagService(t)
	ctx := context.Background()

	shared := testutils.CreateTestTag(db, testutils.WithTagName("shared"))
	kept := testutils.CreateTestTag(db, testutils.WithTagName("kept"))
	p := testutils.CreateTestPost(db, testutils.WithTags(shared, kept))

	require.NoError(t, service.DeleteTag(ctx, shared.ID))

	var stored post.Post
	require.NoError(t, db.Preload("Tags").First(&stored, p.ID).Error)
	require.Len(t, stored.Tags, 1)
	assert.Equal(t, "kept", stored.Tags[0].Name)
	assert.Equal(t, int64(1), countRows(t, db, &post.PostTag{}))

	err := service.DeleteTag(ctx, shared.ID)
	assert.True(t, response.IsCode(err, response.NotFound))
}

func TestListTags_OrderedByName(t *testing.T) {
	service, db := setupTagService(t)
	for _, name := range []string{"zig", "go", "rust"} {
		testutils.CreateTestTag(db, testutils.WithTagName(name))
	}

	tags, err := service.ListTags(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(tags))
	for _, tg := range tags {
		names = append(names, tg.Name)
	}
	assert.Equal(t, []string{"go", "rust", "zig"}, names)
}

func TestListTagPosts(t *testing.T) {
	service, db := setupTagService(t)
	ctx := context.Background()

	a := testutils.CreateTestTag(db, testutils.WithTagName("a"))
	b := testutils.CreateTestTag(db, testutils.WithTagName("b"))
	p1 := testutils.CreateTestPost(db, testutils.WithTags(a, b))
	p2 := testutils.CreateTestPost(db, testutils.WithTags(b))
	testutils.CreateTestPost(db, testutils.WithTags(a))

	posts, err := service.ListTagPosts(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, p1.ID, posts[0].ID)
	assert.Equal(t, p2.ID, posts[1].ID)
	assert.Len(t, posts[0].Tags, 2)

	_, err = service.ListTagPosts(ctx, 999)
	assert.True(t, response.IsCode(err, response.NotFound))
}

func TestTagResolver_ReusesRows(t *testing.T) {
	db := testutils.SetupTestDB(t)
	existing := testutils.CreateTestTag(db, testutils.WithTagName("b"))

	resolver := tagPkg.NewTagResolver(tagPkg.NewTagRepository(db))
	tags, err := resolver.Resolve([]string{"a", "b", "a", "c"})
	require.NoError(t, err)

	require.Len(t, tags, 3)
	assert.Equal(t, "a", tags[0].Name)
	assert.Equal(t, existing.ID, tags[1].ID)
	assert.Equal(t, "c", tags[2].Name)
	assert.Equal(t, int64(3), countRows(t, db, &tag.Tag{}))

	again, err := resolver.Resolve([]string{"c", "a"})
	require.NoError(t, err)
	assert.Equal(t, tags[2].ID, again[0].ID)
	assert.Equal(t, tags[0].ID, again[1].ID)
	assert.Equal(t, int64(3), countRows(t, db, &tag.Tag{}))
}
