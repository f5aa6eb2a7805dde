package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibegram/api-go/models"
)

func TestPostLifecycle_CountsScenario(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	seedUser(t, db, "u1", "alice")
	seedUser(t, db, "u2", "bob")
	seedPost(t, db, "p1", "u1", "hi")

	posts, err := repo.All()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "hi", posts[0].Caption)
	assert.Zero(t, posts[0].LikesCount)
	assert.Zero(t, posts[0].CommentsCount)

	require.NoError(t, repo.AddLike("p1", "u2", time.Now().UnixMilli()))

	posts, err = repo.All()
	require.NoError(t, err)
	assert.Equal(t, int64(1), posts[0].LikesCount)
}

func TestPostAll_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	seedUser(t, db, "u1", "alice")

	old := &models.Post{ID: "p1", UserID: "u1", Username: "alice", Caption: "old", Timestamp: 1000}
	newer := &models.Post{ID: "p2", UserID: "u1", Username: "alice", Caption: "new", Timestamp: 2000}
	require.NoError(t, db.Create(old).Error)
	require.NoError(t, db.Create(newer).Error)

	posts, err := repo.All()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "p2", posts[0].ID)
	assert.Equal(t, "p1", posts[1].ID)
}

func TestAddLike_TwiceIsDuplicate(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	seedUser(t, db, "u1", "alice")
	seedUser(t, db, "u2", "bob")
	seedPost(t, db, "p1", "u1", "hi")

	require.NoError(t, repo.AddLike("p1", "u2", 1))
	assert.ErrorIs(t, repo.AddLike("p1", "u2", 2), ErrDuplicate)

	likes, err := repo.Likes("p1")
	require.NoError(t, err)
	assert.Len(t, likes, 1)
}

func TestAddLike_MissingPost(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	seedUser(t, db, "u1", "alice")

	assert.ErrorIs(t, repo.AddLike("ghost", "u1", 1), ErrNotFound)
}

func TestRemoveLike_NeverLiked(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	seedUser(t, db, "u1", "alice")
	seedPost(t, db, "p1", "u1", "hi")

	assert.ErrorIs(t, repo.RemoveLike("p1", "u1"), ErrNotFound)
}

func TestPostUpdate_OwnershipAndValidation(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	seedUser(t, db, "u1", "alice")
	seedUser(t, db, "u2", "bob")
	seedPost(t, db, "p1", "u1", "hi")

	caption := "edited"
	assert.ErrorIs(t, repo.Update("p1", "u2", PostUpdate{Caption: &caption}), ErrForbidden)
	assert.ErrorIs(t, repo.Update("ghost", "u1", PostUpdate{Caption: &caption}), ErrNotFound)
	assert.ErrorIs(t, repo.Update("p1", "u1", PostUpdate{}), ErrValidation)

	require.NoError(t, repo.Update("p1", "u1", PostUpdate{Caption: &caption}))
	post, err := repo.FindByID("p1")
	require.NoError(t, err)
	assert.Equal(t, "edited", post.Caption)
}

func TestPostDelete_CascadesLikesAndComments(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	seedUser(t, db, "u1", "alice")
	seedUser(t, db, "u2", "bob")
	seedPost(t, db, "p1", "u1", "hi")

	require.NoError(t, repo.AddLike("p1", "u2", 1))
	require.NoError(t, repo.AddComment(&models.Comment{
		ID: "c1", PostID: "p1", UserID: "u2", Username: "bob", Text: "nice", Timestamp: 2,
	}))

	assert.ErrorIs(t, repo.Delete("p1", "u2"), ErrForbidden)
	require.NoError(t, repo.Delete("p1", "u1"))

	post, err := repo.FindByID("p1")
	require.NoError(t, err)
	assert.Nil(t, post)

	var likeCount, commentCount int64
	require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", "p1").Count(&likeCount).Error)
	require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", "p1").Count(&commentCount).Error)
	assert.Zero(t, likeCount)
	assert.Zero(t, commentCount)

	assert.ErrorIs(t, repo.Delete("p1", "u1"), ErrNotFound)
}

func TestComments_OrderAndOwnership(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	seedUser(t, db, "u1", "alice")
	seedUser(t, db, "u2", "bob")
	seedPost(t, db, "p1", "u1", "hi")

	require.NoError(t, repo.AddComment(&models.Comment{ID: "c1", PostID: "p1", UserID: "u2", Username: "bob", Text: "first", Timestamp: 1}))
	require.NoError(t, repo.AddComment(&models.Comment{ID: "c2", PostID: "p1", UserID: "u1", Username: "alice", Text: "second", Timestamp: 2}))

	comments, err := repo.Comments("p1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "c1", comments[0].ID)

	assert.ErrorIs(t, repo.AddComment(&models.Comment{ID: "c3", PostID: "ghost", UserID: "u1", Username: "alice", Text: "x", Timestamp: 3}), ErrNotFound)

	assert.ErrorIs(t, repo.DeleteComment("c1", "u1"), ErrForbidden)
	require.NoError(t, repo.DeleteComment("c1", "u2"))
	assert.ErrorIs(t, repo.DeleteComment("c1", "u2"), ErrNotFound)
}

func TestPostsByUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	seedUser(t, db, "u1", "alice")
	seedUser(t, db, "u2", "bob")
	seedPost(t, db, "p1", "u1", "mine")
	seedPost(t, db, "p2", "u2", "theirs")

	posts, err := repo.ByUser("u1")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "p1", posts[0].ID)
}
