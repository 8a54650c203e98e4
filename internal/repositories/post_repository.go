package repositories

import (
	"github.com/anonto42/pulseblog/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations. The list
// methods back the four feed kinds; each preloads author and group so feed
// pages render without per-row queries.
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	UpdatePost(post *models.Post) error
	DeletePost(id uint) error

	GetAllPosts(limit, offset int) ([]models.Post, error)
	CountAllPosts() (int64, error)
	GetPostsByGroupID(groupID uint, limit, offset int) ([]models.Post, error)
	CountPostsByGroupID(groupID uint) (int64, error)
	GetPostsByAuthorID(authorID uint, limit, offset int) ([]models.Post, error)
	CountPostsByAuthorID(authorID uint) (int64, error)
	GetPostsByFollowedAuthors(userID uint, limit, offset int) ([]models.Post, error)
	CountPostsByFollowedAuthors(userID uint) (int64, error)
}

// feedOrder is the ordering shared by every feed: newest first, with the id
// as a stable tie-breaker for equal timestamps.
const feedOrder = "created_at DESC, id DESC"

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post with its author, group and comments (newest
// comments first, each with its author)
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.
		Preload("Author").
		Preload("Group").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Preload("Comments.Author").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost updates an existing post
func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Save(post).Error
}

// DeletePost deletes a post by ID; its comments go with it via the FK cascade
func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

func (r *PostgresPostRepository) feedQuery() *gorm.DB {
	return r.db.Model(&models.Post{}).Preload("Author").Preload("Group").Order(feedOrder)
}

// GetAllPosts retrieves one page of the global feed
func (r *PostgresPostRepository) GetAllPosts(limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := r.feedQuery().Limit(limit).Offset(offset).Find(&posts).Error
	return posts, err
}

// CountAllPosts returns the total number of posts
func (r *PostgresPostRepository) CountAllPosts() (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Count(&count).Error
	return count, err
}

// GetPostsByGroupID retrieves one page of a group's feed
func (r *PostgresPostRepository) GetPostsByGroupID(groupID uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := r.feedQuery().Where("group_id = ?", groupID).Limit(limit).Offset(offset).Find(&posts).Error
	return posts, err
}

// CountPostsByGroupID returns the number of posts in a group
func (r *PostgresPostRepository) CountPostsByGroupID(groupID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("group_id = ?", groupID).Count(&count).Error
	return count, err
}

// GetPostsByAuthorID retrieves one page of an author's profile feed
func (r *PostgresPostRepository) GetPostsByAuthorID(authorID uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := r.feedQuery().Where("author_id = ?", authorID).Limit(limit).Offset(offset).Find(&posts).Error
	return posts, err
}

// CountPostsByAuthorID returns the number of posts by an author
func (r *PostgresPostRepository) CountPostsByAuthorID(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

func (r *PostgresPostRepository) followedAuthors(userID uint) *gorm.DB {
	return r.db.Table("follows").Select("author_id").Where("user_id = ?", userID)
}

// GetPostsByFollowedAuthors retrieves one page of posts written by authors
// the given user follows
func (r *PostgresPostRepository) GetPostsByFollowedAuthors(userID uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := r.feedQuery().
		Where("author_id IN (?)", r.followedAuthors(userID)).
		Limit(limit).Offset(offset).Find(&posts).Error
	return posts, err
}

// CountPostsByFollowedAuthors returns the number of posts by followed authors
func (r *PostgresPostRepository) CountPostsByFollowedAuthors(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).
		Where("author_id IN (?)", r.followedAuthors(userID)).
		Count(&count).Error
	return count, err
}
