// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"plume/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, userID uint) ([]*models.Post, error)
	ListByAuthors(ctx context.Context, userIDs []uint) ([]*models.Post, error)
	ListByIDs(ctx context.Context, ids []uint) ([]*models.Post, error)
	AddComment(ctx context.Context, comment *models.Comment) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.withAuthors(r.db.WithContext(ctx)).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	if err := r.attachLikerIDs(ctx, []*models.Post{&post}); err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes the post and its comment/like child rows in one transaction.
// Notifications that reference the post's author are intentionally left behind.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.withAuthors(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.attachLikerIDs(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, userID uint) ([]*models.Post, error) {
	return r.ListByAuthors(ctx, []uint{userID})
}

func (r *postRepository) ListByAuthors(ctx context.Context, userIDs []uint) ([]*models.Post, error) {
	if len(userIDs) == 0 {
		return []*models.Post{}, nil
	}
	var posts []*models.Post
	err := r.withAuthors(r.db.WithContext(ctx)).
		Where("user_id IN ?", userIDs).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.attachLikerIDs(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ListByIDs(ctx context.Context, ids []uint) ([]*models.Post, error) {
	if len(ids) == 0 {
		return []*models.Post{}, nil
	}
	var posts []*models.Post
	err := r.withAuthors(r.db.WithContext(ctx)).
		Where("id IN ?", ids).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.attachLikerIDs(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// withAuthors preloads the post author and each commenter. Credential hashes
// never serialize (json:"-" on the model), so population is safe to return as-is.
func (r *postRepository) withAuthors(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.User")
}

// attachLikerIDs fills the non-persisted LikerIDs projection for each post.
func (r *postRepository) attachLikerIDs(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	postIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}

	var likes []models.Like
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("created_at ASC").
		Find(&likes).Error; err != nil {
		return models.NewInternalError(err)
	}

	byPost := make(map[uint][]uint, len(posts))
	for _, l := range likes {
		byPost[l.PostID] = append(byPost[l.PostID], l.UserID)
	}
	for _, p := range posts {
		p.LikerIDs = byPost[p.ID]
		if p.LikerIDs == nil {
			p.LikerIDs = []uint{}
		}
	}
	return nil
}
