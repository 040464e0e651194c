package repository

import (
	"microsite-shop/internal/model"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(post *model.Post) error
	FindAll() ([]model.Post, error)
	FindByID(id uint) (*model.Post, error)
	FindBySlug(slug string) (*model.Post, error)
	SlugExists(slug string, excludeID uint) (bool, error)
	Update(post *model.Post) error
	Delete(id uint) error
}

type postRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepository {
	return &postRepo{db}
}

func (r *postRepo) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepo) FindAll() ([]model.Post, error) {
	posts := []model.Post{}
	err := r.db.Order("created_at DESC, id DESC").Find(&posts).Error
	return posts, err
}

func (r *postRepo) FindByID(id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepo) FindBySlug(slug string) (*model.Post, error) {
	var post model.Post
	if err := r.db.Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepo) SlugExists(slug string, excludeID uint) (bool, error) {
	var n int64
	q := r.db.Model(&model.Post{}).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *postRepo) Update(post *model.Post) error {
	return r.db.Save(post).Error
}

func (r *postRepo) Delete(id uint) error {
	res := r.db.Delete(&model.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
