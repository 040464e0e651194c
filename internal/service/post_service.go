package service

import (
	"fmt"
	"strconv"
	"strings"

	"microsite-shop/internal/apperr"
	"microsite-shop/internal/model"
	"microsite-shop/internal/repository"
	"microsite-shop/pkg/slug"
)

type PostService interface {
	GetAllPosts() ([]model.Post, error)
	// GetPost looks the post up by numeric id first, then by slug.
	GetPost(idOrSlug string) (*model.Post, error)
	CreatePost(req *PostRequest) (*model.Post, error)
	UpdatePost(id uint, req *PostRequest) (*model.Post, error)
	DeletePost(id uint) error
}

type PostRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Excerpt string `json:"excerpt"`
	Content string `json:"content" validate:"required"`
	Image   string `json:"image"`
	Author  string `json:"author" validate:"max=100"`
}

type postService struct {
	repo repository.PostRepository
}

func NewPostService(repo repository.PostRepository) PostService {
	return &postService{repo: repo}
}

func (s *postService) GetAllPosts() ([]model.Post, error) {
	posts, err := s.repo.FindAll()
	if err != nil {
		return nil, apperr.Internal("Failed to fetch posts", err)
	}
	return posts, nil
}

func (s *postService) GetPost(idOrSlug string) (*model.Post, error) {
	var (
		post *model.Post
		err  error
	)
	if id, convErr := strconv.ParseUint(idOrSlug, 10, 64); convErr == nil {
		post, err = s.repo.FindByID(uint(id))
		if isNotFound(err) {
			post, err = s.repo.FindBySlug(idOrSlug)
		}
	} else {
		post, err = s.repo.FindBySlug(idOrSlug)
	}

	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("Post not found")
		}
		return nil, apperr.Internal("Failed to fetch post", err)
	}
	return post, nil
}

func (s *postService) CreatePost(req *PostRequest) (*model.Post, error) {
	if err := s.normalize(req); err != nil {
		return nil, err
	}

	postSlug, err := s.uniqueSlug(req.Title, 0)
	if err != nil {
		return nil, err
	}

	post := &model.Post{Slug: postSlug}
	req.apply(post)
	if err := s.repo.Create(post); err != nil {
		return nil, apperr.Internal("Failed to create post", err)
	}
	return post, nil
}

func (s *postService) UpdatePost(id uint, req *PostRequest) (*model.Post, error) {
	if err := s.normalize(req); err != nil {
		return nil, err
	}

	post, err := s.repo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("Post not found")
		}
		return nil, apperr.Internal("Failed to fetch post", err)
	}

	// Keep the published URL unless the title changes.
	if req.Title != post.Title {
		if post.Slug, err = s.uniqueSlug(req.Title, id); err != nil {
			return nil, err
		}
	}

	req.apply(post)
	if err := s.repo.Update(post); err != nil {
		return nil, apperr.Internal("Failed to update post", err)
	}
	return post, nil
}

func (s *postService) DeletePost(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		if isNotFound(err) {
			return apperr.NotFound("Post not found")
		}
		return apperr.Internal("Failed to delete post", err)
	}
	return nil
}

func (s *postService) normalize(req *PostRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)
	if req.Author == "" {
		req.Author = model.DefaultPostAuthor
	}
	return validate(req)
}

// uniqueSlug derives a slug from title, appending -2, -3, ... until it is free.
func (s *postService) uniqueSlug(title string, excludeID uint) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "post"
	}

	candidate := base
	for i := 2; ; i++ {
		exists, err := s.repo.SlugExists(candidate, excludeID)
		if err != nil {
			return "", apperr.Internal("Failed to check post slug", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func (req *PostRequest) apply(p *model.Post) {
	p.Title = req.Title
	p.Excerpt = req.Excerpt
	p.Content = req.Content
	p.Image = req.Image
	p.Author = req.Author
}
