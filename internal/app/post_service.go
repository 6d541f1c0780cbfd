package app

import (
	"errors"
	"unicode/utf8"

	"gopherblog/internal/model"
	"gopherblog/internal/pkg/sanitize"
	"gopherblog/internal/repository"
)

const (
	// titleMaxLen matches the size of the posts.title column, counted in characters.
	titleMaxLen = 255

	MsgPostFieldsRequired = "You must provide a title and content."
	MsgTitleTaken         = "That title is already taken."
	MsgTitleTooLong       = "Title cannot exceed 255 characters."
)

type PostService struct {
	postRepo *repository.PostRepository
}

type PostInput struct {
	Title string
	Body  string
}

func NewPostService(postRepo *repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// ValidatePost is shared by create and edit. Both fields are reduced to plain
// text; the body only becomes HTML when it is rendered.
func ValidatePost(input PostInput) (PostInput, []string) {
	clean := PostInput{
		Title: sanitize.PlainText(input.Title),
		Body:  sanitize.PlainText(input.Body),
	}
	var messages []string
	if clean.Title == "" || clean.Body == "" {
		messages = append(messages, MsgPostFieldsRequired)
	}
	if utf8.RuneCountInString(clean.Title) > titleMaxLen {
		messages = append(messages, MsgTitleTooLong)
	}
	return clean, messages
}

// Create has no title pre-check; uniqueness is left to the storage
// constraint, whose violation is reported as a validation message.
func (s *PostService) Create(authorID uint, input PostInput) (*model.Post, error) {
	clean, messages := ValidatePost(input)
	if len(messages) > 0 {
		return nil, newValidationError(messages...)
	}

	post := &model.Post{
		Title:    clean.Title,
		Body:     clean.Body,
		AuthorID: authorID,
	}
	if err := s.postRepo.Create(post); err != nil {
		if isDuplicate(err) {
			return nil, newValidationError(MsgTitleTaken)
		}
		return nil, err
	}
	return post, nil
}

// Update replaces title and body of an existing post. Ownership is checked
// before this is called.
func (s *PostService) Update(postID uint, input PostInput) (*model.Post, error) {
	clean, messages := ValidatePost(input)
	if len(messages) > 0 {
		return nil, newValidationError(messages...)
	}

	if err := s.postRepo.UpdateContent(postID, clean.Title, clean.Body); err != nil {
		if isDuplicate(err) {
			return nil, newValidationError(MsgTitleTaken)
		}
		return nil, err
	}
	return s.Get(postID)
}

func (s *PostService) Delete(postID uint) error {
	return s.postRepo.Delete(postID)
}

func (s *PostService) Get(postID uint) (*model.Post, error) {
	if postID == 0 {
		return nil, ErrPostNotFound
	}
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *PostService) ListByAuthor(authorID uint) ([]model.Post, error) {
	return s.postRepo.ListByAuthorID(authorID)
}

func isDuplicate(err error) bool {
	return errors.Is(err, repository.ErrDuplicate)
}
