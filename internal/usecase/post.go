package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/devlinkhq/devlink/internal/model"
	"github.com/devlinkhq/devlink/internal/repository"
)

// PostUsecase defines the business logic for posts, reactions and comments.
type PostUsecase interface {
	CreatePost(ctx context.Context, user *model.User, text string) (*model.Post, error)
	ListPosts(ctx context.Context) ([]*model.Post, error)
	GetPost(ctx context.Context, id string) (*model.Post, error)
	DeletePost(ctx context.Context, user *model.User, postID string) error

	// Like toggles the caller's like on a post. When the caller had already
	// liked it, the like is removed; otherwise any opposing unlike is cleared
	// and the like added. The returned bool reports whether a like was added.
	Like(ctx context.Context, user *model.User, postID string) (*model.Post, bool, error)

	// Unlike is the mirror image of Like for the unlikes list.
	Unlike(ctx context.Context, user *model.User, postID string) (*model.Post, bool, error)

	Comment(ctx context.Context, user *model.User, postID, text string) (*model.Post, error)
	DeleteComment(ctx context.Context, postID, commentID string) error
}

var (
	ErrPostNotFound    = errors.New("post was not found")
	ErrNotPostOwner    = errors.New("unauthorized to delete this post")
	ErrCommentNotFound = errors.New("no comment to delete")
)

type postUsecase struct {
	postRepo repository.PostRepository
}

func NewPostUsecase(postRepo repository.PostRepository) PostUsecase {
	return &postUsecase{postRepo: postRepo}
}

func (u *postUsecase) CreatePost(ctx context.Context, user *model.User, text string) (*model.Post, error) {
	return u.postRepo.CreatePost(ctx, &model.Post{
		UserID: user.ID,
		Text:   text,
		Name:   user.Name,
		Avatar: user.Avatar,
	})
}

func (u *postUsecase) ListPosts(ctx context.Context) ([]*model.Post, error) {
	return u.postRepo.ListPosts(ctx)
}

func (u *postUsecase) GetPost(ctx context.Context, id string) (*model.Post, error) {
	post, err := u.postRepo.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return post, nil
}

func (u *postUsecase) DeletePost(ctx context.Context, user *model.User, postID string) error {
	post, err := u.GetPost(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != user.ID {
		return ErrNotPostOwner
	}

	return u.postRepo.DeletePost(ctx, postID)
}

func (u *postUsecase) Like(
	ctx context.Context,
	user *model.User,
	postID string,
) (*model.Post, bool, error) {
	post, err := u.GetPost(ctx, postID)
	if err != nil {
		return nil, false, err
	}

	likes, removed := withoutReaction(post.Likes, user.ID)
	unlikes := post.Unlikes

	added := !removed
	if added {
		unlikes, _ = withoutReaction(post.Unlikes, user.ID)
		likes = append(likes, model.Reaction{UserID: user.ID})
	}

	updated, err := u.postRepo.SetReactions(ctx, postID, likes, unlikes)
	if err != nil {
		return nil, false, err
	}

	return updated, added, nil
}

func (u *postUsecase) Unlike(
	ctx context.Context,
	user *model.User,
	postID string,
) (*model.Post, bool, error) {
	post, err := u.GetPost(ctx, postID)
	if err != nil {
		return nil, false, err
	}

	unlikes, removed := withoutReaction(post.Unlikes, user.ID)
	likes := post.Likes

	added := !removed
	if added {
		likes, _ = withoutReaction(post.Likes, user.ID)
		unlikes = append(unlikes, model.Reaction{UserID: user.ID})
	}

	updated, err := u.postRepo.SetReactions(ctx, postID, likes, unlikes)
	if err != nil {
		return nil, false, err
	}

	return updated, added, nil
}

// withoutReaction returns the reactions with any entry of the given user
// filtered out, and whether such an entry was present.
func withoutReaction(reactions []model.Reaction, userID bson.ObjectID) ([]model.Reaction, bool) {
	filtered := make([]model.Reaction, 0, len(reactions))
	found := false
	for _, reaction := range reactions {
		if reaction.UserID == userID {
			found = true
			continue
		}
		filtered = append(filtered, reaction)
	}

	return filtered, found
}

func (u *postUsecase) Comment(
	ctx context.Context,
	user *model.User,
	postID, text string,
) (*model.Post, error) {
	if _, err := u.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	post, err := u.postRepo.AddComment(ctx, postID, model.Comment{
		UserID: user.ID,
		Text:   text,
		Name:   user.Name,
		Avatar: user.Avatar,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return post, nil
}

func (u *postUsecase) DeleteComment(ctx context.Context, postID, commentID string) error {
	if _, err := u.GetPost(ctx, postID); err != nil {
		return err
	}

	removed, err := u.postRepo.RemoveComment(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrCommentNotFound
	}

	return nil
}
