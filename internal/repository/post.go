package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/devlinkhq/devlink/internal/model"
)

// PostRepository defines the interface for post-related database operations.
type PostRepository interface {
	CreatePost(ctx context.Context, post *model.Post) (*model.Post, error)
	GetPost(ctx context.Context, id string) (*model.Post, error)
	ListPosts(ctx context.Context) ([]*model.Post, error)
	DeletePost(ctx context.Context, id string) error

	// SetReactions replaces the likes and unlikes arrays of a post.
	SetReactions(ctx context.Context, id string, likes, unlikes []model.Reaction) (*model.Post, error)

	AddComment(ctx context.Context, id string, comment model.Comment) (*model.Post, error)

	// RemoveComment pulls a comment from a post and reports whether anything
	// was actually removed.
	RemoveComment(ctx context.Context, id string, commentID string) (bool, error)
}

const postCollection = "posts"

type postMongoRepository struct {
	db *mongo.Database
}

func NewPostMongoRepository(db *mongo.Database) PostRepository {
	return &postMongoRepository{db: db}
}

func (r *postMongoRepository) CreatePost(ctx context.Context, post *model.Post) (*model.Post, error) {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	if post.Likes == nil {
		post.Likes = []model.Reaction{}
	}
	if post.Unlikes == nil {
		post.Unlikes = []model.Reaction{}
	}
	if post.Comments == nil {
		post.Comments = []model.Comment{}
	}

	result, err := r.db.Collection(postCollection).InsertOne(ctx, post)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		post.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return post, nil
}

func (r *postMongoRepository) GetPost(ctx context.Context, id string) (*model.Post, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(postCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var post model.Post
	if err := result.Decode(&post); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postMongoRepository) ListPosts(ctx context.Context) ([]*model.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(postCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []*model.Post
	for cursor.Next(ctx) {
		var post model.Post
		if err := cursor.Decode(&post); err != nil {
			return nil, err
		}
		posts = append(posts, &post)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postMongoRepository) DeletePost(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	result := r.db.Collection(postCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	return result.Err()
}

func (r *postMongoRepository) SetReactions(
	ctx context.Context,
	id string,
	likes, unlikes []model.Reaction,
) (*model.Post, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	if likes == nil {
		likes = []model.Reaction{}
	}
	if unlikes == nil {
		unlikes = []model.Reaction{}
	}

	result := r.db.Collection(postCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{
			"likes":      likes,
			"unlikes":    unlikes,
			"updated_at": time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var post model.Post
	if err := result.Decode(&post); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postMongoRepository) AddComment(
	ctx context.Context,
	id string,
	comment model.Comment,
) (*model.Post, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	comment.ID = bson.NewObjectID()
	comment.CreatedAt = time.Now()

	result := r.db.Collection(postCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{
			"$push": bson.M{"comments": comment},
			"$set":  bson.M{"updated_at": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var post model.Post
	if err := result.Decode(&post); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postMongoRepository) RemoveComment(ctx context.Context, id string, commentID string) (bool, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, err
	}

	commentObjectID, err := bson.ObjectIDFromHex(commentID)
	if err != nil {
		return false, err
	}

	// The filter requires the comment to be present, so a zero match count
	// means there was nothing to delete.
	result, err := r.db.Collection(postCollection).UpdateOne(
		ctx,
		bson.M{"_id": objectID, "comments._id": commentObjectID},
		bson.M{
			"$pull": bson.M{"comments": bson.M{"_id": commentObjectID}},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return false, err
	}

	return result.MatchedCount > 0, nil
}
