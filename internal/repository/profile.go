package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/devlinkhq/devlink/internal/model"
)

// ProfileRepository defines the interface for profile-related database
// operations. Experience and education entries are embedded documents, so
// their mutations are expressed as array updates on the profile.
type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *model.Profile) (*model.Profile, error)
	GetProfileByUserID(ctx context.Context, userID string) (*model.Profile, error)
	GetProfileByHandle(ctx context.Context, handle string) (*model.Profile, error)
	GetProfile(ctx context.Context, id string) (*model.Profile, error)
	ListProfiles(ctx context.Context) ([]*model.Profile, error)
	UpdateProfile(ctx context.Context, id string, params UpdateProfileParams) (*model.Profile, error)
	DeleteProfileByUserID(ctx context.Context, userID string) error

	AddExperience(ctx context.Context, id string, exp model.Experience) (*model.Profile, error)
	RemoveExperience(ctx context.Context, id string, expID string) (*model.Profile, error)
	AddEducation(ctx context.Context, id string, edu model.Education) (*model.Profile, error)
	RemoveEducation(ctx context.Context, id string, eduID string) (*model.Profile, error)
}

// UpdateProfileParams defines the optional parameters for updating a profile.
// Only the fields that are not nil will be updated.
type UpdateProfileParams struct {
	Handle         *string
	Company        *string
	Website        *string
	Location       *string
	Status         *string
	Skills         []string
	Bio            *string
	GithubUsername *string
	Avatar         *string
	Social         *model.Social
}

const profileCollection = "profiles"

type profileMongoRepository struct {
	db *mongo.Database
}

func NewProfileMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) ProfileRepository {
	collection := db.Collection(profileCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "handle", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create profile indexes")
	}

	return &profileMongoRepository{db: db}
}

func (r *profileMongoRepository) CreateProfile(
	ctx context.Context,
	profile *model.Profile,
) (*model.Profile, error) {
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	if profile.Experience == nil {
		profile.Experience = []model.Experience{}
	}
	if profile.Education == nil {
		profile.Education = []model.Education{}
	}

	result, err := r.db.Collection(profileCollection).InsertOne(ctx, profile)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		profile.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return profile, nil
}

func (r *profileMongoRepository) GetProfileByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	return r.findOne(ctx, bson.M{"user_id": objectID})
}

func (r *profileMongoRepository) GetProfileByHandle(ctx context.Context, handle string) (*model.Profile, error) {
	return r.findOne(ctx, bson.M{"handle": handle})
}

func (r *profileMongoRepository) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *profileMongoRepository) findOne(ctx context.Context, filter bson.M) (*model.Profile, error) {
	result := r.db.Collection(profileCollection).FindOne(ctx, filter)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var profile model.Profile
	if err := result.Decode(&profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileMongoRepository) ListProfiles(ctx context.Context) ([]*model.Profile, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(profileCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []*model.Profile
	for cursor.Next(ctx) {
		var profile model.Profile
		if err := cursor.Decode(&profile); err != nil {
			return nil, err
		}
		profiles = append(profiles, &profile)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

func (r *profileMongoRepository) UpdateProfile(
	ctx context.Context,
	id string,
	params UpdateProfileParams,
) (*model.Profile, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	// Build update query
	updateMap := bson.M{}
	if params.Handle != nil {
		updateMap["handle"] = *params.Handle
	}
	if params.Company != nil {
		updateMap["company"] = *params.Company
	}
	if params.Website != nil {
		updateMap["website"] = *params.Website
	}
	if params.Location != nil {
		updateMap["location"] = *params.Location
	}
	if params.Status != nil {
		updateMap["status"] = *params.Status
	}
	if params.Skills != nil {
		updateMap["skills"] = params.Skills
	}
	if params.Bio != nil {
		updateMap["bio"] = *params.Bio
	}
	if params.GithubUsername != nil {
		updateMap["github_username"] = *params.GithubUsername
	}
	if params.Avatar != nil {
		updateMap["avatar"] = *params.Avatar
	}
	if params.Social != nil {
		updateMap["social"] = *params.Social
	}

	if len(updateMap) == 0 {
		return nil, errors.New("no profile fields to update")
	}

	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(profileCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var profile model.Profile
	if err := result.Decode(&profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileMongoRepository) DeleteProfileByUserID(ctx context.Context, userID string) error {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}

	_, err = r.db.Collection(profileCollection).DeleteOne(ctx, bson.M{"user_id": objectID})
	return err
}

func (r *profileMongoRepository) AddExperience(
	ctx context.Context,
	id string,
	exp model.Experience,
) (*model.Profile, error) {
	exp.ID = bson.NewObjectID()

	// New entries go to the front, newest first.
	return r.pushFront(ctx, id, "experience", exp)
}

func (r *profileMongoRepository) RemoveExperience(
	ctx context.Context,
	id string,
	expID string,
) (*model.Profile, error) {
	return r.pull(ctx, id, "experience", expID)
}

func (r *profileMongoRepository) AddEducation(
	ctx context.Context,
	id string,
	edu model.Education,
) (*model.Profile, error) {
	edu.ID = bson.NewObjectID()

	return r.pushFront(ctx, id, "education", edu)
}

func (r *profileMongoRepository) RemoveEducation(
	ctx context.Context,
	id string,
	eduID string,
) (*model.Profile, error) {
	return r.pull(ctx, id, "education", eduID)
}

func (r *profileMongoRepository) pushFront(
	ctx context.Context,
	id string,
	field string,
	entry any,
) (*model.Profile, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(profileCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{
			"$push": bson.M{field: bson.M{
				"$each":     bson.A{entry},
				"$position": 0,
			}},
			"$set": bson.M{"updated_at": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var profile model.Profile
	if err := result.Decode(&profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileMongoRepository) pull(
	ctx context.Context,
	id string,
	field string,
	entryID string,
) (*model.Profile, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	entryObjectID, err := bson.ObjectIDFromHex(entryID)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(profileCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{
			"$pull": bson.M{field: bson.M{"_id": entryObjectID}},
			"$set":  bson.M{"updated_at": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var profile model.Profile
	if err := result.Decode(&profile); err != nil {
		return nil, err
	}

	return &profile, nil
}
