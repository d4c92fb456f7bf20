package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Profile holds the public-facing data of a user: work history, education
// and social links. Experience and education entries are embedded documents
// with their own IDs so they can be removed individually.
type Profile struct {
	ID             bson.ObjectID `bson:"_id,omitempty"             json:"id"`
	UserID         bson.ObjectID `bson:"user_id"                   json:"userId"`
	Handle         string        `bson:"handle"                    json:"handle"`
	Company        string        `bson:"company,omitempty"         json:"company,omitempty"`
	Website        string        `bson:"website,omitempty"         json:"website,omitempty"`
	Location       string        `bson:"location,omitempty"        json:"location,omitempty"`
	Status         string        `bson:"status"                    json:"status"`
	Skills         []string      `bson:"skills"                    json:"skills"`
	Bio            string        `bson:"bio,omitempty"             json:"bio,omitempty"`
	GithubUsername string        `bson:"github_username,omitempty" json:"githubUsername,omitempty"`
	Avatar         string        `bson:"avatar"                    json:"avatar"`
	Experience     []Experience  `bson:"experience"                json:"experience"`
	Education      []Education   `bson:"education"                 json:"education"`
	Social         Social        `bson:"social"                    json:"social"`
	CreatedAt      time.Time     `bson:"created_at"                json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updated_at"                json:"updatedAt"`
}

// Experience is a single work-history entry on a profile.
type Experience struct {
	ID          bson.ObjectID `bson:"_id,omitempty"         json:"id"`
	Title       string        `bson:"title"                 json:"title"`
	Company     string        `bson:"company"               json:"company"`
	Location    string        `bson:"location,omitempty"    json:"location,omitempty"`
	From        time.Time     `bson:"from"                  json:"from"`
	To          *time.Time    `bson:"to,omitempty"          json:"to,omitempty"`
	Current     bool          `bson:"current"               json:"current"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
}

// Education is a single education entry on a profile.
type Education struct {
	ID           bson.ObjectID `bson:"_id,omitempty"         json:"id"`
	School       string        `bson:"school"                json:"school"`
	Degree       string        `bson:"degree"                json:"degree"`
	FieldOfStudy string        `bson:"field_of_study"        json:"fieldOfStudy"`
	From         time.Time     `bson:"from"                  json:"from"`
	To           *time.Time    `bson:"to,omitempty"          json:"to,omitempty"`
	Current      bool          `bson:"current"               json:"current"`
	Description  string        `bson:"description,omitempty" json:"description,omitempty"`
}

// Social holds optional links to a user's social accounts.
type Social struct {
	Youtube   string `bson:"youtube,omitempty"   json:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty"   json:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty"  json:"facebook,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty"  json:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}
