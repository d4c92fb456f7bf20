package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Post is a user post with embedded reactions and comments. A user appears
// at most once in likes or unlikes, never in both.
type Post struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    bson.ObjectID `bson:"user_id"       json:"userId"`
	Text      string        `bson:"text"          json:"text"`
	Name      string        `bson:"name"          json:"name"`
	Avatar    string        `bson:"avatar"        json:"avatar"`
	Likes     []Reaction    `bson:"likes"         json:"likes"`
	Unlikes   []Reaction    `bson:"unlikes"       json:"unlikes"`
	Comments  []Comment     `bson:"comments"      json:"comments"`
	CreatedAt time.Time     `bson:"created_at"    json:"createdAt"`
	UpdatedAt time.Time     `bson:"updated_at"    json:"updatedAt"`
}

// Reaction records that a user liked or unliked a post.
type Reaction struct {
	UserID bson.ObjectID `bson:"user_id" json:"userId"`
}

// Comment is an embedded comment on a post.
type Comment struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    bson.ObjectID `bson:"user_id"       json:"userId"`
	Text      string        `bson:"text"          json:"text"`
	Name      string        `bson:"name"          json:"name"`
	Avatar    string        `bson:"avatar"        json:"avatar"`
	CreatedAt time.Time     `bson:"created_at"    json:"createdAt"`
}
