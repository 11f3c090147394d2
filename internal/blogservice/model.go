package blogservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sushihentaime/blogdocs/internal/common"
)

var (
	ErrRecordNotFound  = common.ErrRecordNotFound
	ErrDuplicateBlogID = errors.New("blogId already exists")
	ErrInvalidField    = errors.New("field cannot be used as a filter")
)

// hideID keeps the storage key out of every read.
var hideID = bson.M{"_id": 0}

// MongoStore keeps blogs in a single MongoDB collection.
type MongoStore struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMongoStore(coll *mongo.Collection, timeout time.Duration) *MongoStore {
	return &MongoStore{coll: coll, timeout: timeout}
}

// EnsureIndexes creates the unique blogId index and the lookup indexes for author and category.
func (m *MongoStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "blogId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "author", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}

	_, err := m.coll.Indexes().CreateMany(ctx, models)
	return err
}

func (m *MongoStore) Insert(ctx context.Context, blog *Blog) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	_, err := m.coll.InsertOne(ctx, blog)
	if err != nil {
		switch {
		case mongo.IsDuplicateKeyError(err):
			return ErrDuplicateBlogID
		default:
			return err
		}
	}

	return nil
}

// FindAll returns every blog, newest first.
func (m *MongoStore) FindAll(ctx context.Context) ([]Blog, error) {
	return m.find(ctx, bson.M{})
}

func (m *MongoStore) FindOne(ctx context.Context, blogID string) (*Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var blog Blog
	err := m.coll.FindOne(ctx, bson.M{"blogId": blogID}, options.FindOne().SetProjection(hideID)).Decode(&blog)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

func (m *MongoStore) FindMany(ctx context.Context, field Field, value string) ([]Blog, error) {
	if field != FieldAuthor && field != FieldCategory {
		return nil, fmt.Errorf("%w: %s", ErrInvalidField, field)
	}

	return m.find(ctx, bson.M{string(field): value})
}

func (m *MongoStore) find(ctx context.Context, filter bson.M) ([]Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	opts := options.Find().
		SetProjection(hideID).
		SetSort(bson.D{{Key: "created", Value: -1}})

	cursor, err := m.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	blogs := []Blog{}
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, err
	}

	if blogs == nil {
		blogs = []Blog{}
	}

	return blogs, nil
}

// UpdateByBlogID overwrites the allow-listed fields set in update.
func (m *MongoStore) UpdateByBlogID(ctx context.Context, blogID string, update BlogUpdate) (*UpdateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	res, err := m.coll.UpdateMany(ctx, bson.M{"blogId": blogID}, bson.M{"$set": update.setFields()})
	if err != nil {
		return nil, err
	}

	return &UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

// IncrementViews bumps views with a single $inc so concurrent callers never lose an update.
func (m *MongoStore) IncrementViews(ctx context.Context, blogID string) (*Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(hideID)

	var blog Blog
	err := m.coll.FindOneAndUpdate(ctx, bson.M{"blogId": blogID}, bson.M{"$inc": bson.M{"views": 1}}, opts).Decode(&blog)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

func (m *MongoStore) DeleteByBlogID(ctx context.Context, blogID string) (*DeleteResult, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	res, err := m.coll.DeleteOne(ctx, bson.M{"blogId": blogID})
	if err != nil {
		return nil, err
	}

	return &DeleteResult{DeletedCount: res.DeletedCount}, nil
}

func (u BlogUpdate) setFields() bson.M {
	set := bson.M{"lastModified": u.LastModified}

	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.BodyHTML != nil {
		set["bodyHtml"] = *u.BodyHTML
	}
	if u.Category != nil {
		set["category"] = *u.Category
	}
	if u.Author != nil {
		set["author"] = *u.Author
	}
	if u.Tags != nil {
		set["tags"] = u.Tags
	}

	return set
}
