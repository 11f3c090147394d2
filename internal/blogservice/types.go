package blogservice

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sushihentaime/blogdocs/internal/common"
	"github.com/sushihentaime/blogdocs/internal/logger"
)

type Blog struct {
	// ID is the storage key. It never leaves the service.
	ID          primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	BlogID      string             `json:"blogId" bson:"blogId"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	// BodyHTML is stored as sent by the client.
	BodyHTML     string    `json:"bodyHtml" bson:"bodyHtml"`
	Views        int64     `json:"views" bson:"views"`
	IsPublished  bool      `json:"isPublished" bson:"isPublished"`
	Category     string    `json:"category" bson:"category"`
	Author       string    `json:"author" bson:"author"`
	Tags         []string  `json:"tags" bson:"tags"`
	Created      time.Time `json:"created" bson:"created"`
	LastModified time.Time `json:"lastModified" bson:"lastModified"`
}

// Field names a blog attribute that FindMany can filter on.
type Field string

const (
	FieldAuthor   Field = "author"
	FieldCategory Field = "category"
)

// BlogUpdate is the allow-list of attributes an edit may overwrite. Nil means unchanged.
type BlogUpdate struct {
	Title        *string
	Description  *string
	BodyHTML     *string
	Category     *string
	Author       *string
	Tags         []string
	LastModified time.Time
}

type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// Store persists blogs, addressed by BlogID.
type Store interface {
	Insert(ctx context.Context, blog *Blog) error
	FindAll(ctx context.Context) ([]Blog, error)
	FindOne(ctx context.Context, blogID string) (*Blog, error)
	FindMany(ctx context.Context, field Field, value string) ([]Blog, error)
	UpdateByBlogID(ctx context.Context, blogID string, update BlogUpdate) (*UpdateResult, error)
	IncrementViews(ctx context.Context, blogID string) (*Blog, error)
	DeleteByBlogID(ctx context.Context, blogID string) (*DeleteResult, error)
}

type BlogService struct {
	m      Store
	mb     common.MessageProducer
	logger logger.Logger
	now    func() time.Time
	newID  func() string
}

// BlogEvent is the message published to the blog exchange.
type BlogEvent struct {
	BlogID     string    `json:"blogId"`
	Title      string    `json:"title,omitempty"`
	Author     string    `json:"author,omitempty"`
	Category   string    `json:"category,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
