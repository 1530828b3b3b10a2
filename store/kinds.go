package store

// Kind identifies a content type sharing the generic CRUD/like contract.
// Its string value is also the discriminator stored in comments.content_type.
type Kind string

const (
	KindPost    Kind = "post"
	KindQuote   Kind = "quote"
	KindGallery Kind = "gallery"
	KindVideo   Kind = "video"
	KindAudio   Kind = "audio"
)

type kindInfo struct {
	table    string
	ownerCol string
	hasLikes bool
}

var kinds = map[Kind]kindInfo{
	KindPost:    {table: "posts", ownerCol: "author", hasLikes: true},
	KindQuote:   {table: "quotes", ownerCol: "created_by", hasLikes: true},
	KindGallery: {table: "galleries", ownerCol: "created_by", hasLikes: true},
	KindVideo:   {table: "videos", ownerCol: "created_by", hasLikes: true},
	KindAudio:   {table: "audios", ownerCol: "created_by", hasLikes: false},
}

// plurals maps REST resource segments to kinds for the admin delete route.
var plurals = map[string]Kind{
	"posts":     KindPost,
	"quotes":    KindQuote,
	"galleries": KindGallery,
	"videos":    KindVideo,
	"audios":    KindAudio,
}

// commentKinds maps the API's plural resource names to the singular
// discriminator values. The same table is applied on both the read and the
// write path; audio content is deliberately absent.
var commentKinds = map[string]Kind{
	"posts":     KindPost,
	"quotes":    KindQuote,
	"videos":    KindVideo,
	"galleries": KindGallery,
}

// Valid reports whether k is a known content kind.
func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// Table returns the backing table name for the kind.
func (k Kind) Table() string {
	return kinds[k].table
}

// OwnerColumn returns the column holding the creator's username.
func (k Kind) OwnerColumn() string {
	return kinds[k].ownerCol
}

// HasLikes reports whether the kind carries a like counter.
func (k Kind) HasLikes() bool {
	return kinds[k].hasLikes
}

// KindFromPlural resolves any plural URL segment to its content kind.
func KindFromPlural(plural string) (Kind, bool) {
	k, ok := plurals[plural]
	return k, ok
}

// CommentKindFromPlural resolves a plural URL segment (posts, quotes, videos,
// galleries) to its comment discriminator kind.
func CommentKindFromPlural(plural string) (Kind, bool) {
	k, ok := commentKinds[plural]
	return k, ok
}
