package feeddistill

// ItemKind classifies a timeline element and selects the routine that
// distills it.
type ItemKind int

// Item kinds, in selector table order.
const (
	KindPost ItemKind = iota
	KindNotification
)

// Kinds returns every item kind in selector table order.
func Kinds() []ItemKind {
	return []ItemKind{KindPost, KindNotification}
}

// TestID returns the value of the type discriminator attribute that marks
// elements of this kind.
func (k ItemKind) TestID() string {
	switch k {
	case KindPost:
		return "tweet"
	case KindNotification:
		return "notification"
	}
	return ""
}

// String returns a human-readable kind name.
func (k ItemKind) String() string {
	switch k {
	case KindPost:
		return "post"
	case KindNotification:
		return "notification"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k ItemKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseItemKind maps a discriminator attribute value back to its kind.
// Returns false for missing or unrecognized values.
func ParseItemKind(testID string) (ItemKind, bool) {
	for _, k := range Kinds() {
		if k.TestID() == testID {
			return k, true
		}
	}
	return 0, false
}

// Item is one distilled timeline element. Exactly one of Post and
// Notification is set, matching Kind.
type Item struct {
	Kind         ItemKind      `json:"kind" yaml:"kind"`
	Post         *Post         `json:"post,omitempty" yaml:"post,omitempty"`
	Notification *Notification `json:"notification,omitempty" yaml:"notification,omitempty"`

	// Text is the rendered fragment that appears in the page content section.
	Text string `json:"text" yaml:"text"`
}

// Post represents a single post on a timeline.
type Post struct {
	Author User `json:"author" yaml:"author"`

	// Context is the social context line, e.g. "Alice reposted" or "Pinned".
	Context string `json:"context,omitempty" yaml:"context,omitempty"`

	// Timestamp is the machine-readable datetime as it appears on the page.
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`

	Text       string     `json:"text,omitempty" yaml:"text,omitempty"`
	Media      []string   `json:"media,omitempty" yaml:"media,omitempty"`
	Quote      *Quote     `json:"quote,omitempty" yaml:"quote,omitempty"`
	Engagement Engagement `json:"engagement" yaml:"engagement"`
}

// Empty reports whether the post carries nothing worth distilling.
func (p *Post) Empty() bool {
	return p == nil || (p.Author.Empty() && p.Text == "" && len(p.Media) == 0)
}

// Quote is a post embedded inside another post.
type Quote struct {
	Author User   `json:"author" yaml:"author"`
	Text   string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Engagement holds the public counters of a post. A nil field means the
// counter was absent or unreadable, which is different from zero.
type Engagement struct {
	Replies   *int `json:"replies,omitempty" yaml:"replies,omitempty"`
	Reposts   *int `json:"reposts,omitempty" yaml:"reposts,omitempty"`
	Likes     *int `json:"likes,omitempty" yaml:"likes,omitempty"`
	Bookmarks *int `json:"bookmarks,omitempty" yaml:"bookmarks,omitempty"`
	Views     *int `json:"views,omitempty" yaml:"views,omitempty"`
}

// Notification represents an entry on the notifications timeline.
type Notification struct {
	Message   string `json:"message,omitempty" yaml:"message,omitempty"`
	Actors    []User `json:"actors,omitempty" yaml:"actors,omitempty"`
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`

	// PostText is the text of the post the notification refers to, if shown.
	PostText string `json:"postText,omitempty" yaml:"postText,omitempty"`
}

// Empty reports whether the notification carries nothing worth distilling.
func (n *Notification) Empty() bool {
	return n == nil || (n.Message == "" && len(n.Actors) == 0)
}
