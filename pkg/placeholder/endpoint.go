package placeholder

import "fmt"

// Endpoint identifies one of the routes exposed by the placeholder API.
// Values are immutable; build them through the constructors below.
type Endpoint struct {
	path string
}

const (
	postsPath    = "/posts"
	commentsPath = "/comments"
)

// Posts addresses the post collection route.
func Posts() Endpoint { return Endpoint{path: postsPath} }

// Comments addresses the comment collection route.
func Comments() Endpoint { return Endpoint{path: commentsPath} }

// CommentDetail addresses a single comment by its numeric id.
func CommentDetail(id int) Endpoint {
	return Endpoint{path: fmt.Sprintf("%s/%d", commentsPath, id)}
}

// Path returns the URL path for the endpoint relative to the API base URL.
func (e Endpoint) Path() string { return e.path }

// String implements fmt.Stringer.
func (e Endpoint) String() string { return e.path }
