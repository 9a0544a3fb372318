package domain

// Project is a top-level grouping of repositories on the Bitbucket server,
// identified by a key unique within the server.
type Project struct {
	Key         string  `json:"key"`
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Public      bool    `json:"public"`
	Type        string  `json:"type"`
}

// Repository is a source-controlled codebase belonging to a project,
// identified by a slug unique within that project.
type Repository struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Slug          string  `json:"slug"`
	Description   *string `json:"description,omitempty"`
	Public        bool    `json:"public"`
	Archived      bool    `json:"archived"`
	Project       Project `json:"project"`
	ScmID         string  `json:"scmId"`
	State         string  `json:"state"`
	StatusMessage string  `json:"statusMessage"`
	Forkable      bool    `json:"forkable"`
}

// HitLine is a single context line of a code search hit.
type HitLine struct {
	Line int    `json:"line"`
	Text string `json:"text"`
}

// CodeHit is one file-level result of an indexed code search, with its
// surrounding context blocks in server order.
type CodeHit struct {
	Repository  Repository  `json:"repository"`
	File        string      `json:"file"`
	HitContexts [][]HitLine `json:"hitContexts"`
	HitCount    int         `json:"hitCount"`
}

// ProjectPage is one page of the project listing endpoint. Size is the
// server-reported total and is absent on servers that do not compute it.
type ProjectPage struct {
	Size          *int      `json:"size"`
	IsLastPage    bool      `json:"isLastPage"`
	Values        []Project `json:"values"`
	NextPageStart *int      `json:"nextPageStart"`
}

// RepositoryGroup is the repository category of an indexed search response.
type RepositoryGroup struct {
	Values []Repository `json:"values"`
	Count  int          `json:"count"`
}

// CodeGroup is the code category of an indexed search response.
type CodeGroup struct {
	Values []CodeHit `json:"values"`
	Count  int       `json:"count"`
}

// SearchResponse is the payload of the indexed search endpoint. A category
// is nil when the server found nothing for it; that is a legitimate empty
// result, not a malformed response.
type SearchResponse struct {
	Repositories *RepositoryGroup `json:"repositories"`
	Code         *CodeGroup       `json:"code"`
}

// Entry kinds reported by the directory browse endpoint. Only FILE entries
// are terminal; DIRECTORY entries are expanded during traversal.
const (
	EntryTypeFile      = "FILE"
	EntryTypeDirectory = "DIRECTORY"
)

// EntryPath is a path relative to the browsed directory, as components.
type EntryPath struct {
	Components []string `json:"components"`
}

// FileTreeEntry is one child of a browsed directory.
type FileTreeEntry struct {
	Path EntryPath `json:"path"`
	Type string    `json:"type"`
}

// BrowseChildren is one page of children of a browsed directory.
type BrowseChildren struct {
	Values        []FileTreeEntry `json:"values"`
	IsLastPage    bool            `json:"isLastPage"`
	NextPageStart *int            `json:"nextPageStart"`
}

// BrowsePage is the payload of the directory browse endpoint.
type BrowsePage struct {
	Children *BrowseChildren `json:"children"`
}
