package tools

import (
	"net/url"
	"strings"
)

// fileID builds the canonical identifier shared by the read and glob tools:
// bitbucket://{PROJECT}/{repository}/{path}.
func fileID(project, repository, path string) string {
	return "bitbucket://" + project + "/" + repository + "/" + path
}

// escapePath escapes each segment of a repository-relative path for use in a
// request URL, keeping the separators intact.
func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
