package firestore

import (
	"fmt"
	"regexp"
	"strings"

	"firestore-export/internal/shared/errors"
)

// PathInfo represents parsed Firestore path information
type PathInfo struct {
	ProjectID    string
	DatabaseID   string
	DocumentPath string
	IsDocument   bool
	IsCollection bool
	Segments     []string
}

var (
	// Firestore path pattern: projects/{PROJECT_ID}/databases/{DATABASE_ID}/documents/{DOCUMENT_PATH}
	firestorePathRegex = regexp.MustCompile(`^projects/([^/]+)/databases/([^/]+)/documents/(.*)$`)

	// Valid ID pattern (alphanumeric, hyphens, underscores)
	validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_()-]+$`)
)

// ParsePath parses a complete Firestore path
func ParsePath(path string) (*PathInfo, error) {
	if path == "" {
		return nil, errors.NewValidationError("path cannot be empty")
	}

	path = strings.Trim(path, "/")

	matches := firestorePathRegex.FindStringSubmatch(path)
	if len(matches) != 4 {
		return nil, errors.NewValidationError("invalid Firestore path format").
			WithDetail("expected_format", "projects/{PROJECT_ID}/databases/{DATABASE_ID}/documents/{DOCUMENT_PATH}").
			WithDetail("provided_path", path)
	}

	projectID := matches[1]
	databaseID := matches[2]
	documentPath := matches[3]

	if !IsValidID(projectID) {
		return nil, errors.NewValidationError("invalid project ID").
			WithDetail("project_id", projectID)
	}
	if !IsValidID(databaseID) {
		return nil, errors.NewValidationError("invalid database ID").
			WithDetail("database_id", databaseID)
	}

	segments := SplitSegments(documentPath)
	if len(segments) == 0 {
		return nil, errors.NewValidationError("document path cannot be empty")
	}

	return &PathInfo{
		ProjectID:    projectID,
		DatabaseID:   databaseID,
		DocumentPath: documentPath,
		IsDocument:   len(segments)%2 == 0,
		IsCollection: len(segments)%2 == 1,
		Segments:     segments,
	}, nil
}

// SplitSegments splits a document path (the part after /documents/) into
// alternating collection and document IDs, dropping empty segments.
func SplitSegments(documentPath string) []string {
	if documentPath == "" {
		return []string{}
	}

	segments := strings.Split(documentPath, "/")
	var result []string
	for _, segment := range segments {
		if segment != "" {
			result = append(result, segment)
		}
	}

	return result
}

// BuildPath constructs a full Firestore path from components
func BuildPath(projectID, databaseID, documentPath string) string {
	return fmt.Sprintf("projects/%s/databases/%s/documents/%s", projectID, databaseID, documentPath)
}

// ChildPath appends a segment (collection or document ID) to a path
func ChildPath(parent, id string) string {
	return parent + "/" + id
}

// CollectionID returns the collection ID from a collection or document path
func CollectionID(path string) (string, error) {
	segments := SplitSegments(path)
	if len(segments) == 0 {
		return "", errors.NewValidationError("empty path")
	}

	if len(segments)%2 == 0 {
		if len(segments) < 2 {
			return "", errors.NewValidationError("invalid document path")
		}
		return segments[len(segments)-2], nil
	}

	return segments[len(segments)-1], nil
}

// DocumentID returns the document ID from a document path
func DocumentID(documentPath string) (string, error) {
	segments := SplitSegments(documentPath)
	if len(segments) == 0 {
		return "", errors.NewValidationError("empty document path")
	}

	if len(segments)%2 == 1 {
		return "", errors.NewValidationError("path is a collection, not a document")
	}

	return segments[len(segments)-1], nil
}

// SubcollectionID extracts the first path segment below a parent document
// path, i.e. the name of the subcollection a descendant path belongs to.
func SubcollectionID(path, parentDocPath string) (string, error) {
	prefix := strings.Trim(parentDocPath, "/") + "/"
	trimmed := strings.Trim(path, "/")
	if !strings.HasPrefix(trimmed, prefix) {
		return "", errors.NewValidationError("path is not under parent document").
			WithDetail("path", path).
			WithDetail("parent", parentDocPath)
	}

	rest := strings.TrimPrefix(trimmed, prefix)
	segments := SplitSegments(rest)
	if len(segments) == 0 {
		return "", errors.NewValidationError("path has no subcollection segment")
	}

	return segments[0], nil
}

// IsValidID checks if an ID is valid for Firestore
func IsValidID(id string) bool {
	if id == "" {
		return false
	}

	// Firestore caps IDs at 1500 bytes
	if len(id) > 1500 {
		return false
	}

	return validIDPattern.MatchString(id)
}

// IsDocumentPath checks if a path represents a document
func IsDocumentPath(path string) bool {
	segments := SplitSegments(path)
	return len(segments) > 0 && len(segments)%2 == 0
}

// IsCollectionPath checks if a path represents a collection
func IsCollectionPath(path string) bool {
	segments := SplitSegments(path)
	return len(segments) > 0 && len(segments)%2 == 1
}
