// Package media is the boundary to the external object store holding video
// files, thumbnails and avatars. The rest of the server treats the returned
// urls as opaque strings.
package media

import "io"

type Store interface {
	// Save streams one uploaded file into the store and returns its key.
	Save(fileName string, body io.Reader) (key string, err error)
	// GetUrlFromKey resolves a stored key to its public url.
	GetUrlFromKey(key string) string
	// Delete removes a previously stored file. Deleting a missing key is not
	// an error.
	Delete(key string) error
}
