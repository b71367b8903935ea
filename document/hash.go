package document

import (
	"github.com/minio/highwayhash"
)

var key = []byte("htsx-virtual-view-hash-key-00001")

// Hash returns a content hash suitable for change detection.
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}
