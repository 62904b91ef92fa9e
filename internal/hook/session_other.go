//go:build !windows && !(linux && cgo) && !(darwin && cgo)

package hook

import "inputhook/internal/hookerr"

type platformBackend struct{}

func (platformBackend) Open() (Session, error) {
	return nil, hookerr.ErrUnsupportedPlatform
}
