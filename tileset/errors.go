package tileset

import "errors"

var (
	ErrInvalidID         = errors.New("invalid id")
	ErrIDCollision       = errors.New("id already in use")
	ErrSourceNotFound    = errors.New("source not found")
	ErrSceneTileNotFound = errors.New("scene tile not found")
	ErrTileNotFound      = errors.New("tile not found")
	ErrSelfProxy         = errors.New("proxy maps a tile to itself")
	ErrInvalidTier       = errors.New("invalid proxy tier")
	ErrUnknownSourceKind = errors.New("unknown source kind")
)
