package service

import "lunchorder/internal/domain/entity"

// MenuCardRenderer renders up to two badge-style menu cards onto one
// landscape document and returns the finished file bytes.
type MenuCardRenderer interface {
	Render(cards []entity.MenuCard) ([]byte, error)
}
