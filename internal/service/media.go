package service

import (
	"strings"

	"github.com/souqhq/souq-api/internal/domain"
)

// URLRewriter turns stored relative image filenames into absolute URLs on
// read. The rewrite is a post-load transform applied by resources, so the
// stored documents keep the relative filename the media pipeline produced.
type URLRewriter struct {
	baseURL string
}

// NewURLRewriter creates a rewriter. An empty base URL disables rewriting.
func NewURLRewriter(baseURL string) *URLRewriter {
	return &URLRewriter{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Rewrite maps a stored relative filename to an absolute URL. Absolute
// values and empty values pass through unchanged.
func (r *URLRewriter) Rewrite(filename string) string {
	if r.baseURL == "" || filename == "" || strings.Contains(filename, "://") {
		return filename
	}
	return r.baseURL + "/" + strings.TrimPrefix(filename, "/")
}

// CategoryImage is the after-load hook for categories.
func (r *URLRewriter) CategoryImage(c *domain.Category) {
	c.Image = r.Rewrite(c.Image)
}

// BrandImage is the after-load hook for brands.
func (r *URLRewriter) BrandImage(b *domain.Brand) {
	b.Image = r.Rewrite(b.Image)
}

// ProductImages is the after-load hook for products.
func (r *URLRewriter) ProductImages(p *domain.Product) {
	p.ImageCover = r.Rewrite(p.ImageCover)
	for i := range p.Images {
		p.Images[i] = r.Rewrite(p.Images[i])
	}
}

// UserImage is the after-load hook for users.
func (r *URLRewriter) UserImage(u *domain.User) {
	u.ProfileImage = r.Rewrite(u.ProfileImage)
}
