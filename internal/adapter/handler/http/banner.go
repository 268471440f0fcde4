package http

import (
	"io"
	"strconv"
	"time"

	"github.com/Consa-Interactive/navandex-sub001/internal/core/domain"
	"github.com/Consa-Interactive/navandex-sub001/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BannerHandler struct {
	Handler
	service port.Service
}

func NewBannerHandler(service port.Service, logger *zap.Logger) (*BannerHandler, error) {
	return &BannerHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type bannerResponse struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Link      string    `json:"link,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

func newBannerResponse(b *domain.Banner) bannerResponse {
	return bannerResponse{
		ID:        b.ID,
		Title:     b.Title,
		ImageURL:  b.ImageURL,
		Link:      b.Link,
		Active:    b.Active,
		CreatedAt: b.CreatedAt,
	}
}

// ListBanners is public and returns active banners only; the staff variant
// returns everything.
func (bh *BannerHandler) ListBanners(ctx *gin.Context) {
	bh.listBanners(ctx, true)
}

func (bh *BannerHandler) ListAllBanners(ctx *gin.Context) {
	bh.listBanners(ctx, false)
}

func (bh *BannerHandler) listBanners(ctx *gin.Context, activeOnly bool) {
	list, err := bh.service.ListBanners(ctx, activeOnly)
	if err != nil {
		bh.handleError(ctx, err)
		return
	}

	result := make([]bannerResponse, 0, len(list))
	for _, b := range list {
		result = append(result, newBannerResponse(b))
	}

	bh.handleSuccess(ctx, result)
}

// CreateBanner accepts a multipart form: title, link, active and an optional
// image file pushed to object storage.
func (bh *BannerHandler) CreateBanner(ctx *gin.Context) {
	banner := &domain.Banner{
		Title:  ctx.PostForm("title"),
		Link:   ctx.PostForm("link"),
		Active: ctx.DefaultPostForm("active", "true") == "true",
	}
	if banner.Title == "" {
		bh.handleError(ctx, domain.ErrBadRequest)
		return
	}

	image, closeImage, err := formImage(ctx)
	if err != nil {
		bh.handleValidationError(ctx, err)
		return
	}
	defer closeImage()

	created, err := bh.service.CreateBanner(ctx, banner, image)
	if err != nil {
		bh.handleError(ctx, err)
		return
	}

	bh.handleSuccessWithStatus(ctx, newBannerResponse(created), 201)
}

func (bh *BannerHandler) UpdateBanner(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		bh.handleValidationError(ctx, err)
		return
	}

	banner := &domain.Banner{
		ID:     id,
		Title:  ctx.PostForm("title"),
		Link:   ctx.PostForm("link"),
		Active: ctx.DefaultPostForm("active", "true") == "true",
	}

	image, closeImage, err := formImage(ctx)
	if err != nil {
		bh.handleValidationError(ctx, err)
		return
	}
	defer closeImage()

	updated, err := bh.service.UpdateBanner(ctx, banner, image)
	if err != nil {
		bh.handleError(ctx, err)
		return
	}

	bh.handleSuccess(ctx, newBannerResponse(updated))
}

func (bh *BannerHandler) DeleteBanner(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		bh.handleValidationError(ctx, err)
		return
	}

	if err := bh.service.DeleteBanner(ctx, id); err != nil {
		bh.handleError(ctx, err)
		return
	}

	bh.handleSuccessWithStatus(ctx, nil, 204)
}

// formImage returns a nil reader when the form has no image part.
func formImage(ctx *gin.Context) (io.Reader, func(), error) {
	file, err := ctx.FormFile("image")
	if err != nil {
		return nil, func() {}, nil
	}

	f, err := file.Open()
	if err != nil {
		return nil, func() {}, err
	}

	return f, func() { _ = f.Close() }, nil
}
