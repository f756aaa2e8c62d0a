package productService

import (
	"mime/multipart"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"waroengg-be/internal/api/product"
	productRepository "waroengg-be/internal/api/product/repository"
	"waroengg-be/internal/entity"
	"waroengg-be/pkg/s3"
	"waroengg-be/pkg/utils"
)

type IProductService interface {
	ListProducts(ctx context.Context, query product.ListProductsQuery) ([]product.ProductResponse, error)
	GetProduct(ctx context.Context, id string) (*product.ProductResponse, error)
	ListBanners(ctx context.Context) ([]product.BannerResponse, error)
	UploadProductImage(ctx context.Context, id string, file *multipart.FileHeader) (*product.UploadImageResponse, error)
	UploadBannerImage(ctx context.Context, id string, file *multipart.FileHeader) (*product.UploadImageResponse, error)
}

type productService struct {
	log               *logrus.Logger
	productRepository productRepository.Repository
	s3                s3.ItfS3
	utils             utils.IUtils
}

func New(
	log *logrus.Logger,
	repo productRepository.Repository,
	s3Client s3.ItfS3,
	utils utils.IUtils,
) IProductService {
	return &productService{
		log:               log,
		productRepository: repo,
		s3:                s3Client,
		utils:             utils,
	}
}

func makeProductResponse(p entity.Product) product.ProductResponse {
	return product.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Category:     p.Category,
		ImageURL:     p.ImageURL,
		IsBestSeller: p.IsBestSeller,
		Stock:        p.Stock,
		CreatedAt:    p.CreatedAt,
	}
}
