package productService

import (
	"context"
	"mime/multipart"

	"waroengg-be/internal/api/product"
	contextPkg "waroengg-be/pkg/context"
	"waroengg-be/pkg/log"
)

func (s *productService) ListProducts(ctx context.Context, query product.ListProductsQuery) ([]product.ProductResponse, error) {
	repo, err := s.productRepository.NewClient(false)
	if err != nil {
		return nil, err
	}

	products, err := repo.Product.ListProducts(ctx, query.Category, query.BestSeller)
	if err != nil {
		return nil, err
	}

	responses := make([]product.ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, makeProductResponse(p))
	}

	return responses, nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (*product.ProductResponse, error) {
	repo, err := s.productRepository.NewClient(false)
	if err != nil {
		return nil, err
	}

	record, err := repo.Product.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := makeProductResponse(record)
	return &response, nil
}

func (s *productService) ListBanners(ctx context.Context) ([]product.BannerResponse, error) {
	repo, err := s.productRepository.NewClient(false)
	if err != nil {
		return nil, err
	}

	banners, err := repo.Banner.ListActiveBanners(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]product.BannerResponse, 0, len(banners))
	for _, b := range banners {
		responses = append(responses, product.BannerResponse{
			ID:         b.ID,
			ImageURL:   b.ImageURL,
			Title:      b.Title,
			OrderIndex: b.OrderIndex,
		})
	}

	return responses, nil
}

func (s *productService) UploadProductImage(ctx context.Context, id string, file *multipart.FileHeader) (*product.UploadImageResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.utils.ValidateImageFile(file); err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"product_id": id,
			"error":      err.Error(),
		}).Warn("Rejected product image upload")
		return nil, product.ErrInvalidFileType
	}

	repo, err := s.productRepository.NewClient(false)
	if err != nil {
		return nil, err
	}

	// Look up first so a bad id never leaves an orphan object in the bucket.
	record, err := repo.Product.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.s3.UploadFile(file, "products")
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"product_id": id,
			"error":      err.Error(),
		}).Error("Failed to upload product image")
		return nil, product.ErrFailedToUploadFile
	}

	if err := repo.Product.UpdateProductImage(ctx, id, imageURL); err != nil {
		return nil, err
	}

	if record.ImageURL != "" {
		if err := s.s3.DeleteFile(record.ImageURL); err != nil {
			s.log.WithFields(log.Fields{
				"request_id": requestID,
				"product_id": id,
				"error":      err.Error(),
			}).Warn("Failed to delete previous product image")
		}
	}

	s.log.WithFields(log.Fields{
		"request_id": requestID,
		"product_id": id,
	}).Info("Product image updated")

	return &product.UploadImageResponse{ImageURL: imageURL}, nil
}

func (s *productService) UploadBannerImage(ctx context.Context, id string, file *multipart.FileHeader) (*product.UploadImageResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.utils.ValidateImageFile(file); err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"banner_id":  id,
			"error":      err.Error(),
		}).Warn("Rejected banner image upload")
		return nil, product.ErrInvalidFileType
	}

	repo, err := s.productRepository.NewClient(false)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.s3.UploadFile(file, "banners")
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"banner_id":  id,
			"error":      err.Error(),
		}).Error("Failed to upload banner image")
		return nil, product.ErrFailedToUploadFile
	}

	if err := repo.Banner.UpdateBannerImage(ctx, id, imageURL); err != nil {
		return nil, err
	}

	s.log.WithFields(log.Fields{
		"request_id": requestID,
		"banner_id":  id,
	}).Info("Banner image updated")

	return &product.UploadImageResponse{ImageURL: imageURL}, nil
}
