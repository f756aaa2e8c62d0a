package promoService

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"waroengg-be/internal/api/promo"
	promoRepository "waroengg-be/internal/api/promo/repository"
)

type IPromoService interface {
	Validate(ctx context.Context, req promo.ValidatePromoRequest) (*promo.ValidatePromoResponse, error)
	Consume(ctx context.Context, code string) error
}

type promoService struct {
	log             *logrus.Logger
	promoRepository promoRepository.Repository
}

func New(log *logrus.Logger, repo promoRepository.Repository) IPromoService {
	return &promoService{
		log:             log,
		promoRepository: repo,
	}
}
