package productRepository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"waroengg-be/internal/api/product"
	"waroengg-be/internal/entity"
	contextPkg "waroengg-be/pkg/context"
)

type BannerDB struct {
	ID         sql.NullString `db:"id"`
	ImageURL   sql.NullString `db:"image_url"`
	Title      sql.NullString `db:"title"`
	OrderIndex sql.NullInt64  `db:"order_index"`
	IsActive   sql.NullBool   `db:"is_active"`
	CreatedAt  time.Time      `db:"created_at"`
}

func (r *bannerRepo) ListActiveBanners(ctx context.Context) ([]entity.Banner, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var rows []BannerDB

	query := r.q.Rebind(queryListActiveBanners)

	if err := r.q.SelectContext(ctx, &rows, query); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("ListActiveBanners execution err")
		return nil, err
	}

	banners := make([]entity.Banner, 0, len(rows))
	for _, row := range rows {
		banners = append(banners, entity.Banner{
			ID:         row.ID.String,
			ImageURL:   row.ImageURL.String,
			Title:      row.Title.String,
			OrderIndex: int(row.OrderIndex.Int64),
			IsActive:   row.IsActive.Bool,
			CreatedAt:  row.CreatedAt,
		})
	}

	return banners, nil
}

func (r *bannerRepo) UpdateBannerImage(ctx context.Context, id, imageURL string) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":        id,
		"image_url": imageURL,
	}

	query, args, err := sqlx.Named(queryUpdateBannerImage, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateBannerImage named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when updating banner image")
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return product.ErrBannerNotFound
	}

	return nil
}
