package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/scaroll/pgclosets-core/internal/quote/domain"
	"github.com/scaroll/pgclosets-core/pkg/db/pagination"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, quote *domain.Quote) error {
	return db.WithContext(ctx).Create(quote).Error
}

func (r *repo) FindByReference(ctx context.Context, db *gorm.DB, reference string) (*domain.Quote, error) {
	var quote domain.Quote
	err := db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&quote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quote, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListQuoteFilter, page pagination.Pagination) ([]*domain.Quote, error) {
	var quotes []*domain.Quote
	stmt := db.WithContext(ctx).Model(&domain.Quote{})
	if filter.CustomerEmail != "" {
		stmt = stmt.Where("customer_email = ?", filter.CustomerEmail)
	}
	if filter.SeriesID != "" {
		stmt = stmt.Where("series_id = ?", filter.SeriesID)
	}
	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, err
		}
		stmt = stmt.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}
	err := stmt.
		Order("created_at desc, id desc").
		Limit(page.PageSize + 1).
		Find(&quotes).Error
	if err != nil {
		return nil, err
	}
	return quotes, nil
}
