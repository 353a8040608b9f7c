package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	catalogdomain "github.com/scaroll/pgclosets-core/internal/catalog/domain"
	"github.com/scaroll/pgclosets-core/internal/clock"
	configuratordomain "github.com/scaroll/pgclosets-core/internal/configurator/domain"
	freightdomain "github.com/scaroll/pgclosets-core/internal/freight/domain"
	"github.com/scaroll/pgclosets-core/internal/quote/domain"
	"github.com/scaroll/pgclosets-core/pkg/db"
	"github.com/scaroll/pgclosets-core/pkg/db/pagination"
)

// Quotes stay honorable for thirty days, matching the printed terms.
const quoteValidity = 30 * 24 * time.Hour

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	Repo         domain.Repository
	Catalog      catalogdomain.Source
	Configurator configuratordomain.Service
	Freight      freightdomain.Service
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	genID        *snowflake.Node
	clock        clock.Clock
	repo         domain.Repository
	catalog      catalogdomain.Source
	configurator configuratordomain.Service
	freight      freightdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("quote.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		repo:         p.Repo,
		catalog:      p.Catalog,
		configurator: p.Configurator,
		freight:      p.Freight,
	}
}

// Create re-prices the configuration server-side and persists the result.
// Client-supplied totals are never trusted.
func (s *Service) Create(ctx context.Context, req domain.CreateQuoteRequest) (*domain.Quote, error) {
	cfg, err := s.configurator.Configure(ctx, req.Configuration)
	if err != nil {
		return nil, err
	}
	if !cfg.IsValid {
		return nil, domain.ErrInvalidConfiguration
	}

	now := s.clock.Now()
	quote := &domain.Quote{
		ID:             s.genID.Generate(),
		Reference:      ulid.Make().String(),
		SeriesID:       cfg.SeriesID,
		SKU:            cfg.SKU,
		Quantity:       cfg.Request.Quantity,
		CustomerName:   strings.TrimSpace(req.CustomerName),
		CustomerEmail:  strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		UnitPriceCents: cfg.UnitPriceCents,
		DiscountCents:  cfg.Discount.DiscountCents,
		TotalCents:     cfg.TotalCents,
		LeadTimeDays:   cfg.LeadTimeDays,
		ExpiresAt:      now.Add(quoteValidity),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if quote.Quantity == 0 {
		quote.Quantity = 1
	}

	if breakdown, err := json.Marshal(cfg.Breakdown); err == nil {
		quote.Breakdown = breakdown
	}
	if body, err := json.Marshal(req.Configuration); err == nil {
		quote.RequestBody = body
	}

	if req.PostalCode != "" {
		if err := s.attachFreight(ctx, quote, cfg, req); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Insert(ctx, s.db, quote); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateReference
		}
		return nil, err
	}

	s.log.Info("quote captured",
		zap.String("reference", quote.Reference),
		zap.String("sku", quote.SKU),
		zap.Int64("total_cents", quote.TotalCents),
	)
	return quote, nil
}

func (s *Service) attachFreight(ctx context.Context, quote *domain.Quote, cfg *configuratordomain.Configuration, req domain.CreateQuoteRequest) error {
	series, ok := s.catalog.Catalog().SeriesByID(cfg.SeriesID)
	if !ok {
		return catalogdomain.ErrSeriesNotFound
	}

	items := make([]freightdomain.Package, 0, quote.Quantity)
	for i := 0; i < quote.Quantity; i++ {
		items = append(items, freightdomain.Package{
			WeightKg:   series.PackageWeightKg,
			LengthCm:   series.PackageLengthCm,
			WidthCm:    series.PackageWidthCm,
			HeightCm:   series.PackageHeightCm,
			ValueCents: cfg.UnitPriceCents,
		})
	}

	estimates, err := s.freight.Estimate(ctx, freightdomain.Input{
		PostalCode:   req.PostalCode,
		Items:        items,
		DeliveryType: freightdomain.DeliveryResidential,
		LeadTimeDays: cfg.LeadTimeDays,
	})
	if err != nil {
		return err
	}

	selected := selectEstimate(estimates, req.FreightMethod)
	if selected == nil {
		return nil
	}

	quote.PostalCode = req.PostalCode
	quote.FreightMethod = string(selected.Method)
	quote.FreightCents = selected.PriceCents
	quote.TotalCents += selected.PriceCents
	return nil
}

// selectEstimate picks the requested method, or the cheapest delivered
// option when the customer expressed no preference. Pickup is never chosen
// implicitly.
func selectEstimate(estimates []freightdomain.Estimate, method freightdomain.Method) *freightdomain.Estimate {
	for i := range estimates {
		if estimates[i].Method == method {
			return &estimates[i]
		}
	}
	if method != "" {
		return nil
	}
	for i := range estimates {
		if estimates[i].Method != freightdomain.MethodLocalPickup {
			return &estimates[i]
		}
	}
	return nil
}

func (s *Service) GetByReference(ctx context.Context, req domain.GetQuoteRequest) (*domain.Quote, error) {
	reference := strings.TrimSpace(req.Reference)
	if reference == "" {
		return nil, domain.ErrInvalidReference
	}
	if _, err := ulid.ParseStrict(strings.ToUpper(reference)); err != nil {
		return nil, domain.ErrInvalidReference
	}

	quote, err := s.repo.FindByReference(ctx, s.db, strings.ToUpper(reference))
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	return quote, nil
}

func (s *Service) List(ctx context.Context, req domain.ListQuoteRequest) (domain.ListQuoteResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 25
	}

	items, err := s.repo.List(ctx, s.db, domain.ListQuoteFilter{
		CustomerEmail: strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		SeriesID:      strings.TrimSpace(req.SeriesID),
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListQuoteResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(quote *domain.Quote) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        quote.ID.String(),
			CreatedAt: quote.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	quotes := make([]domain.Quote, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		quotes = append(quotes, *item)
	}

	return domain.ListQuoteResponse{
		PageInfo: *pageInfo,
		Quotes:   quotes,
	}, nil
}
