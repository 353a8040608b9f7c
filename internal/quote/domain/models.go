package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	configuratordomain "github.com/scaroll/pgclosets-core/internal/configurator/domain"
	freightdomain "github.com/scaroll/pgclosets-core/internal/freight/domain"
	"github.com/scaroll/pgclosets-core/pkg/db/pagination"
)

// Quote is a priced configuration snapshot a customer saved for later.
// Prices are frozen at capture time; a stale quote is re-priced by
// submitting its request again, never by mutating the row.
type Quote struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Reference string       `gorm:"not null;uniqueIndex" json:"reference"`

	SeriesID string `gorm:"not null;index" json:"series_id"`
	SKU      string `gorm:"not null" json:"sku"`
	Quantity int    `gorm:"not null" json:"quantity"`

	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `gorm:"index" json:"customer_email,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`

	UnitPriceCents int64          `gorm:"not null" json:"unit_price_cents"`
	DiscountCents  int64          `gorm:"not null;default:0" json:"discount_cents"`
	FreightCents   int64          `gorm:"not null;default:0" json:"freight_cents"`
	TotalCents     int64          `gorm:"not null" json:"total_cents"`
	FreightMethod  string         `json:"freight_method,omitempty"`
	Breakdown      datatypes.JSON `gorm:"type:jsonb" json:"breakdown"`
	RequestBody    datatypes.JSON `gorm:"type:jsonb" json:"request"`

	LeadTimeDays int       `gorm:"not null;default:0" json:"lead_time_days"`
	ExpiresAt    time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

type CreateQuoteRequest struct {
	Configuration configuratordomain.ConfigureRequest `json:"configuration"`

	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`

	// Optional; when set, the cheapest non-pickup freight estimate for
	// the destination is folded into the quoted total.
	PostalCode    string               `json:"postal_code,omitempty"`
	FreightMethod freightdomain.Method `json:"freight_method,omitempty"`
}

type GetQuoteRequest struct {
	Reference string
}

type ListQuoteRequest struct {
	PageToken     string
	PageSize      int
	CustomerEmail string
	SeriesID      string
}

type ListQuoteFilter struct {
	CustomerEmail string
	SeriesID      string
}

type ListQuoteResponse struct {
	pagination.PageInfo
	Quotes []Quote `json:"quotes"`
}

type Service interface {
	Create(ctx context.Context, req CreateQuoteRequest) (*Quote, error)
	GetByReference(ctx context.Context, req GetQuoteRequest) (*Quote, error)
	List(ctx context.Context, req ListQuoteRequest) (ListQuoteResponse, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, quote *Quote) error
	FindByReference(ctx context.Context, db *gorm.DB, reference string) (*Quote, error)
	List(ctx context.Context, db *gorm.DB, filter ListQuoteFilter, page pagination.Pagination) ([]*Quote, error)
}

var (
	ErrInvalidConfiguration = errors.New("invalid_configuration")
	ErrInvalidReference     = errors.New("invalid_reference")
	ErrNotFound             = errors.New("quote_not_found")
	ErrDuplicateReference   = errors.New("duplicate_reference")
)
