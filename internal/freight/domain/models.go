package domain

import (
	"context"
	"errors"
	"time"
)

// Zone is a coarse delivery-distance classification derived from the
// postal code prefix. Ordering matters: transit windows widen from local
// outward.
type Zone string

const (
	ZoneLocal      Zone = "local"
	ZoneNearby     Zone = "nearby"
	ZoneRegional   Zone = "regional"
	ZoneProvincial Zone = "provincial"
	ZoneNational   Zone = "national"
	ZoneRemote     Zone = "remote"
)

// ZoneInfo is the resolved classification of a postal code.
type ZoneInfo struct {
	Zone        Zone   `json:"zone"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PostalCode  string `json:"postal_code"` // normalized A1A 1A1 form
}

// Method tags a delivery method.
type Method string

const (
	MethodLocalPickup Method = "local-pickup"
	MethodParcel      Method = "parcel"
	MethodLTLFreight  Method = "ltl-freight"
	MethodWhiteGlove  Method = "white-glove"
)

// DayRange is an estimated transit window in business days.
type DayRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Package is one packed item in a shipment manifest.
type Package struct {
	WeightKg        float64 `json:"weight_kg"`
	LengthCm        float64 `json:"length_cm"`
	WidthCm         float64 `json:"width_cm"`
	HeightCm        float64 `json:"height_cm"`
	ValueCents      int64   `json:"value_cents"`
	Fragile         bool    `json:"fragile"`
	SpecialHandling bool    `json:"special_handling"`
}

// DeliveryType distinguishes residential from commercial destinations.
type DeliveryType string

const (
	DeliveryResidential DeliveryType = "residential"
	DeliveryCommercial  DeliveryType = "commercial"
)

// AccessType describes the unloading conditions at the destination.
type AccessType string

const (
	AccessGroundLevel AccessType = "ground-level"
	AccessStairs      AccessType = "stairs"
	AccessElevator    AccessType = "elevator"
)

// Input is a freight calculation request. Pure value; never persisted.
type Input struct {
	PostalCode       string       `json:"postal_code"`
	Items            []Package    `json:"items"`
	DeliveryType     DeliveryType `json:"delivery_type"`
	AccessType       AccessType   `json:"access_type"`
	RequiresLiftgate bool         `json:"requires_liftgate"`

	// Manufacturing delay before the shipping clock starts, for
	// out-of-stock configurations. Sequential with transit, not
	// overlapped.
	LeadTimeDays int `json:"lead_time_days,omitempty"`
}

// SurchargeAmount is one itemized freight surcharge.
type SurchargeAmount struct {
	Type        string `json:"type"`
	AmountCents int64  `json:"amount_cents"`
}

// Estimate is one candidate delivery method for a postal code and
// manifest. None is authoritative until a customer selects one.
type Estimate struct {
	Method              Method            `json:"method"`
	Carrier             string            `json:"carrier"`
	PriceCents          int64             `json:"price_cents"`
	Days                DayRange          `json:"estimated_days"`
	RequiresLiftgate    bool              `json:"requires_liftgate,omitempty"`
	ResidentialDelivery bool              `json:"residential_delivery,omitempty"`
	Surcharges          []SurchargeAmount `json:"surcharges,omitempty"`
	Restrictions        []string          `json:"restrictions,omitempty"`
}

// DeliveryPromise is the projected arrival window for an order, combining
// manufacturing lead time with zone transit time.
type DeliveryPromise struct {
	Min  time.Time `json:"min"`
	Max  time.Time `json:"max"`
	Text string    `json:"text"`
}

// PickupLocation is a warehouse or showroom offering customer pickup.
type PickupLocation struct {
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Hours      string  `json:"hours"`
	DistanceKm float64 `json:"distance_km,omitempty"`
	Warehouse  bool    `json:"warehouse"`
}

// Service estimates shipping for the marketing site's checkout and product
// pages.
type Service interface {
	ResolveZone(postalCode string) (*ZoneInfo, error)
	Estimate(ctx context.Context, input Input) ([]Estimate, error)
	DeliveryPromise(ctx context.Context, postalCode string, leadTimeDays int) (*DeliveryPromise, error)
	PickupLocations(postalCode string) ([]PickupLocation, error)
}

// RateProvider is an optional live carrier-rate backend. Estimation falls
// back to the zone table when the provider errors or times out.
type RateProvider interface {
	Rates(ctx context.Context, input Input, zone Zone) ([]Estimate, error)
}

var (
	ErrInvalidPostalCode = errors.New("invalid_postal_code")
	ErrEmptyManifest     = errors.New("empty_manifest")
)
