package domain

import (
	"github.com/google/uuid"
)

// DTOs for API responses. Tour payloads keep the snake_case field names the
// admin and public sites already use; everything else is camelCase.

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// Pagination response wrapper
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

type TourDTO struct {
	ID                      uuid.UUID       `json:"id"`
	Title                   string          `json:"title"`
	Price                   float64         `json:"price"`
	OldPrice                float64         `json:"oldPrice"`
	PersonCount             int             `json:"person_count"`
	Nights                  NightsPricing   `json:"nights"`
	FoodCategory            FoodCategories  `json:"food_category"`
	AvailableFoodCategories []string        `json:"available_food_categories"`
	Country                 string          `json:"country"`
	Markets                 []string        `json:"markets"`
	TourSummary             string          `json:"tour_summary"`
	TourImage               string          `json:"tour_image"`
	DestinationImages       []string        `json:"destination_images"`
	ActivityImages          []string        `json:"activity_images"`
	HotelImages             []string        `json:"hotel_images"`
	Inclusions              []string        `json:"inclusions"`
	Exclusions              []string        `json:"exclusions"`
	Facilities              []string        `json:"facilities"`
	Itinerary               Itinerary       `json:"itinerary"`
	ItineraryImages         ItineraryImages `json:"itinerary_images"`
	ItineraryTitles         ItineraryTitles `json:"itinerary_titles"`
	ExpiryDate              *string         `json:"expiry_date,omitempty"`
	ValidFrom               *string         `json:"valid_from,omitempty"`
	ValidTo                 *string         `json:"valid_to,omitempty"`
	CreatedAt               string          `json:"createdAt"` // ISO 8601
	UpdatedAt               string          `json:"updatedAt"` // ISO 8601
}

// TourDraftDTO is returned by the itinerary and pricing edit endpoints
type TourDraftDTO struct {
	TourDTO
	SelectedNights string `json:"selected_nights"`
}

type QuoteDTO struct {
	TourID       uuid.UUID `json:"tourId"`
	NightsKey    string    `json:"nightsKey"`
	Nights       int       `json:"nights"`
	PersonCount  int       `json:"personCount"`
	Option       string    `json:"option"`
	FoodCategory *string   `json:"foodCategory,omitempty"`
	Total        float64   `json:"total"`
	OldTotal     float64   `json:"oldTotal"`
	Savings      float64   `json:"savings"`
}

type TourImageDTO struct {
	ID           uuid.UUID  `json:"id"`
	TourID       uuid.UUID  `json:"tourId"`
	Group        ImageGroup `json:"group"`
	DayKey       string     `json:"dayKey,omitempty"`
	Position     int        `json:"position"`
	FileName     string     `json:"fileName"`
	State        ImageState `json:"state"`
	Ref          string     `json:"ref"`
	ThumbnailRef string     `json:"thumbnailRef,omitempty"`
	Error        string     `json:"error,omitempty"`
	CreatedAt    string     `json:"createdAt"` // ISO 8601
}

// ImageUploadResultDTO lists every slot of one upload request with its outcome
type ImageUploadResultDTO struct {
	Images    []TourImageDTO `json:"images"`
	Committed int            `json:"committed"`
	Failed    int            `json:"failed"`
}

type DiscountDTO struct {
	ID               uuid.UUID          `json:"id"`
	Name             string             `json:"name"`
	Description      string             `json:"description,omitempty"`
	DiscountType     DiscountType       `json:"discountType"`
	Value            float64            `json:"value"`
	Conditions       DiscountConditions `json:"conditions"`
	ValidFrom        *string            `json:"validFrom,omitempty"`
	ValidTo          *string            `json:"validTo,omitempty"`
	Active           bool               `json:"active"`
	EligibleAgents   []string           `json:"eligibleAgents"`
	UsedAgents       []string           `json:"usedAgents"`
	ApplicableHotels []string           `json:"applicableHotels"`
	CreatedAt        string             `json:"createdAt"` // ISO 8601
	UpdatedAt        string             `json:"updatedAt"` // ISO 8601
}

// DiscountExplanationDTO reports why an offer is or is not shown to the caller
type DiscountExplanationDTO struct {
	DiscountID uuid.UUID `json:"discountId"`
	Eligible   bool      `json:"eligible"`
	Reason     string    `json:"reason"`
	AgentID    string    `json:"agentId,omitempty"`
	HotelID    string    `json:"hotelId,omitempty"`
	Bookings   int       `json:"bookings"`
}

type HotelDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Country     string    `json:"country"`
	City        string    `json:"city"`
	Stars       int       `json:"stars"`
	Description string    `json:"description,omitempty"`
	Images      []string  `json:"images"`
	Active      bool      `json:"active"`
	CreatedAt   string    `json:"createdAt"` // ISO 8601
	UpdatedAt   string    `json:"updatedAt"` // ISO 8601
}

type RoomDTO struct {
	ID            uuid.UUID `json:"id"`
	HotelID       uuid.UUID `json:"hotelId"`
	Name          string    `json:"name"`
	Capacity      int       `json:"capacity"`
	PricePerNight float64   `json:"pricePerNight"`
	Images        []string  `json:"images"`
	Available     bool      `json:"available"`
	CreatedAt     string    `json:"createdAt"` // ISO 8601
	UpdatedAt     string    `json:"updatedAt"` // ISO 8601
}

type BookingDTO struct {
	ID            uuid.UUID     `json:"id"`
	AgentID       string        `json:"agentId"`
	AgentName     string        `json:"agentName,omitempty"`
	CustomerName  string        `json:"customerName"`
	CustomerEmail string        `json:"customerEmail,omitempty"`
	HotelID       *uuid.UUID    `json:"hotelId,omitempty"`
	RoomID        *uuid.UUID    `json:"roomId,omitempty"`
	TourID        *uuid.UUID    `json:"tourId,omitempty"`
	CheckIn       string        `json:"checkIn"`
	CheckOut      string        `json:"checkOut"`
	Guests        int           `json:"guests"`
	NightsKey     string        `json:"nightsKey,omitempty"`
	OptionIndex   int           `json:"optionIndex"`
	FoodCategory  *string       `json:"foodCategory,omitempty"`
	TotalPrice    float64       `json:"totalPrice"`
	OldTotalPrice float64       `json:"oldTotalPrice"`
	DiscountID    *uuid.UUID    `json:"discountId,omitempty"`
	Status        BookingStatus `json:"status"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     string        `json:"createdAt"` // ISO 8601
	UpdatedAt     string        `json:"updatedAt"` // ISO 8601
}

type InquiryDTO struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone,omitempty"`
	Message   string        `json:"message"`
	TourID    *uuid.UUID    `json:"tourId,omitempty"`
	Status    InquiryStatus `json:"status"`
	CreatedAt string        `json:"createdAt"` // ISO 8601
	UpdatedAt string        `json:"updatedAt"` // ISO 8601
}

// Request DTOs

// TourRequest is the full tour payload; PUT replaces every field
type TourRequest struct {
	Title             string           `json:"title" validate:"required,max=300"`
	Price             float64          `json:"price" validate:"gte=0"`
	OldPrice          float64          `json:"oldPrice" validate:"gte=0"`
	PersonCount       int              `json:"person_count" validate:"gte=1"`
	Nights            NightsPricing    `json:"nights" validate:"required,min=1"`
	FoodCategory      FoodCategories   `json:"food_category"`
	Country           string           `json:"country" validate:"max=100"`
	Markets           []string         `json:"markets"`
	TourSummary       string           `json:"tour_summary"`
	TourImage         string           `json:"tour_image" validate:"max=1000"`
	DestinationImages []string         `json:"destination_images"`
	ActivityImages    []string         `json:"activity_images"`
	HotelImages       []string         `json:"hotel_images"`
	Inclusions        []string         `json:"inclusions"`
	Exclusions        []string         `json:"exclusions"`
	Facilities        []string         `json:"facilities"`
	Itinerary         *Itinerary       `json:"itinerary"`
	ItineraryImages   *ItineraryImages `json:"itinerary_images"`
	ItineraryTitles   *ItineraryTitles `json:"itinerary_titles"`
	ExpiryDate        *string          `json:"expiry_date"`
	ValidFrom         *string          `json:"valid_from"`
	ValidTo           *string          `json:"valid_to"`
}

type ConfirmNightsRequest struct {
	Nights int `json:"nights" validate:"required,gte=1,lte=60"`
}

type ReplaceNightsOptionRequest struct {
	Old NightsOption `json:"old"`
	New NightsOption `json:"new"`
}

type UpdateFoodCategoryRequest struct {
	AddPrice    *float64 `json:"add_price" validate:"omitempty,gte=0"`
	OldAddPrice *float64 `json:"old_add_price" validate:"omitempty,gte=0"`
	Available   *bool    `json:"available"`
}

type QuoteRequest struct {
	NightsKey    string  `json:"nightsKey" validate:"required"`
	OptionIndex  int     `json:"optionIndex" validate:"gte=0"`
	FoodCategory *string `json:"foodCategory" validate:"omitempty,oneof=0 1 2"`
}

type DiscountRequest struct {
	Name             string             `json:"name" validate:"required,max=200"`
	Description      string             `json:"description"`
	DiscountType     DiscountType       `json:"discountType" validate:"required,oneof=percentage seasonal exclusive transportation libert"`
	Value            float64            `json:"value" validate:"gte=0"`
	Conditions       DiscountConditions `json:"conditions"`
	ValidFrom        *string            `json:"validFrom"`
	ValidTo          *string            `json:"validTo"`
	Active           *bool              `json:"active"`
	EligibleAgents   []string           `json:"eligibleAgents" validate:"omitempty,dive,required,max=100"`
	ApplicableHotels []string           `json:"applicableHotels" validate:"omitempty,dive,required,max=100"`
}

type HotelRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Country     string   `json:"country" validate:"max=100"`
	City        string   `json:"city" validate:"max=100"`
	Stars       int      `json:"stars" validate:"gte=0,lte=5"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Active      *bool    `json:"active"`
}

type RoomRequest struct {
	Name          string   `json:"name" validate:"required,max=200"`
	Capacity      int      `json:"capacity" validate:"gte=1"`
	PricePerNight float64  `json:"pricePerNight" validate:"gte=0"`
	Images        []string `json:"images"`
	Available     *bool    `json:"available"`
}

type CreateBookingRequest struct {
	CustomerName  string     `json:"customerName" validate:"required,max=200"`
	CustomerEmail string     `json:"customerEmail" validate:"omitempty,email"`
	HotelID       *uuid.UUID `json:"hotelId"`
	RoomID        *uuid.UUID `json:"roomId"`
	TourID        *uuid.UUID `json:"tourId"`
	CheckIn       string     `json:"checkIn" validate:"required"`
	CheckOut      string     `json:"checkOut" validate:"required"`
	Guests        int        `json:"guests" validate:"gte=1"`
	NightsKey     string     `json:"nightsKey" validate:"max=10"`
	OptionIndex   int        `json:"optionIndex" validate:"gte=0"`
	FoodCategory  *string    `json:"foodCategory" validate:"omitempty,oneof=0 1 2"`
	DiscountID    *uuid.UUID `json:"discountId"`
	Notes         string     `json:"notes"`
}

type UpdateBookingStatusRequest struct {
	Status BookingStatus `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type CreateInquiryRequest struct {
	Name    string     `json:"name" validate:"required,max=200"`
	Email   string     `json:"email" validate:"required,email"`
	Phone   string     `json:"phone" validate:"max=50"`
	Message string     `json:"message" validate:"required,max=5000"`
	TourID  *uuid.UUID `json:"tourId"`
}

type UpdateInquiryRequest struct {
	Status InquiryStatus `json:"status" validate:"required,oneof=open answered closed"`
}
