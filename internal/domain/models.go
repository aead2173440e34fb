package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BaseModel carries the common identity and audit columns
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns an ID when the caller did not
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Hotel is a property that rooms belong to and that exclusive offers can be scoped to
type Hotel struct {
	BaseModel
	Name        string     `gorm:"type:varchar(200);not null"`
	Country     string     `gorm:"type:varchar(100)"`
	City        string     `gorm:"type:varchar(100)"`
	Stars       int        `gorm:"not null;default:0"`
	Description string     `gorm:"type:text"`
	Images      StringList `gorm:"column:images"`
	Active      bool       `gorm:"not null"`
	Rooms       []Room     `gorm:"foreignKey:HotelID"`
}

// Room belongs to a hotel
type Room struct {
	BaseModel
	HotelID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name          string     `gorm:"type:varchar(200);not null"`
	Capacity      int        `gorm:"not null;default:2"`
	PricePerNight float64    `gorm:"type:decimal(12,2);not null;default:0;column:price_per_night"`
	Images        StringList `gorm:"column:images"`
	Available     bool       `gorm:"not null"`
}

// NightsOption is one add-on price within a nights tier.
// Fields are kept as entered; an empty string means "not set".
type NightsOption struct {
	Option      string   `json:"option"`
	AddPrice    *float64 `json:"add_price"`
	OldAddPrice *float64 `json:"old_add_price"`
}

// NightsPricing maps a nights key ("3") to its pricing options
type NightsPricing map[string][]NightsOption

// FoodCategory holds [add_price, old_add_price, available] for one meal plan
type FoodCategory struct {
	AddPrice    float64
	OldAddPrice float64
	Available   bool
}

// FoodCategories maps a category key ("0", "1", "2") to its surcharge
type FoodCategories map[string]FoodCategory

// Itinerary holds day texts; middle days are keyed day_N
type Itinerary struct {
	FirstDay   string            `json:"first_day"`
	MiddleDays map[string]string `json:"middle_days"`
	LastDay    string            `json:"last_day"`
}

// ItineraryImages mirrors Itinerary with image references per day
type ItineraryImages struct {
	FirstDay   []string            `json:"first_day"`
	MiddleDays map[string][]string `json:"middle_days"`
	LastDay    []string            `json:"last_day"`
}

// ItineraryTitles mirrors Itinerary with a title per day
type ItineraryTitles struct {
	FirstDay   string            `json:"first_day"`
	MiddleDays map[string]string `json:"middle_days"`
	LastDay    string            `json:"last_day"`
}

// Tour is an admin-edited package with tiered pricing and a day-by-day itinerary
type Tour struct {
	BaseModel
	Title             string                              `gorm:"type:varchar(300);not null"`
	Price             float64                             `gorm:"type:decimal(12,2);not null;default:0"`
	OldPrice          float64                             `gorm:"type:decimal(12,2);not null;default:0;column:old_price"`
	PersonCount       int                                 `gorm:"not null;default:1;column:person_count"`
	Nights            datatypes.JSONType[NightsPricing]   `gorm:"column:nights"`
	FoodCategory      datatypes.JSONType[FoodCategories]  `gorm:"column:food_category"`
	Country           string                              `gorm:"type:varchar(100);index"`
	Markets           StringList                          `gorm:"column:markets"`
	TourSummary       string                              `gorm:"type:text;column:tour_summary"`
	TourImage         string                              `gorm:"type:varchar(1000);column:tour_image"`
	DestinationImages StringList                          `gorm:"column:destination_images"`
	ActivityImages    StringList                          `gorm:"column:activity_images"`
	HotelImages       StringList                          `gorm:"column:hotel_images"`
	Inclusions        StringList                          `gorm:"column:inclusions"`
	Exclusions        StringList                          `gorm:"column:exclusions"`
	Facilities        StringList                          `gorm:"column:facilities"`
	Itinerary         datatypes.JSONType[Itinerary]       `gorm:"column:itinerary"`
	ItineraryImages   datatypes.JSONType[ItineraryImages] `gorm:"column:itinerary_images"`
	ItineraryTitles   datatypes.JSONType[ItineraryTitles] `gorm:"column:itinerary_titles"`
	ExpiryDate        *time.Time                          `gorm:"column:expiry_date"`
	ValidFrom         *time.Time                          `gorm:"column:valid_from"`
	ValidTo           *time.Time                          `gorm:"column:valid_to"`
}

// DiscountType enumerates the offer rule families
type DiscountType string

const (
	DiscountTypePercentage     DiscountType = "percentage"
	DiscountTypeSeasonal       DiscountType = "seasonal"
	DiscountTypeExclusive      DiscountType = "exclusive"
	DiscountTypeTransportation DiscountType = "transportation"
	DiscountTypeLibert         DiscountType = "libert"
)

// IsValid reports whether t is a known discount type
func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountTypePercentage, DiscountTypeSeasonal, DiscountTypeExclusive,
		DiscountTypeTransportation, DiscountTypeLibert:
		return true
	}
	return false
}

// DateRange is a closed date interval; it only counts when both ends are set
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// IsSet reports whether both bounds are present
func (r *DateRange) IsSet() bool {
	return r != nil && r.Start != nil && r.End != nil
}

// DiscountConditions are the optional rule inputs of an offer
type DiscountConditions struct {
	MinNights      *int       `json:"minNights,omitempty"`
	BookingWindow  *DateRange `json:"bookingWindow,omitempty"`
	StayPeriod     *DateRange `json:"stayPeriod,omitempty"`
	SeasonalMonths []int      `json:"seasonalMonths,omitempty" validate:"omitempty,dive,min=1,max=12"`
	MinBookings    *int       `json:"minBookings,omitempty" validate:"omitempty,gte=0"`
	MinStayDays    *int       `json:"minStayDays,omitempty" validate:"omitempty,gte=0"`
	IsDefault      bool       `json:"isDefault,omitempty"`
}

// Discount is an offer shown to eligible agents and customers
type Discount struct {
	BaseModel
	Name             string                                 `gorm:"type:varchar(200);not null"`
	Description      string                                 `gorm:"type:text"`
	DiscountType     DiscountType                           `gorm:"type:varchar(30);not null;column:discount_type;index"`
	Value            float64                                `gorm:"type:decimal(12,2);not null;default:0"`
	Conditions       datatypes.JSONType[DiscountConditions] `gorm:"column:conditions"`
	ValidFrom        *time.Time                             `gorm:"column:valid_from"`
	ValidTo          *time.Time                             `gorm:"column:valid_to"`
	Active           bool                                   `gorm:"not null"`
	EligibleAgents   StringList                             `gorm:"column:eligible_agents"`
	UsedAgents       StringList                             `gorm:"column:used_agents"`
	ApplicableHotels StringList                             `gorm:"column:applicable_hotels"`
}

// BookingStatus represents the lifecycle of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsValid reports whether s is a known booking status
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking is a reservation made by an agent for a room or a tour
type Booking struct {
	BaseModel
	AgentID       string        `gorm:"type:varchar(100);not null;index;column:agent_id"`
	AgentName     string        `gorm:"type:varchar(200);column:agent_name"`
	CustomerName  string        `gorm:"type:varchar(200);not null;column:customer_name"`
	CustomerEmail string        `gorm:"type:varchar(200);column:customer_email"`
	HotelID       *uuid.UUID    `gorm:"type:uuid;index;column:hotel_id"`
	RoomID        *uuid.UUID    `gorm:"type:uuid;column:room_id"`
	TourID        *uuid.UUID    `gorm:"type:uuid;index;column:tour_id"`
	CheckIn       time.Time     `gorm:"not null;column:check_in"`
	CheckOut      time.Time     `gorm:"not null;column:check_out"`
	Guests        int           `gorm:"not null;default:1"`
	NightsKey     string        `gorm:"type:varchar(10);column:nights_key"`
	OptionIndex   int           `gorm:"not null;default:0;column:option_index"`
	FoodCategory  *string       `gorm:"type:varchar(5);column:food_category"`
	TotalPrice    float64       `gorm:"type:decimal(12,2);not null;default:0;column:total_price"`
	OldTotalPrice float64       `gorm:"type:decimal(12,2);not null;default:0;column:old_total_price"`
	DiscountID    *uuid.UUID    `gorm:"type:uuid;column:discount_id"`
	Status        BookingStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	Notes         string        `gorm:"type:text"`
}

// InquiryStatus represents the handling state of a customer inquiry
type InquiryStatus string

const (
	InquiryStatusOpen     InquiryStatus = "open"
	InquiryStatusAnswered InquiryStatus = "answered"
	InquiryStatusClosed   InquiryStatus = "closed"
)

// IsValid reports whether s is a known inquiry status
func (s InquiryStatus) IsValid() bool {
	switch s {
	case InquiryStatusOpen, InquiryStatusAnswered, InquiryStatusClosed:
		return true
	}
	return false
}

// Inquiry is a question submitted from the public site
type Inquiry struct {
	BaseModel
	Name    string        `gorm:"type:varchar(200);not null"`
	Email   string        `gorm:"type:varchar(200);not null"`
	Phone   string        `gorm:"type:varchar(50)"`
	Message string        `gorm:"type:text;not null"`
	TourID  *uuid.UUID    `gorm:"type:uuid;column:tour_id"`
	Status  InquiryStatus `gorm:"type:varchar(20);not null;default:'open'"`
}

// ImageGroup names which image list of a tour an asset belongs to
type ImageGroup string

const (
	ImageGroupTour        ImageGroup = "tour"
	ImageGroupDestination ImageGroup = "destination"
	ImageGroupActivity    ImageGroup = "activity"
	ImageGroupHotel       ImageGroup = "hotel"
	ImageGroupItinerary   ImageGroup = "itinerary"
)

// IsValid reports whether g is a known image group
func (g ImageGroup) IsValid() bool {
	switch g {
	case ImageGroupTour, ImageGroupDestination, ImageGroupActivity, ImageGroupHotel, ImageGroupItinerary:
		return true
	}
	return false
}

// ImageState is the phase of an uploaded image slot
type ImageState string

const (
	ImageStatePending   ImageState = "pending"
	ImageStateCommitted ImageState = "committed"
	ImageStateFailed    ImageState = "failed"
)

// TourImage is one uploaded asset of a tour, tracked through pending -> committed | failed
type TourImage struct {
	BaseModel
	TourID       uuid.UUID  `gorm:"type:uuid;not null;index;column:tour_id"`
	Group        ImageGroup `gorm:"type:varchar(20);not null;column:image_group"`
	DayKey       string     `gorm:"type:varchar(20);column:day_key"`
	Position     int        `gorm:"not null;default:0"`
	FileName     string     `gorm:"type:varchar(500);column:file_name"`
	LocalRef     string     `gorm:"type:varchar(200);column:local_ref"`
	RemoteRef    string     `gorm:"type:varchar(1000);column:remote_ref"`
	ThumbnailRef string     `gorm:"type:varchar(1000);column:thumbnail_ref"`
	State        ImageState `gorm:"type:varchar(20);not null;default:'pending'"`
	Error        string     `gorm:"type:text"`
}

func (TourImage) TableName() string {
	return "tour_images"
}
