package mapper

import (
	"github.com/voyagedesk/travel-api/internal/domain"
	"github.com/voyagedesk/travel-api/internal/tourplan"
)

const timestampLayout = "2006-01-02T15:04:05Z"

// ToTourDTO converts Tour to TourDTO
func ToTourDTO(tour *domain.Tour) domain.TourDTO {
	nights := tour.Nights.Data()
	if nights == nil {
		nights = domain.NightsPricing{}
	}
	food := tour.FoodCategory.Data()
	if food == nil {
		food = domain.FoodCategories{}
	}

	itin := tour.Itinerary.Data()
	if itin.MiddleDays == nil {
		itin.MiddleDays = map[string]string{}
	}
	images := tour.ItineraryImages.Data()
	if images.MiddleDays == nil {
		images.MiddleDays = map[string][]string{}
	}
	titles := tour.ItineraryTitles.Data()
	if titles.MiddleDays == nil {
		titles.MiddleDays = map[string]string{}
	}

	return domain.TourDTO{
		ID:                      tour.ID,
		Title:                   tour.Title,
		Price:                   tour.Price,
		OldPrice:                tour.OldPrice,
		PersonCount:             tour.PersonCount,
		Nights:                  nights,
		FoodCategory:            food,
		AvailableFoodCategories: tourplan.AvailableFoodCategories(food),
		Country:                 tour.Country,
		Markets:                 nonNil(tour.Markets),
		TourSummary:             tour.TourSummary,
		TourImage:               tour.TourImage,
		DestinationImages:       nonNil(tour.DestinationImages),
		ActivityImages:          nonNil(tour.ActivityImages),
		HotelImages:             nonNil(tour.HotelImages),
		Inclusions:              nonNil(tour.Inclusions),
		Exclusions:              nonNil(tour.Exclusions),
		Facilities:              nonNil(tour.Facilities),
		Itinerary:               itin,
		ItineraryImages:         images,
		ItineraryTitles:         titles,
		ExpiryDate:              domain.FormatOptionalDate(tour.ExpiryDate),
		ValidFrom:               domain.FormatOptionalDate(tour.ValidFrom),
		ValidTo:                 domain.FormatOptionalDate(tour.ValidTo),
		CreatedAt:               tour.CreatedAt.Format(timestampLayout),
		UpdatedAt:               tour.UpdatedAt.Format(timestampLayout),
	}
}

// ToTourDraftDTO converts a tour and its confirmed nights key
func ToTourDraftDTO(tour *domain.Tour, selected string) domain.TourDraftDTO {
	return domain.TourDraftDTO{
		TourDTO:        ToTourDTO(tour),
		SelectedNights: selected,
	}
}

// ToQuoteDTO converts a computed quote
func ToQuoteDTO(tour *domain.Tour, q tourplan.Quote) domain.QuoteDTO {
	total := q.Total.InexactFloat64()
	oldTotal := q.OldTotal.InexactFloat64()
	return domain.QuoteDTO{
		TourID:       tour.ID,
		NightsKey:    q.NightsKey,
		Nights:       q.Nights,
		PersonCount:  q.PersonCount,
		Option:       q.Option,
		FoodCategory: q.FoodCategory,
		Total:        total,
		OldTotal:     oldTotal,
		Savings:      q.OldTotal.Sub(q.Total).Round(2).InexactFloat64(),
	}
}

// ToTourImageDTO converts TourImage to TourImageDTO
func ToTourImageDTO(img *domain.TourImage) domain.TourImageDTO {
	return domain.TourImageDTO{
		ID:           img.ID,
		TourID:       img.TourID,
		Group:        img.Group,
		DayKey:       img.DayKey,
		Position:     img.Position,
		FileName:     img.FileName,
		State:        img.State,
		Ref:          tourplan.DisplayRef(*img),
		ThumbnailRef: img.ThumbnailRef,
		Error:        img.Error,
		CreatedAt:    img.CreatedAt.Format(timestampLayout),
	}
}

// ToDiscountDTO converts Discount to DiscountDTO
func ToDiscountDTO(discount *domain.Discount) domain.DiscountDTO {
	return domain.DiscountDTO{
		ID:               discount.ID,
		Name:             discount.Name,
		Description:      discount.Description,
		DiscountType:     discount.DiscountType,
		Value:            discount.Value,
		Conditions:       discount.Conditions.Data(),
		ValidFrom:        domain.FormatOptionalDate(discount.ValidFrom),
		ValidTo:          domain.FormatOptionalDate(discount.ValidTo),
		Active:           discount.Active,
		EligibleAgents:   nonNil(discount.EligibleAgents),
		UsedAgents:       nonNil(discount.UsedAgents),
		ApplicableHotels: nonNil(discount.ApplicableHotels),
		CreatedAt:        discount.CreatedAt.Format(timestampLayout),
		UpdatedAt:        discount.UpdatedAt.Format(timestampLayout),
	}
}

// ToHotelDTO converts Hotel to HotelDTO
func ToHotelDTO(hotel *domain.Hotel) domain.HotelDTO {
	return domain.HotelDTO{
		ID:          hotel.ID,
		Name:        hotel.Name,
		Country:     hotel.Country,
		City:        hotel.City,
		Stars:       hotel.Stars,
		Description: hotel.Description,
		Images:      nonNil(hotel.Images),
		Active:      hotel.Active,
		CreatedAt:   hotel.CreatedAt.Format(timestampLayout),
		UpdatedAt:   hotel.UpdatedAt.Format(timestampLayout),
	}
}

// ToRoomDTO converts Room to RoomDTO
func ToRoomDTO(room *domain.Room) domain.RoomDTO {
	return domain.RoomDTO{
		ID:            room.ID,
		HotelID:       room.HotelID,
		Name:          room.Name,
		Capacity:      room.Capacity,
		PricePerNight: room.PricePerNight,
		Images:        nonNil(room.Images),
		Available:     room.Available,
		CreatedAt:     room.CreatedAt.Format(timestampLayout),
		UpdatedAt:     room.UpdatedAt.Format(timestampLayout),
	}
}

// ToBookingDTO converts Booking to BookingDTO
func ToBookingDTO(booking *domain.Booking) domain.BookingDTO {
	return domain.BookingDTO{
		ID:            booking.ID,
		AgentID:       booking.AgentID,
		AgentName:     booking.AgentName,
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		HotelID:       booking.HotelID,
		RoomID:        booking.RoomID,
		TourID:        booking.TourID,
		CheckIn:       booking.CheckIn.UTC().Format(domain.DateLayout),
		CheckOut:      booking.CheckOut.UTC().Format(domain.DateLayout),
		Guests:        booking.Guests,
		NightsKey:     booking.NightsKey,
		OptionIndex:   booking.OptionIndex,
		FoodCategory:  booking.FoodCategory,
		TotalPrice:    booking.TotalPrice,
		OldTotalPrice: booking.OldTotalPrice,
		DiscountID:    booking.DiscountID,
		Status:        booking.Status,
		Notes:         booking.Notes,
		CreatedAt:     booking.CreatedAt.Format(timestampLayout),
		UpdatedAt:     booking.UpdatedAt.Format(timestampLayout),
	}
}

// ToInquiryDTO converts Inquiry to InquiryDTO
func ToInquiryDTO(inquiry *domain.Inquiry) domain.InquiryDTO {
	return domain.InquiryDTO{
		ID:        inquiry.ID,
		Name:      inquiry.Name,
		Email:     inquiry.Email,
		Phone:     inquiry.Phone,
		Message:   inquiry.Message,
		TourID:    inquiry.TourID,
		Status:    inquiry.Status,
		CreatedAt: inquiry.CreatedAt.Format(timestampLayout),
		UpdatedAt: inquiry.UpdatedAt.Format(timestampLayout),
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
