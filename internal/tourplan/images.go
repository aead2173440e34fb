package tourplan

import (
	"errors"
	"slices"

	"github.com/google/uuid"
	"github.com/voyagedesk/travel-api/internal/domain"
	"gorm.io/datatypes"
)

var (
	ErrImageNotFound       = errors.New("image not found")
	ErrImageNotPending     = errors.New("image is no longer pending")
	ErrInvalidImageDayKey  = errors.New("itinerary images need first_day, last_day or a day_N key")
	ErrUnexpectedImageDays = errors.New("day key is only valid for itinerary images")
)

// Itinerary image day keys besides day_N
const (
	FirstDayKey = "first_day"
	LastDayKey  = "last_day"
)

// NewImageSlot returns a pending slot. The local reference is shown until the
// upload commits.
func NewImageSlot(tourID uuid.UUID, group domain.ImageGroup, dayKey, fileName string) (domain.TourImage, error) {
	if err := ValidateImageTarget(group, dayKey); err != nil {
		return domain.TourImage{}, err
	}
	id := uuid.New()
	return domain.TourImage{
		BaseModel: domain.BaseModel{ID: id},
		TourID:    tourID,
		Group:     group,
		DayKey:    dayKey,
		FileName:  fileName,
		LocalRef:  "local:" + id.String(),
		State:     domain.ImageStatePending,
	}, nil
}

// ValidateImageTarget checks the group and day key combination
func ValidateImageTarget(group domain.ImageGroup, dayKey string) error {
	if !group.IsValid() {
		return errors.New("invalid image group")
	}
	if group != domain.ImageGroupItinerary {
		if dayKey != "" {
			return ErrUnexpectedImageDays
		}
		return nil
	}
	if dayKey == FirstDayKey || dayKey == LastDayKey {
		return nil
	}
	if n, ok := domain.ParseDayKey(dayKey); ok && n >= 2 {
		return nil
	}
	return ErrInvalidImageDayKey
}

// CommitImage moves a pending slot to committed
func CommitImage(img *domain.TourImage, remoteRef, thumbnailRef string) error {
	if img.State != domain.ImageStatePending {
		return ErrImageNotPending
	}
	img.State = domain.ImageStateCommitted
	img.RemoteRef = remoteRef
	img.ThumbnailRef = thumbnailRef
	img.Error = ""
	return nil
}

// FailImage moves a pending slot to failed, dropping its preview
func FailImage(img *domain.TourImage, cause error) error {
	if img.State != domain.ImageStatePending {
		return ErrImageNotPending
	}
	img.State = domain.ImageStateFailed
	img.LocalRef = ""
	if cause != nil {
		img.Error = cause.Error()
	}
	return nil
}

// DisplayRef is what a client shows for the slot
func DisplayRef(img domain.TourImage) string {
	switch img.State {
	case domain.ImageStateCommitted:
		return img.RemoteRef
	case domain.ImageStatePending:
		return img.LocalRef
	}
	return ""
}

// RemoveImageAt drops the slot at a position of the ordered list
func RemoveImageAt(images []domain.TourImage, index int) ([]domain.TourImage, domain.TourImage, error) {
	if index < 0 || index >= len(images) {
		return images, domain.TourImage{}, ErrImageNotFound
	}
	removed := images[index]
	return slices.Delete(images, index, index+1), removed, nil
}

// RemoveImage drops the slot with the given id
func RemoveImage(images []domain.TourImage, id uuid.UUID) ([]domain.TourImage, domain.TourImage, error) {
	i := slices.IndexFunc(images, func(img domain.TourImage) bool { return img.ID == id })
	if i < 0 {
		return images, domain.TourImage{}, ErrImageNotFound
	}
	return RemoveImageAt(images, i)
}

// AddTourImages appends the refs of newly committed slots to the tour's image
// lists. Refs already on the tour are kept. Itinerary slots for a day the
// itinerary does not have are skipped; the cover takes the last committed ref.
func AddTourImages(t *domain.Tour, committed []domain.TourImage) {
	var itin *domain.ItineraryImages
	middleDays := t.Itinerary.Data().MiddleDays

	for _, img := range committed {
		if img.State != domain.ImageStateCommitted {
			continue
		}
		ref := img.RemoteRef
		switch img.Group {
		case domain.ImageGroupTour:
			t.TourImage = ref
		case domain.ImageGroupDestination:
			t.DestinationImages = append(t.DestinationImages, ref)
		case domain.ImageGroupActivity:
			t.ActivityImages = append(t.ActivityImages, ref)
		case domain.ImageGroupHotel:
			t.HotelImages = append(t.HotelImages, ref)
		case domain.ImageGroupItinerary:
			if itin == nil {
				c := copyImages(t.ItineraryImages.Data())
				itin = &c
			}
			switch img.DayKey {
			case FirstDayKey:
				itin.FirstDay = append(itin.FirstDay, ref)
			case LastDayKey:
				itin.LastDay = append(itin.LastDay, ref)
			default:
				if _, ok := middleDays[img.DayKey]; ok {
					itin.MiddleDays[img.DayKey] = append(itin.MiddleDays[img.DayKey], ref)
				}
			}
		}
	}

	if itin != nil {
		t.ItineraryImages = datatypes.NewJSONType(*itin)
	}
}

// RemoveTourImage takes the ref of a removed slot off the tour. Only the first
// matching entry of the slot's list or day goes; other refs stay.
func RemoveTourImage(t *domain.Tour, img domain.TourImage) {
	ref := img.RemoteRef
	if img.State != domain.ImageStateCommitted || ref == "" {
		return
	}

	switch img.Group {
	case domain.ImageGroupTour:
		if t.TourImage == ref {
			t.TourImage = ""
		}
	case domain.ImageGroupDestination:
		t.DestinationImages = removeRef(t.DestinationImages, ref)
	case domain.ImageGroupActivity:
		t.ActivityImages = removeRef(t.ActivityImages, ref)
	case domain.ImageGroupHotel:
		t.HotelImages = removeRef(t.HotelImages, ref)
	case domain.ImageGroupItinerary:
		itin := copyImages(t.ItineraryImages.Data())
		switch img.DayKey {
		case FirstDayKey:
			itin.FirstDay = removeRef(itin.FirstDay, ref)
		case LastDayKey:
			itin.LastDay = removeRef(itin.LastDay, ref)
		default:
			if day, ok := itin.MiddleDays[img.DayKey]; ok {
				itin.MiddleDays[img.DayKey] = removeRef(day, ref)
			}
		}
		t.ItineraryImages = datatypes.NewJSONType(itin)
	}
}

// OrphanedDaySlots returns the itinerary slots of middle days the tour's
// itinerary no longer has
func OrphanedDaySlots(t *domain.Tour, images []domain.TourImage) []domain.TourImage {
	middleDays := t.Itinerary.Data().MiddleDays
	var orphans []domain.TourImage
	for _, img := range images {
		if img.Group != domain.ImageGroupItinerary {
			continue
		}
		if _, ok := domain.ParseDayKey(img.DayKey); !ok {
			continue
		}
		if _, ok := middleDays[img.DayKey]; !ok {
			orphans = append(orphans, img)
		}
	}
	return orphans
}

func removeRef[S ~[]string](list S, ref string) S {
	i := slices.Index(list, ref)
	if i < 0 {
		return list
	}
	return slices.Delete(list, i, i+1)
}
