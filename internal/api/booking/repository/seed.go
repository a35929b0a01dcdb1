package bookingRepository

import (
	"fmt"
	"time"

	"jusbook/internal/entity"
)

// Seed is the initial content of the store.
type Seed struct {
	Services []entity.Service
	Slots    []entity.Slot
	Events   []entity.Event
	Contact  entity.ContactInfo
}

const slotClockLayout = "03:04 PM"

var defaultSlotTimes = []string{
	"10:00 AM", "11:00 AM", "12:30 PM", "02:00 PM",
	"03:15 PM", "04:30 PM", "06:00 PM", "07:15 PM",
}

func DefaultServices() []entity.Service {
	return []entity.Service{
		{ID: "haircut", Name: "Haircut & Styling", Description: "Precision cut with wash and styling", DurationMinutes: 45, PriceINR: 500, Keywords: []string{"haircut", "hair cut", "styling"}},
		{ID: "hairwash", Name: "Hair Wash & Blow Dry", Description: "Deep cleansing wash finished with a blow dry", DurationMinutes: 30, PriceINR: 300, Keywords: []string{"wash", "blow dry", "shampoo"}},
		{ID: "beardtrim", Name: "Beard Trim & Shape", Description: "Beard shaping with hot towel finish", DurationMinutes: 25, PriceINR: 250, Keywords: []string{"beard", "shave", "moustache"}},
		{ID: "haircolor", Name: "Hair Coloring", Description: "Global color, highlights or root touch-up", DurationMinutes: 120, PriceINR: 1500, Keywords: []string{"color", "colour", "highlights", "dye"}},
		{ID: "facial", Name: "Facial Treatment", Description: "Cleansing facial tailored to your skin type", DurationMinutes: 60, PriceINR: 800, Keywords: []string{"facial", "skin", "cleanup"}},
		{ID: "massage", Name: "Head & Shoulder Massage", Description: "Relaxing head, neck and shoulder massage", DurationMinutes: 45, PriceINR: 600, Keywords: []string{"massage", "spa", "relax"}},
		{ID: "kidshaircut", Name: "Kids Haircut", Description: "Haircut for children under 12", DurationMinutes: 30, PriceINR: 350, Keywords: []string{"kids", "kids haircut", "child", "children"}},
		{ID: "makeover", Name: "Complete Makeover", Description: "Hair, makeup and styling for special occasions", DurationMinutes: 180, PriceINR: 2500, Keywords: []string{"makeover", "makeup", "party"}},
		{ID: "bridal", Name: "Bridal Package", Description: "Full bridal hair and makeup with trial session", DurationMinutes: 240, PriceINR: 5000, Keywords: []string{"bridal", "wedding", "bride"}},
		{ID: "custom", Name: "Custom Service", Description: "Tell us what you need and we will tailor it", DurationMinutes: 60, Price: "Contact for pricing", Keywords: []string{"custom", "other", "special"}},
	}
}

func DefaultContact() entity.ContactInfo {
	return entity.ContactInfo{
		Phone:   "+91-9876543210",
		Email:   "contact@jusbook.com",
		Address: "123 Beauty Street, Jubilee Hills, Hyderabad, Telangana 500033",
		Website: "https://jusbook.com",
		Hours:   "Monday to Saturday: 9:00 AM - 7:00 PM (Closed Sundays)",
		Social: map[string]string{
			"instagram": "@jusbook_official",
			"facebook":  "facebook.com/jusbook",
			"twitter":   "@jusbook_com",
		},
	}
}

func DefaultEvents(start time.Time) []entity.Event {
	day := truncateDay(start)
	return []entity.Event{
		{
			ID:              "EV001",
			Title:           "Skincare Workshop",
			Description:     "Learn a daily skincare routine from our experts",
			Date:            day.AddDate(0, 0, 5).Format(time.DateOnly),
			Time:            "02:00 PM",
			Price:           "₹200",
			BookingRequired: true,
		},
		{
			ID:              "EV002",
			Title:           "Hair Styling Demo",
			Description:     "Live demo of this season's trending hairstyles",
			Date:            day.AddDate(0, 0, 10).Format(time.DateOnly),
			Time:            "11:00 AM",
			Price:           "Free",
			BookingRequired: true,
		},
		{
			ID:              "EV003",
			Title:           "Weekend Beauty Sale",
			Description:     "Discounts on selected services and products",
			Date:            day.AddDate(0, 0, 12).Format(time.DateOnly),
			Time:            "10:00 AM - 6:00 PM",
			Price:           "Various",
			BookingRequired: false,
		},
	}
}

// GenerateSlots lays out the daily slot grid for days days from start,
// skipping Sundays. Services rotate across the grid. Ids are SL<MMDD><NN>.
func GenerateSlots(start time.Time, days int, services []entity.Service) []entity.Slot {
	if len(services) == 0 {
		return nil
	}

	day := truncateDay(start)
	var slots []entity.Slot
	n := 0

	for i := 0; i < days; i++ {
		date := day.AddDate(0, 0, i)
		if date.Weekday() == time.Sunday {
			continue
		}

		for j, clock := range defaultSlotTimes {
			service := services[n%len(services)]
			n++

			startsAt := date
			if parsed, err := time.Parse(slotClockLayout, clock); err == nil {
				startsAt = date.Add(time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute)
			}

			slots = append(slots, entity.Slot{
				ID:              fmt.Sprintf("SL%s%02d", date.Format("0102"), j+1),
				Date:            date.Format(time.DateOnly),
				Time:            clock,
				StartsAt:        startsAt,
				ServiceID:       service.ID,
				Service:         service.Name,
				DurationMinutes: service.DurationMinutes,
				Price:           PriceLabel(service),
				Status:          entity.SlotStatusAvailable,
			})
		}
	}

	return slots
}

func DefaultSeed(start time.Time, days int) Seed {
	services := DefaultServices()
	for i := range services {
		services[i].Price = PriceLabel(services[i])
	}

	return Seed{
		Services: services,
		Slots:    GenerateSlots(start, days, services),
		Events:   DefaultEvents(start),
		Contact:  DefaultContact(),
	}
}

func PriceLabel(service entity.Service) string {
	if service.Price != "" {
		return service.Price
	}
	return fmt.Sprintf("₹%d", service.PriceINR)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
