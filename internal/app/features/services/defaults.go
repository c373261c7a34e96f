package services

import "github.com/dalemusser/stratatour/internal/domain/models"

// Defaults fill every optional field of a new service so a minimal payload
// still renders a complete card and detail page.
const (
	defaultPrice        = 499.0
	defaultPriceUnit    = "per person"
	defaultDuration     = "Flexible"
	defaultGroupSize    = "1-10 people"
	defaultAvailability = "Year-round"
	defaultRating       = 4.8
	defaultIcon         = "✨"
)

var serviceIcons = map[string]string{
	models.ServiceTourism:     "🗺️",
	models.ServiceTourismAR:   "🗺️",
	models.ServiceHotels:      "🏨",
	models.ServiceHotelsAR:    "🏨",
	models.ServiceTransport:   "🚗",
	models.ServiceTransportAR: "🚗",
	models.ServiceMedical:     "🏥",
	models.ServiceMedicalAR:   "🏥",
}

func iconFor(typ string) string {
	if icon, ok := serviceIcons[typ]; ok {
		return icon
	}
	return defaultIcon
}

func defaultLocations() []string {
	return []string{"Moscow", "Saint Petersburg", "Kazan", "Sochi"}
}

func defaultFeatures() []string {
	return []string{
		"Arabic-speaking guide",
		"Airport pickup",
		"Halal dining options",
		"24/7 support",
	}
}

func defaultBenefits() []string {
	return []string{
		"Tailored itinerary",
		"Licensed local partners",
		"Transparent pricing",
	}
}

func defaultItinerary() []models.ItineraryDay {
	return []models.ItineraryDay{
		{Day: 1, Title: "Arrival", Description: "Meet and greet at the airport and transfer to the hotel."},
		{Day: 2, Title: "City tour", Description: "Guided tour of the main landmarks."},
		{Day: 3, Title: "Departure", Description: "Free morning and transfer to the airport."},
	}
}
