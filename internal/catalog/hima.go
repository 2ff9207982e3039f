package catalog

import "hima_estates/internal/domain"

// HeroImages is the rotation shown behind the landing headline.
func HeroImages(r Resolver) []string {
	return r.ResolveAll(
		"/images/living_room_1.jpg",
		"/images/exterior.jpg",
		"/images/terrace.jpg",
		"/images/bedroom_one.jpg",
	)
}

// AboutImage backs the "Heritage Meets Luxury" banner.
func AboutImage(r Resolver) string { return r.Resolve("/images/terrace.jpg") }

// Default builds the Hima Estates listing with assets resolved through r.
func Default(r Resolver) (*Catalog, error) {
	return New([]domain.Property{heritageVilla(r)})
}

func heritageVilla(r Resolver) domain.Property {
	return domain.Property{
		ID:         1,
		Name:       "Heritage Villa Mysore",
		Location:   "Mysore, Karnataka",
		Tagline:    "Stay in the Heart of Mysore's History",
		Price:      40000,
		Guests:     14,
		Bedrooms:   6,
		Bathrooms:  7,
		CoverImage: r.Resolve("/images/exterior.jpg"),
		Images: r.ResolveAll(
			"/images/exterior.jpg",
			"/images/living_room_1.jpg",
			"/images/bedroom_one.jpg",
			"/images/bedroom_two.jpg",
			"/images/bedroom_three.jpg",
			"/images/bedroom_four.jpg",
			"/images/bedroom_five.jpg",
			"/images/bedroom_six.jpg",
			"/images/bathroom_one.jpg",
			"/images/bathroom_two.jpg",
			"/images/bathroom_three.jpg",
			"/images/bathroom_four.jpg",
			"/images/bathroom_five.jpg",
			"/images/bathroom_six.jpg",
			"/images/bathroom_seven.jpg",
			"/images/terrace.jpg",
			"/images/terrace_two.jpg",
			"/images/terrace_three.jpg",
		),
		Description: villaDescription,
		Amenities: []string{
			"WiFi", "Parking", "Kitchen", "AC", "Hot Water", "Garden",
			"Balcony", "Living Room", "Dining Area", "Courtyard", "Housekeeping",
		},
		HouseRules: []string{
			"Check-in: 2 PM",
			"Check-out: 11 AM",
			"No smoking inside",
			"Max 12 guests",
			"Respectful of heritage property",
		},
		WhatsApp: "919739283637",
		Phone:    "+91 97392 83637",
	}
}

const villaDescription = `Stay in the Heart of Mysore's History.

Whether you're a family, a group of friends, or a business traveler, our home offers the perfect stay in Mysore. Centrally located to explore the city's most iconic landmarks, vibrant markets, and cultural treasures.

📍 Nearby Attractions:
• Mysore Palace – 2.5 km
• Chamundi Hill – 6.5 km
• St. Philomena's Church – 2.2 km
• Devaraja Market – 2 km
• Mysore Zoo – 3 km
• Brindavan Gardens – 18 km

🏛️ The Space:
Welcome to our 80-year-old ancestral home, recently restored. It blends modern comfort with timeless heritage – more than just a stay, it's a living piece of the city's history.

You'll stay in a spacious 6BHK heritage villa, where high ceilings, antique furniture, and warm wooden accents meet modern comforts for a peaceful stay.

This isn't a hotel, it's a home. With vintage tiles, heirloom photographs, and soulful details, every corner tells a story. We welcome travelers from around the world to be part of it, even if only for a few days.

✨ Guest Access:
Room Features:
• Air conditioning in all rooms
• Fast Wi-Fi throughout
• Wardrobes for storage
• Clean, secure bathrooms
• Hot water 24/7
• Housekeeping available on request

Spaces You Can Use:
• Living Room
• Balcony
• Garden
• Courtyard
• Ample on-site parking
• Dining area

🌟 Explore the Neighborhood:
You'll find cafes, local eateries, yoga studios, and shops just a short walk or drive away. Whether you're here to explore Mysore's royal legacy or soak in the city's vibrant culture, everything is within reach.

Come stay with us. Be close to everything, yet surrounded by history, comfort, and quiet charm.`
