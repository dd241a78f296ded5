package catalog

import (
	"time"

	"goodhouse/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

// Properties returns a fresh copy of the static listing catalog.
func Properties() []domain.Property {
	return []domain.Property{
		{
			ID:           "1",
			Title:        "Luxurious 4 Bedroom Duplex in Lekki Phase 1",
			Type:         domain.ListingSale,
			PropertyType: domain.TypeHouse,
			Price:        180000000,
			Location:     domain.Location{City: "Lagos", State: "Lagos", Area: "Lekki Phase 1"},
			Bedrooms:     ptr(4),
			Bathrooms:    ptr(5),
			Size:         450,
			SizeUnit:     domain.UnitSqm,
			Image:        "https://images.unsplash.com/photo-1600596542815-ffad4c1539a9?w=800&q=80",
			Features:     []string{"Swimming Pool", "Smart Home", "Garage", "BQ"},
			Description:  "Beautiful duplex with modern finishes in a serene environment.",
			Agent:        domain.Agent{Name: "Adebayo Okonkwo", Phone: "+234 801 234 5678"},
			IsVerified:   true,
			IsFeatured:   true,
			CreatedAt:    day(2024, time.January, 15),
		},
		{
			ID:           "2",
			Title:        "Modern 3 Bedroom Apartment for Rent",
			Type:         domain.ListingRent,
			PropertyType: domain.TypeApartment,
			Price:        4500000,
			PriceUnit:    ptr(domain.PerYear),
			Location:     domain.Location{City: "Lagos", State: "Lagos", Area: "Victoria Island"},
			Bedrooms:     ptr(3),
			Bathrooms:    ptr(3),
			Size:         180,
			SizeUnit:     domain.UnitSqm,
			Image:        "https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?w=800&q=80",
			Features:     []string{"24/7 Power", "Gym", "Security", "Parking"},
			Description:  "Fully serviced apartment in the heart of Victoria Island.",
			Agent:        domain.Agent{Name: "Chioma Eze", Phone: "+234 802 345 6789"},
			IsVerified:   true,
			IsFeatured:   true,
			IsServiced:   true,
			CreatedAt:    day(2024, time.January, 20),
		},
		{
			ID:           "3",
			Title:        "5 Bedroom Mansion with Pool in Banana Island",
			Type:         domain.ListingSale,
			PropertyType: domain.TypeHouse,
			Price:        850000000,
			Location:     domain.Location{City: "Lagos", State: "Lagos", Area: "Banana Island"},
			Bedrooms:     ptr(5),
			Bathrooms:    ptr(6),
			Size:         800,
			SizeUnit:     domain.UnitSqm,
			Image:        "https://images.unsplash.com/photo-1613490493576-7fde63acd811?w=800&q=80",
			Features:     []string{"Swimming Pool", "Cinema", "Wine Cellar", "Smart Home", "Garden"},
			Description:  "Exclusive waterfront mansion with breathtaking views.",
			Agent:        domain.Agent{Name: "Emmanuel Nwachukwu", Phone: "+234 803 456 7890"},
			IsVerified:   true,
			IsFeatured:   true,
			CreatedAt:    day(2024, time.January, 18),
		},
		{
			ID:           "4",
			Title:        "Cozy 2 Bedroom Flat in Yaba",
			Type:         domain.ListingRent,
			PropertyType: domain.TypeApartment,
			Price:        1800000,
			PriceUnit:    ptr(domain.PerYear),
			Location:     domain.Location{City: "Lagos", State: "Lagos", Area: "Yaba"},
			Bedrooms:     ptr(2),
			Bathrooms:    ptr(2),
			Size:         95,
			SizeUnit:     domain.UnitSqm,
			Image:        "https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=800&q=80",
			Features:     []string{"Prepaid Meter", "Security", "Water"},
			Description:  "Affordable and well-maintained flat close to amenities.",
			Agent:        domain.Agent{Name: "Fatima Abdullahi", Phone: "+234 804 567 8901"},
			IsVerified:   true,
			CreatedAt:    day(2024, time.January, 22),
		},
		{
			ID:           "5",
			Title:        "Commercial Land in Abuja CBD",
			Type:         domain.ListingSale,
			PropertyType: domain.TypeLand,
			Price:        500000000,
			Location:     domain.Location{City: "Abuja", State: "FCT", Area: "Central Business District"},
			Size:         2,
			SizeUnit:     domain.UnitPlots,
			Image:        "https://images.unsplash.com/photo-1500382017468-9049fed747ef?w=800&q=80",
			Features:     []string{"C of O", "Survey Plan", "Gazette"},
			Description:  "Prime commercial land with all documents intact.",
			Agent:        domain.Agent{Name: "Ibrahim Musa", Phone: "+234 805 678 9012"},
			IsVerified:   true,
			IsFeatured:   true,
			CreatedAt:    day(2024, time.January, 10),
		},
		{
			ID:           "6",
			Title:        "Elegant 4 Bedroom Terrace in Ikeja GRA",
			Type:         domain.ListingRent,
			PropertyType: domain.TypeHouse,
			Price:        8000000,
			PriceUnit:    ptr(domain.PerYear),
			Location:     domain.Location{City: "Lagos", State: "Lagos", Area: "Ikeja GRA"},
			Bedrooms:     ptr(4),
			Bathrooms:    ptr(4),
			Size:         320,
			SizeUnit:     domain.UnitSqm,
			Image:        "https://images.unsplash.com/photo-1600585154340-be6161a56a0c?w=800&q=80",
			Features:     []string{"BQ", "Garden", "Security", "Parking"},
			Description:  "Beautifully finished terrace in a quiet neighborhood.",
			Agent:        domain.Agent{Name: "Ngozi Okafor", Phone: "+234 806 789 0123"},
			IsVerified:   true,
			CreatedAt:    day(2024, time.January, 25),
		},
		{
			ID:           "7",
			Title:        "Office Space in Marina",
			Type:         domain.ListingRent,
			PropertyType: domain.TypeCommercial,
			Price:        15000000,
			PriceUnit:    ptr(domain.PerYear),
			Location:     domain.Location{City: "Lagos", State: "Lagos", Area: "Marina"},
			Size:         250,
			SizeUnit:     domain.UnitSqm,
			Image:        "https://images.unsplash.com/photo-1497366216548-37526070297c?w=800&q=80",
			Features:     []string{"Elevator", "24/7 Power", "Central AC", "Parking"},
			Description:  "Premium office space in the commercial heart of Lagos.",
			Agent:        domain.Agent{Name: "Tunde Bakare", Phone: "+234 807 890 1234"},
			IsVerified:   true,
			IsServiced:   true,
			CreatedAt:    day(2024, time.January, 28),
		},
		{
			ID:           "8",
			Title:        "Residential Land in Ajah",
			Type:         domain.ListingSale,
			PropertyType: domain.TypeLand,
			Price:        35000000,
			Location:     domain.Location{City: "Lagos", State: "Lagos", Area: "Ajah"},
			Size:         1,
			SizeUnit:     domain.UnitPlots,
			Image:        "https://images.unsplash.com/photo-1628744448840-55bdb2497bd4?w=800&q=80",
			Features:     []string{"Governor Consent", "Survey Plan", "Deed of Assignment"},
			Description:  "Dry land in a developing estate with good road network.",
			Agent:        domain.Agent{Name: "Oluwaseun Adeyemi", Phone: "+234 808 901 2345"},
			IsVerified:   true,
			IsFeatured:   true,
			CreatedAt:    day(2024, time.January, 30),
		},
	}
}
