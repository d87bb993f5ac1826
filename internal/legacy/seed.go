package legacy

// Seed returns the sample catalogue the site shipped with before any real
// content was entered. It goes through the same upsert path as an export.
func Seed() *Export {
	unit := func(name, size string, bed, bath, balc int, features ...string) any {
		list := make([]any, 0, len(features))
		for _, f := range features {
			list = append(list, f)
		}
		return map[string]any{
			"name": name, "size": size,
			"bedrooms": bed, "bathrooms": bath, "balconies": balc,
			"features": list,
		}
	}
	strs := func(values ...string) []any {
		out := make([]any, 0, len(values))
		for _, v := range values {
			out = append(out, v)
		}
		return out
	}

	return &Export{
		Projects: []Document{
			{
				"id":                "uhud-hafeez-palace",
				"title":             "Uhud Hafeez Palace",
				"location":          "Enayetganj, Hazaribagh, Dhaka",
				"price":             "Contact for Pricing",
				"description":       "Modern Living at Uhud Hafeez Palace, Hazaribagh.\n\nDiscover comfort and convenience at Uhud Hafeez Palace.",
				"status":            "Ongoing",
				"imageUrl":          "/images/uhud-hafeez.png",
				"buildingAmenities": strs("Lift (Modern Elevator)", "Power Backup (Full Generator)", "Integrated PBX System"),
				"order":             1,
				"units": []any{
					unit("Type A", "700 Sq. Ft. (approx.)", 2, 2, 2, "Drawing & Dining"),
					unit("Type B", "700 Sq. Ft. (approx.)", 2, 2, 2, "Drawing & Dining"),
				},
			},
			{
				"id":                "mayer-badhon",
				"title":             "Mayer Badhon",
				"location":          "Mohammadpur, Dhaka",
				"price":             "Starts from 95 Lac",
				"description":       "Mayer Badhon is designed to provide a sense of belonging and community.",
				"status":            "Ongoing",
				"imageUrl":          "https://images.unsplash.com/photo-1545324418-cc1a3fa10c00?auto=format&fit=crop&q=80&w=1000",
				"buildingAmenities": strs("Community Hall", "Rooftop Garden", "24/7 Security"),
				"order":             2,
				"units": []any{
					unit("Standard Unit", "1250 Sq. Ft.", 3, 3, 2, "South Facing", "Utility Room"),
				},
			},
			{
				"id":                "sorkar-garden",
				"title":             "Sorkar Garden",
				"location":          "Uttara, Dhaka",
				"price":             "Starts from 1.5 Cr",
				"description":       "Experience the tranquility of nature at Sorkar Garden.",
				"status":            "Completed",
				"imageUrl":          "https://images.unsplash.com/photo-1512917774080-9991f1c4c750?auto=format&fit=crop&q=80&w=1000",
				"buildingAmenities": strs("Swimming Pool", "Gymnasium", "Kids Play Zone", "Jogging Track"),
				"order":             3,
				"units": []any{
					unit("Luxury Apartment", "2400 Sq. Ft.", 4, 4, 4, "Lake View", "Servant Room", "Double Glazed Windows"),
				},
			},
			{
				"id":                "uhud-tower",
				"title":             "Uhud Tower",
				"location":          "Gulshan, Dhaka",
				"price":             "Starts from 3.5 Cr",
				"description":       "Uhud Tower stands as a symbol of prestige in Gulshan.",
				"status":            "Upcoming",
				"imageUrl":          "https://images.unsplash.com/photo-1486406146926-c627a92ad1ab?auto=format&fit=crop&q=80&w=1000",
				"buildingAmenities": strs("Concierge Service", "Helipad", "Infinity Pool", "Business Center"),
				"order":             4,
				"units": []any{
					unit("Penthouse Suite", "4500 Sq. Ft.", 5, 6, 4, "Private Pool", "Panoramic View", "Smart Home System"),
				},
			},
		},
		Gallery: []Document{
			{"id": "seed-gallery-1", "url": "https://images.unsplash.com/photo-1600607687939-ce8a6c25118c", "caption": "Modern Interiors"},
			{"id": "seed-gallery-2", "url": "https://images.unsplash.com/photo-1600566753086-00f18fb6b3ea", "caption": "Spacious Living Rooms"},
			{"id": "seed-gallery-3", "url": "https://images.unsplash.com/photo-1600210492486-724fe5c67fb0", "caption": "Gourmet Kitchens"},
			{"id": "seed-gallery-4", "url": "https://images.unsplash.com/photo-1600585154340-be6161a56a0c", "caption": "Backyard Oasis"},
		},
	}
}
