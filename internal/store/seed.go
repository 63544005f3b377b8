package store

import "github.com/soaringjerry/evoa/internal/models"

// seedCatalog is served until a client persists its own catalog.
var seedCatalog = []models.Pitch{
	{
		ID:          "1",
		Title:       "AI-powered bookkeeping for small retailers",
		Startup:     "LedgerLeaf",
		Founder:     "Priya Raman",
		Stage:       models.StageMVP,
		Category:    "Fintech",
		Place:       "Bengaluru",
		Video:       "/videos/pitch1.mp4",
		Description: "LedgerLeaf reads POS exports and bank feeds and keeps a shop's books reconciled daily, flagging cash-flow gaps a week ahead.",
		Likes:       128,
		Comments:    14,
	},
	{
		ID:          "2",
		Title:       "Cold-chain monitoring for rural clinics",
		Startup:     "FrostLine",
		Founder:     "Samuel Okoro",
		Stage:       models.StageEarlyRevenue,
		Category:    "Healthtech",
		Place:       "Lagos",
		Video:       "/videos/pitch2.mp4",
		Description: "Solar-powered sensors and an SMS alert loop keep vaccines in range; 40 clinics pay a monthly fee per fridge.",
		Likes:       342,
		Comments:    27,
	},
	{
		ID:          "3",
		Title:       "Peer tutoring marketplace for engineering students",
		Startup:     "StudyLoop",
		Founder:     "Ana Costa",
		Stage:       models.StageIdea,
		Category:    "Edtech",
		Place:       "Lisbon",
		Video:       "/videos/pitch3.mp4",
		Description: "Senior students run short paid sessions for first-years; the platform handles scheduling, payments and course matching.",
		Likes:       57,
		Comments:    6,
	},
	{
		ID:          "4",
		Title:       "Route optimisation for last-mile couriers",
		Startup:     "Hopper",
		Founder:     "Daniel Weiss",
		Stage:       models.StageGrowth,
		Category:    "Logistics",
		Place:       "Berlin",
		Video:       "/videos/pitch4.mp4",
		Description: "Hopper batches same-day deliveries across small courier fleets and cuts kilometres driven by a fifth; 120 fleets onboarded.",
		Likes:       510,
		Comments:    41,
	},
	{
		ID:          "5",
		Title:       "Soil-health analytics for smallholder farms",
		Startup:     "Terrasense",
		Founder:     "Meera Iyer",
		Stage:       models.StageMVP,
		Category:    "Agritech",
		Place:       "Pune",
		Video:       "/videos/pitch5.mp4",
		Description: "A low-cost probe and phone app turn soil readings into fertiliser plans in the farmer's language.",
		Likes:       203,
		Comments:    19,
	},
	{
		ID:          "6",
		Title:       "Compliance automation for fintech APIs",
		Startup:     "Auditly",
		Founder:     "James Park",
		Stage:       models.StageScaling,
		Category:    "Fintech",
		Place:       "Singapore",
		Video:       "/videos/pitch6.mp4",
		Description: "Auditly maps API traffic to regulatory controls and produces audit evidence continuously for payment companies in five markets.",
		Likes:       689,
		Comments:    52,
	},
}

// SeedCatalog returns a fresh copy of the built-in catalog.
func SeedCatalog() []models.Pitch {
	return append([]models.Pitch(nil), seedCatalog...)
}
