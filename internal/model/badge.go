package model

// Points awarded for community actions.
const (
	FoundReportPoints = 50
	ReturnPoints      = 50
	// GoldPointsThreshold is the point total at which a user becomes a Gold member.
	GoldPointsThreshold = 500
)

// Categories is the fixed vocabulary for item reports.
var Categories = []string{
	"Electronics",
	"Jewelry",
	"Clothing",
	"Accessories",
	"Important Documents",
	"Keys",
	"Wallet/Purse",
	"Bag/Backpack",
	"Identification",
	"Passport",
	"Credit/Debit Cards",
	"Other",
}

// ValidCategory reports whether the category belongs to the fixed vocabulary.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// HighValueCategories flag item reports that warrant the emergency hint.
var HighValueCategories = map[string]bool{
	"Passport":            true,
	"Identification":      true,
	"Important Documents": true,
	"Credit/Debit Cards":  true,
	"Jewelry":             true,
}

// Badge describes a named achievement from the fixed catalog.
type Badge struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// BadgeThreshold pairs a cumulative count with the badge it awards.
type BadgeThreshold struct {
	Count int
	Badge string
}

// FoundMilestones award badges on cumulative found-item reports.
var FoundMilestones = []BadgeThreshold{
	{Count: 1, Badge: "First Find"},
	{Count: 5, Badge: "Helpful Citizen"},
	{Count: 10, Badge: "Community Hero"},
	{Count: 20, Badge: "Lost & Found Expert"},
}

// ReturnMilestones award badges on cumulative returned items.
var ReturnMilestones = []BadgeThreshold{
	{Count: 1, Badge: "Good Samaritan"},
	{Count: 5, Badge: "Returned With Care"},
	{Count: 10, Badge: "Reunion Master"},
}

// CategoryBadges are awarded on the first found report in a category.
var CategoryBadges = map[string]string{
	"Electronics":         "Tech Finder",
	"Jewelry":             "Treasure Hunter",
	"Important Documents": "Document Rescuer",
	"Wallet/Purse":        "Wallet Saver",
	"Identification":      "ID Guardian",
	"Passport":            "Global Citizen Helper",
	"Credit/Debit Cards":  "Financial Protector",
}

// BadgeCatalog describes every badge the system can award.
var BadgeCatalog = []Badge{
	{Name: "First Find", Description: "Awarded for reporting your first found item"},
	{Name: "Helpful Citizen", Description: "Awarded for reporting 5 found items"},
	{Name: "Community Hero", Description: "Awarded for reporting 10 found items"},
	{Name: "Lost & Found Expert", Description: "Awarded for reporting 20 found items"},
	{Name: "Good Samaritan", Description: "Awarded for returning your first item to its owner"},
	{Name: "Returned With Care", Description: "Awarded for returning 5 items to their owners"},
	{Name: "Reunion Master", Description: "Awarded for returning 10 items to their owners"},
	{Name: "Tech Finder", Description: "Awarded for finding electronic items"},
	{Name: "Treasure Hunter", Description: "Awarded for finding jewelry"},
	{Name: "Document Rescuer", Description: "Awarded for finding important documents"},
	{Name: "Wallet Saver", Description: "Awarded for finding wallets or purses"},
	{Name: "ID Guardian", Description: "Awarded for finding identification"},
	{Name: "Global Citizen Helper", Description: "Awarded for finding passports"},
	{Name: "Financial Protector", Description: "Awarded for finding credit/debit cards"},
}
