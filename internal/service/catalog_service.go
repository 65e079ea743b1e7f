package service

// CatalogEntry describes one municipal service shown on the public portal.
type CatalogEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// CatalogService serves the static municipal service listing. The catalog is
// fixed content, not stored data.
type CatalogService interface {
	ListServices() []CatalogEntry
}

type catalogService struct {
	entries []CatalogEntry
}

func NewCatalogService() CatalogService {
	return &catalogService{entries: []CatalogEntry{
		{Name: "Property Tax Payment", Description: "View and pay property tax obligations online", Category: "Taxation"},
		{Name: "Trade License", Description: "Apply for and renew municipal trade licenses", Category: "Taxation"},
		{Name: "Water Tax Payment", Description: "Pay water supply charges for your connection", Category: "Taxation"},
		{Name: "Birth Certificate", Description: "Request certified copies of birth records", Category: "Certificates"},
		{Name: "Death Certificate", Description: "Request certified copies of death records", Category: "Certificates"},
		{Name: "Complaint Registration", Description: "Report civic issues and track their resolution", Category: "Grievances"},
		{Name: "Street Light Maintenance", Description: "Report faulty street lights in your ward", Category: "Infrastructure"},
		{Name: "Garbage Collection", Description: "Door-to-door waste collection schedules", Category: "Sanitation"},
	}}
}

func (s *catalogService) ListServices() []CatalogEntry {
	return s.entries
}
