package catalog

import "recoveryoffice/models"

// FallbackServices keeps the wizard browsable when the backend catalog is
// unreachable. The identifiers are deliberately non-canonical placeholders;
// the identifier check refuses them at submission time.
var FallbackServices = []models.ServiceCatalogEntry{
	{
		ID:              "recovery-consultation",
		Name:            "Recovery Consultation",
		Description:     "Initial assessment of your financial recovery case",
		DurationMinutes: 60,
		Price:           0,
		IsActive:        true,
		Features:        []string{"Case assessment", "Recovery roadmap", "No obligation"},
	},
	{
		ID:              "investment-fraud",
		Name:            "Investment Fraud Recovery",
		Description:     "Specialist recovery for investment and securities fraud",
		DurationMinutes: 90,
		Price:           500,
		IsActive:        true,
		Features:        []string{"Regulatory liaison", "Evidence review", "Claim preparation"},
	},
	{
		ID:              "emergency-crypto",
		Name:            "Emergency Crypto Recovery",
		Description:     "Urgent response for cryptocurrency theft and scams",
		DurationMinutes: 120,
		Price:           750,
		IsActive:        true,
		Features:        []string{"Chain analysis", "Exchange freezing requests", "24h response"},
	},
	{
		ID:              "regulatory-complaint",
		Name:            "Regulatory Complaint Assistance",
		Description:     "Help preparing complaints to financial regulators",
		DurationMinutes: 60,
		Price:           300,
		IsActive:        true,
		Features:        []string{"Complaint drafting", "Ombudsman escalation"},
	},
}
